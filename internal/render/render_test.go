package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"companycrm/internal/company"
)

func sampleView() company.CompanyViewModel {
	record := company.CompanyRecord{
		Fields: company.Fields{
			Name:         company.StringPtr("Stripe"),
			Sector:       company.StringPtr("Fintech"),
			Valuation:    company.StringPtr("$65B"),
			TotalFunding: company.StringPtr(""),
			Overview:     company.StringPtr("Payments infrastructure for the internet."),
		},
		FundingHistory: company.StringPtr(`[
			{"Date of Financing":"1/5/2021","Total Financing Size":"$10,000,000","Share Class":"Series A"},
			{"Date of Financing":"3/3/2022","Total Financing Size":"$2,500,000","Share Class":"Series B"},
			{"Share Class":"Totals","Total Financing Size":"$12,500,000"}
		]`),
		PriceHistory: company.StringPtr(`[{"name":"2023-01","price":10},{"name":"2024-01","price":12.5}]`),
	}
	return company.NewAssembler(nil).Assemble(record)
}

func TestValue(t *testing.T) {
	assert.Equal(t, Placeholder, Value(nil))
	assert.Equal(t, Placeholder, Value(company.StringPtr("")))
	assert.Equal(t, Placeholder, Value(company.StringPtr("   ")))
	assert.Equal(t, "$1B", Value(company.StringPtr(" $1B ")))
}

func TestCard(t *testing.T) {
	out := Card(sampleView())

	assert.Contains(t, out, "Stripe")
	assert.Contains(t, out, "Fintech")
	assert.Contains(t, out, "$65B")
	assert.Contains(t, out, Placeholder, "empty total funding and absent website render as N/A")
	assert.Contains(t, out, "Payments infrastructure", "overview stands in for a missing summary")
}

func TestCards_Empty(t *testing.T) {
	assert.Equal(t, NoResults, Cards(nil))
	assert.Equal(t, NoResults, Table([]company.CompanyViewModel{}))
}

func TestTable(t *testing.T) {
	out := Table([]company.CompanyViewModel{sampleView(), {}})

	assert.Contains(t, out, "Company")
	assert.Contains(t, out, "Stripe")
	assert.GreaterOrEqual(t, strings.Count(out, Placeholder), 5, "a company with no fields renders N/A in every column")
}

func TestDetail(t *testing.T) {
	out := Detail(sampleView())

	assert.Contains(t, out, "Series A")
	assert.Contains(t, out, "Totals")
	assert.Contains(t, out, "2021")
	assert.Contains(t, out, "$10.00M")
	assert.Contains(t, out, "$2.50M")
	assert.Contains(t, out, "latest $12.50")
	assert.Contains(t, out, "+25.00%")
	assert.Less(t, strings.Index(out, "Series B"), strings.Index(out, "Totals"), "totals row comes after the regular rounds")
}

func TestDetail_EmptySeries(t *testing.T) {
	view := company.NewAssembler(nil).Assemble(company.CompanyRecord{
		Fields: company.Fields{Name: company.StringPtr("Quiet Co")},
	})
	out := Detail(view)

	assert.Equal(t, 3, strings.Count(out, NoData), "funding table, yearly bars and price history all show no data")
}

func TestYearBars(t *testing.T) {
	out := YearBars([]company.YearlyAggregate{{Year: "2021", Amount: 10}, {Year: "2022", Amount: 0.01}})
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, barWidth, strings.Count(lines[0], "█"))
	assert.Equal(t, 1, strings.Count(lines[1], "█"), "a non-zero year always gets a visible bar")
	assert.Contains(t, lines[1], "$0.01M")
}

func TestPriceHistory_Decline(t *testing.T) {
	series := []company.PricePoint{{Name: "a", Price: 10}, {Name: "", Price: 5}}
	out := PriceHistory(series, company.SummarizePrices(series))

	assert.Contains(t, out, "-50.00%")
	assert.Contains(t, out, Placeholder, "unnamed points are labelled N/A")
}
