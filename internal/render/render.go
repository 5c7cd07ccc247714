// Package render draws company view models for the terminal. Absent or empty
// fields are shown as "N/A" and empty chart series as "no data".
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"companycrm/internal/company"
)

const (
	// Placeholder stands in for an absent or empty field.
	Placeholder = "N/A"
	// NoData stands in for an empty chart series.
	NoData = "no data"
	// NoResults is printed for an empty result set.
	NoResults = "No companies found."

	cardWidth     = 64
	summaryLength = 180
	barWidth      = 30
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	totalsStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(cardWidth)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
)

// Value returns the display text of a scalar field.
func Value(p *string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return Placeholder
	}
	return strings.TrimSpace(*p)
}

// Name returns the display name of a company.
func Name(v company.CompanyViewModel) string {
	return Value(v.Name)
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

// Card renders the summary card shown in result lists.
func Card(v company.CompanyViewModel) string {
	summary := Value(v.Summary)
	if summary == Placeholder {
		summary = Value(v.Overview)
	}

	lines := []string{
		titleStyle.Render(Name(v)),
		field("Sector", Value(v.Sector)) + "   " + field("Valuation", Value(v.Valuation)),
		field("Total funding", Value(v.TotalFunding)) + "   " + field("Latest", Value(v.LatestFunding)),
		field("Website", Value(v.Website)),
		dimStyle.Render(truncate(summary, summaryLength)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// Cards renders one card per company.
func Cards(views []company.CompanyViewModel) string {
	if len(views) == 0 {
		return NoResults
	}
	cards := make([]string, 0, len(views))
	for _, v := range views {
		cards = append(cards, Card(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Table renders a compact comparison table of companies.
func Table(views []company.CompanyViewModel) string {
	if len(views) == 0 {
		return NoResults
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Company", "Sector", "Valuation", "Total Funding", "Latest Funding", "Share Transfer").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, v := range views {
		t.Row(Name(v), Value(v.Sector), Value(v.Valuation), Value(v.TotalFunding),
			Value(v.LatestFunding), Value(v.ShareTransferAllowed))
	}
	return t.String()
}

// Detail renders the full view of one company: every scalar field, the
// funding rounds with their totals row, yearly funding bars and the price
// history.
func Detail(v company.CompanyViewModel) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(Name(v)))
	b.WriteString("\n")
	for _, f := range []struct {
		label string
		value *string
	}{
		{"Website", v.Website},
		{"Sector", v.Sector},
		{"Valuation", v.Valuation},
		{"Implied valuation", v.ImpliedValuation},
		{"Total funding", v.TotalFunding},
		{"Latest funding", v.LatestFunding},
		{"Latest funding date", v.LatestFundingDate},
		{"Investors", v.Investors},
		{"Sinarmas interest", v.SinarmasInterest},
		{"Share transfer allowed", v.ShareTransferAllowed},
		{"Liquidity (EZ / Forge / Nasdaq)", joinValues(v.LiquidityEZ, v.LiquidityForge, v.LiquidityNasdaq)},
		{"Sellers ask / Buyers bid", joinValues(v.SellersAsk, v.BuyersBid)},
		{"Total bids / asks", joinValues(v.TotalBids, v.TotalAsks)},
		{"Highest bid / Lowest ask", joinValues(v.HighestBidPrice, v.LowestAskPrice)},
		{"Hiive price", v.HiivePrice},
		{"EZ bid / ask volume", joinValues(v.EZTotalBidVolume, v.EZTotalAskVolume)},
	} {
		b.WriteString(field(f.label, Value(f.value)))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n")
	summary := Value(v.Summary)
	if summary == Placeholder {
		summary = Value(v.Overview)
	}
	b.WriteString(lipgloss.NewStyle().Width(cardWidth * 3 / 2).Render(summary))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Funding rounds"))
	b.WriteString("\n")
	b.WriteString(FundingTable(v.FundingRounds, v.FundingTotals))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Funding by year ($M)"))
	b.WriteString("\n")
	b.WriteString(YearBars(v.FundingByYear))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Price history"))
	b.WriteString("\n")
	b.WriteString(PriceHistory(v.PriceSeries, v.PriceSummary))
	b.WriteString("\n")

	return b.String()
}

// joinValues renders several fields as "a / b", or nil when all are absent.
func joinValues(values ...*string) *string {
	parts := make([]string, len(values))
	present := false
	for i, p := range values {
		parts[i] = Value(p)
		if parts[i] != Placeholder {
			present = true
		}
	}
	if !present {
		return nil
	}
	s := strings.Join(parts, " / ")
	return &s
}

// FundingTable renders funding rounds followed by the totals row, if any.
func FundingTable(rounds []company.FundingEntry, totals *company.FundingEntry) string {
	if len(rounds) == 0 && totals == nil {
		return NoData
	}

	rows := make([][]string, 0, len(rounds)+1)
	for _, r := range rounds {
		rows = append(rows, fundingRow(r))
	}
	if totals != nil {
		rows = append(rows, fundingRow(*totals))
	}
	totalsRow := -1
	if totals != nil {
		totalsRow = len(rows) - 1
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Share Class", "Amount", "Issue Price", "Shares Outstanding", "Liq. Pref.", "Liq. Rank").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case totalsRow:
				return totalsStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}

func fundingRow(e company.FundingEntry) []string {
	return []string{
		Value(e.DateOfFinancing),
		Value(e.ShareClass),
		Value(e.TotalFinancingSize),
		Value(e.IssuePrice),
		Value(e.SharesOutstanding),
		Value(e.LiquidationPreference),
		Value(e.LiquidityRank),
	}
}

// YearBars renders one horizontal bar per year scaled to the largest year.
func YearBars(years []company.YearlyAggregate) string {
	if len(years) == 0 {
		return NoData
	}

	peak := 0.0
	for _, y := range years {
		if y.Amount > peak {
			peak = y.Amount
		}
	}

	lines := make([]string, 0, len(years))
	for _, y := range years {
		width := 0
		if peak > 0 {
			width = int(y.Amount / peak * barWidth)
		}
		if width == 0 && y.Amount > 0 {
			width = 1
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			y.Year,
			barStyle.Render(strings.Repeat("█", width)+strings.Repeat(" ", barWidth-width)),
			FormatMillions(y.Amount),
		))
	}
	return strings.Join(lines, "\n")
}

// FormatMillions formats an amount in millions of dollars.
func FormatMillions(m float64) string {
	return fmt.Sprintf("$%.2fM", m)
}

// PriceHistory renders the price summary line and every point of the series.
func PriceHistory(series []company.PricePoint, summary *company.PriceSummary) string {
	if len(series) == 0 {
		return NoData
	}

	var b strings.Builder
	if summary != nil {
		change := fmt.Sprintf("%+.2f%%", summary.ChangePct)
		if summary.ChangePct < 0 {
			change = lossStyle.Render(change)
		} else {
			change = gainStyle.Render(change)
		}
		fmt.Fprintf(&b, "latest $%.2f  min $%.2f  max $%.2f  avg $%.2f  change %s\n",
			summary.Latest, summary.Min, summary.Max, summary.Average, change)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Period", "Price").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, p := range series {
		name := p.Name
		if strings.TrimSpace(name) == "" {
			name = Placeholder
		}
		t.Row(name, fmt.Sprintf("$%.2f", p.Price))
	}
	b.WriteString(t.String())
	return b.String()
}
