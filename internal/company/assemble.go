package company

import (
	"github.com/montanaflynn/stats"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Embedded field names, as reported in diagnostics.
const (
	FieldFundingHistory = "funding_history"
	FieldPriceHistory   = "price_history"
)

// Assembler builds view models from company records. The zero value is usable:
// diagnostics are discarded and the price fallback is an empty series.
type Assembler struct {
	// Diagnostics receives parse failures and unrecognised funding keys.
	Diagnostics *zap.Logger
	// PriceFallback replaces price_history when it is absent or unusable.
	// Nil means an empty series.
	PriceFallback []PricePoint
}

// NewAssembler creates an Assembler that logs to diag and falls back to an
// empty price series.
func NewAssembler(diag *zap.Logger) *Assembler {
	return &Assembler{Diagnostics: diag}
}

func (a *Assembler) diag() *zap.Logger {
	if a == nil || a.Diagnostics == nil {
		return zap.NewNop()
	}
	return a.Diagnostics
}

// Assemble derives the view model of record. It never fails: unusable
// embedded data degrades to empty or partial series.
func (a *Assembler) Assemble(record CompanyRecord) CompanyViewModel {
	diag := a.diag().With(zap.String("company", record.DisplayName()))

	priceFallback := []PricePoint{}
	if a != nil && a.PriceFallback != nil {
		priceFallback = append(priceFallback, a.PriceFallback...)
	}
	prices := ParseJSONField(diag, FieldPriceHistory, record.PriceHistory, priceFallback, DecodePricePoint)

	funding := ParseJSONField(diag, FieldFundingHistory, record.FundingHistory, []FundingEntry{}, func(v gjson.Result) FundingEntry {
		entry, unknown := DecodeFundingEntry(v)
		if len(unknown) > 0 {
			diag.Warn("funding history entry has unrecognised keys", zap.Strings("keys", unknown))
		}
		return entry
	})

	regular, totals := Classify(funding)

	return CompanyViewModel{
		Fields:        record.Fields,
		PriceSeries:   prices,
		PriceSummary:  SummarizePrices(prices),
		FundingRounds: regular,
		FundingTotals: totals,
		FundingByYear: AggregateByYear(regular),
	}
}

// AssembleAll assembles every record in order. The result is never nil.
func (a *Assembler) AssembleAll(records []CompanyRecord) []CompanyViewModel {
	out := make([]CompanyViewModel, 0, len(records))
	for _, r := range records {
		out = append(out, a.Assemble(r))
	}
	return out
}

// SummarizePrices returns range statistics of a price series, or nil when the
// series is empty.
func SummarizePrices(points []PricePoint) *PriceSummary {
	if len(points) == 0 {
		return nil
	}
	data := make(stats.Float64Data, len(points))
	for i, p := range points {
		data[i] = p.Price
	}

	minPrice, _ := data.Min()
	maxPrice, _ := data.Max()
	mean, _ := data.Mean()
	average, _ := stats.Round(mean, 2)

	summary := &PriceSummary{
		Points:  len(points),
		Min:     minPrice,
		Max:     maxPrice,
		Average: average,
		Latest:  data[len(data)-1],
	}
	if first := data[0]; first != 0 {
		summary.ChangePct, _ = stats.Round((summary.Latest-first)/first*100, 2)
	}
	return summary
}
