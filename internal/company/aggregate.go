package company

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1_000_000)

// financingDateLayouts are the date shapes seen in scraped funding tables.
// "1/2/2006" also accepts zero-padded months and days.
var financingDateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// FinancingYear extracts the 4-digit calendar year of a free-form date.
func FinancingYear(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range financingDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 1000 || t.Year() > 9999 {
			return "", false
		}
		return fmt.Sprintf("%04d", t.Year()), true
	}
	return "", false
}

// FinancingAmount extracts the amount of a free-form money string such as
// "$205,900,014.30" by keeping only digits and dots.
func FinancingAmount(s string) (decimal.Decimal, bool) {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// AggregateByYear sums funding per calendar year, in millions rounded to two
// places. Entries without a usable date or amount are skipped. The result is
// sorted by year and is never nil.
func AggregateByYear(entries []FundingEntry) []YearlyAggregate {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.DateOfFinancing == nil || e.TotalFinancingSize == nil {
			continue
		}
		year, ok := FinancingYear(*e.DateOfFinancing)
		if !ok {
			continue
		}
		amount, ok := FinancingAmount(*e.TotalFinancingSize)
		if !ok {
			continue
		}
		sums[year] = sums[year].Add(amount)
	}

	out := make([]YearlyAggregate, 0, len(sums))
	for year, sum := range sums {
		out = append(out, YearlyAggregate{
			Year:   year,
			Amount: sum.Div(million).Round(2).InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
