package company

import (
	"strings"

	"github.com/tidwall/gjson"
)

// TotalsShareClass marks the synthetic summary row of a funding history.
const TotalsShareClass = "Totals"

// FundingEntry is one row of a company's funding history.
type FundingEntry struct {
	DateOfFinancing       *string `json:"date_of_financing,omitempty"`
	ShareClass            *string `json:"share_class,omitempty"`
	TotalFinancingSize    *string `json:"total_financing_size,omitempty"`
	LiquidityRank         *string `json:"liquidity_rank,omitempty"`
	IssuePrice            *string `json:"issue_price,omitempty"`
	SharesOutstanding     *string `json:"shares_outstanding,omitempty"`
	LiquidationPreference *string `json:"liquidation_preference,omitempty"`
}

// IsTotals reports whether the entry is the funding totals row.
func (e FundingEntry) IsTotals() bool {
	return e.ShareClass != nil && *e.ShareClass == TotalsShareClass
}

// fundingKeys is the single mapping from normalized upstream keys to entry
// fields. Upstream sends either the scraped column labels ("Date of Financing")
// or snake_case names; both normalize to the same key.
var fundingKeys = map[string]func(e *FundingEntry) **string{
	"date_of_financing":      func(e *FundingEntry) **string { return &e.DateOfFinancing },
	"share_class":            func(e *FundingEntry) **string { return &e.ShareClass },
	"total_financing_size":   func(e *FundingEntry) **string { return &e.TotalFinancingSize },
	"liquidity_rank":         func(e *FundingEntry) **string { return &e.LiquidityRank },
	"issue_price":            func(e *FundingEntry) **string { return &e.IssuePrice },
	"shares_outstanding":     func(e *FundingEntry) **string { return &e.SharesOutstanding },
	"liquidation_preference": func(e *FundingEntry) **string { return &e.LiquidationPreference },
}

// normalizeKey lower-cases k and joins its words with underscores.
func normalizeKey(k string) string {
	words := strings.FieldsFunc(strings.ToLower(k), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(words, "_")
}

// DecodeFundingEntry maps one decoded JSON element onto a FundingEntry. Keys
// that match no field are returned so the caller can report them. Elements
// that are not objects yield an entry with every field absent.
func DecodeFundingEntry(v gjson.Result) (FundingEntry, []string) {
	var entry FundingEntry
	if !v.IsObject() {
		return entry, nil
	}

	var unknown []string
	v.ForEach(func(key, value gjson.Result) bool {
		field, ok := fundingKeys[normalizeKey(key.String())]
		if !ok {
			unknown = append(unknown, key.String())
			return true
		}
		if value.Type == gjson.Null {
			return true
		}
		s := value.String()
		if value.IsArray() || value.IsObject() {
			s = value.Raw
		}
		*field(&entry) = &s
		return true
	})
	return entry, unknown
}

// DecodePricePoint maps one decoded JSON element onto a PricePoint. The price
// may be a JSON number or a numeric string; anything else reads as zero.
func DecodePricePoint(v gjson.Result) PricePoint {
	name := v.Get("name")
	if !name.Exists() {
		name = v.Get("date")
	}
	return PricePoint{
		Name:  name.String(),
		Price: v.Get("price").Float(),
	}
}
