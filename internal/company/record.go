// Package company normalizes raw company records returned by the search backend
// into render-ready view models: embedded JSON history fields are decoded, the
// funding totals row is split out and funding is bucketed by calendar year.
package company

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Fields holds the scalar fields of a company. A nil pointer means the field was
// absent upstream; a pointer to "" means it was present but empty. The rendering
// layer decides how to display either state.
type Fields struct {
	Name                 *string `json:"name,omitempty"`
	Website              *string `json:"website,omitempty"`
	Sector               *string `json:"sector,omitempty"`
	Valuation            *string `json:"valuation,omitempty"`
	ImpliedValuation     *string `json:"implied_valuation,omitempty"`
	Investors            *string `json:"investors,omitempty"`
	LatestFunding        *string `json:"latest_funding,omitempty"`
	LatestFundingDate    *string `json:"latest_funding_date,omitempty"`
	TotalFunding         *string `json:"total_funding,omitempty"`
	Overview             *string `json:"overview,omitempty"`
	Summary              *string `json:"summary,omitempty"`
	SinarmasInterest     *string `json:"sinarmas_interest,omitempty"`
	ShareTransferAllowed *string `json:"share_transfer_allowed,omitempty"`
	LiquidityEZ          *string `json:"liquidity_ez,omitempty"`
	LiquidityForge       *string `json:"liquidity_forge,omitempty"`
	LiquidityNasdaq      *string `json:"liquidity_nasdaq,omitempty"`
	SellersAsk           *string `json:"sellers_ask,omitempty"`
	BuyersBid            *string `json:"buyers_bid,omitempty"`
	TotalBids            *string `json:"total_bids,omitempty"`
	TotalAsks            *string `json:"total_asks,omitempty"`
	HighestBidPrice      *string `json:"highest_bid_price,omitempty"`
	LowestAskPrice       *string `json:"lowest_ask_price,omitempty"`
	HiivePrice           *string `json:"hiive_price,omitempty"`
	EZTotalBidVolume     *string `json:"ez_total_bid_volume,omitempty"`
	EZTotalAskVolume     *string `json:"ez_total_ask_volume,omitempty"`
}

// CompanyRecord is one company as delivered by the search backend or the
// snapshot store. FundingHistory and PriceHistory hold serialized JSON arrays.
type CompanyRecord struct {
	Fields
	FundingHistory *string `json:"funding_history,omitempty"`
	PriceHistory   *string `json:"price_history,omitempty"`
}

// recordKeys maps backend JSON keys onto record fields.
var recordKeys = []struct {
	key   string
	field func(r *CompanyRecord) **string
}{
	{"name", func(r *CompanyRecord) **string { return &r.Name }},
	{"website", func(r *CompanyRecord) **string { return &r.Website }},
	{"sector", func(r *CompanyRecord) **string { return &r.Sector }},
	{"valuation", func(r *CompanyRecord) **string { return &r.Valuation }},
	{"implied_valuation", func(r *CompanyRecord) **string { return &r.ImpliedValuation }},
	{"investors", func(r *CompanyRecord) **string { return &r.Investors }},
	{"latest_funding", func(r *CompanyRecord) **string { return &r.LatestFunding }},
	{"latest_funding_date", func(r *CompanyRecord) **string { return &r.LatestFundingDate }},
	{"total_funding", func(r *CompanyRecord) **string { return &r.TotalFunding }},
	{"overview", func(r *CompanyRecord) **string { return &r.Overview }},
	{"summary", func(r *CompanyRecord) **string { return &r.Summary }},
	{"sinarmas_interest", func(r *CompanyRecord) **string { return &r.SinarmasInterest }},
	{"share_transfer_allowed", func(r *CompanyRecord) **string { return &r.ShareTransferAllowed }},
	{"liquidity_ez", func(r *CompanyRecord) **string { return &r.LiquidityEZ }},
	{"liquidity_forge", func(r *CompanyRecord) **string { return &r.LiquidityForge }},
	{"liquidity_nasdaq", func(r *CompanyRecord) **string { return &r.LiquidityNasdaq }},
	{"sellers_ask", func(r *CompanyRecord) **string { return &r.SellersAsk }},
	{"buyers_bid", func(r *CompanyRecord) **string { return &r.BuyersBid }},
	{"total_bids", func(r *CompanyRecord) **string { return &r.TotalBids }},
	{"total_asks", func(r *CompanyRecord) **string { return &r.TotalAsks }},
	{"highest_bid_price", func(r *CompanyRecord) **string { return &r.HighestBidPrice }},
	{"lowest_ask_price", func(r *CompanyRecord) **string { return &r.LowestAskPrice }},
	{"hiive_price", func(r *CompanyRecord) **string { return &r.HiivePrice }},
	{"ez_total_bid_volume", func(r *CompanyRecord) **string { return &r.EZTotalBidVolume }},
	{"ez_total_ask_volume", func(r *CompanyRecord) **string { return &r.EZTotalAskVolume }},
	{"funding_history", func(r *CompanyRecord) **string { return &r.FundingHistory }},
	{"price_history", func(r *CompanyRecord) **string { return &r.PriceHistory }},
}

// UnmarshalJSON decodes a backend record. Missing keys and JSON nulls both
// become absent fields; numbers and booleans keep their textual form so a
// loosely typed backend row never fails the whole response.
func (r *CompanyRecord) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("company record: invalid JSON")
	}
	obj := gjson.ParseBytes(data)
	if obj.Type == gjson.Null {
		return nil
	}
	if !obj.IsObject() {
		return fmt.Errorf("company record: expected object, got %s", obj.Type)
	}

	*r = CompanyRecord{}
	for _, k := range recordKeys {
		v := obj.Get(k.key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		s := v.String()
		if v.IsArray() || v.IsObject() {
			s = v.Raw
		}
		*k.field(r) = &s
	}
	return nil
}

// DisplayName returns the company name or "" when it is absent.
func (r CompanyRecord) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// PricePoint is one point of a company's price chart.
type PricePoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// YearlyAggregate is the funding raised in one calendar year, in millions.
type YearlyAggregate struct {
	Year   string  `json:"year"`
	Amount float64 `json:"amount"`
}

// PriceSummary describes the range of a price series for chart annotation.
type PriceSummary struct {
	Points    int     `json:"points"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Average   float64 `json:"average"`
	Latest    float64 `json:"latest"`
	ChangePct float64 `json:"change_pct"`
}

// CompanyViewModel is the normalized, render-ready form of a CompanyRecord.
type CompanyViewModel struct {
	Fields
	PriceSeries   []PricePoint      `json:"price_series"`
	PriceSummary  *PriceSummary     `json:"price_summary,omitempty"`
	FundingRounds []FundingEntry    `json:"funding_rounds"`
	FundingTotals *FundingEntry     `json:"funding_totals"`
	FundingByYear []YearlyAggregate `json:"funding_by_year"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
