package models

import (
	"time"

	"companycrm/internal/company"
)

// Company is a stored snapshot of one spreadsheet row. Embedded JSON fields
// are kept as raw text and only parsed when the row is assembled for display.
type Company struct {
	Snapshot
	Name                 string  `gorm:"not null;uniqueIndex" json:"name"`
	Website              *string `json:"website,omitempty"`
	Sector               *string `gorm:"index" json:"sector,omitempty"`
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
	LiquidityEZ          *string `gorm:"column:liquidity_ez" json:"liquidity_ez,omitempty"`
	LiquidityForge       *string `json:"liquidity_forge,omitempty"`
	LiquidityNasdaq      *string `json:"liquidity_nasdaq,omitempty"`
	SellersAsk           *string `json:"sellers_ask,omitempty"`
	BuyersBid            *string `json:"buyers_bid,omitempty"`
	TotalBids            *string `json:"total_bids,omitempty"`
	TotalAsks            *string `json:"total_asks,omitempty"`
	HighestBidPrice      *string `json:"highest_bid_price,omitempty"`
	LowestAskPrice       *string `json:"lowest_ask_price,omitempty"`
	HiivePrice           *string `json:"hiive_price,omitempty"`
	EZTotalBidVolume     *string `gorm:"column:ez_total_bid_volume" json:"ez_total_bid_volume,omitempty"`
	EZTotalAskVolume     *string `gorm:"column:ez_total_ask_volume" json:"ez_total_ask_volume,omitempty"`
	FundingHistory       *string `gorm:"type:text" json:"funding_history,omitempty"`
	PriceHistory         *string `gorm:"type:text" json:"price_history,omitempty"`
}

// NewCompany builds a snapshot row from a normalized record. The caller must
// ensure the record carries a name.
func NewCompany(r company.CompanyRecord, syncedAt time.Time) Company {
	f := r.Fields
	c := Company{
		Website:              f.Website,
		Sector:               f.Sector,
		Valuation:            f.Valuation,
		ImpliedValuation:     f.ImpliedValuation,
		Investors:            f.Investors,
		LatestFunding:        f.LatestFunding,
		LatestFundingDate:    f.LatestFundingDate,
		TotalFunding:         f.TotalFunding,
		Overview:             f.Overview,
		Summary:              f.Summary,
		SinarmasInterest:     f.SinarmasInterest,
		ShareTransferAllowed: f.ShareTransferAllowed,
		LiquidityEZ:          f.LiquidityEZ,
		LiquidityForge:       f.LiquidityForge,
		LiquidityNasdaq:      f.LiquidityNasdaq,
		SellersAsk:           f.SellersAsk,
		BuyersBid:            f.BuyersBid,
		TotalBids:            f.TotalBids,
		TotalAsks:            f.TotalAsks,
		HighestBidPrice:      f.HighestBidPrice,
		LowestAskPrice:       f.LowestAskPrice,
		HiivePrice:           f.HiivePrice,
		EZTotalBidVolume:     f.EZTotalBidVolume,
		EZTotalAskVolume:     f.EZTotalAskVolume,
		FundingHistory:       r.FundingHistory,
		PriceHistory:         r.PriceHistory,
		Snapshot:             Snapshot{SyncedAt: syncedAt},
	}
	if f.Name != nil {
		c.Name = *f.Name
	}
	return c
}

// Record converts the snapshot back into the pipeline's input shape.
func (c *Company) Record() company.CompanyRecord {
	name := c.Name
	return company.CompanyRecord{
		Fields: company.Fields{
			Name:                 &name,
			Website:              c.Website,
			Sector:               c.Sector,
			Valuation:            c.Valuation,
			ImpliedValuation:     c.ImpliedValuation,
			Investors:            c.Investors,
			LatestFunding:        c.LatestFunding,
			LatestFundingDate:    c.LatestFundingDate,
			TotalFunding:         c.TotalFunding,
			Overview:             c.Overview,
			Summary:              c.Summary,
			SinarmasInterest:     c.SinarmasInterest,
			ShareTransferAllowed: c.ShareTransferAllowed,
			LiquidityEZ:          c.LiquidityEZ,
			LiquidityForge:       c.LiquidityForge,
			LiquidityNasdaq:      c.LiquidityNasdaq,
			SellersAsk:           c.SellersAsk,
			BuyersBid:            c.BuyersBid,
			TotalBids:            c.TotalBids,
			TotalAsks:            c.TotalAsks,
			HighestBidPrice:      c.HighestBidPrice,
			LowestAskPrice:       c.LowestAskPrice,
			HiivePrice:           c.HiivePrice,
			EZTotalBidVolume:     c.EZTotalBidVolume,
			EZTotalAskVolume:     c.EZTotalAskVolume,
		},
		FundingHistory: c.FundingHistory,
		PriceHistory:   c.PriceHistory,
	}
}

// SnapshotColumns lists the columns refreshed when a row with an existing
// name is synced again.
var SnapshotColumns = []string{
	"website", "sector", "valuation", "implied_valuation", "investors",
	"latest_funding", "latest_funding_date", "total_funding", "overview", "summary",
	"sinarmas_interest", "share_transfer_allowed", "liquidity_ez", "liquidity_forge",
	"liquidity_nasdaq", "sellers_ask", "buyers_bid", "total_bids", "total_asks",
	"highest_bid_price", "lowest_ask_price", "hiive_price", "ez_total_bid_volume",
	"ez_total_ask_volume", "funding_history", "price_history", "synced_at", "updated_at",
}
