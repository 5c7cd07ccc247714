// Package sheets reads company rows from the Google Sheet that feeds the
// snapshot store.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"companycrm/internal/company"
)

// RowSource yields every company row of the source sheet.
type RowSource interface {
	Rows(ctx context.Context) ([]company.CompanyRecord, error)
}

// columns maps sheet headers onto record fields. Headers are compared after
// trimming surrounding whitespace; several sheet headers carry a trailing space.
var columns = map[string]func(r *company.CompanyRecord) **string{
	"Company":                          func(r *company.CompanyRecord) **string { return &r.Name },
	"Website":                          func(r *company.CompanyRecord) **string { return &r.Website },
	"Latest Funding":                   func(r *company.CompanyRecord) **string { return &r.LatestFunding },
	"Latest Funding Date":              func(r *company.CompanyRecord) **string { return &r.LatestFundingDate },
	"Total Funding":                    func(r *company.CompanyRecord) **string { return &r.TotalFunding },
	"Investors":                        func(r *company.CompanyRecord) **string { return &r.Investors },
	"Valuation":                        func(r *company.CompanyRecord) **string { return &r.Valuation },
	"Overview (Product, Model & Moat)": func(r *company.CompanyRecord) **string { return &r.Overview },
	"Sector":                           func(r *company.CompanyRecord) **string { return &r.Sector },
	"Sinarmas Interest":                func(r *company.CompanyRecord) **string { return &r.SinarmasInterest },
	"Implied Valuation":                func(r *company.CompanyRecord) **string { return &r.ImpliedValuation },
	"Share transfer allowed ?":         func(r *company.CompanyRecord) **string { return &r.ShareTransferAllowed },
	"Liquidity EZ":                     func(r *company.CompanyRecord) **string { return &r.LiquidityEZ },
	"Liquidity Forge":                  func(r *company.CompanyRecord) **string { return &r.LiquidityForge },
	"Liquidity Nasdaq":                 func(r *company.CompanyRecord) **string { return &r.LiquidityNasdaq },
	"Summary":                          func(r *company.CompanyRecord) **string { return &r.Summary },
	"Sellers Ask":                      func(r *company.CompanyRecord) **string { return &r.SellersAsk },
	"Buyers Bid":                       func(r *company.CompanyRecord) **string { return &r.BuyersBid },
	"Total Bids":                       func(r *company.CompanyRecord) **string { return &r.TotalBids },
	"Total Asks":                       func(r *company.CompanyRecord) **string { return &r.TotalAsks },
	"Highest Bid Price":                func(r *company.CompanyRecord) **string { return &r.HighestBidPrice },
	"Lowest Ask Price":                 func(r *company.CompanyRecord) **string { return &r.LowestAskPrice },
	"Price History (JSON)":             func(r *company.CompanyRecord) **string { return &r.PriceHistory },
	"Funding History (JSON)":           func(r *company.CompanyRecord) **string { return &r.FundingHistory },
	"Hiive Price":                      func(r *company.CompanyRecord) **string { return &r.HiivePrice },
	"EZ Total Bid Volume":              func(r *company.CompanyRecord) **string { return &r.EZTotalBidVolume },
	"EZ Total Ask Volume":              func(r *company.CompanyRecord) **string { return &r.EZTotalAskVolume },
}

// Client reads a worksheet through the Sheets API.
type Client struct {
	service   *gsheets.Service
	sheetID   string
	worksheet string
}

// NewClient authenticates with a service account credentials file.
func NewClient(ctx context.Context, credentialsPath, sheetID, worksheet string) (*Client, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gsheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return NewClientWithService(svc, sheetID, worksheet), nil
}

// NewClientWithService wraps an existing Sheets service.
func NewClientWithService(svc *gsheets.Service, sheetID, worksheet string) *Client {
	return &Client{service: svc, sheetID: sheetID, worksheet: worksheet}
}

// Rows fetches the worksheet and maps each data row onto a record.
func (c *Client) Rows(ctx context.Context) ([]company.CompanyRecord, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.sheetID, c.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", c.worksheet, err)
	}
	return RecordsFromValues(resp.Values), nil
}

// RecordsFromValues maps a header row plus data rows onto records. Unknown
// headers are ignored, blank cells are left absent, and when the sheet has no
// Summary column the overview is used as the summary.
func RecordsFromValues(values [][]interface{}) []company.CompanyRecord {
	if len(values) == 0 {
		return []company.CompanyRecord{}
	}

	header := make([]func(r *company.CompanyRecord) **string, len(values[0]))
	hasSummary := false
	for i, cell := range values[0] {
		name := strings.TrimSpace(fmt.Sprint(cell))
		header[i] = columns[name]
		if name == "Summary" {
			hasSummary = true
		}
	}

	records := make([]company.CompanyRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		var r company.CompanyRecord
		blank := true
		for i, cell := range row {
			if i >= len(header) || header[i] == nil || cell == nil {
				continue
			}
			s := strings.TrimSpace(fmt.Sprint(cell))
			if s == "" {
				continue
			}
			*header[i](&r) = &s
			blank = false
		}
		if blank {
			continue
		}
		if !hasSummary && r.Overview != nil {
			summary := *r.Overview
			r.Summary = &summary
		}
		records = append(records, r)
	}
	return records
}
