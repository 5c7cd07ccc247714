// Package searchclient provides an HTTP client for the company search backend.
package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"companycrm/internal/company"
)

// Filters holds the advanced-search fields. Empty fields are not sent.
type Filters struct {
	Name                 string `json:"name,omitempty" form:"name"`
	Sector               string `json:"sector,omitempty" form:"sector"`
	Valuation            string `json:"valuation,omitempty" form:"valuation"`
	Website              string `json:"website,omitempty" form:"website"`
	Investors            string `json:"investors,omitempty" form:"investors"`
	TotalFunding         string `json:"total_funding,omitempty" form:"total_funding"`
	SinarmasInterest     string `json:"sinarmas_interest,omitempty" form:"sinarmas_interest"`
	ShareTransferAllowed string `json:"share_transfer_allowed,omitempty" form:"share_transfer_allowed"`
}

// Values returns the non-empty filters as query parameters.
func (f Filters) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	set("name", f.Name)
	set("sector", f.Sector)
	set("valuation", f.Valuation)
	set("website", f.Website)
	set("investors", f.Investors)
	set("total_funding", f.TotalFunding)
	set("sinarmas_interest", f.SinarmasInterest)
	set("share_transfer_allowed", f.ShareTransferAllowed)
	return v
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return len(f.Values()) == 0
}

// TransportError is returned when the backend cannot be reached or answers
// with a non-2xx status or an unreadable body.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface with a message fit for end users.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed: search backend returned status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: search backend unavailable: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s failed: search backend unavailable", e.Op)
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to the search backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new search backend client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Search runs a semantic search. A non-positive limit leaves the backend default.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]company.CompanyRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return c.get(ctx, "search", "/search", params)
}

// AdvancedSearch runs a filtered search with the non-empty filters only.
func (c *Client) AdvancedSearch(ctx context.Context, filters Filters) ([]company.CompanyRecord, error) {
	return c.get(ctx, "advanced search", "/advanced-search", filters.Values())
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values) ([]company.CompanyRecord, error) {
	target := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	var records []company.CompanyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if records == nil {
		records = []company.CompanyRecord{}
	}
	return records, nil
}
