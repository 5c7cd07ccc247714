package services

import (
	"context"

	"companycrm/internal/company"
	"companycrm/internal/pagination"
	"companycrm/internal/searchclient"
)

// SyncResult reports what one snapshot sync did.
type SyncResult struct {
	Received    int `json:"received"`
	Upserted    int `json:"upserted"`
	Skipped     int `json:"skipped"`
	InvalidJSON int `json:"invalid_json"`
}

// CompanyServicer defines the contract for the company snapshot store.
type CompanyServicer interface {
	SyncRecords(records []company.CompanyRecord) (*SyncResult, error)
	ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[company.CompanyViewModel], error)
	GetCompanyByName(name string) (*company.CompanyViewModel, error)
}

// SearchServicer defines the contract for searches proxied to the search backend.
type SearchServicer interface {
	Search(ctx context.Context, query string, limit int) ([]company.CompanyViewModel, error)
	AdvancedSearch(ctx context.Context, filters searchclient.Filters) ([]company.CompanyViewModel, error)
}

// SyncServicer defines the contract for copying the sheet into the snapshot store.
type SyncServicer interface {
	Sync(ctx context.Context) (*SyncResult, error)
}
