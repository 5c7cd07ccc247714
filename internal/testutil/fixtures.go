package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"companycrm/internal/company"
	"companycrm/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// SampleFundingHistory is a funding history with two rounds in 2021, one in
// 2022 and a totals row.
const SampleFundingHistory = `[
	{"Date of Financing":"1/5/2021","Total Financing Size":"$10,000,000","Share Class":"Series A","Issue Price":"$1.20"},
	{"Date of Financing":"6/1/2021","Total Financing Size":"$5,000,000","Share Class":"Series A-1"},
	{"Date of Financing":"3/3/2022","Total Financing Size":"$20,000,000","Share Class":"Series B"},
	{"Share Class":"Totals","Total Financing Size":"$35,000,000"}
]`

// SamplePriceHistory is a three point price series.
const SamplePriceHistory = `[{"name":"2023-01","price":10},{"name":"2023-06","price":8},{"name":"2024-01","price":12.5}]`

// NewTestRecord builds a record with a unique name, a sector and sample
// history fields.
func NewTestRecord(sector string) company.CompanyRecord {
	return company.CompanyRecord{
		Fields: company.Fields{
			Name:      company.StringPtr(fmt.Sprintf("Company %d", nextID())),
			Sector:    company.StringPtr(sector),
			Valuation: company.StringPtr("$1.2B"),
			Website:   company.StringPtr("https://example.com"),
		},
		FundingHistory: company.StringPtr(SampleFundingHistory),
		PriceHistory:   company.StringPtr(SamplePriceHistory),
	}
}

// CreateTestCompany stores a snapshot row built from NewTestRecord.
func CreateTestCompany(t *testing.T, db *gorm.DB, sector string) *models.Company {
	t.Helper()
	return CreateTestCompanyFromRecord(t, db, NewTestRecord(sector))
}

// CreateTestCompanyFromRecord stores the given record as a snapshot row.
func CreateTestCompanyFromRecord(t *testing.T, db *gorm.DB, record company.CompanyRecord) *models.Company {
	t.Helper()

	c := models.NewCompany(record, time.Now().UTC())
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return &c
}
