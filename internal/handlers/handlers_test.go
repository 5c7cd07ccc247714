package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"companycrm/internal/company"
	"companycrm/internal/pagination"
	"companycrm/internal/searchclient"
	"companycrm/internal/services"
	"companycrm/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock services ---

type mockSearchService struct {
	searchFn         func(ctx context.Context, query string, limit int) ([]company.CompanyViewModel, error)
	advancedSearchFn func(ctx context.Context, filters searchclient.Filters) ([]company.CompanyViewModel, error)
}

func (m *mockSearchService) Search(ctx context.Context, query string, limit int) ([]company.CompanyViewModel, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return []company.CompanyViewModel{}, nil
}

func (m *mockSearchService) AdvancedSearch(ctx context.Context, filters searchclient.Filters) ([]company.CompanyViewModel, error) {
	if m.advancedSearchFn != nil {
		return m.advancedSearchFn(ctx, filters)
	}
	return []company.CompanyViewModel{}, nil
}

var _ services.SearchServicer = (*mockSearchService)(nil)

type mockCompanyService struct {
	syncRecordsFn      func(records []company.CompanyRecord) (*services.SyncResult, error)
	listCompaniesFn    func(page pagination.PageRequest) (*pagination.PageResponse[company.CompanyViewModel], error)
	getCompanyByNameFn func(name string) (*company.CompanyViewModel, error)
}

func (m *mockCompanyService) SyncRecords(records []company.CompanyRecord) (*services.SyncResult, error) {
	if m.syncRecordsFn != nil {
		return m.syncRecordsFn(records)
	}
	return &services.SyncResult{Received: len(records)}, nil
}

func (m *mockCompanyService) ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[company.CompanyViewModel], error) {
	if m.listCompaniesFn != nil {
		return m.listCompaniesFn(page)
	}
	resp := pagination.NewPageResponse([]company.CompanyViewModel{}, pagination.PageRequest{Page: 1, PageSize: pagination.DefaultPageSize}, 0)
	return &resp, nil
}

func (m *mockCompanyService) GetCompanyByName(name string) (*company.CompanyViewModel, error) {
	if m.getCompanyByNameFn != nil {
		return m.getCompanyByNameFn(name)
	}
	return &company.CompanyViewModel{}, nil
}

var _ services.CompanyServicer = (*mockCompanyService)(nil)

type mockSyncService struct {
	syncFn func(ctx context.Context) (*services.SyncResult, error)
}

func (m *mockSyncService) Sync(ctx context.Context) (*services.SyncResult, error) {
	if m.syncFn != nil {
		return m.syncFn(ctx)
	}
	return &services.SyncResult{}, nil
}

var _ services.SyncServicer = (*mockSyncService)(nil)

// --- helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func namedView(name string) company.CompanyViewModel {
	return company.NewAssembler(nil).Assemble(company.CompanyRecord{
		Fields: company.Fields{Name: company.StringPtr(name)},
	})
}
