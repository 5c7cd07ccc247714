package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"companycrm/internal/company"
	apperrors "companycrm/internal/errors"
	"companycrm/internal/searchclient"
)

func setupSearchRouter(handler *SearchHandler) *gin.Engine {
	r := gin.New()
	r.GET("/search", handler.Search)
	r.GET("/advanced-search", handler.AdvancedSearch)
	return r
}

func TestSearchHandler_Search(t *testing.T) {
	t.Run("returns 200 with view models", func(t *testing.T) {
		var gotQuery string
		var gotLimit int
		svc := &mockSearchService{
			searchFn: func(_ context.Context, q string, limit int) ([]company.CompanyViewModel, error) {
				gotQuery, gotLimit = q, limit
				return []company.CompanyViewModel{namedView("Stripe")}, nil
			},
		}
		r := setupSearchRouter(NewSearchHandler(svc))

		rec := doRequest(r, "GET", "/search?q=payments", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotQuery != "payments" || gotLimit != DefaultSearchLimit {
			t.Errorf("service called with %q/%d", gotQuery, gotLimit)
		}
		result := parseJSONArray(t, rec)
		if len(result) != 1 || result[0]["name"] != "Stripe" {
			t.Fatalf("unexpected body: %v", result)
		}
		if _, ok := result[0]["funding_totals"]; !ok {
			t.Error("funding_totals must always be present")
		}
		if rounds, ok := result[0]["funding_rounds"].([]interface{}); !ok || len(rounds) != 0 {
			t.Errorf("expected empty funding_rounds array, got %v", result[0]["funding_rounds"])
		}
	})

	t.Run("returns empty array when nothing matches", func(t *testing.T) {
		r := setupSearchRouter(NewSearchHandler(&mockSearchService{}))

		rec := doRequest(r, "GET", "/search?q=nothing&limit=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("returns 400 on missing query", func(t *testing.T) {
		r := setupSearchRouter(NewSearchHandler(&mockSearchService{}))

		rec := doRequest(r, "GET", "/search", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on out of range limit", func(t *testing.T) {
		r := setupSearchRouter(NewSearchHandler(&mockSearchService{}))

		for _, limit := range []string{"0", "51", "-3", "abc"} {
			rec := doRequest(r, "GET", "/search?q=x&limit="+limit, "")
			if limit == "0" {
				// zero is treated as omitted
				if rec.Code != http.StatusOK {
					t.Errorf("limit=0: expected 200, got %d", rec.Code)
				}
				continue
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("limit=%s: expected 400, got %d", limit, rec.Code)
			}
		}
	})

	t.Run("returns 502 when backend is down", func(t *testing.T) {
		svc := &mockSearchService{
			searchFn: func(context.Context, string, int) ([]company.CompanyViewModel, error) {
				return nil, apperrors.WithMessage(apperrors.ErrSearchBackendUnavailable,
					"Search backend is unavailable: search failed: search backend returned status 503")
			},
		}
		r := setupSearchRouter(NewSearchHandler(svc))

		rec := doRequest(r, "GET", "/search?q=x", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "SEARCH_BACKEND_UNAVAILABLE")
		msg := result["error"].(map[string]interface{})["message"].(string)
		if !strings.Contains(msg, "503") {
			t.Errorf("expected readable message, got %q", msg)
		}
	})
}

func TestSearchHandler_AdvancedSearch(t *testing.T) {
	t.Run("passes filters", func(t *testing.T) {
		var got searchclient.Filters
		svc := &mockSearchService{
			advancedSearchFn: func(_ context.Context, f searchclient.Filters) ([]company.CompanyViewModel, error) {
				got = f
				return []company.CompanyViewModel{namedView("Plaid")}, nil
			},
		}
		r := setupSearchRouter(NewSearchHandler(svc))

		rec := doRequest(r, "GET", "/advanced-search?sector=Fintech&valuation=%24500M&share_transfer_allowed=yes", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Sector != "Fintech" || got.Valuation != "$500M" || got.ShareTransferAllowed != "yes" {
			t.Errorf("unexpected filters: %+v", got)
		}
		if got.Name != "" || got.TotalFunding != "" {
			t.Errorf("unset filters should stay empty: %+v", got)
		}
	})

	t.Run("forwards free-form filter text unchanged", func(t *testing.T) {
		tests := []struct {
			query string
			want  string
			check func(searchclient.Filters) string
		}{
			{"share_transfer_allowed=Yes%20-%20ROFR", "Yes - ROFR", func(f searchclient.Filters) string { return f.ShareTransferAllowed }},
			{"share_transfer_allowed=Unknown", "Unknown", func(f searchclient.Filters) string { return f.ShareTransferAllowed }},
			{"valuation=over%201B", "over 1B", func(f searchclient.Filters) string { return f.Valuation }},
			{"valuation=%3E%241B", ">$1B", func(f searchclient.Filters) string { return f.Valuation }},
			{"total_funding=N%2FA", "N/A", func(f searchclient.Filters) string { return f.TotalFunding }},
		}
		for _, tt := range tests {
			var got searchclient.Filters
			svc := &mockSearchService{
				advancedSearchFn: func(_ context.Context, f searchclient.Filters) ([]company.CompanyViewModel, error) {
					got = f
					return []company.CompanyViewModel{}, nil
				},
			}
			r := setupSearchRouter(NewSearchHandler(svc))

			rec := doRequest(r, "GET", "/advanced-search?"+tt.query, "")

			if rec.Code != http.StatusOK {
				t.Fatalf("%s: expected 200, got %d: %s", tt.query, rec.Code, rec.Body.String())
			}
			if v := tt.check(got); v != tt.want {
				t.Errorf("%s: forwarded %q, want %q", tt.query, v, tt.want)
			}
		}
	})

	t.Run("returns 400 on control characters", func(t *testing.T) {
		r := setupSearchRouter(NewSearchHandler(&mockSearchService{}))

		rec := doRequest(r, "GET", "/advanced-search?sector=Fin%00tech", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
