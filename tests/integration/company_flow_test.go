package integration

import (
	"net/http"
	"testing"
)

const stripeFunding = `[
	{"Date of Financing":"03/15/2021","Share Class":"Series H","Total Financing Size":"$600,000,000"},
	{"Date of Financing":"2021-09-01","Share Class":"Series I","Total Financing Size":"$250,000,000"},
	{"Date of Financing":"2023-03-14","Share Class":"Series I","Total Financing Size":"$6,500,000,000"},
	{"Share Class":"Totals","Total Financing Size":"$7,350,000,000"}
]`

const stripePrices = `[{"name":"Q1","price":20},{"name":"Q2","price":27.5},{"name":"Q3","price":25}]`

func sheetRows() [][]string {
	return [][]string{
		{"Company", "Sector", "Valuation", "Funding History (JSON)", "Price History (JSON)"},
		{"Stripe", "Fintech", "$50B", stripeFunding, stripePrices},
		{"Canva", "Design", "$26B", "not json", ""},
		{"", "Orphan", "", "", ""},
	}
}

func TestCompanyFlow_SyncThenBrowse(t *testing.T) {
	app := setupApp(t, sheetServer(t, sheetRows()), searchServer(t, "[]", "[]"))

	// Step 1: Sync requires the pipeline key
	rec := app.request("POST", "/api/v1/pipeline/sync", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 2: Sync the sheet into the snapshot store
	rec = app.request("POST", "/api/v1/pipeline/sync", testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 syncing, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["upserted"].(float64) != 2 {
		t.Errorf("expected 2 upserted, got %v", result["upserted"])
	}
	if result["invalid_json"].(float64) != 1 {
		t.Errorf("expected 1 invalid JSON field, got %v", result["invalid_json"])
	}

	// Step 3: List is ordered by name
	rec = app.request("GET", "/api/v1/companies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d: %s", rec.Code, rec.Body.String())
	}
	page := parseJSON(t, rec)
	data := page["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(data))
	}
	if data[0].(map[string]interface{})["name"] != "Canva" {
		t.Errorf("expected Canva first, got %v", data[0].(map[string]interface{})["name"])
	}

	// Step 4: Detail view carries normalized funding and prices
	rec = app.request("GET", "/api/v1/companies/stripe", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for detail, got %d: %s", rec.Code, rec.Body.String())
	}
	detail := parseJSON(t, rec)
	if rounds := detail["funding_rounds"].([]interface{}); len(rounds) != 3 {
		t.Errorf("expected 3 funding rounds, got %d", len(rounds))
	}
	totals := detail["funding_totals"].(map[string]interface{})
	if totals["total_financing_size"] != "$7,350,000,000" {
		t.Errorf("unexpected totals row: %v", totals)
	}
	byYear := detail["funding_by_year"].([]interface{})
	if len(byYear) != 2 {
		t.Fatalf("expected 2 funding years, got %v", byYear)
	}
	first := byYear[0].(map[string]interface{})
	if first["year"] != "2021" || first["amount"].(float64) != 850 {
		t.Errorf("expected 2021 = 850M, got %v", first)
	}
	if series := detail["price_series"].([]interface{}); len(series) != 3 {
		t.Errorf("expected 3 price points, got %d", len(series))
	}

	// Step 5: A company with a malformed history still renders
	rec = app.request("GET", "/api/v1/companies/Canva", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for Canva, got %d: %s", rec.Code, rec.Body.String())
	}
	canva := parseJSON(t, rec)
	if rounds := canva["funding_rounds"].([]interface{}); len(rounds) != 0 {
		t.Errorf("expected no funding rounds, got %v", rounds)
	}
	if canva["funding_totals"] != nil {
		t.Errorf("expected null totals, got %v", canva["funding_totals"])
	}

	// Step 6: Unknown company
	rec = app.request("GET", "/api/v1/companies/Nobody", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCompanyFlow_ResyncIsIdempotent(t *testing.T) {
	app := setupApp(t, sheetServer(t, sheetRows()), searchServer(t, "[]", "[]"))

	for i := 0; i < 2; i++ {
		rec := app.request("POST", "/api/v1/pipeline/sync", testAPIKey)
		if rec.Code != http.StatusOK {
			t.Fatalf("sync %d: expected 200, got %d: %s", i+1, rec.Code, rec.Body.String())
		}
	}

	var count int64
	app.DB.Table("companies").Count(&count)
	if count != 2 {
		t.Errorf("expected 2 companies after resync, got %d", count)
	}
}

func TestSearchFlow(t *testing.T) {
	backend := searchServer(t,
		`[{"name":"Stripe","sector":"Fintech","funding_history":"[{\"Date of Financing\":\"2021\",\"Total Financing Size\":\"$1,000,000,000\"}]"},{"name":"Plaid","sector":null}]`,
		"")
	app := setupApp(t, nil, backend)

	rec := app.request("GET", "/api/v1/search?q=payments&limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	views := parseJSONArray(t, rec)
	if len(views) != 2 {
		t.Fatalf("expected 2 results, got %d", len(views))
	}
	if _, ok := views[1]["sector"]; ok {
		t.Errorf("null sector should be absent, got %v", views[1]["sector"])
	}
	byYear := views[0]["funding_by_year"].([]interface{})
	if len(byYear) != 1 || byYear[0].(map[string]interface{})["amount"].(float64) != 1000 {
		t.Errorf("expected 2021 = 1000M, got %v", byYear)
	}

	rec = app.request("GET", "/api/v1/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without query, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/advanced-search?sector=Fintech", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 from failing backend, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/pipeline/sync", testAPIKey)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a sheet source, got %d", rec.Code)
	}
}
