package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"companycrm/internal/company"
	"companycrm/internal/handlers"
	"companycrm/internal/logger"
	"companycrm/internal/middleware"
	"companycrm/internal/models"
	"companycrm/internal/searchclient"
	"companycrm/internal/services"
	"companycrm/internal/sheets"
	"companycrm/internal/validator"
)

const testAPIKey = "pipeline-test-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:companydb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// sheetServer serves a fixed worksheet through a fake Sheets API endpoint.
func sheetServer(t *testing.T, rows [][]string) *sheets.Client {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"range":          "Sheet1!A1:Z100",
		"majorDimension": "ROWS",
		"values":         rows,
	})
	if err != nil {
		t.Fatalf("failed to encode sheet: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	svc, err := gsheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("failed to create sheets service: %v", err)
	}
	return sheets.NewClientWithService(svc, "sheet-test", "Sheet1")
}

// searchServer answers /search and /advanced-search with fixed bodies.
func searchServer(t *testing.T, searchBody, advancedBody string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(searchBody))
		case "/advanced-search":
			if advancedBody == "" {
				http.Error(w, "backend down", http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(advancedBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T, source sheets.RowSource, backendURL string) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	assembler := company.NewAssembler(nil)

	// Services
	companyService := services.NewCompanyService(db, assembler)
	searchService := services.NewSearchService(searchclient.NewClient(backendURL, nil), assembler)
	syncService := services.NewSyncService(source, companyService)

	// Handlers
	searchHandler := handlers.NewSearchHandler(searchService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	pipelineHandler := handlers.NewPipelineHandler(syncService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.GET("/search", searchHandler.Search)
	v1.GET("/advanced-search", searchHandler.AdvancedSearch)
	v1.GET("/companies", companyHandler.ListCompanies)
	v1.GET("/companies/:name", companyHandler.GetCompany)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(testAPIKey))
	pipeline.POST("/sync", pipelineHandler.Sync)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice of objects.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
