package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companycrm/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func syncRouter(configuredKey string) *gin.Engine {
	r := gin.New()
	pipeline := r.Group("/pipeline", PipelineAuthMiddleware(configuredKey))
	pipeline.POST("/sync", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"upserted": 0})
	})
	return r
}

func postSync(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pipeline/sync", http.NoBody)
	if key != "" {
		req.Header.Set(PipelineKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPipelineAuthMiddleware(t *testing.T) {
	const key = "sheet-sync-secret"

	tests := []struct {
		name       string
		configured string
		presented  string
		wantStatus int
		wantCode   string
	}{
		{"matching key reaches handler", key, key, http.StatusOK, ""},
		{"wrong key", key, "guess", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"no key", key, "", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"prefix of key", key, "sheet-sync", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"key with trailing space", key, key + " ", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"sync disabled", "", "anything", http.StatusServiceUnavailable, "PIPELINE_NOT_CONFIGURED"},
		{"sync disabled and no key", "", "", http.StatusServiceUnavailable, "PIPELINE_NOT_CONFIGURED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSync(syncRouter(tt.configured), tt.presented)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			if tt.wantCode == "" {
				assert.Contains(t, body, "upserted")
				return
			}
			errObj, ok := body["error"].(map[string]interface{})
			require.True(t, ok, "expected error object, got %v", body)
			assert.Equal(t, tt.wantCode, errObj["code"])
		})
	}
}
