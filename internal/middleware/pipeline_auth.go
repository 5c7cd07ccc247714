package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "companycrm/internal/errors"
	"companycrm/internal/logger"
)

// PipelineKeyHeader carries the shared secret for the sync endpoints.
const PipelineKeyHeader = "X-API-Key"

// PipelineAuthMiddleware admits only callers presenting the configured
// pipeline key. An unset key disables the sync routes outright.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	want := []byte(apiKey)
	return func(c *gin.Context) {
		if len(want) == 0 {
			abortWithAppError(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		got := []byte(c.GetHeader(PipelineKeyHeader))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			logger.Get().Warnw("rejected pipeline request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"key_present", len(got) > 0,
			)
			abortWithAppError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
