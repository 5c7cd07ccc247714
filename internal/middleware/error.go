package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "companycrm/internal/errors"
	"companycrm/internal/logger"
)

// ErrorHandler converts the last error attached to the gin context into the
// JSON error envelope. Internal causes are logged with the request ID and
// never returned to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			logger.Get().Errorw("unexpected error",
				"request_id", c.GetString(RequestIDKey),
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			writeAppError(c, apperrors.ErrInternalServer)
			return
		}

		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"request_id", c.GetString(RequestIDKey),
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		writeAppError(c, appErr)
	}
}

func writeAppError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error": gin.H{"code": err.Code, "message": err.Message},
	})
}

func abortWithAppError(c *gin.Context, err *apperrors.AppError) {
	c.Abort()
	writeAppError(c, err)
}
