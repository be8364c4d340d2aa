package middleware

import (
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationMiddleware propagates X-Correlation-ID (or X-Request-ID) and
// mints a uuid when the caller sent neither.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(constants.HeaderXCorrelationID)
		if correlationID == "" {
			correlationID = c.GetHeader(constants.HeaderXRequestID)
		}
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		c.Header(constants.HeaderXCorrelationID, correlationID)
		c.Request = c.Request.WithContext(ctxutil.WithCorrelationID(c.Request.Context(), correlationID))
		c.Next()
	}
}

// ContextMiddleware seeds the request context with what the context logger
// reads: user agent, client ip, request id, start time and API version.
func ContextMiddleware(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, c.FullPath())
		ctx = ctxutil.WithClientIP(ctx, c.ClientIP())
		if version := c.Param("version"); version != "" {
			ctx = ctxutil.WithAPIVersion(ctx, version)
		}
		c.Request = c.Request.WithContext(ctx)

		logger.DebugWithContext(ctx, "Request started").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Log()

		c.Next()

		logger.InfoWithContext(ctx, "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			StatusCode(c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()

		if d := ctxutil.GetDuration(ctx); d > 2*time.Second {
			logger.WarnWithContext(ctx, "Slow request detected").
				String("path", c.Request.URL.Path).
				Duration(d).
				Log()
		}
	}
}
