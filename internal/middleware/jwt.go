package middleware

import (
	"strings"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/service"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type JWTMiddleware struct {
	verifier service.TokenVerifier
}

func NewJWTMiddleware(verifier service.TokenVerifier) *JWTMiddleware {
	return &JWTMiddleware{verifier: verifier}
}

// RequireAuth admits requests carrying a valid access token. A missing
// token is rejected with 401, an invalid or expired one with 403. No store
// lookup happens here.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		raw, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			logger.WarnWithContext(ctx, "Missing bearer token").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Log()
			abortWithError(c, apperrors.ErrNoToken)
			return
		}

		claims, err := m.verifier.ParseAccessToken(raw)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid or expired token").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Err(err).
				Log()
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(constants.GinKeyUserID, claims.Subject)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(ctx, claims.Subject))
		c.Next()
	}
}

// UserID returns the subject attached by RequireAuth.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.GinKeyUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// bearerToken extracts the token segment. A header without a token, or with
// a different scheme, counts as no token.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
