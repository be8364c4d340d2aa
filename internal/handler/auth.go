package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Register(ctx context.Context, version string, attrs map[string]any) (*dto.Resource, error)
	Login(ctx context.Context, attrs map[string]any) (*dto.LoginResult, error)
}

// CookieOptions controls the refresh-token cookie.
type CookieOptions struct {
	Secure bool
	Domain string
}

type AuthHandler struct {
	auth   Authenticator
	cookie CookieOptions
}

func NewAuthHandler(auth Authenticator, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// Register handles POST /api/:version/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "Register")
	version := c.Param("version")

	user, err := h.auth.Register(ctx, version, middleware.Attributes(c))
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("version", version).
			Err(err).
			Log()
		writeError(c, err)
		return
	}

	writeDocument(c, http.StatusCreated, dto.Document{Data: user})
}

// Login handles POST /api/:version/auth/login. The refresh token travels only
// in the cookie; the body carries the access token.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "Login")

	result, err := h.auth.Login(ctx, middleware.Attributes(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		constants.CookieRefreshToken,
		result.RefreshToken,
		constants.RefreshTokenExpiry,
		constants.CookiePath,
		h.cookie.Domain,
		h.cookie.Secure,
		true,
	)

	userRef := dto.ResourceIdentifier{Type: constants.ResourceTypeUsers, ID: result.UserID}
	writeDocument(c, http.StatusOK, dto.Document{
		Data: &dto.Resource{
			Type:       constants.ResourceTypeTokens,
			ID:         result.UserID,
			Attributes: dto.TokenAttributes{AccessToken: result.AccessToken},
			Relationships: map[string]dto.Relationship{
				"user": {Data: userRef},
			},
		},
		Included: []dto.Resource{{
			Type:       userRef.Type,
			ID:         userRef.ID,
			Attributes: dto.IncludedUserAttributes{Username: result.Username},
		}},
	})
}
