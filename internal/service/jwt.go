package service

import (
	"errors"
	"time"

	"github.com/Payphone-Digital/auth-service/config"
	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = constants.AccessTokenExpiry * time.Second
	RefreshTokenTTL = constants.RefreshTokenExpiry * time.Second
)

// Claims is the signed payload of both token types.
type Claims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer issues signed access and refresh tokens for a subject.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
}

// TokenVerifier validates a raw access token and returns its claims.
type TokenVerifier interface {
	ParseAccessToken(raw string) (*Claims, error)
}

// JWTService signs HS256 tokens. Access and refresh tokens use separate
// secrets, so holding one key never lets a caller mint the other type.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	now           func() time.Time
}

type JWTOption func(*JWTService)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) { s.now = now }
}

func NewJWTService(cfg config.JWTConfig, opts ...JWTOption) *JWTService {
	s := &JWTService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JWTService) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, constants.TokenTypeAccess, AccessTokenTTL, s.accessSecret)
}

func (s *JWTService) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, constants.TokenTypeRefresh, RefreshTokenTTL, s.refreshSecret)
}

func (s *JWTService) ParseAccessToken(raw string) (*Claims, error) {
	return s.parse(raw, constants.TokenTypeAccess, s.accessSecret)
}

func (s *JWTService) ParseRefreshToken(raw string) (*Claims, error) {
	return s.parse(raw, constants.TokenTypeRefresh, s.refreshSecret)
}

func (s *JWTService) issue(userID, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	if userID == "" {
		return "", apperrors.WrapError(apperrors.ErrInternal, errors.New("token subject is empty"))
	}

	now := s.now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

func (s *JWTService) parse(raw, tokenType string, secret []byte) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Type != tokenType || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
