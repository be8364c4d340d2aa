package service

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/Payphone-Digital/auth-service/pkg/validation"
	"go.uber.org/zap"
)

// UserStore is the part of the credential store the auth flows need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	users    UserStore
	hasher   PasswordHasher
	tokens   TokenIssuer
	registry *validation.Registry

	// dummyHash is verified against when the email is unknown so both
	// failure paths pay for one bcrypt comparison.
	dummyHash string
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, registry *validation.Registry) (*AuthService, error) {
	dummy, err := hasher.Hash("unknown-user-placeholder-1!")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		registry:  registry,
		dummyHash: dummy,
	}, nil
}

// Register validates attrs against the schema of version and creates the
// user. The returned resource never carries the password.
func (s *AuthService) Register(ctx context.Context, version string, attrs map[string]any) (*dto.Resource, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")

	schema := s.registry.Registration(ctx, version)
	values, err := schema.Validate(attrs)
	if err != nil {
		logger.InfoWithContext(ctx, "Registration rejected by schema").
			String("schema", schema.Name()).
			Err(err).
			Log()
		return nil, err
	}

	user := &model.User{
		Username: values.String("username"),
		Email:    values.String("email"),
		Password: values.String("password"),
	}
	withBirthCity := schema.Has("birthCity")
	if withBirthCity {
		user.BirthCity = values.OptionalString("birthCity")
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) || errors.Is(err, apperrors.ErrUsernameExists) {
			logger.InfoWithContext(ctx, "Registration rejected as duplicate").
				Err(err).
				Log()
			return nil, err
		}
		logger.ErrorWithContext(ctx, "Failed to register user").
			Err(err).
			Log()
		return nil, err
	}

	logger.InfoWithContext(ctx, "User registered").
		Uint("user_id", user.ID).
		String("schema", schema.Name()).
		Log()

	attributes := dto.UserAttributes{Username: user.Username, Email: user.Email}
	if withBirthCity {
		attributes.BirthCity = user.BirthCity
	}
	return &dto.Resource{
		Type:       constants.ResourceTypeUsers,
		ID:         user.PublicID(),
		Attributes: attributes,
	}, nil
}

// Login checks the credentials in attrs and issues a token pair. An unknown
// email and a wrong password return the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, attrs map[string]any) (*dto.LoginResult, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	values, err := s.registry.Login().Validate(attrs)
	if err != nil {
		return nil, err
	}
	email := values.String("email")
	password := values.String("password")

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		s.hasher.Verify(password, s.dummyHash)
		logger.LogAuth("", "login", false, zap.String("reason", "unknown_email"))
		return nil, apperrors.ErrInvalidCredentials
	case err != nil:
		logger.ErrorWithContext(ctx, "Failed to look up user for login").
			Err(err).
			Log()
		return nil, err
	}

	if !s.hasher.Verify(password, user.Password) {
		logger.LogAuth(user.PublicID(), "login", false, zap.String("reason", "password_mismatch"))
		return nil, apperrors.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(user.PublicID())
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue access token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.PublicID())
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.LogAuth(user.PublicID(), "login", true)

	return &dto.LoginResult{
		UserID:       user.PublicID(),
		Username:     user.Username,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
