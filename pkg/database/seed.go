package database

import (
	"context"
	"errors"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/Payphone-Digital/auth-service/pkg/validation"
)

// SeedAccount is a development login created at startup.
type SeedAccount struct {
	Username string
	Email    string
	Password string
}

// UserCreator is the store path seeded users go through, so the password is
// hashed exactly like a registration.
type UserCreator interface {
	Create(ctx context.Context, user *model.User) error
}

// Seed checks account against schema, then creates it unless a user with the
// same username or email already exists. It reports whether a row was
// inserted.
func Seed(ctx context.Context, users UserCreator, schema validation.Schema, account SeedAccount) (bool, error) {
	values, err := schema.Validate(map[string]any{
		"username": account.Username,
		"email":    account.Email,
		"password": account.Password,
	})
	if err != nil {
		return false, err
	}

	err = users.Create(ctx, &model.User{
		Username: values.String("username"),
		Email:    values.String("email"),
		Password: values.String("password"),
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrEmailExists), errors.Is(err, apperrors.ErrUsernameExists):
		return false, nil
	default:
		return false, err
	}
}
