package repository

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *apperrors.DomainError
	}{
		{
			name: "email unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_users_email"},
			want: apperrors.ErrEmailExists,
		},
		{
			name: "username unique violation",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_users_username"}),
			want: apperrors.ErrUsernameExists,
		},
		{
			name: "employee email unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_employees_email"},
			want: apperrors.ErrEmailExists,
		},
		{
			name: "unknown constraint",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_pkey"},
			want: apperrors.ErrInternal,
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: pgerrcode.NotNullViolation},
			want: apperrors.ErrInternal,
		},
		{
			name: "connection error",
			err:  errors.New("dial tcp: connection refused"),
			want: apperrors.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateWriteError(tt.err), tt.want)
		})
	}
}

func TestTranslateReadError(t *testing.T) {
	assert.ErrorIs(t, translateReadError(gorm.ErrRecordNotFound, apperrors.ErrUserNotFound), apperrors.ErrUserNotFound)
	assert.ErrorIs(t, translateReadError(errors.New("timeout"), apperrors.ErrUserNotFound), apperrors.ErrInternal)
}
