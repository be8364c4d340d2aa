package repository

import (
	"errors"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var uniqueIndexErrors = map[string]*apperrors.DomainError{
	model.IndexUsersUsername:  apperrors.ErrUsernameExists,
	model.IndexUsersEmail:     apperrors.ErrEmailExists,
	model.IndexEmployeesEmail: apperrors.ErrEmailExists,
}

// translateWriteError turns a unique violation into the domain error for the
// offending column. Anything else is an internal error.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if domainErr, ok := uniqueIndexErrors[pgErr.ConstraintName]; ok {
			return apperrors.WrapError(domainErr, err)
		}
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

func translateReadError(err error, notFound *apperrors.DomainError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}
