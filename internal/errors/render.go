package errors

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
)

var titles = map[string]string{
	"INVALID_INPUT":       constants.TitleBadRequest,
	"INVALID_CREDENTIALS": constants.TitleAuthFailed,
	"NO_TOKEN":            constants.TitleAuthenticationError,
	"INVALID_TOKEN":       constants.TitleAuthorizationError,
	"USER_NOT_FOUND":      constants.TitleNotFound,
	"EMPLOYEE_NOT_FOUND":  constants.TitleNotFound,
	"RATE_LIMITED":        constants.TitleTooManyRequests,
	"SERVICE_UNAVAILABLE": constants.TitleServiceUnavailable,
}

var duplicateFields = map[string]string{
	"EMAIL_EXISTS":    "email",
	"USERNAME_EXISTS": "username",
}

// Render converts err into an HTTP status and its JSON:API error document.
// Errors without a public mapping collapse into the generic server error.
func Render(err error) (int, dto.ErrorDocument) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr.HasErrors() {
		return http.StatusBadRequest, dto.ErrorDocument{Errors: fieldErrorObjects(validationErr.Fields)}
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if field, ok := duplicateFields[domainErr.Code]; ok {
			return http.StatusBadRequest, dto.ErrorDocument{Errors: fieldErrorObjects([]FieldError{{Field: field, Message: domainErr.Message}})}
		}
		if title, ok := titles[domainErr.Code]; ok {
			status := domainErrorToHTTPStatus(domainErr)
			return status, single(status, title, domainErr.Message)
		}
	}

	return http.StatusInternalServerError, single(http.StatusInternalServerError, constants.TitleServerError, ErrInternal.Message)
}

func single(status int, title, detail string) dto.ErrorDocument {
	return dto.ErrorDocument{Errors: []dto.ErrorObject{{
		Status: strconv.Itoa(status),
		Title:  title,
		Detail: detail,
	}}}
}

func fieldErrorObjects(fields []FieldError) []dto.ErrorObject {
	objs := make([]dto.ErrorObject, 0, len(fields))
	for _, f := range fields {
		objs = append(objs, dto.ErrorObject{
			Status: strconv.Itoa(http.StatusBadRequest),
			Title:  constants.TitleValidationError,
			Detail: f.Message,
			Source: &dto.ErrorSource{Pointer: constants.AttributePointerPrefix + f.Field},
		})
	}
	return objs
}
