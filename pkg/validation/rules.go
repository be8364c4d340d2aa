package validation

import (
	"math"
	"strings"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/go-playground/validator/v10"
)

// Custom validator tags.
const (
	TagPasswordChars = "password_chars"
	TagInteger       = "integer"
)

// NewValidator returns a validator with the service's custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, TagPasswordChars, passwordChars)
	mustRegister(v, TagInteger, integer)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// passwordChars requires at least one digit and one symbol from
// constants.PasswordSymbols.
func passwordChars(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.ContainsAny(s, "0123456789") && strings.ContainsAny(s, constants.PasswordSymbols)
}

// integer accepts whole numbers that convert to int without overflow.
func integer(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.CanFloat() {
		return f.CanInt() || (f.CanUint() && f.Uint() <= math.MaxInt)
	}
	return fitsInt(f.Float())
}

func fitsInt(x float64) bool {
	return x == math.Trunc(x) && x >= float64(math.MinInt) && x < float64(math.MaxInt)
}
