package validation

import (
	"context"
	"math"
	"strings"
	"testing"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) []apperrors.FieldError {
	t.Helper()
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestRegistrationV1Valid(t *testing.T) {
	r := NewRegistry()
	values, err := r.Registration(context.Background(), "v1").Validate(map[string]any{
		"username": "alice",
		"email":    "a@x.com",
		"password": "Passw0rd!",
		"isAdmin":  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", values.String("username"))
	assert.Equal(t, "a@x.com", values.String("email"))
	assert.Nil(t, values.OptionalString("birthCity"))
	_, leaked := values["isAdmin"]
	assert.False(t, leaked, "unknown attributes must be dropped")
}

func TestRegistrationV1ReportsEveryViolation(t *testing.T) {
	r := NewRegistry()
	_, err := r.Registration(context.Background(), "v1").Validate(map[string]any{
		"username": "al",
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, []apperrors.FieldError{
		{Field: "username", Message: "Username must be at least 3 characters"},
		{Field: "email", Message: "Invalid email address"},
		{Field: "password", Message: "Password must be at least 8 characters"},
		{Field: "password", Message: "Password must include at least 1 number and 1 special character"},
	}, fieldErrors(t, err))
}

func TestPasswordCharacterRule(t *testing.T) {
	r := NewRegistry()
	schema := r.Registration(context.Background(), "v1")

	tests := []struct {
		password string
		ok       bool
	}{
		{"Passw0rd!", true},
		{"12345678&", true},
		{"Password!", false},
		{"Passw0rdd", false},
		{"Passw0rd?", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			_, err := schema.Validate(map[string]any{
				"username": "alice", "email": "a@x.com", "password": tt.password,
			})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []apperrors.FieldError{
				{Field: "password", Message: "Password must include at least 1 number and 1 special character"},
			}, fieldErrors(t, err))
		})
	}
}

func TestRegistrationV2RequiresBirthCity(t *testing.T) {
	r := NewRegistry()
	schema := r.Registration(context.Background(), "v2")

	_, err := schema.Validate(map[string]any{
		"username": "alice", "email": "a@x.com", "password": "Passw0rd!",
	})
	assert.Equal(t, []apperrors.FieldError{{Field: "birthCity", Message: "Required"}}, fieldErrors(t, err))

	_, err = schema.Validate(map[string]any{
		"username": "alice", "email": "a@x.com", "password": "Passw0rd!", "birthCity": "",
	})
	assert.Equal(t, []apperrors.FieldError{{Field: "birthCity", Message: "Birth city must not be empty"}}, fieldErrors(t, err))

	values, err := schema.Validate(map[string]any{
		"username": "alice", "email": "a@x.com", "password": "Passw0rd!", "birthCity": "New York",
	})
	require.NoError(t, err)
	require.NotNil(t, values.OptionalString("birthCity"))
	assert.Equal(t, "New York", *values.OptionalString("birthCity"))
}

func TestV2ExtendsV1(t *testing.T) {
	r := NewRegistry()
	v1, _ := r.Lookup("v1")
	v2, _ := r.Lookup("v2")

	assert.Equal(t, append(v1.FieldNames(), "birthCity"), v2.FieldNames())
	assert.False(t, v1.Has("birthCity"))
	assert.True(t, v2.Has("birthCity"))
}

func TestUnknownVersionFallsBackToBase(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("v9")
	assert.False(t, ok)

	schema := r.Registration(context.Background(), "v9")
	assert.Equal(t, "registration.v1", schema.Name())
}

func TestMissingAndMistypedAttributes(t *testing.T) {
	r := NewRegistry()
	_, err := r.Registration(context.Background(), "v1").Validate(map[string]any{
		"username": 42.0,
		"email":    nil,
	})

	assert.Equal(t, []apperrors.FieldError{
		{Field: "username", Message: "Expected string, received number"},
		{Field: "email", Message: "Required"},
		{Field: "password", Message: "Required"},
	}, fieldErrors(t, err))
}

func TestLoginSchema(t *testing.T) {
	r := NewRegistry()

	_, err := r.Login().Validate(map[string]any{"email": "a@x.com", "password": ""})
	assert.Equal(t, []apperrors.FieldError{{Field: "password", Message: "Password is required"}}, fieldErrors(t, err))

	// login never applies the registration password policy
	values, err := r.Login().Validate(map[string]any{"email": "a@x.com", "password": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", values.String("password"))
}

func TestEmployeeSchema(t *testing.T) {
	r := NewRegistry()

	values, err := r.Employee().Validate(map[string]any{"name": "Bob", "email": "b@x.com", "age": 30.0})
	require.NoError(t, err)
	age, ok := values.Int("age")
	require.True(t, ok)
	assert.Equal(t, 30, age)

	_, err = r.Employee().Validate(map[string]any{"name": "Bob", "email": "b@x.com", "age": -1.5})
	assert.Equal(t, []apperrors.FieldError{
		{Field: "age", Message: "Age must be a whole number"},
		{Field: "age", Message: "Age must not be negative"},
	}, fieldErrors(t, err))

	_, err = r.Employee().Validate(map[string]any{"name": "Bob", "email": "b@x.com", "age": "30"})
	assert.Equal(t, []apperrors.FieldError{{Field: "age", Message: "Expected number, received string"}}, fieldErrors(t, err))
}

func TestEmployeeAgeOutOfIntRange(t *testing.T) {
	r := NewRegistry()

	for _, age := range []float64{1e20, -1e20, math.MaxFloat64} {
		_, err := r.Employee().Validate(map[string]any{"name": "Bob", "email": "b@x.com", "age": age})
		assert.Contains(t, fieldErrors(t, err), apperrors.FieldError{Field: "age", Message: "Age must be a whole number"}, "age %g", age)
	}

	_, ok := Values{"age": 1e20}.Int("age")
	assert.False(t, ok)
}

func TestLongPasswordsAreAccepted(t *testing.T) {
	schema := NewRegistry().Registration(context.Background(), "v1")

	for _, password := range []string{strings.Repeat("a", 100) + "1!", strings.Repeat("é", 40) + "1!"} {
		_, err := schema.Validate(map[string]any{"username": "alice", "email": "a@x.com", "password": password})
		assert.NoError(t, err)
	}
}

func TestEmailLengthLimit(t *testing.T) {
	email := strings.Repeat("a", 250) + "@x.com"
	_, err := NewRegistry().Registration(context.Background(), "v1").Validate(map[string]any{
		"username": "alice", "email": email, "password": "Passw0rd!",
	})
	assert.Contains(t, fieldErrors(t, err), apperrors.FieldError{Field: "email", Message: "Email must be at most 255 characters"})
}

func TestWithBaseVersion(t *testing.T) {
	r := NewRegistry(WithBaseVersion("v2"))
	assert.Equal(t, "v2", r.Base())
	assert.Equal(t, "registration.v2", r.Registration(context.Background(), "v9").Name())

	assert.Equal(t, "v1", NewRegistry(WithBaseVersion("v9")).Base())
	assert.Equal(t, "v1", NewRegistry().Base())
}

func TestVersionsSorted(t *testing.T) {
	assert.Equal(t, []string{"v1", "v2"}, NewRegistry().Versions())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Birth city", label("birthCity"))
	assert.Equal(t, "Name", label("name"))
}
