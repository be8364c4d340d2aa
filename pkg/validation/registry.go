package validation

import (
	"context"
	"sort"
	"strconv"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// Registry maps an API version tag to its registration schema. It is
// populated at construction and read-only afterwards.
type Registry struct {
	base         string
	registration map[string]Schema
	login        Schema
	employee     Schema
}

// Option configures a Registry.
type Option func(*Registry)

// WithBaseVersion picks the schema unknown versions fall back to. A version
// without a schema of its own leaves the base at v1.
func WithBaseVersion(version string) Option {
	return func(r *Registry) {
		if _, ok := r.registration[version]; ok {
			r.base = version
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	v := NewValidator()

	v1 := NewSchema(v, "registration."+constants.APIVersionV1,
		usernameField(), emailField(), passwordField())
	v2 := v1.Extend("registration."+constants.APIVersionV2, birthCityField())

	r := &Registry{
		base: constants.APIVersionV1,
		registration: map[string]Schema{
			constants.APIVersionV1: v1,
			constants.APIVersionV2: v2,
		},
		login:    loginSchema(v),
		employee: employeeSchema(v),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Base is the version unknown tags resolve to.
func (r *Registry) Base() string { return r.base }

// Lookup returns the registration schema for version, if one exists.
func (r *Registry) Lookup(version string) (Schema, bool) {
	s, ok := r.registration[version]
	return s, ok
}

// Registration returns the schema for version. Unknown versions get the
// base schema.
func (r *Registry) Registration(ctx context.Context, version string) Schema {
	if s, ok := r.registration[version]; ok {
		return s
	}
	logger.WarnWithContext(ctx, "Unknown API version, using base registration schema").
		String("requested_version", version).
		String("base_version", r.base).
		Log()
	return r.registration[r.base]
}

func (r *Registry) Login() Schema    { return r.login }
func (r *Registry) Employee() Schema { return r.employee }

// Versions lists the registered version tags in ascending order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.registration))
	for v := range r.registration {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versionNumber(versions[i]) < versionNumber(versions[j]) })
	return versions
}

func versionNumber(tag string) int {
	n, err := strconv.Atoi(tag[1:])
	if err != nil {
		return 0
	}
	return n
}

func usernameField() Field {
	return Field{Name: "username", Kind: KindString, Rules: []Rule{
		{Tag: "min=" + strconv.Itoa(constants.MinUsernameLength)},
	}}
}

func emailField() Field {
	return Field{Name: "email", Kind: KindString, Rules: []Rule{
		{Tag: "email"},
		{Tag: "max=" + strconv.Itoa(constants.MaxEmailLength)},
	}}
}

func passwordField() Field {
	return Field{Name: "password", Kind: KindString, Rules: []Rule{
		{Tag: "min=" + strconv.Itoa(constants.MinPasswordLength)},
		{Tag: TagPasswordChars},
	}}
}

func birthCityField() Field {
	return Field{Name: "birthCity", Kind: KindString, Rules: []Rule{{Tag: "min=1"}}}
}

func loginSchema(v *validator.Validate) Schema {
	return NewSchema(v, "login",
		emailField(),
		Field{Name: "password", Kind: KindString, Rules: []Rule{
			{Tag: "min=1", Message: "Password is required"},
		}},
	)
}

func employeeSchema(v *validator.Validate) Schema {
	return NewSchema(v, "employee",
		Field{Name: "name", Kind: KindString, Rules: []Rule{{Tag: "min=1"}}},
		emailField(),
		Field{Name: "age", Kind: KindNumber, Rules: []Rule{{Tag: TagInteger}, {Tag: "gte=0"}}},
	)
}
