package validation

import (
	"fmt"
	"strings"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

// Kind is the JSON type an attribute must decode to.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindNull    Kind = "null"
)

// Rule is one validator tag checked against an attribute. Message overrides
// the per-field lookup in CustomMessage.
type Rule struct {
	Tag     string
	Message string
}

// Field is one required attribute of a schema.
type Field struct {
	Name  string
	Kind  Kind
	Rules []Rule
}

// Schema is an ordered set of fields. Schemas are values; Extend never
// mutates the receiver.
type Schema struct {
	name     string
	fields   []Field
	validate *validator.Validate
}

func NewSchema(v *validator.Validate, name string, fields ...Field) Schema {
	return Schema{name: name, fields: append([]Field(nil), fields...), validate: v}
}

func (s Schema) Name() string { return s.name }

// Extend returns a new schema with every field of s followed by fields.
func (s Schema) Extend(name string, fields ...Field) Schema {
	merged := make([]Field, 0, len(s.fields)+len(fields))
	merged = append(merged, s.fields...)
	merged = append(merged, fields...)
	return Schema{name: name, fields: merged, validate: s.validate}
}

func (s Schema) Has(field string) bool {
	for _, f := range s.fields {
		if f.Name == field {
			return true
		}
	}
	return false
}

func (s Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks attrs against every rule of every field and returns either
// the typed values or a *errors.ValidationError listing all violations.
// Attributes the schema does not name are dropped.
func (s Schema) Validate(attrs map[string]any) (Values, error) {
	verr := apperrors.NewValidationError()
	values := make(Values, len(s.fields))

	for _, f := range s.fields {
		raw, ok := attrs[f.Name]
		if !ok || raw == nil {
			verr.Add(f.Name, MessageRequired)
			continue
		}

		if got := kindOf(raw); got != f.Kind {
			verr.Add(f.Name, fmt.Sprintf("Expected %s, received %s", f.Kind, got))
			continue
		}

		for _, r := range f.Rules {
			if err := s.validate.Var(raw, r.Tag); err != nil {
				verr.Add(f.Name, r.message(f.Name))
			}
		}
		values[f.Name] = raw
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return values, nil
}

func (r Rule) message(field string) string {
	if r.Message != "" {
		return r.Message
	}
	tag, param, _ := strings.Cut(r.Tag, "=")
	return messageFor(field, tag, param)
}

func kindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case float64, float32, int, int64, int32, uint, uint64:
		return KindNumber
	case bool:
		return KindBoolean
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case nil:
		return KindNull
	default:
		return Kind(fmt.Sprintf("%T", v))
	}
}

// Values holds attributes that passed a schema.
type Values map[string]any

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// OptionalString returns nil when the schema did not carry name.
func (v Values) OptionalString(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// Int returns the named number as an int. ok is false when the value is
// missing, fractional or out of the int range.
func (v Values) Int(name string) (int, bool) {
	switch n := v[name].(type) {
	case float64:
		if !fitsInt(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
