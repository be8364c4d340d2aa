package validation

import (
	"fmt"
	"strings"
)

// DefaultMessage is the fallback text for a tag that has no custom message.
// param is the tag argument, e.g. "3" for "min=3".
func DefaultMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return MessageRequired
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label(field), param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label(field), param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label(field), param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", label(field), param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label(field), param)
	case TagInteger:
		return fmt.Sprintf("%s must be a whole number", label(field))
	default:
		return fmt.Sprintf("%s is invalid", label(field))
	}
}

// label turns "birthCity" into "Birth city".
func label(field string) string {
	if field == "" {
		return field
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
