package validation

// MessageRequired is reported for an attribute that is absent or null.
const MessageRequired = "Required"

var customValidationMessages = map[string]map[string]string{
	"username": {
		"min": "Username must be at least 3 characters",
	},
	"email": {
		"email": "Invalid email address",
		"max":   "Email must be at most 255 characters",
	},
	"password": {
		"min":            "Password must be at least 8 characters",
		TagPasswordChars: "Password must include at least 1 number and 1 special character",
	},
	"birthCity": {
		"min": "Birth city must not be empty",
	},
	"name": {
		"min": "Name must not be empty",
	},
	"age": {
		"gte":      "Age must not be negative",
		TagInteger: "Age must be a whole number",
	},
}

// CustomMessage returns the tag -> message overrides for a field, or nil.
func CustomMessage(field string) map[string]string {
	return customValidationMessages[field]
}

func messageFor(field, tag, param string) string {
	if msgs := CustomMessage(field); msgs != nil {
		if msg, ok := msgs[tag]; ok {
			return msg
		}
	}
	return DefaultMessage(field, tag, param)
}
