package constants

// Field Length Limits
const (
	MinUsernameLength = 3
	MinPasswordLength = 8
	MaxEmailLength    = 255 // users.email and employees.email column size
)

// PasswordSymbols is the punctuation set a password must draw at least one
// character from.
const PasswordSymbols = "!@#$%^&*"

// Token Settings (in seconds)
const (
	AccessTokenExpiry  = 15 * 60          // 15 minutes
	RefreshTokenExpiry = 7 * 24 * 60 * 60 // 7 days
)

// Token type claim values
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
