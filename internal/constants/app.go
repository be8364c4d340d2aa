package constants

// Application Information
const (
	AppName    = "Auth Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// API versions with a registration schema of their own.
const (
	APIVersionV1 = "v1"
	APIVersionV2 = "v2"
)

// Redis key prefixes
const (
	CacheKeyPrefix    = "auth:"
	CacheKeyRateLimit = CacheKeyPrefix + "ratelimit:"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
