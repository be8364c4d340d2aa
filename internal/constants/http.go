package constants

// HTTP Header Names
const (
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXCorrelationID = "X-Correlation-ID"
	HeaderRetryAfter     = "Retry-After"
)

const ContentTypeJSONAPI = "application/vnd.api+json"

const BearerScheme = "Bearer"

// Refresh-token cookie
const (
	CookieRefreshToken = "refreshToken"
	CookiePath         = "/"
)

// JSON:API resource types
const (
	ResourceTypeUsers     = "users"
	ResourceTypeTokens    = "tokens"
	ResourceTypeEmployees = "employees"
)

// JSON:API error titles
const (
	TitleValidationError     = "Validation Error"
	TitleAuthenticationError = "Authentication Error"
	TitleAuthorizationError  = "Authorization Error"
	TitleAuthFailed          = "Authentication Failed"
	TitleBadRequest          = "Bad Request"
	TitleNotFound            = "Not Found"
	TitleTooManyRequests     = "Too Many Requests"
	TitleServiceUnavailable  = "Service Unavailable"
	TitleServerError         = "Server Error"
)

// AttributePointerPrefix prefixes every field-scoped error pointer.
const AttributePointerPrefix = "/data/attributes/"
