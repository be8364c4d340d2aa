package dto

// UserAttributes is the public view of a user. The password hash never
// appears here.
type UserAttributes struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	BirthCity *string `json:"birthCity,omitempty"`
}

// IncludedUserAttributes is the minimal user view sent alongside tokens.
type IncludedUserAttributes struct {
	Username string `json:"username"`
}

type TokenAttributes struct {
	AccessToken string `json:"accessToken"`
}

// LoginResult carries what the login handler needs to build the response
// and the refresh cookie.
type LoginResult struct {
	UserID       string
	Username     string
	AccessToken  string
	RefreshToken string
}
