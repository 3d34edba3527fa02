package token

// TokenTypeBearer is the only token type this server issues.
const TokenTypeBearer = "Bearer"

// TokenResponse is the token endpoint response body as defined in RFC 6749.
// The access token is an opaque bearer credential; this server does not
// persist it after issuance.
type TokenResponse struct {
	// AccessToken is the opaque credential used to access protected
	// resources, sent as "Authorization: Bearer <access_token>".
	AccessToken string `json:"access_token"`

	// TokenType indicates how to use the access token, always "Bearer".
	TokenType string `json:"token_type"`

	// Scope is the set of granted scope tokens bound to the redeemed
	// authorization code.
	Scope []string `json:"scope"`
}
