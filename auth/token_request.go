package auth

// TokenRequest holds the inputs of a token endpoint call. Client credentials
// may arrive via an HTTP Basic authorization header or in the request body,
// but never both: supplying both is rejected as invalid_client rather than
// resolved by preference.
type TokenRequest struct {
	// HasBasicAuth reports whether the request carried a Basic
	// authorization header; HeaderClientID/HeaderClientSecret hold the
	// decoded pair when it did.
	HasBasicAuth       bool
	HeaderClientID     string
	HeaderClientSecret string

	// ClientID and ClientSecret are the body-form credentials.
	ClientID     string
	ClientSecret string

	GrantType string
	Code      string

	// RedirectURI is optional; when supplied it must equal the URI bound
	// to the code being redeemed.
	RedirectURI string
}
