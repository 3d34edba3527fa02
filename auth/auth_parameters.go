package auth

import (
	"github.com/jrsteele09/go-authz-server/clients"
	"github.com/jrsteele09/go-authz-server/oauthmodel"
)

// AuthorizationParameters holds the query parameters of an authorization
// request as received at the /authorize endpoint.
type AuthorizationParameters struct {
	// ClientID identifies the application requesting authorization.
	ClientID string

	// RedirectURI is where the authorization response will be sent. Must
	// exactly match a pre-registered URI to prevent open redirects.
	RedirectURI string

	// ResponseType is validated when the decision arrives, not here: only
	// "code" is supported, but an unsupported value is reported via
	// redirect once the redirect URI has been verified.
	ResponseType string

	// Scope is the space-delimited set of requested scope tokens.
	Scope string

	// State is an opaque client-chosen value echoed back unmodified on
	// every redirect, for CSRF correlation by the client.
	State string
}

// ValidateWithClient checks the parameters against the registered client
// record and returns the requested scope tokens on success.
//
// Failures here happen before the redirect URI is trusted, so they are
// returned as protocol errors to be surfaced directly, never via redirect.
func (p *AuthorizationParameters) ValidateWithClient(client *clients.Client) ([]string, error) {
	if !client.HasRedirectURI(p.RedirectURI) {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidRedirectURI, "redirect_uri is not registered for this client")
	}

	scope := clients.SplitScopes(p.Scope)
	if err := client.ValidateScopes(scope); err != nil {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidScope, "requested scope exceeds the client's registered scope")
	}

	return scope, nil
}
