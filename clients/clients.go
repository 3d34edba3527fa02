package clients

import "strings"

// Client is a registered OAuth2 client. The registry is loaded once at
// process start and clients are immutable for the process lifetime.
type Client struct {
	ID           string   `json:"id"`
	Secret       string   `json:"secret"`
	RedirectURIs []string `json:"redirectURIs"`
	Scopes       []string `json:"scopes"` // Allowed scopes for this client
}

// HasRedirectURI checks the URI against the registered set. Matching is
// exact, byte-for-byte: a trailing slash or case difference is a mismatch.
func (c *Client) HasRedirectURI(uri string) bool {
	for _, u := range c.RedirectURIs {
		if u == uri {
			return true
		}
	}
	return false
}

// HasScope checks if the client has permission for a specific scope
func (c *Client) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ValidateScopes checks that every requested scope token is registered for
// this client. Returns ErrInvalidScope on the first token that is not.
func (c *Client) ValidateScopes(requested []string) error {
	for _, scope := range requested {
		if !c.HasScope(scope) {
			return ErrInvalidScope
		}
	}
	return nil
}

// SplitScopes splits a space-delimited scope string into tokens, discarding
// empty tokens.
func SplitScopes(scopes string) []string {
	return strings.Fields(scopes)
}
