package auth

// PendingRequest is a captured, not-yet-decided authorization attempt. It is
// serialized into the grant store under its request ID and consumed exactly
// once when the resource owner's decision arrives.
type PendingRequest struct {
	ClientID     string   `json:"client_id"`
	RedirectURI  string   `json:"redirect_uri"`
	Scope        []string `json:"scope"`
	State        string   `json:"state"`
	ResponseType string   `json:"response_type"`
}

// CodeGrant is the snapshot bound to an issued authorization code: the
// client it was issued to, the redirect URI it was delivered through, and
// the scope the resource owner granted. Redeemable at most once.
type CodeGrant struct {
	ClientID    string   `json:"client_id"`
	RedirectURI string   `json:"redirect_uri"`
	Scope       []string `json:"scope"`
}
