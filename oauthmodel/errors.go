package oauthmodel

import "errors"

// ErrorCode is an OAuth2 protocol error code as returned to clients, either
// in a JSON error body or as an error query parameter on a redirect.
type ErrorCode string

const (
	ErrorCodeInvalidClient           ErrorCode = "invalid_client"
	ErrorCodeInvalidRedirectURI      ErrorCode = "invalid_redirect_uri"
	ErrorCodeInvalidScope            ErrorCode = "invalid_scope"
	ErrorCodeInvalidRequest          ErrorCode = "invalid_request"
	ErrorCodeInvalidGrant            ErrorCode = "invalid_grant"
	ErrorCodeUnsupportedGrantType    ErrorCode = "unsupported_grant_type"
	ErrorCodeUnsupportedResponseType ErrorCode = "unsupported_response_type"
	ErrorCodeAccessDenied            ErrorCode = "access_denied"
	ErrorCodeServerError             ErrorCode = "server_error"
)

// Error is a protocol-level OAuth2 error. These are expected failures under
// normal operation (abandoned flows, replayed codes, misconfigured clients)
// and are surfaced to the caller, unlike collaborator failures which stay
// plain wrapped errors and map to a 5xx response.
type Error struct {
	Code        ErrorCode
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// NewError creates a protocol error with the given code and description.
// The description must never contain secret material or store internals.
func NewError(code ErrorCode, description string) *Error {
	return &Error{Code: code, Description: description}
}

// AsError extracts a protocol error from an error chain.
func AsError(err error) (*Error, bool) {
	var oauthErr *Error
	if errors.As(err, &oauthErr) {
		return oauthErr, true
	}
	return nil, false
}
