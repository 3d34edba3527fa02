package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-authz-server/clients"
	"github.com/jrsteele09/go-authz-server/grants"
	"github.com/jrsteele09/go-authz-server/oauthmodel"
	"github.com/jrsteele09/go-authz-server/token"
	"github.com/pkg/errors"
)

const (
	defaultRequestTTL = 10 * time.Minute
	defaultCodeTTL    = 5 * time.Minute
)

// Prompt is what the presentation layer needs to render the approval page:
// the request identifier the decision form posts back, the client asking for
// authorization, and the scope it requested.
type Prompt struct {
	RequestID string
	Client    *clients.Client
	Scope     []string
}

// Repos holds all repository dependencies for the AuthorizationService
type Repos struct {
	Clients clients.Repo // Registry of OAuth2 clients
	Grants  grants.Store // Ephemeral store for pending requests and codes
}

// AuthorizationService implements the authorization code grant flow:
// Authorize captures and validates a request, Approve turns the resource
// owner's decision into a code, and Token redeems the code for an access
// token.
type AuthorizationService struct {
	repos      Repos
	issuer     *token.Issuer
	requestTTL time.Duration // Expiry for undecided authorization requests
	codeTTL    time.Duration // Expiry for unredeemed authorization codes
}

// AuthorizationServiceOption defines a function type to modify the AuthorizationService instance.
type AuthorizationServiceOption func(*AuthorizationService)

// WithRequestTTL sets how long an undecided authorization request survives.
func WithRequestTTL(ttl time.Duration) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.requestTTL = ttl
	}
}

// WithCodeTTL sets how long an unredeemed authorization code survives.
func WithCodeTTL(ttl time.Duration) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.codeTTL = ttl
	}
}

// NewAuthorizationService initializes a new AuthorizationService with required dependencies.
func NewAuthorizationService(repos Repos, issuer *token.Issuer, options ...AuthorizationServiceOption) (*AuthorizationService, error) {
	if repos.Clients == nil {
		return nil, errors.New("[NewAuthorizationService] Clients repo is required")
	}
	if repos.Grants == nil {
		return nil, errors.New("[NewAuthorizationService] Grants store is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewAuthorizationService] issuer is required")
	}

	authService := &AuthorizationService{
		repos:      repos,
		issuer:     issuer,
		requestTTL: defaultRequestTTL,
		codeTTL:    defaultCodeTTL,
	}

	for _, opt := range options {
		opt(authService)
	}

	return authService, nil
}

// Authorize begins the authorization flow: it validates the request against
// the registered client and persists it pending the resource owner's
// decision. The returned Prompt is handed to the presentation layer; no user
// identity is established or required at this point.
//
// Every failure here precedes redirect URI verification, so all of them are
// surfaced directly to the user agent, never via redirect.
func (as *AuthorizationService) Authorize(ctx context.Context, parameters *AuthorizationParameters) (*Prompt, error) {
	client, err := as.repos.Clients.Get(parameters.ClientID)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidClient, "unknown client")
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Authorize] client lookup")
	}

	scope, err := parameters.ValidateWithClient(client)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	pending := PendingRequest{
		ClientID:     client.ID,
		RedirectURI:  parameters.RedirectURI,
		Scope:        scope,
		State:        parameters.State,
		ResponseType: parameters.ResponseType,
	}
	data, err := json.Marshal(pending)
	if err != nil {
		return nil, errors.Wrap(err, "[Authorize] marshal pending request")
	}
	if err := as.repos.Grants.Put(ctx, grants.RequestKey(requestID), data, as.requestTTL); err != nil {
		return nil, errors.Wrap(err, "[Authorize] store pending request")
	}

	return &Prompt{RequestID: requestID, Client: client, Scope: scope}, nil
}

// Approve completes the authorization flow with the resource owner's
// decision and returns the URL the user agent must be redirected to.
//
// The pending request is consumed atomically, so concurrent decisions for
// the same request ID yield exactly one redirect; the rest fail with
// invalid_request, as do expired or replayed request IDs.
func (as *AuthorizationService) Approve(ctx context.Context, requestID string, approved bool) (string, error) {
	data, err := as.repos.Grants.Take(ctx, grants.RequestKey(requestID))
	if errors.Is(err, grants.ErrNotFound) {
		return "", oauthmodel.NewError(oauthmodel.ErrorCodeInvalidRequest, "unknown or expired authorization request")
	}
	if err != nil {
		return "", errors.Wrap(err, "[Approve] take pending request")
	}

	var pending PendingRequest
	if err := json.Unmarshal(data, &pending); err != nil {
		return "", errors.Wrap(err, "[Approve] unmarshal pending request")
	}

	// The redirect URI was verified against the client registration when
	// the request was captured, so redirecting errors to it is safe now.
	if !approved {
		return errorRedirect(pending.RedirectURI, oauthmodel.ErrorCodeAccessDenied, pending.State)
	}
	if pending.ResponseType != string(oauthmodel.CodeResponseType) {
		return errorRedirect(pending.RedirectURI, oauthmodel.ErrorCodeUnsupportedResponseType, pending.State)
	}

	code, err := as.issuer.Mint()
	if err != nil {
		return "", errors.Wrap(err, "[Approve] mint code")
	}
	grant := CodeGrant{
		ClientID:    pending.ClientID,
		RedirectURI: pending.RedirectURI,
		Scope:       pending.Scope,
	}
	grantData, err := json.Marshal(grant)
	if err != nil {
		return "", errors.Wrap(err, "[Approve] marshal code grant")
	}
	if err := as.repos.Grants.Put(ctx, grants.CodeKey(code), grantData, as.codeTTL); err != nil {
		return "", errors.Wrap(err, "[Approve] store code grant")
	}

	return codeRedirect(pending.RedirectURI, code, pending.State)
}

// Token authenticates a client, redeems an authorization code exactly once,
// and returns a freshly minted access token. The token is not persisted;
// issuance is a pure generation step.
func (as *AuthorizationService) Token(ctx context.Context, request *TokenRequest) (*token.TokenResponse, error) {
	clientID, clientSecret, err := resolveClientCredentials(request)
	if err != nil {
		return nil, err
	}

	client, err := as.repos.Clients.Get(clientID)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidClient, "unknown client")
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Token] client lookup")
	}
	if subtle.ConstantTimeCompare([]byte(clientSecret), []byte(client.Secret)) != 1 {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidClient, "client authentication failed")
	}

	if request.GrantType != string(oauthmodel.AuthorizationCodeGrant) {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeUnsupportedGrantType, "only authorization_code is supported")
	}

	// Single-use enforcement point: the atomic take guarantees that of N
	// concurrent redemptions of one code exactly one observes the grant.
	data, err := as.repos.Grants.Take(ctx, grants.CodeKey(request.Code))
	if errors.Is(err, grants.ErrNotFound) {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidGrant, "unknown, expired or already redeemed code")
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Token] take code grant")
	}

	var grant CodeGrant
	if err := json.Unmarshal(data, &grant); err != nil {
		return nil, errors.Wrap(err, "[Token] unmarshal code grant")
	}

	if grant.ClientID != client.ID {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidGrant, "code was issued to a different client")
	}
	if request.RedirectURI != "" && request.RedirectURI != grant.RedirectURI {
		return nil, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidGrant, "redirect_uri does not match the authorization request")
	}

	accessToken, err := as.issuer.Mint()
	if err != nil {
		return nil, errors.Wrap(err, "[Token] mint access token")
	}

	return &token.TokenResponse{
		AccessToken: accessToken,
		TokenType:   token.TokenTypeBearer,
		Scope:       grant.Scope,
	}, nil
}

// resolveClientCredentials picks the credential source for a token request.
// Presenting both a Basic authorization header and body credentials is
// ambiguous authentication and rejected outright, regardless of whether
// either pair is individually valid.
func resolveClientCredentials(request *TokenRequest) (string, string, error) {
	if request.HasBasicAuth && request.ClientID != "" {
		return "", "", oauthmodel.NewError(oauthmodel.ErrorCodeInvalidClient, "client attempted to authenticate with multiple methods")
	}
	if request.HasBasicAuth {
		return request.HeaderClientID, request.HeaderClientSecret, nil
	}
	if request.ClientID == "" {
		return "", "", oauthmodel.NewError(oauthmodel.ErrorCodeInvalidClient, "missing client credentials")
	}
	return request.ClientID, request.ClientSecret, nil
}

func codeRedirect(redirectURI, code, state string) (string, error) {
	return buildRedirect(redirectURI, func(q url.Values) {
		q.Set("code", code)
		q.Set("state", state)
	})
}

func errorRedirect(redirectURI string, code oauthmodel.ErrorCode, state string) (string, error) {
	return buildRedirect(redirectURI, func(q url.Values) {
		q.Set("error", string(code))
		q.Set("state", state)
	})
}

func buildRedirect(redirectURI string, setParams func(url.Values)) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", errors.Wrap(err, "[buildRedirect] parse redirect uri")
	}
	q := u.Query()
	setParams(q)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
