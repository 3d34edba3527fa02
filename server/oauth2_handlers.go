package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-authz-server/auth"
	"github.com/jrsteele09/go-authz-server/oauthmodel"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Index renders the landing page listing the registered clients
func (s *Server) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientList, err := s.repos.Clients.List()
		if err != nil {
			log.Error().Err(err).Msg("client registry unavailable")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.presenter.Index(w, clientList); err != nil {
			log.Error().Err(err).Msg("failed to render index page")
		}
	}
}

// Authorize begins the authorization flow: it validates the request and
// renders the approval prompt. Failures here must not redirect the user
// agent, since the redirect target is still untrusted at this point.
func (s *Server) Authorize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		params := &auth.AuthorizationParameters{
			ClientID:     query.Get("client_id"),
			RedirectURI:  query.Get("redirect_uri"),
			ResponseType: query.Get("response_type"),
			Scope:        query.Get("scope"),
			State:        query.Get("state"),
		}

		prompt, err := s.auth.Authorize(r.Context(), params)
		if err != nil {
			writeOAuthError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.presenter.Approval(w, prompt); err != nil {
			log.Error().Err(err).Msg("failed to render approval page")
		}
	}
}

// Approve handles the resource owner's decision and redirects back to the
// client with either a code or an error, the original state echoed in both
// cases.
func (s *Server) Approve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeOAuthError(w, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidRequest, "failed to parse form data"))
			return
		}

		requestID := r.FormValue("request_id")
		approved := r.FormValue("approve") != ""

		redirectURL, err := s.auth.Approve(r.Context(), requestID, approved)
		if err != nil {
			writeOAuthError(w, err)
			return
		}

		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// Token authenticates the client and exchanges an authorization code for an
// access token.
func (s *Server) Token() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeOAuthError(w, oauthmodel.NewError(oauthmodel.ErrorCodeInvalidRequest, "failed to parse form data"))
			return
		}

		headerID, headerSecret, hasBasicAuth := r.BasicAuth()
		tokenReq := &auth.TokenRequest{
			HasBasicAuth:       hasBasicAuth,
			HeaderClientID:     headerID,
			HeaderClientSecret: headerSecret,
			ClientID:           r.PostFormValue("client_id"),
			ClientSecret:       r.PostFormValue("client_secret"),
			GrantType:          r.PostFormValue("grant_type"),
			Code:               r.PostFormValue("code"),
			RedirectURI:        r.PostFormValue("redirect_uri"),
		}

		tokenResponse, err := s.auth.Token(r.Context(), tokenReq)
		if err != nil {
			writeOAuthError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		_ = json.NewEncoder(w).Encode(tokenResponse)
	}
}

// writeOAuthError maps protocol errors to their JSON error body and
// everything else, collaborator failures included, to a 500. Grant-lifecycle
// rejections are expected under normal operation and only logged at debug.
func writeOAuthError(w http.ResponseWriter, err error) {
	if oauthErr, ok := oauthmodel.AsError(err); ok {
		status := http.StatusBadRequest
		if oauthErr.Code == oauthmodel.ErrorCodeInvalidClient {
			status = http.StatusUnauthorized
		}
		log.Debug().Str("error", string(oauthErr.Code)).Msg("request rejected")
		writeJSONError(w, oauthErr.Code, oauthErr.Description, status)
		return
	}
	log.Error().Err(err).Msg("internal error")
	writeJSONError(w, oauthmodel.ErrorCodeServerError, "internal server error", http.StatusInternalServerError)
}

func writeJSONError(w http.ResponseWriter, code oauthmodel.ErrorCode, description string, status int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             string(code),
		"error_description": description,
	})
}
