// Demo relying party for the authorization server. It serves a small site on
// :9000 that starts the code flow, receives the callback, exchanges the code
// for a token and shows the result.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	listenAddr        = ":9000"
	authorizeEndpoint = "http://localhost:9001/authorize"
	tokenEndpoint     = "http://localhost:9001/token"
	clientID          = "oauth-client-1"
	clientSecret      = "oauth-client-secret-1"
	redirectURI       = "http://localhost:9000/callback"
)

type app struct {
	oauth oauth2.Config

	mu            sync.Mutex
	expectedState string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	a := &app{
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"foo"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeEndpoint,
				TokenURL:  tokenEndpoint,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", a.index)
	mux.HandleFunc("GET /authorize", a.authorize)
	mux.HandleFunc("GET /callback", a.callback)

	log.Info().Str("addr", listenAddr).Msg("demo client listening")
	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		log.Fatal().Err(err).Msg("client server failed")
	}
}

func (a *app) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<h1>Demo OAuth Client</h1><p><a href="/authorize">Get a token</a></p>`)
}

func (a *app) authorize(w http.ResponseWriter, r *http.Request) {
	state, err := newState()
	if err != nil {
		http.Error(w, "failed to generate state", http.StatusInternalServerError)
		return
	}
	a.mu.Lock()
	a.expectedState = state
	a.mu.Unlock()

	http.Redirect(w, r, a.oauth.AuthCodeURL(state), http.StatusSeeOther)
}

func (a *app) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if errCode := query.Get("error"); errCode != "" {
		http.Error(w, "authorization failed: "+errCode, http.StatusForbidden)
		return
	}

	a.mu.Lock()
	expected := a.expectedState
	a.mu.Unlock()
	if expected == "" || query.Get("state") != expected {
		http.Error(w, "state value did not match", http.StatusBadRequest)
		return
	}

	tok, err := a.oauth.Exchange(r.Context(), query.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("code exchange failed")
		http.Error(w, "code exchange failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
		"scope":        tok.Extra("scope"),
	})
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
