package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-authz-server/auth"
	"github.com/jrsteele09/go-authz-server/clients"
	"github.com/jrsteele09/go-authz-server/clients/staticrepo"
	"github.com/jrsteele09/go-authz-server/grants"
	"github.com/jrsteele09/go-authz-server/grants/memstore"
	"github.com/jrsteele09/go-authz-server/grants/redisstore"
	"github.com/jrsteele09/go-authz-server/internal/config"
	"github.com/jrsteele09/go-authz-server/server"
	"github.com/jrsteele09/go-authz-server/server/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	configureLogging(c)
	displayAppname(c.GetAppName())

	clientRepo, err := buildClientRepo(c)
	if err != nil {
		return fmt.Errorf("client registry: %w", err)
	}

	grantStore, closeStore, err := buildGrantStore(c)
	if err != nil {
		return fmt.Errorf("grant store: %w", err)
	}
	defer closeStore()

	srv, err := server.New(c, auth.Repos{Clients: clientRepo, Grants: grantStore}, ui.NewHTMLPresenter())
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func configureLogging(c config.Config) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func buildClientRepo(c config.Config) (clients.Repo, error) {
	if path := c.GetClientsFile(); path != "" {
		return staticrepo.NewFromFile(path)
	}
	// Built-in demo client, matching the demo relying party in cmd/client.
	return staticrepo.New([]clients.Client{{
		ID:           "oauth-client-1",
		Secret:       "oauth-client-secret-1",
		RedirectURIs: []string{"http://localhost:9000/callback"},
		Scopes:       []string{"foo", "bar"},
	}}), nil
}

func buildGrantStore(c config.Config) (grants.Store, func(), error) {
	if addr := c.GetRedisAddr(); addr != "" {
		store, err := redisstore.Connect(context.Background(), addr)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", addr).Msg("using redis grant store")
		return store, func() { _ = store.Close() }, nil
	}
	store := memstore.New()
	log.Info().Msg("using in-memory grant store")
	return store, store.Stop, nil
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
