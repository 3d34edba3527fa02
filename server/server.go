package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-authz-server/auth"
	"github.com/jrsteele09/go-authz-server/internal/config"
	"github.com/jrsteele09/go-authz-server/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	auth      *auth.AuthorizationService
	repos     auth.Repos
	presenter Presenter
}

func New(config config.Config, repos auth.Repos, presenter Presenter) (*Server, error) {
	issuer := token.NewIssuer(config.GetCodeGenerationLength())
	authService, err := auth.NewAuthorizationService(repos, issuer,
		auth.WithRequestTTL(config.GetRequestTTL()),
		auth.WithCodeTTL(config.GetAuthCodeTTL()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create authorization service")
	}
	if presenter == nil {
		return nil, errors.New("[Server New] presenter is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    config,
		repos:     repos,
		auth:      authService,
		presenter: presenter,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route registered")
		}
	}
}
