package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.Index(), s.StandardMiddleware()...))

	// OAuth2 endpoints
	s.RegisterRouteFunc("GET "+RouteAuthorize, ChainMiddleware(s.Authorize(), s.StandardMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteApprove, ChainMiddleware(s.Approve(), s.StandardMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteToken, ChainMiddleware(s.Token(), s.StandardMiddleware()...))
}
