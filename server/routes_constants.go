package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex     = "/"
	RouteAuthorize = "/authorize"
	RouteApprove   = "/approve"
	RouteToken     = "/token"
)
