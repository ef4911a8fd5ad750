package tui

// Route names a screen.
type Route string

const (
	RouteLogin      Route = "login"
	RouteSelector   Route = "selector"
	RouteProposal   Route = "propuesta"
	RouteInspection Route = "inspeccion"
)

var protectedRoutes = map[Route]bool{
	RouteSelector:   true,
	RouteProposal:   true,
	RouteInspection: true,
}

// Resolve returns the screen to show for route. Unknown routes and protected
// routes without a session go to login.
func Resolve(route Route, authenticated bool) Route {
	if route == RouteLogin {
		return RouteLogin
	}
	if !protectedRoutes[route] {
		return RouteLogin
	}
	if !authenticated {
		return RouteLogin
	}
	return route
}
