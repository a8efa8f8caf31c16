// Package guard decides whether a view may render for the current session.
package guard

// View paths. Each CLI command corresponds to one path; the guard treats
// them exactly like browser routes.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathCommunity = "/community"
	PathResult    = "/result"
	PathProfile   = "/profile"
	PathChat      = "/chat"
)

// Decision is the guard's verdict for a (session, path) pair.
type Decision int

const (
	// Allow renders the requested view.
	Allow Decision = iota
	// RedirectLogin sends an anonymous session to the login view; the
	// protected view renders nothing.
	RedirectLogin
	// RedirectDashboard sends an authenticated session away from an
	// auth-only view; the auth form renders nothing.
	RedirectDashboard
)

// publicPaths may render without a session.
var publicPaths = map[string]bool{
	PathHome:     true,
	PathLogin:    true,
	PathRegister: true,
}

// authOnlyPaths make no sense for a signed-in user.
var authOnlyPaths = map[string]bool{
	PathLogin:    true,
	PathRegister: true,
}

// Decide is a pure function of the session flag and the requested path.
func Decide(authenticated bool, path string) Decision {
	switch {
	case !authenticated && !publicPaths[path]:
		return RedirectLogin
	case authenticated && authOnlyPaths[path]:
		return RedirectDashboard
	default:
		return Allow
	}
}
