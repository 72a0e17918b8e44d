// Package guard decides which route a session may render.
package guard

import "github.com/naveenspark/langgpt/internal/session"

// Route names a view.
type Route string

// Routes.
const (
	Login     Route = "/login"
	Register  Route = "/register"
	Translate Route = "/"
	History   Route = "/history"
	Settings  Route = "/settings"
)

// Decision is the gate's verdict for a protected route.
type Decision int

const (
	// Pending means the session is still bootstrapping.
	Pending Decision = iota
	// Denied means nobody is logged in.
	Denied
	// Granted means the user may see protected content.
	Granted
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "PENDING"
	case Denied:
		return "DENIED"
	case Granted:
		return "GRANTED"
	}
	return "UNKNOWN"
}

var protected = map[Route]bool{
	Translate: true,
	History:   true,
	Settings:  true,
}

// Routes lists every known route in navigation order.
func Routes() []Route {
	return []Route{Translate, History, Settings, Login, Register}
}

// Protected reports whether r needs an authenticated session.
func Protected(r Route) bool {
	return protected[r]
}

// Known reports whether r is in the route table.
func Known(r Route) bool {
	for _, k := range Routes() {
		if k == r {
			return true
		}
	}
	return false
}

// Evaluate maps a session snapshot to a decision.
func Evaluate(st session.State) Decision {
	switch {
	case st.Loading:
		return Pending
	case !st.Authenticated:
		return Denied
	default:
		return Granted
	}
}

// Resolve returns the route to actually render for a request to r.
// Public routes always render. A protected route renders when granted,
// stays put (showing a placeholder) while pending, and redirects to
// Login when denied. Unknown routes fall back to Translate.
func Resolve(r Route, st session.State) (Route, Decision) {
	if !Known(r) {
		r = Translate
	}
	d := Evaluate(st)
	if !Protected(r) {
		return r, d
	}
	if d == Denied {
		return Login, d
	}
	return r, d
}
