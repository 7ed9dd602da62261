// Package guard implements the role-gated access decisions taken before a
// protected view renders. The decisions are pure functions of the session
// resolution state; fetching the session is the auth service's job.
package guard

import (
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// Well-known routes the guards redirect to.
const (
	RouteHome         = "/"
	RouteLogin        = "/login"
	RouteUnauthorized = "/unauthorized"

	RouteAdminHome    = "/admin/analytics"
	RouteSenderHome   = "/sender/me"
	RouteReceiverHome = "/receiver/me/incoming"
)

// SessionState tracks the resolution of the "who am I" check.
type SessionState int

const (
	// SessionPending: the check is still in flight.
	SessionPending SessionState = iota
	// SessionAnonymous: the check resolved without an authenticated user.
	SessionAnonymous
	// SessionActive: the check resolved with an authenticated user.
	SessionActive
)

// Session is the guard-facing view of the current session. User is non-nil
// exactly when State is SessionActive.
type Session struct {
	State SessionState
	User  *models.User
}

// Decision is the outcome of a guard check.
type Decision int

const (
	// DecisionPending: do not render anything yet; the session is unresolved.
	// Rendering before resolution would flash protected content.
	DecisionPending Decision = iota
	// DecisionRender: render the guarded view.
	DecisionRender
	// DecisionRedirect: navigate to Route instead of rendering.
	DecisionRedirect
)

// Result pairs a Decision with its redirect target.
type Result struct {
	Decision Decision
	Route    string
}

// Protect gates a view on an authenticated session, optionally with a
// required role. It never renders before the session check resolves.
func Protect(s Session, required ...models.Role) Result {
	switch s.State {
	case SessionPending:
		return Result{Decision: DecisionPending}
	case SessionAnonymous:
		return Result{Decision: DecisionRedirect, Route: RouteLogin}
	case SessionActive:
		if s.User == nil {
			return Result{Decision: DecisionRedirect, Route: RouteLogin}
		}
		for _, want := range required {
			if !roleSatisfies(s.User.Role, want) {
				return Result{Decision: DecisionRedirect, Route: RouteUnauthorized}
			}
		}
		return Result{Decision: DecisionRender}
	default:
		return Result{Decision: DecisionRedirect, Route: RouteLogin}
	}
}

// Guest gates the login/register views: an authenticated user is sent to
// their role's landing route instead.
func Guest(s Session) Result {
	switch s.State {
	case SessionPending:
		return Result{Decision: DecisionPending}
	case SessionActive:
		if s.User != nil {
			return Result{Decision: DecisionRedirect, Route: DefaultRoute(s.User.Role)}
		}
		return Result{Decision: DecisionRender}
	default:
		return Result{Decision: DecisionRender}
	}
}

// DefaultRoute is the landing route for a role. The switch is exhaustive
// over the closed role set; anything else lands on the public home page.
func DefaultRoute(r models.Role) string {
	switch r {
	case models.RoleSuperAdmin, models.RoleAdmin:
		return RouteAdminHome
	case models.RoleSender:
		return RouteSenderHome
	case models.RoleReceiver:
		return RouteReceiverHome
	case models.RoleDeliveryMan:
		return RouteHome
	default:
		return RouteHome
	}
}

// roleSatisfies reports whether role have grants access to a view gated on
// want. Super-Admin passes every Admin gate.
func roleSatisfies(have, want models.Role) bool {
	if have == want {
		return true
	}
	return want == models.RoleAdmin && have == models.RoleSuperAdmin
}
