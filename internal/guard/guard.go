package guard

import (
	"context"

	"github.com/realestatead/adctl/internal/auth"
	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/query"
	"github.com/realestatead/adctl/internal/session"
)

// State is the route-guard state machine. Every guarded area evaluates it
// before rendering anything: no gated content is ever shown while the
// current-user read is unresolved.
type State int

const (
	// StateResolving means the current-user read is still in flight. The
	// shell renders a loading indicator and nothing else.
	StateResolving State = iota

	// StateUnauthenticated means no session exists. Redirect to login,
	// preserving the requested route for post-login navigation.
	StateUnauthenticated

	// StateWrongRole means a session exists but its role does not belong
	// to this area. Redirect to the home area's dashboard.
	StateWrongRole

	// StateAuthorized is terminal: render the area's navigation and the
	// requested screen.
	StateAuthorized
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateWrongRole:
		return "wrong_role"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	State State

	// User is set only when State is StateAuthorized or StateWrongRole.
	User *session.User

	// Redirect is the route to replace the current location with, set for
	// StateUnauthenticated (the area's login route) and StateWrongRole
	// (the home area's dashboard).
	Redirect string

	// From preserves the originally requested route across a login
	// redirect so the shell can return to it afterwards.
	From string
}

// UserSource is the local current-user read the guard depends on. Satisfied
// by *auth.Gateway.
type UserSource interface {
	CurrentUser() (*session.User, error)
}

// Guard gates one area of the console.
type Guard struct {
	area   authz.Area
	source UserSource
	cache  *query.Cache
}

// New creates a guard for the area. The cache collapses concurrent
// evaluations (two screens asking for the current user at once perform one
// underlying read).
func New(area authz.Area, source UserSource, cache *query.Cache) *Guard {
	return &Guard{area: area, source: source, cache: cache}
}

// Area returns the area this guard protects.
func (g *Guard) Area() authz.Area {
	return g.area
}

// Evaluate resolves the current user and decides whether the requested route
// may render. It never returns StateResolving: that state belongs to the
// caller while Evaluate is in flight.
//
// A failed session read degrades to unauthenticated rather than erroring;
// corrupt or unreadable local state reads as logged out.
func (g *Guard) Evaluate(ctx context.Context, requested string) Decision {
	user, err := query.Get(ctx, g.cache, auth.UserCacheKey, func(ctx context.Context) (*session.User, error) {
		return g.source.CurrentUser()
	})
	if err != nil || user == nil {
		return Decision{
			State:    StateUnauthenticated,
			Redirect: g.area.LoginRoute(),
			From:     requested,
		}
	}

	if !g.area.Allows(user.Role) {
		return Decision{
			State:    StateWrongRole,
			User:     user,
			Redirect: authz.HomeArea(user.Role).DashboardRoute(),
		}
	}

	return Decision{
		State: StateAuthorized,
		User:  user,
	}
}

// Navigation returns the area's navigation entries visible to the decided
// user. Empty (never nil) for non-authorized decisions.
func (g *Guard) Navigation(d Decision) []authz.NavEntry {
	if d.State != StateAuthorized || d.User == nil {
		return []authz.NavEntry{}
	}
	return authz.Visible(authz.NavigationFor(g.area), d.User.Role)
}
