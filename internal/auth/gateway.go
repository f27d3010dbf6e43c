package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/realestatead/adctl/internal/api"
	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/log"
	"github.com/realestatead/adctl/internal/session"
)

// UserCacheKey is the query-cache key under which the current user is read.
const UserCacheKey = "auth/user"

// Credentials are the login inputs. Presence and email syntax are enforced by
// the submitting form, not here.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Invalidator drops query-cache entries after a state change. Satisfied by
// *query.Cache.
type Invalidator interface {
	Invalidate(key string)
}

// Gateway performs credential exchange against the two login endpoints and
// normalizes their heterogeneous payloads into one session.User. Past this
// point no caller ever branches on which endpoint authenticated.
type Gateway struct {
	client   *api.Client
	sessions *session.Store
	cache    Invalidator
	logger   *log.Logger
}

// NewGateway creates an auth gateway. cache may be nil when no query cache is
// in play (plain one-shot commands construct it that way).
func NewGateway(client *api.Client, sessions *session.Store, cache Invalidator) *Gateway {
	return &Gateway{
		client:   client,
		sessions: sessions,
		cache:    cache,
		logger:   log.DefaultLogger(),
	}
}

// flexID tolerates backends that send identifiers as either JSON numbers or
// strings, normalizing to string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	return fmt.Errorf("identifier is neither string nor number: %s", data)
}

// tenantLoginResponse is the shape of POST /auth/login.
type tenantLoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID               flexID `json:"id"`
		FullName         string `json:"full_name"`
		Email            string `json:"email"`
		Role             string `json:"role"`
		OrganizationID   flexID `json:"organization_id"`
		OrganizationName string `json:"organization_name"`
	} `json:"user"`
}

// superLoginResponse is the shape of POST /auth/super/login. The nested
// record carries id and email only.
type superLoginResponse struct {
	Token     string `json:"token"`
	SuperUser struct {
		ID    flexID `json:"id"`
		Email string `json:"email"`
	} `json:"super_user"`
}

// Login exchanges credentials for a session. asSystemAdmin selects the
// system-admin endpoint; the returned session is already normalized and
// persisted, so callers never branch on asSystemAdmin again.
//
// A success response without a token is a fatal local error: nothing is
// persisted and the user stays logged out.
func (g *Gateway) Login(ctx context.Context, creds Credentials, asSystemAdmin bool) (*session.Session, error) {
	var sess session.Session

	if asSystemAdmin {
		var resp superLoginResponse
		if err := g.client.Post(ctx, "/auth/super/login", creds, &resp); err != nil {
			return nil, err
		}
		if resp.Token == "" {
			return nil, fmt.Errorf("login succeeded but no credential was issued")
		}
		sess = session.Session{
			Token: resp.Token,
			User: session.User{
				ID:    string(resp.SuperUser.ID),
				Name:  "System Admin",
				Email: resp.SuperUser.Email,
				Role:  authz.RoleSystemAdmin,
				OrgID: session.SystemOrgID,
			},
		}
	} else {
		var resp tenantLoginResponse
		if err := g.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
			return nil, err
		}
		if resp.Token == "" {
			return nil, fmt.Errorf("login succeeded but no credential was issued")
		}
		sess = session.Session{
			Token: resp.Token,
			User: session.User{
				ID:               string(resp.User.ID),
				Name:             resp.User.FullName,
				Email:            resp.User.Email,
				Role:             mapTenantRole(resp.User.Role),
				OrgID:            string(resp.User.OrganizationID),
				OrganizationName: resp.User.OrganizationName,
			},
		}
	}

	if err := g.sessions.Write(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	g.invalidateUser()

	g.logger.Info("logged in",
		"user", sess.User.Email, "role", sess.User.Role, "org", sess.User.OrgID)
	return &sess, nil
}

// mapTenantRole maps the tenant backend's role strings onto the client enum.
// The backend has sent both display names ("Office Admin", "User") and the
// canonical values over its lifetime; unknown strings get the least
// privileged role.
func mapTenantRole(wire string) authz.Role {
	switch wire {
	case "Office Admin", string(authz.RoleOrgAdmin):
		return authz.RoleOrgAdmin
	default:
		return authz.RoleOrgUser
	}
}

// Logout clears the stored session. A server-side logout endpoint is not
// assumed to exist; if it does, the call is best-effort and the local clear
// wins regardless.
func (g *Gateway) Logout(ctx context.Context) error {
	notifyCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	_ = g.client.Post(notifyCtx, "/auth/logout", nil, nil)
	cancel()

	if err := g.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	g.invalidateUser()
	g.logger.Info("logged out")
	return nil
}

// CurrentUser reads the stored identity. Returns nil when logged out. This is
// the function the query cache wraps as the current-user read that every
// route guard depends on; no network call is involved.
func (g *Gateway) CurrentUser() (*session.User, error) {
	sess, err := g.sessions.Read()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	user := sess.User
	return &user, nil
}

func (g *Gateway) invalidateUser() {
	if g.cache != nil {
		g.cache.Invalidate(UserCacheKey)
	}
}
