package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestatead/adctl/internal/auth"
	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/query"
	"github.com/realestatead/adctl/internal/session"
)

type stubSource struct {
	user *session.User
	err  error
}

func (s *stubSource) CurrentUser() (*session.User, error) {
	return s.user, s.err
}

func tenantUser(role authz.Role) *session.User {
	return &session.User{ID: "1", Name: "Jane", Email: "jane@acme.com", Role: role, OrgID: "7"}
}

func newGuard(area authz.Area, source *stubSource) *Guard {
	return New(area, source, query.New(query.DefaultTTL))
}

func TestEvaluate_NoSessionRedirectsToLogin(t *testing.T) {
	g := newGuard(authz.AreaTenant, &stubSource{})

	d := g.Evaluate(context.Background(), "/app/dashboard")
	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, "/login", d.Redirect)
	assert.Equal(t, "/app/dashboard", d.From, "the requested route survives the redirect")
	assert.Nil(t, d.User)
}

func TestEvaluate_NoSessionSystemArea(t *testing.T) {
	g := newGuard(authz.AreaSystem, &stubSource{})

	d := g.Evaluate(context.Background(), "/admin/organizations")
	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, "/admin/login", d.Redirect)
	assert.Equal(t, "/admin/organizations", d.From)
}

func TestEvaluate_SourceErrorDegradesToUnauthenticated(t *testing.T) {
	g := newGuard(authz.AreaTenant, &stubSource{err: errors.New("disk trouble")})

	d := g.Evaluate(context.Background(), "/app/contacts")
	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, "/login", d.Redirect)
}

func TestEvaluate_Authorized(t *testing.T) {
	g := newGuard(authz.AreaTenant, &stubSource{user: tenantUser(authz.RoleOrgUser)})

	d := g.Evaluate(context.Background(), "/app/contacts")
	assert.Equal(t, StateAuthorized, d.State)
	require.NotNil(t, d.User)
	assert.Equal(t, "Jane", d.User.Name)
	assert.Empty(t, d.Redirect)
}

func TestEvaluate_WrongRole(t *testing.T) {
	t.Run("tenant user in system area", func(t *testing.T) {
		g := newGuard(authz.AreaSystem, &stubSource{user: tenantUser(authz.RoleOrgAdmin)})

		d := g.Evaluate(context.Background(), "/admin/organizations")
		assert.Equal(t, StateWrongRole, d.State)
		assert.Equal(t, "/app/dashboard", d.Redirect, "sent home, not rejected")
		require.NotNil(t, d.User)
	})

	t.Run("system admin in tenant area", func(t *testing.T) {
		g := newGuard(authz.AreaTenant, &stubSource{user: tenantUser(authz.RoleSystemAdmin)})

		d := g.Evaluate(context.Background(), "/app/dashboard")
		assert.Equal(t, StateWrongRole, d.State)
		assert.Equal(t, "/admin/dashboard", d.Redirect)
	})
}

func TestEvaluate_CachesUserRead(t *testing.T) {
	source := &stubSource{user: tenantUser(authz.RoleOrgUser)}
	cache := query.New(query.DefaultTTL)
	g := New(authz.AreaTenant, source, cache)

	d := g.Evaluate(context.Background(), "/app/dashboard")
	require.Equal(t, StateAuthorized, d.State)

	// the second evaluation reads the cached user, not the source
	source.user = nil
	d = g.Evaluate(context.Background(), "/app/contacts")
	assert.Equal(t, StateAuthorized, d.State)

	// logout invalidates the cached read
	cache.Invalidate(auth.UserCacheKey)
	d = g.Evaluate(context.Background(), "/app/contacts")
	assert.Equal(t, StateUnauthenticated, d.State)
}

func TestNavigation(t *testing.T) {
	g := newGuard(authz.AreaTenant, &stubSource{user: tenantUser(authz.RoleOrgUser)})

	d := g.Evaluate(context.Background(), "/app/dashboard")
	nav := g.Navigation(d)
	require.Len(t, nav, 4)
	for _, entry := range nav {
		assert.NotEqual(t, "/app/agents", entry.Route, "regular users never see Agents")
	}

	assert.Empty(t, g.Navigation(Decision{State: StateUnauthenticated}))
	assert.NotNil(t, g.Navigation(Decision{State: StateUnauthenticated}))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "wrong_role", StateWrongRole.String())
	assert.Equal(t, "authorized", StateAuthorized.String())
}
