package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routes(entries []NavEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Route)
	}
	return out
}

func TestVisible_TenantAdmin(t *testing.T) {
	got := Visible(TenantNavigation, RoleOrgAdmin)
	assert.Equal(t, []string{
		"/app/dashboard",
		"/app/agents",
		"/app/contacts",
		"/app/campaigns",
		"/app/organization",
		"/app/settings",
	}, routes(got))
}

func TestVisible_TenantUser(t *testing.T) {
	got := Visible(TenantNavigation, RoleOrgUser)
	assert.Equal(t, []string{
		"/app/dashboard",
		"/app/contacts",
		"/app/campaigns",
		"/app/settings",
	}, routes(got), "regular users do not see Agents or Organization")
}

func TestVisible_SystemAdminInTenantTable(t *testing.T) {
	got := Visible(TenantNavigation, RoleSystemAdmin)
	assert.Empty(t, got)
	assert.NotNil(t, got, "no visible entries is an empty slice, not nil")
}

func TestVisible_SystemTable(t *testing.T) {
	assert.Equal(t, []string{
		"/admin/dashboard",
		"/admin/organizations",
		"/admin/org-admins",
	}, routes(Visible(SystemNavigation, RoleSystemAdmin)))

	assert.Empty(t, Visible(SystemNavigation, RoleOrgAdmin))
	assert.Empty(t, Visible(SystemNavigation, RoleOrgUser))
}

func TestVisible_UnknownRole(t *testing.T) {
	assert.Empty(t, Visible(TenantNavigation, Role("GUEST")))
}

func TestEntryByRoute(t *testing.T) {
	entry, ok := EntryByRoute(TenantNavigation, "/app/agents")
	require.True(t, ok)
	assert.Equal(t, "Agents", entry.Name)
	assert.True(t, entry.AllowedFor(RoleOrgAdmin))
	assert.False(t, entry.AllowedFor(RoleOrgUser))

	_, ok = EntryByRoute(TenantNavigation, "/admin/dashboard")
	assert.False(t, ok)
}

func TestNavigationFor(t *testing.T) {
	assert.Equal(t, TenantNavigation, NavigationFor(AreaTenant))
	assert.Equal(t, SystemNavigation, NavigationFor(AreaSystem))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOrgAdmin.Valid())
	assert.True(t, RoleOrgUser.Valid())
	assert.True(t, RoleSystemAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("ROOT").Valid())
}

func TestAreas(t *testing.T) {
	assert.Equal(t, AreaTenant, HomeArea(RoleOrgAdmin))
	assert.Equal(t, AreaTenant, HomeArea(RoleOrgUser))
	assert.Equal(t, AreaSystem, HomeArea(RoleSystemAdmin))

	assert.True(t, AreaTenant.Allows(RoleOrgUser))
	assert.False(t, AreaTenant.Allows(RoleSystemAdmin))
	assert.True(t, AreaSystem.Allows(RoleSystemAdmin))
	assert.False(t, AreaSystem.Allows(RoleOrgAdmin))

	assert.Equal(t, "/app/dashboard", AreaTenant.DashboardRoute())
	assert.Equal(t, "/admin/dashboard", AreaSystem.DashboardRoute())
	assert.Equal(t, "/login", AreaTenant.LoginRoute())
	assert.Equal(t, "/admin/login", AreaSystem.LoginRoute())
}
