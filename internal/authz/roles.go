package authz

// Role identifies the authorization level of an authenticated user.
//
// Every authorization decision in the client switches on this value alone;
// there is no secondary permission list. The server remains authoritative and
// re-checks every request; client-side filtering is a UX convenience, not a
// security boundary.
type Role string

const (
	// RoleOrgAdmin manages a tenant organization: agents, contacts,
	// campaigns, and the organization profile.
	RoleOrgAdmin Role = "ORG_ADMIN"

	// RoleOrgUser is a regular tenant user. Cannot manage agents.
	RoleOrgUser Role = "ORG_USER"

	// RoleSystemAdmin is the cross-tenant operator role managing
	// organizations and their administrators.
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrgAdmin, RoleOrgUser, RoleSystemAdmin:
		return true
	}
	return false
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// Area is a guarded region of the console. Tenant users live in AreaTenant,
// system admins in AreaSystem; a session holding the wrong role for an area
// is redirected to its home area rather than rejected.
type Area string

const (
	// AreaTenant covers the organization console (/app/*).
	AreaTenant Area = "tenant"

	// AreaSystem covers the system-admin console (/admin/*).
	AreaSystem Area = "system"
)

// HomeArea returns the area a role belongs to.
func HomeArea(r Role) Area {
	if r == RoleSystemAdmin {
		return AreaSystem
	}
	return AreaTenant
}

// Allows reports whether a role may enter the area.
func (a Area) Allows(r Role) bool {
	return HomeArea(r) == a
}

// DashboardRoute returns the default landing route of the area, used as the
// redirect target when a session holds the wrong role for its current area.
func (a Area) DashboardRoute() string {
	if a == AreaSystem {
		return "/admin/dashboard"
	}
	return "/app/dashboard"
}

// LoginRoute returns the login route of the area.
func (a Area) LoginRoute() string {
	if a == AreaSystem {
		return "/admin/login"
	}
	return "/login"
}
