package authz

// NavEntry is one entry in an area's navigation table: a display name, the
// client-side route it leads to, and the set of roles allowed to see it.
type NavEntry struct {
	Name         string
	Route        string
	AllowedRoles []Role
}

// AllowedFor reports whether the entry is visible to the given role.
func (e NavEntry) AllowedFor(role Role) bool {
	for _, r := range e.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// TenantNavigation is the navigation table of the organization console.
// It is the single source of truth for tenant menu visibility.
var TenantNavigation = []NavEntry{
	{Name: "Dashboard", Route: "/app/dashboard", AllowedRoles: []Role{RoleOrgAdmin, RoleOrgUser}},
	{Name: "Agents", Route: "/app/agents", AllowedRoles: []Role{RoleOrgAdmin}},
	{Name: "Contacts", Route: "/app/contacts", AllowedRoles: []Role{RoleOrgAdmin, RoleOrgUser}},
	{Name: "Campaigns", Route: "/app/campaigns", AllowedRoles: []Role{RoleOrgAdmin, RoleOrgUser}},
	{Name: "Organization", Route: "/app/organization", AllowedRoles: []Role{RoleOrgAdmin}},
	{Name: "Settings", Route: "/app/settings", AllowedRoles: []Role{RoleOrgAdmin, RoleOrgUser}},
}

// SystemNavigation is the navigation table of the system-admin console.
var SystemNavigation = []NavEntry{
	{Name: "Dashboard", Route: "/admin/dashboard", AllowedRoles: []Role{RoleSystemAdmin}},
	{Name: "Organizations", Route: "/admin/organizations", AllowedRoles: []Role{RoleSystemAdmin}},
	{Name: "Org Admins", Route: "/admin/org-admins", AllowedRoles: []Role{RoleSystemAdmin}},
}

// NavigationFor returns the navigation table of an area.
func NavigationFor(area Area) []NavEntry {
	if area == AreaSystem {
		return SystemNavigation
	}
	return TenantNavigation
}

// Visible filters a navigation table down to the entries the role may see,
// preserving table order. A role with no visible entries yields an empty
// slice, never an error.
func Visible(table []NavEntry, role Role) []NavEntry {
	visible := make([]NavEntry, 0, len(table))
	for _, entry := range table {
		if entry.AllowedFor(role) {
			visible = append(visible, entry)
		}
	}
	return visible
}

// EntryByRoute looks up a navigation entry by its route in the given table.
// The second return is false when the route is not in the table.
func EntryByRoute(table []NavEntry, route string) (NavEntry, bool) {
	for _, entry := range table {
		if entry.Route == route {
			return entry, true
		}
	}
	return NavEntry{}, false
}
