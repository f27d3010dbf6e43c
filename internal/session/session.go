package session

import (
	"github.com/realestatead/adctl/internal/authz"
)

// User is the normalized identity record the console works with.
//
// It is constructed exactly once, by the auth gateway at login time, from one
// of the two backend login payload shapes. It is never mutated in place; a
// changed role requires a new login.
type User struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`

	// OrgID is the owning organization's identifier, stringified at the
	// boundary. System admins carry the "system" sentinel.
	OrgID string `json:"orgId"`

	// OrganizationName is the display name of the organization, when the
	// login payload carried one.
	OrganizationName string `json:"organizationName,omitempty"`
}

// SystemOrgID is the sentinel OrgID for system administrators.
const SystemOrgID = "system"

// Session is the authenticated identity as known to the client: an opaque
// bearer token plus the normalized user it was issued to. Token and user are
// written and cleared together; a read never observes one without the other.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user_data"`
}
