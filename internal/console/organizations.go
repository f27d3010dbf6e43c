package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/realestatead/adctl/internal/query"
)

// Organization is a tenant, managed from the system-admin area.
type Organization struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	DeletedAt   string `json:"deleted_at,omitempty"`
}

// OrgAdmin is an organization administrator account.
type OrgAdmin struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Status         string `json:"status,omitempty"`
	OrganizationID int64  `json:"organization_id,omitempty"`
}

// CreateOrganizationInput creates a tenant together with its first admin.
type CreateOrganizationInput struct {
	Organization struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	} `json:"organization"`
	User struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone,omitempty"`
	} `json:"user"`
}

// UpdateOrganizationInput edits a tenant's profile.
type UpdateOrganizationInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateOrgAdminInput creates an additional admin for a tenant.
type CreateOrgAdminInput struct {
	User struct {
		OrganizationID int64  `json:"organization_id"`
		FullName       string `json:"full_name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Phone          string `json:"phone,omitempty"`
	} `json:"user"`
}

// UpdateOrgAdminInput edits an admin's profile fields.
type UpdateOrgAdminInput struct {
	User struct {
		FullName string `json:"full_name,omitempty"`
		Phone    string `json:"phone,omitempty"`
	} `json:"user"`
}

// Organizations lists every tenant through the cache. The backend has served
// this both as a bare array and wrapped in {"organizations": [...]}; both
// shapes are accepted.
func (c *Console) Organizations(ctx context.Context) ([]Organization, error) {
	return query.Get(ctx, c.cache, KeyOrganizations, func(ctx context.Context) ([]Organization, error) {
		var raw json.RawMessage
		if err := c.client.Get(ctx, "/organizations", &raw); err != nil {
			return nil, err
		}

		var orgs []Organization
		if err := json.Unmarshal(raw, &orgs); err == nil {
			return orgs, nil
		}

		var wrapped struct {
			Organizations []Organization `json:"organizations"`
		}
		if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Organizations != nil {
			return wrapped.Organizations, nil
		}

		return nil, fmt.Errorf("unexpected organizations response shape")
	})
}

// CreateOrganization provisions a tenant plus its first admin and
// invalidates the organizations key.
func (c *Console) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*Organization, error) {
	var resp struct {
		Organization Organization `json:"organization"`
	}
	if err := c.client.Post(ctx, "/organizations", input, &resp); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyOrganizations)
	return &resp.Organization, nil
}

// UpdateOrganization edits a tenant's profile and invalidates the
// organizations key.
func (c *Console) UpdateOrganization(ctx context.Context, id int64, input UpdateOrganizationInput) (*Organization, error) {
	body := map[string]any{"organization": input}
	var updated Organization
	if err := c.client.Patch(ctx, "/organizations/"+strconv.FormatInt(id, 10), body, &updated); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyOrganizations)
	return &updated, nil
}

// OrgAdmins lists organization administrators through the cache.
func (c *Console) OrgAdmins(ctx context.Context) ([]OrgAdmin, error) {
	return listCached[OrgAdmin](ctx, c, KeyOrgAdmins, "/admin/org_admins")
}

// CreateOrgAdmin creates an organization admin and invalidates the
// org-admins key.
func (c *Console) CreateOrgAdmin(ctx context.Context, input CreateOrgAdminInput) (*OrgAdmin, error) {
	var created OrgAdmin
	if err := c.client.Post(ctx, "/admin/org_admins", input, &created); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyOrgAdmins)
	return &created, nil
}

// UpdateOrgAdmin edits an organization admin and invalidates the org-admins
// key.
func (c *Console) UpdateOrgAdmin(ctx context.Context, id int64, input UpdateOrgAdminInput) (*OrgAdmin, error) {
	var updated OrgAdmin
	if err := c.client.Patch(ctx, "/admin/org_admins/"+strconv.FormatInt(id, 10), input, &updated); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyOrgAdmins)
	return &updated, nil
}
