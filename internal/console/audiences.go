package console

import (
	"context"
	"strconv"
)

// Audience is a saved recipient segment defined by property-preference
// filters. A nil filter field means "any".
type Audience struct {
	ID                int64  `json:"id"`
	OrganizationID    int64  `json:"organization_id"`
	Name              string `json:"name"`
	BHKTypeID         *int64 `json:"bhk_type_id"`
	FurnishingTypeID  *int64 `json:"furnishing_type_id"`
	LocationID        *int64 `json:"location_id"`
	PropertyTypeID    *int64 `json:"property_type_id"`
	PowerBackupTypeID *int64 `json:"power_backup_type_id"`
}

// AudienceInput is the create/update payload.
type AudienceInput struct {
	Name              string `json:"name"`
	BHKTypeID         *int64 `json:"bhk_type_id,omitempty"`
	FurnishingTypeID  *int64 `json:"furnishing_type_id,omitempty"`
	LocationID        *int64 `json:"location_id,omitempty"`
	PropertyTypeID    *int64 `json:"property_type_id,omitempty"`
	PowerBackupTypeID *int64 `json:"power_backup_type_id,omitempty"`
}

// Audiences lists the organization's audiences through the cache.
func (c *Console) Audiences(ctx context.Context) ([]Audience, error) {
	return listCached[Audience](ctx, c, KeyAudiences, "/audiences")
}

// CreateAudience creates an audience and invalidates the audiences key.
func (c *Console) CreateAudience(ctx context.Context, input AudienceInput) (*Audience, error) {
	var created Audience
	if err := c.client.Post(ctx, "/audiences", input, &created); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyAudiences)
	return &created, nil
}

// UpdateAudience edits an audience and invalidates the audiences key.
func (c *Console) UpdateAudience(ctx context.Context, id int64, input AudienceInput) (*Audience, error) {
	var updated Audience
	if err := c.client.Patch(ctx, "/audiences/"+strconv.FormatInt(id, 10), input, &updated); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyAudiences)
	return &updated, nil
}
