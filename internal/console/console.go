// Package console implements the feature services of the admin console:
// typed API calls for agents, contacts, campaigns, audiences, and the
// system-admin organization surface.
//
// Every feature follows one contract: list reads go through the query cache
// under the feature's key, and every successful mutation invalidates that key
// before returning, so the next list render refetches instead of serving a
// pre-mutation value.
package console

import (
	"context"

	"github.com/realestatead/adctl/internal/api"
	"github.com/realestatead/adctl/internal/query"
)

// Cache keys, one per feature collection.
const (
	KeyAgents        = "agents"
	KeyContacts      = "contacts"
	KeyTemplates     = "templates"
	KeyEmailTypes    = "email-types"
	KeyAudiences     = "audiences"
	KeyOrganizations = "organizations"
	KeyOrgAdmins     = "org-admins"
)

// Console bundles the API client and query cache that every feature service
// operates through.
type Console struct {
	client *api.Client
	cache  *query.Cache
}

// New creates the console service layer.
func New(client *api.Client, cache *query.Cache) *Console {
	return &Console{client: client, cache: cache}
}

// Cache exposes the underlying query cache, for callers that need to peek or
// invalidate directly (the TUI shell's refresh binding does).
func (c *Console) Cache() *query.Cache {
	return c.cache
}

// listCachedValue fetches a single-document endpoint through the query cache.
func listCachedValue[T any](ctx context.Context, c *Console, key, path string) (*T, error) {
	return query.Get(ctx, c.cache, key, func(ctx context.Context) (*T, error) {
		var value T
		if err := c.client.Get(ctx, path, &value); err != nil {
			return nil, err
		}
		return &value, nil
	})
}

// listCached fetches a collection endpoint through the query cache.
func listCached[T any](ctx context.Context, c *Console, key, path string) ([]T, error) {
	return query.Get(ctx, c.cache, key, func(ctx context.Context) ([]T, error) {
		var items []T
		if err := c.client.Get(ctx, path, &items); err != nil {
			return nil, err
		}
		return items, nil
	})
}
