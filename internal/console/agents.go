package console

import (
	"context"
	"fmt"
)

// Agent is a tenant user who works leads: the people an org admin manages on
// the Agents screen.
type Agent struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Role           string `json:"role"`
	OrganizationID int64  `json:"organization_id"`
}

// CreateAgentInput is the create payload. Password is set once at creation;
// edits never carry it.
type CreateAgentInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// UpdateAgentInput is the edit payload.
type UpdateAgentInput struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Agents lists the organization's agents through the cache.
func (c *Console) Agents(ctx context.Context) ([]Agent, error) {
	return listCached[Agent](ctx, c, KeyAgents, "/users")
}

// CreateAgent creates an agent and invalidates the agents key.
func (c *Console) CreateAgent(ctx context.Context, input CreateAgentInput) (*Agent, error) {
	var created Agent
	if err := c.client.Post(ctx, "/users", input, &created); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyAgents)
	return &created, nil
}

// UpdateAgent edits an agent and invalidates the agents key.
func (c *Console) UpdateAgent(ctx context.Context, id string, input UpdateAgentInput) (*Agent, error) {
	var updated Agent
	if err := c.client.Patch(ctx, "/users/"+id, input, &updated); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyAgents)
	return &updated, nil
}

// DeleteAgent removes an agent and invalidates the agents key. Callers must
// have confirmed the deletion with the user before reaching this point.
func (c *Console) DeleteAgent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("agent id is required")
	}
	if err := c.client.Delete(ctx, "/users/"+id, nil); err != nil {
		return err
	}
	c.cache.Invalidate(KeyAgents)
	return nil
}
