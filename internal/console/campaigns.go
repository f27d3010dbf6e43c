package console

import (
	"context"
	"strconv"
)

// EmailType categorizes templates (e.g. "new_listing", "open_house").
type EmailType struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

// EmailTemplate is a reusable campaign email.
type EmailTemplate struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	EmailTypeID    int64  `json:"email_type_id"`
	Name           string `json:"name"`
	Subject        string `json:"subject"`
	Preheader      string `json:"preheader,omitempty"`
	FromName       string `json:"from_name,omitempty"`
	FromEmail      string `json:"from_email"`
	ReplyTo        string `json:"reply_to,omitempty"`
	HTMLBody       string `json:"html_body,omitempty"`
	TextBody       string `json:"text_body,omitempty"`
}

// CreateTemplateInput is the template create payload.
type CreateTemplateInput struct {
	EmailTypeID int64  `json:"email_type_id"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Preheader   string `json:"preheader,omitempty"`
	FromName    string `json:"from_name,omitempty"`
	FromEmail   string `json:"from_email"`
	ReplyTo     string `json:"reply_to,omitempty"`
	HTMLBody    string `json:"html_body,omitempty"`
	TextBody    string `json:"text_body,omitempty"`
}

// InstantCampaignInput sends one template to an explicit recipient list.
type InstantCampaignInput struct {
	Emails          []string `json:"emails"`
	EmailTemplateID int64    `json:"email_template_id"`
}

// EmailTypes lists the available email types through the cache.
func (c *Console) EmailTypes(ctx context.Context) ([]EmailType, error) {
	return listCached[EmailType](ctx, c, KeyEmailTypes, "/email_types")
}

// CreateEmailType creates an email type and invalidates the email-types key.
func (c *Console) CreateEmailType(ctx context.Context, key, description string) (*EmailType, error) {
	body := map[string]any{
		"email_type": map[string]string{
			"key":         key,
			"description": description,
		},
	}
	var created EmailType
	if err := c.client.Post(ctx, "/email_types", body, &created); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyEmailTypes)
	return &created, nil
}

// Templates lists the organization's email templates through the cache.
func (c *Console) Templates(ctx context.Context) ([]EmailTemplate, error) {
	return listCached[EmailTemplate](ctx, c, KeyTemplates, "/email_templates")
}

// Template fetches one template by id, cached under a key derived from the
// templates key.
func (c *Console) Template(ctx context.Context, id int64) (*EmailTemplate, error) {
	idStr := strconv.FormatInt(id, 10)
	return listCachedValue[EmailTemplate](ctx, c, KeyTemplates+"/"+idStr, "/email_templates/"+idStr)
}

// CreateTemplate creates a template and invalidates the templates key and
// its derived per-item keys.
func (c *Console) CreateTemplate(ctx context.Context, input CreateTemplateInput) error {
	body := map[string]any{"email_template": input}
	var ack struct {
		Message string `json:"message"`
	}
	if err := c.client.Post(ctx, "/email_templates", body, &ack); err != nil {
		return err
	}
	c.cache.InvalidatePrefix(KeyTemplates)
	return nil
}

// SendInstantCampaign dispatches a template to the given recipients. No list
// cache is tied to instant sends, so nothing is invalidated.
func (c *Console) SendInstantCampaign(ctx context.Context, input InstantCampaignInput) (string, error) {
	var ack struct {
		Message string `json:"message"`
	}
	if err := c.client.Post(ctx, "/create/campaign", input, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}
