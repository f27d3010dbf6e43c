package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

// Contact is a lead in the organization's book, with optional property
// preferences attached.
type Contact struct {
	ID             int64               `json:"id"`
	OrganizationID int64               `json:"organization_id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Preferences    []ContactPreference `json:"preferences,omitempty"`
}

// ContactPreference is one stored property-preference row.
type ContactPreference struct {
	ID                int64  `json:"id"`
	ContactID         int64  `json:"contact_id"`
	BHKTypeID         *int64 `json:"bhk_type_id"`
	FurnishingTypeID  *int64 `json:"furnishing_type_id"`
	LocationID        *int64 `json:"location_id"`
	PropertyTypeID    *int64 `json:"property_type_id"`
	PowerBackupTypeID *int64 `json:"power_backup_type_id"`
}

// CreateContactInput nests the contact record and an optional preference, as
// the backend expects.
type CreateContactInput struct {
	Contact struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	} `json:"contact"`
	Preference *PreferenceInput `json:"preference,omitempty"`
}

// PreferenceInput carries preference selections by display value.
type PreferenceInput struct {
	BHKType         string `json:"bhk_type,omitempty"`
	FurnishingType  string `json:"furnishing_type,omitempty"`
	Location        string `json:"location,omitempty"`
	PropertyType    string `json:"property_type,omitempty"`
	PowerBackupType string `json:"power_backup_type,omitempty"`
}

// Pagination describes one page of a paginated listing.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
	PerPage     int `json:"per_page"`
}

// ContactPage is the paginated contacts response.
type ContactPage struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

// CSVImportResult is the backend's acknowledgment of a CSV import.
type CSVImportResult struct {
	Message  string `json:"message"`
	ImportID string `json:"import_id,omitempty"`
}

// Contacts lists every contact of the organization through the cache.
func (c *Console) Contacts(ctx context.Context) ([]Contact, error) {
	return listCached[Contact](ctx, c, KeyContacts, "/contacts")
}

// ContactsPage fetches one page of contacts. Pages are cached per page/size
// under keys derived from the contacts key, so a contact mutation drops them
// all at once.
func (c *Console) ContactsPage(ctx context.Context, page, perPage int) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 5
	}
	key := fmt.Sprintf("%s/page/%d/%d", KeyContacts, page, perPage)
	path := "/contacts/paginated?page=" + strconv.Itoa(page) + "&per_page=" + strconv.Itoa(perPage)

	result, err := listCachedValue[ContactPage](ctx, c, key, path)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateContact creates a contact and invalidates the contacts key and every
// cached page derived from it.
func (c *Console) CreateContact(ctx context.Context, input CreateContactInput) (*Contact, error) {
	var created Contact
	if err := c.client.Post(ctx, "/contacts", input, &created); err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix(KeyContacts)
	return &created, nil
}

// DeleteContact removes a contact. Callers confirm with the user first.
func (c *Console) DeleteContact(ctx context.Context, id int64) error {
	if err := c.client.Delete(ctx, "/contacts/"+strconv.FormatInt(id, 10), nil); err != nil {
		return err
	}
	c.cache.InvalidatePrefix(KeyContacts)
	return nil
}

// ImportContactsCSV uploads a CSV of contacts. The import itself runs
// server-side; the contacts cache is invalidated so subsequent lists pick up
// whatever the import created.
func (c *Console) ImportContactsCSV(ctx context.Context, fileName string, file io.Reader) (*CSVImportResult, error) {
	var result CSVImportResult
	if err := c.client.PostMultipart(ctx, "/contacts/import", "file", fileName, file, &result); err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix(KeyContacts)
	return &result, nil
}
