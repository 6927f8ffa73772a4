package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/khabaroff/missing-persons-portal/src/models"
)

// Context is the typed view of one client's stored values.
// Absent and unreadable entries both read as "no session"; nothing expires.
type Context struct {
	storage  Storage
	clientID string
}

// For returns the session context of clientID
func For(storage Storage, clientID string) *Context {
	return &Context{storage: storage, clientID: clientID}
}

// ClientID returns the browser identity this context is bound to
func (c *Context) ClientID() string {
	return c.clientID
}

// User returns the logged-in reporter, if any
func (c *Context) User(ctx context.Context) (*models.Session, error) {
	return c.readSession(ctx, models.KeyCurrentUser)
}

// SetUser stores the logged-in reporter
func (c *Context) SetUser(ctx context.Context, s models.Session) error {
	return c.writeJSON(ctx, models.KeyCurrentUser, s)
}

// ClearUser logs the reporter out
func (c *Context) ClearUser(ctx context.Context) error {
	return c.storage.Delete(ctx, c.clientID, models.KeyCurrentUser)
}

// Admin returns the logged-in moderator, if any
func (c *Context) Admin(ctx context.Context) (*models.Session, error) {
	return c.readSession(ctx, models.KeyAdminUser)
}

// SetAdmin stores the logged-in moderator
func (c *Context) SetAdmin(ctx context.Context, s models.Session) error {
	return c.writeJSON(ctx, models.KeyAdminUser, s)
}

// ClearAdmin logs the moderator out
func (c *Context) ClearAdmin(ctx context.Context) error {
	return c.storage.Delete(ctx, c.clientID, models.KeyAdminUser)
}

// SetSignedUpUserID records the id of a freshly created account
func (c *Context) SetSignedUpUserID(ctx context.Context, userID string) error {
	return c.storage.Set(ctx, c.clientID, models.KeyUserID, userID)
}

// CachedReports reads the offline report list used when the listing cannot be
// fetched. Nothing in the portal writes this key, so it is normally empty.
func (c *Context) CachedReports(ctx context.Context) ([]models.Report, error) {
	value, err := c.storage.Get(ctx, c.clientID, models.KeyMissingPersons)
	if errors.Is(err, ErrNotFound) {
		return []models.Report{}, nil
	}
	if err != nil {
		return nil, err
	}

	var reports []models.Report
	if err := json.Unmarshal([]byte(value), &reports); err != nil || reports == nil {
		return []models.Report{}, nil
	}
	return reports, nil
}

func (c *Context) readSession(ctx context.Context, key string) (*models.Session, error) {
	value, err := c.storage.Get(ctx, c.clientID, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal([]byte(value), &s); err != nil || s.UserID == "" {
		return nil, nil
	}
	return &s, nil
}

func (c *Context) writeJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return c.storage.Set(ctx, c.clientID, key, string(data))
}
