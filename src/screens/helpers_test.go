package screens

import (
	"context"
	"testing"
	"time"

	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/backend/mock"
	"github.com/khabaroff/missing-persons-portal/src/config"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/khabaroff/missing-persons-portal/src/templates"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	api      *mock.Server
	store    *session.MemoryStorage
	clock    *fakeClock
	registry *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := mock.NewServer()
	t.Cleanup(api.Close)

	client := backend.NewClient(api.URL(), 5*time.Second)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	msgs := templates.Default()
	deps := Deps{
		API:      client,
		Auth:     services.NewAuthService(client, config.AuthModeSpeculative, msgs, nil),
		Messages: msgs,
		Now:      clock.Now,
	}
	store := session.NewMemoryStorage()

	return &fixture{
		api:      api,
		store:    store,
		clock:    clock,
		registry: NewRegistry(deps, store, 100, time.Hour),
	}
}

func (f *fixture) client(id string) *Client {
	return f.registry.Get(id)
}

func (f *fixture) loginAdmin(t *testing.T, c *Client) {
	t.Helper()
	require.NoError(t, c.Session.SetAdmin(context.Background(), models.NewAdminSession("admin")))
}

func (f *fixture) loginUser(t *testing.T, c *Client, userID string) {
	t.Helper()
	require.NoError(t, c.Session.SetUser(context.Background(), models.NewUserSession(userID)))
}
