package session

import (
	"context"
	"errors"
	"testing"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_AdminRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	sc := For(store, "client-1")

	admin, err := sc.Admin(ctx)
	require.NoError(t, err)
	assert.Nil(t, admin)

	require.NoError(t, sc.SetAdmin(ctx, models.NewAdminSession("admin")))

	raw, err := store.Get(ctx, "client-1", models.KeyAdminUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"admin","isAdmin":true}`, raw)

	admin, err = sc.Admin(ctx)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin", admin.UserID)
	assert.True(t, admin.IsAdmin)

	require.NoError(t, sc.ClearAdmin(ctx))
	admin, err = sc.Admin(ctx)
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestContext_ClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, For(store, "a").SetUser(ctx, models.NewUserSession("alice")))

	user, err := For(store, "b").User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = For(store, "a").User(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsLoggedIn)
}

func TestContext_CorruptValueReadsAsLoggedOut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	require.NoError(t, store.Set(ctx, "c", models.KeyCurrentUser, "{not json"))

	user, err := For(store, "c").User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestContext_SetSignedUpUserID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	sc := For(store, "c")

	_, err := store.Get(ctx, "c", models.KeyUserID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, sc.SetSignedUpUserID(ctx, "bob"))
	id, err := store.Get(ctx, "c", models.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, "bob", id)
}

func TestContext_CachedReports(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	sc := For(store, "c")

	reports, err := sc.CachedReports(ctx)
	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)

	require.NoError(t, store.Set(ctx, "c", models.KeyMissingPersons, `[{"id":1,"name":"John Doe","location":"New York"}]`))
	reports, err = sc.CachedReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "John Doe", reports[0].Name)
}

type failingStorage struct{ *MemoryStorage }

var errStorageDown = errors.New("storage down")

func (*failingStorage) Get(context.Context, string, string) (string, error) {
	return "", errStorageDown
}

func TestContext_StorageErrorsPropagate(t *testing.T) {
	sc := For(&failingStorage{MemoryStorage: NewMemoryStorage()}, "c")
	_, err := sc.User(context.Background())
	assert.ErrorIs(t, err, errStorageDown)

	// writes still reach the wrapped store
	require.NoError(t, sc.SetSignedUpUserID(context.Background(), "bob"))
}
