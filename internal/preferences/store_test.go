package preferences

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vethome/internal/database"
	"vethome/internal/logger"
	"vethome/internal/repositories"
)

func newGORMStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	backend := NewGORMBackend(repositories.NewGORMPreferenceRepository(db))
	return NewStore(backend, logger.NewDiscard())
}

func newRedisStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	backend, err := NewRedisBackend(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return NewStore(backend, logger.NewDiscard()), mr
}

func exerciseStore(t *testing.T, store *Store) {
	ctx := context.Background()

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, snap, "defaults are false and empty")

	require.NoError(t, store.SetUserInfo(ctx, "a@b.cl", "Ana", "7"))
	require.NoError(t, store.SetLoggedIn(ctx, true))

	loggedIn, err := store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
	email, err := store.UserEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.cl", email)
	name, err := store.UserName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)
	id, err := store.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	require.NoError(t, store.ClearUserData(ctx))
	snap, err = store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, snap)
}

func TestStore_GORMBackend(t *testing.T) {
	exerciseStore(t, newGORMStore(t))
}

func TestStore_RedisBackend(t *testing.T) {
	store, mr := newRedisStore(t)
	exerciseStore(t, store)

	require.NoError(t, store.SetLoggedIn(context.Background(), true))
	got, err := mr.Get("vet_home_prefs.is_logged_in")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestStore_SubscribeSeesWrites(t *testing.T) {
	store := newGORMStore(t)
	ch, cancel := store.Subscribe()
	defer cancel()

	assert.Equal(t, Snapshot{}, <-ch)

	require.NoError(t, store.SetUserInfo(context.Background(), "a@b.cl", "Ana", "7"))
	snap := <-ch
	assert.Equal(t, "Ana", snap.Name)
	assert.False(t, snap.LoggedIn)
}

func TestStore_Refresh(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	backend := NewGORMBackend(repositories.NewGORMPreferenceRepository(db))

	writer := NewStore(backend, logger.NewDiscard())
	require.NoError(t, writer.SetLoggedIn(ctx, true))

	reader := NewStore(backend, logger.NewDiscard())
	ch, cancel := reader.Subscribe()
	defer cancel()
	assert.False(t, (<-ch).LoggedIn)

	require.NoError(t, reader.Refresh(ctx))
	assert.True(t, (<-ch).LoggedIn)
}

func TestRedisBackend_PingFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisBackend(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}
