package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	return store
}

func TestStorePutGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "deepseek/api-key", "sk-test"))
	require.NoError(t, store.Put(ctx, "other", "value"))

	value, err := store.Get(ctx, " deepseek/api-key ")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", value)

	require.NoError(t, store.Delete(ctx, "deepseek/api-key"))
	_, err = store.Get(ctx, "deepseek/api-key")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)

	value, err = store.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestStoreFileIsPrivate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "deepseek/api-key", "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreGetMissingFileIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestStore(t).Get(context.Background(), "deepseek/api-key")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreDeleteMissingKeyIsNoop(t *testing.T) {
	t.Parallel()

	require.NoError(t, newTestStore(t).Delete(context.Background(), "nothing-here"))
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.ErrorIs(t, store.Put(context.Background(), "  ", "x"), errEmptyKey)
	_, err := store.Get(context.Background(), "")
	require.ErrorIs(t, err, errEmptyKey)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newTestStore(t)
	require.ErrorIs(t, store.Put(ctx, "k", "v"), context.Canceled)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Delete(ctx, "k"), context.Canceled)
}
