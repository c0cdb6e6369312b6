package preferences

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Error(string, error) {}
func (nopLogger) Warning(string)      {}
func (nopLogger) Close()              {}

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, nopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_GetSetDelete(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Delete("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_AccountNameSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	first, err := Open(path, nopLogger{})
	require.NoError(t, err)
	_, ok := first.AccountName()
	assert.False(t, ok)
	require.NoError(t, first.SetAccountName("ana@example.com"))
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	name, ok := second.AccountName()
	assert.True(t, ok)
	assert.Equal(t, "ana@example.com", name)

	require.NoError(t, second.ClearAccountName())
	_, ok = second.AccountName()
	assert.False(t, ok)
}

func TestStore_AccountsPermission(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	assert.False(t, store.HasAccountsPermission())
	require.NoError(t, store.GrantAccountsPermission())
	assert.True(t, store.HasAccountsPermission())
	require.NoError(t, store.RevokeAccountsPermission())
	assert.False(t, store.HasAccountsPermission())
}
