package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreStartsEmptyWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.Empty(t, s.Token())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("tok123"))
	require.Equal(t, "tok123", s.Token())

	// A fresh store picks the token up from disk.
	reloaded, err := NewStore(path)
	require.NoError(t, err)
	require.Equal(t, "tok123", reloaded.Token())
}

func TestTokenFileIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("tok123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("tok123"))

	require.NoError(t, s.Clear())
	require.Empty(t, s.Token())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing again is a no-op.
	require.NoError(t, s.Clear())
}
