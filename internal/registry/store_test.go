package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, s.Load())
	assert.Empty(t, s.Names())
}

func TestStore_PutOverwritesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := NewStore(path)
	require.NoError(t, s.Load())

	require.NoError(t, s.Put("acme", "tok123"))
	require.NoError(t, s.Put("beta", "tokB"))
	require.NoError(t, s.Put("acme", "tok456"))

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"acme", "beta"}, reloaded.Names())

	token, ok := reloaded.Token("acme")
	require.True(t, ok)
	assert.Equal(t, "tok456", token)

	_, ok = reloaded.Token("missing")
	assert.False(t, ok)
}

func TestStore_FileFormat(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "accounts: {}\n", string(data))

	data, err = Marshal(map[string]string{"zeta": "z", "acme": "tok123"})
	require.NoError(t, err)
	assert.Equal(t, "accounts:\n    acme: tok123\n    zeta: z\n", string(data))
}

func TestStore_LoadNullAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("accounts:\n"), 0o600))

	s := NewStore(path)
	require.NoError(t, s.Load())
	assert.Empty(t, s.Names())
	require.NoError(t, s.Put("acme", "tok"))
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("accounts: [unterminated"), 0o600))

	err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse registry")
}
