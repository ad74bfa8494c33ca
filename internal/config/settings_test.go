package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	s, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".prefect-manager"), s.StateDir)
	assert.Equal(t, filepath.Join(home, ".prefect", "config.toml"), s.ActiveConfigPath)
	assert.Equal(t, []string{"prefect", "auth", "login", "--token"}, s.LoginCommand)
	assert.Equal(t, []string{"nano"}, s.Editor)
	assert.Equal(t, []string{"cloud", "agent"}, s.TokenField)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PREFECT_MANAGER_HOME", filepath.Join(dir, "state"))
	t.Setenv("PREFECT_MANAGER_ACTIVE_CONFIG", filepath.Join(dir, "live.toml"))
	t.Setenv("PREFECT_MANAGER_LOGIN_COMMAND", "echo login")
	t.Setenv("PREFECT_MANAGER_EDITOR", "vim -n")
	t.Setenv("PREFECT_MANAGER_TOKEN_FIELD", "cloud.api_key")

	s, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "state"), s.StateDir)
	assert.Equal(t, filepath.Join(dir, "live.toml"), s.ActiveConfigPath)
	assert.Equal(t, []string{"echo", "login"}, s.LoginCommand)
	assert.Equal(t, []string{"vim", "-n"}, s.Editor)
	assert.Equal(t, []string{"cloud", "api_key"}, s.TokenField)
}

func TestParseFieldPath(t *testing.T) {
	parts, err := ParseFieldPath("")
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud", "agent"}, parts)

	parts, err = ParseFieldPath("token")
	require.NoError(t, err)
	assert.Equal(t, []string{"token"}, parts)

	_, err = ParseFieldPath("cloud..agent")
	assert.Error(t, err)
}
