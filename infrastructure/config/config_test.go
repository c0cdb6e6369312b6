package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []EnvKey{ClientSecretFile, DataDir, PlaylistID, CallbackAddr, ConnectivityHost, ConnectivityTimeout, LogDir} {
		t.Setenv(string(key), "")
		os.Unsetenv(string(key))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPlaylistID, cfg.PlaylistID)
	assert.Equal(t, DefaultClientSecretFile, cfg.ClientSecretFile)
	assert.Equal(t, 3*time.Second, cfg.ConnectivityTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.CallbackURL())
	assert.Equal(t, filepath.Join(DefaultDataDir, "tokens"), cfg.TokenDir())
	assert.Equal(t, filepath.Join(DefaultDataDir, "preferences.db"), cfg.PreferencesPath())
	assert.False(t, cfg.ResetAccount)
}

func TestLoad_EnvFileAndFlags(t *testing.T) {
	clearEnv(t)

	envPath := filepath.Join(t.TempDir(), "viewer.env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"YT_PLAYLIST_ID=PLfromenv\nYT_CONNECTIVITY_TIMEOUT=PT1M30S\nYT_CALLBACK_ADDR=127.0.0.1:9999\n",
	), 0600))

	cfg, err := Load([]string{"--env", envPath, "--reset"})
	require.NoError(t, err)
	assert.Equal(t, "PLfromenv", cfg.PlaylistID)
	assert.Equal(t, 90*time.Second, cfg.ConnectivityTimeout)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.CallbackURL())
	assert.True(t, cfg.ResetAccount)

	os.Unsetenv(string(PlaylistID))
	cfg, err = Load([]string{"--env", envPath, "-p", "PLfromflag"})
	require.NoError(t, err)
	assert.Equal(t, "PLfromflag", cfg.PlaylistID)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load([]string{"--env", filepath.Join(t.TempDir(), "nope.env")})
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(string(ConnectivityTimeout), "three seconds")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("PT5S")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	_, err = parseDuration("PT0S")
	assert.Error(t, err)
}
