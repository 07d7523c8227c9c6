package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, ":5001", cfg.Addr)
	assert.Equal(t, 5, cfg.Rounds)
	assert.Equal(t, "game_stats.csv", cfg.StatsPath)
	assert.Len(t, cfg.Seats, 3)
}

func TestLoadFileAndSecrets(t *testing.T) {
	dir := t.TempDir()
	secrets := filepath.Join(dir, "secrets.env")
	require.NoError(t, os.WriteFile(secrets, []byte("DIFF_TEST_KEY=sk-test\n"), 0o600))
	t.Setenv("DIFF_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("DIFF_TEST_KEY"))

	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":7000",
		"rounds": 2,
		"seed": 99,
		"binary_frames": true,
		"upgrader": "gorilla",
		"secrets_file": "`+filepath.ToSlash(secrets)+`",
		"seats": [
			{"name": "A", "kind": "bot"},
			{"name": "B", "kind": "advisor", "model": "m", "base_url": "http://x", "api_key_env": "DIFF_TEST_KEY"},
			{"name": "C", "kind": "bot"}
		]
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 2, cfg.Rounds)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.True(t, cfg.BinaryFrames)
	assert.Equal(t, UpgraderGorilla, cfg.Upgrader)
	assert.Equal(t, "sk-test", cfg.Seats[1].APIKey())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Seats = cfg.Seats[:2]
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Seats[1].Kind = "wizard"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Seats[2].Name = cfg.Seats[0].Name
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Seats[0] = Seat{Name: "x", Kind: SeatAdvisor}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Upgrader = "nginx"
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
