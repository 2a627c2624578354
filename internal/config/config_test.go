package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "HABITPET_") {
			name, _, _ := strings.Cut(kv, "=")
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("HABITPET_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "habitpet.db"), cfg.DBPath)
	assert.Equal(t, DefaultUpdateURL, cfg.UpdateURL)
	assert.True(t, cfg.Notifications)
	assert.True(t, cfg.CheckUpdates)
	assert.False(t, cfg.Debug)
	assert.Equal(t, DefaultUpdateTimeout, cfg.UpdateTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := "theme: mint\nnotifications: false\nupdate_timeout: 2s\nupdate_url: http://file.example/v.json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(yml), 0o644))

	t.Setenv("HABITPET_DATA_DIR", dir)
	t.Setenv("HABITPET_UPDATE_URL", "http://env.example/v.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mint", cfg.Theme)
	assert.False(t, cfg.Notifications)
	assert.Equal(t, 2*time.Second, cfg.UpdateTimeout)
	assert.Equal(t, "http://env.example/v.json", cfg.UpdateURL)
}

func TestLoad_ExplicitDBPathWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("HABITPET_DATA_DIR", dir)
	t.Setenv("HABITPET_DB_PATH", filepath.Join(dir, "other.db"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.db"), cfg.DBPath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		env  map[string]string
		want string
	}{
		{name: "bad yaml", yml: "theme: [", want: "parse"},
		{name: "bad env", env: map[string]string{"HABITPET_DEBUG": "maybe"}, want: "parse env:"},
		{name: "unknown theme", yml: "theme: neon\n", want: "unknown theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tt.yml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.yml), 0o644))
			}
			t.Setenv("HABITPET_DATA_DIR", dir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
