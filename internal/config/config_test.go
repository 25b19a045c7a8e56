package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.Parse.Verify)
	require.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	require.Len(t, cfg.BuilderOptions(), 3)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "default", modify: func(c *Config) {}},
		{name: "upper case level", modify: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "json", modify: func(c *Config) { c.Log.Format = "json" }},
		{name: "bad level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "bad format", modify: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "negative concurrency", modify: func(c *Config) { c.Parse.Concurrency = -1 }, wantErr: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			testCase.modify(cfg)
			err := cfg.Validate()
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ifcstep.yaml")
	content := `
log:
  level: debug
parse:
  verify: false
  concurrency: 2
header:
  author: someone
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	require.Equal(t, "text", cfg.Log.Format)
	require.False(t, cfg.Parse.Verify)
	require.Equal(t, 2, cfg.Parse.Concurrency)
	require.Equal(t, "someone", cfg.Header.Author)
	require.Equal(t, "ifcstep", cfg.Header.OriginatingSystem)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSaveToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "ifcstep.yaml")
	cfg := DefaultConfig()
	cfg.Header.Organization = "somewhere"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
