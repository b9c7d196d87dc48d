package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, DefaultUserAgent, config.Pinterest.UserAgent)
	assert.Equal(t, DefaultFolderName, config.Output.FolderName)
	assert.Empty(t, config.Output.BaseDirectory)
	assert.Equal(t, time.Duration(0), config.Download.Timeout, "no timeout beyond client defaults")
	assert.Equal(t, 8192, config.Download.ChunkSize)
	assert.False(t, config.UI.Interactive)
	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PINSCRAPER_USER_AGENT", "test-agent")
	t.Setenv("PINSCRAPER_OUTPUT_DIR", "/tmp/pins")
	t.Setenv("PINSCRAPER_FOLDER_NAME", "media")
	t.Setenv("PINSCRAPER_TIMEOUT", "45s")
	t.Setenv("PINSCRAPER_TUI", "TRUE")
	t.Setenv("PINSCRAPER_LOG_LEVEL", "debug")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "test-agent", config.Pinterest.UserAgent)
	assert.Equal(t, "/tmp/pins", config.Output.BaseDirectory)
	assert.Equal(t, "media", config.Output.FolderName)
	assert.Equal(t, 45*time.Second, config.Download.Timeout)
	assert.True(t, config.UI.Interactive)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("PINSCRAPER_TIMEOUT", "soon")

	config := DefaultConfig()
	assert.Error(t, config.LoadFromEnv())
}

func TestLoadFromFile(t *testing.T) {
	t.Run("valid yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
pinterest:
  user_agent: "yaml-agent"
output:
  base_directory: "/srv/media"
  folder_name: "pins"
download:
  timeout: 2m
  chunk_size: 4096
logging:
  level: "error"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config := DefaultConfig()
		require.NoError(t, config.LoadFromFile(path))

		assert.Equal(t, "yaml-agent", config.Pinterest.UserAgent)
		assert.Equal(t, "/srv/media", config.Output.BaseDirectory)
		assert.Equal(t, "pins", config.Output.FolderName)
		assert.Equal(t, 2*time.Minute, config.Download.Timeout)
		assert.Equal(t, 4096, config.Download.ChunkSize)
		assert.Equal(t, "error", config.Logging.Level)
		// untouched keys keep their defaults
		assert.Equal(t, "en-US,en;q=0.9", config.Pinterest.AcceptLanguage)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0644))

		config := DefaultConfig()
		assert.Error(t, config.LoadFromFile(path))
	})

	t.Run("non-existent file", func(t *testing.T) {
		config := DefaultConfig()
		assert.Error(t, config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantError: false},
		{name: "empty user agent", mutate: func(c *Config) { c.Pinterest.UserAgent = " " }, wantError: true},
		{name: "empty folder", mutate: func(c *Config) { c.Output.FolderName = "" }, wantError: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Download.Timeout = -time.Second }, wantError: true},
		{name: "zero chunk size", mutate: func(c *Config) { c.Download.ChunkSize = 0 }, wantError: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantError: true},
		{name: "uppercase log level", mutate: func(c *Config) { c.Logging.Level = "DEBUG" }, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveFolder(t *testing.T) {
	t.Run("explicit base directory", func(t *testing.T) {
		base := t.TempDir()
		config := DefaultConfig()
		config.Output.BaseDirectory = base

		folder, err := config.SaveFolder()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, DefaultFolderName), folder)
	})

	t.Run("defaults to executable directory", func(t *testing.T) {
		config := DefaultConfig()

		folder, err := config.SaveFolder()
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(folder))
		assert.Equal(t, DefaultFolderName, filepath.Base(folder))
	})
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Output.FolderName = "saved"
	config.Download.Timeout = 10 * time.Second
	require.NoError(t, config.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, "saved", reloaded.Output.FolderName)
	assert.Equal(t, 10*time.Second, reloaded.Download.Timeout)
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"output":    "/data",
		"timeout":   5 * time.Second,
		"tui":       true,
		"notify":    true,
		"log-level": "info",
		"log-file":  "/tmp/pinscraper.log",
	})

	assert.Equal(t, "/data", config.Output.BaseDirectory)
	assert.Equal(t, 5*time.Second, config.Download.Timeout)
	assert.True(t, config.UI.Interactive)
	assert.True(t, config.UI.Notify)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "/tmp/pinscraper.log", config.Logging.File)

	// nil flags leave everything alone
	config.MergeCommandLineFlags(nil)
	assert.Equal(t, "/data", config.Output.BaseDirectory)
}

func TestLoad(t *testing.T) {
	t.Run("precedence order", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  folder_name: from-file\nlogging:\n  level: error\n"), 0644))
		t.Setenv("PINSCRAPER_LOG_LEVEL", "info")

		config, err := Load(path, map[string]interface{}{"log-level": "debug"})
		require.NoError(t, err)

		assert.Equal(t, "from-file", config.Output.FolderName)
		assert.Equal(t, "debug", config.Logging.Level, "flags win over env and file")
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("download:\n  chunk_size: -1\n"), 0644))

		_, err := Load(path, nil)
		assert.Error(t, err)
	})
}
