package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is a desktop browser string; Pinterest rejects Go's default agent
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultFolderName is the save folder created next to the executable
const DefaultFolderName = "pinterest_downloads"

// DefaultChunkSize is the buffer size used when streaming media to disk
const DefaultChunkSize = 8192

// Config holds all configuration options for the pin scraper
type Config struct {
	// HTTP identity presented to Pinterest
	Pinterest PinterestConfig `yaml:"pinterest" json:"pinterest"`

	// Save folder settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Presentation shell settings
	UI UIConfig `yaml:"ui" json:"ui"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PinterestConfig holds request header configuration
type PinterestConfig struct {
	UserAgent      string `yaml:"user_agent" json:"user_agent"`
	AcceptLanguage string `yaml:"accept_language" json:"accept_language"`
}

// OutputConfig holds save folder configuration
type OutputConfig struct {
	// BaseDirectory is the parent of the save folder. Empty means the
	// directory containing the running executable.
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	FolderName    string `yaml:"folder_name" json:"folder_name"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	// Timeout applies to every HTTP request. Zero leaves net/http's default (none).
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	ChunkSize int           `yaml:"chunk_size" json:"chunk_size"`
}

// UIConfig holds presentation preferences
type UIConfig struct {
	Interactive bool `yaml:"interactive" json:"interactive"`
	NoColor     bool `yaml:"no_color" json:"no_color"`
	// Notify sends a desktop notification when a run ends
	Notify bool `yaml:"notify" json:"notify"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pinterest: PinterestConfig{
			UserAgent:      DefaultUserAgent,
			AcceptLanguage: "en-US,en;q=0.9",
		},
		Output: OutputConfig{
			BaseDirectory: "",
			FolderName:    DefaultFolderName,
		},
		Download: DownloadConfig{
			Timeout:   0,
			ChunkSize: DefaultChunkSize,
		},
		UI: UIConfig{
			Interactive: false,
			NoColor:     false,
			Notify:      false,
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if userAgent := os.Getenv("PINSCRAPER_USER_AGENT"); userAgent != "" {
		c.Pinterest.UserAgent = userAgent
	}

	if baseDir := os.Getenv("PINSCRAPER_OUTPUT_DIR"); baseDir != "" {
		c.Output.BaseDirectory = baseDir
	}
	if folder := os.Getenv("PINSCRAPER_FOLDER_NAME"); folder != "" {
		c.Output.FolderName = folder
	}

	if timeout := os.Getenv("PINSCRAPER_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid PINSCRAPER_TIMEOUT: %w", err)
		}
		c.Download.Timeout = d
	}

	if interactive := os.Getenv("PINSCRAPER_TUI"); interactive != "" {
		c.UI.Interactive = strings.ToLower(interactive) == "true"
	}

	if notify := os.Getenv("PINSCRAPER_NOTIFY"); notify != "" {
		c.UI.Notify = strings.ToLower(notify) == "true"
	}

	if logLevel := os.Getenv("PINSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("PINSCRAPER_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".pinscraper.yaml",
		".pinscraper.yml",
		"pinscraper.yaml",
		filepath.Join(home, ".config", "pinscraper", "config.yaml"),
		filepath.Join(home, ".pinscraper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Pinterest.UserAgent) == "" {
		errs = append(errs, errors.New("user agent is required"))
	}

	if strings.TrimSpace(c.Output.FolderName) == "" {
		errs = append(errs, errors.New("save folder name is required"))
	}

	if c.Download.Timeout < 0 {
		errs = append(errs, errors.New("download timeout cannot be negative"))
	}
	if c.Download.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// SaveFolder resolves the absolute save folder path. It is resolved once at
// startup and handed to the shell and pipeline from there.
func (c *Config) SaveFolder() (string, error) {
	base := c.Output.BaseDirectory
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		base = filepath.Dir(exe)
	}
	return filepath.Abs(filepath.Join(base, c.Output.FolderName))
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if userAgent, ok := flags["user-agent"].(string); ok && userAgent != "" {
		c.Pinterest.UserAgent = userAgent
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Output.BaseDirectory = output
	}
	if folder, ok := flags["folder-name"].(string); ok && folder != "" {
		c.Output.FolderName = folder
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout >= 0 {
		c.Download.Timeout = timeout
	}
	if interactive, ok := flags["tui"].(bool); ok {
		c.UI.Interactive = interactive
	}
	if noColor, ok := flags["no-color"].(bool); ok {
		c.UI.NoColor = noColor
	}
	if notify, ok := flags["notify"].(bool); ok {
		c.UI.Notify = notify
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".pinscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
