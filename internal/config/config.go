// Package config loads fabricbot settings from YAML with ${VAR} expansion.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is read when present and no explicit path is given.
	DefaultPath = "fabricbot.yaml"
	// DatasetEnv overrides dataset.source.
	DatasetEnv = "FABRICBOT_DATASET"

	defaultSource        = "fabrics.json"
	defaultTimeout       = 15 * time.Second
	defaultThinkingDelay = 500 * time.Millisecond
	defaultTheme         = "light"
	defaultLogLevel      = "warn"
)

// Config mirrors fabricbot.yaml.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	S3      S3Config      `yaml:"s3"`
	Chat    ChatConfig    `yaml:"chat"`
	Log     LogConfig     `yaml:"log"`
}

// DatasetConfig locates the fabric dataset.
type DatasetConfig struct {
	Source  string        `yaml:"source"`  // path, http(s) URL or s3://bucket/key
	Timeout time.Duration `yaml:"timeout"` // e.g. "15s"
}

// S3Config is used for s3:// dataset sources.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"` // supports ${VAR}
	SecretKey string `yaml:"secret_key"` // supports ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// ChatConfig tunes the conversation front ends.
type ChatConfig struct {
	ThinkingDelay *time.Duration `yaml:"thinking_delay"` // nil = default, 0 = off
	Theme         string         `yaml:"theme"`          // light | dark
	Presets       []string       `yaml:"presets"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // empty = stderr
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config at path. An empty path reads DefaultPath when it
// exists and falls back to defaults otherwise; an explicit path must exist.
// A .env file in the working directory is loaded first so ${VAR} references
// can use it. DatasetEnv overrides dataset.source, and a non-empty
// datasetSource overrides both. Validation sees the final source.
func Load(path, datasetSource string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := &Config{}
	rawBytes, err := os.ReadFile(path)
	switch {
	case err == nil:
		contentWithEnv := os.ExpandEnv(string(rawBytes))
		if err := yaml.Unmarshal([]byte(contentWithEnv), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file: defaults only
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config file not found at: %s", path)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env := strings.TrimSpace(os.Getenv(DatasetEnv)); env != "" {
		cfg.Dataset.Source = env
	}
	if src := strings.TrimSpace(datasetSource); src != "" {
		cfg.Dataset.Source = src
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ThinkingDelay returns the configured delay or the default.
func (c *Config) ThinkingDelay() time.Duration {
	if c.Chat.ThinkingDelay == nil {
		return defaultThinkingDelay
	}
	return *c.Chat.ThinkingDelay
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Dataset.Source) == "" {
		c.Dataset.Source = defaultSource
	}
	if c.Dataset.Timeout <= 0 {
		c.Dataset.Timeout = defaultTimeout
	}
	if c.Chat.Theme == "" {
		c.Chat.Theme = defaultTheme
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Chat.Theme) {
	case "light", "dark":
	default:
		return fmt.Errorf("chat.theme must be light or dark, got %q", c.Chat.Theme)
	}
	if d := c.Chat.ThinkingDelay; d != nil && *d < 0 {
		return fmt.Errorf("chat.thinking_delay must not be negative")
	}
	if strings.HasPrefix(strings.ToLower(c.Dataset.Source), "s3://") && c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required for s3:// dataset sources")
	}
	return nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
