// Package config loads the fb configuration from .fb/config.json, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// Dir is the per-project configuration directory.
	Dir = ".fb"
	// FileName is the configuration file inside Dir.
	FileName = "config.json"
	// EnvPrefix prefixes every environment override, e.g. FB_ENDPOINT.
	EnvPrefix = "FB"
	// CurrentVersion is written by SaveConfig.
	CurrentVersion = "1"
)

// ErrNoEndpoint is returned by Validate when no GraphQL endpoint is configured.
var ErrNoEndpoint = errors.New("no GraphQL endpoint configured")

// Config represents the fb configuration.
type Config struct {
	Version        string            `mapstructure:"version"`
	Endpoint       string            `mapstructure:"endpoint"`
	Locale         string            `mapstructure:"locale"`
	CachePath      string            `mapstructure:"cache_path"`
	SlugDebounce   time.Duration     `mapstructure:"slug_debounce"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout"`
	LogLevel       string            `mapstructure:"log_level"`
	LogFile        string            `mapstructure:"log_file"`
	Actor          string            `mapstructure:"actor"`
	Headers        map[string]string `mapstructure:"headers"`
}

// Default returns the configuration used for unset keys.
func Default() *Config {
	return &Config{
		Version:      CurrentVersion,
		Locale:       "en",
		SlugDebounce: 500 * time.Millisecond,
		LogLevel:     "info",
		Headers:      map[string]string{},
	}
}

// LoadConfig reads .fb/config.json from dir, overlaid with FB_* environment
// variables. A .env file in dir is loaded first and never overrides variables
// that are already set. A missing config file is not an error; call Validate
// to check the result is usable.
func LoadConfig(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigFile(Path(dir))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	return &cfg, nil
}

// SaveConfig writes config.json to dir/.fb.
func SaveConfig(dir string, cfg *Config) error {
	fbDir := filepath.Join(dir, Dir)
	if err := os.MkdirAll(fbDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", Dir, err)
	}

	v := viper.New()
	v.Set("version", CurrentVersion)
	v.Set("endpoint", cfg.Endpoint)
	v.Set("locale", cfg.Locale)
	v.Set("slug_debounce", cfg.SlugDebounce.String())
	v.Set("request_timeout", cfg.RequestTimeout.String())
	v.Set("log_level", cfg.LogLevel)
	if cfg.CachePath != "" {
		v.Set("cache_path", cfg.CachePath)
	}
	if cfg.LogFile != "" {
		v.Set("log_file", cfg.LogFile)
	}
	if cfg.Actor != "" {
		v.Set("actor", cfg.Actor)
	}
	if len(cfg.Headers) > 0 {
		v.Set("headers", cfg.Headers)
	}

	if err := v.WriteConfigAs(Path(dir)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that the configuration can reach a backend.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("%w\nHint: run 'fb init --endpoint URL' or set %s_ENDPOINT", ErrNoEndpoint, EnvPrefix)
	}
	if c.SlugDebounce < 0 {
		return fmt.Errorf("slug_debounce must not be negative, got %s", c.SlugDebounce)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// Path returns the config file path for dir.
func Path(dir string) string {
	return filepath.Join(dir, Dir, FileName)
}

// HomeDir returns ~/.fb, which holds state shared across projects.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, Dir), nil
}

// ResolveCachePath returns CachePath, defaulting to ~/.fb/fb.db.
func (c *Config) ResolveCachePath() (string, error) {
	if c.CachePath != "" {
		return c.CachePath, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "fb.db"), nil
}

// ResolveLogFile returns LogFile, defaulting to ~/.fb/logs/fb.log.
func (c *Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "logs", "fb.log"), nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("cache_path", d.CachePath)
	v.SetDefault("slug_debounce", d.SlugDebounce)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("actor", d.Actor)
}
