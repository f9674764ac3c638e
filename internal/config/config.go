package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"logviewer/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Server    Server    `yaml:"server" mapstructure:"server"`
	Auth      Auth      `yaml:"auth" mapstructure:"auth"`
	Display   Display   `yaml:"display" mapstructure:"display"`
	Logging   Logging   `yaml:"logging" mapstructure:"logging"`
	Telemetry Telemetry `yaml:"telemetry" mapstructure:"telemetry"`
	Watch     Watch     `yaml:"watch" mapstructure:"watch"`

	// Path is the file the config was read from, empty when running on defaults
	Path string `yaml:"-" mapstructure:"-"`
}

// Server holds the log API location
type Server struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Auth holds optional default credentials
type Auth struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

// Display controls how log entries are rendered
type Display struct {
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
	Clamp    int    `yaml:"clamp" mapstructure:"clamp"`
}

// Logging controls the application logger
type Logging struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Telemetry controls error reporting
type Telemetry struct {
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// Watch controls config hot reload
type Watch struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.URL = DefaultServerURL
	cfg.Server.Timeout = DefaultTimeout

	cfg.Display.Timezone = DefaultTimezone
	cfg.Display.Clamp = DefaultClamp

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Telemetry.Environment = DefaultEnvironment

	cfg.Watch.Enabled = true
	cfg.Watch.Debounce = WatchDebounce

	return cfg
}

// Load reads .env, resolves the config file and returns the validated configuration
func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	v := newViper()

	if resolved != "" {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, errors.ErrFailedToReadConfig
		}

		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToParseConfig
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.Path = resolved
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// ResolvePath picks the config file: explicit path, then working directory, then home config dir
func ResolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.ErrFailedToReadConfig
		}

		return path, nil
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", nil
	}

	candidate := filepath.Join(home, ConfigDirName, ConfigFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", nil
}

// newViper creates a viper instance with defaults and LOGVIEWER_ env overrides
func newViper() *viper.Viper {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", defaults.Server.URL)
	v.SetDefault("server.timeout", defaults.Server.Timeout)
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("display.timezone", defaults.Display.Timezone)
	v.SetDefault("display.clamp", defaults.Display.Clamp)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("telemetry.dsn", "")
	v.SetDefault("telemetry.environment", defaults.Telemetry.Environment)
	v.SetDefault("watch.enabled", defaults.Watch.Enabled)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	return v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDisplay(); err != nil {
		return err
	}

	if c.Watch.Debounce < 0 {
		return errors.ErrInvalidDebounce
	}

	return nil
}

// validateServer validates the server settings
func (c *Config) validateServer() error {
	if c.Server.URL == "" {
		return errors.ErrServerURLRequired
	}

	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: '%s'", errors.ErrInvalidServerURL, c.Server.URL)
	}

	if c.Server.Timeout <= 0 {
		return errors.ErrInvalidTimeout
	}

	return nil
}

// validateDisplay validates the display settings
func (c *Config) validateDisplay() error {
	if _, err := c.Display.Location(); err != nil {
		return err
	}

	if c.Display.Clamp < 1 {
		return errors.ErrInvalidClampLines
	}

	return nil
}

// Location resolves the display timezone
func (d Display) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", errors.ErrInvalidTimezone, d.Timezone)
	}

	return loc, nil
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Auth.Password != "" {
		cp.Auth.Password = "********"
	}

	return &cp
}

// Dump renders the redacted configuration as YAML
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c.Redacted())
}

// normalize trims user supplied values
func (c *Config) normalize() {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	c.Display.Timezone = strings.TrimSpace(c.Display.Timezone)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}
