// Package config loads chatdeck settings.
//
// Values are resolved in order: built-in defaults, the TOML file
// (<user config dir>/chatdeck/config.toml unless a path is given), then
// CHATDECK_* environment variables. Command-line flags are applied by the
// caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL          = "https://chatbot-ai-vyff.onrender.com/api"
	DefaultDeveloperSecret = "mellon"
	DefaultLogFile         = "/tmp/chatdeck.log"
	appDirName             = "chatdeck"
)

type Config struct {
	APIURL          string   `toml:"api_url"`
	DeveloperSecret string   `toml:"developer_secret"`
	DBPath          string   `toml:"db_path"`
	LogFile         string   `toml:"log_file"`
	Debug           bool     `toml:"debug"`
	RequestTimeout  Duration `toml:"request_timeout"`

	path string
}

// Duration reads TOML strings such as "30s". Zero means no timeout.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration == 0 {
		return []byte(""), nil
	}
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:          DefaultAPIURL,
		DeveloperSecret: DefaultDeveloperSecret,
		DBPath:          defaultDBPath(),
		LogFile:         DefaultLogFile,
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(configDir(), appDirName, "config.toml")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	cfg.path = path

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks that the API URL is absolute and the secret is set.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL, got %q", c.APIURL)
	}
	if c.DeveloperSecret == "" {
		return errors.New("developer_secret must not be empty")
	}
	if c.RequestTimeout.Duration < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnv("CHATDECK_API_URL", c.APIURL)
	c.DeveloperSecret = getEnv("CHATDECK_DEV_SECRET", c.DeveloperSecret)
	c.DBPath = getEnv("CHATDECK_DB", c.DBPath)
	c.LogFile = getEnv("CHATDECK_LOG_FILE", c.LogFile)
	c.Debug = getBoolEnv("CHATDECK_DEBUG", c.Debug)
	if v := os.Getenv("CHATDECK_REQUEST_TIMEOUT"); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err == nil {
			c.RequestTimeout = d
		}
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "."
		}
		dir = filepath.Join(home, ".config")
	}
	return dir
}

func defaultDBPath() string {
	return filepath.Join(configDir(), appDirName, "chatdeck.db")
}
