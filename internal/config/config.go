package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/arreyder/forms-mcp/internal/forms"
)

// Environment variables read by Load.
const (
	EnvConfigFile   = "FORMS_MCP_CONFIG"
	EnvEnvFile      = "FORMS_MCP_ENV_FILE"
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRefreshToken = "GOOGLE_REFRESH_TOKEN"
	EnvEndpoint     = "FORMS_MCP_ENDPOINT"
	EnvRatePerMin   = "FORMS_MCP_RATE_PER_MINUTE"
	EnvLogLevel     = "FORMS_MCP_LOG_LEVEL"
)

const defaultEnvFile = ".env"

// Config mirrors the optional YAML config file.
type Config struct {
	Google    GoogleConfig    `yaml:"google"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	// Endpoint overrides the Forms API base URL.
	Endpoint string `yaml:"endpoint"`
}

// RateLimitConfig caps outbound Forms API calls. PerMinute 0 disables it.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		RateLimit: RateLimitConfig{Burst: 5},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by FORMS_MCP_CONFIG and the environment, in that order of precedence. A
// .env file is loaded into the environment first when present; variables
// already set are not overridden.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv(EnvConfigFile)); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	path := strings.TrimSpace(os.Getenv(EnvEnvFile))
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// loadFile reads a YAML config, expanding ${VAR} references from the environment.
func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Google.ClientID, EnvClientID)
	setString(&cfg.Google.ClientSecret, EnvClientSecret)
	setString(&cfg.Google.RefreshToken, EnvRefreshToken)
	setString(&cfg.Google.Endpoint, EnvEndpoint)
	setString(&cfg.Log.Level, EnvLogLevel)
	if raw := strings.TrimSpace(os.Getenv(EnvRatePerMin)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRatePerMin, raw, err)
		}
		cfg.RateLimit.PerMinute = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Credentials returns the OAuth2 refresh-token credentials.
func (c *Config) Credentials() forms.Credentials {
	return forms.Credentials{
		ClientID:     c.Google.ClientID,
		ClientSecret: c.Google.ClientSecret,
		RefreshToken: c.Google.RefreshToken,
	}
}

// ClientSettings returns the settings for forms.Dial.
func (c *Config) ClientSettings() forms.Settings {
	return forms.Settings{
		Credentials:   c.Credentials(),
		Endpoint:      c.Google.Endpoint,
		RatePerMinute: c.RateLimit.PerMinute,
		Burst:         c.RateLimit.Burst,
	}
}

// Validate reports every missing credential at once and rejects unusable
// limits and log settings.
func (c *Config) Validate() error {
	if err := c.Credentials().Validate(); err != nil {
		return fmt.Errorf("%w (set %s, %s and %s)", err, EnvClientID, EnvClientSecret, EnvRefreshToken)
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0, got %d", c.RateLimit.PerMinute)
	}
	if c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit.burst must be >= 0, got %d", c.RateLimit.Burst)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
