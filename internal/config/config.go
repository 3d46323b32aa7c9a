// Package config loads job tracker configuration from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Gmail    GmailConfig    `yaml:"gmail"`
	Research ResearchConfig `yaml:"research"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RateLimit is requests per minute per client IP; zero disables limiting.
	RateLimit int `yaml:"rate_limit"`
	RateBurst int `yaml:"rate_burst"`
}

// DatabaseConfig configures PostgreSQL.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig configures the parse cache. An empty Address disables it.
type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// FetchConfig configures job page fetching.
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	UseBrowser bool          `yaml:"use_browser"`
	// AllowPrivateHosts lets job URLs resolve to loopback and private addresses.
	AllowPrivateHosts bool `yaml:"allow_private_hosts"`
}

// GmailConfig configures e-mail import. Import is disabled unless both files are set.
type GmailConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	MaxMessages     int64  `yaml:"max_messages"`
}

// Enabled reports whether Gmail import is configured.
func (g GmailConfig) Enabled() bool {
	return g.CredentialsFile != "" && g.TokenFile != ""
}

// ResearchConfig configures company research. Website lookup needs both search settings.
type ResearchConfig struct {
	NewsFeedURL    string `yaml:"news_feed_url"`
	NewsLimit      int    `yaml:"news_limit"`
	SearchAPIKey   string `yaml:"search_api_key"`
	SearchEngineID string `yaml:"search_engine_id"`
}

// SearchEnabled reports whether website lookup is configured.
func (r ResearchConfig) SearchEnabled() bool {
	return r.SearchAPIKey != "" && r.SearchEngineID != ""
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// AuthConfig configures token signing and password hashing.
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	ExpirationHours int    `yaml:"expiration_hours"`
	BcryptCost      int    `yaml:"bcrypt_cost"`
	Pepper          string `yaml:"pepper"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       120,
			RateBurst:       20,
		},
		Redis: RedisConfig{TTL: 24 * time.Hour},
		Fetch: FetchConfig{Timeout: 10 * time.Second},
		Gmail: GmailConfig{MaxMessages: 10},
		Research: ResearchConfig{
			NewsFeedURL: "https://news.google.com/rss/search",
			NewsLimit:   5,
		},
		Log:  LogConfig{Level: "info"},
		Auth: AuthConfig{ExpirationHours: 24, BcryptCost: 12},
	}
}

// Load builds the configuration: defaults, then the YAML file at path if path is non-empty,
// then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Address, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.Pepper, "PASSWORD_PEPPER")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Fetch.UserAgent, "FETCH_USER_AGENT")
	setString(&c.Gmail.CredentialsFile, "GMAIL_CREDENTIALS_FILE")
	setString(&c.Gmail.TokenFile, "GMAIL_TOKEN_FILE")
	setString(&c.Research.SearchAPIKey, "GOOGLE_SEARCH_API_KEY")
	setString(&c.Research.SearchEngineID, "GOOGLE_SEARCH_CX")

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Server.Port, "PORT"},
		{&c.Auth.ExpirationHours, "JWT_EXPIRATION_HOURS"},
		{&c.Auth.BcryptCost, "BCRYPT_COST"},
		{&c.Server.RateLimit, "RATE_LIMIT_PER_MINUTE"},
	}
	for _, v := range ints {
		if err := setInt(v.dst, v.key); err != nil {
			return err
		}
	}

	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
		}
		c.Fetch.Timeout = d
	}
	if raw := os.Getenv("FETCH_USE_BROWSER"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid FETCH_USE_BROWSER: %w", err)
		}
		c.Fetch.UseBrowser = b
	}
	if raw := os.Getenv("FETCH_ALLOW_PRIVATE_HOSTS"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid FETCH_ALLOW_PRIVATE_HOSTS: %w", err)
		}
		c.Fetch.AllowPrivateHosts = b
	}
	return nil
}

// Validate checks the settings needed by the API server.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required (or set DATABASE_URL)"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required (or set JWT_SECRET)"))
	}
	if c.Auth.ExpirationHours < 1 {
		errs = append(errs, fmt.Errorf("auth.expiration_hours must be at least 1, got %d", c.Auth.ExpirationHours))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout must be positive, got %s", c.Fetch.Timeout))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
