package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the limit for requests matching Path and Method.
type EndpointConfig struct {
	Path   string        // exact path, or prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per Window
	Window time.Duration // refill window
	Burst  int           // bucket size; Limit when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a Config allowing perMinute requests per client with the given burst.
// perMinute <= 0 disables limiting.
func NewConfig(perMinute, burst int, whitelist ...string) *Config {
	if perMinute <= 0 {
		return &Config{Enabled: false}
	}
	wl := make(map[string]bool, len(whitelist))
	for _, ip := range whitelist {
		if ip = strings.TrimSpace(ip); ip != "" {
			wl[ip] = true
		}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       wl,
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns stricter limits for routes that reach outside the process.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Outbound fetches and mailbox reads
		{Path: "/parse-job", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/jobs", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/gmail-import", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		// Credential checks
		{Path: "/auth/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
	}
}

// MatchEndpoint returns the config for path and method, or nil when none applies.
// GET /health is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && c.Method == method {
			return c
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
