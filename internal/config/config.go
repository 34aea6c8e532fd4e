// Package config loads starfolk settings from defaults, an optional YAML file and
// the environment, in that order of increasing priority.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DevelopmentSecret signs gateway tokens when no secret is configured. The
// gateway accepts it at debug log level only.
const DevelopmentSecret = "development-insecure-secret-change-me"

// ErrInvalidConfig is returned when a setting is present but unusable.
var ErrInvalidConfig = zerr.New("invalid configuration")

// Environment variables read by ApplyEnv.
const (
	EnvAPIBase       = "STARFOLK_API_BASE"
	EnvConfigPath    = "STARFOLK_CONFIG"
	EnvLogLevel      = "STARFOLK_LOG_LEVEL"
	EnvLogFormat     = "STARFOLK_LOG_FORMAT"
	EnvSessionSecret = "SESSION_SECRET"
)

// Config holds all starfolk configuration.
type Config struct {
	API      API      `yaml:"api"`
	Timeouts Timeouts `yaml:"timeouts"`
	Cache    Cache    `yaml:"cache"`
	Input    Input    `yaml:"input"`
	Featured Featured `yaml:"featured"`
	Gateway  Gateway  `yaml:"gateway"`
	Stub     Stub     `yaml:"stub"`
	Log      Log      `yaml:"log"`
}

// API locates the remote catalog service.
type API struct {
	BaseURL  string `yaml:"base_url"`
	Resource string `yaml:"resource"`
}

// Timeouts bound single requests per operation.
type Timeouts struct {
	Search   time.Duration `yaml:"search"`
	Item     time.Duration `yaml:"item"`
	Featured time.Duration `yaml:"featured"`
}

// Cache holds the freshness windows of the request cache.
type Cache struct {
	SearchTTL      time.Duration `yaml:"search_ttl"`
	ItemTTL        time.Duration `yaml:"item_ttl"`
	DedupeInFlight bool          `yaml:"dedupe_in_flight"`
}

// Input holds search box settings.
type Input struct {
	Debounce       time.Duration `yaml:"debounce"`
	MinQueryLength int           `yaml:"min_query_length"`
}

// Featured selects the sidebar characters.
type Featured struct {
	Names []string `yaml:"names"`
	Count int      `yaml:"count"`
}

// Gateway holds presentation gateway settings.
type Gateway struct {
	Listen     string        `yaml:"listen"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	Secret     string        `yaml:"secret"`
}

// Stub holds settings of the local catalog double.
type Stub struct {
	Listen   string        `yaml:"listen"`
	Database string        `yaml:"database"`
	Latency  time.Duration `yaml:"latency"`
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		API: API{
			BaseURL:  "http://localhost:8000",
			Resource: "/characters",
		},
		Timeouts: Timeouts{
			Search:   8 * time.Second,
			Item:     10 * time.Second,
			Featured: 10 * time.Second,
		},
		Cache: Cache{
			SearchTTL: 30 * time.Second,
			ItemTTL:   60 * time.Second,
		},
		Input: Input{
			Debounce:       300 * time.Millisecond,
			MinQueryLength: 2,
		},
		Featured: Featured{
			Names: []string{"Lando Calrissian", "Leia Organa", "Darth Vader"},
			Count: 3,
		},
		Gateway: Gateway{
			Listen:     ":8080",
			SessionTTL: 30 * time.Minute,
			Issuer:     "starfolk-gateway",
			Audience:   "starfolk-clients",
			Secret:     DevelopmentSecret,
		},
		Stub: Stub{
			Listen:   ":8000",
			Database: "starfolk.db",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies the environment and
// validates the result. A missing file, or an empty path, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "reading config"), "path", path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// comment-only files decode to EOF
		if errors.Is(err, io.EOF) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "parsing config"), "path", path)
	}
	return nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	c.API.BaseURL = getEnv(EnvAPIBase, c.API.BaseURL)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnv(EnvLogFormat, c.Log.Format)
	c.Gateway.Secret = getEnv(EnvSessionSecret, c.Gateway.Secret)
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return invalid("api.base_url", "must not be empty")
	}
	if !strings.HasPrefix(c.API.Resource, "/") {
		return invalid("api.resource", "must start with /")
	}

	for key, d := range map[string]time.Duration{
		"timeouts.search":     c.Timeouts.Search,
		"timeouts.item":       c.Timeouts.Item,
		"timeouts.featured":   c.Timeouts.Featured,
		"cache.search_ttl":    c.Cache.SearchTTL,
		"cache.item_ttl":      c.Cache.ItemTTL,
		"input.debounce":      c.Input.Debounce,
		"gateway.session_ttl": c.Gateway.SessionTTL,
	} {
		if d <= 0 {
			return invalid(key, "must be a positive duration, got "+d.String())
		}
	}
	if c.Stub.Latency < 0 {
		return invalid("stub.latency", "must not be negative")
	}

	if c.Input.MinQueryLength < 1 {
		return invalid("input.min_query_length", "must be at least 1, got "+strconv.Itoa(c.Input.MinQueryLength))
	}
	if c.Featured.Count < 1 {
		return invalid("featured.count", "must be at least 1")
	}
	if c.Gateway.Secret == "" {
		return invalid("gateway.secret", "must not be empty")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", "unknown level "+strconv.Quote(c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid("log.format", "unknown format "+strconv.Quote(c.Log.Format))
	}
	return nil
}

// ValidateGatewaySecret rejects the development secret outside debug level.
func (c *Config) ValidateGatewaySecret() error {
	if c.Gateway.Secret != DevelopmentSecret || strings.EqualFold(c.Log.Level, "debug") {
		return nil
	}
	return invalid("gateway.secret", "is the development secret; set "+EnvSessionSecret+" or gateway.secret")
}

func invalid(key, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidConfig, key+" "+reason), "key", key)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
