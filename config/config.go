package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Planner  PlannerConfig  `yaml:"planner"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"` // Derived from CacheTTLSeconds
}

// PlannerConfig holds the defaults and bounds used when building itineraries.
type PlannerConfig struct {
	City              string `yaml:"city"`
	Locality          string `yaml:"locality"`
	Timezone          string `yaml:"timezone"`
	DailyStart        string `yaml:"daily_start"`
	BufferMinutes     int    `yaml:"buffer_minutes"`
	MinMinutes        int    `yaml:"min_minutes"`
	MaxMinutes        int    `yaml:"max_minutes"`
	MaxPlaces         int    `yaml:"max_places"`
	MaxTripDays       int    `yaml:"max_trip_days"`
	SurpriseDurations []int  `yaml:"surprise_durations"`
}

// CatalogConfig controls where points of interest are fetched from.
type CatalogConfig struct {
	Enabled         bool           `yaml:"enabled"`
	Provider        string         `yaml:"provider"` // "overpass" or "google"
	IntervalSeconds int            `yaml:"interval_seconds"`
	Interval        time.Duration  `yaml:"-"`
	Workers         int            `yaml:"workers"`
	Categories      []string       `yaml:"categories"`
	TimeoutSeconds  int            `yaml:"timeout_seconds"`
	Overpass        OverpassConfig `yaml:"overpass"`
	Google          GoogleConfig   `yaml:"google"`
}

// OverpassConfig describes the OpenStreetMap Overpass query area.
type OverpassConfig struct {
	URL     string  `yaml:"url"`
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
	RadiusM int     `yaml:"radius_m"`
}

// GoogleConfig holds the Google Places Text Search settings.
type GoogleConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// envOverrides are read from PLANNER_* variables and win over the file.
type envOverrides struct {
	GoogleAPIKey   string `envconfig:"GOOGLE_API_KEY"`
	DatabaseDriver string `envconfig:"DATABASE_DRIVER"`
	DatabaseDSN    string `envconfig:"DATABASE_DSN"`
	ServerPort     int    `envconfig:"SERVER_PORT"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
}

// Load reads the configuration from the given path, applies PLANNER_*
// environment overrides and fills in defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := preset()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a configuration with every default applied, for use when
// no config file exists.
func Default() *Config {
	cfg := preset()
	if err := applyEnv(cfg); err != nil {
		log.Warn().Err(err).Msg("ignoring invalid PLANNER_* environment")
	}
	cfg.applyDefaults()
	return cfg
}

// preset holds defaults for fields whose zero value is a valid setting.
// The YAML decoder only overwrites keys present in the file, so an explicit
// `buffer_minutes: 0` or `enabled: false` survives.
func preset() *Config {
	cfg := &Config{}
	cfg.Planner.BufferMinutes = 15
	cfg.Catalog.Enabled = true
	return cfg
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("planner", &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if env.GoogleAPIKey != "" {
		cfg.Catalog.Google.APIKey = env.GoogleAPIKey
	}
	if env.DatabaseDriver != "" {
		cfg.Database.Driver = env.DatabaseDriver
	}
	if env.DatabaseDSN != "" {
		cfg.Database.DSN = env.DatabaseDSN
	}
	if env.ServerPort != 0 {
		cfg.Server.Port = env.ServerPort
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	p := &cfg.Planner
	if p.City == "" {
		p.City = "Ras Al Khaimah"
	}
	if p.Locality == "" {
		p.Locality = p.City
	}
	if p.Timezone == "" {
		p.Timezone = "Asia/Dubai"
	}
	if p.DailyStart == "" {
		p.DailyStart = "09:00"
	}
	if p.BufferMinutes < 0 {
		log.Warn().Int("buffer_minutes", p.BufferMinutes).Msg("planner.buffer_minutes is negative; defaulting to 15")
		p.BufferMinutes = 15
	}
	if p.MinMinutes <= 0 {
		p.MinMinutes = 15
	}
	if p.MaxMinutes <= 0 {
		p.MaxMinutes = 300
	}
	if p.MaxPlaces <= 0 {
		p.MaxPlaces = 5
	}
	if p.MaxTripDays <= 0 {
		p.MaxTripDays = 14
	}
	if len(p.SurpriseDurations) == 0 {
		p.SurpriseDurations = []int{30, 60, 90, 120}
	}

	c := &cfg.Catalog
	if c.Provider == "" {
		c.Provider = "overpass"
	}
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 6 * 60 * 60
	}
	c.Interval = time.Duration(c.IntervalSeconds) * time.Second
	if c.Workers <= 0 {
		log.Debug().Msg("catalog.workers is not set or invalid; defaulting to 2")
		c.Workers = 2
	}
	if len(c.Categories) == 0 {
		c.Categories = []string{"attraction", "museum", "viewpoint"}
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.Overpass.URL == "" {
		c.Overpass.URL = "https://overpass-api.de/api/interpreter"
	}
	if c.Overpass.Lat == 0 && c.Overpass.Lon == 0 {
		c.Overpass.Lat, c.Overpass.Lon = 25.7895, 55.9432
	}
	if c.Overpass.RadiusM <= 0 {
		c.Overpass.RadiusM = 30000
	}
	if c.Google.URL == "" {
		c.Google.URL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "planner.db"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 2
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Location returns the planner's time zone, falling back to UTC.
func (p PlannerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", p.Timezone).Msg("unknown planner timezone; using UTC")
		return time.UTC
	}
	return loc
}
