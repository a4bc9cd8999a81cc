package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Booking  BookingConfig  `yaml:"booking"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "postgres" or "sqlite"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`

	// EnableExclusionConstraint installs a Postgres btree_gist EXCLUDE
	// constraint that rejects overlapping confirmed bookings at the database
	// level, backing up the application-level check.
	EnableExclusionConstraint bool `yaml:"enable_exclusion_constraint"`
}

// OpenHoursConfig defines the nominal bookable window per day.
type OpenHoursConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// BookingConfig holds the booking engine's policy knobs.
type BookingConfig struct {
	OpenHours OpenHoursConfig `yaml:"open_hours"`

	// ConflictScope decides whether whole-facility and per-room bookings
	// block each other: "independent" (they never do) or "strict" (a
	// whole-facility booking blocks every room and vice versa).
	ConflictScope string `yaml:"conflict_scope"`

	// MergeTouchingSlots collapses exactly back-to-back occupied spans in the
	// availability view into one span.
	MergeTouchingSlots bool `yaml:"merge_touching_slots"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields with working defaults.
func (cfg *Config) ApplyDefaults() {
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

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}

	if cfg.Booking.OpenHours.Start == "" {
		cfg.Booking.OpenHours.Start = "08:00"
	}
	if cfg.Booking.OpenHours.End == "" {
		cfg.Booking.OpenHours.End = "18:00"
	}
	if cfg.Booking.ConflictScope == "" {
		log.Printf("booking.conflict_scope is not set; defaulting to \"independent\"")
		cfg.Booking.ConflictScope = "independent"
	}
}
