// Package config manages environment variables.
//
// It reads variables (optionally from a `.env` file), loads them into
// structured Go types, and validates that required values are present
// so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if present.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the RPOS_ prefix. The prefix is removed and
	the remainder lowercased; nesting uses "." so
	RPOS_DATABASE.HOST -> database.host -> Config.Database.Host
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "RPOS_"

// Config is the root configuration object for the application.
//
// Observability and Notification are pointers because they are optional.
// If not provided, defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Notification  *NotificationConfig  `koanf:"notification"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained requests-per-second allowed per client IP.
	RateLimit float64 `koanf:"rate_limit"`

	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed.
	// Empty means the socket peer is the client.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"omitempty,dive,cidr"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`

	// QueryTimeout bounds every single store call. A call that runs past
	// it fails with a retryable store error instead of hanging the caller.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// DSN builds the postgres URL for this database.
func (d DatabaseConfig) DSN() string {
	return buildDSN(d)
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds credentials for third-party providers.
type IntegrationConfig struct {
	// ResendAPIKey enables outgoing email. Empty means emails are logged and skipped.
	ResendAPIKey string `koanf:"resend_api_key"`
}

// NotificationConfig controls approval-request notifications sent when
// a device registers without being approved.
type NotificationConfig struct {
	Enabled       bool   `koanf:"enabled"`
	ApproverEmail string `koanf:"approver_email" validate:"required_if=Enabled true"`
	FromAddress   string `koanf:"from_address"`
}

// DefaultQueryTimeout applies when database.query_timeout is unset.
const DefaultQueryTimeout = 5 * time.Second

// DefaultRateLimit applies when server.rate_limit is unset.
const DefaultRateLimit = 20

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix RPOS_
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Applies defaults for optional blocks and values
//   - Overrides observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	// Service name is fixed so dashboards never split across spellings.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional values that were not provided.
func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.fillDefaults()
	if c.Notification == nil {
		c.Notification = &NotificationConfig{}
	}
	if c.Notification.FromAddress == "" {
		c.Notification.FromAddress = "RPOS Gateway <onboarding@resend.dev>"
	}
	if c.Database.QueryTimeout <= 0 {
		c.Database.QueryTimeout = DefaultQueryTimeout
	}
	if c.Server.RateLimit <= 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
}
