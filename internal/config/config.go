package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/vendora/seller-service/pkg/config"
	"github.com/vendora/seller-service/pkg/database"
	"github.com/vendora/seller-service/pkg/validator"
)

// Config holds all configuration for the seller service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SELLER_HTTP_PORT" envDefault:"8007" validate:"min=1,max=65535"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"sellers"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Connection pool
	PoolMaxConns           int32 `env:"POSTGRES_POOL_MAX_CONNS" envDefault:"10" validate:"min=1"`
	PoolMinConns           int32 `env:"POSTGRES_POOL_MIN_CONNS" envDefault:"2"`
	PoolMaxConnLifetimeMin int   `env:"POSTGRES_POOL_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	PoolMaxConnIdleMin     int   `env:"POSTGRES_POOL_MAX_CONN_IDLE_MINUTES" envDefault:"15"`

	// Redis (settings cache)
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	SettingsTTLSecs int    `env:"SETTINGS_CACHE_TTL_SECONDS" envDefault:"60"`

	// User service (customer verification); empty disables verification and
	// the gateway header is trusted as-is.
	UserServiceURL string `env:"USER_SERVICE_URL" envDefault:""`

	// Media base URL for resolving relative product image paths.
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:""`

	// Shop name shown on the synthetic in-house seller entry.
	InHouseShopName string `env:"IN_HOUSE_SHOP_NAME" envDefault:"In House"`

	// Tracing
	OTELEnabled      bool     `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint     string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate   float64  `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`
	ServiceVersion   string   `env:"SERVICE_VERSION" envDefault:"dev"`
	SlowQueryMillis  int      `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"200"`
	PprofAllowedCIDR []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load seller config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid seller config: %w", err)
	}
	return nil
}

// Postgres returns the database connection configuration.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPassword,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSLMode,
		MaxConns:        c.PoolMaxConns,
		MinConns:        c.PoolMinConns,
		MaxConnLifetime: time.Duration(c.PoolMaxConnLifetimeMin) * time.Minute,
		MaxConnIdleTime: time.Duration(c.PoolMaxConnIdleMin) * time.Minute,
	}
}

// Redis returns the cache connection configuration.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
