package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings; the seller
// service config in internal/config is the canonical consumer.
//
// Example:
//
//	type Config struct {
//	    HTTPPort     int    `env:"SELLER_HTTP_PORT" envDefault:"8080"`
//	    MediaBaseURL string `env:"MEDIA_BASE_URL"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
