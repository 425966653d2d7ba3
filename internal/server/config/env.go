package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with env tags. Only variables that are actually
// set override the current values.
type envConfig struct {
	NatsURL               string        `env:"NATS_URL"`
	NatsQueueGroup        string        `env:"NATS_QUEUE_GROUP"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"JWT_SECRET"`
	TokenValidityDuration time.Duration `env:"TOKEN_TTL"`
	BcryptCost            int           `env:"BCRYPT_COST"`
}

// parseEnv overlays values from environment variables. A malformed value
// (e.g. an unparsable TOKEN_TTL) is a startup error and panics.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.NatsURL != "" {
		config.NatsURL = c.NatsURL
	}
	if c.NatsQueueGroup != "" {
		config.NatsQueueGroup = c.NatsQueueGroup
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
