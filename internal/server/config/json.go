package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nestjs-store-microservices/auth-ms/internal/flagx"
	"github.com/nestjs-store-microservices/auth-ms/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. It uses timex.Duration
// for interval fields, which accepts both string values such as "1h" and
// integer nanoseconds.
type JsonConfig struct {
	NatsURL               string         `json:"nats_url"`
	NatsQueueGroup        string         `json:"nats_queue_group"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
}

// parseJson overlays values from the JSON file named by the -c/-config flag,
// if any. An unreadable or invalid file is a startup error and panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
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
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
