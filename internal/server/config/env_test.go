package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("NATS_URL", "nats://env-broker:4222")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "45m")

	config := &Config{}
	config.LoadDefaults()
	parseEnv(config)

	assert.Equal(t, "nats://env-broker:4222", config.NatsURL)
	assert.Equal(t, "env-secret", config.SecretKey)
	assert.Equal(t, 45*time.Minute, config.TokenValidityDuration)

	// untouched variables keep their defaults
	assert.Equal(t, "auth", config.NatsQueueGroup)
	assert.Equal(t, 10, config.BcryptCost)
}

func TestParseEnv_PanicsOnMalformedValue(t *testing.T) {
	t.Setenv("TOKEN_TTL", "whenever")

	config := &Config{}
	config.LoadDefaults()

	assert.Panics(t, func() { parseEnv(config) })
}
