package config

import (
	"flag"
	"os"
	"time"

	"github.com/nestjs-store-microservices/auth-ms/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-n string   NATS broker URL (e.g., "nats://127.0.0.1:4222")
//	-q string   NATS queue group name
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-b int      bcrypt cost factor
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The duration
// flag is accepted as an integer in minutes and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-q", "-d", "-s", "-t", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.NatsURL, "n", config.NatsURL, "NATS broker URL")
	fs.StringVar(&config.NatsQueueGroup, "q", config.NatsQueueGroup, "NATS queue group")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost factor")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
