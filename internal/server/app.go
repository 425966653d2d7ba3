// Package server initializes and runs the auth service: configuration,
// database and migrations, the credential service, and the broker binding,
// with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/nestjs-store-microservices/auth-ms/internal/logging"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/auth"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/config"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/migrations"
	ns "github.com/nestjs-store-microservices/auth-ms/internal/server/nats"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *users.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(handler)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := waitForDB(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := migrations.Run(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	repo := users.NewPostgresRepository(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	codec := auth.NewTokenCodec([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	svc := users.NewService(repo, hasher, codec)

	return &App{config: cfg, logger: logger, db: db, authService: svc}, nil
}

// waitForDB pings until the database answers, so the service can start
// before its database container does.
func waitForDB(ctx context.Context, db *sql.DB) error {
	backoff := retry.WithMaxRetries(10, retry.NewConstant(2*time.Second))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startBrokerServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := ns.NewServer(app.config.NatsURL, app.config.NatsQueueGroup, app.authService, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startBrokerServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Error closing db", "error", err.Error())
	}
}
