// Command server runs the marketplace HTTP API and serves the client app.
//
//	@title						Gigboard Marketplace API
//	@version					1.0
//	@description				Freelancer marketplace: accounts and job postings.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigboard/marketplace/internal/api"
	"github.com/gigboard/marketplace/internal/api/handler"
	"github.com/gigboard/marketplace/internal/core/service"
	"github.com/gigboard/marketplace/internal/infrastructure/config"
	mongodb "github.com/gigboard/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/gigboard/marketplace/internal/infrastructure/db/redis"
	"github.com/gigboard/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer disconnectMongo(client)
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, jobRepo); err != nil {
		return err
	}

	checks := map[string]handler.CheckFunc{
		"mongodb": mongodb.PingFunc(db),
		"redis":   nil,
	}

	// --- Redis (optional) ---
	var idem service.IdempotencyStore
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, idempotent job posts disabled")
	} else {
		defer closeRedis(rdb)
		idem = redisdb.NewIdempotencyStore(rdb)
		checks["redis"] = redisdb.PingFunc(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	jobService := service.NewJobService(jobRepo, idem, log)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		JobService:  jobService,
		Checks:      checks,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func disconnectMongo(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("mongodb disconnect")
	}
}

func closeRedis(client *goredis.Client) {
	if err := client.Close(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("redis close")
	}
}
