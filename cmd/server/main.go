package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/service"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/config"
	mongostore "github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/db/mongo"
	redisstore "github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/db/redis"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/seed"
	"github.com/rollenspielwerkzeuge/placemat-auth/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.JWT.Secret == "" {
		// Development convenience only; Validate rejects this in production.
		cfg.JWT.Secret = randomSecret()
		log.Warn().Msg("JWT_SECRET not set, generated an ephemeral development secret; issued tokens will not survive restarts")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index setup failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if cfg.IsDevelopment() {
		hasher := service.NewPasswordHasher(cfg.BcryptCost)
		seeder := seed.NewSeeder(mongostore.NewUserRepository(db), hasher, log)
		if err := seeder.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("dev seeding failed")
		}
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting auth service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
