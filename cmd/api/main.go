// @title                       Hairdresser Booking API
// @version                     1.0
// @description                 Registration, login, location tracking and appointment booking.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hairbook/booking-api/internal/api"
	"github.com/hairbook/booking-api/internal/core/service"
	"github.com/hairbook/booking-api/internal/infrastructure/db/mongo"
	"github.com/hairbook/booking-api/internal/infrastructure/db/redis"
	"github.com/hairbook/booking-api/internal/infrastructure/http/handlers"
	"github.com/hairbook/booking-api/internal/pkg/config"
	"github.com/hairbook/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "booking-api",
		Env:     cfg.Env,
	})

	if cfg.UsingDefaultSecret() {
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the built-in fallback secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "booking-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	bookingRepo := mongo.NewBookingRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, bookingRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	var (
		rdb   *goredis.Client
		dedup service.DedupChecker
	)
	rdb, err = redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		log.Info().Msg("REDIS_ADDR not set, booking de-duplication disabled")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to connect to redis")
	default:
		defer rdb.Close()
		dedup = redis.NewBookingDedup(rdb)
	}

	// --- Services ---
	tokens := service.NewTokenManager(cfg.JWTSecret, service.DefaultTokenTTL)
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(), tokens, log)
	userService := service.NewUserService(userRepo, log)
	bookingService := service.NewBookingService(bookingRepo, dedup, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		UserService:    userService,
		BookingService: bookingService,
		Tokens:         tokens,
		Logger:         log,
		Readiness:      handlers.NewHealthDependenciesHandler(db, rdb),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
