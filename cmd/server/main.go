package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/menumesa/pos-system/internal/api"
	"github.com/menumesa/pos-system/internal/api/handler"
	"github.com/menumesa/pos-system/internal/api/middleware"
	"github.com/menumesa/pos-system/internal/core/password"
	"github.com/menumesa/pos-system/internal/core/service"
	"github.com/menumesa/pos-system/internal/core/token"
	"github.com/menumesa/pos-system/internal/infrastructure/config"
	mongodb "github.com/menumesa/pos-system/internal/infrastructure/db/mongo"
	redisdb "github.com/menumesa/pos-system/internal/infrastructure/db/redis"
	"github.com/menumesa/pos-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Dependencies ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	hasher := password.NewHasher(cfg.Password.BcryptCost)
	issuer := token.NewIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	limiter := redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max)

	authService := service.NewAuthService(userRepo, hasher, issuer, log)
	userService := service.NewUserService(userRepo, hasher, log)

	e := api.NewRouter(api.Deps{
		Logger:      log,
		AuthHandler: handler.NewAuthHandler(authService),
		UserHandler: handler.NewUserHandler(userService),
		Readiness:   handler.NewReadinessHandler(db, rdb),
		Auth:        middleware.Auth(issuer),
		RateLimit:   middleware.RateLimit(limiter, log),
		Metrics:     true,
	})

	// --- Serve ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
