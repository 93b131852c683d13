// Command seed creates test users for development. Existing accounts are
// left untouched, so the command is safe to re-run.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/menumesa/pos-system/internal/core/domain"
	"github.com/menumesa/pos-system/internal/core/password"
	"github.com/menumesa/pos-system/internal/core/ports"
	"github.com/menumesa/pos-system/internal/core/service"
	"github.com/menumesa/pos-system/internal/infrastructure/config"
	mongodb "github.com/menumesa/pos-system/internal/infrastructure/db/mongo"
	"github.com/menumesa/pos-system/pkg/logger"
)

var testUsers = []ports.CreateUserInput{
	{Name: "Admin User", Email: "admin@example.com", Password: "Admin123!", Role: domain.RoleAdmin},
	{Name: "Test User", Email: "user@example.com", Password: "User123!", Role: domain.RoleUser},
	{Name: "John Doe", Email: "john@example.com", Password: "John123!", Role: domain.RoleUser, RestaurantName: "John's Diner"},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "Jane123!", Role: domain.RoleUser, RestaurantName: "Jane's Bistro"},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

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

	users := service.NewUserService(userRepo, password.NewHasher(cfg.Password.BcryptCost), log)

	for _, input := range testUsers {
		created, err := users.Create(ctx, input)
		if err != nil {
			if errors.Is(err, domain.ErrEmailTaken) {
				log.Info().Str("email", input.Email).Msg("user already exists, skipping")
				continue
			}
			log.Fatal().Err(err).Str("email", input.Email).Msg("seed failed")
		}
		log.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("user seeded")
	}
}
