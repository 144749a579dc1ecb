package main

import (
	"context"
	"os"

	"github.com/fiveflix/videos-ms-go/internal/config"
	"github.com/fiveflix/videos-ms-go/internal/crypto"
	"github.com/fiveflix/videos-ms-go/internal/db"
	"github.com/fiveflix/videos-ms-go/internal/logger"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/repository/mariadb"
	_ "github.com/go-sql-driver/mysql"
)

// seed-admin creates or resets the admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD. Meant for provisioning, not for regular account management.
func main() {
	ctx := context.Background()

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.Error(ctx, "❌  ADMIN_USERNAME and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	hash, err := crypto.HashPassword(password)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to hash password: %v", err)
		os.Exit(1)
	}

	users := mariadb.NewUserRepository(database.DB)
	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := users.Upsert(ctx, admin); err != nil {
		logger.Errorf(ctx, "❌  Failed to upsert admin account: %v", err)
		os.Exit(1)
	}

	logger.Infof(ctx, "✅  Admin account %q is ready", username)
}
