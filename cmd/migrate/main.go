// cmd/migrate はテーブル作成と、任意で管理者ユーザーの投入を行う
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go_4_elearning/internal/config"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	adminEmail := flag.String("admin-email", "", "create an admin user with this email (optional)")
	adminName := flag.String("admin-name", "Administrator", "display name of the seeded admin")
	flag.Parse()

	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := &config.Cfg

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database migrated successfully")

	if *adminEmail == "" {
		return
	}

	// パスワードは環境変数からのみ受け取る
	password := os.Getenv("ADMIN_PASSWORD")
	if len(password) < 8 {
		log.Fatal("ADMIN_PASSWORD must be set (at least 8 characters) to seed an admin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Name:         *adminName,
		Email:        strings.ToLower(strings.TrimSpace(*adminEmail)),
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	userRepo := repository.NewGormUserRepository()
	if err := userRepo.Create(context.Background(), db, admin); err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Warn("Admin user already exists", slog.String("email", admin.Email))
			return
		}
		log.Fatalf("Failed to create admin user: %v", err)
	}
	logger.Info("Admin user created", slog.Uint64("id", uint64(admin.ID)), slog.String("email", admin.Email))
}
