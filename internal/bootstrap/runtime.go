// Package bootstrap wires the runtime dependencies shared by the command binaries.
package bootstrap

import (
	"fmt"
	"log/slog"

	"blogly/internal/cache"
	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/middleware"
	"blogly/internal/models"
	"blogly/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData inserts demo users and posts when the users table is empty.
	SeedDemoData bool
	Seed         seed.Options
}

// InitRuntime connects to DB and Redis and optionally seeds an empty database.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedIfEmpty(db, opts.Seed); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(db *gorm.DB, opts seed.Options) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		middleware.Logger.Info("Skipping demo seed; users already present", slog.Int64("users", count))
		return nil
	}

	if opts.NumUsers == 0 {
		opts.NumUsers = 5
	}
	if opts.NumPosts == 0 {
		opts.NumPosts = 15
	}
	opts.ShouldClean = false

	_, err := seed.NewSeeder(db).Run(opts)
	return err
}
