package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"blogly/internal/cache"
	"blogly/internal/middleware"
	"blogly/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	MaxDays     int
	Seed        int64
}

// Result reports what a seeding run created.
type Result struct {
	Users []models.User
	Posts int
}

// Seeder populates the database with demo users and posts.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll deletes every post and user and evicts their cache entries.
func (s *Seeder) ClearAll() error {
	var userIDs, postIDs []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if err := tx.Model(&models.Post{}).Pluck("id", &postIDs).Error; err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	cache.InvalidatePosts(ctx, postIDs)
	for _, id := range userIDs {
		cache.InvalidateUser(ctx, id)
	}
	return nil
}

// Run creates opts.NumUsers users and distributes opts.NumPosts posts among them.
func (s *Seeder) Run(opts Options) (*Result, error) {
	if opts.NumUsers <= 0 {
		return nil, errors.New("seed: at least one user is required")
	}
	if opts.NumPosts < 0 {
		return nil, errors.New("seed: post count must not be negative")
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	factory := NewFactory(opts.Seed, opts.MaxDays)
	result := &Result{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := make([]models.User, 0, opts.NumUsers)
		for i := 0; i < opts.NumUsers; i++ {
			users = append(users, *factory.BuildUser())
		}
		if err := tx.CreateInBatches(&users, 100).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		posts := make([]models.Post, 0, opts.NumPosts)
		for i := 0; i < opts.NumPosts; i++ {
			author := &users[factory.Pick(len(users))]
			posts = append(posts, *factory.BuildPost(author))
		}
		if len(posts) > 0 {
			if err := tx.Omit("User").CreateInBatches(&posts, 100).Error; err != nil {
				return fmt.Errorf("create posts: %w", err)
			}
		}

		result.Users = users
		result.Posts = len(posts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.Info("Seeding complete",
		slog.Int("users", len(result.Users)),
		slog.Int("posts", result.Posts),
	)
	return result, nil
}
