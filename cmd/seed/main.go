// Command seed fills the database with demo users and posts for Blogly.
package main

import (
	"flag"
	"log"

	"blogly/internal/cache"
	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Delete all users and posts before seeding")
	maxDays := flag.Int("days", 90, "Spread post creation times over this many past days")
	randSeed := flag.Int64("seed", 0, "Fixed random seed for reproducible data (0 = random)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed demo data in production")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	// Cleaning must also drop cached rows for the deleted records.
	cache.InitRedis(cfg.RedisURL)
	defer func() { _ = cache.Close() }()

	result, err := seed.NewSeeder(db).Run(seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
		Seed:        *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done! Created %d users and %d posts.", len(result.Users), result.Posts)
}
