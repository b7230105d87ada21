// Command seed fills the configured database with demo data.
package main

import (
	"flag"
	"log"

	"myapp/config"
	"myapp/database"
	"myapp/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 5, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per user")
	commentsPerPost := flag.Int("comments", 2, "Comments per post")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	fakerSeed := flag.Int64("seed", 0, "Faker seed (0 for random)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	s := seed.NewSeeder(db, *fakerSeed)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.Run(seed.Options{
		Users:           *numUsers,
		PostsPerUser:    *postsPerUser,
		CommentsPerPost: *commentsPerPost,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. Every demo user logs in with password %q", seed.DemoPassword)
}
