// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 10, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Number of posts per user")
	commentsPerPost := flag.Int("comments", 2, "Number of comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	password := flag.String("password", "password", "Password for all seeded users")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users x %d posts x %d comments, clean=%v\n",
		*numUsers, *postsPerUser, *commentsPerPost, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		// Hard-delete in dependency order so foreign keys stay satisfied.
		for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
			if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				log.Fatalf("❌ Cleanup failed: %v", err)
			}
		}
	}

	opts := seed.Options{
		Users:           *numUsers,
		PostsPerUser:    *postsPerUser,
		CommentsPerPost: *commentsPerPost,
		Password:        *password,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s\n", *password)
}
