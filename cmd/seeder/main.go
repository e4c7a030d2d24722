package main

import (
	"log"
	"os"

	"github.com/pushp314/learnhub-backend/internal/config"
	"github.com/pushp314/learnhub-backend/internal/database"
	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin account and a starter set of topics for local development.
func main() {
	config.LoadConfig()

	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Topic{},
		&models.YoutubeChannel{},
		&models.Course{},
		&models.Video{},
		&models.CourseAssessment{},
		&models.VideoProgress{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}

		admin := models.User{
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			Profile:      &models.Profile{Name: "Admin"},
		}
		if err := db.Where("email = ?", adminEmail).FirstOrCreate(&admin).Error; err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
		log.Printf("Admin user ready: %s", adminEmail)
	} else {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
	}

	topics := []string{
		"Machine Learning",
		"Web Development",
		"Data Structures",
		"System Design",
		"DevOps",
	}
	for _, name := range topics {
		slug := utils.GenerateSlug(name)
		topic := models.Topic{Name: name, Slug: slug}
		if err := db.Where("slug = ?", slug).FirstOrCreate(&topic).Error; err != nil {
			log.Fatalf("Failed to seed topic %q: %v", name, err)
		}
	}
	log.Printf("Seeded %d topics", len(topics))
}
