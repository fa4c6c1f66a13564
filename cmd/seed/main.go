package main

import (
	"log"
	"os"
	"time"

	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/pkg/database"
	"mentoring-marketplace-be/pkg/lifecycle"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a minimal local dataset: three profiles and a handful of classes in
// different lifecycle states, including one whose window has already elapsed
// so the very first sweep has something to pick up.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	professor := seedProfile(db, "Ana Petrova", "ana.petrova@example.com", "professor")
	student := seedProfile(db, "Marco Silva", "marco.silva@example.com", "student")
	seedProfile(db, "Ops Admin", "ops@example.com", "admin")

	now := time.Now().UTC()

	classes := []model.ClassSession{
		{
			ProfessorId: professor.Id,
			StudentId:   student.Id,
			BeginsAt:    now.Add(24 * time.Hour),
			EndsAt:      now.Add(25 * time.Hour),
			Status:      lifecycle.StatusRequested.String(),
		},
		{
			ProfessorId: professor.Id,
			StudentId:   student.Id,
			BeginsAt:    now.Add(48 * time.Hour),
			EndsAt:      now.Add(49 * time.Hour),
			Status:      lifecycle.StatusNext.String(),
			Confirmed:   true,
		},
		{
			// Already elapsed; the first sweep moves this one.
			ProfessorId: professor.Id,
			StudentId:   student.Id,
			BeginsAt:    now.Add(-2 * time.Hour),
			EndsAt:      now.Add(-1 * time.Hour),
			Status:      lifecycle.StatusNext.String(),
			Confirmed:   true,
		},
	}

	for i := range classes {
		if err := db.Create(&classes[i]).Error; err != nil {
			log.Printf("Error seeding class: %v", err)
		}
	}

	log.Println("Seed data created.")
}

func seedProfile(db *gorm.DB, name, email, role string) *model.Profile {
	p := model.Profile{Name: name, Email: email, Role: role}
	if err := db.Where("email = ?", email).FirstOrCreate(&p).Error; err != nil {
		log.Fatalf("Error seeding profile %s: %v", email, err)
	}
	return &p
}
