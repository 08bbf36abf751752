package database

import (
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/todo-manager/model"
	"github.com/sahilchouksey/todo-manager/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedDemoUsers(); err != nil {
		return fmt.Errorf("failed to seed demo users: %w", err)
	}

	if err := s.SeedDemoTodos(); err != nil {
		return fmt.Errorf("failed to seed demo todos: %w", err)
	}

	log.Println("🌱 Database seeding completed")
	return nil
}

// SeedDemoUsers creates demo accounts if they do not exist yet
func (s *Seeder) SeedDemoUsers() error {
	for _, username := range []string{"demo", "demo2"} {
		var existing model.User
		err := s.db.Where("username = ?", username).First(&existing).Error
		if err == nil {
			log.Printf("User %q already exists, skipping", username)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, err := auth.HashPassword("demopass123")
		if err != nil {
			return err
		}

		user := model.User{
			Username:     username,
			PasswordHash: hash,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Created demo user %q (id=%d)", username, user.ID)
	}

	return nil
}

// SeedDemoTodos creates a few todos for the primary demo account
func (s *Seeder) SeedDemoTodos() error {
	var user model.User
	if err := s.db.Where("username = ?", "demo").First(&user).Error; err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Todo{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Demo todos already exist, skipping")
		return nil
	}

	today := time.Now()
	todos := []model.Todo{
		{
			UserID:      user.ID,
			Title:       "Finish project report",
			Description: "Summarize the quarter and send it to the team",
			DueDate:     today.AddDate(0, 0, 3),
			Priority:    model.PriorityHigh,
		},
		{
			UserID:      user.ID,
			Title:       "Renew gym membership",
			DueDate:     today.AddDate(0, 0, -2), // overdue on purpose
			Priority:    model.PriorityLow,
		},
		{
			UserID:      user.ID,
			Title:       "Book dentist appointment",
			Description: "Morning slot preferred",
			DueDate:     today.AddDate(0, 0, 10),
			Priority:    model.PriorityMedium,
			Completed:   true,
		},
	}

	if err := s.db.Create(&todos).Error; err != nil {
		return err
	}
	log.Printf("Created %d demo todos for user %q", len(todos), user.Username)
	return nil
}

// RunSeeds is a convenience wrapper used by cmd/seed
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}
