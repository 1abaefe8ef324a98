package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const seedPassword = "password123"

// seedUser describes one sample user. Employees reference the manager
// created before them.
type seedUser struct {
	Email      string
	Name       string
	Role       model.Role
	HasManager bool
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Feedback{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := []seedUser{
		{Email: "manager@company.com", Name: "John Manager", Role: model.RoleManager},
		{Email: "alice@company.com", Name: "Alice Smith", Role: model.RoleEmployee, HasManager: true},
		{Email: "bob@company.com", Name: "Bob Johnson", Role: model.RoleEmployee, HasManager: true},
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped, err := seedUsers(ctx, userRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// seedUsers inserts sample users, skipping any email that already exists.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []seedUser) (created int, skipped int, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		return 0, 0, err
	}

	var managerID *uint
	for _, item := range users {
		existing, err := repo.FindByEmail(ctx, item.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, err
		}
		if existing != nil {
			if existing.Role == model.RoleManager {
				id := existing.ID
				managerID = &id
			}
			skipped++
			continue
		}

		user := &model.User{
			Email:        item.Email,
			PasswordHash: string(hash),
			Name:         item.Name,
			Role:         item.Role,
		}
		if item.HasManager {
			user.ManagerID = managerID
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, skipped, err
		}
		if item.Role == model.RoleManager {
			id := user.ID
			managerID = &id
		}
		created++
	}

	return created, skipped, nil
}
