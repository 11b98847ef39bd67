package seeder

import (
	"context"
	"log"
	"time"

	"Attendance-Roster-Backend/config"
	"Attendance-Roster-Backend/models"
	"Attendance-Roster-Backend/pkg/password"
	"Attendance-Roster-Backend/repository"
)

// SeedAdminUser creates the initial admin account when the users collection
// is empty. Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD; nothing is
// seeded when they are unset.
func SeedAdminUser(cfg *config.AppConfig) {
	if cfg.AdminEmail == "" || cfg.AdminPass == "" {
		log.Println("Seeder: ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository()

	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		log.Printf("Seeder: failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hashed, err := password.HashPassword(cfg.AdminPass)
	if err != nil {
		log.Printf("Seeder: failed to hash admin password: %v", err)
		return
	}

	now := time.Now()
	admin := &models.User{
		EmpID:     "ADMIN",
		Name:      "Administrator",
		Email:     cfg.AdminEmail,
		Password:  hashed,
		Role:      "admin",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		log.Printf("Seeder: failed to create admin user: %v", err)
		return
	}

	log.Printf("Seeder: admin user %s created", cfg.AdminEmail)
}
