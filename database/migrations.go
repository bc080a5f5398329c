package database

import (
	"log/slog"
	"os"

	"gorm.io/gorm"

	"roadline/admin"
	"roadline/models"
)

func RunMigrations(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.BlogPost{},
		&models.Review{},
		&models.Vehicle{},
		&models.Benefit{},
		&models.BenefitStats{},
		&models.SiteSettings{},
	)
	if err != nil {
		slog.Error("running migrations", "error", err)
		return err
	}

	slog.Info("migrations completed")
	return nil
}

// EnsureAdminUser creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// when no user with that email exists yet. A missing ADMIN_EMAIL is not an
// error so tests and read-only deployments can run without credentials.
func EnsureAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		slog.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, admin login disabled")
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := admin.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Email: email, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	slog.Info("created admin user", "email", email)
	return nil
}
