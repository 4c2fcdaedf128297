package database

import (
	"fmt"

	"github.com/learnhub/backend/internal/config"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the process-wide connection pool, runs migrations and
// seeds the initial admin account. Called exactly once at startup.
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedAdminUser(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. The enrollments and ratings
// tables carry composite unique indexes, so duplicate enrollment and
// double rating are rejected by the store itself.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.Rating{},
		&models.Enrollment{},
		&models.Activity{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "LearnHub Admin",
		Email:        "admin@learnhub.local",
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}

	return db.Create(&admin).Error
}
