package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.Rating{},
		&models.Enrollment{},
		&models.Activity{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Service Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating user: %v", err)
	}
	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uuid.UUID, price float64, durations ...int) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:        "Service Test Course",
		Description:  "Used by the service tests",
		Thumbnail:    "https://cdn.example.com/thumb.png",
		Category:     "Programming",
		InstructorID: instructorID,
		Price:        price,
		IsFree:       price == 0,
		Status:       models.CourseStatusPublished,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed creating course: %v", err)
	}
	for i, duration := range durations {
		module := &models.CourseModule{
			CourseID:    course.ID,
			Title:       "Module",
			Description: "Module description",
			VideoURL:    "https://cdn.example.com/video.mp4",
			Duration:    duration,
			OrderIndex:  i + 1,
		}
		if err := db.Create(module).Error; err != nil {
			t.Fatalf("failed creating module: %v", err)
		}
		course.Modules = append(course.Modules, *module)
	}
	return course
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uuid.UUID) *models.Enrollment {
	t.Helper()
	enrollment := &models.Enrollment{
		UserID:           userID,
		CourseID:         courseID,
		CompletedModules: []uuid.UUID{},
		EnrolledAt:       time.Now().UTC(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("failed creating enrollment: %v", err)
	}
	return enrollment
}
