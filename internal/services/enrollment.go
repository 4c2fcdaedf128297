package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// EnrollmentService owns the enrollment workflow and per-module
// progress tracking.
type EnrollmentService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewEnrollmentService(db *gorm.DB, catalog *CatalogService) *EnrollmentService {
	return &EnrollmentService{DB: db, Catalog: catalog}
}

// Enroll creates the enrollment record for (user, course). The
// relationship is stored once; totalStudents on the course is refreshed
// from the enrollment count afterwards. Concurrent duplicate
// enrollments lose the race at the unique index and surface as
// ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, user *models.User, courseID uuid.UUID) (*models.Enrollment, error) {
	db := s.DB.WithContext(ctx)

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing models.Enrollment
	err := db.First(&existing, "user_id = ? AND course_id = ?", user.ID, courseID).Error
	if err == nil {
		return nil, ErrAlreadyEnrolled
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment := models.Enrollment{
		UserID:           user.ID,
		CourseID:         courseID,
		Progress:         0,
		CompletedModules: []uuid.UUID{},
		EnrolledAt:       time.Now().UTC(),
	}

	if err := db.Create(&enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	if err := s.Catalog.RefreshDerived(ctx, courseID); err != nil {
		return nil, err
	}

	logger.InfoWithUser(user.ID.String(), "course_enrolled", map[string]interface{}{
		"course_id": courseID.String(),
		"title":     course.Title,
	})

	return &enrollment, nil
}

// CompleteModule marks one module finished for the learner and
// recomputes the enrollment progress as the completed share of the
// course's current modules, rounded to the nearest integer percent.
func (s *EnrollmentService) CompleteModule(ctx context.Context, user *models.User, courseID, moduleID uuid.UUID) (*models.Enrollment, error) {
	db := s.DB.WithContext(ctx)

	var module models.CourseModule
	err := db.First(&module, "id = ? AND course_id = ?", moduleID, courseID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	err = db.First(&enrollment, "user_id = ? AND course_id = ?", user.ID, courseID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}

	if !enrollment.HasCompletedModule(moduleID) {
		enrollment.CompletedModules = append(enrollment.CompletedModules, moduleID)
	}

	var moduleIDs []uuid.UUID
	if err := db.Model(&models.CourseModule{}).
		Where("course_id = ?", courseID).
		Pluck("id", &moduleIDs).Error; err != nil {
		return nil, err
	}

	enrollment.Progress = computeProgress(enrollment.CompletedModules, moduleIDs)

	if err := db.Save(&enrollment).Error; err != nil {
		return nil, err
	}

	return &enrollment, nil
}

// computeProgress counts only completions that still reference a
// current module, so removing modules from a course never leaves
// progress above 100.
func computeProgress(completed, current []uuid.UUID) int {
	if len(current) == 0 {
		return 0
	}

	known := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		known[id] = struct{}{}
	}

	done := 0
	for _, id := range completed {
		if _, ok := known[id]; ok {
			done++
		}
	}

	return int(math.Round(float64(done) / float64(len(current)) * 100))
}

// isUniqueViolation matches both the Postgres and SQLite phrasing of a
// unique-index failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
