package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// CatalogService owns course lifecycle concerns that span tables:
// derived-field recomputation, rating submission and the deletion
// cascade.
type CatalogService struct {
	DB     *gorm.DB
	Access *AccessService
}

func NewCatalogService(db *gorm.DB, access *AccessService) *CatalogService {
	return &CatalogService{DB: db, Access: access}
}

// RefreshDerived recomputes averageRating, totalRatings, totalDuration
// and totalStudents from the authoritative tables and persists them in
// a single update. Every write path that touches modules, ratings or
// enrollments calls this unconditionally before returning, so readers
// never see stale derived values.
func (s *CatalogService) RefreshDerived(ctx context.Context, courseID uuid.UUID) error {
	db := s.DB.WithContext(ctx)

	var ratingStats struct {
		Count   int64
		Average float64
	}
	err := db.Model(&models.Rating{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("course_id = ?", courseID).
		Scan(&ratingStats).Error
	if err != nil {
		return fmt.Errorf("aggregating ratings: %w", err)
	}

	var totalDuration int64
	err = db.Model(&models.CourseModule{}).
		Select("COALESCE(SUM(duration), 0)").
		Where("course_id = ?", courseID).
		Scan(&totalDuration).Error
	if err != nil {
		return fmt.Errorf("summing module durations: %w", err)
	}

	var totalStudents int64
	err = db.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&totalStudents).Error
	if err != nil {
		return fmt.Errorf("counting enrollments: %w", err)
	}

	return db.Model(&models.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"average_rating": ratingStats.Average,
			"total_ratings":  ratingStats.Count,
			"total_duration": totalDuration,
			"total_students": totalStudents,
		}).Error
}

// RateCourse records the user's rating of a course, replacing any
// earlier rating by the same user, then refreshes the derived fields.
// The caller must already be enrolled.
func (s *CatalogService) RateCourse(ctx context.Context, user *models.User, courseID uuid.UUID, rating int, review string) (*models.Rating, error) {
	db := s.DB.WithContext(ctx)

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	enrollment, err := s.Access.Enrollment(ctx, user.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	var row models.Rating
	err = db.First(&row, "course_id = ? AND user_id = ?", courseID, user.ID).Error
	switch err {
	case nil:
		row.Rating = rating
		row.Review = review
		if err := db.Save(&row).Error; err != nil {
			return nil, err
		}
	case gorm.ErrRecordNotFound:
		row = models.Rating{
			CourseID: courseID,
			UserID:   user.ID,
			Rating:   rating,
			Review:   review,
		}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.RefreshDerived(ctx, courseID); err != nil {
		return nil, err
	}

	return &row, nil
}

// DeleteCourse runs the deletion cascade: enrollments first (removing
// the course from every learner's list), then ratings, then modules,
// then the course row itself. Each step is a separate write; a failure
// partway through is reported and earlier steps are not rolled back.
// The instructor back-reference is derived from Course.InstructorID and
// disappears with the row.
func (s *CatalogService) DeleteCourse(ctx context.Context, actor *models.User, courseID uuid.UUID) error {
	db := s.DB.WithContext(ctx)

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrCourseNotFound
		}
		return err
	}

	if !s.Access.CanManageCourse(actor, &course) {
		return ErrForbidden
	}

	if err := db.Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
		return fmt.Errorf("removing enrollments: %w", err)
	}

	if err := db.Where("course_id = ?", courseID).Delete(&models.Rating{}).Error; err != nil {
		return fmt.Errorf("removing ratings: %w", err)
	}

	if err := db.Where("course_id = ?", courseID).Delete(&models.CourseModule{}).Error; err != nil {
		return fmt.Errorf("removing modules: %w", err)
	}

	if err := db.Delete(&models.Course{}, "id = ?", courseID).Error; err != nil {
		return fmt.Errorf("removing course: %w", err)
	}

	logger.InfoWithUser(actor.ID.String(), "course_deleted", map[string]interface{}{
		"course_id": courseID.String(),
		"title":     course.Title,
	})

	return nil
}
