package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService computes the read-only aggregates behind the creator
// and learner dashboards.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type CreatorStats struct {
	TotalCourses  int     `json:"totalCourses"`
	TotalStudents int     `json:"totalStudents"`
	TotalEarnings float64 `json:"totalEarnings"`
	AverageRating float64 `json:"averageRating"`
}

type CreatorDashboard struct {
	Courses []models.Course `json:"courses"`
	Stats   CreatorStats    `json:"stats"`
}

// Creator folds over every course the user instructs. totalEarnings is
// a naive current-price times current-enrollment product, not a ledger
// of historical transactions; free courses contribute 0. averageRating
// pools every individual rating across all courses before averaging,
// never an average of per-course averages.
func (s *DashboardService) Creator(ctx context.Context, userID uuid.UUID) (*CreatorDashboard, error) {
	db := s.DB.WithContext(ctx)

	var courses []models.Course
	err := db.Preload("Instructor").Preload("Modules", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index ASC")
	}).
		Where("instructor_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	stats := CreatorStats{TotalCourses: len(courses)}
	for _, course := range courses {
		stats.TotalStudents += course.TotalStudents
		stats.TotalEarnings += course.Price * float64(course.TotalStudents)
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	if len(courseIDs) > 0 {
		var pooled struct {
			Count   int64
			Average float64
		}
		err = db.Model(&models.Rating{}).
			Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
			Where("course_id IN ?", courseIDs).
			Scan(&pooled).Error
		if err != nil {
			return nil, err
		}
		if pooled.Count > 0 {
			stats.AverageRating = pooled.Average
		}
	}

	return &CreatorDashboard{Courses: courses, Stats: stats}, nil
}

type LearnerStats struct {
	TotalCourses     int `json:"totalCourses"`
	CompletedCourses int `json:"completedCourses"`
	TotalHours       int `json:"totalHours"`
	Certificates     int `json:"certificates"`
}

type LearnerDashboard struct {
	Courses []models.Enrollment `json:"courses"`
	Stats   LearnerStats        `json:"stats"`
}

// Learner aggregates the user's enrollments. totalHours sums course
// durations in hours and rounds once at output; certificates equals
// completedCourses since no separate certificate entity exists.
func (s *DashboardService) Learner(ctx context.Context, userID uuid.UUID) (*LearnerDashboard, error) {
	db := s.DB.WithContext(ctx)

	var enrollments []models.Enrollment
	err := db.Preload("Course").Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	stats := LearnerStats{TotalCourses: len(enrollments)}

	totalHours := 0.0
	for _, enrollment := range enrollments {
		if enrollment.Completed() {
			stats.CompletedCourses++
		}
		totalHours += float64(enrollment.Course.TotalDuration) / 60
	}

	stats.TotalHours = int(math.Round(totalHours))
	stats.Certificates = stats.CompletedCourses

	return &LearnerDashboard{Courses: enrollments, Stats: stats}, nil
}
