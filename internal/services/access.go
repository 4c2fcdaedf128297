package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"gorm.io/gorm"
)

// AccessService centralizes every role and ownership decision so
// handlers never compare role strings themselves.
type AccessService struct {
	DB *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{DB: db}
}

// CanPublish reports whether the user may create courses or upload
// media.
func (a *AccessService) CanPublish(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.UserRoleCreator || user.Role == models.UserRoleAdmin
}

// CanManageCourse reports whether the user may modify or delete the
// course: its instructor, or an admin.
func (a *AccessService) CanManageCourse(user *models.User, course *models.Course) bool {
	if user == nil || course == nil {
		return false
	}
	if user.Role == models.UserRoleAdmin {
		return true
	}
	return course.InstructorID == user.ID
}

// Enrollment returns the user's enrollment in the course, or nil when
// not enrolled.
func (a *AccessService) Enrollment(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := a.DB.WithContext(ctx).
		First(&enrollment, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
