package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment stores the learner/course relationship exactly once. Both
// the user-side and the course-side views of the relationship are
// queries over this table, and the composite unique index rejects
// duplicate enrollments at the store rather than in handler code.
type Enrollment struct {
	BaseModel
	UserID           uuid.UUID   `json:"userID" gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID         uuid.UUID   `json:"courseID" gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	Progress         int         `json:"progress" gorm:"not null;default:0"` // 0..100
	CompletedModules []uuid.UUID `json:"completedModules" gorm:"type:text;serializer:json"`
	EnrolledAt       time.Time   `json:"enrolledAt" gorm:"not null"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Completed reports whether the learner has finished the course.
func (e *Enrollment) Completed() bool {
	return e.Progress == 100
}

// HasCompletedModule reports whether moduleID is already recorded.
func (e *Enrollment) HasCompletedModule(moduleID uuid.UUID) bool {
	for _, id := range e.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}
