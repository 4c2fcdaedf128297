package models

import "github.com/google/uuid"

// Rating is one user's rating of one course. The composite unique index
// makes rating submission an upsert rather than an append.
type Rating struct {
	BaseModel
	CourseID uuid.UUID `json:"courseID" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_course_user"`
	UserID   uuid.UUID `json:"userID" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_course_user"`
	Rating   int       `json:"rating" gorm:"not null"`
	Review   string    `json:"review" gorm:"type:varchar(500)"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Rating) TableName() string {
	return "ratings"
}
