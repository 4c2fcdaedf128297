package models

import "github.com/google/uuid"

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	default:
		return false
	}
}

// CourseCategories is the fixed category enumeration.
var CourseCategories = []string{
	"Programming",
	"Design",
	"Marketing",
	"Business",
	"Technology",
	"Other",
}

func ValidCategory(category string) bool {
	for _, c := range CourseCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Course struct {
	BaseModel
	Title        string       `json:"title" gorm:"type:varchar(100);not null"`
	Description  string       `json:"description" gorm:"type:varchar(1000);not null"`
	Thumbnail    string       `json:"thumbnail" gorm:"type:text;not null"`
	Category     string       `json:"category" gorm:"type:varchar(30);not null;index"`
	InstructorID uuid.UUID    `json:"instructorID" gorm:"type:uuid;not null;index"`
	Price        float64      `json:"price" gorm:"not null;default:0"`
	IsFree       bool         `json:"isFree" gorm:"not null;default:true"`
	Status       CourseStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`

	Tags             []string `json:"tags" gorm:"type:text;serializer:json"`
	Requirements     []string `json:"requirements" gorm:"type:text;serializer:json"`
	LearningOutcomes []string `json:"learningOutcomes" gorm:"type:text;serializer:json"`

	// Derived fields, recomputed by catalog.RefreshDerived on every
	// mutating write. Never authoritative on their own.
	AverageRating float64 `json:"averageRating" gorm:"not null;default:0"`
	TotalRatings  int     `json:"totalRatings" gorm:"not null;default:0"`
	TotalStudents int     `json:"totalStudents" gorm:"not null;default:0"`
	TotalDuration int     `json:"totalDuration" gorm:"not null;default:0"`

	Instructor  User           `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;references:ID"`
	Modules     []CourseModule `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
	Ratings     []Rating       `json:"ratings,omitempty" gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment   `json:"enrolledStudents,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is one video lesson unit within a course. OrderIndex is
// significant for display; free modules are viewable without enrollment.
type CourseModule struct {
	BaseModel
	CourseID    uuid.UUID `json:"courseID" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	VideoURL    string    `json:"videoUrl" gorm:"type:text;not null"`
	Duration    int       `json:"duration" gorm:"not null"` // minutes
	OrderIndex  int       `json:"order" gorm:"not null"`
	IsFree      bool      `json:"isFree" gorm:"not null;default:false"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
