package models

type UserRole string

const (
	UserRoleLearner UserRole = "learner"
	UserRoleCreator UserRole = "creator"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleLearner, UserRoleCreator, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// SocialLinks is embedded into the users table as social_* columns.
type SocialLinks struct {
	Website  string `json:"website,omitempty" gorm:"type:text"`
	Twitter  string `json:"twitter,omitempty" gorm:"type:text"`
	LinkedIn string `json:"linkedin,omitempty" gorm:"type:text"`
	GitHub   string `json:"github,omitempty" gorm:"type:text"`
}

type User struct {
	BaseModel
	Name         string      `json:"name" gorm:"type:varchar(50);not null"`
	Email        string      `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"type:text;not null"`
	Role         UserRole    `json:"role" gorm:"type:varchar(20);not null;default:'learner'"`
	Avatar       string      `json:"avatar" gorm:"type:text"`
	Bio          string      `json:"bio" gorm:"type:varchar(500)"`
	SocialLinks  SocialLinks `json:"socialLinks" gorm:"embedded;embeddedPrefix:social_"`

	// CreatedCourses is derived from Course.InstructorID, which is the
	// authoritative owner reference.
	CreatedCourses []Course     `json:"createdCourses,omitempty" gorm:"foreignKey:InstructorID"`
	Enrollments    []Enrollment `json:"enrolledCourses,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
