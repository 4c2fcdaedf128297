package api

import "time"

// User mirrors the backend User model.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Course mirrors the backend Course model.
type Course struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Price         float64      `json:"price"`
	IsFree        bool         `json:"isFree"`
	Status        string       `json:"status"`
	AverageRating float64      `json:"averageRating"`
	TotalRatings  int          `json:"totalRatings"`
	TotalStudents int          `json:"totalStudents"`
	TotalDuration int          `json:"totalDuration"`
	Instructor    *User        `json:"instructor,omitempty"`
	Modules       []CourseItem `json:"modules,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// CourseItem is one video module inside a course.
type CourseItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Order    int    `json:"order"`
	IsFree   bool   `json:"isFree"`
}

// Enrollment mirrors the backend Enrollment model.
type Enrollment struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"courseID"`
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Course     *Course   `json:"course,omitempty"`
}

// AuthResult is the register/login response payload.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// EnrollResult is the enroll response payload.
type EnrollResult struct {
	Message    string `json:"message"`
	Enrollment struct {
		CourseID   string    `json:"courseId"`
		Progress   int       `json:"progress"`
		EnrolledAt time.Time `json:"enrolledAt"`
	} `json:"enrollment"`
}

// CreatorDashboard mirrors the creator dashboard payload.
type CreatorDashboard struct {
	Courses []Course `json:"courses"`
	Stats   struct {
		TotalCourses  int     `json:"totalCourses"`
		TotalStudents int     `json:"totalStudents"`
		TotalEarnings float64 `json:"totalEarnings"`
		AverageRating float64 `json:"averageRating"`
	} `json:"stats"`
}

// LearnerDashboard mirrors the learner dashboard payload.
type LearnerDashboard struct {
	Courses []Enrollment `json:"courses"`
	Stats   struct {
		TotalCourses     int `json:"totalCourses"`
		CompletedCourses int `json:"completedCourses"`
		TotalHours       int `json:"totalHours"`
		Certificates     int `json:"certificates"`
	} `json:"stats"`
}
