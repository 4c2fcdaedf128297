package services

import "errors"

// Sentinel errors returned by services. Handlers translate these to
// HTTP status codes at their boundary; anything else is an
// infrastructure failure and maps to 500.
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrModuleNotFound  = errors.New("module not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrNotEnrolled     = errors.New("not enrolled in this course")
	ErrForbidden       = errors.New("forbidden")
)
