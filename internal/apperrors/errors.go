package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Login failures are deliberately indistinguishable:
	// "unknown user" and "wrong password" both surface as this error
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenWrongKind        = errors.New("token kind mismatch")

	ErrStudentNotFound = errors.New("student profile not found")
	ErrTeacherNotFound = errors.New("teacher profile not found")
	ErrProfileExists   = errors.New("profile already exists for this user")

	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")

	ErrExamNotFound     = errors.New("exam not found")
	ErrResultNotFound   = errors.New("exam result not found")
	ErrScoreOutOfRange  = errors.New("score is out of range")
	ErrSessionNotFound  = errors.New("class session not found")
	ErrAttendanceStatus = errors.New("unknown attendance status")
)
