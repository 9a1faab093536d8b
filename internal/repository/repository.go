package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edukit/campus/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user with the given role set
	// If user with username exists already has to return error apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string, hashedPassword string, roles []string) (models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Student profile repository interface
type StudentRepo interface {
	// Create profile for user
	// If the user already has a profile must return apperrors.ErrProfileExists
	Create(ctx context.Context, userID uuid.UUID, fullName string, groupName string) (models.Student, error)

	// If profile not found must return apperrors.ErrStudentNotFound
	GetByID(ctx context.Context, id uuid.UUID) (models.Student, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (models.Student, error)

	List(ctx context.Context) ([]models.Student, error)

	// Update mutable profile fields
	Update(ctx context.Context, id uuid.UUID, fullName string, groupName string) (models.Student, error)
}

// Teacher profile repository interface
type TeacherRepo interface {
	// Create profile for user
	// If the user already has a profile must return apperrors.ErrProfileExists
	Create(ctx context.Context, userID uuid.UUID, fullName string, department string) (models.Teacher, error)

	// If profile not found must return apperrors.ErrTeacherNotFound
	GetByID(ctx context.Context, id uuid.UUID) (models.Teacher, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (models.Teacher, error)

	List(ctx context.Context) ([]models.Teacher, error)
}

// Course repository interface
type CourseRepo interface {
	Create(ctx context.Context, teacherID uuid.UUID, title string, description string) (models.Course, error)

	// If course not found must return apperrors.ErrCourseNotFound
	GetByID(ctx context.Context, id uuid.UUID) (models.Course, error)

	List(ctx context.Context) ([]models.Course, error)

	// Enroll student to course
	// Second enrollment of the same student must return apperrors.ErrAlreadyEnrolled
	Enroll(ctx context.Context, courseID uuid.UUID, studentID uuid.UUID) (models.Enrollment, error)

	// Students enrolled to the course
	ListEnrolled(ctx context.Context, courseID uuid.UUID) ([]models.Student, error)
}

// Exam repository interface
type ExamRepo interface {
	Create(ctx context.Context, courseID uuid.UUID, title string, heldAt time.Time, maxScore decimal.Decimal) (models.Exam, error)

	// If exam not found must return apperrors.ErrExamNotFound
	GetByID(ctx context.Context, id uuid.UUID) (models.Exam, error)

	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Exam, error)

	// Save (or overwrite) the student's score for the exam
	SaveResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID, score decimal.Decimal) (models.ExamResult, error)

	ListResults(ctx context.Context, examID uuid.UUID) ([]models.ExamResult, error)

	// If no result recorded must return apperrors.ErrResultNotFound
	GetResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID) (models.ExamResult, error)
}

// Class session and attendance repository interface
type ClassRepo interface {
	CreateSession(ctx context.Context, courseID uuid.UUID, topic string, startsAt time.Time) (models.ClassSession, error)

	// If session not found must return apperrors.ErrSessionNotFound
	GetSession(ctx context.Context, id uuid.UUID) (models.ClassSession, error)

	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.ClassSession, error)

	// Mark (or overwrite) attendance of the student on the session
	MarkAttendance(ctx context.Context, sessionID uuid.UUID, studentID uuid.UUID, status string) (models.Attendance, error)

	ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]models.Attendance, error)
}

// Storage bundles all repositories over a single connection source
type Storage interface {
	User() UserRepo
	Student() StudentRepo
	Teacher() TeacherRepo
	Course() CourseRepo
	Exam() ExamRepo
	Class() ClassRepo

	// Run fn within a database transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}
