package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
)

// Courses and enrollments
type CourseService struct {
	storage repository.Storage
}

// Create a course owned by the teacher profile
func (s *CourseService) Create(ctx context.Context, teacherID uuid.UUID, title string, description string) (models.Course, error) {
	return s.storage.Course().Create(ctx, teacherID, title, description)
}

func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (models.Course, error) {
	return s.storage.Course().GetByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.storage.Course().List(ctx)
}

// Enroll the student to the course
// Enrolling twice returns apperrors.ErrAlreadyEnrolled
func (s *CourseService) Enroll(ctx context.Context, courseID uuid.UUID, studentID uuid.UUID) (models.Enrollment, error) {
	return s.storage.Course().Enroll(ctx, courseID, studentID)
}

func (s *CourseService) ListEnrolled(ctx context.Context, courseID uuid.UUID) ([]models.Student, error) {
	if _, err := s.storage.Course().GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.storage.Course().ListEnrolled(ctx, courseID)
}
