package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
)

// Class sessions and attendance
type ClassService struct {
	storage repository.Storage
}

func (s *ClassService) CreateSession(ctx context.Context, courseID uuid.UUID, topic string, startsAt time.Time) (models.ClassSession, error) {
	return s.storage.Class().CreateSession(ctx, courseID, topic, startsAt)
}

func (s *ClassService) GetSession(ctx context.Context, id uuid.UUID) (models.ClassSession, error) {
	return s.storage.Class().GetSession(ctx, id)
}

func (s *ClassService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.ClassSession, error) {
	if _, err := s.storage.Course().GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.storage.Class().ListByCourse(ctx, courseID)
}

// MarkAttendance records (or overwrites) the student's status on the session
// Status is one of present, absent or late
func (s *ClassService) MarkAttendance(ctx context.Context, sessionID uuid.UUID, studentID uuid.UUID, status string) (models.Attendance, error) {
	switch status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
	default:
		return models.Attendance{}, fmt.Errorf("status %q: %w", status, apperrors.ErrAttendanceStatus)
	}

	return s.storage.Class().MarkAttendance(ctx, sessionID, studentID, status)
}

func (s *ClassService) ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]models.Attendance, error) {
	if _, err := s.storage.Class().GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.storage.Class().ListAttendance(ctx, sessionID)
}
