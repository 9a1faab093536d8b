package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
)

// Exams and their results
type ExamService struct {
	storage repository.Storage
}

func (s *ExamService) Create(ctx context.Context, courseID uuid.UUID, title string, heldAt time.Time, maxScore decimal.Decimal) (models.Exam, error) {
	if !maxScore.IsPositive() {
		return models.Exam{}, fmt.Errorf("max score must be positive: %w", apperrors.ErrScoreOutOfRange)
	}

	return s.storage.Exam().Create(ctx, courseID, title, heldAt, maxScore)
}

func (s *ExamService) Get(ctx context.Context, id uuid.UUID) (models.Exam, error) {
	return s.storage.Exam().GetByID(ctx, id)
}

func (s *ExamService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Exam, error) {
	if _, err := s.storage.Course().GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.storage.Exam().ListByCourse(ctx, courseID)
}

// SaveResult records (or overwrites) the student's score.
// The score must be within [0, exam.MaxScore], everything else is
// apperrors.ErrScoreOutOfRange
func (s *ExamService) SaveResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID, score decimal.Decimal) (models.ExamResult, error) {
	exam, err := s.storage.Exam().GetByID(ctx, examID)
	if err != nil {
		return models.ExamResult{}, err
	}

	if score.IsNegative() || score.GreaterThan(exam.MaxScore) {
		return models.ExamResult{}, fmt.Errorf("score %s is not within [0, %s]: %w", score, exam.MaxScore, apperrors.ErrScoreOutOfRange)
	}

	return s.storage.Exam().SaveResult(ctx, examID, studentID, score)
}

func (s *ExamService) ListResults(ctx context.Context, examID uuid.UUID) ([]models.ExamResult, error) {
	if _, err := s.storage.Exam().GetByID(ctx, examID); err != nil {
		return nil, err
	}
	return s.storage.Exam().ListResults(ctx, examID)
}

func (s *ExamService) GetResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID) (models.ExamResult, error) {
	return s.storage.Exam().GetResult(ctx, examID, studentID)
}
