package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
)

// Teacher profile reads
type TeacherService struct {
	storage repository.Storage
}

func (s *TeacherService) Get(ctx context.Context, id uuid.UUID) (models.Teacher, error) {
	return s.storage.Teacher().GetByID(ctx, id)
}

// GetByUserID resolves the profile of an authenticated account
func (s *TeacherService) GetByUserID(ctx context.Context, userID uuid.UUID) (models.Teacher, error) {
	return s.storage.Teacher().GetByUserID(ctx, userID)
}

func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	return s.storage.Teacher().List(ctx)
}
