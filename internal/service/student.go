package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
)

// Student profile reads and updates
type StudentService struct {
	storage repository.Storage
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (models.Student, error) {
	return s.storage.Student().GetByID(ctx, id)
}

// GetByUserID resolves the profile of an authenticated account
func (s *StudentService) GetByUserID(ctx context.Context, userID uuid.UUID) (models.Student, error) {
	return s.storage.Student().GetByUserID(ctx, userID)
}

func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	return s.storage.Student().List(ctx)
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, fullName string, groupName string) (models.Student, error) {
	return s.storage.Student().Update(ctx, id, fullName, groupName)
}
