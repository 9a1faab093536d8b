package service

import (
	"context"
	"fmt"

	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
	"github.com/edukit/campus/internal/service/auth"
	"github.com/edukit/campus/internal/service/auth/tokenmanager"
)

// RegistrationService creates accounts together with their profiles.
// The user row and the profile row are written in one transaction: a half
// registered account (user without profile) must never be observable.
type RegistrationService struct {
	storage repository.Storage
	token   *tokenmanager.TokenManager
	hasher  auth.PasswordHasher
}

func NewRegistrationService(storage repository.Storage, token *tokenmanager.TokenManager, hasher auth.PasswordHasher) (*RegistrationService, error) {
	if storage == nil || token == nil {
		return nil, fmt.Errorf("storage and token manager must not be nil")
	}

	if hasher == nil {
		hasher = auth.BcryptHasher{}
	}

	return &RegistrationService{
		storage: storage,
		token:   token,
		hasher:  hasher,
	}, nil
}

// RegisterStudent creates the user with the student role, its profile and
// logs the fresh account in
func (s *RegistrationService) RegisterStudent(ctx context.Context, username string, password string, fullName string, groupName string) (models.Student, models.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.Student{}, models.TokenPair{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	var student models.Student
	err = s.storage.InTx(ctx, func(tx repository.Storage) error {
		user, err := tx.User().CreateUser(ctx, username, hash, []string{models.RoleStudent})
		if err != nil {
			return err
		}

		student, err = tx.Student().Create(ctx, user.ID, fullName, groupName)
		return err
	})
	if err != nil {
		return models.Student{}, models.TokenPair{}, err
	}

	pair, err := s.token.IssuePair(username)
	if err != nil {
		return models.Student{}, models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return student, pair, nil
}

// RegisterTeacher is the same flow with the teacher role and profile
func (s *RegistrationService) RegisterTeacher(ctx context.Context, username string, password string, fullName string, department string) (models.Teacher, models.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.Teacher{}, models.TokenPair{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	var teacher models.Teacher
	err = s.storage.InTx(ctx, func(tx repository.Storage) error {
		user, err := tx.User().CreateUser(ctx, username, hash, []string{models.RoleTeacher})
		if err != nil {
			return err
		}

		teacher, err = tx.Teacher().Create(ctx, user.ID, fullName, department)
		return err
	})
	if err != nil {
		return models.Teacher{}, models.TokenPair{}, err
	}

	pair, err := s.token.IssuePair(username)
	if err != nil {
		return models.Teacher{}, models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return teacher, pair, nil
}
