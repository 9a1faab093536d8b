// Package service holds the domain logic between HTTP handlers and storage.
// Each service is a thin layer: it owns the domain rules (score ranges,
// attendance statuses, transactional registration) and delegates persistence
// to the repositories.
package service

import (
	"errors"

	"github.com/edukit/campus/internal/repository"
	"github.com/edukit/campus/internal/service/auth/tokenmanager"
)

// Services bundles every domain service over a single storage
type Services struct {
	Registration *RegistrationService
	Student      *StudentService
	Teacher      *TeacherService
	Course       *CourseService
	Exam         *ExamService
	Class        *ClassService
}

func New(storage repository.Storage, token *tokenmanager.TokenManager) (*Services, error) {
	if storage == nil || token == nil {
		return nil, errors.New("storage and token manager must not be nil")
	}

	registration, err := NewRegistrationService(storage, token, nil)
	if err != nil {
		return nil, err
	}

	return &Services{
		Registration: registration,
		Student:      &StudentService{storage: storage},
		Teacher:      &TeacherService{storage: storage},
		Course:       &CourseService{storage: storage},
		Exam:         &ExamService{storage: storage},
		Class:        &ClassService{storage: storage},
	}, nil
}
