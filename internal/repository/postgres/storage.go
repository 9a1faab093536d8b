package postgres

import (
	"context"
	"fmt"

	"github.com/edukit/campus/internal/repository"
)

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) repository.Storage {
	return &Storage{db: db}
}

func (s *Storage) User() repository.UserRepo {
	return &UserRepo{DB: s.db}
}

func (s *Storage) Student() repository.StudentRepo {
	return &StudentRepo{DB: s.db}
}

func (s *Storage) Teacher() repository.TeacherRepo {
	return &TeacherRepo{DB: s.db}
}

func (s *Storage) Course() repository.CourseRepo {
	return &CourseRepo{DB: s.db}
}

func (s *Storage) Exam() repository.ExamRepo {
	return &ExamRepo{DB: s.db}
}

func (s *Storage) Class() repository.ClassRepo {
	return &ClassRepo{DB: s.db}
}

func (s *Storage) InTx(ctx context.Context, fn func(repository.Storage) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db tx error: %w", err)
	}

	defer func() {
		switch err {
		case nil:
			err = tx.Commit(ctx)
		default:
			_ = tx.Rollback(ctx)
		}
	}()

	err = fn(NewStorage(tx))

	return err
}
