package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
)

type TeacherRepo struct {
	DB DBTX
}

const createTeacher = `-- name: CreateTeacher
INSERT INTO teachers (id, user_id, full_name, department)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, created_at, full_name, department
`

func (r *TeacherRepo) Create(ctx context.Context, userID uuid.UUID, fullName string, department string) (models.Teacher, error) {
	rows, _ := r.DB.Query(ctx, createTeacher, uuid.New(), userID, fullName, department)
	teacher, err := pgx.CollectOneRow(rows, rowToTeacher)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return teacher, apperrors.ErrProfileExists
		}

		return teacher, fmt.Errorf("db error: %w", err)
	}

	return teacher, nil
}

const getTeacherByID = `-- name: GetTeacherByID
SELECT id, user_id, created_at, full_name, department FROM teachers
WHERE id = $1
`

func (r *TeacherRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Teacher, error) {
	rows, _ := r.DB.Query(ctx, getTeacherByID, id)
	return collectTeacher(rows)
}

const getTeacherByUserID = `-- name: GetTeacherByUserID
SELECT id, user_id, created_at, full_name, department FROM teachers
WHERE user_id = $1
`

func (r *TeacherRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (models.Teacher, error) {
	rows, _ := r.DB.Query(ctx, getTeacherByUserID, userID)
	return collectTeacher(rows)
}

const listTeachers = `-- name: ListTeachers
SELECT id, user_id, created_at, full_name, department FROM teachers
ORDER BY full_name
`

func (r *TeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	rows, _ := r.DB.Query(ctx, listTeachers)
	teachers, err := pgx.CollectRows(rows, rowToTeacher)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return teachers, nil
}

func collectTeacher(rows pgx.Rows) (models.Teacher, error) {
	teacher, err := pgx.CollectOneRow(rows, rowToTeacher)

	switch {
	case err == nil:
		return teacher, nil
	case errors.Is(err, pgx.ErrNoRows):
		return teacher, apperrors.ErrTeacherNotFound
	default:
		return teacher, fmt.Errorf("db error: %w", err)
	}
}

func rowToTeacher(row pgx.CollectableRow) (models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.FullName, &t.Department)
	return t, err
}
