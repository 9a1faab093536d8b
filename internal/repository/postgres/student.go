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

type StudentRepo struct {
	DB DBTX
}

const createStudent = `-- name: CreateStudent
INSERT INTO students (id, user_id, full_name, group_name)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, created_at, full_name, group_name
`

func (r *StudentRepo) Create(ctx context.Context, userID uuid.UUID, fullName string, groupName string) (models.Student, error) {
	rows, _ := r.DB.Query(ctx, createStudent, uuid.New(), userID, fullName, groupName)
	student, err := pgx.CollectOneRow(rows, rowToStudent)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return student, apperrors.ErrProfileExists
		}

		return student, fmt.Errorf("db error: %w", err)
	}

	return student, nil
}

const getStudentByID = `-- name: GetStudentByID
SELECT id, user_id, created_at, full_name, group_name FROM students
WHERE id = $1
`

func (r *StudentRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Student, error) {
	rows, _ := r.DB.Query(ctx, getStudentByID, id)
	return collectStudent(rows)
}

const getStudentByUserID = `-- name: GetStudentByUserID
SELECT id, user_id, created_at, full_name, group_name FROM students
WHERE user_id = $1
`

func (r *StudentRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (models.Student, error) {
	rows, _ := r.DB.Query(ctx, getStudentByUserID, userID)
	return collectStudent(rows)
}

const listStudents = `-- name: ListStudents
SELECT id, user_id, created_at, full_name, group_name FROM students
ORDER BY full_name
`

func (r *StudentRepo) List(ctx context.Context) ([]models.Student, error) {
	rows, _ := r.DB.Query(ctx, listStudents)
	students, err := pgx.CollectRows(rows, rowToStudent)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return students, nil
}

const updateStudent = `-- name: UpdateStudent
UPDATE students
SET full_name = $2, group_name = $3
WHERE id = $1
RETURNING id, user_id, created_at, full_name, group_name
`

func (r *StudentRepo) Update(ctx context.Context, id uuid.UUID, fullName string, groupName string) (models.Student, error) {
	rows, _ := r.DB.Query(ctx, updateStudent, id, fullName, groupName)
	return collectStudent(rows)
}

func collectStudent(rows pgx.Rows) (models.Student, error) {
	student, err := pgx.CollectOneRow(rows, rowToStudent)

	switch {
	case err == nil:
		return student, nil
	case errors.Is(err, pgx.ErrNoRows):
		return student, apperrors.ErrStudentNotFound
	default:
		return student, fmt.Errorf("db error: %w", err)
	}
}

func rowToStudent(row pgx.CollectableRow) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.FullName, &s.GroupName)
	return s, err
}
