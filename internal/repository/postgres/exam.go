package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
)

type ExamRepo struct {
	DB DBTX
}

const createExam = `-- name: CreateExam
INSERT INTO exams (id, course_id, title, held_at, max_score)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, course_id, title, held_at, max_score
`

func (r *ExamRepo) Create(ctx context.Context, courseID uuid.UUID, title string, heldAt time.Time, maxScore decimal.Decimal) (models.Exam, error) {
	rows, _ := r.DB.Query(ctx, createExam, uuid.New(), courseID, title, heldAt, maxScore)
	exam, err := pgx.CollectOneRow(rows, rowToExam)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return exam, apperrors.ErrCourseNotFound
		}

		return exam, fmt.Errorf("db error: %w", err)
	}

	return exam, nil
}

const getExamByID = `-- name: GetExamByID
SELECT id, created_at, course_id, title, held_at, max_score FROM exams
WHERE id = $1
`

func (r *ExamRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Exam, error) {
	rows, _ := r.DB.Query(ctx, getExamByID, id)
	exam, err := pgx.CollectOneRow(rows, rowToExam)

	switch {
	case err == nil:
		return exam, nil
	case errors.Is(err, pgx.ErrNoRows):
		return exam, apperrors.ErrExamNotFound
	default:
		return exam, fmt.Errorf("db error: %w", err)
	}
}

const listExamsByCourse = `-- name: ListExamsByCourse
SELECT id, created_at, course_id, title, held_at, max_score FROM exams
WHERE course_id = $1
ORDER BY held_at
`

func (r *ExamRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Exam, error) {
	rows, _ := r.DB.Query(ctx, listExamsByCourse, courseID)
	exams, err := pgx.CollectRows(rows, rowToExam)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return exams, nil
}

const saveResult = `-- name: SaveResult
INSERT INTO exam_results (exam_id, student_id, score, graded_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (exam_id, student_id)
DO UPDATE SET score = EXCLUDED.score, graded_at = EXCLUDED.graded_at
RETURNING exam_id, student_id, score, graded_at
`

func (r *ExamRepo) SaveResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID, score decimal.Decimal) (models.ExamResult, error) {
	rows, _ := r.DB.Query(ctx, saveResult, examID, studentID, score)
	result, err := pgx.CollectOneRow(rows, rowToExamResult)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			switch pgErr.ConstraintName {
			case "exam_results_exam_id_fkey":
				return result, apperrors.ErrExamNotFound
			default:
				return result, apperrors.ErrStudentNotFound
			}
		}

		return result, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

const listResults = `-- name: ListResults
SELECT exam_id, student_id, score, graded_at FROM exam_results
WHERE exam_id = $1
ORDER BY graded_at
`

func (r *ExamRepo) ListResults(ctx context.Context, examID uuid.UUID) ([]models.ExamResult, error) {
	rows, _ := r.DB.Query(ctx, listResults, examID)
	results, err := pgx.CollectRows(rows, rowToExamResult)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return results, nil
}

const getResult = `-- name: GetResult
SELECT exam_id, student_id, score, graded_at FROM exam_results
WHERE exam_id = $1 AND student_id = $2
`

func (r *ExamRepo) GetResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID) (models.ExamResult, error) {
	rows, _ := r.DB.Query(ctx, getResult, examID, studentID)
	result, err := pgx.CollectOneRow(rows, rowToExamResult)

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, pgx.ErrNoRows):
		return result, apperrors.ErrResultNotFound
	default:
		return result, fmt.Errorf("db error: %w", err)
	}
}

func rowToExam(row pgx.CollectableRow) (models.Exam, error) {
	var e models.Exam
	err := row.Scan(&e.ID, &e.CreatedAt, &e.CourseID, &e.Title, &e.HeldAt, &e.MaxScore)
	return e, err
}

func rowToExamResult(row pgx.CollectableRow) (models.ExamResult, error) {
	var r models.ExamResult
	err := row.Scan(&r.ExamID, &r.StudentID, &r.Score, &r.GradedAt)
	return r, err
}
