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

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
)

type ClassRepo struct {
	DB DBTX
}

const createSession = `-- name: CreateSession
INSERT INTO class_sessions (id, course_id, topic, starts_at)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, course_id, topic, starts_at
`

func (r *ClassRepo) CreateSession(ctx context.Context, courseID uuid.UUID, topic string, startsAt time.Time) (models.ClassSession, error) {
	rows, _ := r.DB.Query(ctx, createSession, uuid.New(), courseID, topic, startsAt)
	session, err := pgx.CollectOneRow(rows, rowToSession)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return session, apperrors.ErrCourseNotFound
		}

		return session, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

const getSessionByID = `-- name: GetSessionByID
SELECT id, created_at, course_id, topic, starts_at FROM class_sessions
WHERE id = $1
`

func (r *ClassRepo) GetSession(ctx context.Context, id uuid.UUID) (models.ClassSession, error) {
	rows, _ := r.DB.Query(ctx, getSessionByID, id)
	session, err := pgx.CollectOneRow(rows, rowToSession)

	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, pgx.ErrNoRows):
		return session, apperrors.ErrSessionNotFound
	default:
		return session, fmt.Errorf("db error: %w", err)
	}
}

const listSessionsByCourse = `-- name: ListSessionsByCourse
SELECT id, created_at, course_id, topic, starts_at FROM class_sessions
WHERE course_id = $1
ORDER BY starts_at
`

func (r *ClassRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.ClassSession, error) {
	rows, _ := r.DB.Query(ctx, listSessionsByCourse, courseID)
	sessions, err := pgx.CollectRows(rows, rowToSession)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sessions, nil
}

const markAttendance = `-- name: MarkAttendance
INSERT INTO attendance (session_id, student_id, status, marked_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (session_id, student_id)
DO UPDATE SET status = EXCLUDED.status, marked_at = EXCLUDED.marked_at
RETURNING session_id, student_id, status, marked_at
`

func (r *ClassRepo) MarkAttendance(ctx context.Context, sessionID uuid.UUID, studentID uuid.UUID, status string) (models.Attendance, error) {
	rows, _ := r.DB.Query(ctx, markAttendance, sessionID, studentID, status)
	attendance, err := pgx.CollectOneRow(rows, rowToAttendance)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			switch pgErr.ConstraintName {
			case "attendance_session_id_fkey":
				return attendance, apperrors.ErrSessionNotFound
			default:
				return attendance, apperrors.ErrStudentNotFound
			}
		}

		return attendance, fmt.Errorf("db error: %w", err)
	}

	return attendance, nil
}

const listAttendance = `-- name: ListAttendance
SELECT session_id, student_id, status, marked_at FROM attendance
WHERE session_id = $1
ORDER BY marked_at
`

func (r *ClassRepo) ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]models.Attendance, error) {
	rows, _ := r.DB.Query(ctx, listAttendance, sessionID)
	records, err := pgx.CollectRows(rows, rowToAttendance)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}

func rowToSession(row pgx.CollectableRow) (models.ClassSession, error) {
	var s models.ClassSession
	err := row.Scan(&s.ID, &s.CreatedAt, &s.CourseID, &s.Topic, &s.StartsAt)
	return s, err
}

func rowToAttendance(row pgx.CollectableRow) (models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(&a.SessionID, &a.StudentID, &a.Status, &a.MarkedAt)
	return a, err
}
