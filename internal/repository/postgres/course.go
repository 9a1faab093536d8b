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

type CourseRepo struct {
	DB DBTX
}

const createCourse = `-- name: CreateCourse
INSERT INTO courses (id, teacher_id, title, description)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, teacher_id, title, description
`

func (r *CourseRepo) Create(ctx context.Context, teacherID uuid.UUID, title string, description string) (models.Course, error) {
	rows, _ := r.DB.Query(ctx, createCourse, uuid.New(), teacherID, title, description)
	course, err := pgx.CollectOneRow(rows, rowToCourse)
	if err != nil {
		return course, fmt.Errorf("db error: %w", err)
	}
	return course, nil
}

const getCourseByID = `-- name: GetCourseByID
SELECT id, created_at, teacher_id, title, description FROM courses
WHERE id = $1
`

func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Course, error) {
	rows, _ := r.DB.Query(ctx, getCourseByID, id)
	course, err := pgx.CollectOneRow(rows, rowToCourse)

	switch {
	case err == nil:
		return course, nil
	case errors.Is(err, pgx.ErrNoRows):
		return course, apperrors.ErrCourseNotFound
	default:
		return course, fmt.Errorf("db error: %w", err)
	}
}

const listCourses = `-- name: ListCourses
SELECT id, created_at, teacher_id, title, description FROM courses
ORDER BY created_at DESC
`

func (r *CourseRepo) List(ctx context.Context) ([]models.Course, error) {
	rows, _ := r.DB.Query(ctx, listCourses)
	courses, err := pgx.CollectRows(rows, rowToCourse)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return courses, nil
}

const enrollStudent = `-- name: EnrollStudent
INSERT INTO enrollments (course_id, student_id)
VALUES ($1, $2)
RETURNING course_id, student_id, created_at
`

func (r *CourseRepo) Enroll(ctx context.Context, courseID uuid.UUID, studentID uuid.UUID) (models.Enrollment, error) {
	rows, _ := r.DB.Query(ctx, enrollStudent, courseID, studentID)
	enrollment, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (models.Enrollment, error) {
		var e models.Enrollment
		err := row.Scan(&e.CourseID, &e.StudentID, &e.CreatedAt)
		return e, err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return enrollment, apperrors.ErrAlreadyEnrolled
			case pgerrcode.ForeignKeyViolation:
				return enrollment, apperrors.ErrCourseNotFound
			}
		}

		return enrollment, fmt.Errorf("db error: %w", err)
	}

	return enrollment, nil
}

const listEnrolled = `-- name: ListEnrolled
SELECT s.id, s.user_id, s.created_at, s.full_name, s.group_name
FROM students s
JOIN enrollments e ON e.student_id = s.id
WHERE e.course_id = $1
ORDER BY s.full_name
`

func (r *CourseRepo) ListEnrolled(ctx context.Context, courseID uuid.UUID) ([]models.Student, error) {
	rows, _ := r.DB.Query(ctx, listEnrolled, courseID)
	students, err := pgx.CollectRows(rows, rowToStudent)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return students, nil
}

func rowToCourse(row pgx.CollectableRow) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.CreatedAt, &c.TeacherID, &c.Title, &c.Description)
	return c, err
}
