package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/models"
)

// Shortcuts to build the row chain user -> profile -> course for repo tests

func createTestStudent(t *testing.T, tx pgx.Tx, username string) models.Student {
	t.Helper()

	users := UserRepo{DB: tx}
	user, err := users.CreateUser(t.Context(), username, "hashedpassword123", []string{models.RoleStudent})
	require.NoError(t, err, "student user should be created")

	students := StudentRepo{DB: tx}
	student, err := students.Create(t.Context(), user.ID, "Test Student", "CS-101")
	require.NoError(t, err, "student profile should be created")

	return student
}

func createTestTeacher(t *testing.T, tx pgx.Tx, username string) models.Teacher {
	t.Helper()

	users := UserRepo{DB: tx}
	user, err := users.CreateUser(t.Context(), username, "hashedpassword123", []string{models.RoleTeacher})
	require.NoError(t, err, "teacher user should be created")

	teachers := TeacherRepo{DB: tx}
	teacher, err := teachers.Create(t.Context(), user.ID, "Test Teacher", "Mathematics")
	require.NoError(t, err, "teacher profile should be created")

	return teacher
}

func createTestCourse(t *testing.T, tx pgx.Tx, username string) models.Course {
	t.Helper()

	teacher := createTestTeacher(t, tx, username)

	courses := CourseRepo{DB: tx}
	course, err := courses.Create(t.Context(), teacher.ID, "Test Course", "About testing")
	require.NoError(t, err, "course should be created")

	return course
}
