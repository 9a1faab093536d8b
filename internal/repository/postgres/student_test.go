package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/testutil"
)

func Test_StudentRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create profile ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			user, err := users.CreateUser(t.Context(), "student", "hashedpassword123", []string{models.RoleStudent})
			require.NoError(t, err)

			r := StudentRepo{DB: tx}
			student, err := r.Create(t.Context(), user.ID, "Alice Liddell", "CS-101")

			require.NoError(t, err)
			assert.Equal(t, user.ID, student.UserID)
			assert.Equal(t, "Alice Liddell", student.FullName)
			assert.Equal(t, "CS-101", student.GroupName)
		})
	})

	t.Run("second profile for same user fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			user, err := users.CreateUser(t.Context(), "student", "hashedpassword123", []string{models.RoleStudent})
			require.NoError(t, err)

			r := StudentRepo{DB: tx}
			_, err = r.Create(t.Context(), user.ID, "Alice Liddell", "CS-101")
			require.NoError(t, err)

			_, err = r.Create(t.Context(), user.ID, "Alice Again", "CS-102")

			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrProfileExists, "should return well known error")
		})
	})

	t.Run("get by user id ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			created := createTestStudent(t, tx, "student")
			r := StudentRepo{DB: tx}

			got, err := r.GetByUserID(t.Context(), created.UserID)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.FullName, got.FullName)
		})
	})

	t.Run("get not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := StudentRepo{DB: tx}

			_, err := r.GetByID(t.Context(), uuid.New())

			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrStudentNotFound, "should return well known error")
		})
	})

	t.Run("update profile ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			created := createTestStudent(t, tx, "student")
			r := StudentRepo{DB: tx}

			updated, err := r.Update(t.Context(), created.ID, "Alice Kingsleigh", "CS-202")

			require.NoError(t, err)
			assert.Equal(t, created.ID, updated.ID)
			assert.Equal(t, "Alice Kingsleigh", updated.FullName)
			assert.Equal(t, "CS-202", updated.GroupName)
		})
	})

	t.Run("update nonexistent profile", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := StudentRepo{DB: tx}

			_, err := r.Update(t.Context(), uuid.New(), "Nobody", "CS-101")

			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrStudentNotFound, "should return well known error")
		})
	})

	t.Run("list ordered by full name", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := StudentRepo{DB: tx}

			first, err := users.CreateUser(t.Context(), "first", "hashedpassword123", []string{models.RoleStudent})
			require.NoError(t, err)
			second, err := users.CreateUser(t.Context(), "second", "hashedpassword123", []string{models.RoleStudent})
			require.NoError(t, err)

			_, err = r.Create(t.Context(), first.ID, "Zoe Last", "CS-101")
			require.NoError(t, err)
			_, err = r.Create(t.Context(), second.ID, "Abe First", "CS-101")
			require.NoError(t, err)

			students, err := r.List(t.Context())

			require.NoError(t, err)
			require.Len(t, students, 2)
			assert.Equal(t, "Abe First", students[0].FullName, "list is sorted by full name")
			assert.Equal(t, "Zoe Last", students[1].FullName)
		})
	})
}
