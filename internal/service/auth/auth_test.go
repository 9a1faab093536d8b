package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/service/auth/tokenmanager"
)

// In memory user repo, enough for the auth service contract
type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, username string, hashedPassword string, roles []string) (models.User, error) {
	if _, ok := r.users[username]; ok {
		return models.User{}, apperrors.ErrUserAlreadyExists
	}

	user := models.User{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		Username:       username,
		HashedPassword: hashedPassword,
		Roles:          roles,
	}
	r.users[username] = user
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, apperrors.ErrUserNotFound
}

func newTokenManager(t *testing.T, accessTTL time.Duration, refreshTTL time.Duration) *tokenmanager.TokenManager {
	t.Helper()

	m, err := tokenmanager.New(tokenmanager.Config{
		SecretKey:  "test-secret-key",
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	})
	require.NoError(t, err, "token manager should be created without errors")
	return m
}

func Test_AuthService(t *testing.T) {
	t.Parallel()

	newService := func(t *testing.T, accessTTL time.Duration, refreshTTL time.Duration) (*AuthService, *fakeUserRepo) {
		repo := newFakeUserRepo()
		s, err := NewService(Config{}, newTokenManager(t, accessTTL, refreshTTL), repo)
		require.NoError(t, err, "auth service couldn't be started")
		return s, repo
	}

	t.Run("new service requires deps", func(t *testing.T) {
		_, err := NewService(Config{}, nil, nil)
		require.Error(t, err, "nil deps must not be accepted")
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("new user ok", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			user, pair, err := s.Register(t.Context(), "alice", "pwd", []string{models.RoleStudent})

			require.NoError(t, err, "registering new user should be ok")
			require.Equal(t, "alice", user.Username)
			require.Equal(t, []string{models.RoleStudent}, user.Roles)
			require.NotEmpty(t, pair.Access.Value, "access token should not be empty")
			require.NotEmpty(t, pair.Refresh.Value, "refresh token should not be empty")
		})

		t.Run("fail if user exists", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			_, _, err := s.Register(t.Context(), "alice", "pwd", []string{models.RoleStudent})
			require.NoError(t, err)

			_, _, err = s.Register(t.Context(), "alice", "other-pwd", []string{models.RoleStudent})
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})

		t.Run("password hash never stored as plaintext", func(t *testing.T) {
			s, repo := newService(t, 15*time.Minute, 24*time.Hour)

			_, _, err := s.Register(t.Context(), "alice", "pwd", []string{models.RoleStudent})
			require.NoError(t, err)

			stored := repo.users["alice"]
			require.NotEqual(t, "pwd", stored.HashedPassword)
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("existing user ok", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			_, _, err := s.Register(t.Context(), "alice", "pwd", []string{models.RoleStudent})
			require.NoError(t, err)

			pair, err := s.Login(t.Context(), "alice", "pwd")

			require.NoError(t, err)
			require.NotEmpty(t, pair.Access.Value, "access token should not be empty")
			require.NotEmpty(t, pair.Refresh.Value, "refresh token should not be empty")
		})

		tests := []struct {
			name     string
			login    string
			password string
		}{
			{
				name:     "login fail if wrong password",
				login:    "alice",
				password: "wrong",
			},
			{
				name:     "login fail if user not exists",
				login:    "not-existed-user",
				password: "password",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, _ := newService(t, 15*time.Minute, 24*time.Hour)

				_, _, err := s.Register(t.Context(), "alice", "pwd", []string{models.RoleStudent})
				require.NoError(t, err)

				_, err = s.Login(t.Context(), tt.login, tt.password)

				// Same error for both causes: username enumeration is not possible
				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			})
		}
	})

	t.Run("Refresh", func(t *testing.T) {
		t.Run("refresh ok", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			initialPair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			// Issue timestamps have second precision, step over the boundary
			// so the new expiry is strictly later
			time.Sleep(1100 * time.Millisecond)

			newPair, err := s.Refresh(t.Context(), initialPair.Refresh.Value)

			require.NoError(t, err)
			require.NotEqual(t, initialPair.Access.Value, newPair.Access.Value, "new access token should be different")
			require.NotEqual(t, initialPair.Refresh.Value, newPair.Refresh.Value, "new refresh token should be different")
			require.True(t, newPair.Refresh.ExpiresAt.After(initialPair.Refresh.ExpiresAt), "new refresh token should expire later")
		})

		t.Run("fail with access token", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			pair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			_, err = s.Refresh(t.Context(), pair.Access.Value)
			require.Error(t, err, "access token must not be accepted for refresh")
			require.ErrorIs(t, err, apperrors.ErrTokenWrongKind)
		})

		t.Run("fail if expired", func(t *testing.T) {
			s, _ := newService(t, -time.Minute, -time.Minute)

			pair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			_, err = s.Refresh(t.Context(), pair.Refresh.Value)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrTokenExpired, "should return error if token expired")
		})

		t.Run("fail if user deleted", func(t *testing.T) {
			s, repo := newService(t, 15*time.Minute, 24*time.Hour)

			pair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			delete(repo.users, "alice")

			_, err = s.Refresh(t.Context(), pair.Refresh.Value)
			require.Error(t, err, "token of deleted account must not refresh")
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})

	t.Run("Authenticate", func(t *testing.T) {
		newRequest := func(t *testing.T, header string) *http.Request {
			r, err := http.NewRequest(http.MethodGet, "/api/courses", nil)
			require.NoError(t, err)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			return r
		}

		t.Run("valid token ok", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			pair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			user, err := s.Authenticate(t.Context(), newRequest(t, "Bearer "+pair.Access.Value))
			require.NoError(t, err)
			require.Equal(t, "alice", user.Username)
			require.Equal(t, []string{models.RoleStudent}, user.Roles, "roles come from storage, not from the token")
		})

		t.Run("missing header", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			_, err := s.Authenticate(t.Context(), newRequest(t, ""))
			require.Error(t, err)
		})

		t.Run("wrong scheme", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			pair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			_, err = s.Authenticate(t.Context(), newRequest(t, "Basic "+pair.Access.Value))
			require.Error(t, err)
		})

		t.Run("garbage token", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)
			mustRegister(t, s)

			_, err := s.Authenticate(t.Context(), newRequest(t, "Bearer not-a-token"))
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrTokenMalformed)
		})

		t.Run("refresh token rejected", func(t *testing.T) {
			s, _ := newService(t, 15*time.Minute, 24*time.Hour)

			pair, err := s.Login(t.Context(), mustRegister(t, s), "pwd")
			require.NoError(t, err)

			_, err = s.Authenticate(t.Context(), newRequest(t, "Bearer "+pair.Refresh.Value))
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrTokenWrongKind)
		})
	})
}

// Register user 'alice' with password 'pwd' and student role
func mustRegister(t *testing.T, s *AuthService) string {
	t.Helper()

	_, _, err := s.Register(t.Context(), "alice", "pwd", []string{models.RoleStudent})
	require.NoError(t, err)
	return "alice"
}
