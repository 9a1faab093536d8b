package tokenmanager

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/apperrors"
)

func Test_TokenManager(t *testing.T) {
	t.Parallel()

	newManager := func(t *testing.T, accessTTL time.Duration, refreshTTL time.Duration) *TokenManager {
		m, err := New(Config{
			SecretKey:  "test-secret-key",
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		})
		require.NoError(t, err, "token manager should be created without errors")
		return m
	}

	t.Run("new defaults", func(t *testing.T) {
		m, err := New(Config{SecretKey: "secret"})
		require.NoError(t, err, "token manager should be created without errors")

		require.Equal(t, "secret", m.key, "secret key should be set")
		require.Equal(t, defaultAccessTokenTTL, m.accessTTL, "default access token TTL should be set")
		require.Equal(t, defaultRefreshTokenTTL, m.refreshTTL, "default refresh token TTL")
		require.Equal(t, defaultSigningMethod, m.alg.Alg(), "default signing method should be set")
	})

	t.Run("new fails without secret", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err, "empty secret key must be a constructor error, not a runtime one")
	})

	t.Run("IssuePair", func(t *testing.T) {
		t.Run("return token pair", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			pair, err := m.IssuePair("alice")

			require.NoError(t, err)
			assert.NotEmpty(t, pair.Access.Value, "access token should not be empty")
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.Access.ExpiresAt, time.Second)
			assert.NotEmpty(t, pair.Refresh.Value, "refresh token should not be empty")
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), pair.Refresh.ExpiresAt, time.Second)
		})

		t.Run("access claims", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			pair, err := m.IssuePair("alice")
			require.NoError(t, err)

			// Parse and verify the access token
			token, err := jwt.ParseWithClaims(pair.Access.Value, &Claims{}, func(token *jwt.Token) (any, error) {
				return []byte("test-secret-key"), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid, "access token should be valid")

			claims, ok := token.Claims.(*Claims)
			require.True(t, ok, "claims should be of type Claims")
			assert.Equal(t, "alice", claims.Subject, "subject in token should match")
			assert.Equal(t, KindAccess, claims.Kind, "access token has to carry access kind")
			assert.NotEmpty(t, claims.ID, "token has to has jti")
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second, "issued at should be close to now")
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Second, "expires at should be 15 minutes from now")

			assert.WithinDuration(t, pair.Access.ExpiresAt, claims.ExpiresAt.Time, 0, "access expires at should match token pair")
		})

		t.Run("refresh claims", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			pair, err := m.IssuePair("alice")
			require.NoError(t, err)

			claims, err := m.Parse(pair.Refresh.Value, KindRefresh)
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Subject)
			assert.Equal(t, KindRefresh, claims.Kind, "refresh token has to carry refresh kind")
			assert.WithinDuration(t, pair.Refresh.ExpiresAt, claims.ExpiresAt.Time, 0)
		})

		t.Run("generate different tokens", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			pair1, err := m.IssuePair("alice")
			require.NoError(t, err)

			pair2, err := m.IssuePair("alice")
			require.NoError(t, err)

			assert.NotEqual(t, pair1.Refresh.Value, pair2.Refresh.Value, "refresh tokens should be different")
			assert.NotEqual(t, pair1.Access.Value, pair2.Access.Value, "access tokens should be different")
		})
	})

	t.Run("Parse", func(t *testing.T) {
		t.Run("valid token", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			pair, err := m.IssuePair("alice")
			require.NoError(t, err, "token pair should be generated without errors")

			claims, err := m.Parse(pair.Access.Value, KindAccess)
			require.NoError(t, err, "valid token should be parsed without errors")
			require.Equal(t, "alice", claims.Subject)
		})

		t.Run("not a token", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			_, err := m.Parse("invalid token", KindAccess)
			require.Error(t, err, "parsing even not a token should return an error")
			require.ErrorIs(t, err, apperrors.ErrTokenMalformed)
		})

		t.Run("expired token", func(t *testing.T) {
			// Negative TTL issues a token that expired in the past
			m := newManager(t, -time.Minute, -time.Minute)

			pair, err := m.IssuePair("alice")
			require.NoError(t, err)

			_, err = m.Parse(pair.Access.Value, KindAccess)
			require.Error(t, err, "token has to become expired")
			require.ErrorIs(t, err, apperrors.ErrTokenExpired)
		})

		t.Run("token expiring right now", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			// Validity requires now to be strictly before exp: exp == now is expired
			now := time.Now().Truncate(time.Second)
			token, err := m.sign("alice", KindAccess, now.Add(-time.Minute), now)
			require.NoError(t, err)

			_, err = m.Parse(token, KindAccess)
			require.Error(t, err, "token at its expiration instant must be rejected")
			require.ErrorIs(t, err, apperrors.ErrTokenExpired)
		})

		t.Run("wrong signing key", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			foreign, err := New(Config{SecretKey: "other-secret-key"})
			require.NoError(t, err)

			pair, err := foreign.IssuePair("alice")
			require.NoError(t, err)

			_, err = m.Parse(pair.Access.Value, KindAccess)
			require.Error(t, err, "token signed with foreign key must fail")
			require.ErrorIs(t, err, apperrors.ErrTokenSignatureInvalid)
		})

		t.Run("wrong kind", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			pair, err := m.IssuePair("alice")
			require.NoError(t, err)

			_, err = m.Parse(pair.Refresh.Value, KindAccess)
			require.Error(t, err, "refresh token must not pass as access token")
			require.ErrorIs(t, err, apperrors.ErrTokenWrongKind)

			_, err = m.Parse(pair.Access.Value, KindRefresh)
			require.Error(t, err, "access token must not pass as refresh token")
			require.ErrorIs(t, err, apperrors.ErrTokenWrongKind)
		})

		t.Run("not signed token", func(t *testing.T) {
			m := newManager(t, 15*time.Minute, 24*time.Hour)

			// Create valid but unsigned token
			token := jwt.NewWithClaims(
				jwt.SigningMethodNone,
				Claims{
					RegisteredClaims: jwt.RegisteredClaims{
						ID:        uuid.NewString(),
						Subject:   "alice",
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
					},
					Kind: KindAccess,
				},
			)
			access, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
			require.NoError(t, err)

			_, err = m.Parse(access, KindAccess)
			require.Error(t, err, "Valid token with empty alg must fail")
		})
	})
}
