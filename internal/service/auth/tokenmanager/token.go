package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
)

const (
	// Access token lifetime keeps the platform's historical short default (~4.2 min)
	defaultAccessTokenTTL  = 250 * time.Second
	defaultSigningMethod   = "HS256"
	defaultRefreshTokenTTL = 24 * time.Hour
)

// Token kinds
// An access token can not be used to refresh and vice versa
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

type Claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret key to sign tokens
	// Required to be set: tokens are stateless, every instance must share it
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set than default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type TokenManager struct {
	// Secret key to sign tokens
	key string

	// JWT MAC (Message Authentication Code) algorithm
	alg jwt.SigningMethod

	// Access and refresh token lifetimes
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		key:        cfg.SecretKey,
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// IssuePair mints two independently signed tokens for the same subject
// Nothing is persisted: both tokens are valid until their own expiration
func (m *TokenManager) IssuePair(subject string) (models.TokenPair, error) {
	var pair models.TokenPair
	now := time.Now().Truncate(time.Second)
	accessExpiresAt := now.Add(m.accessTTL)
	refreshExpiresAt := now.Add(m.refreshTTL)

	access, err := m.sign(subject, KindAccess, now, accessExpiresAt)
	if err != nil {
		return pair, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	refresh, err := m.sign(subject, KindRefresh, now, refreshExpiresAt)
	if err != nil {
		return pair, fmt.Errorf("error while signing refresh token. Err: %w", err)
	}

	return models.TokenPair{
		Access:  models.IssuedToken{Value: access, ExpiresAt: accessExpiresAt},
		Refresh: models.IssuedToken{Value: refresh, ExpiresAt: refreshExpiresAt},
	}, nil
}

func (m *TokenManager) sign(subject string, kind Kind, issuedAt time.Time, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   subject,
				IssuedAt:  jwt.NewNumericDate(issuedAt),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			Kind: kind,
		},
	)

	return token.SignedString([]byte(m.key))
}

// Parse verifies signature, expiration and kind, in that order
// A token is valid only when all three checks pass: a signature failure is
// never masked by the expiration result
func (m *TokenManager) Parse(tokenString string, kind Kind) (Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil {
		return Claims{}, classifyParseError(err)
	}

	if claims.Kind != kind {
		return Claims{}, fmt.Errorf("got %q token: %w", claims.Kind, apperrors.ErrTokenWrongKind)
	}

	return *claims, nil
}

// classifyParseError maps jwt library failures to well known app errors
// Callers may log the reason but must surface all of them uniformly
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("error while parsing token. Err: %w", apperrors.ErrTokenExpired)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("error while parsing token. Err: %w", apperrors.ErrTokenSignatureInvalid)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("error while parsing token. Err: %w", apperrors.ErrTokenMalformed)
	default:
		return fmt.Errorf("error while parsing token (%v). Err: %w", err, apperrors.ErrTokenMalformed)
	}
}
