package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
	"github.com/edukit/campus/internal/service/auth/tokenmanager"
)

const (
	authHeaderName = "Authorization"
	bearerScheme   = "Bearer"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during user registration or login process
	// Defaults to BcryptHasher
	Hasher PasswordHasher
}

// Auth service: credential verification, token issuance and stateless refresh
type AuthService struct {
	// Manager to issue and validate token pairs (access and refresh)
	token *tokenmanager.TokenManager

	// hasher to hash or compare user passwords
	hasher PasswordHasher

	// Repository to access long term user data
	userRepo repository.UserRepo

	// Valid bcrypt hash compared against when the user is unknown,
	// so login duration does not leak account existence
	dummyHash string
}

func NewService(cfg Config, token *tokenmanager.TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("error while preparing dummy hash. Err: %w", err)
	}

	return &AuthService{
		token:     token,
		hasher:    hasher,
		userRepo:  userRepo,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a user with the given roles and logs it in
func (s *AuthService) Register(ctx context.Context, username string, password string, roles []string) (models.User, models.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, username, hash, roles)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	pair, err := s.token.IssuePair(user.Username)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return user, pair, nil
}

// Login verifies credentials and issues a fresh token pair
// Unknown user and wrong password are indistinguishable for the caller
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.TokenPair, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)

	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		// Burn comparable time on a dummy hash before failing
		_ = s.hasher.Compare(s.dummyHash, password)
		return models.TokenPair{}, apperrors.ErrInvalidCredentials
	case err != nil:
		return models.TokenPair{}, fmt.Errorf("error while loading user. Err: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.token.IssuePair(user.Username)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return pair, nil
}

// Refresh validates the refresh token and mints a brand new pair
// The password is not re-checked; the old refresh token stays valid until
// its own expiration (stateless design, nothing to revoke server side)
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	claims, err := s.token.Parse(refresh, tokenmanager.KindRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	// Subject must still resolve: tokens of deleted accounts are dead
	user, err := s.userRepo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token subject could not be resolved. Err: %w", err)
	}

	pair, err := s.token.IssuePair(user.Username)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return pair, nil
}

// Authenticate resolves the user behind the request's bearer access token
// Roles are re-read from storage on every call, they are never trusted from
// the token payload
func (s *AuthService) Authenticate(ctx context.Context, r *http.Request) (models.User, error) {
	tokenString, err := extractBearerToken(r.Header.Get(authHeaderName))
	if err != nil {
		return models.User{}, err
	}

	claims, err := s.token.Parse(tokenString, tokenmanager.KindAccess)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.userRepo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		return models.User{}, fmt.Errorf("token subject could not be resolved. Err: %w", err)
	}

	return user, nil
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", errors.New("invalid authorization scheme")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("missing bearer token")
	}

	return token, nil
}
