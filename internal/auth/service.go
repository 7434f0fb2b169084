package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ademgunay/nest-api-sandbox/internal/models"
	"github.com/ademgunay/nest-api-sandbox/internal/repo"
)

// UserStore is the persistence the auth service needs. Create must report an email
// collision as repo.ErrDuplicate; lookups report absence as repo.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, email, hash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Tokens issues and validates access tokens.
type Tokens interface {
	Issue(userID int, email string, ttl time.Duration) (string, error)
	Validate(token string) (*Claims, error)
}

// Credentials is the transient email/password pair of a signup or signin call.
type Credentials struct {
	Email    string
	Password string
}

// Identity is the authenticated caller, resolved from a token against the user store.
type Identity struct {
	UserID int
	Email  string
}

// Service implements signup, signin and token authentication.
type Service struct {
	users  UserStore
	hasher Hasher
	tokens Tokens
	ttl    time.Duration
	log    *zap.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// NewService wires the service. ttl <= 0 selects DefaultTokenTTL; log may be nil.
func NewService(users UserStore, hasher Hasher, tokens Tokens, ttl time.Duration, log *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		ttl:    ttl,
		log:    log.Named("auth"),
	}
}

// Signup creates the user and returns an access token. Exactly one store write happens;
// a second signup with the same email fails with ErrEmailTaken.
func (s *Service) Signup(ctx context.Context, c Credentials) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(c.Password)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return "", fmt.Errorf("%w: hash password", ErrInternal)
	}

	user, err := s.users.Create(ctx, c.Email, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		s.log.Error("create user", zap.Error(err))
		return "", fmt.Errorf("%w: create user", ErrInternal)
	}

	return s.issue(user)
}

// Signin checks the credentials and returns an access token. An unknown email and a wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, c Credentials) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// burn the same hashing cost as a real verify
			_, _ = s.hasher.Verify(s.dummy(), c.Password)
			return "", ErrInvalidCredentials
		}
		s.log.Error("lookup user by email", zap.Error(err))
		return "", fmt.Errorf("%w: lookup user", ErrInternal)
	}

	ok, err := s.hasher.Verify(user.Hash, c.Password)
	if err != nil {
		s.log.Error("verify password", zap.Int("user_id", user.ID), zap.Error(err))
		return "", fmt.Errorf("%w: verify password", ErrInternal)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate validates token and resolves its subject against the store. Every token
// failure and a subject that no longer exists come back as ErrUnauthenticated wrapping the
// cause.
func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	id, err := claims.UserID()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Identity{}, fmt.Errorf("%w: user %d no longer exists", ErrUnauthenticated, id)
		}
		s.log.Error("lookup user by id", zap.Int("user_id", id), zap.Error(err))
		return Identity{}, fmt.Errorf("%w: lookup user", ErrInternal)
	}

	return Identity{UserID: user.ID, Email: user.Email}, nil
}

func (s *Service) issue(user *models.User) (string, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, s.ttl)
	if err != nil {
		s.log.Error("issue token", zap.Int("user_id", user.ID), zap.Error(err))
		return "", fmt.Errorf("%w: issue token", ErrInternal)
	}
	return token, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		d, err := s.hasher.Hash("dummy-password-for-timing")
		if err != nil {
			s.log.Warn("hash dummy password", zap.Error(err))
			return
		}
		s.dummyDigest = d
	})
	return s.dummyDigest
}

func (c Credentials) validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return nil
}
