package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finman/internal/domain"
	"finman/internal/shared/auth"
)

var (
	ErrEmailExists        = domain.Conflict("email already registered")
	ErrInvalidCredentials = domain.Unauthorized("invalid email or password")
	ErrUserNotFound       = domain.NotFound("user not found")
)

// TokenManager issues and verifies session tokens whose subject is the user's email.
type TokenManager interface {
	Generate(subject string) (string, error)
	Validate(token string) (*auth.Claims, error)
	TTL() time.Duration
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresIn time.Duration
	User      *User
}

// Service implements registration, login and session resolution.
type Service struct {
	repo   Repository
	tokens TokenManager
}

func NewService(repo Repository, tokens TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register validates the input, hashes the password and persists the user.
// Email uniqueness is enforced by the store.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.Validation("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresIn: s.tokens.TTL(), User: u}, nil
}

// ResolveSession verifies a bearer token and loads the user named by its subject.
func (s *Service) ResolveSession(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, domain.Unauthorized("token has expired")
		}
		return nil, domain.Unauthorized("invalid token")
	}
	if claims.Subject == "" {
		return nil, domain.Unauthorized("could not validate credentials")
	}

	u, err := s.repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetProfile returns the stored user record for userID.
func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
