package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"finman/internal/domain"
	"finman/internal/shared/auth"
)

// MockRepository is an in-memory Repository that enforces email uniqueness
// the way the store's unique index does.
type MockRepository struct {
	mu      sync.Mutex
	byEmail map[string]*User
	nextID  int

	GetByEmailFunc func(ctx context.Context, email string) (*User, error)
}

func NewMockRepository() *MockRepository {
	return &MockRepository{byEmail: make(map[string]*User)}
}

func (m *MockRepository) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[params.Email]; ok {
		return nil, domain.Conflict("duplicate key")
	}
	m.nextID++
	u := &User{
		ID:           fmt.Sprintf("user-%d", m.nextID),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	m.byEmail[params.Email] = u
	return u, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email], nil
}

func newTestService() (*Service, *MockRepository, *auth.JWT) {
	repo := NewMockRepository()
	tokens := auth.NewJWT("test-secret", 30*time.Minute)
	return NewService(repo, tokens), repo, tokens
}

func registerParams(email string) RegisterParams {
	return RegisterParams{Username: "alice", Email: email, Password: "correct-horse"}
}

func TestRegister_Success(t *testing.T) {
	svc, repo, _ := newTestService()

	u, err := svc.Register(context.Background(), registerParams("  Alice@Example.com "))
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("Email = %q, want normalized address", u.Email)
	}

	stored := repo.byEmail["alice@example.com"]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "correct-horse" || stored.PasswordHash == "" {
		t.Errorf("PasswordHash = %q, want bcrypt digest", stored.PasswordHash)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerParams("bob@example.com")); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}

	_, err := svc.Register(ctx, registerParams("BOB@example.com"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Register() error = %v, want conflict", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		params RegisterParams
	}{
		{"missing username", RegisterParams{Email: "a@example.com", Password: "long-enough"}},
		{"missing email", RegisterParams{Username: "a", Password: "long-enough"}},
		{"bad email", RegisterParams{Username: "a", Email: "not-an-email", Password: "long-enough"}},
		{"short password", RegisterParams{Username: "a", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.params)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Register() error = %v, want validation error", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, registerParams("carol@example.com")); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		session, err := svc.Login(ctx, "carol@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login() failed: %v", err)
		}
		claims, err := tokens.Validate(session.Token)
		if err != nil {
			t.Fatalf("issued token does not validate: %v", err)
		}
		if claims.Subject != "carol@example.com" {
			t.Errorf("token subject = %q, want registered email", claims.Subject)
		}
		if session.ExpiresIn != 30*time.Minute {
			t.Errorf("ExpiresIn = %v, want 30m", session.ExpiresIn)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "carol@example.com", "wrong-horse")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Login() error = %v, want unauthorized", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "correct-horse")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Login() error = %v, want unauthorized", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Login() error = %v, want validation", err)
		}
	})
}

func TestResolveSession(t *testing.T) {
	svc, _, tokens := newTestService()
	ctx := context.Background()
	registered, _ := svc.Register(ctx, registerParams("dave@example.com"))

	valid, _ := tokens.Generate("dave@example.com")
	expired, _ := tokens.Issue("dave@example.com", -time.Minute)
	noSubject, _ := tokens.Generate("")
	ghost, _ := tokens.Generate("ghost@example.com")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid", valid, nil},
		{"expired", expired, domain.ErrUnauthorized},
		{"garbage", "not-a-token", domain.ErrUnauthorized},
		{"missing subject", noSubject, domain.ErrUnauthorized},
		{"unknown user", ghost, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.ResolveSession(ctx, tt.token)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ResolveSession() failed: %v", err)
				}
				if u.ID != registered.ID {
					t.Errorf("resolved user %q, want %q", u.ID, registered.ID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveSession_StoreFailure(t *testing.T) {
	svc, repo, tokens := newTestService()
	storeErr := errors.New("connection refused")
	repo.GetByEmailFunc = func(ctx context.Context, email string) (*User, error) {
		return nil, storeErr
	}

	token, _ := tokens.Generate("erin@example.com")
	if _, err := svc.ResolveSession(context.Background(), token); !errors.Is(err, storeErr) {
		t.Errorf("ResolveSession() error = %v, want store error", err)
	}
}
