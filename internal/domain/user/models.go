package user

import (
	"net/mail"
	"strings"
	"time"

	"finman/internal/domain"
	"finman/internal/shared/auth"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

// RegisterParams is the registration input before hashing.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Normalize trims the username and lower-cases the email so lookups are
// case-insensitive.
func (p *RegisterParams) Normalize() {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = NormalizeEmail(p.Email)
}

func (p *RegisterParams) Validate() error {
	if p.Username == "" {
		return domain.Validation("username is required")
	}
	if len(p.Username) > 64 {
		return domain.Validation("username must be 64 characters or less")
	}
	if p.Email == "" {
		return domain.Validation("email is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return domain.Validation("email is not a valid address")
	}
	if err := auth.ValidatePassword(p.Password); err != nil {
		return domain.Validation("%s", err.Error())
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
