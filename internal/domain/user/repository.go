package user

import "context"

// Repository defines the interface for user data access.
// Create returns a domain conflict when the email is already taken.
// The Get methods return (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
