package subscription

import (
	"context"
)

// Repository defines the interface for subscription data access. Every
// lookup is scoped by owner, so another user's id behaves like a missing one.
type Repository interface {
	// Create stores the subscription with an already normalized due date.
	Create(ctx context.Context, params CreateParams) (*Subscription, error)
	// GetByID returns nil, nil when no matching record exists.
	GetByID(ctx context.Context, userID, id string) (*Subscription, error)
	ListByUserID(ctx context.Context, userID string) ([]*Subscription, error)
	// Update returns nil, nil when no matching record exists.
	Update(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error)
	// Delete returns a not-found error when no matching record exists.
	Delete(ctx context.Context, userID, id string) error
}
