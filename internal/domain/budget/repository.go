package budget

import (
	"context"
)

// Repository defines the interface for budget data access. Budgets are keyed
// by (userID, month).
type Repository interface {
	// Create returns a conflict error when the month already has a budget.
	Create(ctx context.Context, userID, month string, amount float64) (*Budget, error)
	// GetByMonth returns nil, nil when no budget exists.
	GetByMonth(ctx context.Context, userID, month string) (*Budget, error)
	// UpdateAmount returns nil, nil when no budget exists.
	UpdateAmount(ctx context.Context, userID, month string, amount float64) (*Budget, error)
	// Delete returns a not-found error when no budget exists.
	Delete(ctx context.Context, userID, month string) error
}
