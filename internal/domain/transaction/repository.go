package transaction

import (
	"context"
)

// Repository defines the interface for transaction data access.
// GetByID returns nil, nil when the record does not exist.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	List(ctx context.Context, filter Filter) ([]*Transaction, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Aggregator runs grouped sums over one user's transactions.
type Aggregator interface {
	SumByType(ctx context.Context, userID string, period Period) ([]TypeTotal, error)
	// SumByCategory returns category totals for one type, largest first.
	SumByCategory(ctx context.Context, userID string, typ Type, period Period) ([]CategoryTotal, error)
	// SumByMonthAndCategory groups every transaction of typ by month and category,
	// ordered by month.
	SumByMonthAndCategory(ctx context.Context, userID string, typ Type) ([]MonthCategoryTotal, error)
}
