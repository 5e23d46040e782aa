package budget

import (
	"context"
	"errors"
	"time"

	"finman/internal/domain"
	"finman/internal/domain/transaction"
	"finman/internal/shared/money"
)

var (
	ErrBudgetExists   = domain.Conflict("budget already exists for this month")
	ErrBudgetNotFound = domain.NotFound("no budget found for this month")
)

// SpendingReader sums a user's transactions by type over a period.
type SpendingReader interface {
	SumByType(ctx context.Context, userID string, period transaction.Period) ([]transaction.TypeTotal, error)
}

// Service contains the business logic for monthly budgets.
type Service struct {
	repo     Repository
	spending SpendingReader
	now      func() time.Time
}

func NewService(repo Repository, spending SpendingReader) *Service {
	return &Service{repo: repo, spending: spending, now: time.Now}
}

// resolveMonth defaults an empty month to the current one and validates the rest.
func (s *Service) resolveMonth(month string) (string, transaction.Period, error) {
	if month == "" {
		p := transaction.MonthOf(s.now())
		return p.Start.Format(transaction.MonthLayout), p, nil
	}
	p, err := transaction.ParseMonth(month)
	if err != nil {
		return "", transaction.Period{}, err
	}
	return p.Start.Format(transaction.MonthLayout), p, nil
}

// Set creates the budget for a month. Only one budget may exist per month.
func (s *Service) Set(ctx context.Context, userID, month string, amount float64) (*Budget, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	month, _, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, userID, month, amount)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrBudgetExists
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, month string) (*Budget, error) {
	month, _, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBudgetNotFound
	}
	return b, nil
}

// Update replaces the amount of an existing budget.
func (s *Service) Update(ctx context.Context, userID, month string, amount float64) (*Budget, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	month, _, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.UpdateAmount(ctx, userID, month, amount)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBudgetNotFound
	}
	return b, nil
}

// Delete removes the budget and returns the month it applied to.
func (s *Service) Delete(ctx context.Context, userID, month string) (string, error) {
	month, _, err := s.resolveMonth(month)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, userID, month); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrBudgetNotFound
		}
		return "", err
	}
	return month, nil
}

// Track reports how much of the month's budget the logged expenses have used.
func (s *Service) Track(ctx context.Context, userID, month string) (*Progress, error) {
	month, period, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBudgetNotFound
	}

	totals, err := s.spending.SumByType(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	var spent float64
	for _, t := range totals {
		if t.Type == transaction.TypeExpense {
			spent = t.Total
		}
	}

	return &Progress{
		Month:          month,
		Budget:         b.Amount,
		TotalSpent:     money.Round(spent),
		Remaining:      money.Sub(b.Amount, spent),
		PercentageUsed: money.Percentage(spent, b.Amount),
	}, nil
}
