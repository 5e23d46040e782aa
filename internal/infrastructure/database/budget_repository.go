package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finman/internal/domain"
	"finman/internal/domain/budget"
)

var _ budget.Repository = (*BudgetRepository)(nil)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error) {
	b := &budget.Budget{
		ID:        uuid.NewString(),
		UserID:    userID,
		Month:     month,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO budgets (id, user_id, month, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, b.ID, b.UserID, b.Month, b.Amount, b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict("budget already exists for this month")
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) GetByMonth(ctx context.Context, userID, month string) (*budget.Budget, error) {
	query := `
		SELECT id, user_id, month, amount, created_at
		FROM budgets
		WHERE user_id = $1 AND month = $2
	`
	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query, userID, month).Scan(&b.ID, &b.UserID, &b.Month, &b.Amount, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &b, nil
}

func (r *BudgetRepository) UpdateAmount(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET amount = $1 WHERE user_id = $2 AND month = $3`,
		amount, userID, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	} else if n == 0 {
		return nil, nil
	}
	return r.GetByMonth(ctx, userID, month)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, month string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE user_id = $1 AND month = $2`, userID, month)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NotFound("budget not found")
	}
	return nil
}
