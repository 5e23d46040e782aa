package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finman/internal/domain"
	"finman/internal/domain/subscription"
)

const subscriptionColumns = `id, user_id, name, amount, due_date, category, status, created_at`

var _ subscription.Repository = (*SubscriptionRepository)(nil)

type SubscriptionRepository struct {
	db *DB
}

func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func scanSubscription(s rowScanner) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	var status string
	err := s.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Amount, &sub.DueDate, &sub.Category, &status, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	sub.Status = subscription.Status(status)
	return &sub, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, params subscription.CreateParams) (*subscription.Subscription, error) {
	sub := &subscription.Subscription{
		ID:        uuid.NewString(),
		UserID:    params.UserID,
		Name:      params.Name,
		Amount:    params.Amount,
		DueDate:   params.DueDate,
		Category:  params.Category,
		Status:    subscription.StatusActive,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.Name, sub.Amount, sub.DueDate, sub.Category, string(sub.Status), sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id string) (*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`

	sub, err := scanSubscription(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) ListByUserID(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY due_date, name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, userID, id string, params subscription.UpdateParams) (*subscription.Subscription, error) {
	var status *string
	if params.Status != nil {
		s := string(*params.Status)
		status = &s
	}

	query := `
		UPDATE subscriptions
		SET name = COALESCE($1, name),
		    amount = COALESCE($2, amount),
		    due_date = COALESCE($3, due_date),
		    category = COALESCE($4, category),
		    status = COALESCE($5, status)
		WHERE id = $6 AND user_id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		params.Name, params.Amount, params.DueDate, params.Category, status, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	} else if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, userID, id)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NotFound("subscription not found")
	}
	return nil
}
