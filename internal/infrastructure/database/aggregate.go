package database

import (
	"context"
	"fmt"

	"finman/internal/domain/transaction"
)

func (r *TransactionRepository) SumByType(ctx context.Context, userID string, period transaction.Period) ([]transaction.TypeTotal, error) {
	query := `
		SELECT type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type
		ORDER BY type
	`
	rows, err := r.db.QueryContext(ctx, query, userID, period.StartDate(), period.EndDate())
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by type: %w", err)
	}
	defer rows.Close()

	var totals []transaction.TypeTotal
	for rows.Next() {
		var t transaction.TypeTotal
		var typ string
		if err := rows.Scan(&typ, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan type total: %w", err)
		}
		t.Type = transaction.Type(typ)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating type totals: %w", err)
	}
	return totals, nil
}

func (r *TransactionRepository) SumByCategory(ctx context.Context, userID string, typ transaction.Type, period transaction.Period) ([]transaction.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0) AS total, COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND date >= $3 AND date <= $4
		GROUP BY category
		ORDER BY total DESC, category
	`
	rows, err := r.db.QueryContext(ctx, query, userID, string(typ), period.StartDate(), period.EndDate())
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	defer rows.Close()

	var totals []transaction.CategoryTotal
	for rows.Next() {
		var t transaction.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

func (r *TransactionRepository) SumByMonthAndCategory(ctx context.Context, userID string, typ transaction.Type) ([]transaction.MonthCategoryTotal, error) {
	query := `
		SELECT substr(date, 1, 7) AS month, category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = $1 AND type = $2
		GROUP BY substr(date, 1, 7), category
		ORDER BY month, total DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, string(typ))
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by month: %w", err)
	}
	defer rows.Close()

	var totals []transaction.MonthCategoryTotal
	for rows.Next() {
		var t transaction.MonthCategoryTotal
		if err := rows.Scan(&t.Month, &t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals: %w", err)
	}
	return totals, nil
}
