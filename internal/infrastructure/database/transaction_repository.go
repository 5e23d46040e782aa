package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"finman/internal/domain"
	"finman/internal/domain/transaction"
)

const transactionColumns = `id, user_id, amount, category, type, description, date, created_at`

var (
	_ transaction.Repository = (*TransactionRepository)(nil)
	_ transaction.Aggregator = (*TransactionRepository)(nil)
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var typ string
	err := s.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Category, &typ, &tx.Description, &tx.Date, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	tx.Type = transaction.Type(typ)
	return &tx, nil
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	tx := &transaction.Transaction{
		ID:          uuid.NewString(),
		UserID:      params.UserID,
		Amount:      params.Amount,
		Category:    params.Category,
		Type:        params.Type,
		Description: params.Description,
		Date:        params.Date,
		CreatedAt:   time.Now().UTC(),
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Amount, tx.Category, string(tx.Type), tx.Description, tx.Date, tx.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// List applies every non-zero field of filter and orders newest first.
func (r *TransactionRepository) List(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	var q queryBuilder
	q.where("user_id = $%d", filter.UserID)
	if filter.Category != "" {
		q.where("lower(category) = lower($%d)", filter.Category)
	}
	if filter.Type != "" {
		q.where("type = $%d", string(filter.Type))
	}
	if filter.MinAmount != nil {
		q.where("amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q.where("amount <= $%d", *filter.MaxAmount)
	}
	if filter.StartDate != "" {
		q.where("date >= $%d", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.where("date <= $%d", filter.EndDate)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + q.conditions() +
		` ORDER BY date DESC, created_at DESC` + q.page(filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	var typ *string
	if params.Type != nil {
		s := string(*params.Type)
		typ = &s
	}

	query := `
		UPDATE transactions
		SET amount = COALESCE($1, amount),
		    category = COALESCE($2, category),
		    type = COALESCE($3, type),
		    description = COALESCE($4, description),
		    date = COALESCE($5, date)
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		params.Amount, params.Category, typ, params.Description, params.Date, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	} else if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NotFound("transaction not found")
	}
	return nil
}

// queryBuilder numbers $N placeholders while conditions are appended.
type queryBuilder struct {
	conds []string
	args  []any
}

// where appends a condition; format must contain exactly one %d for the
// placeholder index.
func (q *queryBuilder) where(format string, arg any) {
	q.args = append(q.args, arg)
	q.conds = append(q.conds, fmt.Sprintf(format, len(q.args)))
}

func (q *queryBuilder) conditions() string {
	return strings.Join(q.conds, " AND ")
}

func (q *queryBuilder) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	q.args = append(q.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(q.args)-1, len(q.args))
}
