package transaction

import (
	"context"
	"strings"
	"time"

	"finman/internal/domain"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

var ErrTransactionNotFound = domain.NotFound("transaction not found")

// Categorizer predicts a category from a free-text description.
type Categorizer interface {
	Categorize(description string) string
}

// Service contains the business logic for transaction operations.
type Service struct {
	repo        Repository
	categorizer Categorizer
	now         func() time.Time
}

func NewService(repo Repository, categorizer Categorizer) *Service {
	return &Service{repo: repo, categorizer: categorizer, now: time.Now}
}

// Create stores a transaction for the user. A missing date defaults to today
// and a missing category is predicted from the description.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	params.Description = strings.TrimSpace(params.Description)
	params.Category = CanonicalCategory(params.Category)
	if params.Date == "" {
		params.Date = s.now().Format(DateLayout)
	}
	if params.Category == "" {
		params.Category = s.categorize(params.Description)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

func (s *Service) categorize(description string) string {
	if description == "" || s.categorizer == nil {
		return CategoryOther
	}
	if c := s.categorizer.Categorize(description); c != "" {
		return c
	}
	return CategoryOther
}

// Get returns the transaction if it exists and belongs to userID. Records
// owned by someone else are reported as not found.
func (s *Service) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// List returns the user's transactions, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Transaction, error) {
	return s.Filter(ctx, Filter{UserID: userID, Limit: limit, Offset: offset})
}

// Filter runs a conjunctive query scoped to filter.UserID.
func (s *Service) Filter(ctx context.Context, filter Filter) ([]*Transaction, error) {
	if filter.UserID == "" {
		return nil, domain.Validation("user id is required")
	}
	filter.Category = strings.TrimSpace(filter.Category)
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	txs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*Transaction{}
	}
	return txs, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Update applies a partial update after verifying ownership.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
	if params.Category != nil {
		c := CanonicalCategory(*params.Category)
		params.Category = &c
	}
	if params.Description != nil {
		d := strings.TrimSpace(*params.Description)
		params.Description = &d
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	tx, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// Delete removes the transaction after verifying ownership.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
