package subscription

import (
	"context"
	"errors"
	"strings"
	"time"

	"finman/internal/domain"
	"finman/internal/domain/transaction"
)

var ErrSubscriptionNotFound = domain.NotFound("subscription not found")

// Service contains the business logic for recurring subscriptions.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create normalizes the due date and stores the subscription as active.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Subscription, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Category = transaction.CanonicalCategory(params.Category)
	if params.Category == "" {
		params.Category = transaction.CategoryOther
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	due, err := ParseDueDate(params.DueDate, s.now())
	if err != nil {
		return nil, err
	}
	params.DueDate = due

	sub, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.withStatus(sub), nil
}

func (s *Service) withStatus(sub *Subscription) *Subscription {
	sub.Status = sub.EffectiveStatus(s.now())
	return sub
}

// List returns the user's subscriptions with their effective status.
func (s *Service) List(ctx context.Context, userID string) ([]*Subscription, error) {
	subs, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		return []*Subscription{}, nil
	}
	for _, sub := range subs {
		s.withStatus(sub)
	}
	return subs, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return s.withStatus(sub), nil
}

// Update applies a partial update. A due date may be given in either form.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error) {
	if params.Name != nil {
		n := strings.TrimSpace(*params.Name)
		params.Name = &n
	}
	if params.Category != nil {
		c := transaction.CanonicalCategory(*params.Category)
		if c == "" {
			c = transaction.CategoryOther
		}
		params.Category = &c
	}
	if params.Status != nil {
		st := Status(strings.ToLower(strings.TrimSpace(string(*params.Status))))
		params.Status = &st
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.DueDate != nil {
		due, err := ParseDueDate(*params.DueDate, s.now())
		if err != nil {
			return nil, err
		}
		params.DueDate = &due
	}

	sub, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return s.withStatus(sub), nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}
