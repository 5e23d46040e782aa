package subscription

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"finman/internal/domain"
	"finman/internal/domain/transaction"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	DueDate   string    `json:"due_date"` // YYYY-MM-DD
	Category  string    `json:"category"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// EffectiveStatus is inactive once the due date is before today's date,
// otherwise the stored status. The whole due day counts as active.
func (s *Subscription) EffectiveStatus(today time.Time) Status {
	if s.DueDate < today.Format(transaction.DateLayout) {
		return StatusInactive
	}
	if s.Status == "" {
		return StatusActive
	}
	return s.Status
}

var (
	relativeDueDate = regexp.MustCompile(`^(\d+)\s+days$`)
	absoluteDueDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var errDueDateFormat = domain.Validation("invalid due_date format, use 'YYYY-MM-DD' or '<number> days'")

// ParseDueDate accepts an ISO date or an "<N> days" offset from now and
// returns the absolute YYYY-MM-DD date.
func ParseDueDate(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)

	if m := relativeDueDate.FindStringSubmatch(raw); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil || days > 36500 {
			return "", errDueDateFormat
		}
		return now.AddDate(0, 0, days).Format(transaction.DateLayout), nil
	}

	if absoluteDueDate.MatchString(raw) {
		if _, err := time.Parse(transaction.DateLayout, raw); err != nil {
			return "", errDueDateFormat
		}
		return raw, nil
	}

	return "", errDueDateFormat
}

type CreateParams struct {
	UserID   string
	Name     string
	Amount   float64
	DueDate  string
	Category string
}

func (p *CreateParams) Validate() error {
	if p.UserID == "" {
		return domain.Validation("user id is required")
	}
	if p.Name == "" {
		return domain.Validation("name is required")
	}
	if len(p.Name) > 100 {
		return domain.Validation("name must be 100 characters or less")
	}
	if p.Amount <= 0 {
		return domain.Validation("amount must be greater than 0")
	}
	return nil
}

// UpdateParams holds a partial update; nil fields are left unchanged.
type UpdateParams struct {
	Name     *string
	Amount   *float64
	DueDate  *string
	Category *string
	Status   *Status
}

func (p *UpdateParams) Validate() error {
	if p.Name == nil && p.Amount == nil && p.DueDate == nil && p.Category == nil && p.Status == nil {
		return domain.Validation("no fields to update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 100) {
		return domain.Validation("name must be between 1 and 100 characters")
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return domain.Validation("amount must be greater than 0")
	}
	if p.Status != nil && !p.Status.Valid() {
		return domain.Validation("status must be 'active' or 'inactive'")
	}
	return nil
}
