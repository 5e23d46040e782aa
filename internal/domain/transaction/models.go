package transaction

import (
	"strings"
	"time"

	"finman/internal/domain"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType accepts "income" or "expense" in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", domain.Validation("type must be 'income' or 'expense'")
	}
	return t, nil
}

type Transaction struct {
	ID          string    `json:"transaction_id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

type CreateParams struct {
	UserID      string
	Amount      float64
	Category    string
	Type        Type
	Description string
	Date        string
}

func (p *CreateParams) Validate() error {
	if p.UserID == "" {
		return domain.Validation("user id is required")
	}
	if p.Amount <= 0 {
		return domain.Validation("amount must be greater than 0")
	}
	if !p.Type.Valid() {
		return domain.Validation("type must be 'income' or 'expense'")
	}
	if err := ValidateDate(p.Date); err != nil {
		return err
	}
	if len(p.Description) > 500 {
		return domain.Validation("description must be 500 characters or less")
	}
	if len(p.Category) > 100 {
		return domain.Validation("category must be 100 characters or less")
	}
	return nil
}

// UpdateParams holds a partial update; nil fields are left unchanged.
type UpdateParams struct {
	Amount      *float64
	Category    *string
	Type        *Type
	Description *string
	Date        *string
}

func (p *UpdateParams) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Type == nil && p.Description == nil && p.Date == nil
}

func (p *UpdateParams) Validate() error {
	if p.IsEmpty() {
		return domain.Validation("no fields to update")
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return domain.Validation("amount must be greater than 0")
	}
	if p.Type != nil && !p.Type.Valid() {
		return domain.Validation("type must be 'income' or 'expense'")
	}
	if p.Date != nil {
		if err := ValidateDate(*p.Date); err != nil {
			return err
		}
	}
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		if c == "" {
			return domain.Validation("category cannot be empty")
		}
		if len(c) > 100 {
			return domain.Validation("category must be 100 characters or less")
		}
	}
	if p.Description != nil && len(*p.Description) > 500 {
		return domain.Validation("description must be 500 characters or less")
	}
	return nil
}

// Filter is a conjunctive query over one user's transactions. Zero-valued
// fields are not applied.
type Filter struct {
	UserID    string
	Category  string
	Type      Type
	MinAmount *float64
	MaxAmount *float64
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

func (f *Filter) Validate() error {
	if f.Type != "" && !f.Type.Valid() {
		return domain.Validation("type must be 'income' or 'expense'")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && *f.MinAmount > *f.MaxAmount {
		return domain.Validation("min_amount cannot exceed max_amount")
	}
	if f.StartDate != "" {
		if err := ValidateDate(f.StartDate); err != nil {
			return err
		}
	}
	if f.EndDate != "" {
		if err := ValidateDate(f.EndDate); err != nil {
			return err
		}
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return domain.Validation("start_date cannot be after end_date")
	}
	return nil
}

func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return domain.Validation("date must be in YYYY-MM-DD format")
	}
	return nil
}

// TypeTotal is the sum and count of one transaction type.
type TypeTotal struct {
	Type  Type
	Total float64
	Count int
}

type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

type MonthCategoryTotal struct {
	Month    string // YYYY-MM
	Category string
	Total    float64
}
