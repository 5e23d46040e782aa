package budget

import (
	"time"

	"finman/internal/domain"
)

type Budget struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Month     string    `json:"month"` // YYYY-MM
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Progress compares a month's budget with the expenses logged in that month.
type Progress struct {
	Month          string  `json:"month"`
	Budget         float64 `json:"budget"`
	TotalSpent     float64 `json:"total_spent"`
	Remaining      float64 `json:"remaining_budget"`
	PercentageUsed float64 `json:"percentage_used"`
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return domain.Validation("amount must be greater than 0")
	}
	return nil
}
