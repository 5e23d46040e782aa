package report

// Summary holds income and expense totals over a date range.
type Summary struct {
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalIncome      float64 `json:"total_income"`
	TotalExpense     float64 `json:"total_expense"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryBreakdown splits one month's expenses by category.
type CategoryBreakdown struct {
	Month        string           `json:"month"`
	Breakdown    []CategoryAmount `json:"breakdown"`
	TotalExpense float64          `json:"total_expense"`
}

// PeriodReport is a monthly or yearly report; exactly one of Month and Year
// is set.
type PeriodReport struct {
	Month             string           `json:"month,omitempty"`
	Year              string           `json:"year,omitempty"`
	TotalIncome       float64          `json:"total_income"`
	TotalExpense      float64          `json:"total_expense"`
	NetBalance        float64          `json:"net_balance"`
	TransactionCount  int              `json:"transaction_count"`
	CategoryBreakdown []CategoryAmount `json:"category_breakdown"`
}
