// Package prediction derives spending trends, a next-month forecast and
// savings tips from a user's expense history.
package prediction

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"finman/internal/domain"
	"finman/internal/domain/transaction"
	"finman/internal/shared/money"
)

const (
	minMonthsForForecast = 2
	topCategories        = 3
	balancedMessage      = "Spending is balanced. Keep it up!"
)

// reducibleCategories are the discretionary categories that get a tip when
// they rank among the top spending categories. Keys are lower case.
var reducibleCategories = map[string]bool{
	"entertainment": true,
	"food & drink":  true,
	"shopping":      true,
}

var ErrNotEnoughHistory = domain.Validation("not enough data for prediction")

// Analysis maps YYYY-MM to category totals for that month.
type Analysis struct {
	MonthlySpending map[string]map[string]float64 `json:"monthly_spending"`
}

type Forecast struct {
	NextMonthExpense float64 `json:"next_month_expense_prediction"`
	MonthsUsed       int     `json:"months_used"`
}

type Suggestions struct {
	Suggestions []string `json:"suggestions"`
}

type Service struct {
	agg transaction.Aggregator
}

func NewService(agg transaction.Aggregator) *Service {
	return &Service{agg: agg}
}

// SpendingAnalysis groups the user's expenses by month and category.
func (s *Service) SpendingAnalysis(ctx context.Context, userID string) (*Analysis, error) {
	rows, err := s.agg.SumByMonthAndCategory(ctx, userID, transaction.TypeExpense)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]float64)
	for _, r := range rows {
		if out[r.Month] == nil {
			out[r.Month] = make(map[string]float64)
		}
		out[r.Month][r.Category] = money.Round(r.Total)
	}
	return &Analysis{MonthlySpending: out}, nil
}

// BudgetPrediction fits a least-squares line through the monthly expense
// totals, indexed 0..n-1 in month order, and evaluates it at n.
func (s *Service) BudgetPrediction(ctx context.Context, userID string) (*Forecast, error) {
	rows, err := s.agg.SumByMonthAndCategory(ctx, userID, transaction.TypeExpense)
	if err != nil {
		return nil, err
	}

	totals := monthlyTotals(rows)
	if len(totals) < minMonthsForForecast {
		return nil, ErrNotEnoughHistory
	}

	xs := make([]float64, len(totals))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, totals, nil, false)

	return &Forecast{
		NextMonthExpense: money.Round(alpha + beta*float64(len(totals))),
		MonthsUsed:       len(totals),
	}, nil
}

// monthlyTotals collapses month/category rows into one total per month in
// ascending month order.
func monthlyTotals(rows []transaction.MonthCategoryTotal) []float64 {
	byMonth := make(map[string]float64)
	for _, r := range rows {
		byMonth[r.Month] += r.Total
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	totals := make([]float64, len(months))
	for i, m := range months {
		totals[i] = byMonth[m]
	}
	return totals
}

// SavingsSuggestions emits a tip for each discretionary category among the
// user's top expense categories.
func (s *Service) SavingsSuggestions(ctx context.Context, userID string) (*Suggestions, error) {
	rows, err := s.agg.SumByMonthAndCategory(ctx, userID, transaction.TypeExpense)
	if err != nil {
		return nil, err
	}

	var tips []string
	for _, c := range rankCategories(rows, topCategories) {
		if reducibleCategories[strings.ToLower(c)] {
			tips = append(tips, fmt.Sprintf("Consider reducing your spending on '%s'", c))
		}
	}
	if len(tips) == 0 {
		tips = []string{balancedMessage}
	}
	return &Suggestions{Suggestions: tips}, nil
}

// rankCategories returns up to n categories by total spend, largest first.
// Ties break by name.
func rankCategories(rows []transaction.MonthCategoryTotal, n int) []string {
	byCategory := make(map[string]float64)
	for _, r := range rows {
		byCategory[r.Category] += r.Total
	}

	cats := make([]string, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if byCategory[cats[i]] != byCategory[cats[j]] {
			return byCategory[cats[i]] > byCategory[cats[j]]
		}
		return cats[i] < cats[j]
	})

	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}
