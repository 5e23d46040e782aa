// Package report builds read-only projections over a user's transactions.
package report

import (
	"context"
	"strconv"
	"time"

	"finman/internal/domain/transaction"
	"finman/internal/shared/money"
)

type Service struct {
	agg transaction.Aggregator
	now func() time.Time
}

func NewService(agg transaction.Aggregator) *Service {
	return &Service{agg: agg, now: time.Now}
}

// Summary totals income and expense between start and end inclusive. Either
// bound defaults to the edge of the current month.
func (s *Service) Summary(ctx context.Context, userID, start, end string) (*Summary, error) {
	month := transaction.MonthOf(s.now())
	if start == "" {
		start = month.StartDate()
	}
	if end == "" {
		end = month.EndDate()
	}
	period, err := transaction.ParseRange(start, end)
	if err != nil {
		return nil, err
	}

	income, expense, count, err := s.typeTotals(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	return &Summary{
		StartDate:        period.StartDate(),
		EndDate:          period.EndDate(),
		TotalIncome:      money.Round(income),
		TotalExpense:     money.Round(expense),
		NetBalance:       money.Sub(income, expense),
		TransactionCount: count,
	}, nil
}

// CategoryWise breaks one month's expenses down by category.
func (s *Service) CategoryWise(ctx context.Context, userID, month string) (*CategoryBreakdown, error) {
	month, period, err := s.month(month)
	if err != nil {
		return nil, err
	}

	breakdown, total, err := s.expenseBreakdown(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	return &CategoryBreakdown{
		Month:        month,
		Breakdown:    breakdown,
		TotalExpense: total,
	}, nil
}

// Monthly reports type totals and the expense breakdown for a month.
func (s *Service) Monthly(ctx context.Context, userID, month string) (*PeriodReport, error) {
	month, period, err := s.month(month)
	if err != nil {
		return nil, err
	}

	r, err := s.periodReport(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	r.Month = month
	return r, nil
}

// Yearly reports type totals and the expense breakdown for a calendar year.
func (s *Service) Yearly(ctx context.Context, userID, year string) (*PeriodReport, error) {
	if year == "" {
		year = strconv.Itoa(s.now().Year())
	}
	period, err := transaction.ParseYear(year)
	if err != nil {
		return nil, err
	}

	r, err := s.periodReport(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	r.Year = year
	return r, nil
}

func (s *Service) month(month string) (string, transaction.Period, error) {
	if month == "" {
		p := transaction.MonthOf(s.now())
		return p.Start.Format(transaction.MonthLayout), p, nil
	}
	p, err := transaction.ParseMonth(month)
	if err != nil {
		return "", transaction.Period{}, err
	}
	return month, p, nil
}

func (s *Service) periodReport(ctx context.Context, userID string, period transaction.Period) (*PeriodReport, error) {
	income, expense, count, err := s.typeTotals(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	breakdown, _, err := s.expenseBreakdown(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	return &PeriodReport{
		TotalIncome:       money.Round(income),
		TotalExpense:      money.Round(expense),
		NetBalance:        money.Sub(income, expense),
		TransactionCount:  count,
		CategoryBreakdown: breakdown,
	}, nil
}

func (s *Service) typeTotals(ctx context.Context, userID string, period transaction.Period) (income, expense float64, count int, err error) {
	totals, err := s.agg.SumByType(ctx, userID, period)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, t := range totals {
		switch t.Type {
		case transaction.TypeIncome:
			income = t.Total
		case transaction.TypeExpense:
			expense = t.Total
		}
		count += t.Count
	}
	return income, expense, count, nil
}

func (s *Service) expenseBreakdown(ctx context.Context, userID string, period transaction.Period) ([]CategoryAmount, float64, error) {
	totals, err := s.agg.SumByCategory(ctx, userID, transaction.TypeExpense, period)
	if err != nil {
		return nil, 0, err
	}

	breakdown := make([]CategoryAmount, 0, len(totals))
	values := make([]float64, 0, len(totals))
	for _, t := range totals {
		breakdown = append(breakdown, CategoryAmount{Category: t.Category, Total: money.Round(t.Total)})
		values = append(values, t.Total)
	}
	return breakdown, money.Sum(values...), nil
}
