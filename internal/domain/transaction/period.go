package transaction

import (
	"strconv"
	"time"

	"finman/internal/domain"
)

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) StartDate() string { return p.Start.Format(DateLayout) }
func (p Period) EndDate() string   { return p.End.Format(DateLayout) }

// Contains reports whether a YYYY-MM-DD date lies inside the period.
func (p Period) Contains(date string) bool {
	return date >= p.StartDate() && date <= p.EndDate()
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// ParseMonth parses a YYYY-MM month into its period.
func ParseMonth(month string) (Period, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return Period{}, domain.Validation("month must be in YYYY-MM format")
	}
	return MonthOf(t), nil
}

// ParseYear parses a four-digit year into its period.
func ParseYear(year string) (Period, error) {
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 || y < 1 {
		return Period{}, domain.Validation("year must be a four-digit number")
	}
	return Period{
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// ParseRange builds a period from two YYYY-MM-DD bounds.
func ParseRange(start, end string) (Period, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Period{}, domain.Validation("start_date must be in YYYY-MM-DD format")
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Period{}, domain.Validation("end_date must be in YYYY-MM-DD format")
	}
	if e.Before(s) {
		return Period{}, domain.Validation("start_date cannot be after end_date")
	}
	return Period{Start: s, End: e}, nil
}
