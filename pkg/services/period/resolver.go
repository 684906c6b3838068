package period

import (
	"time"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
)

// Resolver maps a named report period to a concrete calendar-day window.
// It is stateless; construct one at process start and share it.
type Resolver struct {
	now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Resolve returns the inclusive window for the requested period. The
// "custom" period requires both explicit bounds. An unrecognized period
// name falls back to the last 30 days through today.
func (r *Resolver) Resolve(p domain.ReportPeriod, start, end *time.Time) (domain.Window, error) {
	today := truncateDay(r.now())

	switch p {
	case domain.PeriodToday:
		return domain.Window{Start: today, End: today}, nil

	case domain.PeriodWeek:
		// ISO week, Monday through Sunday.
		monday := today.AddDate(0, 0, -mondayOffset(today.Weekday()))
		return domain.Window{Start: monday, End: monday.AddDate(0, 0, 6)}, nil

	case domain.PeriodMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		// First day of the next month minus one day lands on the correct
		// month end for 28/29/30/31-day months.
		last := first.AddDate(0, 1, -1)
		return domain.Window{Start: first, End: last}, nil

	case domain.PeriodQuarter:
		quarterStart := time.Month(((int(today.Month())-1)/3)*3 + 1)
		first := time.Date(today.Year(), quarterStart, 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 3, -1)
		return domain.Window{Start: first, End: last}, nil

	case domain.PeriodYear:
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		last := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location())
		return domain.Window{Start: first, End: last}, nil

	case domain.PeriodCustom:
		if start == nil || end == nil {
			return domain.Window{}, domain.NewValidationError(
				"period", "custom period requires both start_date and end_date")
		}
		if end.Before(*start) {
			return domain.Window{}, domain.NewValidationError(
				"end_date", "end_date precedes start_date")
		}
		return domain.NewWindow(*start, *end), nil

	default:
		return domain.Window{Start: today.AddDate(0, 0, -30), End: today}, nil
	}
}

// mondayOffset converts Go's Sunday-based weekday to days since Monday.
func mondayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
