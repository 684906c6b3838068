package domain

import "time"

// Window is an inclusive [Start, End] calendar-day interval used to scope
// metric computation. Both bounds are dates at local midnight.
type Window struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

func NewWindow(start, end time.Time) Window {
	return Window{Start: truncateDay(start), End: truncateDay(end)}
}

// Days returns the number of calendar days the window spans, inclusive.
// The count is taken on calendar dates, not wall-clock durations, so DST
// transitions inside the window do not skew it.
func (w Window) Days() int {
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// Previous returns the window of identical length immediately preceding this
// one: inclusive end = Start - 1 day, start shifted back by the same number
// of calendar days.
func (w Window) Previous() Window {
	return Window{
		Start: w.Start.AddDate(0, 0, -w.Days()),
		End:   w.Start.AddDate(0, 0, -1),
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
