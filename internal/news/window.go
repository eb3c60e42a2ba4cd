package news

import "time"

const dateLayout = "2006-01-02"

// Window is an inclusive range of calendar days around a trade date.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow returns [tradeDate - days, tradeDate + days], truncated to whole days.
func NewWindow(tradeDate time.Time, days int) Window {
	d := time.Date(tradeDate.Year(), tradeDate.Month(), tradeDate.Day(), 0, 0, 0, 0, time.UTC)
	return Window{
		From: d.AddDate(0, 0, -days),
		To:   d.AddDate(0, 0, days),
	}
}

func (w Window) FromParam() string { return w.From.Format(dateLayout) }
func (w Window) ToParam() string   { return w.To.Format(dateLayout) }

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.From) && !day.After(w.To)
}
