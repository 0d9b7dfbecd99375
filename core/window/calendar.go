package window

import (
	"fmt"
	"strings"
	"time"
)

// DefaultLookback is the padding fetched before a reporting window so that
// sessions which began before the window are reconstructed in full.
const DefaultLookback = 24 * time.Hour

// DateFormat is the key format of a day bucket.
const DateFormat = "2006-01-02"

// Calendar resolves local day, week and month boundaries.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// NewCalendar creates a Calendar. A nil location means time.Local.
func NewCalendar(loc *time.Location, weekStart time.Weekday) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{Location: loc, WeekStart: weekStart}
}

// StartOfDay returns local midnight of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	lt := t.In(c.Location)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.Location)
}

// EndOfDay returns the next local midnight after the day containing t.
// Day windows are [StartOfDay, EndOfDay).
func (c Calendar) EndOfDay(t time.Time) time.Time {
	return c.StartOfDay(t).AddDate(0, 0, 1)
}

// StartOfWeek returns local midnight of the configured first weekday on or
// before t.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	day := c.StartOfDay(t)
	diff := (int(day.Weekday()) - int(c.WeekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// StartOfMonth returns local midnight of the first day of t's month.
func (c Calendar) StartOfMonth(t time.Time) time.Time {
	lt := t.In(c.Location)
	return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, c.Location)
}

// DaysBack returns local midnight n calendar days before the day of t.
func (c Calendar) DaysBack(t time.Time, n int) time.Time {
	return c.StartOfDay(t).AddDate(0, 0, -n)
}

// Day returns the [midnight, next midnight) window of the day containing t.
func (c Calendar) Day(t time.Time) Window {
	return Window{Start: c.StartOfDay(t), End: c.EndOfDay(t)}
}

// DateKey formats the local date of t.
func (c Calendar) DateKey(t time.Time) string {
	return t.In(c.Location).Format(DateFormat)
}

// PaddedStart returns the fetch start for a window beginning at t.
func PaddedStart(t time.Time, lookback time.Duration) time.Time {
	return t.Add(-lookback)
}

// ParseWeekday parses an English weekday name such as "monday" or "sun".
func ParseWeekday(s string) (time.Weekday, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if norm == name || norm == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", s)
}
