package window

import (
	"sort"
	"time"

	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/session"
)

// DayBucket is the presence total for one local calendar day.
type DayBucket struct {
	Date    string    `json:"date"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Minutes float64   `json:"minutes"`
}

// Hours returns the bucket total in hours rounded to one decimal place.
func (b DayBucket) Hours() float64 {
	return RoundHours(b.Minutes)
}

// DailyMinutes computes one bucket per local day for the days days ending
// with the day of now, oldest first.
//
// The events up to now are reconstructed once, evaluated at now, and the
// resulting sessions are clipped to every day. A session crossing midnight
// is split at the day boundary and its parts add up to the whole session.
// evts must be ascending and should cover
// [DaysBack(now, days-1)-lookback, now].
func DailyMinutes(evts []*events.Event, days int, now time.Time, timeoutMinutes int, cal Calendar) ([]DayBucket, error) {
	if err := session.CheckOrder(evts); err != nil {
		return nil, err
	}

	res, err := session.Reconstruct(until(evts, now), now, timeoutMinutes)
	if err != nil {
		return nil, err
	}

	buckets := make([]DayBucket, 0, max(days, 0))
	for i := days - 1; i >= 0; i-- {
		day := cal.DaysBack(now, i)
		dayEnd := cal.EndOfDay(day)

		w := Window{Start: day, End: dayEnd}
		buckets = append(buckets, DayBucket{
			Date:    cal.DateKey(day),
			Start:   day,
			End:     dayEnd,
			Minutes: SumDurationMinutes(w.Clip(res.Sessions)),
		})
	}

	return buckets, nil
}

// until returns the prefix of ascending events with ts <= t.
func until(evts []*events.Event, t time.Time) []*events.Event {
	n := sort.Search(len(evts), func(i int) bool {
		return evts[i].Timestamp.After(t)
	})
	return evts[:n]
}

// TotalMinutes sums the minutes of every bucket.
func TotalMinutes(buckets []DayBucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Minutes
	}
	return total
}
