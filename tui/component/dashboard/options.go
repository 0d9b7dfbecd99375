package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/safedep/presence/core/report"
)

// ChartRange is the number of days shown in the hours-per-day chart.
type ChartRange int

const (
	RangeWeek    ChartRange = 7
	RangeMonth   ChartRange = 30
	RangeQuarter ChartRange = 90
)

func (r ChartRange) String() string {
	switch r {
	case RangeWeek:
		return "7 Days"
	case RangeMonth:
		return "30 Days"
	case RangeQuarter:
		return "90 Days"
	default:
		return fmt.Sprintf("%d Days", int(r))
	}
}

// Reporter is the subset of the report engine the dashboard renders.
type Reporter interface {
	Overview(ctx context.Context, days int) (*report.Overview, error)
	Roster(ctx context.Context) (*report.Roster, error)
}

type Options struct {
	Reporter Reporter
	Range    ChartRange

	// Refresh is the auto-refresh interval. Zero uses the default.
	Refresh time.Duration
}
