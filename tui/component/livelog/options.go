package livelog

import (
	"context"
	"time"

	"github.com/safedep/presence/core/events"
)

// Source is the part of the store the live feed reads.
type Source interface {
	RecentEvents(ctx context.Context, since time.Time, limit int) ([]*events.Event, error)
	EventsSince(ctx context.Context, since time.Time, limit int) ([]*events.Event, error)
	ListUsers(ctx context.Context, filter *events.UserFilter) ([]*events.User, error)
}

type Options struct {
	Store        Source
	PollInterval time.Duration
	UserFilter   string
	InitialLimit int
	Since        time.Time
	Location     *time.Location
}

func (o Options) pollInterval() time.Duration {
	if o.PollInterval > 0 {
		return o.PollInterval
	}
	return 2 * time.Second
}

func (o Options) initialLimit() int {
	if o.InitialLimit > 0 {
		return o.InitialLimit
	}
	return 50
}

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}
