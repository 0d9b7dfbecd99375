package livelog

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
)

const pollLimit = 100

func pollEvents(store Source, since time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		evts, err := store.EventsSince(ctx, since, pollLimit)
		if err != nil {
			return pollErrorMsg{err: err}
		}
		return withNames(ctx, store, evts)
	}
}

func loadInitialEvents(store Source, since time.Time, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		evts, err := store.RecentEvents(ctx, since, limit)
		if err != nil {
			return pollErrorMsg{err: err}
		}
		return withNames(ctx, store, evts)
	}
}

// withNames resolves display names for a batch. Deleted users keep their
// name so their historic pings stay readable.
func withNames(ctx context.Context, store Source, evts []*events.Event) tea.Msg {
	if len(evts) == 0 {
		return newEventsMsg{}
	}

	users, err := store.ListUsers(ctx, events.NewUserFilter().WithDeleted())
	if err != nil {
		return pollErrorMsg{err: err}
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return newEventsMsg{events: evts, names: names}
}

func schedulePoll(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
