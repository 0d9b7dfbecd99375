package livelog

import (
	"time"

	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
)

type newEventsMsg struct {
	events []*events.Event
	names  map[uuid.UUID]string
}

type pollErrorMsg struct {
	err error
}

type tickMsg time.Time
