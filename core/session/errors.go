package session

import "errors"

var (
	// ErrInvalidOrdering is returned when events are not ascending by time.
	ErrInvalidOrdering = errors.New("events are not in ascending time order")

	// ErrInvalidPolicy is returned for a non-positive timeout or an
	// evaluation instant earlier than the last event.
	ErrInvalidPolicy = errors.New("invalid reconstruction policy")

	// ErrInvalidEvent is returned for a nil event or a status that cannot
	// be stored.
	ErrInvalidEvent = errors.New("invalid presence event")
)
