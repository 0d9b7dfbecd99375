// Package storage provides database storage interfaces and implementations.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")

	// ErrAmbiguous is returned when a user reference matches several users.
	ErrAmbiguous = errors.New("reference matches more than one user")
)

// UserStore defines the interface for storing and querying tracked users.
type UserStore interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user *events.User) error

	// GetUser retrieves a user by ID. Returns nil if the user does not exist.
	GetUser(ctx context.Context, id uuid.UUID) (*events.User, error)

	// GetUserByEmail retrieves a user by email. Returns nil if not found.
	GetUserByEmail(ctx context.Context, email string) (*events.User, error)

	// FindUser resolves a user by ID, ID prefix, email or exact name.
	FindUser(ctx context.Context, ref string) (*events.User, error)

	// ListUsers retrieves users matching the filter ordered by name.
	ListUsers(ctx context.Context, filter *events.UserFilter) ([]*events.User, error)

	// SetUserActive activates or deactivates a user.
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error

	// SoftDeleteUser marks a user as deleted. Its events are kept.
	SoftDeleteUser(ctx context.Context, id uuid.UUID, at time.Time) error
}

// EventStore defines the interface for storing and querying presence events.
type EventStore interface {
	// SaveEvent persists a new presence event.
	SaveEvent(ctx context.Context, event *events.Event) error

	// EventsForUser returns the events of one user with from <= ts <= to,
	// ordered ascending.
	EventsForUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*events.Event, error)

	// EventsForUsers returns the events of several users with
	// from <= ts <= to, grouped by user and ordered ascending.
	EventsForUsers(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]*events.Event, error)

	// EventsSince returns up to limit events of all users with ts >= since,
	// ordered ascending.
	EventsSince(ctx context.Context, since time.Time, limit int) ([]*events.Event, error)

	// RecentEvents returns the newest limit events of all users with
	// ts >= since, ordered ascending.
	RecentEvents(ctx context.Context, since time.Time, limit int) ([]*events.Event, error)

	// CountEvents returns the count of events matching the given filter.
	CountEvents(ctx context.Context, filter *EventFilter) (int, error)

	// LastEvent returns the most recent event of a user, or nil.
	LastEvent(ctx context.Context, userID uuid.UUID) (*events.Event, error)

	// DeleteEventsBefore deletes events older than the given time.
	DeleteEventsBefore(ctx context.Context, before time.Time) (int, error)

	// CountEventsBefore returns the count of events older than the given time.
	CountEventsBefore(ctx context.Context, before time.Time) (int, error)
}

// SettingsStore holds tenant-wide settings.
type SettingsStore interface {
	// SessionTimeoutMinutes returns the stored inactivity timeout, falling
	// back to the store's default when none was set.
	SessionTimeoutMinutes(ctx context.Context) (int, error)

	// SetSessionTimeoutMinutes stores the inactivity timeout.
	SetSessionTimeoutMinutes(ctx context.Context, minutes int) error
}

// Store combines all storage interfaces.
type Store interface {
	UserStore
	EventStore
	SettingsStore

	// Init initializes the database schema.
	Init(ctx context.Context) error

	// Info returns information about the database.
	Info(ctx context.Context) (*DatabaseInfo, error)

	// Close closes the database connection.
	Close() error
}

// EventFilter provides filtering for event counts.
type EventFilter struct {
	UserID *uuid.UUID
	Since  *time.Time
	Until  *time.Time
}

// DatabaseInfo contains information about the database.
type DatabaseInfo struct {
	Path        string
	SizeBytes   int64
	UserCount   int
	EventCount  int
	OldestEvent time.Time
	NewestEvent time.Time
}
