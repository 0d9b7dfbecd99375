package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single presence ping for one user. Events are immutable facts;
// nothing in this module ever rewrites one.
type Event struct {
	// ID is the unique identifier for this event.
	ID uuid.UUID `json:"id"`
	// UserID is the user the ping belongs to.
	UserID uuid.UUID `json:"user_id"`
	// Timestamp is when the ping was observed.
	Timestamp time.Time `json:"timestamp"`
	// Status is the reported presence state.
	Status Status `json:"status"`
}

// NewEvent creates a new Event with a generated UUID at the given instant.
func NewEvent(userID uuid.UUID, status Status, at time.Time) *Event {
	return &Event{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: at.UTC(),
		Status:    status,
	}
}

// User is a tracked person or an administrator.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewUser creates an active user with a generated UUID.
func NewUser(name, email string, role Role) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// IsDeleted returns true if the user was soft deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// UserFilter provides filtering criteria for listing users.
type UserFilter struct {
	// Role filters by role. Empty means any role.
	Role Role
	// ActiveOnly excludes deactivated users.
	ActiveOnly bool
	// IncludeDeleted includes soft deleted users.
	IncludeDeleted bool
}

// NewUserFilter creates a UserFilter that lists every non-deleted user.
func NewUserFilter() *UserFilter {
	return &UserFilter{}
}

// WithRole sets the Role filter.
func (f *UserFilter) WithRole(role Role) *UserFilter {
	f.Role = role
	return f
}

// WithActiveOnly restricts the listing to active users.
func (f *UserFilter) WithActiveOnly() *UserFilter {
	f.ActiveOnly = true
	return f
}

// WithDeleted includes soft deleted users.
func (f *UserFilter) WithDeleted() *UserFilter {
	f.IncludeDeleted = true
	return f
}
