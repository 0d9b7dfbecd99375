package tui

import (
	"time"
)

// StatusView represents the status output data.
type StatusView struct {
	Version  string           `json:"version"`
	Database DatabaseView     `json:"database"`
	Config   ConfigStatusView `json:"config"`
	Policy   PolicyView       `json:"policy"`
}

// DatabaseView represents database information.
type DatabaseView struct {
	Location    string    `json:"location"`
	SizeBytes   int64     `json:"size_bytes"`
	SizeHuman   string    `json:"size_human"`
	UserCount   int       `json:"user_count"`
	EventCount  int       `json:"event_count"`
	OldestEvent time.Time `json:"oldest_event"`
	NewestEvent time.Time `json:"newest_event"`
}

// ConfigStatusView represents configuration status.
type ConfigStatusView struct {
	Location        string    `json:"location"`
	Timezone        string    `json:"timezone"`
	WeekStart       string    `json:"week_start"`
	LookbackHours   int       `json:"lookback_hours"`
	RetentionDays   int       `json:"retention_days"`
	EventsToClean   int       `json:"events_to_clean"`  // Events that would be deleted by retention policy
	RetentionCutoff time.Time `json:"retention_cutoff"` // The cutoff date for retention
}

// PolicyView represents the inactivity timeout in effect.
type PolicyView struct {
	TimeoutMinutes int    `json:"timeout_minutes"`
	Source         string `json:"source"`
}

// UserView represents a tracked user for display.
type UserView struct {
	ID        string     `json:"id"`
	ShortID   string     `json:"short_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EmployeeRowView is one roster row.
type EmployeeRowView struct {
	User       UserView   `json:"user"`
	Status     string     `json:"status"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	TodayHours float64    `json:"today_hours"`
	WeekHours  float64    `json:"week_hours"`
}

// RosterView represents the status of every employee.
type RosterView struct {
	GeneratedAt    time.Time          `json:"generated_at"`
	TimeoutMinutes int                `json:"timeout_minutes"`
	InOffice       int                `json:"in_office"`
	Employees      []*EmployeeRowView `json:"employees"`
}

// SessionView represents one reconstructed session for display.
type SessionView struct {
	Start           time.Time     `json:"start"`
	End             time.Time     `json:"end"`
	Duration        time.Duration `json:"-"`
	DurationMinutes float64       `json:"duration_minutes"`
}

// EventView represents a raw presence event for display.
type EventView struct {
	ID        string    `json:"id"`
	ShortID   string    `json:"short_id"`
	UserName  string    `json:"user_name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// DayHoursView is one point of an hours-per-day chart.
type DayHoursView struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// SessionsView represents the sessions of one user over a range.
type SessionsView struct {
	User         UserView       `json:"user"`
	RangeStart   time.Time      `json:"range_start"`
	RangeEnd     time.Time      `json:"range_end"`
	Sessions     []*SessionView `json:"sessions"`
	TotalMinutes float64        `json:"total_minutes"`
	TotalHours   float64        `json:"total_hours"`
}

// EmployeeDetailView represents the per-user detail report.
type EmployeeDetailView struct {
	SessionsView
	GeneratedAt    time.Time      `json:"generated_at"`
	TimeoutMinutes int            `json:"timeout_minutes"`
	Status         string         `json:"status"`
	LastSeen       *time.Time     `json:"last_seen,omitempty"`
	TodayHours     float64        `json:"today_hours"`
	WeekHours      float64        `json:"week_hours"`
	MonthHours     float64        `json:"month_hours"`
	HoursPerDay    []DayHoursView `json:"hours_per_day"`
	Events         []*EventView   `json:"events"`
}

// OverviewView represents the population-level report.
type OverviewView struct {
	GeneratedAt       time.Time      `json:"generated_at"`
	TimeoutMinutes    int            `json:"timeout_minutes"`
	Days              int            `json:"days"`
	CurrentInOffice   int            `json:"current_in_office"`
	ActiveEmployees   int            `json:"active_employees"`
	TotalHoursToday   float64        `json:"total_hours_today"`
	AverageHoursToday float64        `json:"average_hours_today"`
	HoursPerDay       []DayHoursView `json:"hours_per_day"`
}

// RetentionView represents retention status or cleanup results.
type RetentionView struct {
	Enabled       bool      `json:"enabled"`
	RetentionDays int       `json:"retention_days"`
	Cutoff        time.Time `json:"cutoff"`
	EventsToClean int       `json:"events_to_clean"`
	Deleted       int       `json:"deleted"`
	DryRun        bool      `json:"dry_run"`
	Cleaned       bool      `json:"cleaned"`
}

// DoctorView represents doctor check results.
type DoctorView struct {
	Checks []DoctorCheck `json:"checks"`
	AllOK  bool          `json:"all_ok"`
}

// DoctorCheck represents a single doctor check.
type DoctorCheck struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// CheckStatus represents the status of a doctor check.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// ConfigView represents configuration for display.
type ConfigView struct {
	Location string                 `json:"location"`
	Values   map[string]interface{} `json:"values"`
}
