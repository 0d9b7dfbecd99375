// Package tui provides the presentation layer for terminal output.
package tui

import (
	"io"
	"os"
	"time"
)

// Format represents the output format.
type Format string

const (
	// FormatTable is the default table format.
	FormatTable Format = "table"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
	// FormatJSONL is newline-delimited JSON format.
	FormatJSONL Format = "jsonl"
	// FormatCSV is CSV format.
	FormatCSV Format = "csv"
)

// Presenter defines the interface for output rendering.
type Presenter interface {
	// RenderStatus renders the tool status.
	RenderStatus(status *StatusView) error

	// RenderUsers renders a list of tracked users.
	RenderUsers(users []*UserView) error

	// RenderRoster renders the employee roster.
	RenderRoster(roster *RosterView) error

	// RenderEmployeeDetail renders the detail report of one user.
	RenderEmployeeDetail(detail *EmployeeDetailView) error

	// RenderSessions renders the reconstructed sessions of one user.
	RenderSessions(sessions *SessionsView) error

	// RenderEvent renders a single recorded event.
	RenderEvent(event *EventView) error

	// RenderOverview renders the population overview.
	RenderOverview(overview *OverviewView) error

	// RenderPolicy renders the inactivity timeout policy.
	RenderPolicy(policy *PolicyView) error

	// RenderRetention renders retention status or cleanup results.
	RenderRetention(retention *RetentionView) error

	// RenderDoctor renders the doctor check results.
	RenderDoctor(result *DoctorView) error

	// RenderConfig renders the configuration.
	RenderConfig(config *ConfigView) error

	// RenderError renders an error message.
	RenderError(err error) error

	// RenderMessage renders a simple message.
	RenderMessage(message string) error
}

// PresenterOptions configures presenter behavior.
type PresenterOptions struct {
	// Writer is the output destination.
	Writer io.Writer
	// UseColors indicates if colors should be used.
	UseColors bool
	// Verbose increases output verbosity.
	Verbose bool
	// TerminalWidth is the width of the terminal for table rendering.
	// If 0, the width will be auto-detected.
	TerminalWidth int
	// Location is the zone instants are displayed in. Defaults to local.
	Location *time.Location
}

// NewPresenter creates a new presenter for the given format.
func NewPresenter(format Format, opts PresenterOptions) Presenter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatJSON:
		return NewJSONPresenter(opts)
	case FormatJSONL:
		return NewJSONLPresenter(opts)
	case FormatCSV:
		return NewCSVPresenter(opts)
	default:
		return NewTablePresenter(opts)
	}
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatJSONL, FormatCSV:
		return f, true
	default:
		return "", false
	}
}
