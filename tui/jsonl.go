package tui

import (
	"encoding/json"
	"io"
)

// JSONLPresenter renders output as newline-delimited JSON. List-shaped
// reports emit one record per line.
type JSONLPresenter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONLPresenter creates a new JSONL presenter.
func NewJSONLPresenter(opts PresenterOptions) *JSONLPresenter {
	return &JSONLPresenter{
		w:       opts.Writer,
		encoder: json.NewEncoder(opts.Writer),
	}
}

func encodeEach[T any](enc *json.Encoder, items []T) error {
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// RenderStatus renders the tool status as JSONL.
func (p *JSONLPresenter) RenderStatus(status *StatusView) error {
	return p.encoder.Encode(status)
}

// RenderUsers renders users as JSONL (one per line).
func (p *JSONLPresenter) RenderUsers(users []*UserView) error {
	return encodeEach(p.encoder, users)
}

// RenderRoster renders roster rows as JSONL (one per line).
func (p *JSONLPresenter) RenderRoster(roster *RosterView) error {
	return encodeEach(p.encoder, roster.Employees)
}

// RenderEmployeeDetail renders the detail report as a single JSONL record.
func (p *JSONLPresenter) RenderEmployeeDetail(detail *EmployeeDetailView) error {
	return p.encoder.Encode(detail)
}

// RenderSessions renders sessions as JSONL (one per line).
func (p *JSONLPresenter) RenderSessions(sessions *SessionsView) error {
	return encodeEach(p.encoder, sessions.Sessions)
}

// RenderEvent renders a recorded event as JSONL.
func (p *JSONLPresenter) RenderEvent(event *EventView) error {
	return p.encoder.Encode(event)
}

// RenderOverview renders the per-day chart as JSONL (one day per line).
func (p *JSONLPresenter) RenderOverview(overview *OverviewView) error {
	return encodeEach(p.encoder, overview.HoursPerDay)
}

// RenderPolicy renders the timeout policy as JSONL.
func (p *JSONLPresenter) RenderPolicy(policy *PolicyView) error {
	return p.encoder.Encode(policy)
}

// RenderRetention renders retention results as JSONL.
func (p *JSONLPresenter) RenderRetention(retention *RetentionView) error {
	return p.encoder.Encode(retention)
}

// RenderDoctor renders the doctor check results as JSONL (one check per line).
func (p *JSONLPresenter) RenderDoctor(result *DoctorView) error {
	return encodeEach(p.encoder, result.Checks)
}

// RenderConfig renders the configuration as JSONL.
func (p *JSONLPresenter) RenderConfig(config *ConfigView) error {
	return p.encoder.Encode(config)
}

// RenderError renders an error as JSONL.
func (p *JSONLPresenter) RenderError(err error) error {
	return p.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a message as JSONL.
func (p *JSONLPresenter) RenderMessage(message string) error {
	return p.encoder.Encode(map[string]string{"message": message})
}

// Ensure JSONLPresenter implements Presenter
var _ Presenter = (*JSONLPresenter)(nil)
