package tui

import (
	"encoding/json"
	"io"
)

// JSONPresenter renders output as JSON.
type JSONPresenter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONPresenter creates a new JSON presenter.
func NewJSONPresenter(opts PresenterOptions) *JSONPresenter {
	encoder := json.NewEncoder(opts.Writer)
	encoder.SetIndent("", "  ")
	return &JSONPresenter{
		w:       opts.Writer,
		encoder: encoder,
	}
}

// RenderStatus renders the tool status as JSON.
func (p *JSONPresenter) RenderStatus(status *StatusView) error {
	return p.encoder.Encode(status)
}

// RenderUsers renders a list of users as JSON.
func (p *JSONPresenter) RenderUsers(users []*UserView) error {
	if users == nil {
		users = []*UserView{}
	}
	return p.encoder.Encode(users)
}

// RenderRoster renders the employee roster as JSON.
func (p *JSONPresenter) RenderRoster(roster *RosterView) error {
	return p.encoder.Encode(roster)
}

// RenderEmployeeDetail renders the detail report as JSON.
func (p *JSONPresenter) RenderEmployeeDetail(detail *EmployeeDetailView) error {
	return p.encoder.Encode(detail)
}

// RenderSessions renders sessions as JSON.
func (p *JSONPresenter) RenderSessions(sessions *SessionsView) error {
	return p.encoder.Encode(sessions)
}

// RenderEvent renders a recorded event as JSON.
func (p *JSONPresenter) RenderEvent(event *EventView) error {
	return p.encoder.Encode(event)
}

// RenderOverview renders the overview as JSON.
func (p *JSONPresenter) RenderOverview(overview *OverviewView) error {
	return p.encoder.Encode(overview)
}

// RenderPolicy renders the timeout policy as JSON.
func (p *JSONPresenter) RenderPolicy(policy *PolicyView) error {
	return p.encoder.Encode(policy)
}

// RenderRetention renders retention results as JSON.
func (p *JSONPresenter) RenderRetention(retention *RetentionView) error {
	return p.encoder.Encode(retention)
}

// RenderDoctor renders the doctor check results as JSON.
func (p *JSONPresenter) RenderDoctor(result *DoctorView) error {
	return p.encoder.Encode(result)
}

// RenderConfig renders the configuration as JSON.
func (p *JSONPresenter) RenderConfig(config *ConfigView) error {
	return p.encoder.Encode(config)
}

// RenderError renders an error message as JSON.
func (p *JSONPresenter) RenderError(err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return p.encoder.Encode(output)
}

// RenderMessage renders a simple message as JSON.
func (p *JSONPresenter) RenderMessage(message string) error {
	output := struct {
		Message string `json:"message"`
	}{
		Message: message,
	}
	return p.encoder.Encode(output)
}

// Ensure JSONPresenter implements Presenter
var _ Presenter = (*JSONPresenter)(nil)
