package livelog

import (
	"strings"

	"github.com/safedep/presence/core/events"
)

const maxEvents = 1000

type eventListModel struct {
	items      []*events.Event
	names      []string
	lines      []string
	offset     int
	autoScroll bool
	filters    map[events.Status]bool
	user       string
}

func newEventListModel() eventListModel {
	return eventListModel{
		autoScroll: true,
		filters:    make(map[events.Status]bool),
	}
}

func (m *eventListModel) append(e *events.Event, name, line string) {
	m.items = append(m.items, e)
	m.names = append(m.names, name)
	m.lines = append(m.lines, line)

	if len(m.items) > maxEvents {
		drop := len(m.items) - maxEvents
		m.items = m.items[drop:]
		m.names = m.names[drop:]
		m.lines = m.lines[drop:]
		m.offset -= drop
		if m.offset < 0 {
			m.offset = 0
		}
	}
}

func (m *eventListModel) clear() {
	m.items = nil
	m.names = nil
	m.lines = nil
	m.offset = 0
	m.autoScroll = true
}

func (m *eventListModel) toggleFilter(status events.Status) {
	if m.filters[status] {
		delete(m.filters, status)
	} else {
		m.filters[status] = true
	}
}

func (m *eventListModel) clearFilters() {
	m.filters = make(map[events.Status]bool)
}

func (m eventListModel) visible(i int) bool {
	if len(m.filters) > 0 && !m.filters[m.items[i].Status] {
		return false
	}
	return m.user == "" || strings.EqualFold(m.names[i], m.user)
}

func (m eventListModel) filteredLines() []string {
	if len(m.filters) == 0 && m.user == "" {
		return m.lines
	}
	var result []string
	for i := range m.items {
		if m.visible(i) {
			result = append(result, m.lines[i])
		}
	}
	return result
}

func (m *eventListModel) scrollUp(n int) {
	m.autoScroll = false
	m.offset -= n
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *eventListModel) scrollDown(n int, viewHeight int) {
	lines := m.filteredLines()
	m.offset += n
	maxOffset := len(lines) - viewHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset >= maxOffset {
		m.offset = maxOffset
		m.autoScroll = true
	}
}

func (m *eventListModel) jumpToBottom(viewHeight int) {
	lines := m.filteredLines()
	m.offset = len(lines) - viewHeight
	if m.offset < 0 {
		m.offset = 0
	}
	m.autoScroll = true
}

func (m *eventListModel) jumpToTop() {
	m.offset = 0
	m.autoScroll = false
}

func (m eventListModel) view(height int) string {
	height = max(height, 0)
	lines := m.filteredLines()

	start := min(m.offset, len(lines))
	if m.autoScroll {
		start = max(len(lines)-height, 0)
	}
	end := min(start+height, len(lines))

	visible := append([]string(nil), lines[start:end]...)
	for len(visible) < height {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}
