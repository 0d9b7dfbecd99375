// Package livelog implements the live feed of presence pings.
package livelog

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
)

type Model struct {
	opts   Options
	width  int
	height int

	header    headerModel
	footer    footerModel
	stats     statsModel
	eventList eventListModel
	help      helpModel

	names map[uuid.UUID]string

	// cursor is the newest timestamp shown. Polls re-read it and skip the
	// events in atCursor, so pings sharing a millisecond are not lost.
	cursor   time.Time
	atCursor map[uuid.UUID]bool

	showSidebar bool
	paused      bool
	ready       bool
}

func New(opts Options) Model {
	if opts.Since.IsZero() {
		opts.Since = time.Now().Add(-24 * time.Hour)
	}

	list := newEventListModel()
	list.user = opts.UserFilter

	return Model{
		opts:        opts,
		header:      newHeaderModel(opts.UserFilter),
		footer:      newFooterModel(),
		stats:       newStatsModel(),
		eventList:   list,
		help:        newHelpModel(),
		names:       make(map[uuid.UUID]string),
		cursor:      opts.Since,
		atCursor:    make(map[uuid.UUID]bool),
		showSidebar: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadInitialEvents(m.opts.Store, m.opts.Since, m.opts.initialLimit()),
		schedulePoll(m.opts.pollInterval()),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case newEventsMsg:
		for id, name := range msg.names {
			m.names[id] = name
		}
		m.ingest(msg.events)
		m.footer.lastError = ""
		return m, nil

	case tickMsg:
		if m.paused {
			return m, schedulePoll(m.opts.pollInterval())
		}
		return m, tea.Batch(
			pollEvents(m.opts.Store, m.cursor),
			schedulePoll(m.opts.pollInterval()),
		)

	case pollErrorMsg:
		m.footer.lastError = msg.err.Error()
		return m, nil
	}

	return m, nil
}

// ingest appends the events not shown yet and advances the cursor.
func (m *Model) ingest(evts []*events.Event) {
	for _, e := range evts {
		if e.Timestamp.Before(m.cursor) || m.atCursor[e.ID] {
			continue
		}
		if e.Timestamp.After(m.cursor) {
			m.cursor = e.Timestamp
			m.atCursor = make(map[uuid.UUID]bool)
		}
		m.atCursor[e.ID] = true

		name := displayName(m.names, e)
		m.stats.record(e, name)
		m.eventList.append(e, name, formatEvent(e, name, m.feedWidth(), m.opts.location()))
	}
	m.header.peopleCount = len(m.stats.lastPing)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "p", " ":
		m.paused = !m.paused
		m.footer.paused = m.paused
		return m, nil

	case "?":
		m.help.toggle()
		return m, nil

	case "up", "k":
		m.eventList.scrollUp(1)
		m.footer.scrollLock = !m.eventList.autoScroll
		return m, nil

	case "down", "j":
		m.eventList.scrollDown(1, m.feedHeight())
		m.footer.scrollLock = !m.eventList.autoScroll
		return m, nil

	case "pgup":
		m.eventList.scrollUp(m.feedHeight())
		m.footer.scrollLock = !m.eventList.autoScroll
		return m, nil

	case "pgdown":
		m.eventList.scrollDown(m.feedHeight(), m.feedHeight())
		m.footer.scrollLock = !m.eventList.autoScroll
		return m, nil

	case "G", "end":
		m.eventList.jumpToBottom(m.feedHeight())
		m.footer.scrollLock = false
		return m, nil

	case "g", "home":
		m.eventList.jumpToTop()
		m.footer.scrollLock = true
		return m, nil

	case "1":
		m.eventList.toggleFilter(events.StatusInOffice)
		return m, nil
	case "2":
		m.eventList.toggleFilter(events.StatusOutOfOffice)
		return m, nil
	case "0":
		m.eventList.clearFilters()
		return m, nil

	case "u":
		m.cycleUserFilter()
		return m, nil

	case "c":
		m.eventList.clear()
		return m, nil

	case "s":
		m.showSidebar = !m.showSidebar
		return m, nil
	}

	return m, nil
}

// cycleUserFilter steps through everyone seen so far, then back to all.
func (m *Model) cycleUserFilter() {
	cycle := append([]string{""}, m.stats.people()...)

	next := ""
	for i, name := range cycle {
		if name == m.eventList.user {
			next = cycle[(i+1)%len(cycle)]
			break
		}
	}

	m.eventList.user = next
	m.header.userFilter = next
}

func (m Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= 80
}

func (m Model) feedWidth() int {
	if m.sidebarVisible() {
		return m.width - sidebarWidth
	}
	return m.width
}

func (m Model) feedHeight() int {
	return m.height - 2 // header + footer
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.header.view(m.width, time.Now().In(m.opts.location()))
	footer := m.footer.view(m.width)

	contentHeight := m.feedHeight()

	if m.help.visible {
		helpOverlay := m.help.view(m.width, contentHeight)
		return lipgloss.JoinVertical(lipgloss.Left, header, helpOverlay, footer)
	}

	feedW := m.feedWidth()
	feed := lipgloss.NewStyle().Width(feedW).Render(
		m.eventList.view(contentHeight),
	)

	var content string
	if m.sidebarVisible() {
		sidebar := m.stats.view(contentHeight)
		content = lipgloss.JoinHorizontal(lipgloss.Top, feed, sidebar)
	} else {
		content = feed
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
