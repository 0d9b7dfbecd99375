// Package dashboard is an auto-refreshing terminal view of the population
// overview and the employee roster.
package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultRefreshInterval = 30 * time.Second

type Model struct {
	opts   Options
	width  int
	height int

	header headerModel
	footer footerModel
	help   helpModel

	data       *Data
	chartRange ChartRange
	ready      bool
}

func New(opts Options) Model {
	if opts.Range <= 0 {
		opts.Range = RangeMonth
	}
	if opts.Refresh <= 0 {
		opts.Refresh = defaultRefreshInterval
	}
	return Model{
		opts:       opts,
		header:     newHeaderModel(opts.Range),
		footer:     newFooterModel(),
		help:       newHelpModel(),
		chartRange: opts.Range,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadData(m.opts.Reporter, m.chartRange),
		scheduleRefresh(m.opts.Refresh),
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

	case dataLoadedMsg:
		m.data = msg.data
		m.header.lastRefresh = time.Now()
		m.footer.lastError = ""
		return m, nil

	case dataErrorMsg:
		m.footer.lastError = msg.err.Error()
		return m, nil

	case tickMsg:
		return m, tea.Batch(
			loadData(m.opts.Reporter, m.chartRange),
			scheduleRefresh(m.opts.Refresh),
		)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.help.toggle()
		return m, nil

	case "w":
		return m.setChartRange(RangeWeek)
	case "m":
		return m.setChartRange(RangeMonth)
	case "3":
		return m.setChartRange(RangeQuarter)

	case "r":
		return m, loadData(m.opts.Reporter, m.chartRange)
	}

	return m, nil
}

func (m *Model) setChartRange(r ChartRange) (tea.Model, tea.Cmd) {
	m.chartRange = r
	m.header.chartRange = r
	return m, loadData(m.opts.Reporter, m.chartRange)
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.header.view(m.width)
	footer := m.footer.view(m.width)
	contentHeight := m.height - 2

	if m.help.visible {
		helpOverlay := m.help.view(m.width, contentHeight)
		return lipgloss.JoinVertical(lipgloss.Left, header, helpOverlay, footer)
	}

	if m.data == nil {
		placeholder := lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, "Loading presence...")
		return lipgloss.JoinVertical(lipgloss.Left, header, placeholder, footer)
	}

	var content string
	if m.width >= 80 {
		content = m.twoColumnLayout(contentHeight)
	} else {
		content = m.singleColumnLayout()
	}

	content = lipgloss.NewStyle().Width(m.width).Height(contentHeight).MaxHeight(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m Model) twoColumnLayout(height int) string {
	half := m.width / 2
	topH := 8
	rosterH := height - topH - 4
	if rosterH < 4 {
		rosterH = 4
	}

	row1 := twoColumnGrid(
		renderOverview(m.data, half, topH),
		renderHoursChart(m.data, m.width-half, topH),
		m.width,
	)

	return singleColumnStack(row1, renderRoster(m.data, m.width, rosterH))
}

func (m Model) singleColumnLayout() string {
	w := m.width
	panelH := 8

	return singleColumnStack(
		renderOverview(m.data, w, panelH),
		renderHoursChart(m.data, w, panelH),
		renderRoster(m.data, w, panelH),
	)
}

func loadData(reporter Reporter, r ChartRange) tea.Cmd {
	return func() tea.Msg {
		data, err := computeData(context.Background(), reporter, r)
		if err != nil {
			return dataErrorMsg{err: err}
		}
		return dataLoadedMsg{data: data}
	}
}

func scheduleRefresh(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
