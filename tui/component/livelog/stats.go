package livelog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/tui"
)

const sidebarWidth = 26

type statsModel struct {
	totalEvents int
	byStatus    map[events.Status]int
	lastPing    map[string]events.Status
	recentTimes []time.Time
}

func newStatsModel() statsModel {
	return statsModel{
		byStatus: make(map[events.Status]int),
		lastPing: make(map[string]events.Status),
	}
}

func (s *statsModel) record(e *events.Event, name string) {
	s.totalEvents++
	s.byStatus[e.Status]++
	s.lastPing[name] = e.Status
	s.recentTimes = append(s.recentTimes, e.Timestamp)
	if len(s.recentTimes) > 120 {
		s.recentTimes = s.recentTimes[1:]
	}
}

func (s *statsModel) eventsPerMinute() int {
	if len(s.recentTimes) < 2 {
		return 0
	}
	first := s.recentTimes[0]
	last := s.recentTimes[len(s.recentTimes)-1]
	dur := last.Sub(first)
	if dur < time.Second {
		return 0
	}
	return int(float64(len(s.recentTimes)) / dur.Minutes())
}

// people returns every name seen so far, sorted.
func (s statsModel) people() []string {
	names := make([]string, 0, len(s.lastPing))
	for n := range s.lastPing {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s statsModel) view(height int) string {
	var b strings.Builder

	b.WriteString(sidebarHeaderStyle.Render("Stats"))
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf(" Pings: %s\n", sidebarValueStyle.Render(fmt.Sprintf("%d", s.totalEvents))))
	b.WriteString(fmt.Sprintf(" Rate:  %s\n", sidebarValueStyle.Render(fmt.Sprintf("%d/min", s.eventsPerMinute()))))
	b.WriteByte('\n')

	b.WriteString(sidebarHeaderStyle.Render("By Status"))
	b.WriteByte('\n')
	for _, st := range []events.Status{events.StatusInOffice, events.StatusOutOfOffice} {
		style := statusStyleFor(st)
		label := fmt.Sprintf(" %s %-4s", style.symbol, st.ShortName())
		b.WriteString(fmt.Sprintf("%s %s\n",
			sidebarLabelStyle.Render(label),
			sidebarValueStyle.Render(fmt.Sprintf("%d", s.byStatus[st]))))
	}
	b.WriteByte('\n')

	b.WriteString(sidebarHeaderStyle.Render("Last Ping"))
	b.WriteByte('\n')
	for _, name := range s.people() {
		st := statusStyleFor(s.lastPing[name])
		b.WriteString(fmt.Sprintf(" %s %s\n",
			lipgloss.NewStyle().Foreground(st.color).Render(st.symbol),
			tui.TruncateString(name, sidebarWidth-6)))
	}

	return sidebarStyle.Width(sidebarWidth).Height(height).Render(b.String())
}
