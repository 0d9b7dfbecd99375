package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/safedep/presence/tui"
)

func renderRoster(data *Data, width, height int) string {
	r := data.Roster
	title := fmt.Sprintf("EMPLOYEES (%d in office)", r.InOffice())

	if len(r.Entries) == 0 {
		return renderPanel(title, labelStyle.Render("  no employees"), width, height)
	}

	nameW := width - 46
	if nameW < 10 {
		nameW = 10
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-*s %-10s %-16s %7s %7s",
		nameW, "Name", "Status", "Last seen", "Today", "Week")))
	b.WriteByte('\n')

	limit := height - 2
	for i, e := range r.Entries {
		if limit > 0 && i >= limit {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  … %d more", len(r.Entries)-i)))
			b.WriteByte('\n')
			break
		}

		status := lipgloss.NewStyle().Foreground(statusColor(e.Status)).
			Render(tui.PadRight(tui.StatusLabel(e.Status.String()), 10))

		b.WriteString(fmt.Sprintf("  %s %s %-16s %7s %7s\n",
			valueStyle.Render(tui.PadRight(tui.TruncateString(e.User.Name, nameW), nameW)),
			status,
			tui.TruncateString(tui.FormatLastSeen(e.LastSeen, r.GeneratedAt), 16),
			tui.FormatHours(e.TodayHours),
			tui.FormatHours(e.WeekHours),
		))
	}

	return renderPanel(title, b.String(), width, height)
}
