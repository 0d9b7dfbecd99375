package dashboard

import (
	"fmt"
	"strings"

	"github.com/safedep/presence/tui"
)

func renderOverview(data *Data, width, height int) string {
	o := data.Overview
	var b strings.Builder

	pairs := []struct {
		label string
		value string
	}{
		{"In office", tui.FormatNumber(o.CurrentInOffice)},
		{"Employees", tui.FormatNumber(o.ActiveEmployeesCount)},
		{"Today", tui.FormatHours(o.TotalHoursToday)},
		{"Average", tui.FormatHours(o.AverageHoursToday)},
		{"Timeout", fmt.Sprintf("%dm", o.TimeoutMinutes)},
	}

	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			labelStyle.Width(10).Render(p.label),
			valueStyle.Render(p.value),
		))
	}

	if o.ActiveEmployeesCount > 0 {
		bar := greenValueStyle.Render(renderBar(o.CurrentInOffice, o.ActiveEmployeesCount, 20))
		b.WriteString(fmt.Sprintf("  %s  %s\n", labelStyle.Width(10).Render("Presence"), bar))
	}

	return renderPanel("OVERVIEW", b.String(), width, height)
}

func renderHoursChart(data *Data, width, height int) string {
	days := data.Overview.HoursPerDay
	if len(days) == 0 {
		return renderPanel("HOURS PER DAY", labelStyle.Render("  no data"), width, height)
	}

	values := make([]int, len(days))
	peak := 0.0
	for i, d := range days {
		values[i] = int(d.Hours * 60)
		if d.Hours > peak {
			peak = d.Hours
		}
	}

	chartW := width - 6
	if chartW < 10 {
		chartW = 10
	}
	rows := height - 3
	if rows < 2 {
		rows = 2
	}

	var b strings.Builder
	b.WriteString(chartStyle.Render(renderVerticalChart(values, chartW, rows)))
	b.WriteByte('\n')

	first, last := days[0].Date, days[len(days)-1].Date
	gap := chartW - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(labelStyle.Render(first + strings.Repeat(" ", gap) + last))
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("peak " + tui.FormatHours(peak)))

	return renderPanel("HOURS PER DAY", b.String(), width, height)
}
