package livelog

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/tui"
)

const (
	colTimeWidth = 8  // "15:04:05"
	colIconWidth = 1  // single symbol
	colNameMin   = 12 // shortest name column
	colNameMax   = 32
	colStatus    = 4 // "out " padded
	colIDWidth   = 8
	colSpacing   = 4
)

func fixedColumnsWidth() int {
	return colTimeWidth + colIconWidth + colStatus + colIDWidth + colSpacing
}

func nameWidth(feedWidth int) int {
	avail := feedWidth - fixedColumnsWidth()
	if avail < colNameMin {
		return colNameMin
	}
	if avail > colNameMax {
		return colNameMax
	}
	return avail
}

func displayName(names map[uuid.UUID]string, e *events.Event) string {
	if n, ok := names[e.UserID]; ok && n != "" {
		return n
	}
	return tui.FormatShortID(e.UserID.String())
}

func formatEvent(e *events.Event, name string, width int, loc *time.Location) string {
	st := statusStyleFor(e.Status)
	colored := lipgloss.NewStyle().Foreground(st.color)

	nw := nameWidth(width)

	ts := eventTimeStyle.Render(e.Timestamp.In(loc).Format("15:04:05"))
	icon := colored.Render(st.symbol)
	who := nameStyle.Render(tui.PadRight(tui.TruncateString(name, nw), nw))
	status := colored.Render(fmt.Sprintf("%-4s", e.Status.ShortName()))
	id := lipgloss.NewStyle().Foreground(colorDim).Render(tui.FormatShortID(e.ID.String()))

	return fmt.Sprintf("%s %s %s %s %s", ts, icon, who, status, id)
}
