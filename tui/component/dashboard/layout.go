package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderPanel(title string, content string, width, height int) string {
	titleLine := panelTitleStyle.Render(title)
	body := titleLine + "\n" + content

	return panelStyle.
		Width(width - 2). // account for border
		Height(height).
		Render(body)
}

func renderBar(filled, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}
	filledW := (filled * width) / total
	if filledW > width {
		filledW = width
	}
	emptyW := width - filledW
	return strings.Repeat("█", filledW) + strings.Repeat("░", emptyW)
}

// renderVerticalChart draws values as columns rows high, stretched or
// sampled to width.
func renderVerticalChart(values []int, width, rows int) string {
	if len(values) == 0 || width <= 0 || rows <= 0 {
		return ""
	}

	blocks := []rune(" ▁▂▃▄▅▆▇█")
	subsPerRow := len(blocks) - 1

	peak := 0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	cols := make([]int, width)
	if peak > 0 {
		totalSubs := rows * subsPerRow
		for i := 0; i < width; i++ {
			bucket := (i * len(values)) / width
			if bucket >= len(values) {
				bucket = len(values) - 1
			}
			cols[i] = (values[bucket] * totalSubs) / peak
		}
	}

	var out strings.Builder
	for row := rows - 1; row >= 0; row-- {
		threshold := row * subsPerRow
		for col := 0; col < width; col++ {
			fill := cols[col] - threshold
			switch {
			case fill <= 0:
				out.WriteRune(blocks[0])
			case fill >= subsPerRow:
				out.WriteRune(blocks[subsPerRow])
			default:
				out.WriteRune(blocks[fill])
			}
		}
		if row > 0 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func twoColumnGrid(left, right string, width int) string {
	half := width / 2
	leftStyled := lipgloss.NewStyle().Width(half).Render(left)
	rightStyled := lipgloss.NewStyle().Width(width - half).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftStyled, rightStyled)
}

func singleColumnStack(panels ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}
