package dashboard

import (
	"fmt"
	"time"
)

type headerModel struct {
	chartRange  ChartRange
	lastRefresh time.Time
}

func newHeaderModel(r ChartRange) headerModel {
	return headerModel{chartRange: r}
}

func (h headerModel) view(width int) string {
	refresh := ""
	if !h.lastRefresh.IsZero() {
		refresh = fmt.Sprintf("Refreshed %s", h.lastRefresh.Local().Format("15:04"))
	}

	content := fmt.Sprintf(" presence dashboard │ %s │ %s", h.chartRange, refresh)
	return titleStyle.Width(width).Render(content)
}
