package livelog

import (
	"fmt"
	"time"
)

type headerModel struct {
	userFilter  string
	peopleCount int
}

func newHeaderModel(userFilter string) headerModel {
	return headerModel{userFilter: userFilter}
}

func (h headerModel) view(width int, now time.Time) string {
	title := "presence live"

	who := "everyone"
	if h.userFilter != "" {
		who = h.userFilter
	}

	clock := now.Format("15:04:05")
	people := fmt.Sprintf("%d people", h.peopleCount)

	content := fmt.Sprintf(" %s | %s | %s | %s", title, who, people, clock)
	return headerStyle.Width(width).Render(content)
}
