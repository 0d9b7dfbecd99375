package dashboard

type footerModel struct {
	lastError string
}

func newFooterModel() footerModel {
	return footerModel{}
}

func (f footerModel) view(width int) string {
	hints := " q quit  ? help  w week  m month  3 quarter  r refresh"
	if f.lastError != "" {
		hints += "  err: " + f.lastError
	}
	return footerStyle.Width(width).Render(hints)
}
