package tui

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Foreground colors
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"

	// Bold variants
	BoldWhite = "\033[1;37m"
)

// Presence status names as stored. Kept here so tui does not depend on the
// domain packages.
const (
	statusIn      = "IN_OFFICE"
	statusOut     = "OUT_OF_OFFICE"
	statusUnknown = "UNKNOWN"
)

// Colorizer wraps text with ANSI color codes if colors are enabled.
type Colorizer struct {
	enabled bool
}

// NewColorizer creates a new Colorizer.
func NewColorizer(enabled bool) *Colorizer {
	return &Colorizer{enabled: enabled}
}

// Apply applies the given color to the text.
func (c *Colorizer) Apply(color, text string) string {
	if !c.enabled {
		return text
	}
	return color + text + Reset
}

// Header formats text as a header.
func (c *Colorizer) Header(text string) string {
	return c.Apply(BoldWhite, text)
}

// Name formats a person's name.
func (c *Colorizer) Name(text string) string {
	return c.Apply(Cyan, text)
}

// Path formats a file path.
func (c *Colorizer) Path(text string) string {
	return c.Apply(Blue, text)
}

// Success formats success text.
func (c *Colorizer) Success(text string) string {
	return c.Apply(Green, text)
}

// Error formats error text.
func (c *Colorizer) Error(text string) string {
	return c.Apply(Red, text)
}

// Warning formats warning text.
func (c *Colorizer) Warning(text string) string {
	return c.Apply(Yellow, text)
}

// Dim formats secondary/dim text.
func (c *Colorizer) Dim(text string) string {
	return c.Apply(Gray, text)
}

// Number formats numbers/stats.
func (c *Colorizer) Number(text string) string {
	return c.Apply(Yellow, text)
}

// Status formats a presence status with its display label.
func (c *Colorizer) Status(status string) string {
	return c.Apply(statusColor(status), StatusLabel(status))
}

// StatusPadded formats a presence status padded to width before coloring,
// so table columns stay aligned.
func (c *Colorizer) StatusPadded(status string, width int) string {
	return c.Apply(statusColor(status), PadRight(StatusLabel(status), width))
}

// StatusLabel returns the display label of a presence status.
func StatusLabel(status string) string {
	switch status {
	case statusIn:
		return "in office"
	case statusOut:
		return "out"
	case statusUnknown:
		return "unknown"
	default:
		return status
	}
}

func statusColor(status string) string {
	switch status {
	case statusIn:
		return Green
	case statusUnknown:
		return Yellow
	default:
		return Gray
	}
}
