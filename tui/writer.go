package tui

import (
	"fmt"
	"io"
)

// fieldLabelWidth aligns the values of label/value lines in reports.
const fieldLabelWidth = 16

// tableWriter wraps an io.Writer and captures the first write error,
// skipping all subsequent writes after an error occurs.
type tableWriter struct {
	w   io.Writer
	err error
}

// printf writes a formatted string, doing nothing if a prior write failed.
func (tw *tableWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// println writes arguments followed by a newline, doing nothing if a prior write failed.
func (tw *tableWriter) println(args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, args...)
}

// section writes a title line underlined with a rule of the given width.
func (tw *tableWriter) section(title string, width int) {
	tw.printf("%s\n", title)
	tw.println(HorizontalLine(width))
}

// field writes one aligned label/value line.
func (tw *tableWriter) field(label string, value any) {
	tw.printf("%-*s %v\n", fieldLabelWidth, label, value)
}

// Err returns the first error encountered during any write, or nil.
func (tw *tableWriter) Err() error {
	return tw.err
}
