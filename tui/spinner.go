package tui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerWriter struct {
	writer   io.Writer
	interval time.Duration
	enabled  bool
	err      error
}

func (sw *spinnerWriter) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}

	_, sw.err = fmt.Fprintf(sw.writer, format, args...)
}

// active reports whether frames should be drawn at all. Frames are only
// drawn on a terminal so piped output stays clean.
func (sw *spinnerWriter) active() bool {
	return sw.enabled && IsWriterTerminal(sw.writer)
}

type SpinnerOption func(*spinnerWriter)

// WithWriter draws the spinner on w instead of stderr.
func WithWriter(w io.Writer) SpinnerOption {
	return func(c *spinnerWriter) {
		c.writer = w
	}
}

// WithInterval sets the frame interval.
func WithInterval(d time.Duration) SpinnerOption {
	return func(c *spinnerWriter) {
		c.interval = d
	}
}

// WithEnabled turns the spinner off for machine-readable output.
func WithEnabled(enabled bool) SpinnerOption {
	return func(c *spinnerWriter) {
		c.enabled = enabled
	}
}

// RunWithSpinner runs fn while drawing a spinner with message. The result
// and error of fn are returned unchanged.
func RunWithSpinner[T any](message string, fn func() (T, error), opts ...SpinnerOption) (T, error) {
	writer := spinnerWriter{
		writer:   os.Stderr,
		interval: 100 * time.Millisecond,
		enabled:  true,
	}

	for _, opt := range opts {
		opt(&writer)
	}

	if !writer.active() {
		return fn()
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(writer.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := spinnerFrames[i%len(spinnerFrames)]
			writer.printf("\033[2K\r%s%s%s %s", Cyan, frame, Reset, message)

			select {
			case <-stop:
				writer.printf("\033[2K\r")
				return
			case <-ticker.C:
			}
		}
	}()

	result, err := fn()

	close(stop)
	wg.Wait()

	if err != nil {
		return result, err
	}

	return result, writer.err
}
