// Package typing renders a "bot is typing" indicator while a reply is being prepared.
package typing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// DefaultMessage is shown in front of the dots
const DefaultMessage = "Bot is typing"

// maxDots is the longest run of dots before the animation wraps around
const maxDots = 3

// Indicator writes a typing line with a growing run of dots to a single terminal line.
type Indicator struct {
	writer   io.Writer
	message  string
	interval time.Duration
}

// New creates an indicator that writes to writer.
func New(writer io.Writer, message string) *Indicator {
	return &Indicator{
		writer:   writer,
		message:  message,
		interval: 120 * time.Millisecond,
	}
}

// Show draws the indicator for d, or until ctx is done, then clears the line.
// A non-positive d returns immediately without writing anything.
func (ind *Indicator) Show(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	ticker := time.NewTicker(ind.interval)
	defer ticker.Stop()

	dots := 0
	ind.draw(dots)
	for {
		select {
		case <-ticker.C:
			dots = (dots + 1) % (maxDots + 1)
			ind.draw(dots)
		case <-timer.C:
			ind.clear()
			return
		case <-ctx.Done():
			ind.clear()
			return
		}
	}
}

// draw rewrites the line with n dots, padded so shorter frames cover longer ones
func (ind *Indicator) draw(n int) {
	fmt.Fprintf(ind.writer, "\r%s%s%s", ind.message, strings.Repeat(".", n), strings.Repeat(" ", maxDots-n))
}

// clear blanks the indicator line; only terminals understand the erase-line sequence
func (ind *Indicator) clear() {
	if IsTerminal(ind.writer) {
		fmt.Fprint(ind.writer, "\r\033[2K")
		return
	}
	fmt.Fprintf(ind.writer, "\r%s\r", strings.Repeat(" ", len(ind.message)+maxDots))
}

// IsTerminal reports whether w is a terminal file
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
