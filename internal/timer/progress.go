package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// defaultBarWidth is the width of the progress bar in display columns.
const defaultBarWidth = 30

// renderProgress formats a single progress line:
//
//	[##########--------------------]  33% 40s/120s
//
// The line is padded to a fixed display width so an in-place redraw
// with "\r" fully overwrites the previous line.
func renderProgress(elapsed, total time.Duration, barWidth int) string {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	frac := 1.0
	if total > 0 {
		frac = float64(elapsed) / float64(total)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(barWidth))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)

	line := fmt.Sprintf("[%s] %3.0f%% %s/%s", bar, frac*100, formatSeconds(elapsed), formatSeconds(total))

	// Pad to a stable width: bar + brackets + percentage + two
	// second counters ("12345s" at most for any sane timer).
	lineWidth := barWidth + 2 + 6 + 15
	if runewidth.StringWidth(line) < lineWidth {
		line = runewidth.FillRight(line, lineWidth)
	}
	return line
}

// formatSeconds renders a duration as whole seconds, the unit the
// stop time is given in.
func formatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%ds", int(d/time.Second))
}
