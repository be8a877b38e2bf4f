package ui

import (
	"fmt"
	"strings"
)

// renderTimeline draws playback progress with a cursor, like a scrub bar.
func renderTimeline(progress float64, width int, scrubbing bool) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2 // leave some margin

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(progress * float64(barWidth))
	cursor := "●"
	if scrubbing {
		cursor = "◆"
	}
	if filled >= barWidth {
		filled = barWidth - 1
	}
	return strings.Repeat("━", filled) + cursor + strings.Repeat("─", barWidth-filled-1)
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100))
}
