package ui

import (
	"fmt"
	"strings"
)

// ElapsedTime formats seconds as HH:MM:SS. Hours are not wrapped at 24.
func ElapsedTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

// Command makes a raw cmdline printable: NUL separators become spaces and long
// commands are cut to width runes.
func Command(raw string, width int) string {
	cmd := strings.TrimSpace(strings.ReplaceAll(raw, "\x00", " "))
	if width > 3 {
		if r := []rune(cmd); len(r) > width {
			return string(r[:width-3]) + "..."
		}
	}
	return cmd
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%5.1f%%", fraction*100)
}
