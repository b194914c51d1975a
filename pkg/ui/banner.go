package ui

import "strings"

const (
	reset     = "\033[0m"
	bold      = "\033[1m"
	dim       = "\033[2m"
	mint      = "\033[38;5;121m"
	seafoam   = "\033[38;5;49m"
	cobalt    = "\033[38;5;33m"
	deepBlue  = "\033[38;5;61m"
	fuchsia   = "\033[38;5;177m"
	honey     = "\033[38;5;214m"
	flame     = "\033[38;5;208m"
	alarmRed  = "\033[38;5;196m"
	calmGreen = "\033[38;5;82m"
)

// Banner renders a colored proctop wordmark.
func Banner() string {
	var b strings.Builder

	letters := [][]string{
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔═══╝ ", "██║     ", "╚═╝     "},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔══██╗", "██║  ██║", "╚═╝  ╚═╝"},
		{" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
		{" ██████╗", "██╔════╝", "██║     ", "██║     ", "╚██████╗", " ╚═════╝"},
		{"████████╗", "╚══██╔══╝", "   ██║   ", "   ██║   ", "   ██║   ", "   ╚═╝   "},
		{" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔═══╝ ", "██║     ", "╚═╝     "},
	}
	gradient := []string{mint, seafoam, cobalt, deepBlue, fuchsia, honey, flame}
	rows := make([]string, len(letters[0]))
	for i, letter := range letters {
		color := gradient[i%len(gradient)]
		for row := 0; row < len(letter); row++ {
			rows[row] += color + letter[row] + " "
		}
	}
	for _, line := range rows {
		b.WriteString(bold + line + reset + "\n")
	}

	b.WriteString("\n")
	b.WriteString(bold + seafoam + "proctop" + reset + "  •  procfs resource monitor\n")

	return b.String()
}

// Gauge draws a fixed-width bar for a fraction in [0,1], e.g. "[|||||     ]  50.0%".
func Gauge(fraction float64, width int) string {
	if width <= 0 {
		width = 10
	}
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)

	color := calmGreen
	if fraction >= 0.8 {
		color = alarmRed
	} else if fraction >= 0.5 {
		color = honey
	}
	return "[" + color + strings.Repeat("|", filled) + reset + strings.Repeat(" ", width-filled) + "] " +
		dim + formatPercent(fraction) + reset
}
