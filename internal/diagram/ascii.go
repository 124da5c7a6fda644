package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// FieldChart renders a sampled solution field as a terminal line chart.
// Values should arrive pre-scaled to the display unit.
func FieldChart(title string, values []float64, unit string) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s (%s)\n", title, unit))
	sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len([]rune(title))+len([]rune(unit))+3)))

	chart := asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(64),
		asciigraph.Offset(4),
		asciigraph.Precision(2),
	)
	for _, line := range strings.Split(chart, "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("  x=0 ")
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString(" x=L\n")

	return sb.String()
}

// SupportSketch draws the member with its support symbols and the
// positions and directions of the applied point loads.
func SupportSketch(kind string, pointLoadFractions []float64, upward []bool) string {
	var sb strings.Builder

	const span = 48
	arrows := []rune(strings.Repeat(" ", span+4))
	for i, frac := range pointLoadFractions {
		col := 2 + int(frac*float64(span-1))
		if col >= 0 && col < len(arrows) {
			if i < len(upward) && upward[i] {
				arrows[col] = '▲'
			} else {
				arrows[col] = '▼'
			}
		}
	}

	left, right := " ", " "
	switch kind {
	case "cantilever":
		left, right = "▌", " "
	case "simply_supported":
		left, right = "△", "△"
	case "fixed_fixed":
		left, right = "▌", "▐"
	case "hinged_free":
		left, right = "△", " "
	}

	sb.WriteString("\n")
	sb.WriteString("  " + string(arrows) + "\n")
	sb.WriteString(fmt.Sprintf("  %s %s %s\n", left, strings.Repeat("═", span), right))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
