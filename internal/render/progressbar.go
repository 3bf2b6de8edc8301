package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 24

// ProgressBar renders a bar filled to percent. The filled part turns red
// once percent exceeds limit. Values above 100 draw a full bar.
func ProgressBar(percent, limit float64, width int) string {
	if width <= 0 {
		width = defaultBarWidth
	}

	shown := percent
	if shown < 0 {
		shown = 0
	}
	if shown > 100 {
		shown = 100
	}
	filled := int(shown / 100.0 * float64(width))

	color := OK
	switch {
	case percent > limit:
		color = Danger
	case percent > limit*0.8:
		color = Warning
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(Empty)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by the percentage.
func ProgressBarWithLabel(percent, limit float64, width int) string {
	style := lipgloss.NewStyle().Foreground(OK)
	if percent > limit {
		style = style.Foreground(Danger)
	}
	return fmt.Sprintf("%s %s", ProgressBar(percent, limit, width), style.Render(fmt.Sprintf("%5.1f%%", percent)))
}
