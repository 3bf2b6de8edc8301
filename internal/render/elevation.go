package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

// Preview is a candidate placement highlighted on the elevation.
type Preview struct {
	Position int
	Units    int
	OK       bool
}

// covers reports whether the preview span includes unit u.
func (p *Preview) covers(u int) bool {
	return p != nil && u >= p.Position && u < p.Position+p.Units
}

// Elevation draws the cabinet top-down, one line per unit. Each placement is
// labelled on its top unit; the units below it are drawn as a continuation.
func Elevation(snap engine.Snapshot, preview *Preview) string {
	cab := snap.Cabinet
	width := len(fmt.Sprint(cab.Units))

	byUnit := make(map[int]model.Placement, len(snap.Placements))
	for _, p := range snap.Placements {
		for u := p.Position; u <= p.Top(); u++ {
			byUnit[u] = p
		}
	}

	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%s (%dU)", cab.Name, cab.Units)))
	b.WriteString("\n")
	for u := cab.Units; u >= 1; u-- {
		label := unitLabel.Render(fmt.Sprintf("%*dU", width, u))
		b.WriteString(label)
		b.WriteString(" │ ")
		b.WriteString(unitCell(u, byUnit, preview))
		b.WriteString("\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func unitCell(u int, byUnit map[int]model.Placement, preview *Preview) string {
	if preview.covers(u) {
		marker := "▶"
		style := previewOK
		if !preview.OK {
			marker = "✗"
			style = previewBad
		}
		if p, ok := byUnit[u]; ok && p.Equipment != nil {
			return style.Render(marker+" ") + p.Equipment.Name
		}
		return style.Render(marker)
	}

	p, ok := byUnit[u]
	if !ok || p.Equipment == nil {
		return freeUnit.Render("·")
	}
	if u != p.Top() {
		return occupiedUnit.Render("┃")
	}
	eq := p.Equipment
	return occupiedUnit.Render("┃ "+eq.Name) + " " +
		Subtitle.Render(fmt.Sprintf("%dU %sW %skg  %s", eq.Units, num(eq.Power), num(eq.Weight), p.ID))
}

// View joins the elevation and the metrics panel side by side.
func View(snap engine.Snapshot, preview *Preview) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Elevation(snap, preview),
		" ",
		MetricsPanel(snap.Cabinet, snap.Metrics()),
	)
}
