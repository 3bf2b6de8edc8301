package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

// MetricsPanel renders totals against cabinet limits with usage bars.
func MetricsPanel(cab model.Cabinet, m engine.Metrics) string {
	var b strings.Builder
	b.WriteString(Title.Render("Totals"))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render(fmt.Sprintf("Installed items: %d", m.EquipmentCount)))
	b.WriteString("\n\n")

	if m.Warning {
		b.WriteString(Badge("⚠ Cabinet limits exceeded", LevelCritical))
		b.WriteString("\n\n")
	}
	if m.Degenerate {
		b.WriteString(Badge("Cabinet profile has a zero capacity", LevelWarning))
		b.WriteString("\n\n")
	}

	writeMetric(&b, "Power", fmt.Sprintf("%s / %s W", num(m.TotalPower), num(cab.MaxPower)), m.PowerPercent, engine.PowerWarnPercent)
	writeMetric(&b, "Weight", fmt.Sprintf("%.1f / %s kg", m.TotalWeight, num(cab.MaxWeight)), m.WeightPercent, engine.WeightWarnPercent)
	writeMetric(&b, "Units", fmt.Sprintf("%d / %d U", m.UsedUnits, cab.Units), m.UnitsPercent, engine.UnitsWarnPercent)

	free := cab.Units - m.UsedUnits
	reserve := math.Max(0, cab.MaxPower-m.TotalPower)
	b.WriteString(fmt.Sprintf("Free: %dU   Power reserve: %sW", free, num(reserve)))

	return Panel.Render(b.String())
}

func writeMetric(b *strings.Builder, name, value string, percent, limit float64) {
	b.WriteString(fmt.Sprintf("%-7s %s\n", name, value))
	b.WriteString(ProgressBarWithLabel(percent, limit, defaultBarWidth))
	b.WriteString("\n\n")
}
