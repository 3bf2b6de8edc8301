package engine

import "github.com/piwi3910/RackPlan/internal/model"

// Warning thresholds in percent. Power and weight are soft limits; units can
// only exceed 100% if the occupancy rules were bypassed.
const (
	PowerWarnPercent  = 90.0
	WeightWarnPercent = 90.0
	UnitsWarnPercent  = 100.0
)

// Metrics are the aggregate readouts for a cabinet and its placements.
type Metrics struct {
	TotalPower     float64 `json:"total_power"`  // W
	TotalWeight    float64 `json:"total_weight"` // kg
	UsedUnits      int     `json:"used_units"`
	EquipmentCount int     `json:"equipment_count"`
	PowerPercent   float64 `json:"power_percent"`
	WeightPercent  float64 `json:"weight_percent"`
	UnitsPercent   float64 `json:"units_percent"`
	Warning        bool    `json:"warning"`
	// Degenerate is set when the cabinet has a zero capacity; the matching
	// percentage is reported as 0.
	Degenerate bool `json:"degenerate"`
}

// Derive computes metrics from a cabinet and placement list. UsedUnits is the
// sum of placement heights.
func Derive(cabinet model.Cabinet, placements []model.Placement) Metrics {
	var m Metrics
	for _, p := range placements {
		if p.Equipment == nil {
			continue
		}
		m.TotalPower += p.Equipment.Power
		m.TotalWeight += p.Equipment.Weight
		m.UsedUnits += p.Equipment.Units
		m.EquipmentCount++
	}

	var ok bool
	m.PowerPercent, ok = percent(m.TotalPower, cabinet.MaxPower)
	m.Degenerate = !ok
	m.WeightPercent, ok = percent(m.TotalWeight, cabinet.MaxWeight)
	m.Degenerate = m.Degenerate || !ok
	m.UnitsPercent, ok = percent(float64(m.UsedUnits), float64(cabinet.Units))
	m.Degenerate = m.Degenerate || !ok

	m.Warning = m.PowerPercent > PowerWarnPercent ||
		m.WeightPercent > WeightWarnPercent ||
		m.UnitsPercent > UnitsWarnPercent
	return m
}

// percent returns used/capacity*100, or 0 and false when capacity is not positive.
func percent(used, capacity float64) (float64, bool) {
	if capacity <= 0 {
		return 0, false
	}
	return used / capacity * 100.0, true
}
