package model

import (
	"time"

	"github.com/google/uuid"
)

// Equipment is a catalog definition of a rack-mountable item.
// Definitions are shared by reference between placements and never mutated.
type Equipment struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Units       int     `json:"units"`  // height in rack units
	Power       float64 `json:"power"`  // W
	Weight      float64 `json:"weight"` // kg
	Depth       float64 `json:"depth"`  // mm
	Description string  `json:"description"`
}

// NewEquipment creates an equipment definition with a generated ID.
func NewEquipment(name, category string, units int, power, weight, depth float64) Equipment {
	return Equipment{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Category: category,
		Units:    units,
		Power:    power,
		Weight:   weight,
		Depth:    depth,
	}
}

// Cabinet is a cabinet profile: height in units plus weight and power limits.
type Cabinet struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Standard  string  `json:"standard"`
	Units     int     `json:"units"`
	Width     float64 `json:"width"`      // mm
	Depth     float64 `json:"depth"`      // mm
	MaxWeight float64 `json:"max_weight"` // kg
	MaxPower  float64 `json:"max_power"`  // W
}

// Placement is one installed equipment instance.
// Unit 1 is the bottom slot; the placement occupies Position..Top() inclusive.
type Placement struct {
	ID        string     `json:"id"`
	Equipment *Equipment `json:"equipment"`
	Position  int        `json:"position"`
}

// Units returns the height of the placed equipment, or 0 if it has none.
func (p Placement) Units() int {
	if p.Equipment == nil {
		return 0
	}
	return p.Equipment.Units
}

// Top returns the highest unit covered by the placement.
func (p Placement) Top() int {
	return p.Position + p.Units() - 1
}

// Covers reports whether unit u lies within the placement's span.
func (p Placement) Covers(u int) bool {
	return u >= p.Position && u <= p.Top()
}

// Overlaps reports whether the span [start, start+units-1] shares a unit with p.
func (p Placement) Overlaps(start, units int) bool {
	end := start + units - 1
	return start <= p.Top() && end >= p.Position
}

// Project ties a cabinet and its placements together for save/load.
type Project struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Cabinet    Cabinet     `json:"cabinet"`
	Placements []Placement `json:"placements"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

// DefaultProjectName is used for projects created without a name.
const DefaultProjectName = "New project"

// NewProject creates an empty project for the given cabinet. An empty name
// falls back to DefaultProjectName.
func NewProject(name string, cabinet Cabinet) Project {
	if name == "" {
		name = DefaultProjectName
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return Project{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Cabinet:    cabinet,
		Placements: []Placement{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch refreshes the last-modified timestamp.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}
