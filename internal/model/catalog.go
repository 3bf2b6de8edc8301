package model

import (
	"fmt"
	"sort"
	"strings"
)

// AllCategories is the category filter value that matches every item.
const AllCategories = "All categories"

// Catalog holds the cabinet profiles and equipment definitions a project can use.
type Catalog struct {
	Cabinets  []Cabinet   `json:"cabinets"`
	Equipment []Equipment `json:"equipment"`
}

// DefaultCatalog returns the built-in catalog of common 19" cabinets and equipment.
func DefaultCatalog() Catalog {
	return Catalog{
		Cabinets: []Cabinet{
			{ID: "cab-1", Name: "Cabinet 42U 600x800", Standard: `19" RACK`, Units: 42, Width: 600, Depth: 800, MaxWeight: 800, MaxPower: 3500},
			{ID: "cab-2", Name: "Cabinet 27U 600x600", Standard: `19" RACK`, Units: 27, Width: 600, Depth: 600, MaxWeight: 500, MaxPower: 2000},
			{ID: "cab-3", Name: "Cabinet 47U 800x1000", Standard: `19" RACK`, Units: 47, Width: 800, Depth: 1000, MaxWeight: 1200, MaxPower: 5000},
			{ID: "cab-4", Name: "Cabinet 18U 600x600", Standard: `19" RACK`, Units: 18, Width: 600, Depth: 600, MaxWeight: 300, MaxPower: 1500},
		},
		Equipment: []Equipment{
			{ID: "eq-1", Name: "Cisco 2960 Switch", Category: "Network", Units: 1, Power: 45, Weight: 3.2, Depth: 250, Description: "24-port Gigabit Switch"},
			{ID: "eq-2", Name: "Dell R740 Server", Category: "Servers", Units: 2, Power: 750, Weight: 28.5, Depth: 650, Description: "2U Rack Server"},
			{ID: "eq-3", Name: "Patch Panel 24 ports", Category: "Passive", Units: 1, Power: 0, Weight: 1.5, Depth: 150, Description: "Cat6 UTP 24-port"},
			{ID: "eq-4", Name: "APC Smart-UPS 1500", Category: "Power", Units: 2, Power: 0, Weight: 35, Depth: 450, Description: "1500VA/1000W UPS"},
			{ID: "eq-5", Name: "Cisco ISR 4321 Router", Category: "Network", Units: 1, Power: 90, Weight: 5.8, Depth: 400, Description: "Integrated Services Router"},
			{ID: "eq-6", Name: "HP ProLiant DL360 Server", Category: "Servers", Units: 1, Power: 500, Weight: 18.2, Depth: 700, Description: "1U Rack Server"},
			{ID: "eq-7", Name: "Managed PDU 8 outlets", Category: "Power", Units: 1, Power: 0, Weight: 2.8, Depth: 450, Description: "Power Distribution Unit"},
			{ID: "eq-8", Name: "HP 5130 48G Switch", Category: "Network", Units: 1, Power: 55, Weight: 4.5, Depth: 300, Description: "48-port Gigabit L3 Switch"},
			{ID: "eq-9", Name: "KVM Switch 16 ports", Category: "Peripherals", Units: 1, Power: 15, Weight: 2.1, Depth: 300, Description: "16-port KVM Switch"},
			{ID: "eq-10", Name: "Supermicro 4U Server", Category: "Servers", Units: 4, Power: 1200, Weight: 45, Depth: 750, Description: "4U Storage Server"},
			{ID: "eq-11", Name: "Cable Shelf 1U", Category: "Passive", Units: 1, Power: 0, Weight: 1.2, Depth: 200, Description: "Cable Management Panel"},
			{ID: "eq-12", Name: "Fan Tray 1U", Category: "Cooling", Units: 1, Power: 120, Weight: 3.5, Depth: 250, Description: "Fan Tray Unit"},
		},
	}
}

// FindCabinet returns a pointer to the cabinet with the given ID, or nil.
func (c *Catalog) FindCabinet(id string) *Cabinet {
	for i := range c.Cabinets {
		if c.Cabinets[i].ID == id {
			return &c.Cabinets[i]
		}
	}
	return nil
}

// FindEquipment returns a pointer to the equipment with the given ID, or nil.
func (c *Catalog) FindEquipment(id string) *Equipment {
	for i := range c.Equipment {
		if c.Equipment[i].ID == id {
			return &c.Equipment[i]
		}
	}
	return nil
}

// Categories returns the sorted, de-duplicated equipment categories.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, e := range c.Equipment {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		cats = append(cats, e.Category)
	}
	sort.Strings(cats)
	return cats
}

// Filter returns the equipment whose name or description contains search
// (case-insensitive) and whose category matches. An empty category or
// AllCategories matches everything.
func (c *Catalog) Filter(search, category string) []Equipment {
	needle := strings.ToLower(strings.TrimSpace(search))
	var out []Equipment
	for _, e := range c.Equipment {
		if category != "" && category != AllCategories && e.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Validate checks every definition for usable dimensions and ratings.
func (c *Catalog) Validate() error {
	for _, cab := range c.Cabinets {
		if cab.ID == "" {
			return fmt.Errorf("cabinet %q has no id", cab.Name)
		}
		if cab.Units < 1 {
			return fmt.Errorf("cabinet %s: units must be at least 1, got %d", cab.ID, cab.Units)
		}
		if cab.MaxWeight < 0 || cab.MaxPower < 0 {
			return fmt.Errorf("cabinet %s: capacities must not be negative", cab.ID)
		}
	}
	for _, e := range c.Equipment {
		if e.ID == "" {
			return fmt.Errorf("equipment %q has no id", e.Name)
		}
		if e.Units < 1 {
			return fmt.Errorf("equipment %s: units must be at least 1, got %d", e.ID, e.Units)
		}
		if e.Power < 0 || e.Weight < 0 {
			return fmt.Errorf("equipment %s: power and weight must not be negative", e.ID)
		}
	}
	return nil
}

// Merge appends the definitions from other whose IDs are not already present.
// It returns the number of cabinets and equipment items added.
func (c *Catalog) Merge(other Catalog) (cabinets, equipment int) {
	cabIDs := make(map[string]bool, len(c.Cabinets))
	for _, cab := range c.Cabinets {
		cabIDs[cab.ID] = true
	}
	eqIDs := make(map[string]bool, len(c.Equipment))
	for _, e := range c.Equipment {
		eqIDs[e.ID] = true
	}

	for _, cab := range other.Cabinets {
		if !cabIDs[cab.ID] {
			c.Cabinets = append(c.Cabinets, cab)
			cabIDs[cab.ID] = true
			cabinets++
		}
	}
	for _, e := range other.Equipment {
		if !eqIDs[e.ID] {
			c.Equipment = append(c.Equipment, e)
			eqIDs[e.ID] = true
			equipment++
		}
	}
	return cabinets, equipment
}
