package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piwi3910/RackPlan/internal/model"
)

var header = lipgloss.NewStyle().Bold(true).Foreground(Primary)

// EquipmentList renders equipment definitions grouped by category.
func EquipmentList(items []model.Equipment) string {
	if len(items) == 0 {
		return Subtitle.Render("No equipment found")
	}

	groups := make(map[string][]model.Equipment)
	var order []string
	for _, e := range items {
		if _, ok := groups[e.Category]; !ok {
			order = append(order, e.Category)
		}
		groups[e.Category] = append(groups[e.Category], e)
	}

	var b strings.Builder
	for i, cat := range order {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header.Render(cat))
		b.WriteString("\n")
		for _, e := range groups[cat] {
			b.WriteString(fmt.Sprintf("  %-10s %-28s %2dU %6sW %6skg", e.ID, e.Name, e.Units, num(e.Power), num(e.Weight)))
			if e.Description != "" {
				b.WriteString("  " + Subtitle.Render(e.Description))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// CabinetList renders the available cabinet profiles. The cabinet whose ID
// matches current is marked.
func CabinetList(cabinets []model.Cabinet, current string) string {
	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("  %-8s %-16s %4s %8s %8s", "ID", "NAME", "U", "MAX KG", "MAX W")))
	b.WriteString("\n")
	for _, c := range cabinets {
		mark := " "
		if c.ID == current {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("%s %-8s %-16s %4d %8s %8s", mark, c.ID, c.Name, c.Units, num(c.MaxWeight), num(c.MaxPower)))
		if c.Standard != "" {
			b.WriteString("  " + Subtitle.Render(c.Standard))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ProjectList renders saved projects with their cabinet and update time.
func ProjectList(projects []model.Project) string {
	if len(projects) == 0 {
		return Subtitle.Render("No saved projects")
	}
	var b strings.Builder
	for _, p := range projects {
		b.WriteString(fmt.Sprintf("%-10s %-24s %-16s %3d items  %s\n",
			p.ID, p.Name, p.Cabinet.Name, len(p.Placements), Subtitle.Render(p.UpdatedAt)))
	}
	return strings.TrimRight(b.String(), "\n")
}
