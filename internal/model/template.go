package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable rack layout: a cabinet and its placements.
type ProjectTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Cabinet     Cabinet     `json:"cabinet"`
	Placements  []Placement `json:"placements"`
}

// NewProjectTemplate captures the given cabinet and placements as a template.
func NewProjectTemplate(name, description string, cabinet Cabinet, placements []Placement) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Cabinet:     cabinet,
		Placements:  copyPlacements(placements),
	}
}

// ToProject creates a new Project from this template.
// Placements get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	p := NewProject(projectName, t.Cabinet)
	for _, pl := range t.Placements {
		p.Placements = append(p.Placements, Placement{
			ID:        uuid.New().String()[:8],
			Equipment: pl.Equipment,
			Position:  pl.Position,
		})
	}
	return p
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyPlacements(placements []Placement) []Placement {
	if placements == nil {
		return []Placement{}
	}
	cp := make([]Placement, len(placements))
	copy(cp, placements)
	return cp
}
