// Package project persists rack projects, catalogs, templates and
// application configuration as JSON files.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

// ErrProjectNotFound is returned by Library.Get for unknown project IDs.
var ErrProjectNotFound = errors.New("project not found")

// SaveProject writes a project to the given path as JSON.
func SaveProject(path string, p model.Project) error {
	if p.Placements == nil {
		p.Placements = []model.Placement{}
	}
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project file and checks that its placements satisfy
// the occupancy rules of its cabinet. Invalid layouts are rejected with an
// error matching engine.ErrCorruptProject.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if p.Placements == nil {
		p.Placements = []model.Placement{}
	}
	if _, err := Open(p, nil); err != nil {
		return model.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Open creates an engine holding the project's cabinet and placements.
func Open(p model.Project, ids engine.IDGenerator) (*engine.Engine, error) {
	e := engine.New(p.Cabinet, ids)
	if err := e.Load(p.Cabinet, p.Placements); err != nil {
		return nil, err
	}
	return e, nil
}

// Capture copies the engine's current state into the project and refreshes
// its modification time.
func Capture(p *model.Project, snap engine.Snapshot) {
	p.Cabinet = snap.Cabinet
	p.Placements = snap.Placements
	if p.Placements == nil {
		p.Placements = []model.Placement{}
	}
	p.Touch()
}

// DefaultLibraryDir returns the default directory of saved projects.
// This is located at ~/.rackplan/projects/.
func DefaultLibraryDir() string {
	return filepath.Join(DefaultConfigDir(), "projects")
}

// Library is a directory of saved projects, one JSON file per project ID.
type Library struct {
	Dir string
}

// NewLibrary returns a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

func (l *Library) path(id string) string {
	return filepath.Join(l.Dir, id+".json")
}

// Save stores the project under its ID, replacing any previous version,
// and refreshes its modification time. The saved project is returned.
func (l *Library) Save(p model.Project) (model.Project, error) {
	if err := validID(p.ID); err != nil {
		return p, err
	}
	p.Touch()
	if err := SaveProject(l.path(p.ID), p); err != nil {
		return p, err
	}
	slog.Debug("project saved to library", "id", p.ID, "name", p.Name)
	return p, nil
}

func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid project id %q", id)
	}
	return nil
}

// Get loads the project with the given ID.
func (l *Library) Get(id string) (model.Project, error) {
	if err := validID(id); err != nil {
		return model.Project{}, err
	}
	path := l.path(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return model.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return LoadProject(path)
}

// List returns every readable project, most recently updated first.
// Files that cannot be loaded are skipped and logged.
func (l *Library) List() ([]model.Project, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Project{}, nil
		}
		return nil, err
	}

	projects := []model.Project{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(l.Dir, entry.Name())
		p, err := LoadProject(path)
		if err != nil {
			slog.Warn("skipping unreadable project", "path", path, "error", err)
			continue
		}
		projects = append(projects, p)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].UpdatedAt != projects[j].UpdatedAt {
			return projects[i].UpdatedAt > projects[j].UpdatedAt
		}
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

// Delete removes the project with the given ID. It reports whether the
// project existed.
func (l *Library) Delete(id string) (bool, error) {
	if err := validID(id); err != nil {
		return false, err
	}
	err := os.Remove(l.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	slog.Debug("project deleted from library", "id", id)
	return true, nil
}
