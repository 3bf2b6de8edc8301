package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/RackPlan/internal/model"
)

// backupVersion is written into every backup file.
const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Catalog   model.Catalog   `json:"catalog"`
	Projects  []model.Project `json:"projects"`
}

// ExportAllData exports the config, catalog and saved projects to a single
// JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, cat model.Catalog, projects []model.Project) error {
	if projects == nil {
		projects = []model.Project{}
	}
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   cat,
		Projects:  projects,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and projects.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	// Ensure slices are never nil
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Projects == nil {
		backup.Projects = []model.Project{}
	}
	for _, p := range backup.Projects {
		if _, err := Open(p, nil); err != nil {
			return BackupData{}, fmt.Errorf("invalid backup file: project %s: %w", p.ID, err)
		}
	}
	return backup, nil
}

// Restore writes every project from the backup into the library.
func (l *Library) Restore(backup BackupData) error {
	for _, p := range backup.Projects {
		if err := validID(p.ID); err != nil {
			return err
		}
		if err := SaveProject(l.path(p.ID), p); err != nil {
			return err
		}
	}
	return nil
}
