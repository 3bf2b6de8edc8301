package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultCabinetID = "cab-2"
	projects := []model.Project{sampleProject(t)}

	require.NoError(t, ExportAllData(path, cfg, model.DefaultCatalog(), projects))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, "cab-2", backup.Config.DefaultCabinetID)
	assert.Len(t, backup.Catalog.Equipment, 12)
	require.Len(t, backup.Projects, 1)
	assert.Len(t, backup.Projects[0].Placements, 2)
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json}"), 0644))

	_, err := ImportAllData(path)
	assert.Error(t, err)
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"config":{"log_level":"debug"}}`), 0644))

	_, err := ImportAllData(path)
	assert.Error(t, err)
}

func TestImportAllDataRejectsCorruptProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	p := sampleProject(t)
	p.Placements[1].Position = 1

	require.NoError(t, ExportAllData(path, model.DefaultAppConfig(), model.DefaultCatalog(), []model.Project{p}))

	_, err := ImportAllData(path)
	assert.Error(t, err)
}

func TestImportAllDataNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_projects":null},"projects":null}`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.NotNil(t, backup.Config.RecentProjects)
	assert.NotNil(t, backup.Projects)
}

func TestLibraryRestore(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	backup := BackupData{Version: backupVersion, Projects: []model.Project{sampleProject(t)}}

	require.NoError(t, lib.Restore(backup))

	list, err := lib.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, backup.Projects[0].UpdatedAt, list[0].UpdatedAt, "restore keeps timestamps")
}
