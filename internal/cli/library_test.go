package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_SaveListOpenDelete(t *testing.T) {
	setup(t)
	newWorking(t)
	placeAt(t, "eq-2", 1)
	var out bytes.Buffer

	require.NoError(t, runLibrarySave(&out))
	assert.Contains(t, out.String(), `Saved "Test rack"`)

	working, err := project.LoadProject(projectFile)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, runLibraryList(&out))
	assert.Contains(t, out.String(), working.ID)
	assert.Contains(t, out.String(), "Recent files:")

	// Replace the working file, then reopen the saved copy.
	require.NoError(t, runNew(&bytes.Buffer{}, "Other", "cab-2", true))
	out.Reset()
	require.NoError(t, runLibraryOpen(&out, working.ID))
	reopened, err := project.LoadProject(projectFile)
	require.NoError(t, err)
	assert.Equal(t, "Test rack", reopened.Name)
	assert.Len(t, reopened.Placements, 1)

	out.Reset()
	require.NoError(t, runLibraryDelete(&out, working.ID))
	assert.Contains(t, out.String(), "Deleted")

	out.Reset()
	require.NoError(t, runLibraryDelete(&out, working.ID))
	assert.Contains(t, out.String(), "nothing changed")

	assert.ErrorIs(t, runLibraryOpen(&bytes.Buffer{}, working.ID), project.ErrProjectNotFound)
}

func TestLibraryList_Empty(t *testing.T) {
	setup(t)
	var out bytes.Buffer
	require.NoError(t, runLibraryList(&out))
	assert.Contains(t, out.String(), "No saved projects")
}

func TestTemplates_SaveUseListDelete(t *testing.T) {
	setup(t)
	newWorking(t)
	server := placeAt(t, "eq-2", 1)
	placeAt(t, "eq-1", 3)
	var out bytes.Buffer

	require.NoError(t, runTemplateSave(&out, "edge", "two item starter"))
	assert.Contains(t, out.String(), "2 placements")

	// Saving under the same name replaces the template.
	require.NoError(t, runTemplateSave(&bytes.Buffer{}, "edge", "starter"))
	store, err := project.LoadTemplates(templatesPath())
	require.NoError(t, err)
	require.Len(t, store.Templates, 1)
	assert.Equal(t, "starter", store.Templates[0].Description)

	out.Reset()
	require.NoError(t, runTemplateList(&out))
	assert.Contains(t, out.String(), "edge")

	require.NoError(t, runTemplateUse(&out, "edge", "From template"))
	p, err := project.LoadProject(projectFile)
	require.NoError(t, err)
	assert.Equal(t, "From template", p.Name)
	require.Len(t, p.Placements, 2)
	for _, pl := range p.Placements {
		assert.NotEqual(t, server.ID, pl.ID, "template placements get fresh ids")
	}

	assert.ErrorContains(t, runTemplateUse(&bytes.Buffer{}, "missing", ""), "unknown template")

	out.Reset()
	require.NoError(t, runTemplateDelete(&out, "edge"))
	assert.Contains(t, out.String(), `Deleted template "edge"`)
	out.Reset()
	require.NoError(t, runTemplateList(&out))
	assert.Contains(t, out.String(), "No templates")
}

func TestBackup_ExportImport(t *testing.T) {
	setup(t)
	newWorking(t)
	placeAt(t, "eq-2", 1)
	require.NoError(t, runLibrarySave(&bytes.Buffer{}))

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	var out bytes.Buffer
	require.NoError(t, runBackupExport(&out, backupPath))
	assert.Contains(t, out.String(), "Exported 1 projects")

	// Restore into an empty data directory.
	dataDir = t.TempDir()
	out.Reset()
	require.NoError(t, runBackupImport(&out, backupPath))
	assert.Contains(t, out.String(), "Restored 1 projects")

	env, err := loadEnv()
	require.NoError(t, err)
	projects, err := env.library.List()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Test rack", projects[0].Name)
	assert.Len(t, env.catalog.Equipment, 12)
}

func TestBackupImport_MissingFile(t *testing.T) {
	setup(t)
	assert.Error(t, runBackupImport(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.json")))
}
