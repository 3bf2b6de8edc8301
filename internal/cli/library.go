package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/piwi3910/RackPlan/internal/render"
	"github.com/spf13/cobra"
)

var templateDescription string

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved projects",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibraryList(cmd.OutOrStdout())
	},
}

var librarySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the working project into the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibrarySave(cmd.OutOrStdout())
	},
}

var libraryOpenCmd = &cobra.Command{
	Use:   "open <project-id>",
	Short: "Copy a saved project into the working file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibraryOpen(cmd.OutOrStdout(), args[0])
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a saved project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibraryDelete(cmd.OutOrStdout(), args[0])
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable layouts",
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the working project's layout as a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateSave(cmd.OutOrStdout(), args[0], templateDescription)
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateList(cmd.OutOrStdout())
	},
}

var templateUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Start the working project from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateUse(cmd.OutOrStdout(), args[0], newName)
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateDelete(cmd.OutOrStdout(), args[0])
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import all application data",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write config, catalog and saved projects to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackupExport(cmd.OutOrStdout(), args[0])
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore config, catalog and saved projects from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackupImport(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	libraryCmd.AddCommand(libraryListCmd, librarySaveCmd, libraryOpenCmd, libraryDeleteCmd)

	templateSaveCmd.Flags().StringVar(&templateDescription, "description", "", "Template description")
	templateUseCmd.Flags().StringVar(&newName, "name", "", "Project name (default from config)")
	templateCmd.AddCommand(templateSaveCmd, templateListCmd, templateUseCmd, templateDeleteCmd)

	backupCmd.AddCommand(backupExportCmd, backupImportCmd)

	rootCmd.AddCommand(libraryCmd, templateCmd, backupCmd)
}

func runLibraryList(w io.Writer) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	projects, err := env.library.List()
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return writeJSON(w, projects)
	}
	fmt.Fprintln(w, render.ProjectList(projects))
	if len(env.config.RecentProjects) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, render.Subtitle.Render("Recent files:"))
		for _, path := range env.config.RecentProjects {
			fmt.Fprintln(w, "  "+path)
		}
	}
	return nil
}

func runLibrarySave(w io.Writer) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	p, err := openWorking()
	if err != nil {
		return err
	}
	saved, err := env.library.Save(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %q as %s\n", saved.Name, saved.ID)
	return nil
}

func runLibraryOpen(w io.Writer, id string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	p, err := env.library.Get(id)
	if err != nil {
		return err
	}
	if err := project.SaveProject(projectFile, p); err != nil {
		return err
	}
	if err := env.remember(projectFile); err != nil {
		slog.Warn("could not update recent projects", "error", err)
	}
	fmt.Fprintf(w, "Opened %q into %s\n", p.Name, projectFile)
	return nil
}

func runLibraryDelete(w io.Writer, id string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	existed, err := env.library.Delete(id)
	if err != nil {
		return err
	}
	if !existed {
		fmt.Fprintf(w, "No saved project %s; nothing changed\n", id)
		return nil
	}
	fmt.Fprintf(w, "Deleted %s\n", id)
	return nil
}

func runTemplateSave(w io.Writer, name, description string) error {
	p, err := openWorking()
	if err != nil {
		return err
	}
	store, err := project.LoadTemplates(templatesPath())
	if err != nil {
		return err
	}

	if existing := store.FindByName(name); existing != nil {
		store.Remove(existing.ID)
	}
	t := model.NewProjectTemplate(name, description, p.Cabinet, p.Placements)
	store.Add(t)
	if err := project.SaveTemplates(templatesPath(), store); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved template %q (%d placements)\n", name, len(t.Placements))
	return nil
}

func runTemplateList(w io.Writer) error {
	store, err := project.LoadTemplates(templatesPath())
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return writeJSON(w, store.Templates)
	}
	if len(store.Templates) == 0 {
		fmt.Fprintln(w, render.Subtitle.Render("No templates"))
		return nil
	}
	for _, t := range store.Templates {
		fmt.Fprintf(w, "%-24s %-20s %3d items  %s\n", t.Name, t.Cabinet.Name, len(t.Placements), render.Subtitle.Render(t.Description))
	}
	return nil
}

func runTemplateUse(w io.Writer, name, projectName string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	store, err := project.LoadTemplates(templatesPath())
	if err != nil {
		return err
	}
	t := store.FindByName(name)
	if t == nil {
		return fmt.Errorf("unknown template %q", name)
	}
	if projectName == "" {
		projectName = env.config.DefaultProjectName
	}

	p := t.ToProject(projectName)
	if _, err := project.Open(p, nil); err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	if err := project.SaveProject(projectFile, p); err != nil {
		return err
	}
	if err := env.remember(projectFile); err != nil {
		slog.Warn("could not update recent projects", "error", err)
	}
	fmt.Fprintf(w, "Created project %q from template %q in %s\n", p.Name, name, projectFile)
	return nil
}

func runTemplateDelete(w io.Writer, name string) error {
	store, err := project.LoadTemplates(templatesPath())
	if err != nil {
		return err
	}
	t := store.FindByName(name)
	if t == nil {
		fmt.Fprintf(w, "No template %q; nothing changed\n", name)
		return nil
	}
	store.Remove(t.ID)
	if err := project.SaveTemplates(templatesPath(), store); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted template %q\n", name)
	return nil
}

func runBackupExport(w io.Writer, path string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	projects, err := env.library.List()
	if err != nil {
		return err
	}
	if err := project.ExportAllData(path, env.config, env.catalog, projects); err != nil {
		return err
	}
	slog.Info("backup exported", "path", path, "projects", len(projects))
	fmt.Fprintf(w, "Exported %d projects to %s\n", len(projects), path)
	return nil
}

func runBackupImport(w io.Writer, path string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}

	var errs []error
	if err := project.SaveAppConfig(configPath(), backup.Config); err != nil {
		errs = append(errs, err)
	}
	if len(backup.Catalog.Cabinets) > 0 || len(backup.Catalog.Equipment) > 0 {
		if err := backup.Catalog.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("backup catalog: %w", err))
		} else if err := project.SaveCatalog(catalogPath(), backup.Catalog); err != nil {
			errs = append(errs, err)
		}
	}
	if err := env.library.Restore(backup); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	slog.Info("backup imported", "path", path, "created_at", backup.CreatedAt, "projects", len(backup.Projects))
	fmt.Fprintf(w, "Restored %d projects from backup of %s\n", len(backup.Projects), formatBackupTime(backup.CreatedAt))
	return nil
}

func formatBackupTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}
