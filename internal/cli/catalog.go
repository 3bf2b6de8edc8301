package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/piwi3910/RackPlan/internal/importer"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/piwi3910/RackPlan/internal/render"
	"github.com/spf13/cobra"
)

var (
	catalogSearch   string
	catalogCategory string
)

var cabinetsCmd = &cobra.Command{
	Use:   "cabinets",
	Short: "List cabinet profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCabinets(cmd.OutOrStdout())
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List equipment definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog(cmd.OutOrStdout(), catalogSearch, catalogCategory)
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge equipment from a JSON catalog, CSV or Excel file",
	Long: `Merge equipment into the catalog. JSON files use the catalog format
and may add cabinets too. CSV and XLSX files list one equipment item per row;
a header row naming the columns (name, units, power, weight, depth,
category, description, id) is recognized in any order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalogImport(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "Filter by name or description")
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "Filter by category")
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(cabinetsCmd, catalogCmd)
}

func runCabinets(w io.Writer) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return writeJSON(w, env.catalog.Cabinets)
	}
	current := env.config.DefaultCabinetID
	if p, err := project.LoadProject(projectFile); err == nil {
		current = p.Cabinet.ID
	}
	fmt.Fprintln(w, render.CabinetList(env.catalog.Cabinets, current))
	return nil
}

func runCatalog(w io.Writer, search, category string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	items := env.catalog.Filter(search, category)
	if IsJSONOutput() {
		return writeJSON(w, items)
	}
	fmt.Fprintln(w, render.EquipmentList(items))
	fmt.Fprintln(w)
	fmt.Fprintln(w, render.Subtitle.Render("Categories: "+strings.Join(env.catalog.Categories(), ", ")))
	return nil
}

func runCatalogImport(w io.Writer, path string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	var merged model.Catalog
	if strings.EqualFold(filepath.Ext(path), ".json") {
		merged, err = project.ImportCatalog(path, env.catalog)
		if err != nil {
			return err
		}
	} else {
		result := importer.ImportFile(path)
		for _, msg := range result.Warnings {
			fmt.Fprintln(w, "warning: "+msg)
		}
		for _, msg := range result.Errors {
			fmt.Fprintln(w, "error: "+msg)
		}
		if len(result.Equipment) == 0 {
			return fmt.Errorf("no equipment imported from %s", path)
		}
		merged = env.catalog
		cabs, eqs := merged.Merge(result.Catalog())
		slog.Info("catalog imported", "path", path, "cabinets", cabs, "equipment", eqs, "errors", len(result.Errors))
	}

	if err := project.SaveCatalog(catalogPath(), merged); err != nil {
		return err
	}
	fmt.Fprintf(w, "Catalog now has %d cabinets and %d equipment items (+%d, +%d)\n",
		len(merged.Cabinets), len(merged.Equipment),
		len(merged.Cabinets)-len(env.catalog.Cabinets), len(merged.Equipment)-len(env.catalog.Equipment))
	return nil
}
