// Package cli implements the rackplan command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/piwi3910/RackPlan/internal/logger"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/spf13/cobra"
)

const defaultProjectFile = "rack.json"

var (
	dataDir     string
	projectFile string
	logLevel    string
	jsonOutput  bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "rackplan",
	Short: "Plan equipment layouts in 19\" rack cabinets",
	Long: `rackplan places catalog equipment into rack cabinets and reports
power, weight and unit usage against the cabinet limits.

Unit 1 is the bottom slot of the cabinet. Layouts are kept in a JSON
project file (see --file) and can be stored in the project library.

Environment Variables:
  RACKPLAN_LOG_LEVEL   debug, info, warn, error
  RACKPLAN_LOG_FORMAT  text, json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := project.LoadAppConfig(configPath())
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger.Init(level, cfg.LogFormat, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for config, catalog, templates and library (default ~/.rackplan)")
	rootCmd.PersistentFlags().StringVarP(&projectFile, "file", "f", defaultProjectFile, "Working project file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func configPath() string {
	if dataDir == "" {
		return project.DefaultConfigPath()
	}
	return filepath.Join(dataDir, "config.json")
}

func catalogPath() string {
	if dataDir == "" {
		return project.DefaultCatalogPath()
	}
	return filepath.Join(dataDir, "catalog.json")
}

func templatesPath() string {
	if dataDir == "" {
		return project.DefaultTemplatePath()
	}
	return filepath.Join(dataDir, "templates.json")
}

func libraryDir() string {
	if dataDir == "" {
		return project.DefaultLibraryDir()
	}
	return filepath.Join(dataDir, "projects")
}

// env bundles the persistent state most commands need.
type env struct {
	config  model.AppConfig
	catalog model.Catalog
	library *project.Library
}

func loadEnv() (*env, error) {
	cfg, err := project.LoadAppConfig(configPath())
	if err != nil {
		return nil, err
	}
	cat, err := project.LoadCatalog(catalogPath())
	if err != nil {
		return nil, err
	}
	return &env{
		config:  cfg,
		catalog: cat,
		library: project.NewLibrary(libraryDir()),
	}, nil
}

// remember records path as recently used and persists the config.
func (e *env) remember(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	e.config.AddRecent(abs)
	return project.SaveAppConfig(configPath(), e.config)
}

// openWorking loads the working project file.
func openWorking() (model.Project, error) {
	p, err := project.LoadProject(projectFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Project{}, fmt.Errorf("no project at %s; run 'rackplan new' first", projectFile)
		}
		return model.Project{}, err
	}
	return p, nil
}
