package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/piwi3910/RackPlan/internal/render"
	"github.com/spf13/cobra"
)

var (
	newName    string
	newCabinet string
	newForce   bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new project in the working file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd.OutOrStdout(), newName, newCabinet, newForce)
	},
}

var placeCmd = &cobra.Command{
	Use:   "place <equipment-id> <position>",
	Short: "Install equipment with its bottom unit at position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		return runPlace(cmd.OutOrStdout(), args[0], pos)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <placement-id>",
	Short: "Remove an installed item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd.OutOrStdout(), args[0])
	},
}

var cabinetCmd = &cobra.Command{
	Use:   "cabinet <cabinet-id>",
	Short: "Switch the project to another cabinet (clears all placements)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCabinet(cmd.OutOrStdout(), args[0])
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <equipment-id> <position>",
	Short: "Check whether equipment fits at position without changing the project",
	Long: `Check whether equipment fits at position without changing the project.

Exit codes:
  0 - The equipment fits
  1 - The span is blocked or out of bounds`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		ok, err := runCheck(cmd.OutOrStdout(), args[0], pos)
		if err != nil {
			return err
		}
		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cabinet elevation and totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.OutOrStdout())
	},
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "Project name (default from config)")
	newCmd.Flags().StringVar(&newCabinet, "cabinet", "", "Cabinet profile ID (default from config)")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing working file")

	rootCmd.AddCommand(newCmd, placeCmd, removeCmd, cabinetCmd, checkCmd, showCmd)
}

func parsePosition(s string) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: must be a unit number", s)
	}
	return pos, nil
}

// layoutView is the JSON form of a project and its metrics.
type layoutView struct {
	Project model.Project  `json:"project"`
	Metrics engine.Metrics `json:"metrics"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// summary is a one-line readout of the metrics.
func summary(m engine.Metrics) string {
	s := fmt.Sprintf("Power %.1f%%  Weight %.1f%%  Units %.1f%%", m.PowerPercent, m.WeightPercent, m.UnitsPercent)
	if m.Warning {
		s += "  " + render.Badge("LIMITS EXCEEDED", render.LevelCritical)
	}
	return s
}

func runNew(w io.Writer, name, cabinetID string, force bool) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(projectFile); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", projectFile)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	var cabinet model.Cabinet
	if cabinetID != "" {
		c := env.catalog.FindCabinet(cabinetID)
		if c == nil {
			return fmt.Errorf("unknown cabinet %q", cabinetID)
		}
		cabinet = *c
	} else {
		c, ok := env.config.DefaultCabinet(&env.catalog)
		if !ok {
			return fmt.Errorf("catalog has no cabinets")
		}
		cabinet = c
	}
	if name == "" {
		name = env.config.DefaultProjectName
	}

	p := model.NewProject(name, cabinet)
	if err := project.SaveProject(projectFile, p); err != nil {
		return err
	}
	if err := env.remember(projectFile); err != nil {
		slog.Warn("could not update recent projects", "error", err)
	}
	slog.Info("project created", "id", p.ID, "cabinet", cabinet.ID, "path", projectFile)
	fmt.Fprintf(w, "Created project %q with %s (%dU) in %s\n", p.Name, cabinet.Name, cabinet.Units, projectFile)
	return nil
}

func runPlace(w io.Writer, equipmentID string, position int) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	p, err := openWorking()
	if err != nil {
		return err
	}
	eq := env.catalog.FindEquipment(equipmentID)
	if eq == nil {
		return fmt.Errorf("unknown equipment %q", equipmentID)
	}

	e, err := project.Open(p, nil)
	if err != nil {
		return err
	}
	placed, err := e.Place(eq, position)
	if err != nil {
		slog.Warn("placement rejected", "equipment", eq.ID, "position", position, "error", err)
		return err
	}

	project.Capture(&p, e.Snapshot())
	if err := project.SaveProject(projectFile, p); err != nil {
		return err
	}
	slog.Debug("equipment placed", "placement", placed.ID, "equipment", eq.ID, "position", position)

	if IsJSONOutput() {
		return writeJSON(w, placed)
	}
	fmt.Fprintf(w, "Placed %s at U%d-U%d as %s\n", eq.Name, placed.Position, placed.Top(), placed.ID)
	fmt.Fprintln(w, summary(e.Snapshot().Metrics()))
	return nil
}

func runRemove(w io.Writer, id string) error {
	p, err := openWorking()
	if err != nil {
		return err
	}
	e, err := project.Open(p, nil)
	if err != nil {
		return err
	}
	if !e.Remove(id) {
		fmt.Fprintf(w, "No placement %s; nothing changed\n", id)
		return nil
	}

	project.Capture(&p, e.Snapshot())
	if err := project.SaveProject(projectFile, p); err != nil {
		return err
	}
	slog.Debug("placement removed", "placement", id)
	fmt.Fprintf(w, "Removed %s\n", id)
	fmt.Fprintln(w, summary(e.Snapshot().Metrics()))
	return nil
}

func runCabinet(w io.Writer, cabinetID string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	c := env.catalog.FindCabinet(cabinetID)
	if c == nil {
		return fmt.Errorf("unknown cabinet %q", cabinetID)
	}
	p, err := openWorking()
	if err != nil {
		return err
	}
	e, err := project.Open(p, nil)
	if err != nil {
		return err
	}

	cleared := e.Len()
	e.SetCabinet(*c)
	project.Capture(&p, e.Snapshot())
	if err := project.SaveProject(projectFile, p); err != nil {
		return err
	}
	slog.Info("cabinet switched", "cabinet", c.ID, "cleared", cleared)
	fmt.Fprintf(w, "Switched to %s (%dU); cleared %d placements\n", c.Name, c.Units, cleared)
	return nil
}

// checkResult is the outcome of a trial placement.
type checkResult struct {
	OK         bool   `json:"ok"`
	Equipment  string `json:"equipment"`
	Position   int    `json:"position"`
	Units      int    `json:"units"`
	Reason     string `json:"reason,omitempty"`
	BlockingID string `json:"blocking_id,omitempty"`
}

// tryPlace reports whether eq fits into p at position, and why not.
func tryPlace(p model.Project, eq *model.Equipment, position int) (checkResult, engine.Snapshot, error) {
	res := checkResult{Equipment: eq.ID, Position: position, Units: eq.Units}
	e, err := project.Open(p, nil)
	if err != nil {
		return res, engine.Snapshot{}, err
	}
	var conflict *engine.ConflictError
	if errors.As(e.Check(position, eq.Units), &conflict) {
		res.Reason = conflict.Reason
		res.BlockingID = conflict.BlockingID
	} else {
		res.OK = true
	}
	return res, e.Snapshot(), nil
}

func runCheck(w io.Writer, equipmentID string, position int) (bool, error) {
	env, err := loadEnv()
	if err != nil {
		return false, err
	}
	p, err := openWorking()
	if err != nil {
		return false, err
	}
	eq := env.catalog.FindEquipment(equipmentID)
	if eq == nil {
		return false, fmt.Errorf("unknown equipment %q", equipmentID)
	}

	res, snap, err := tryPlace(p, eq, position)
	if err != nil {
		return false, err
	}

	if IsJSONOutput() {
		return res.OK, writeJSON(w, res)
	}
	fmt.Fprintln(w, render.Elevation(snap, &render.Preview{Position: position, Units: eq.Units, OK: res.OK}))
	if res.OK {
		fmt.Fprintf(w, "✓ %s fits at U%d-U%d\n", eq.Name, position, position+eq.Units-1)
	} else {
		msg := fmt.Sprintf("✗ %s does not fit at U%d: %s", eq.Name, position, res.Reason)
		if res.BlockingID != "" {
			msg += " with " + res.BlockingID
		}
		fmt.Fprintln(w, msg)
	}
	return res.OK, nil
}

func runShow(w io.Writer) error {
	p, err := openWorking()
	if err != nil {
		return err
	}
	e, err := project.Open(p, nil)
	if err != nil {
		return err
	}
	snap := e.Snapshot()

	if IsJSONOutput() {
		return writeJSON(w, layoutView{Project: p, Metrics: snap.Metrics()})
	}
	fmt.Fprintln(w, render.Title.Render(p.Name))
	fmt.Fprintln(w, render.View(snap, nil))
	return nil
}
