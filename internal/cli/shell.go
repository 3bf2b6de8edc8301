package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/piwi3910/RackPlan/internal/render"
	"github.com/spf13/cobra"
)

const shellPrompt = "rackplan> "

const shellHelp = `Commands:
  place <equipment-id> <position>   install equipment (bottom unit at position)
  check <equipment-id> <position>   preview a placement without changing anything
  remove <placement-id>             remove an installed item
  cabinet <cabinet-id>              switch cabinet (clears all placements)
  show                              draw the elevation and totals
  catalog [search]                  list equipment
  cabinets                          list cabinet profiles
  undo | redo                       step through changes
  save                              write the project file
  quit                              leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Edit the working project interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		p, err := openWorking()
		if err != nil {
			return err
		}
		s, err := NewShell(p, env.catalog, projectFile, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return s.Run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// Shell is a line-oriented editing session over one project.
type Shell struct {
	eng     *engine.Engine
	history *engine.History
	project model.Project
	catalog model.Catalog
	path    string
	out     io.Writer

	dirty       bool
	quitPending bool
}

// NewShell opens p for editing. Saves go to path.
func NewShell(p model.Project, cat model.Catalog, path string, out io.Writer) (*Shell, error) {
	e, err := project.Open(p, nil)
	if err != nil {
		return nil, err
	}
	return &Shell{
		eng:     e,
		history: engine.NewHistory(),
		project: p,
		catalog: cat,
		path:    path,
		out:     out,
	}, nil
}

// Run reads commands from in until quit or end of input.
func (s *Shell) Run(in io.Reader) error {
	fmt.Fprintf(s.out, "Editing %q in %s. Type 'help' for commands.\n", s.project.Name, s.path)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
	if s.dirty {
		fmt.Fprintln(s.out, "Unsaved changes were discarded")
	}
	return scanner.Err()
}

// Exec runs a single command line. It reports whether the shell should exit.
func (s *Shell) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	if cmd != "quit" && cmd != "exit" {
		s.quitPending = false
	}

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "place":
		return false, s.place(args)
	case "check":
		return false, s.check(args)
	case "remove", "rm":
		return false, s.remove(args)
	case "cabinet":
		return false, s.cabinet(args)
	case "show":
		fmt.Fprintln(s.out, render.View(s.eng.Snapshot(), nil))
	case "catalog":
		fmt.Fprintln(s.out, render.EquipmentList(s.catalog.Filter(strings.Join(args, " "), "")))
	case "cabinets":
		fmt.Fprintln(s.out, render.CabinetList(s.catalog.Cabinets, s.eng.Cabinet().ID))
	case "undo":
		return false, s.undo()
	case "redo":
		return false, s.redo()
	case "save":
		return false, s.save()
	case "quit", "exit":
		if s.dirty && !s.quitPending {
			s.quitPending = true
			fmt.Fprintln(s.out, "Unsaved changes. Type 'save' or 'quit' again to discard them.")
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
	return false, nil
}

func (s *Shell) equipmentAt(args []string) (*model.Equipment, int, error) {
	if len(args) != 2 {
		return nil, 0, errors.New("usage: <equipment-id> <position>")
	}
	eq := s.catalog.FindEquipment(args[0])
	if eq == nil {
		return nil, 0, fmt.Errorf("unknown equipment %q", args[0])
	}
	pos, err := parsePosition(args[1])
	if err != nil {
		return nil, 0, err
	}
	return eq, pos, nil
}

func (s *Shell) place(args []string) error {
	eq, pos, err := s.equipmentAt(args)
	if err != nil {
		return err
	}
	cp := s.eng.Checkpoint("place " + eq.ID)
	placed, err := s.eng.Place(eq, pos)
	if err != nil {
		slog.Warn("placement rejected", "equipment", eq.ID, "position", pos, "error", err)
		return err
	}
	s.history.Record(cp)
	s.dirty = true
	fmt.Fprintf(s.out, "Placed %s at U%d-U%d as %s\n", eq.Name, placed.Position, placed.Top(), placed.ID)
	fmt.Fprintln(s.out, summary(s.eng.Snapshot().Metrics()))
	return nil
}

func (s *Shell) check(args []string) error {
	eq, pos, err := s.equipmentAt(args)
	if err != nil {
		return err
	}
	conflict := s.eng.Check(pos, eq.Units)
	fmt.Fprintln(s.out, render.Elevation(s.eng.Snapshot(), &render.Preview{Position: pos, Units: eq.Units, OK: conflict == nil}))
	if conflict == nil {
		fmt.Fprintf(s.out, "✓ %s fits at U%d\n", eq.Name, pos)
	} else {
		fmt.Fprintf(s.out, "✗ %s does not fit at U%d: %v\n", eq.Name, pos, conflict)
	}
	return nil
}

func (s *Shell) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <placement-id>")
	}
	cp := s.eng.Checkpoint("remove " + args[0])
	if !s.eng.Remove(args[0]) {
		fmt.Fprintf(s.out, "No placement %s; nothing changed\n", args[0])
		return nil
	}
	s.history.Record(cp)
	s.dirty = true
	fmt.Fprintf(s.out, "Removed %s\n", args[0])
	return nil
}

func (s *Shell) cabinet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cabinet <cabinet-id>")
	}
	c := s.catalog.FindCabinet(args[0])
	if c == nil {
		return fmt.Errorf("unknown cabinet %q", args[0])
	}
	cp := s.eng.Checkpoint("switch to " + c.ID)
	cleared := s.eng.Len()
	s.eng.SetCabinet(*c)
	s.history.Record(cp)
	s.dirty = true
	fmt.Fprintf(s.out, "Switched to %s (%dU); cleared %d placements\n", c.Name, c.Units, cleared)
	return nil
}

func (s *Shell) undo() error {
	label, ok, err := s.history.Undo(s.eng)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Nothing to undo")
		return nil
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Undid %s\n", label)
	return nil
}

func (s *Shell) redo() error {
	label, ok, err := s.history.Redo(s.eng)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Nothing to redo")
		return nil
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Redid %s\n", label)
	return nil
}

func (s *Shell) save() error {
	project.Capture(&s.project, s.eng.Snapshot())
	if err := project.SaveProject(s.path, s.project); err != nil {
		return err
	}
	s.dirty = false
	slog.Debug("project saved", "path", s.path, "placements", s.eng.Len())
	fmt.Fprintf(s.out, "Saved to %s\n", s.path)
	return nil
}
