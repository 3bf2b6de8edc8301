// Package engine implements the rack placement engine: it owns a cabinet
// profile and the set of placements installed in it, and guarantees that no
// two placements overlap and every placement fits inside the cabinet.
//
// Units are numbered from 1 at the bottom slot up to Cabinet.Units at the top.
// A placement at position p with height h occupies units p..p+h-1.
//
// An Engine is not safe for concurrent use; callers own one instance per
// open project and call it synchronously.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/RackPlan/internal/model"
)

// maxIDAttempts bounds how often Place asks the generator for an unused ID.
const maxIDAttempts = 64

// ErrDuplicateID is returned by Place when the ID generator keeps producing
// identifiers that are already in use.
var ErrDuplicateID = errors.New("could not generate a unique placement id")

// Engine holds the current cabinet and placement set.
type Engine struct {
	cabinet    model.Cabinet
	placements map[string]model.Placement
	ids        IDGenerator
}

// New creates an engine for the given cabinet with an empty placement set.
// A nil generator defaults to UUIDGenerator.
func New(cabinet model.Cabinet, ids IDGenerator) *Engine {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Engine{
		cabinet:    cabinet,
		placements: make(map[string]model.Placement),
		ids:        ids,
	}
}

// Cabinet returns the current cabinet profile.
func (e *Engine) Cabinet() model.Cabinet {
	return e.cabinet
}

// Len returns the number of placements.
func (e *Engine) Len() int {
	return len(e.placements)
}

// CanPlace reports whether a span of the given height starting at position
// fits inside the cabinet without covering any installed unit.
func (e *Engine) CanPlace(position, units int) bool {
	return e.check(position, units) == nil
}

// Check returns a *ConflictError explaining why the span cannot be placed,
// or nil if CanPlace would report true. The engine is not modified.
func (e *Engine) Check(position, units int) error {
	if cerr := e.check(position, units); cerr != nil {
		return cerr
	}
	return nil
}

func (e *Engine) check(position, units int) *ConflictError {
	if position < 1 || units < 1 {
		return &ConflictError{Position: position, Units: units, Reason: ReasonInvalid}
	}
	if !fits(position, units, e.cabinet.Units) {
		return &ConflictError{Position: position, Units: units, Reason: ReasonOutOfBounds}
	}
	if p, ok := e.firstOverlap(position, units); ok {
		return &ConflictError{Position: position, Units: units, Reason: ReasonOverlap, BlockingID: p.ID}
	}
	return nil
}

// firstOverlap returns the lowest placement whose span shares a unit with
// [position, position+units-1].
func (e *Engine) firstOverlap(position, units int) (model.Placement, bool) {
	var (
		found model.Placement
		ok    bool
	)
	for _, p := range e.placements {
		if p.Overlaps(position, units) && (!ok || p.Position < found.Position) {
			found, ok = p, true
		}
	}
	return found, ok
}

// Place installs eq with its bottom unit at position. On conflict it returns
// a *ConflictError (matching ErrPlacementConflict) and leaves the set unchanged.
func (e *Engine) Place(eq *model.Equipment, position int) (model.Placement, error) {
	if eq == nil {
		return model.Placement{}, &ConflictError{Position: position, Reason: ReasonInvalid}
	}
	if cerr := e.check(position, eq.Units); cerr != nil {
		return model.Placement{}, cerr
	}

	id, err := e.newID()
	if err != nil {
		return model.Placement{}, err
	}
	p := model.Placement{ID: id, Equipment: eq, Position: position}
	e.placements[id] = p
	return p, nil
}

// fits reports whether [position, position+units-1] lies within 1..capacity.
// Both arguments must be positive; the comparison never computes the top unit
// so it cannot overflow.
func fits(position, units, capacity int) bool {
	return position <= capacity && units <= capacity-position+1
}

func (e *Engine) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := e.ids.NewID()
		if _, taken := e.placements[id]; id != "" && !taken {
			return id, nil
		}
	}
	return "", ErrDuplicateID
}

// Remove deletes the placement with the given ID. Removing an unknown ID is
// a no-op; the return value reports whether anything was removed.
func (e *Engine) Remove(id string) bool {
	if _, ok := e.placements[id]; !ok {
		return false
	}
	delete(e.placements, id)
	return true
}

// SetCabinet switches to a new cabinet profile and clears every placement.
func (e *Engine) SetCabinet(cabinet model.Cabinet) {
	e.cabinet = cabinet
	e.placements = make(map[string]model.Placement)
}

// Occupant returns the placement covering the given unit, if any.
func (e *Engine) Occupant(unit int) (model.Placement, bool) {
	for _, p := range e.placements {
		if p.Covers(unit) {
			return p, true
		}
	}
	return model.Placement{}, false
}

// Snapshot returns the current cabinet and placements ordered by position.
// The returned slice is a copy; equipment definitions are shared.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Cabinet:    e.cabinet,
		Placements: sortedPlacements(e.placements),
	}
}

// Load replaces the cabinet and the whole placement set. The placements are
// validated first; on any violation the engine is left unchanged and a
// *CorruptProjectError (matching ErrCorruptProject) is returned.
func (e *Engine) Load(cabinet model.Cabinet, placements []model.Placement) error {
	if cabinet.Units < 1 {
		return &CorruptProjectError{Reason: fmt.Sprintf("cabinet %s has %d units", cabinet.ID, cabinet.Units)}
	}

	next := make(map[string]model.Placement, len(placements))
	for _, p := range placements {
		if p.ID == "" {
			return &CorruptProjectError{Reason: "placement without id"}
		}
		if _, dup := next[p.ID]; dup {
			return &CorruptProjectError{PlacementID: p.ID, Reason: "duplicate id"}
		}
		if p.Equipment == nil {
			return &CorruptProjectError{PlacementID: p.ID, Reason: "missing equipment"}
		}
		if p.Equipment.Units < 1 {
			return &CorruptProjectError{PlacementID: p.ID, Reason: fmt.Sprintf("equipment %s has %d units", p.Equipment.ID, p.Equipment.Units)}
		}
		if p.Position < 1 || !fits(p.Position, p.Units(), cabinet.Units) {
			return &CorruptProjectError{PlacementID: p.ID, Reason: fmt.Sprintf("%dU at unit %d is outside the %dU cabinet", p.Units(), p.Position, cabinet.Units)}
		}
		for _, other := range next {
			if other.Overlaps(p.Position, p.Units()) {
				return &CorruptProjectError{PlacementID: p.ID, Reason: "overlaps placement " + other.ID}
			}
		}
		next[p.ID] = p
	}

	e.cabinet = cabinet
	e.placements = next
	return nil
}

// Restore loads a snapshot previously taken from an engine.
func (e *Engine) Restore(s Snapshot) error {
	return e.Load(s.Cabinet, s.Placements)
}

// Snapshot is a read-only view of engine state.
type Snapshot struct {
	Cabinet    model.Cabinet
	Placements []model.Placement
}

// Metrics derives the aggregate metrics for this snapshot.
func (s Snapshot) Metrics() Metrics {
	return Derive(s.Cabinet, s.Placements)
}

func sortedPlacements(set map[string]model.Placement) []model.Placement {
	out := make([]model.Placement, 0, len(set))
	for _, p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}
