package engine

const defaultMaxDepth = 50

// Checkpoint is an engine state together with the label of the edit that
// separates it from the state the engine is in when the checkpoint is used.
type Checkpoint struct {
	Snapshot Snapshot
	Label    string // e.g. "place eq-2"
}

// Checkpoint captures the engine's current state with a label.
func (e *Engine) Checkpoint(label string) Checkpoint {
	return Checkpoint{Snapshot: e.Snapshot(), Label: label}
}

// History steps an engine back and forth across recorded edits.
// At most 50 edits can be undone.
type History struct {
	undo     []Checkpoint
	redo     []Checkpoint
	maxDepth int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Record stores cp as the state before an edit that has just been applied
// and forgets anything that was undone.
func (h *History) Record(cp Checkpoint) {
	h.undo = h.bounded(append(h.undo, cp))
	h.redo = nil
}

// Undo restores e to the state before the most recent edit and returns
// that edit's label. ok is false when there is nothing to undo.
func (h *History) Undo(e *Engine) (label string, ok bool, err error) {
	return h.step(e, &h.undo, &h.redo)
}

// Redo reapplies the most recently undone edit and returns its label.
func (h *History) Redo(e *Engine) (label string, ok bool, err error) {
	return h.step(e, &h.redo, &h.undo)
}

// step moves the top of from onto e, saving e's current state on to under
// the same label. Both stacks are left untouched if the restore fails.
func (h *History) step(e *Engine, from, to *[]Checkpoint) (string, bool, error) {
	n := len(*from)
	if n == 0 {
		return "", false, nil
	}
	target := (*from)[n-1]
	current := e.Checkpoint(target.Label)
	if err := e.Restore(target.Snapshot); err != nil {
		return "", false, err
	}
	*from = (*from)[:n-1]
	*to = h.bounded(append(*to, current))
	return target.Label, true, nil
}

func (h *History) bounded(stack []Checkpoint) []Checkpoint {
	if len(stack) > h.maxDepth {
		return stack[len(stack)-h.maxDepth:]
	}
	return stack
}

// CanUndo reports whether Undo has anything to restore.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has anything to restore.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear drops every recorded edit.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}
