package document

import (
	"sync"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
)

// DefaultHistoryLimit is the number of undo snapshots kept per document.
const DefaultHistoryLimit = 100

// History is a bounded undo/redo stack of document snapshots. Callers record
// the pre-mutation state before each edit; Undo and Redo exchange the
// current state for a stored snapshot. All snapshots are deep copies, so
// later edits never leak into history.
//
// History is an in-memory editing aid scoped to one document. It is safe for
// concurrent use, though interleaved edits from concurrent callers undo in
// whatever order the mutex admits them.
type History struct {
	mu     sync.Mutex
	limit  int
	past   []*Document
	future []*Document
}

// NewHistory creates a history keeping up to limit undo snapshots.
// A non-positive limit selects [DefaultHistoryLimit].
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record stores a snapshot of d as the newest undo state and clears the redo
// stack, because a fresh edit forks away from any undone states. When the
// stack is full the oldest snapshot is dropped.
func (h *History) Record(d *Document) {
	snap := d.Clone()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = append(h.past, snap)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.future = nil
}

// Undo returns the most recent snapshot, storing current for a later Redo.
// Returns an error with code NOTHING_TO_UNDO when no snapshots exist.
func (h *History) Undo(current *Document) (*Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeNothingToUndo, "no earlier state to restore")
	}

	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current.Clone())
	return snap, nil
}

// Redo returns the most recently undone snapshot, storing current back on
// the undo stack. Returns an error with code NOTHING_TO_REDO when nothing
// has been undone.
func (h *History) Redo(current *Document) (*Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeNothingToRedo, "no undone state to restore")
	}

	snap := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current.Clone())
	return snap, nil
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// Depth returns the current undo and redo stack sizes.
func (h *History) Depth() (undo, redo int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past), len(h.future)
}
