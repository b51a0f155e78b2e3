package document

import (
	"fmt"
	"testing"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

func TestHistoryUndoRedo(t *testing.T) {
	doc := sampleDoc(t)
	hist := NewHistory(0)

	hist.Record(doc)
	if err := doc.RemoveNode("packing"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}
	if doc.NodeCount() != 2 {
		t.Fatalf("NodeCount() after remove = %d, want 2", doc.NodeCount())
	}

	doc, err := hist.Undo(doc)
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if doc.NodeCount() != 4 {
		t.Errorf("NodeCount() after undo = %d, want 4", doc.NodeCount())
	}
	if !hist.CanRedo() {
		t.Error("CanRedo() should be true after an undo")
	}

	doc, err = hist.Redo(doc)
	if err != nil {
		t.Fatalf("Redo() error: %v", err)
	}
	if doc.NodeCount() != 2 {
		t.Errorf("NodeCount() after redo = %d, want 2", doc.NodeCount())
	}
}

func TestHistoryEmptyStacks(t *testing.T) {
	doc := sampleDoc(t)
	hist := NewHistory(0)

	_, err := hist.Undo(doc)
	if !apperrors.Is(err, apperrors.ErrCodeNothingToUndo) {
		t.Errorf("Undo() code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNothingToUndo)
	}
	_, err = hist.Redo(doc)
	if !apperrors.Is(err, apperrors.ErrCodeNothingToRedo) {
		t.Errorf("Redo() code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNothingToRedo)
	}
	if hist.CanUndo() || hist.CanRedo() {
		t.Error("fresh history should report nothing to undo or redo")
	}
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	doc := sampleDoc(t)
	hist := NewHistory(0)

	hist.Record(doc)
	name := "Mutated"
	if err := doc.UpdateNode("budget", NodeUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateNode() error: %v", err)
	}

	restored, err := hist.Undo(doc)
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	n, _ := tree.Find(restored.Roots, "budget")
	if n.Name != "Budget" {
		t.Errorf("snapshot name = %q, want the pre-edit %q", n.Name, "Budget")
	}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	doc := sampleDoc(t)
	hist := NewHistory(0)

	hist.Record(doc)
	if err := doc.RemoveNode("budget"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}
	doc, err := hist.Undo(doc)
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}

	// A new edit after undo forks the timeline.
	hist.Record(doc)
	if err := doc.RemoveNode("packing"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}

	if hist.CanRedo() {
		t.Error("redo stack should be cleared by a new Record")
	}
	undo, redo := hist.Depth()
	if undo != 1 || redo != 0 {
		t.Errorf("Depth() = %d/%d, want 1/0", undo, redo)
	}
}

func TestHistoryLimitDropsOldest(t *testing.T) {
	doc := sampleDoc(t)
	hist := NewHistory(3)

	for i := 0; i < 5; i++ {
		hist.Record(doc)
		if err := doc.InsertNode("trip", &tree.Node{ID: fmt.Sprintf("extra-%d", i)}); err != nil {
			t.Fatalf("InsertNode() error: %v", err)
		}
	}

	undo, _ := hist.Depth()
	if undo != 3 {
		t.Fatalf("Depth() undo = %d, want 3", undo)
	}

	// Three undos walk back to the oldest kept snapshot, which already has
	// the first two inserts applied.
	var err error
	for i := 0; i < 3; i++ {
		doc, err = hist.Undo(doc)
		if err != nil {
			t.Fatalf("Undo() #%d error: %v", i+1, err)
		}
	}
	if doc.NodeCount() != 6 {
		t.Errorf("NodeCount() at history floor = %d, want 6", doc.NodeCount())
	}
	if hist.CanUndo() {
		t.Error("undo stack should be exhausted")
	}
}
