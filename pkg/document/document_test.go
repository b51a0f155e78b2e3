package document

import (
	"strings"
	"testing"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// sampleDoc builds a small document for mutation tests:
//
//	trip
//	├── packing (3)
//	│   └── clothes (1)
//	└── budget (2)
func sampleDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := New("Trip Planning")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	roots := []*tree.Node{
		{ID: "trip", Name: "Trip", Children: []*tree.Node{
			{ID: "packing", Name: "Packing", Value: 3, Children: []*tree.Node{
				{ID: "clothes", Name: "Clothes", Value: 1},
			}},
			{ID: "budget", Name: "Budget", Value: 2},
		}},
	}
	if err := doc.SetRoots(roots); err != nil {
		t.Fatalf("SetRoots() error: %v", err)
	}
	return doc
}

func TestNew(t *testing.T) {
	doc, err := New("My Map")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if doc.ID == "" {
		t.Error("document should get a generated ID")
	}
	if doc.Name != "My Map" {
		t.Errorf("Name = %q, want %q", doc.Name, "My Map")
	}
	if doc.Revision != 1 {
		t.Errorf("Revision = %d, want 1", doc.Revision)
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("fresh document should validate: %v", err)
	}
}

func TestNewRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		docName string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("x", 300)},
		{"path traversal", "../secrets"},
		{"control characters", "line\nbreak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.docName); err == nil {
				t.Errorf("New(%q) should fail", tt.docName)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDoc(t)
	cp := doc.Clone()

	cp.Name = "Changed"
	cp.Roots[0].Children[0].Name = "Changed"

	if doc.Name == "Changed" {
		t.Error("clone shares the name field effects with the original")
	}
	if doc.Roots[0].Children[0].Name == "Changed" {
		t.Error("clone shares nodes with the original")
	}
}

func TestSetRootsValidates(t *testing.T) {
	doc := sampleDoc(t)
	rev := doc.Revision

	bad := []*tree.Node{
		{ID: "a", Children: []*tree.Node{{ID: "a"}}}, // duplicate ID
	}
	err := doc.SetRoots(bad)
	if err == nil {
		t.Fatal("SetRoots() with duplicate IDs should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidTree) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidTree)
	}
	if doc.Revision != rev {
		t.Error("failed mutation must not bump the revision")
	}
	if doc.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4 (document changed on failed SetRoots)", doc.NodeCount())
	}
}

func TestInsertNode(t *testing.T) {
	t.Run("under parent", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.InsertNode("budget", &tree.Node{ID: "food", Name: "Food", Value: 1})
		if err != nil {
			t.Fatalf("InsertNode() error: %v", err)
		}
		parent, err := tree.Find(doc.Roots, "budget")
		if err != nil {
			t.Fatalf("Find(budget) error: %v", err)
		}
		if len(parent.Children) != 1 || parent.Children[0].ID != "food" {
			t.Errorf("budget children = %v, want [food]", tree.NodeIDs(parent.Children))
		}
	})

	t.Run("as new root", func(t *testing.T) {
		doc := sampleDoc(t)
		if err := doc.InsertNode("", &tree.Node{ID: "notes", Name: "Notes"}); err != nil {
			t.Fatalf("InsertNode() error: %v", err)
		}
		if got := tree.NodeIDs(doc.Roots); len(got) != 2 || got[1] != "notes" {
			t.Errorf("roots = %v, want [trip notes]", got)
		}
	})

	t.Run("assigns missing ID", func(t *testing.T) {
		doc := sampleDoc(t)
		if err := doc.InsertNode("trip", &tree.Node{Name: "Anonymous"}); err != nil {
			t.Fatalf("InsertNode() error: %v", err)
		}
		parent, _ := tree.Find(doc.Roots, "trip")
		added := parent.Children[len(parent.Children)-1]
		if added.ID == "" {
			t.Error("inserted node should receive a generated ID")
		}
	})

	t.Run("does not mutate the argument", func(t *testing.T) {
		doc := sampleDoc(t)
		n := &tree.Node{Name: "Anonymous"}
		if err := doc.InsertNode("trip", n); err != nil {
			t.Fatalf("InsertNode() error: %v", err)
		}
		if n.ID != "" {
			t.Errorf("caller's node got ID %q assigned", n.ID)
		}
	})

	t.Run("duplicate ID rejected", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.InsertNode("trip", &tree.Node{ID: "budget"})
		if !apperrors.Is(err, apperrors.ErrCodeInvalidTree) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidTree)
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.InsertNode("ghost", &tree.Node{ID: "x"})
		if !apperrors.Is(err, apperrors.ErrCodeNodeNotFound) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNodeNotFound)
		}
	})

	t.Run("nil node", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.InsertNode("trip", nil)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidNode) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidNode)
		}
	})
}

func TestUpdateNode(t *testing.T) {
	doc := sampleDoc(t)
	name := "Gear"
	value := 5.5

	if err := doc.UpdateNode("packing", NodeUpdate{Name: &name, Value: &value}); err != nil {
		t.Fatalf("UpdateNode() error: %v", err)
	}

	n, err := tree.Find(doc.Roots, "packing")
	if err != nil {
		t.Fatalf("Find(packing) error: %v", err)
	}
	if n.Name != "Gear" || n.Value != 5.5 {
		t.Errorf("node = %q/%v, want Gear/5.5", n.Name, n.Value)
	}
	if n.Color != "" {
		t.Errorf("untouched field changed: color = %q", n.Color)
	}
	if len(n.Children) != 1 {
		t.Error("update must not drop children")
	}
}

func TestUpdateNodeRejectsNegativeValue(t *testing.T) {
	doc := sampleDoc(t)
	bad := -1.0
	err := doc.UpdateNode("budget", NodeUpdate{Value: &bad})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidTree) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidTree)
	}
	n, _ := tree.Find(doc.Roots, "budget")
	if n.Value != 2 {
		t.Errorf("failed update leaked: value = %v, want 2", n.Value)
	}
}

func TestUpdateNodeMissing(t *testing.T) {
	doc := sampleDoc(t)
	name := "x"
	err := doc.UpdateNode("ghost", NodeUpdate{Name: &name})
	if !apperrors.Is(err, apperrors.ErrCodeNodeNotFound) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNodeNotFound)
	}
}

func TestMoveNode(t *testing.T) {
	t.Run("reorder within parent", func(t *testing.T) {
		doc := sampleDoc(t)
		if err := doc.MoveNode("budget", "trip", 0); err != nil {
			t.Fatalf("MoveNode() error: %v", err)
		}
		parent, _ := tree.Find(doc.Roots, "trip")
		got := tree.NodeIDs(parent.Children)
		if len(got) != 2 || got[0] != "budget" || got[1] != "packing" {
			t.Errorf("children = %v, want [budget packing]", got)
		}
	})

	t.Run("reparent keeps subtree", func(t *testing.T) {
		doc := sampleDoc(t)
		if err := doc.MoveNode("packing", "budget", 0); err != nil {
			t.Fatalf("MoveNode() error: %v", err)
		}
		moved, err := tree.Find(doc.Roots, "packing")
		if err != nil {
			t.Fatalf("Find(packing) after move: %v", err)
		}
		if len(moved.Children) != 1 || moved.Children[0].ID != "clothes" {
			t.Error("moved node lost its subtree")
		}
		parent, _ := tree.FindParent(doc.Roots, "packing")
		if parent == nil || parent.ID != "budget" {
			t.Errorf("new parent = %v, want budget", parent)
		}
		if doc.NodeCount() != 4 {
			t.Errorf("NodeCount() = %d, want 4", doc.NodeCount())
		}
	})

	t.Run("promote to root", func(t *testing.T) {
		doc := sampleDoc(t)
		if err := doc.MoveNode("packing", "", 0); err != nil {
			t.Fatalf("MoveNode() error: %v", err)
		}
		got := tree.NodeIDs(doc.Roots)
		if len(got) != 2 || got[0] != "packing" || got[1] != "trip" {
			t.Errorf("roots = %v, want [packing trip]", got)
		}
	})

	t.Run("index clamped", func(t *testing.T) {
		doc := sampleDoc(t)
		if err := doc.MoveNode("clothes", "trip", 99); err != nil {
			t.Fatalf("MoveNode() error: %v", err)
		}
		parent, _ := tree.Find(doc.Roots, "trip")
		got := tree.NodeIDs(parent.Children)
		if got[len(got)-1] != "clothes" {
			t.Errorf("children = %v, want clothes last", got)
		}
	})

	t.Run("under own subtree rejected", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.MoveNode("packing", "clothes", 0)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidNode) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidNode)
		}
	})

	t.Run("under itself rejected", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.MoveNode("packing", "packing", 0)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidNode) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidNode)
		}
	})

	t.Run("missing node", func(t *testing.T) {
		doc := sampleDoc(t)
		err := doc.MoveNode("ghost", "trip", 0)
		if !apperrors.Is(err, apperrors.ErrCodeNodeNotFound) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNodeNotFound)
		}
	})
}

func TestRemoveNode(t *testing.T) {
	doc := sampleDoc(t)
	if err := doc.RemoveNode("packing"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}
	if doc.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2 (subtree should go with the node)", doc.NodeCount())
	}
	if _, err := tree.Find(doc.Roots, "clothes"); err == nil {
		t.Error("descendant of the removed node still present")
	}

	err := doc.RemoveNode("ghost")
	if !apperrors.Is(err, apperrors.ErrCodeNodeNotFound) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNodeNotFound)
	}
}

func TestRemoveLastRoot(t *testing.T) {
	doc, err := New("Tiny")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := doc.InsertNode("", &tree.Node{ID: "only"}); err != nil {
		t.Fatalf("InsertNode() error: %v", err)
	}
	if err := doc.RemoveNode("only"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}
	if doc.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", doc.NodeCount())
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("empty document should validate: %v", err)
	}
}

func TestMutationsBumpRevision(t *testing.T) {
	doc := sampleDoc(t)
	rev := doc.Revision

	steps := []struct {
		name string
		do   func() error
	}{
		{"rename", func() error { return doc.Rename("Renamed") }},
		{"insert", func() error { return doc.InsertNode("trip", &tree.Node{ID: "n1"}) }},
		{"update", func() error { name := "N"; return doc.UpdateNode("n1", NodeUpdate{Name: &name}) }},
		{"move", func() error { return doc.MoveNode("n1", "budget", 0) }},
		{"remove", func() error { return doc.RemoveNode("n1") }},
	}

	for _, step := range steps {
		if err := step.do(); err != nil {
			t.Fatalf("%s error: %v", step.name, err)
		}
		rev++
		if doc.Revision != rev {
			t.Errorf("after %s: Revision = %d, want %d", step.name, doc.Revision, rev)
		}
	}
}
