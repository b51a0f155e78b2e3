// Package document provides mind-map documents with edit history and
// pluggable persistence.
//
// A [Document] owns a validated forest of nodes plus identity and revision
// metadata. Node-level mutations (insert, update, move, remove) are
// validate-first: each one applies to a working copy, runs the structural
// checks from pkg/tree, and only commits when the result is sound, so a
// stored document can never be observed in an invalid state.
//
// Persistence goes through the [Store] interface, with implementations for
// different backends:
//   - memory: In-process storage for development and tests
//   - file: JSON files in a config directory for CLI usage
//   - mongo: MongoDB collection for server deployments
//
// [History] keeps a bounded undo/redo stack of document snapshots. History
// is an in-memory editing aid and is never persisted with the document.
//
// # Usage
//
// Create and edit a document:
//
//	doc, err := document.New("Trip Planning")
//	if err != nil {
//	    return err
//	}
//	err = doc.InsertNode("", &tree.Node{Name: "Packing"})
//
//	// With undo support
//	hist := document.NewHistory(0) // default limit
//	hist.Record(doc)
//	err = doc.RemoveNode(id)
//	doc, err = hist.Undo(doc) // back to the pre-remove snapshot
//
// Persist it:
//
//	store, err := document.NewFileStore("") // ~/.config/sunwheel/documents
//	if err != nil {
//	    return err
//	}
//	err = store.Put(ctx, doc)
package document

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// Document is a named mind-map forest with revision metadata. The JSON form
// is the API wire contract; the bson tags back the MongoDB store.
type Document struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	Roots     []*tree.Node `json:"roots" bson:"roots"`
	Revision  int          `json:"revision" bson:"revision"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}

// New creates an empty document with a fresh UUID and revision 1.
// The name is boundary-validated; see [apperrors.ValidateDocumentName].
func New(name string) (*Document, error) {
	if err := apperrors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewID returns a fresh node or document identifier.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy. Snapshots taken for history or returned from
// stores rely on clones being fully independent of the original.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Roots = tree.CloneForest(d.Roots)
	return &cp
}

// Validate checks the document's identity fields and forest. Stores call it
// on every Put so no backend ever holds an unsound document.
func (d *Document) Validate() error {
	if err := apperrors.ValidateDocumentID(d.ID); err != nil {
		return err
	}
	if err := apperrors.ValidateDocumentName(d.Name); err != nil {
		return err
	}
	if err := tree.Validate(d.Roots); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "document %s", d.ID)
	}
	return nil
}

// Rename sets a new validated name and bumps the revision.
func (d *Document) Rename(name string) error {
	if err := apperrors.ValidateDocumentName(name); err != nil {
		return err
	}
	d.Name = name
	d.bump()
	return nil
}

// SetRoots replaces the whole forest. The replacement is cloned and
// validated before it is committed.
func (d *Document) SetRoots(roots []*tree.Node) error {
	next := tree.CloneForest(roots)
	if err := tree.Validate(next); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "set roots")
	}
	d.Roots = next
	d.bump()
	return nil
}

// InsertNode adds a clone of n under the parent with parentID, or as a new
// root when parentID is empty. Nodes arriving without an ID are assigned a
// fresh UUID. The node lands after its new siblings, matching how editors
// append.
func (d *Document) InsertNode(parentID string, n *tree.Node) error {
	if n == nil {
		return apperrors.New(apperrors.ErrCodeInvalidNode, "node cannot be nil")
	}

	child := tree.Clone(n)
	if child.ID == "" {
		child.ID = NewID()
	}

	next := tree.CloneForest(d.Roots)
	if parentID == "" {
		next = append(next, child)
	} else {
		parent, err := tree.Find(next, parentID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "parent node %s", parentID)
		}
		parent.Children = append(parent.Children, child)
	}

	if err := tree.Validate(next); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "insert node %s", child.ID)
	}
	d.Roots = next
	d.bump()
	return nil
}

// NodeUpdate carries the fields an update may change. Nil fields are left
// untouched, so clients can patch a single property.
type NodeUpdate struct {
	Name  *string  `json:"name,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Color *string  `json:"color,omitempty"`
}

// UpdateNode applies a partial update to the node with the given ID.
func (d *Document) UpdateNode(id string, patch NodeUpdate) error {
	next := tree.CloneForest(d.Roots)
	n, err := tree.Find(next, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "node %s", id)
	}

	if patch.Name != nil {
		n.Name = *patch.Name
	}
	if patch.Value != nil {
		n.Value = *patch.Value
	}
	if patch.Color != nil {
		n.Color = *patch.Color
	}

	if err := tree.Validate(next); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "update node %s", id)
	}
	d.Roots = next
	d.bump()
	return nil
}

// MoveNode detaches the node with the given ID and reattaches it under
// newParentID at the given sibling index (clamped to the valid range). An
// empty newParentID promotes the node to a root. Moving a node under its own
// subtree is rejected.
func (d *Document) MoveNode(id, newParentID string, index int) error {
	if id == newParentID {
		return apperrors.New(apperrors.ErrCodeInvalidNode, "cannot move node %s under itself", id)
	}

	next := tree.CloneForest(d.Roots)
	moved, err := tree.Find(next, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "node %s", id)
	}
	if newParentID != "" {
		if _, err := tree.Find([]*tree.Node{moved}, newParentID); err == nil {
			return apperrors.New(apperrors.ErrCodeInvalidNode, "cannot move node %s under its own subtree", id)
		}
	}

	next = detach(next, moved)

	if newParentID == "" {
		next = insertAt(next, moved, index)
	} else {
		parent, err := tree.Find(next, newParentID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "parent node %s", newParentID)
		}
		parent.Children = insertAt(parent.Children, moved, index)
	}

	if err := tree.Validate(next); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "move node %s", id)
	}
	d.Roots = next
	d.bump()
	return nil
}

// RemoveNode deletes the node with the given ID and its whole subtree.
func (d *Document) RemoveNode(id string) error {
	next := tree.CloneForest(d.Roots)
	target, err := tree.Find(next, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "node %s", id)
	}

	d.Roots = detach(next, target)
	d.bump()
	return nil
}

// NodeCount returns the number of nodes across all roots.
func (d *Document) NodeCount() int {
	return tree.Count(d.Roots)
}

func (d *Document) bump() {
	d.Revision++
	d.UpdatedAt = time.Now().UTC()
}

// detach removes target from the forest, wherever it sits, and returns the
// updated root slice. The target keeps its children.
func detach(roots []*tree.Node, target *tree.Node) []*tree.Node {
	out := roots[:0]
	for _, r := range roots {
		if r == target {
			continue
		}
		out = append(out, r)
	}
	if len(out) != len(roots) {
		return out
	}

	tree.Walk(out, func(n *tree.Node, _ int) bool {
		for i, c := range n.Children {
			if c == target {
				n.Children = append(n.Children[:i], n.Children[i+1:]...)
				return false
			}
		}
		return true
	})
	return out
}

// insertAt places n at index within siblings, clamping out-of-range indexes
// to the ends. A negative index appends.
func insertAt(siblings []*tree.Node, n *tree.Node, index int) []*tree.Node {
	if index < 0 || index > len(siblings) {
		index = len(siblings)
	}
	siblings = append(siblings, nil)
	copy(siblings[index+1:], siblings[index:])
	siblings[index] = n
	return siblings
}
