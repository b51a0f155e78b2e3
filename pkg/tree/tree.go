package tree

import "errors"

var (
	// ErrInvalidNodeID is returned by [Validate] when a node has an empty ID.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Validate] when two nodes share an ID.
	// Node IDs must be unique across the whole forest.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrNegativeValue is returned by [Validate] when a node carries a
	// negative weight. Zero is allowed and treated as "unset".
	ErrNegativeValue = errors.New("node value must not be negative")

	// ErrCyclicStructure is returned by [Validate] when a node is reachable
	// from itself. Serialized trees cannot express this, but trees assembled
	// in memory can alias child pointers.
	ErrCyclicStructure = errors.New("tree contains a cycle")

	// ErrNodeNotFound is returned by lookup helpers when no node with the
	// requested ID exists in the forest.
	ErrNodeNotFound = errors.New("node not found")
)

// Node is a single vertex in a mind-map hierarchy. A document holds a forest
// of root nodes; each node's children divide its angular sector in the
// rendered sunburst.
//
// Value is the node's layout weight. Zero or unset means "weigh as 1" under
// the default weight model, so plain topology trees spread siblings evenly.
// Color is an opaque string chosen by the editing client; layout passes it
// through untouched.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name,omitempty" bson:"name,omitempty"`
	Value    float64 `json:"value,omitempty" bson:"value,omitempty"`
	Color    string  `json:"color,omitempty" bson:"color,omitempty"`
	Children []*Node `json:"children,omitempty" bson:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Label returns the display name, falling back to the ID when Name is empty.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Validate checks a forest for structural soundness and returns nil if valid.
// It verifies three constraints:
//
//  1. Every node has a non-empty ID, unique across the forest
//  2. No node carries a negative Value
//  3. No node is reachable from itself (the pointer structure is a tree)
//
// Returns ErrInvalidNodeID, ErrDuplicateNodeID, ErrNegativeValue, or
// ErrCyclicStructure accordingly. Validation is meant to run once at the
// boundary (deserialization, API ingress); downstream code may assume a
// validated forest.
func Validate(roots []*Node) error {
	seen := make(map[string]struct{})
	onPath := make(map[*Node]struct{})

	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n == nil {
			return nil
		}
		if _, ok := onPath[n]; ok {
			return ErrCyclicStructure
		}
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, ok := seen[n.ID]; ok {
			return ErrDuplicateNodeID
		}
		if n.Value < 0 {
			return ErrNegativeValue
		}
		seen[n.ID] = struct{}{}

		onPath[n] = struct{}{}
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		delete(onPath, n)
		return nil
	}

	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every node in the forest in depth-first, children-in-order
// sequence, calling fn with the node and its depth (roots are depth 0).
// If fn returns false the subtree below that node is skipped.
//
// Walk assumes a validated (acyclic) forest.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if n == nil {
			return
		}
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range roots {
		visit(r, 0)
	}
}

// Find returns the node with the given ID, or nil and ErrNodeNotFound.
func Find(roots []*Node, id string) (*Node, error) {
	var found *Node
	Walk(roots, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrNodeNotFound
	}
	return found, nil
}

// FindParent returns the parent of the node with the given ID, or nil for a
// root node. Returns ErrNodeNotFound when the ID is absent entirely.
func FindParent(roots []*Node, id string) (*Node, error) {
	for _, r := range roots {
		if r != nil && r.ID == id {
			return nil, nil
		}
	}
	var parent *Node
	Walk(roots, func(n *Node, _ int) bool {
		if parent != nil {
			return false
		}
		for _, c := range n.Children {
			if c != nil && c.ID == id {
				parent = n
				return false
			}
		}
		return true
	})
	if parent == nil {
		return nil, ErrNodeNotFound
	}
	return parent, nil
}

// Count returns the total number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	Walk(roots, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Depth returns the maximum depth of any node in the forest, with roots at
// depth 0. Returns -1 for an empty forest.
func Depth(roots []*Node) int {
	maxDepth := -1
	Walk(roots, func(_ *Node, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	return maxDepth
}

// Leaves returns the number of leaf nodes in the subtree rooted at n.
// A childless node counts as one leaf, including n itself.
func Leaves(n *Node) int {
	if n == nil {
		return 0
	}
	if len(n.Children) == 0 {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += Leaves(c)
	}
	return total
}

// Clone returns a deep copy of the node and its subtree.
// Returns nil for a nil node.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = Clone(c)
		}
	}
	return &cp
}

// CloneForest deep-copies a slice of root nodes.
func CloneForest(roots []*Node) []*Node {
	if roots == nil {
		return nil
	}
	out := make([]*Node, len(roots))
	for i, r := range roots {
		out[i] = Clone(r)
	}
	return out
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
