// Package tree provides the hierarchical node model that sunburst layouts
// are computed from.
//
// # Overview
//
// Sunwheel renders mind maps as radial partitions: every node owns an angular
// sector, and its children subdivide that sector one ring further out. This
// package defines the [Node] type that carries the hierarchy, along with
// boundary validation and traversal helpers. Layout computation itself lives
// in the layout package; tree only guarantees that what enters layout is
// structurally sound.
//
// # Basic Usage
//
// Build nodes directly and validate the forest once at the boundary:
//
//	root := &tree.Node{ID: "root", Name: "Project", Children: []*tree.Node{
//	    {ID: "a", Name: "Research", Value: 3},
//	    {ID: "b", Name: "Build", Value: 1},
//	}}
//	if err := tree.Validate([]*tree.Node{root}); err != nil {
//	    // reject the input
//	}
//
// [Validate] checks ID uniqueness, non-negative values, and rejects cyclic
// references. Cycles cannot be expressed in serialized form, but a
// programmatically assembled tree can alias child pointers; validation keeps
// that from sending the layout walk into infinite recursion.
//
// # Ordering
//
// The order of [Node.Children] is meaningful: siblings are laid out clockwise
// in exactly that order. No function in this package or in layout reorders
// children.
//
// # Concurrency
//
// Node values are treated as immutable once validated. Functions here never
// mutate their inputs; [Clone] produces a deep copy when a caller needs to
// edit a tree that is shared.
package tree
