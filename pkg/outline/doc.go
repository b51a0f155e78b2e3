// Package outline exports mind-map forests as machine-readable outlines.
//
// # Overview
//
// This package produces textual views of the hierarchy for tooling that
// lives outside the sunburst itself: Graphviz DOT source for structural
// inspection with external graph tools, and an indented plain-text outline
// for terminals and diffs. Neither output contains geometry; both describe
// the parent/child structure the layout engine consumes.
//
// # Usage
//
// Convert a forest to DOT and feed it to any Graphviz toolchain:
//
//	dot := outline.ToDOT(roots, outline.Options{Detailed: true})
//	os.WriteFile("map.dot", []byte(dot), 0644)
//
// Or print an indented outline:
//
//	outline.WriteText(os.Stdout, roots)
//
// # Options
//
// The [Options] struct controls DOT generation:
//
//   - Detailed: When true, node labels include the value and subtree size
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Nodes carrying an authored color are filled with it.
package outline
