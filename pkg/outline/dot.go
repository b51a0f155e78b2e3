package outline

import (
	"fmt"
	"strings"

	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// Options configures outline generation.
type Options struct {
	// Detailed includes the authored value and subtree leaf count in node
	// labels. When false, only the node's display label is shown.
	Detailed bool
}

// dotHeader opens the digraph and styles nodes for mind-map content. The
// transparent background keeps the output embeddable.
const dotHeader = `digraph sunwheel {
  rankdir=TB;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
  ranksep=0.5;
  nodesep=0.3;

`

// ToDOT converts a forest to Graphviz DOT format. The resulting string can
// be processed with any Graphviz toolchain (dot, neato, online viewers).
//
// Edges run from parent to child, so the DOT graph is the hierarchy the
// layout engine rings outward.
func ToDOT(roots []*tree.Node, opts Options) string {
	var b strings.Builder
	b.WriteString(dotHeader)

	tree.Walk(roots, func(n *tree.Node, _ int) bool {
		fmt.Fprintf(&b, "  %q [%s];\n", n.ID, strings.Join(dotAttrs(n, opts.Detailed), ", "))
		return true
	})

	b.WriteString("\n")
	tree.Walk(roots, func(n *tree.Node, _ int) bool {
		for _, c := range n.Children {
			fmt.Fprintf(&b, "  %q -> %q;\n", n.ID, c.ID)
		}
		return true
	})

	b.WriteString("}\n")
	return b.String()
}

// dotAttrs assembles the attribute list for one node, folding the label and
// the authored color together.
func dotAttrs(n *tree.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", dotLabel(n, detailed))}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	return attrs
}

func dotLabel(n *tree.Node, detailed bool) string {
	if !detailed {
		return n.Label()
	}

	lines := []string{n.Label(), fmt.Sprintf("value: %g", n.Value)}
	if !n.IsLeaf() {
		lines = append(lines, fmt.Sprintf("leaves: %d", tree.Leaves(n)))
	}
	return strings.Join(lines, "\n")
}
