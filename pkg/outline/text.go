package outline

import (
	"fmt"
	"io"

	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// WriteText writes an indented plain-text outline of the forest to w.
// Each line shows the node's label and, when set, its authored value:
//
//	Trip
//	├── Packing (3)
//	│   └── Clothes (1)
//	└── Budget (2)
func WriteText(w io.Writer, roots []*tree.Node) error {
	for _, r := range roots {
		if _, err := fmt.Fprintln(w, nodeLine(r)); err != nil {
			return err
		}
		if err := writeChildren(w, r, ""); err != nil {
			return err
		}
	}
	return nil
}

func writeChildren(w io.Writer, n *tree.Node, prefix string) error {
	for i, c := range n.Children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(n.Children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		if _, err := fmt.Fprintln(w, prefix+connector+nodeLine(c)); err != nil {
			return err
		}
		if err := writeChildren(w, c, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func nodeLine(n *tree.Node) string {
	if n.Value > 0 {
		return fmt.Sprintf("%s (%g)", n.Label(), n.Value)
	}
	return n.Label()
}
