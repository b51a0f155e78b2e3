package pipeline

import (
	"bytes"
	"fmt"
	"os"

	sunio "github.com/sunwheel-labs/sunwheel/pkg/io"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// =============================================================================
// Ingest - Forest Acquisition
// =============================================================================

// LoadForest reads a mind-map forest from a file path, with "-" meaning
// stdin. The forest arrives validated; a structurally unsound tree is
// rejected here, before any layout work happens.
func LoadForest(path string) ([]*tree.Node, error) {
	if path == "-" {
		roots, err := sunio.ReadTree(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return roots, nil
	}
	return sunio.ImportTree(path)
}

// ParseForest decodes and validates a forest from raw JSON, the form API
// request bodies arrive in. It accepts the same shapes as file import: a
// document envelope, a bare root array, or a single root object.
func ParseForest(data []byte) ([]*tree.Node, error) {
	return sunio.ReadTree(bytes.NewReader(data))
}
