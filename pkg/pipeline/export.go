package pipeline

import (
	"bytes"
	"fmt"

	sunio "github.com/sunwheel-labs/sunwheel/pkg/io"
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/outline"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// =============================================================================
// Export - Output Artifacts
// =============================================================================

// Export generates output artifacts in the requested formats.
//
// The JSON artifact is the full layout interchange document (geometry,
// diagnostics, stats). DOT and text artifacts describe the source hierarchy
// rather than the geometry, so they work with external graph tools that know
// nothing about sunbursts.
func Export(res *layout.Result, roots []*tree.Node, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = marshalLayout(res)
		case FormatDOT:
			data = []byte(outline.ToDOT(roots, outline.Options{Detailed: opts.Detailed}))
		case FormatText:
			data, err = textOutline(roots)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func marshalLayout(res *layout.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := sunio.WriteLayout(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func textOutline(roots []*tree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := outline.WriteText(&buf, roots); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
