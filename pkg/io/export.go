package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// envelope is the canonical top-level form for serialized forests.
type envelope struct {
	Roots []*tree.Node `json:"roots"`
}

// encodeIndented writes v to w as two-space-indented JSON. what names the
// payload in error messages.
func encodeIndented(w io.Writer, v any, what string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", what, err)
	}
	return nil
}

// exportFile creates path and streams write through it.
func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

// WriteTree encodes a forest as indented JSON and writes it to w, always in
// the "roots" envelope form. The output can be re-imported with [ReadTree]
// for round-trip processing.
func WriteTree(roots []*tree.Node, w io.Writer) error {
	if roots == nil {
		roots = []*tree.Node{}
	}
	return encodeIndented(w, envelope{Roots: roots}, "forest")
}

// ExportTree writes a forest to a JSON file at path.
// This is a convenience wrapper around [WriteTree] for file-based output.
func ExportTree(roots []*tree.Node, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteTree(roots, w) })
}

// WriteLayout encodes a computed layout as indented JSON and writes it to w.
// The output includes all placed sectors (gap sectors included), diagnostics,
// and stats, and can be re-imported with [ReadLayout].
func WriteLayout(res *layout.Result, w io.Writer) error {
	return encodeIndented(w, res, "layout")
}

// ExportLayout writes a layout to a JSON file at path.
func ExportLayout(res *layout.Result, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteLayout(res, w) })
}
