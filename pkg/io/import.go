package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// ReadTree decodes a JSON forest from r.
//
// The canonical input is an object with a "roots" array:
//
//	{"roots": [{"id": "a"}, {"id": "b", "children": [{"id": "b1"}]}]}
//
// A bare array of nodes and a single root object are also accepted; see the
// package documentation for the field reference.
//
// ReadTree returns an error if:
//   - The JSON is malformed or not one of the accepted shapes
//   - A node is missing an ID or two nodes share one
//   - A node carries a negative value
//
// Errors are wrapped with context describing what failed. Use errors.Is to
// check for specific validation errors from [tree.Validate].
//
// The returned forest is independent of r and can be modified safely after
// ReadTree returns. ReadTree does not close r.
func ReadTree(r io.Reader) ([]*tree.Node, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	roots, err := decodeForest(raw)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(roots); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return roots, nil
}

// decodeForest accepts the three top-level shapes: envelope, array, single
// root object. The first byte of the already-decoded value tells them apart.
func decodeForest(raw json.RawMessage) ([]*tree.Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode: empty document")
	}

	switch trimmed[0] {
	case '[':
		var roots []*tree.Node
		if err := json.Unmarshal(trimmed, &roots); err != nil {
			return nil, fmt.Errorf("decode node array: %w", err)
		}
		return roots, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if env.Roots != nil {
			return env.Roots, nil
		}
		// No "roots" key: treat the object as a lone root node.
		var root tree.Node
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("decode root node: %w", err)
		}
		return []*tree.Node{&root}, nil
	default:
		return nil, fmt.Errorf("decode: expected an object or array, got %q", trimmed[0])
	}
}

// ImportTree reads a JSON file at path and returns the decoded forest.
//
// ImportTree opens the file, decodes it using [ReadTree], and closes the
// file. Errors wrap the underlying cause with the file path for context, and
// include the same validation errors as [ReadTree] for malformed forests.
func ImportTree(path string) ([]*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// ReadLayout decodes a computed layout from r, as written by [WriteLayout].
// The geometry is taken as-is; run [layout.Validate] on the result when the
// source is untrusted.
func ReadLayout(r io.Reader) (*layout.Result, error) {
	var res layout.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &res, nil
}

// ImportLayout reads a layout JSON file at path.
func ImportLayout(path string) (*layout.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
