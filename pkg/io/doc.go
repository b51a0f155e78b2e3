// Package io provides JSON import and export for mind-map forests and
// computed sunburst layouts.
//
// # Overview
//
// This package is the interchange boundary of the engine. The format is
// designed for:
//
//   - Hand-written or tool-generated hierarchy files fed to the layout CLI
//   - Integration with editing clients that produce or consume documents
//   - Caching of computed layouts for faster re-rendering
//   - Round-trip preservation: import, lay out, export, and re-import
//
// # Tree Format
//
// The canonical form is an object with a "roots" array of nested nodes:
//
//	{
//	  "roots": [
//	    {
//	      "id": "project",
//	      "name": "Project",
//	      "children": [
//	        {"id": "research", "value": 3},
//	        {"id": "build", "value": 1}
//	      ]
//	    }
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier across the whole forest
//
// Optional:
//   - name: Display label (falls back to the id)
//   - value: Layout weight; zero or omitted weighs as 1
//   - color: Opaque display hint, passed through untouched
//   - children: Nested child nodes in authored order
//
// # Import
//
// Use [ImportTree] to read a forest from a file path, or [ReadTree] to read
// from any io.Reader:
//
//	roots, err := io.ImportTree("mindmap.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import is lenient about the top-level shape: a "roots" envelope, a bare
// array of nodes, and a single root object are all accepted, because editing
// clients commonly export a lone root. Every form is validated on read
// (non-empty unique IDs, non-negative values), and errors are wrapped with
// context about what failed. Export always writes the envelope form.
//
// # Layout Interchange
//
// [WriteLayout] and [ReadLayout] round-trip a complete [layout.Result],
// including gap sectors, diagnostics, and stats, so external renderers can
// consume precomputed geometry without running the engine. Layout files are
// not geometrically re-validated on read; callers that ingest untrusted
// layouts can run [layout.Validate] themselves.
//
// # Concurrency
//
// All functions are safe to call concurrently. Imported forests are
// independent instances that can be modified freely after import.
package io
