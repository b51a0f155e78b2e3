// Package pkg provides the core libraries for Sunwheel mind-map layout.
//
// # Overview
//
// Sunwheel turns hierarchical mind maps into sunburst charts: each node
// becomes an annular sector whose angular size is proportional to its weight,
// with children nested one ring further out than their parent. The pkg
// directory is organized into five main areas:
//
//  1. [tree] - The hierarchical node model (forests, validation, traversal)
//  2. [layout] - Geometry (angular partitioning, gaps, rings, hit-testing)
//  3. [pipeline] - Orchestration (load → layout → validate → export)
//  4. [document] - Editable mind-map documents and their stores
//  5. [cache] - Layout result caching keyed by content hashes
//
// # Architecture
//
// The typical data flow through Sunwheel:
//
//	JSON mind map (file, stdin, or HTTP body)
//	         ↓
//	    [tree] package (decode + validate the forest)
//	         ↓
//	    [layout] package (partition angles, splice gaps, assign rings)
//	         ↓
//	    [pipeline] package (cache, validate, export)
//	         ↓
//	    JSON/DOT/text output
//
// # Quick Start
//
// Load a mind map and compute its sunburst layout:
//
//	import (
//	    "github.com/sunwheel-labs/sunwheel/pkg/layout"
//	    sunio "github.com/sunwheel-labs/sunwheel/pkg/io"
//	)
//
//	// 1. Load the forest
//	roots, _ := sunio.ImportTree("map.json")
//
//	// 2. Compute the layout
//	res, _ := layout.Build(roots, layout.DefaultConfig())
//
//	// 3. Resolve a click at (412, 305) on an 800x600 canvas
//	hit := layout.HitTest(412, 305, res.Roots, 800, 600)
//
// # Main Packages
//
// ## Node Model
//
// [tree] - The input side of every layout: a forest of nodes with IDs, labels,
// weights, and children. Provides structural validation (unique IDs, no
// cycles, non-negative values), pre-order traversal, lookup, and deep cloning.
//
// ## Geometry
//
// [layout] - The layout engine. [layout.Partition] divides an angular
// interval among weighted siblings, [layout.RingFor] maps tree depth to a
// radial band, and [layout.Build] combines the two recursively into a placed
// forest of sectors. Gap sectors are interleaved between siblings where the
// configuration applies, and [layout.InsertGaps] / [layout.RemoveGaps]
// restructure gaps on an already-placed tree. [layout.ToScreen] and
// [layout.HitTest] convert between polar geometry and pixel coordinates, and
// [layout.Validate] checks a placed forest for angular overlap, tiling gaps,
// and ring ordering violations.
//
// ## Orchestration
//
// [pipeline] - The complete layout pipeline (load → layout → validate →
// export) used by the CLI and the HTTP server. [pipeline.Runner] adds
// content-addressed caching on top: the cache key covers the tree hash, the
// layout configuration, and the weight model, so any input change misses
// cleanly.
//
// ## Documents
//
// [document] - Editable mind-map documents with node-level operations
// (insert, update, move, remove) and optimistic revision bumping.
// [document.History] provides bounded undo/redo. Three [document.Store]
// implementations: MemoryStore for tests, FileStore for the CLI
// (one JSON file per document), MongoStore for the server.
//
// ## Infrastructure
//
// [cache] - Byte-oriented cache with TTLs behind a small [cache.Cache]
// interface. FileCache for the CLI (filesystem), RedisCache for the server,
// MemoryCache for testing, NullCache to disable caching. [cache.Keyer]
// builds layout keys; [cache.ScopedKeyer] prefixes them per document so
// server-side edits invalidate per document, not globally.
//
// [io] - JSON codecs for the two wire shapes: mind-map forests (envelope,
// bare array, or single root) and computed layouts. Import never trusts the
// input: forests are validated structurally on the way in.
//
// [outline] - Forest exports for downstream tooling: Graphviz DOT and an
// indented text outline.
//
// [errors] - Coded errors shared across the CLI and server. Codes map to
// HTTP statuses and user-facing messages; input validation for document
// names, document IDs, and node IDs lives here.
//
// [observability] - Hook interfaces the pipeline, cache, and server call at
// notable points. The default hooks are no-ops; tests and embedders swap in
// their own to count cache hits or time layout passes.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Common Workflows
//
// Lay out with the subtree weight model and parallel roots:
//
//	res, _ := layout.Build(roots, cfg,
//	    layout.WithWeightFunc(layout.SubtreeWeight),
//	    layout.WithParallelism(4),
//	)
//
// Run the cached pipeline:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	defer runner.Close()
//	result, _ := runner.Execute(ctx, roots, pipeline.Options{
//	    Config:  layout.DefaultConfig(),
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatDOT},
//	})
//
// Edit a document and recompute:
//
//	doc, _ := document.New("Japan Trip")
//	doc.SetRoots(roots)
//	doc.InsertNode("sights", &tree.Node{ID: "nikko", Name: "Nikko", Value: 2})
//	store.Put(ctx, doc)
//
// Validate untrusted geometry:
//
//	res, _ := sunio.ImportLayout("map.layout.json")
//	for _, v := range layout.Validate(res.Roots) {
//	    fmt.Printf("%s %s: %s\n", v.Kind, v.NodeID, v.Message)
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [tree]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/tree
// [layout]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout
// [layout.Partition]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#Partition
// [layout.RingFor]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#RingFor
// [layout.Build]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#Build
// [layout.InsertGaps]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#InsertGaps
// [layout.RemoveGaps]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#RemoveGaps
// [layout.ToScreen]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#ToScreen
// [layout.HitTest]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#HitTest
// [layout.Validate]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/layout#Validate
// [pipeline]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/pipeline#Runner
// [document]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/document
// [document.History]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/document#History
// [document.Store]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/document#Store
// [cache]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/cache#Cache
// [cache.Keyer]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/cache#Keyer
// [cache.ScopedKeyer]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/cache#ScopedKeyer
// [io]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/io
// [outline]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/outline
// [errors]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/sunwheel-labs/sunwheel/pkg/buildinfo
package pkg
