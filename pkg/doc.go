// Package pkg provides the core libraries for takitaro, which turns the layers
// of an Inkscape drawing into a sequence of draw-on SVG animations.
//
// # Overview
//
// An Inkscape drawing keeps its artwork in layers: top-level groups marked
// with inkscape:groupmode="layer". Takitaro exports one SVG per layer. Each
// file shows the layers from the bottom of the stack up to its own, and the
// paths of the newly revealed layer draw themselves on through CSS
// stroke-dasharray animation.
//
// # Architecture
//
// The typical data flow through takitaro:
//
//	Inkscape SVG
//	     ↓
//	[svgdoc] package (parse, find layers, visibility, style sheet)
//	     ↓
//	[plan] package (layer order, cumulative export steps, file names)
//	     ↓
//	[animate] package (measure paths, allocate time windows, CSS rules)
//	     ↓       ↘
//	     ↓      [geometry] package (path data to sub-path lengths)
//	     ↓
//	[pipeline] package (per-step visibility, animation, atomic write)
//	     ↓
//	one SVG file per exported layer
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/takitaro/pkg/pipeline"
//	    "github.com/matzehuels/takitaro/pkg/svgdoc"
//	)
//
//	doc, _ := svgdoc.ReadFile("drawing.svg")
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), doc, pipeline.Options{
//	    OutputDir: "frames",
//	    Enumerate: true,
//	})
//	fmt.Printf("Processed %d export layers.\n", result.Stats.Processed)
//
// # Main Packages
//
// ## Domain Logic
//
// [plan] - Layer listing (bottom of the stack first) and the cumulative
// export plan. Pure functions over layer ids and labels.
//
// [animate] - Path length analysis, proportional time allocation and CSS
// synthesis. Rules are upserted by id, so re-running an export over the same
// document replaces its rules instead of duplicating them.
//
// [geometry] - Path data measurement. Curves are flattened adaptively; the
// result is the length of every sub-path.
//
// [svgdoc] - The SVG document model: parsing (including non-UTF-8 input),
// layer discovery, display toggling, style sheet upserts, cloning and atomic
// file writes.
//
// ## Orchestration
//
// [pipeline] - The export run used by the CLI. Plans, then walks the steps in
// order over a single workspace document.
//
// ## Infrastructure
//
// [cache] - Measurement cache with file and no-op backends.
//
// [observability] - Hook registry for export and cache events.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/animate/...            # Specific package
//	go test -run Example                 # Examples only
//
// [plan]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/plan
// [animate]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/animate
// [geometry]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/geometry
// [svgdoc]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/svgdoc
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/takitaro/pkg/buildinfo
package pkg
