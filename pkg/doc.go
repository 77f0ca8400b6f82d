// Package pkg provides the libraries behind lgraph, a layered graph layout
// engine with self-loop label placement.
//
// # Overview
//
// lgraph reads a diagram of nodes, ports, labels and edges, arranges it in
// layers and places the labels of self-loops so they overlap as little as
// possible. The pkg directory is organized into four areas:
//
//  1. [lgraph] and [selfloop] - The graph model and the label placement
//  2. [io] and [render] - Reading, writing and drawing diagrams
//  3. [pipeline] - Orchestration (import → layout → render)
//  4. [cache], [config], [server] - Infrastructure for the CLI and service
//
// # Architecture
//
// The typical data flow through lgraph:
//
//	Diagram JSON
//	     ↓
//	[io] package (parse, measure labels)
//	     ↓
//	[lgraph/phase] package (cycles, layers, ordering, placement)
//	     ↓
//	[selfloop] package (route loops, place their labels)
//	     ↓
//	[render/dot] package (DOT, SVG, PNG, PDF)
//
// # Quick Start
//
// Lay out a diagram file and write the result:
//
//	import (
//	    "github.com/matzehuels/lgraph/pkg/io"
//	    "github.com/matzehuels/lgraph/pkg/lgraph/phase"
//	)
//
//	g, err := io.ImportJSON("diagram.json")
//	if err != nil {
//	    return err
//	}
//	stats, err := phase.Layout(g, phase.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d layers, %d crossings\n", stats.Layers, stats.Crossings)
//	return io.ExportJSON(g, "diagram.layout.json")
//
// # Main Packages
//
// [lgraph] - Arena-owned graphs, nodes, ports, labels and edges. Nodes may
// hold nested graphs; [lgraph/lgutil] converts coordinates between them.
//
// [lgraph/phase] - The layered layout: cycle breaking, layer assignment,
// crossing minimization and coordinate placement.
//
// [selfloop] - Self-loop routing and label placement. Candidate positions
// are generated per loop component and scored with configurable
// [selfloop.Penalties].
//
// [io] - The JSON diagram format and label text measurement.
//
// [render] and [render/dot] - Graphviz DOT output with every element
// pinned, rendered in process to SVG and converted to PNG and PDF.
//
// [pipeline] - The full run with caching, shared by the CLI and the HTTP
// service.
//
// [cache] - File, Redis, SQLite and null backends behind one interface.
//
// [config] - TOML and YAML settings.
//
// [server] - The HTTP service.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks around pipeline stages, cache access and requests.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip Graphviz rendering
//	go test -run Example ./pkg/...       # Examples only
//
// [lgraph]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/lgraph
// [lgraph/lgutil]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/lgraph/lgutil
// [lgraph/phase]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/lgraph/phase
// [selfloop]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/selfloop
// [selfloop.Penalties]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/selfloop#Penalties
// [io]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lgraph/pkg/observability
package pkg
