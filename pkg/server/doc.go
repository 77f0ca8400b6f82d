// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//	GET  /health   build information
//	POST /layout   lay out a diagram; responds with the laid out diagram
//	POST /render   lay out and render a diagram in one format
//
// Both POST endpoints take the diagram JSON as the request body. Layout
// settings come from the server's configuration; the query parameter
// direction overrides the default direction. /render also accepts format
// (json, dot, svg, png, pdf; default svg), ports, detailed and scale.
//
// Responses carry the run id in X-Run-Id and whether the result came from
// the cache in X-Cache. Errors are JSON objects with an error code and a
// message:
//
//	{"error": "UNSUPPORTED_HYPEREDGE", "message": "edge e1 has 2 sources"}
package server
