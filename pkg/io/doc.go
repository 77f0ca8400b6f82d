// Package io reads and writes layered graphs in an ELK-style JSON diagram
// format.
//
// # Format
//
// A diagram is a tree of nodes. The root lists the top-level nodes as
// children and the top-level edges; every node may in turn list children
// and edges, which then form the node's nested graph:
//
//	{
//	  "id": "root",
//	  "layoutOptions": {"elk.direction": "RIGHT"},
//	  "children": [
//	    {"id": "n1", "width": 100, "height": 50,
//	     "ports": [{"id": "p1", "width": 8, "height": 8, "side": "NORTH"}],
//	     "labels": [{"text": "n1"}]}
//	  ],
//	  "edges": [
//	    {"id": "e1", "sources": ["p1"], "targets": ["n1"],
//	     "labels": [{"text": "loop", "width": 30, "height": 12}]}
//	  ]
//	}
//
// Edge ends name a node or a port. A node end gets a port of its own, or
// the node's collector port when the graph merges edges. An edge listed on
// a node may also end at that node's ports, which are external ports of
// the nested graph.
//
// # Layout options
//
// Keys are accepted with or without the "elk." prefix:
//
//	direction                      RIGHT, LEFT, DOWN, UP
//	aspectRatio                    positive number
//	layered.mergeEdges             true or false
//	padding                        uniform padding of the nested graph
//	spacing.<kind>                 graph spacing, e.g. spacing.nodeNode
//	spacing.individual.<kind>      spacing override on a single node
//	portConstraints                FREE, FIXED_SIDE, FIXED_ORDER, FIXED_RATIO, FIXED_POS
//	port.anchor, port.borderOffset on ports
//
// # Labels
//
// Labels without width and height are measured with the Go Regular font at
// [DefaultFontSize] points. See [Measurer].
//
// # Export
//
// [WriteJSON] writes the same format with positions filled in and one
// section per edge holding absolute coordinates.
package io
