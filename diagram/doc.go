// Package diagram reads diagram descriptions from YAML and builds scenes of
// anchored connections from them.
//
// A document lists nodes and connections:
//
//	width: 480
//	height: 240
//	nodes:
//	  - id: client
//	    kind: rounded-rectangle
//	    x: 20
//	    y: 80
//	    width: 120
//	    height: 60
//	    radius: 12
//	  - id: server
//	    kind: ellipse
//	    translate: [320, 60]
//	    width: 140
//	    height: 100
//	connections:
//	  - id: request
//	    from: client
//	    to: server
//	    waypoints: [[240, 40]]
//	    curved: true
//
// Connection ends name a node or another connection, which get a chop-box
// anchor, or give a fixed scene point as [x, y].
package diagram
