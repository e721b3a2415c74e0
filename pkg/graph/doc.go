// Package graph implements the reference-tracking layer underneath a glTF
// document: a flat registry of named, directed links between participants.
//
// Every reference inside a document (a material pointing at a texture, a
// scene pointing at its nodes) is a [Link] registered with a single [Graph].
// Participants never store inbound references locally - "who points at me"
// is always answered by the registry. This keeps the no-dangling-links
// invariant enforceable in one place: disposing a participant removes every
// link touching it in a single operation.
//
// # Model
//
// A [Node] is anything that can own or be the target of a link. Nodes are
// identified by a UID assigned at construction; names are display data, not
// identity. Links are created through [Graph.Link], which refuses disposed
// or unregistered endpoints but deliberately treats a nil target as "no
// relation": it returns (nil, nil) rather than an error, because optional
// references are pervasive in the format.
//
// # Usage
//
//	g := graph.New()
//	g.Register(material)
//	g.Register(texture)
//
//	link, err := g.Link("baseColorTexture", material, texture)
//	if err != nil {
//	    return err
//	}
//
//	parents := g.ListParents(texture) // contains material
//	g.DisposeLinks(texture)           // link is gone, parents is empty
//
// The graph is not safe for concurrent use without external synchronization.
// All operations run to completion before returning; there are no internal
// suspension points, so callers never observe a half-applied mutation.
package graph
