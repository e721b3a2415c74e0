package graph

import "fmt"

// Link is a named directed edge between two registered nodes.
// Links are created through [Graph.Link] and are never constructed with a
// nil source or target. The target may be swapped with [Link.SetTarget]
// without changing the link's identity, name, or source - this is how
// "replace every reference to A with B" operations work.
type Link struct {
	graph    *Graph
	name     string
	source   Node
	target   Node
	disposed bool
}

// Name returns the relation name identifying the semantic role of the link
// (e.g. "mesh", "baseColorTexture", "child").
func (l *Link) Name() string { return l.name }

// Source returns the node that owns the link.
func (l *Link) Source() Node { return l.source }

// Target returns the node the link points at.
func (l *Link) Target() Node { return l.target }

// Disposed reports whether the link has been removed from its graph.
func (l *Link) Disposed() bool { return l.disposed }

// SetTarget redirects the link at a new target, keeping its name and source.
// Returns ErrNilNode if target is nil, ErrNotRegistered if the target does
// not belong to the link's graph, ErrNodeDisposed if the target has been
// disposed, or ErrLinkDisposed if the link itself is no longer live.
func (l *Link) SetTarget(target Node) error {
	if l.disposed {
		return ErrLinkDisposed
	}
	if target == nil {
		return ErrNilNode
	}
	if err := l.graph.checkLive(target); err != nil {
		return err
	}
	l.graph.retarget(l, target)
	return nil
}

// Dispose removes the link from its graph. Safe to call multiple times;
// the second call is a no-op.
func (l *Link) Dispose() {
	if l.disposed {
		return
	}
	l.graph.removeLink(l)
}

// String returns a compact description for debugging and graph dumps.
func (l *Link) String() string {
	return fmt.Sprintf("%s --%s--> %s", l.source.UID(), l.name, l.target.UID())
}
