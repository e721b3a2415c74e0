package graph

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrNilNode is returned when a nil node is passed where a live node is
	// required (registering, or retargeting a link).
	ErrNilNode = errors.New("node must not be nil")

	// ErrDuplicateNode is returned by [Graph.Register] when the node's UID
	// is already registered.
	ErrDuplicateNode = errors.New("duplicate node UID")

	// ErrNotRegistered is returned when a link endpoint does not belong to
	// this graph. Cross-document references are never created directly;
	// merge the documents instead.
	ErrNotRegistered = errors.New("node is not registered with this graph")

	// ErrNodeDisposed is returned when a link endpoint has already been
	// disposed. This indicates a caller bug, not a recoverable input error.
	ErrNodeDisposed = errors.New("node has been disposed")

	// ErrLinkDisposed is returned by [Link.SetTarget] when the link has
	// already been removed from its graph.
	ErrLinkDisposed = errors.New("link has been disposed")
)

// Node is implemented by every graph participant. Identity is the UID
// assigned at construction - names and other display attributes are
// mutable data, never keys.
type Node interface {
	// UID returns the stable unique identifier of the node.
	UID() uuid.UUID

	// Disposed reports whether the node has been destroyed. The graph
	// refuses to create links touching disposed nodes.
	Disposed() bool
}

// Graph is the authoritative registry of all live links in one document.
// Inbound and outbound adjacency are maintained incrementally, so parent
// lookups are O(parents) rather than a scan of every link.
//
// The zero value is not usable - use [New]. Graph is not safe for
// concurrent use without external synchronization.
type Graph struct {
	nodes    map[uuid.UUID]Node
	links    []*Link               // registration order
	outgoing map[uuid.UUID][]*Link // source UID -> links it owns
	incoming map[uuid.UUID][]*Link // target UID -> links pointing at it
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[uuid.UUID]Node),
		outgoing: make(map[uuid.UUID][]*Link),
		incoming: make(map[uuid.UUID][]*Link),
	}
}

// Register adds a node to the graph's registry. Participants register once,
// at construction time. Returns ErrNilNode for a nil node or
// ErrDuplicateNode if the UID is already present.
func (g *Graph) Register(n Node) error {
	if n == nil {
		return ErrNilNode
	}
	if _, exists := g.nodes[n.UID()]; exists {
		return ErrDuplicateNode
	}
	g.nodes[n.UID()] = n
	return nil
}

// Contains reports whether the node is registered with this graph.
func (g *Graph) Contains(n Node) bool {
	if n == nil {
		return false
	}
	_, ok := g.nodes[n.UID()]
	return ok
}

// Link creates and registers a named edge from source to target.
//
// A nil target is treated as "no relation": Link returns (nil, nil) rather
// than an error, since optional references are pervasive in the format.
// A disposed or unregistered endpoint is a caller bug and fails fast with
// ErrNodeDisposed or ErrNotRegistered.
func (g *Graph) Link(name string, source, target Node) (*Link, error) {
	if target == nil {
		return nil, nil
	}
	if source == nil {
		return nil, ErrNilNode
	}
	if err := g.checkLive(source); err != nil {
		return nil, err
	}
	if err := g.checkLive(target); err != nil {
		return nil, err
	}

	l := &Link{graph: g, name: name, source: source, target: target}
	g.links = append(g.links, l)
	g.outgoing[source.UID()] = append(g.outgoing[source.UID()], l)
	g.incoming[target.UID()] = append(g.incoming[target.UID()], l)
	return l, nil
}

// ListParents returns the distinct nodes owning a link that targets n, in
// link-registration order. Returns nil if nothing references n.
func (g *Graph) ListParents(n Node) []Node {
	var parents []Node
	seen := make(map[uuid.UUID]bool)
	for _, l := range g.incoming[n.UID()] {
		if !seen[l.source.UID()] {
			seen[l.source.UID()] = true
			parents = append(parents, l.source)
		}
	}
	return parents
}

// ListChildren returns the distinct nodes targeted by links owned by n, in
// link-registration order. Returns nil if n owns no links.
func (g *Graph) ListChildren(n Node) []Node {
	var children []Node
	seen := make(map[uuid.UUID]bool)
	for _, l := range g.outgoing[n.UID()] {
		if !seen[l.target.UID()] {
			seen[l.target.UID()] = true
			children = append(children, l.target)
		}
	}
	return children
}

// ListChildLinks returns a copy of the links whose source is n, in
// registration order.
func (g *Graph) ListChildLinks(n Node) []*Link {
	return slices.Clone(g.outgoing[n.UID()])
}

// ListParentLinks returns a copy of the links whose target is n, in
// registration order.
func (g *Graph) ListParentLinks(n Node) []*Link {
	return slices.Clone(g.incoming[n.UID()])
}

// Links returns a copy of every live link in the graph, in registration
// order. Intended for traversal (merge, visualization), not mutation.
func (g *Graph) Links() []*Link {
	return slices.Clone(g.links)
}

// LinkCount returns the number of live links.
func (g *Graph) LinkCount() int { return len(g.links) }

// NodeCount returns the number of registered nodes, disposed ones included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Disconnect removes every link owned by n, leaving inbound links intact.
// Used when detaching a participant without destroying it - the node stops
// contributing references, but others may still point at it. Idempotent.
func (g *Graph) Disconnect(n Node) {
	for _, l := range slices.Clone(g.outgoing[n.UID()]) {
		g.removeLink(l)
	}
}

// DisposeLinks removes every link where n is source or target. Called as
// part of participant disposal so that no dangling reference survives the
// node. Idempotent.
func (g *Graph) DisposeLinks(n Node) {
	g.Disconnect(n)
	for _, l := range slices.Clone(g.incoming[n.UID()]) {
		g.removeLink(l)
	}
}

// checkLive verifies that the node is registered and not disposed.
func (g *Graph) checkLive(n Node) error {
	if _, ok := g.nodes[n.UID()]; !ok {
		return ErrNotRegistered
	}
	if n.Disposed() {
		return ErrNodeDisposed
	}
	return nil
}

// retarget points l at a new target and reindexes inbound adjacency.
// Callers have already validated the target.
func (g *Graph) retarget(l *Link, target Node) {
	old := l.target.UID()
	g.incoming[old] = slices.DeleteFunc(g.incoming[old], func(x *Link) bool { return x == l })
	l.target = target
	g.incoming[target.UID()] = append(g.incoming[target.UID()], l)
}

// removeLink unregisters l from the global list and both adjacency indexes.
func (g *Graph) removeLink(l *Link) {
	if l.disposed {
		return
	}
	l.disposed = true
	g.links = slices.DeleteFunc(g.links, func(x *Link) bool { return x == l })
	src, dst := l.source.UID(), l.target.UID()
	g.outgoing[src] = slices.DeleteFunc(g.outgoing[src], func(x *Link) bool { return x == l })
	g.incoming[dst] = slices.DeleteFunc(g.incoming[dst], func(x *Link) bool { return x == l })
}
