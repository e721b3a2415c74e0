package document

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/modelwerk/gltfkit/pkg/graph"
)

// PropertyType identifies the concrete kind of a participant.
type PropertyType string

// Property types for every concrete participant.
const (
	TypeRoot             PropertyType = "Root"
	TypeScene            PropertyType = "Scene"
	TypeNode             PropertyType = "Node"
	TypeMesh             PropertyType = "Mesh"
	TypePrimitive        PropertyType = "Primitive"
	TypeMaterial         PropertyType = "Material"
	TypeTextureInfo      PropertyType = "TextureInfo"
	TypeTexture          PropertyType = "Texture"
	TypeAccessor         PropertyType = "Accessor"
	TypeBuffer           PropertyType = "Buffer"
	TypeAnimation        PropertyType = "Animation"
	TypeAnimationChannel PropertyType = "AnimationChannel"
	TypeAnimationSampler PropertyType = "AnimationSampler"
	TypeSkin             PropertyType = "Skin"
	TypeCamera           PropertyType = "Camera"
	TypeExtension        PropertyType = "Extension"
)

// relationKind distinguishes how a declared relation stores its links.
type relationKind int

const (
	// relSingle is a single-valued reference (e.g. node -> mesh).
	relSingle relationKind = iota
	// relList is an ordered, duplicate-tolerant list (e.g. scene -> nodes).
	relList
	// relAttribute is an open set of single references keyed by semantic
	// name (primitive vertex attributes: POSITION, NORMAL, ...).
	relAttribute
)

// relation declares one graph-tracked reference of a concrete type.
// The per-type declaration list drives copy, dispose cascade, and equality;
// there is no runtime reflection over fields.
type relation struct {
	name  string
	kind  relationKind
	owned bool // disposing the source disposes the targets
}

// Resolver maps a source-document participant to its already-created
// counterpart in a destination document during copy and merge.
type Resolver func(Property) Property

// Property is the interface implemented by every document participant.
// Identity is the UID assigned at construction; Name is a mutable display
// attribute, never a key.
type Property interface {
	graph.Node

	// Name returns the display name of the participant.
	Name() string
	// SetName sets the display name.
	SetName(name string)
	// Type returns the concrete participant kind.
	Type() PropertyType
	// Document returns the owning document.
	Document() *Document
	// Dispose destroys the participant: every link touching it is removed,
	// exclusively-owned children are disposed recursively, and it is
	// detached from the Root collection. Safe to call multiple times.
	Dispose()
	// Equals reports structural equivalence: plain-field data plus
	// recursive comparison of outbound references. Inbound links and
	// display names are excluded.
	Equals(other Property) bool
	// Copy re-creates every outbound relation of other on the receiver,
	// with targets mapped through resolve. Relation state is appended;
	// already-set single references are kept. Plain-field data is copied.
	Copy(other Property, resolve Resolver) error

	// internal surface driving generic copy and equality
	base() *property
	relations() []relation
	equalsData(other Property) bool
	copyData(other Property)
}

// property is the embedded base of every concrete participant. It owns the
// local, ordered view of outbound links; the graph owns the authoritative
// registry and all inbound adjacency.
type property struct {
	self     Property // concrete wrapper, set by init
	doc      *Document
	uid      uuid.UUID
	name     string
	extras   map[string]any
	disposed bool

	refs    map[string]*graph.Link
	lists   map[string][]*graph.Link
	attribs map[string]*graph.Link
}

// init wires the base into its document and registers the concrete
// participant with the graph. Called exactly once by each factory.
func (p *property) init(self Property, doc *Document, name string) {
	p.self = self
	p.doc = doc
	p.uid = uuid.New()
	p.name = name
	p.refs = make(map[string]*graph.Link)
	p.lists = make(map[string][]*graph.Link)
	p.attribs = make(map[string]*graph.Link)
	_ = doc.graph.Register(self) // fresh UID, cannot collide
}

func (p *property) UID() uuid.UUID      { return p.uid }
func (p *property) Disposed() bool      { return p.disposed }
func (p *property) Name() string        { return p.name }
func (p *property) SetName(name string) { p.name = name }
func (p *property) Document() *Document { return p.doc }
func (p *property) base() *property     { return p }

// Extras returns the free-form application-specific data attached to the
// participant, allocating the map on first use.
func (p *property) Extras() map[string]any {
	if p.extras == nil {
		p.extras = make(map[string]any)
	}
	return p.extras
}

// ref returns the live target of a single-valued relation, or nil if the
// relation is unset or its link has been invalidated by target disposal.
func (p *property) ref(name string) Property {
	l := p.refs[name]
	if l == nil || l.Disposed() {
		return nil
	}
	return l.Target().(Property)
}

// setRef replaces the target of a single-valued relation. A nil target
// clears the relation. Returns an error for disposed or foreign targets.
func (p *property) setRef(name string, target Property) error {
	if old := p.refs[name]; old != nil {
		old.Dispose()
		delete(p.refs, name)
	}
	if target == nil {
		return nil
	}
	l, err := p.doc.graph.Link(name, p.self, target)
	if err != nil {
		return err
	}
	p.refs[name] = l
	return nil
}

// addChild appends a link to an ordered list relation. The link becomes
// part of both the local list (serialization order) and the graph registry.
func (p *property) addChild(name string, target Property) error {
	if target == nil {
		return nil
	}
	l, err := p.doc.graph.Link(name, p.self, target)
	if err != nil {
		return err
	}
	p.lists[name] = append(p.lists[name], l)
	return nil
}

// removeChild removes the first list entry whose target is the given
// participant (identity match). No-op if absent - structural mutations are
// idempotent, since transform pipelines run redundant cleanup passes.
func (p *property) removeChild(name string, target Property) {
	for _, l := range p.liveList(name) {
		if l.Target().(Property).UID() == target.UID() {
			l.Dispose()
			break
		}
	}
	p.compactList(name)
}

// children returns the live targets of a list relation, in insertion order.
func (p *property) children(name string) []Property {
	links := p.liveList(name)
	out := make([]Property, len(links))
	for i, l := range links {
		out[i] = l.Target().(Property)
	}
	return out
}

// liveList compacts and returns the list relation's live links. Links may
// have been invalidated externally by disposal of their targets.
func (p *property) liveList(name string) []*graph.Link {
	p.compactList(name)
	return p.lists[name]
}

func (p *property) compactList(name string) {
	p.lists[name] = slices.DeleteFunc(p.lists[name], func(l *graph.Link) bool { return l.Disposed() })
}

// attrib returns the live target of a named attribute relation, or nil.
func (p *property) attrib(semantic string) Property {
	l := p.attribs[semantic]
	if l == nil || l.Disposed() {
		return nil
	}
	return l.Target().(Property)
}

// setAttrib replaces one named attribute reference. A nil target clears it.
func (p *property) setAttrib(semantic string, target Property) error {
	if old := p.attribs[semantic]; old != nil {
		old.Dispose()
		delete(p.attribs, semantic)
	}
	if target == nil {
		return nil
	}
	l, err := p.doc.graph.Link(semantic, p.self, target)
	if err != nil {
		return err
	}
	p.attribs[semantic] = l
	return nil
}

// attribSemantics returns the semantic names with live targets, sorted for
// deterministic iteration.
func (p *property) attribSemantics() []string {
	var names []string
	for sem, l := range p.attribs {
		if !l.Disposed() {
			names = append(names, sem)
		}
	}
	slices.Sort(names)
	return names
}

// Dispose implements the disposal contract: remove every link touching the
// participant, cascade to exclusively-owned children, detach from the Root
// collection. The second call is a no-op.
func (p *property) Dispose() {
	if p.disposed {
		return
	}

	// Collect owned children before the links are torn down.
	var owned []Property
	for _, rel := range p.self.relations() {
		if !rel.owned {
			continue
		}
		switch rel.kind {
		case relSingle:
			if t := p.ref(rel.name); t != nil {
				owned = append(owned, t)
			}
		case relList:
			owned = append(owned, p.children(rel.name)...)
		case relAttribute:
			for _, sem := range p.attribSemantics() {
				if t := p.attrib(sem); t != nil {
					owned = append(owned, t)
				}
			}
		}
	}

	// Removing the links also invalidates the Root collection entry: the
	// collection is itself a list of links, lazily compacted on access.
	p.doc.graph.DisposeLinks(p.self)
	p.disposed = true

	for _, child := range owned {
		child.Dispose()
	}
}

// Copy implements the Property copy contract using the declared relations.
func (p *property) Copy(other Property, resolve Resolver) error {
	if other == nil {
		return nil
	}
	p.name = other.Name()
	ob := other.base()
	if len(ob.extras) > 0 {
		maps.Copy(p.Extras(), ob.extras)
	}
	p.self.copyData(other)
	for _, rel := range other.relations() {
		switch rel.kind {
		case relSingle:
			if p.ref(rel.name) != nil {
				continue // merge keeps pre-existing references intact
			}
			if err := p.setRef(rel.name, resolve(ob.ref(rel.name))); err != nil {
				return err
			}
		case relList:
			for _, child := range ob.children(rel.name) {
				if err := p.addChild(rel.name, resolve(child)); err != nil {
					return err
				}
			}
		case relAttribute:
			for _, sem := range ob.attribSemantics() {
				if err := p.setAttrib(sem, resolve(ob.attrib(sem))); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Equals implements structural equivalence over outbound references.
// Inbound links are deliberately excluded: "what I reference" defines a
// participant's value, not "who references me".
func (p *property) Equals(other Property) bool {
	return equalProperties(p.self, other, make(map[[2]uuid.UUID]bool))
}

// equalProperties compares two participants structurally. The seen memo
// breaks recursion through cyclic or convergently shared subgraphs: a pair
// already under comparison is assumed equal until proven otherwise.
func equalProperties(a, b Property, seen map[[2]uuid.UUID]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.UID() == b.UID() {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}
	pair := [2]uuid.UUID{a.UID(), b.UID()}
	if seen[pair] {
		return true
	}
	seen[pair] = true

	if !a.equalsData(b) {
		return false
	}

	ab, bb := a.base(), b.base()
	for _, rel := range a.relations() {
		switch rel.kind {
		case relSingle:
			if !equalProperties(ab.ref(rel.name), bb.ref(rel.name), seen) {
				return false
			}
		case relList:
			ac, bc := ab.children(rel.name), bb.children(rel.name)
			if len(ac) != len(bc) {
				return false
			}
			for i := range ac {
				if !equalProperties(ac[i], bc[i], seen) {
					return false
				}
			}
		case relAttribute:
			as, bs := ab.attribSemantics(), bb.attribSemantics()
			if !slices.Equal(as, bs) {
				return false
			}
			for _, sem := range as {
				if !equalProperties(ab.attrib(sem), bb.attrib(sem), seen) {
					return false
				}
			}
		}
	}
	return true
}
