package document

import (
	"github.com/google/uuid"

	"github.com/modelwerk/gltfkit/pkg/errors"
	"github.com/modelwerk/gltfkit/pkg/graph"
)

// Copy implements union semantics for the root: source collection members
// are appended unless already present, and the default scene and asset
// metadata fields are adopted only when the destination's are unset. This
// lets Root participate in the generic merge map while preserving
// pre-existing destination content.
func (r *Root) Copy(other Property, resolve Resolver) error {
	o, ok := other.(*Root)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "cannot copy %s into Root", other.Type())
	}

	for _, name := range rootCollections {
		present := make(map[uuid.UUID]bool)
		for _, child := range r.children(name) {
			present[child.UID()] = true
		}
		for _, child := range o.children(name) {
			t := resolve(child)
			if t == nil || present[t.UID()] {
				continue
			}
			if err := r.addChild(name, t); err != nil {
				return err
			}
			present[t.UID()] = true
		}
	}

	if r.GetDefaultScene() == nil {
		if s := o.base().ref("defaultScene"); s != nil {
			if err := r.setRef("defaultScene", resolve(s)); err != nil {
				return err
			}
		}
	}

	if r.generator == "" {
		r.generator = o.generator
	}
	if r.version == "" {
		r.version = o.version
	}
	if r.copyright == "" {
		r.copyright = o.copyright
	}
	return nil
}

// Merge copies the reachable graph of src into d, manufacturing equivalent
// participants and remapping every reference. src is left unmodified; d's
// pre-existing content stays intact and independent.
//
// The copy is two-phase: first a stub participant of the matching concrete
// type is created for every participant reachable through src's registered
// links (the Root maps onto d's Root, and extensions are reconciled by
// name), then every stub is wired by the generic relation copy with targets
// looked up in the stub map. Pre-creating all stubs means every forward
// reference already has a destination when its link is written.
func (d *Document) Merge(src *Document) error {
	if src == nil {
		return nil
	}
	if src == d {
		return errors.New(errors.ErrCodeInternal, "cannot merge a document into itself")
	}

	mapping := make(map[uuid.UUID]Property)
	var order []Property // src participants in discovery order

	add := func(p Property, dest Property) {
		mapping[p.UID()] = dest
		order = append(order, p)
	}

	add(src.root, d.root)

	// Phase 0: reconcile extensions by name, reusing existing
	// registrations and preserving the required flag.
	for _, e := range src.root.ListExtensions() {
		de := d.CreateExtension(e.ExtensionName())
		if e.Required() {
			de.SetRequired(true)
		}
		add(e, de)
	}

	// Phase 1: a stub for every participant touched by a registered link.
	for _, l := range src.graph.Links() {
		for _, end := range []graph.Node{l.Source(), l.Target()} {
			p, ok := end.(Property)
			if !ok {
				continue
			}
			if _, seen := mapping[p.UID()]; seen {
				continue
			}
			stub := d.newProperty(p.Type(), p.Name())
			if stub == nil {
				return errors.New(errors.ErrCodeInternal, "no factory for participant type %s", p.Type())
			}
			add(p, stub)
		}
	}

	resolve := func(p Property) Property {
		if p == nil {
			return nil
		}
		return mapping[p.UID()]
	}

	// Phase 2: wire every stub. All targets exist, so order is free; we
	// keep discovery order for determinism.
	for _, srcProp := range order {
		if err := mapping[srcProp.UID()].Copy(srcProp, resolve); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a structurally equivalent, fully independent copy of the
// document, including asset metadata.
func (d *Document) Clone() (*Document, error) {
	out := NewDocument()
	out.SetLogger(d.logger)
	if err := out.Merge(d); err != nil {
		return nil, err
	}
	out.root.copyData(d.root)
	out.root.SetName(d.root.Name())
	return out, nil
}

// Swap redirects every inbound reference of a to b, so every referrer
// observes the replacement. Root collection links are left alone:
// collection membership follows disposal, not reference swapping, so a
// stays listed until it is disposed. Both participants must belong to the
// same document.
func Swap(a, b Property) error {
	if a == nil || b == nil {
		return errors.New(errors.ErrCodeInternal, "swap requires two live participants")
	}
	doc := a.Document()
	if b.Document() != doc {
		return errors.Wrap(errors.ErrCodeGraphForeign, graph.ErrNotRegistered,
			"swap across documents")
	}
	root := doc.Root()
	for _, l := range doc.Graph().ListParentLinks(a) {
		if src, ok := l.Source().(Property); ok && src.UID() == root.UID() {
			continue
		}
		if err := l.SetTarget(b); err != nil {
			return err
		}
	}
	return nil
}
