package document

import "slices"

// Primitive drawing modes (glTF "mode" enum).
const (
	ModePoints        = 0
	ModeLines         = 1
	ModeLineLoop      = 2
	ModeLineStrip     = 3
	ModeTriangles     = 4
	ModeTriangleStrip = 5
	ModeTriangleFan   = 6
)

// Mesh is a set of geometry primitives. Primitives cannot be shared between
// meshes; disposing the mesh disposes them too.
type Mesh struct {
	property

	weights []float32
}

func (m *Mesh) Type() PropertyType { return TypeMesh }

func (m *Mesh) relations() []relation {
	return []relation{
		{name: "primitives", kind: relList, owned: true},
	}
}

// Weights returns the default morph target weights.
func (m *Mesh) Weights() []float32 { return m.weights }

// SetWeights sets the default morph target weights.
func (m *Mesh) SetWeights(w []float32) *Mesh {
	m.weights = slices.Clone(w)
	return m
}

// AddPrimitive appends a primitive to the mesh.
func (m *Mesh) AddPrimitive(p *Primitive) error { return m.addChild("primitives", p) }

// RemovePrimitive detaches a primitive without disposing it. No-op if absent.
func (m *Mesh) RemovePrimitive(p *Primitive) { m.removeChild("primitives", p) }

// ListPrimitives returns the mesh's primitives in insertion order.
func (m *Mesh) ListPrimitives() []*Primitive {
	children := m.children("primitives")
	out := make([]*Primitive, len(children))
	for i, c := range children {
		out[i] = c.(*Primitive)
	}
	return out
}

func (m *Mesh) equalsData(other Property) bool {
	o, ok := other.(*Mesh)
	if !ok {
		return false
	}
	return slices.Equal(m.weights, o.weights)
}

func (m *Mesh) copyData(other Property) {
	m.weights = slices.Clone(other.(*Mesh).weights)
}

// Primitive is one draw call worth of geometry: named vertex attribute
// accessors, an optional index accessor, and an optional material.
// Accessors referenced here may be shared with other primitives; disposing
// the primitive leaves them alive.
type Primitive struct {
	property

	mode int
}

func (p *Primitive) Type() PropertyType { return TypePrimitive }

func (p *Primitive) relations() []relation {
	return []relation{
		{name: "indices", kind: relSingle},
		{name: "material", kind: relSingle},
		{name: "attributes", kind: relAttribute},
	}
}

// Mode returns the drawing mode. Defaults to ModeTriangles.
func (p *Primitive) Mode() int { return p.mode }

// SetMode sets the drawing mode.
func (p *Primitive) SetMode(mode int) *Primitive {
	p.mode = mode
	return p
}

// GetIndices returns the index accessor, or nil for non-indexed geometry.
func (p *Primitive) GetIndices() *Accessor {
	if a := p.ref("indices"); a != nil {
		return a.(*Accessor)
	}
	return nil
}

// SetIndices sets or clears the index accessor.
func (p *Primitive) SetIndices(a *Accessor) error {
	if a == nil {
		return p.setRef("indices", nil)
	}
	return p.setRef("indices", a)
}

// GetMaterial returns the material, or nil for the default material.
func (p *Primitive) GetMaterial() *Material {
	if m := p.ref("material"); m != nil {
		return m.(*Material)
	}
	return nil
}

// SetMaterial sets or clears the material reference.
func (p *Primitive) SetMaterial(m *Material) error {
	if m == nil {
		return p.setRef("material", nil)
	}
	return p.setRef("material", m)
}

// GetAttribute returns the accessor bound to a vertex attribute semantic
// ("POSITION", "NORMAL", "TEXCOORD_0", ...), or nil.
func (p *Primitive) GetAttribute(semantic string) *Accessor {
	if a := p.attrib(semantic); a != nil {
		return a.(*Accessor)
	}
	return nil
}

// SetAttribute binds or clears an accessor for a vertex attribute semantic.
func (p *Primitive) SetAttribute(semantic string, a *Accessor) error {
	if a == nil {
		return p.setAttrib(semantic, nil)
	}
	return p.setAttrib(semantic, a)
}

// ListSemantics returns the bound attribute semantics, sorted.
func (p *Primitive) ListSemantics() []string { return p.attribSemantics() }

func (p *Primitive) equalsData(other Property) bool {
	o, ok := other.(*Primitive)
	if !ok {
		return false
	}
	return p.mode == o.mode
}

func (p *Primitive) copyData(other Property) {
	p.mode = other.(*Primitive).mode
}
