package document

import (
	"slices"

	"github.com/chewxy/math32"
)

// Node is a scene-graph node carrying a local TRS transform and optional
// references to a mesh, camera, and skin. Nodes form a hierarchy through
// the "children" relation; a node referenced by several parents is
// instanced, not duplicated.
type Node struct {
	property

	translation [3]float32
	rotation    [4]float32 // quaternion (x, y, z, w)
	scale       [3]float32
	weights     []float32
}

func (n *Node) Type() PropertyType { return TypeNode }

func (n *Node) relations() []relation {
	return []relation{
		{name: "children", kind: relList},
		{name: "mesh", kind: relSingle},
		{name: "camera", kind: relSingle},
		{name: "skin", kind: relSingle},
	}
}

// Translation returns the local translation.
func (n *Node) Translation() [3]float32 { return n.translation }

// SetTranslation sets the local translation.
func (n *Node) SetTranslation(t [3]float32) *Node {
	n.translation = t
	return n
}

// Rotation returns the local rotation quaternion (x, y, z, w).
func (n *Node) Rotation() [4]float32 { return n.rotation }

// SetRotation sets the local rotation, normalizing the quaternion.
// A zero quaternion is replaced by identity.
func (n *Node) SetRotation(q [4]float32) *Node {
	len2 := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	if len2 == 0 {
		n.rotation = [4]float32{0, 0, 0, 1}
		return n
	}
	inv := 1 / math32.Sqrt(len2)
	for i := range q {
		q[i] *= inv
	}
	n.rotation = q
	return n
}

// Scale returns the local scale.
func (n *Node) Scale() [3]float32 { return n.scale }

// SetScale sets the local scale.
func (n *Node) SetScale(s [3]float32) *Node {
	n.scale = s
	return n
}

// Weights returns the morph target weights.
func (n *Node) Weights() []float32 { return n.weights }

// SetWeights sets the morph target weights.
func (n *Node) SetWeights(w []float32) *Node {
	n.weights = slices.Clone(w)
	return n
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) error { return n.addChild("children", child) }

// RemoveChild detaches a child node. No-op if absent.
func (n *Node) RemoveChild(child *Node) { n.removeChild("children", child) }

// ListChildren returns the child nodes in insertion order.
func (n *Node) ListChildren() []*Node {
	children := n.children("children")
	out := make([]*Node, len(children))
	for i, c := range children {
		out[i] = c.(*Node)
	}
	return out
}

// GetMesh returns the referenced mesh, or nil.
func (n *Node) GetMesh() *Mesh {
	if m := n.ref("mesh"); m != nil {
		return m.(*Mesh)
	}
	return nil
}

// SetMesh sets or clears the mesh reference.
func (n *Node) SetMesh(m *Mesh) error {
	if m == nil {
		return n.setRef("mesh", nil)
	}
	return n.setRef("mesh", m)
}

// GetCamera returns the referenced camera, or nil.
func (n *Node) GetCamera() *Camera {
	if c := n.ref("camera"); c != nil {
		return c.(*Camera)
	}
	return nil
}

// SetCamera sets or clears the camera reference.
func (n *Node) SetCamera(c *Camera) error {
	if c == nil {
		return n.setRef("camera", nil)
	}
	return n.setRef("camera", c)
}

// GetSkin returns the referenced skin, or nil.
func (n *Node) GetSkin() *Skin {
	if s := n.ref("skin"); s != nil {
		return s.(*Skin)
	}
	return nil
}

// SetSkin sets or clears the skin reference.
func (n *Node) SetSkin(s *Skin) error {
	if s == nil {
		return n.setRef("skin", nil)
	}
	return n.setRef("skin", s)
}

func (n *Node) equalsData(other Property) bool {
	o, ok := other.(*Node)
	if !ok {
		return false
	}
	return n.translation == o.translation &&
		n.rotation == o.rotation &&
		n.scale == o.scale &&
		slices.Equal(n.weights, o.weights)
}

func (n *Node) copyData(other Property) {
	o := other.(*Node)
	n.translation = o.translation
	n.rotation = o.rotation
	n.scale = o.scale
	n.weights = slices.Clone(o.weights)
}
