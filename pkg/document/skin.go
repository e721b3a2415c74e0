package document

// Skin binds a node hierarchy to mesh vertices through joint nodes and
// inverse bind matrices. Joints are shared scene nodes; disposing the skin
// leaves them alive.
type Skin struct {
	property
}

func (s *Skin) Type() PropertyType { return TypeSkin }

func (s *Skin) relations() []relation {
	return []relation{
		{name: "skeleton", kind: relSingle},
		{name: "inverseBindMatrices", kind: relSingle},
		{name: "joints", kind: relList},
	}
}

// GetSkeleton returns the skeleton root node, or nil.
func (s *Skin) GetSkeleton() *Node {
	if n := s.ref("skeleton"); n != nil {
		return n.(*Node)
	}
	return nil
}

// SetSkeleton sets or clears the skeleton root node.
func (s *Skin) SetSkeleton(n *Node) error {
	if n == nil {
		return s.setRef("skeleton", nil)
	}
	return s.setRef("skeleton", n)
}

// GetInverseBindMatrices returns the MAT4 accessor holding the inverse
// bind matrices, or nil.
func (s *Skin) GetInverseBindMatrices() *Accessor {
	if a := s.ref("inverseBindMatrices"); a != nil {
		return a.(*Accessor)
	}
	return nil
}

// SetInverseBindMatrices sets or clears the inverse bind matrix accessor.
func (s *Skin) SetInverseBindMatrices(a *Accessor) error {
	if a == nil {
		return s.setRef("inverseBindMatrices", nil)
	}
	return s.setRef("inverseBindMatrices", a)
}

// AddJoint appends a joint node.
func (s *Skin) AddJoint(n *Node) error { return s.addChild("joints", n) }

// RemoveJoint detaches a joint node. No-op if absent.
func (s *Skin) RemoveJoint(n *Node) { s.removeChild("joints", n) }

// ListJoints returns the joint nodes in insertion order.
func (s *Skin) ListJoints() []*Node {
	children := s.children("joints")
	out := make([]*Node, len(children))
	for i, c := range children {
		out[i] = c.(*Node)
	}
	return out
}

func (s *Skin) equalsData(other Property) bool {
	_, ok := other.(*Skin)
	return ok
}

func (s *Skin) copyData(other Property) {}
