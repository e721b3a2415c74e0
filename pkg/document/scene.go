package document

// Scene is a top-level scene graph entry point: an ordered list of root
// nodes. Nodes may belong to several scenes at once.
type Scene struct {
	property
}

func (s *Scene) Type() PropertyType { return TypeScene }

func (s *Scene) relations() []relation {
	return []relation{
		{name: "children", kind: relList},
	}
}

// AddChild appends a node to the scene's root nodes.
func (s *Scene) AddChild(n *Node) error { return s.addChild("children", n) }

// RemoveChild detaches a node from the scene. No-op if absent.
func (s *Scene) RemoveChild(n *Node) { s.removeChild("children", n) }

// ListChildren returns the scene's root nodes in insertion order.
func (s *Scene) ListChildren() []*Node {
	children := s.children("children")
	out := make([]*Node, len(children))
	for i, c := range children {
		out[i] = c.(*Node)
	}
	return out
}

func (s *Scene) equalsData(other Property) bool {
	_, ok := other.(*Scene)
	return ok
}

func (s *Scene) copyData(other Property) {}
