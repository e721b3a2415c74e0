package document

// Animation target paths.
const (
	PathTranslation = "translation"
	PathRotation    = "rotation"
	PathScale       = "scale"
	PathWeights     = "weights"
)

// Keyframe interpolation modes.
const (
	InterpolationLinear      = "LINEAR"
	InterpolationStep        = "STEP"
	InterpolationCubicSpline = "CUBICSPLINE"
)

// Animation groups channels and samplers into one named clip. Channels and
// samplers exist solely to serve their animation and are disposed with it;
// the accessors they reference may be shared and survive.
type Animation struct {
	property
}

func (a *Animation) Type() PropertyType { return TypeAnimation }

func (a *Animation) relations() []relation {
	return []relation{
		{name: "channels", kind: relList, owned: true},
		{name: "samplers", kind: relList, owned: true},
	}
}

// AddChannel appends a channel to the animation.
func (a *Animation) AddChannel(c *AnimationChannel) error { return a.addChild("channels", c) }

// RemoveChannel detaches a channel without disposing it. No-op if absent.
func (a *Animation) RemoveChannel(c *AnimationChannel) { a.removeChild("channels", c) }

// ListChannels returns the animation's channels in insertion order.
func (a *Animation) ListChannels() []*AnimationChannel {
	children := a.children("channels")
	out := make([]*AnimationChannel, len(children))
	for i, c := range children {
		out[i] = c.(*AnimationChannel)
	}
	return out
}

// AddSampler appends a sampler to the animation.
func (a *Animation) AddSampler(s *AnimationSampler) error { return a.addChild("samplers", s) }

// RemoveSampler detaches a sampler without disposing it. No-op if absent.
func (a *Animation) RemoveSampler(s *AnimationSampler) { a.removeChild("samplers", s) }

// ListSamplers returns the animation's samplers in insertion order.
func (a *Animation) ListSamplers() []*AnimationSampler {
	children := a.children("samplers")
	out := make([]*AnimationSampler, len(children))
	for i, c := range children {
		out[i] = c.(*AnimationSampler)
	}
	return out
}

func (a *Animation) equalsData(other Property) bool {
	_, ok := other.(*Animation)
	return ok
}

func (a *Animation) copyData(other Property) {}

// AnimationChannel binds one sampler to one animated node property.
type AnimationChannel struct {
	property

	targetPath string
}

func (c *AnimationChannel) Type() PropertyType { return TypeAnimationChannel }

func (c *AnimationChannel) relations() []relation {
	return []relation{
		{name: "targetNode", kind: relSingle},
		{name: "sampler", kind: relSingle},
	}
}

// TargetPath returns the animated property path (translation, rotation,
// scale, weights).
func (c *AnimationChannel) TargetPath() string { return c.targetPath }

// SetTargetPath sets the animated property path.
func (c *AnimationChannel) SetTargetPath(path string) *AnimationChannel {
	c.targetPath = path
	return c
}

// GetTargetNode returns the animated node, or nil.
func (c *AnimationChannel) GetTargetNode() *Node {
	if n := c.ref("targetNode"); n != nil {
		return n.(*Node)
	}
	return nil
}

// SetTargetNode sets or clears the animated node.
func (c *AnimationChannel) SetTargetNode(n *Node) error {
	if n == nil {
		return c.setRef("targetNode", nil)
	}
	return c.setRef("targetNode", n)
}

// GetSampler returns the keyframe sampler, or nil.
func (c *AnimationChannel) GetSampler() *AnimationSampler {
	if s := c.ref("sampler"); s != nil {
		return s.(*AnimationSampler)
	}
	return nil
}

// SetSampler sets or clears the keyframe sampler.
func (c *AnimationChannel) SetSampler(s *AnimationSampler) error {
	if s == nil {
		return c.setRef("sampler", nil)
	}
	return c.setRef("sampler", s)
}

func (c *AnimationChannel) equalsData(other Property) bool {
	o, ok := other.(*AnimationChannel)
	if !ok {
		return false
	}
	return c.targetPath == o.targetPath
}

func (c *AnimationChannel) copyData(other Property) {
	c.targetPath = other.(*AnimationChannel).targetPath
}

// AnimationSampler pairs keyframe input times with output values under an
// interpolation mode.
type AnimationSampler struct {
	property

	interpolation string
}

func (s *AnimationSampler) Type() PropertyType { return TypeAnimationSampler }

func (s *AnimationSampler) relations() []relation {
	return []relation{
		{name: "input", kind: relSingle},
		{name: "output", kind: relSingle},
	}
}

// Interpolation returns the interpolation mode. Defaults to
// InterpolationLinear.
func (s *AnimationSampler) Interpolation() string { return s.interpolation }

// SetInterpolation sets the interpolation mode.
func (s *AnimationSampler) SetInterpolation(mode string) *AnimationSampler {
	s.interpolation = mode
	return s
}

// GetInput returns the keyframe-time accessor, or nil.
func (s *AnimationSampler) GetInput() *Accessor {
	if a := s.ref("input"); a != nil {
		return a.(*Accessor)
	}
	return nil
}

// SetInput sets or clears the keyframe-time accessor.
func (s *AnimationSampler) SetInput(a *Accessor) error {
	if a == nil {
		return s.setRef("input", nil)
	}
	return s.setRef("input", a)
}

// GetOutput returns the keyframe-value accessor, or nil.
func (s *AnimationSampler) GetOutput() *Accessor {
	if a := s.ref("output"); a != nil {
		return a.(*Accessor)
	}
	return nil
}

// SetOutput sets or clears the keyframe-value accessor.
func (s *AnimationSampler) SetOutput(a *Accessor) error {
	if a == nil {
		return s.setRef("output", nil)
	}
	return s.setRef("output", a)
}

func (s *AnimationSampler) equalsData(other Property) bool {
	o, ok := other.(*AnimationSampler)
	if !ok {
		return false
	}
	return s.interpolation == o.interpolation
}

func (s *AnimationSampler) copyData(other Property) {
	s.interpolation = other.(*AnimationSampler).interpolation
}
