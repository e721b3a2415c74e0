package document

// Camera projection kinds.
const (
	CameraPerspective  = "perspective"
	CameraOrthographic = "orthographic"
)

// Camera is a projection definition referenced by nodes.
type Camera struct {
	property

	projection  string
	aspectRatio float32
	yfov        float32
	xmag        float32
	ymag        float32
	znear       float32
	zfar        float32
}

func (c *Camera) Type() PropertyType    { return TypeCamera }
func (c *Camera) relations() []relation { return nil }

// Projection returns the projection kind. Defaults to CameraPerspective.
func (c *Camera) Projection() string { return c.projection }

// SetProjection sets the projection kind.
func (c *Camera) SetProjection(p string) *Camera {
	c.projection = p
	return c
}

// AspectRatio returns the perspective aspect ratio, 0 when unset.
func (c *Camera) AspectRatio() float32 { return c.aspectRatio }

// SetAspectRatio sets the perspective aspect ratio.
func (c *Camera) SetAspectRatio(v float32) *Camera {
	c.aspectRatio = v
	return c
}

// YFov returns the vertical field of view in radians.
func (c *Camera) YFov() float32 { return c.yfov }

// SetYFov sets the vertical field of view in radians.
func (c *Camera) SetYFov(v float32) *Camera {
	c.yfov = v
	return c
}

// XMag returns the orthographic horizontal magnification.
func (c *Camera) XMag() float32 { return c.xmag }

// SetXMag sets the orthographic horizontal magnification.
func (c *Camera) SetXMag(v float32) *Camera {
	c.xmag = v
	return c
}

// YMag returns the orthographic vertical magnification.
func (c *Camera) YMag() float32 { return c.ymag }

// SetYMag sets the orthographic vertical magnification.
func (c *Camera) SetYMag(v float32) *Camera {
	c.ymag = v
	return c
}

// ZNear returns the near clipping plane distance.
func (c *Camera) ZNear() float32 { return c.znear }

// SetZNear sets the near clipping plane distance.
func (c *Camera) SetZNear(v float32) *Camera {
	c.znear = v
	return c
}

// ZFar returns the far clipping plane distance, 0 for an infinite
// perspective projection.
func (c *Camera) ZFar() float32 { return c.zfar }

// SetZFar sets the far clipping plane distance.
func (c *Camera) SetZFar(v float32) *Camera {
	c.zfar = v
	return c
}

func (c *Camera) equalsData(other Property) bool {
	o, ok := other.(*Camera)
	if !ok {
		return false
	}
	return c.projection == o.projection &&
		c.aspectRatio == o.aspectRatio &&
		c.yfov == o.yfov &&
		c.xmag == o.xmag &&
		c.ymag == o.ymag &&
		c.znear == o.znear &&
		c.zfar == o.zfar
}

func (c *Camera) copyData(other Property) {
	o := other.(*Camera)
	c.projection = o.projection
	c.aspectRatio = o.aspectRatio
	c.yfov = o.yfov
	c.xmag = o.xmag
	c.ymag = o.ymag
	c.znear = o.znear
	c.zfar = o.zfar
}
