package document

import (
	"github.com/charmbracelet/log"

	"github.com/modelwerk/gltfkit/pkg/graph"
)

// Document owns one property graph and one Root. All participants are
// created through its factory methods; each factory registers the new
// participant with the graph and, for top-level types, attaches it to the
// Root collection.
//
// A Document is not safe for concurrent use without external
// synchronization.
type Document struct {
	graph  *graph.Graph
	root   *Root
	logger *log.Logger
}

// NewDocument creates an empty document with a fresh graph and root.
func NewDocument() *Document {
	d := &Document{
		graph:  graph.New(),
		logger: log.Default(),
	}
	d.root = &Root{}
	d.root.init(d.root, d, "")
	d.root.SetVersion("2.0")
	return d
}

// Graph returns the document's property graph.
func (d *Document) Graph() *graph.Graph { return d.graph }

// Root returns the document's root participant.
func (d *Document) Root() *Root { return d.root }

// Logger returns the document's logger.
func (d *Document) Logger() *log.Logger { return d.logger }

// SetLogger replaces the document's logger. A nil logger restores the
// default.
func (d *Document) SetLogger(l *log.Logger) *Document {
	if l == nil {
		l = log.Default()
	}
	d.logger = l
	return d
}

// CreateScene creates a scene and attaches it to the document.
func (d *Document) CreateScene(name string) *Scene {
	s := d.newProperty(TypeScene, name).(*Scene)
	d.root.attach(s)
	return s
}

// CreateNode creates a node and attaches it to the document.
func (d *Document) CreateNode(name string) *Node {
	n := d.newProperty(TypeNode, name).(*Node)
	d.root.attach(n)
	return n
}

// CreateMesh creates a mesh and attaches it to the document.
func (d *Document) CreateMesh(name string) *Mesh {
	m := d.newProperty(TypeMesh, name).(*Mesh)
	d.root.attach(m)
	return m
}

// CreatePrimitive creates a primitive. Primitives live under their owning
// mesh, not in a Root collection.
func (d *Document) CreatePrimitive() *Primitive {
	return d.newProperty(TypePrimitive, "").(*Primitive)
}

// CreateMaterial creates a material and attaches it to the document.
func (d *Document) CreateMaterial(name string) *Material {
	m := d.newProperty(TypeMaterial, name).(*Material)
	d.root.attach(m)
	return m
}

// createTextureInfo creates the sampler-parameter sub-participant attached
// to one material texture slot.
func (d *Document) createTextureInfo(slot string) *TextureInfo {
	return d.newProperty(TypeTextureInfo, slot).(*TextureInfo)
}

// CreateTexture creates a texture and attaches it to the document.
func (d *Document) CreateTexture(name string) *Texture {
	t := d.newProperty(TypeTexture, name).(*Texture)
	d.root.attach(t)
	return t
}

// CreateAccessor creates an accessor and attaches it to the document.
func (d *Document) CreateAccessor(name string) *Accessor {
	a := d.newProperty(TypeAccessor, name).(*Accessor)
	d.root.attach(a)
	return a
}

// CreateBuffer creates a buffer and attaches it to the document.
func (d *Document) CreateBuffer(name string) *Buffer {
	b := d.newProperty(TypeBuffer, name).(*Buffer)
	d.root.attach(b)
	return b
}

// CreateAnimation creates an animation and attaches it to the document.
func (d *Document) CreateAnimation(name string) *Animation {
	a := d.newProperty(TypeAnimation, name).(*Animation)
	d.root.attach(a)
	return a
}

// CreateAnimationChannel creates a channel. Channels live under their
// owning animation, not in a Root collection.
func (d *Document) CreateAnimationChannel() *AnimationChannel {
	return d.newProperty(TypeAnimationChannel, "").(*AnimationChannel)
}

// CreateAnimationSampler creates a sampler. Samplers live under their
// owning animation, not in a Root collection.
func (d *Document) CreateAnimationSampler() *AnimationSampler {
	return d.newProperty(TypeAnimationSampler, "").(*AnimationSampler)
}

// CreateSkin creates a skin and attaches it to the document.
func (d *Document) CreateSkin(name string) *Skin {
	s := d.newProperty(TypeSkin, name).(*Skin)
	d.root.attach(s)
	return s
}

// CreateCamera creates a camera and attaches it to the document.
func (d *Document) CreateCamera(name string) *Camera {
	c := d.newProperty(TypeCamera, name).(*Camera)
	d.root.attach(c)
	return c
}

// CreateExtension registers an extension by name, reusing an existing
// registration for the same name if present.
func (d *Document) CreateExtension(name string) *Extension {
	for _, e := range d.root.ListExtensions() {
		if e.ExtensionName() == name {
			return e
		}
	}
	e := d.newProperty(TypeExtension, name).(*Extension)
	d.root.attach(e)
	return e
}

// newProperty constructs and registers a participant with its type's
// defaults, without attaching it to a Root collection. Merge uses this
// directly to pre-create reference targets; the public factories add the
// collection attachment.
func (d *Document) newProperty(t PropertyType, name string) Property {
	var p Property
	switch t {
	case TypeScene:
		p = &Scene{}
	case TypeNode:
		p = &Node{
			rotation: [4]float32{0, 0, 0, 1},
			scale:    [3]float32{1, 1, 1},
		}
	case TypeMesh:
		p = &Mesh{}
	case TypePrimitive:
		p = &Primitive{mode: ModeTriangles}
	case TypeMaterial:
		p = &Material{
			alphaMode:         AlphaOpaque,
			alphaCutoff:       0.5,
			baseColorFactor:   [4]float32{1, 1, 1, 1},
			metallicFactor:    1,
			roughnessFactor:   1,
			normalScale:       1,
			occlusionStrength: 1,
		}
	case TypeTextureInfo:
		p = &TextureInfo{wrapS: WrapRepeat, wrapT: WrapRepeat}
	case TypeTexture:
		p = &Texture{}
	case TypeAccessor:
		p = &Accessor{elementType: ElementScalar, componentType: ComponentFloat}
	case TypeBuffer:
		p = &Buffer{}
	case TypeAnimation:
		p = &Animation{}
	case TypeAnimationChannel:
		p = &AnimationChannel{}
	case TypeAnimationSampler:
		p = &AnimationSampler{interpolation: InterpolationLinear}
	case TypeSkin:
		p = &Skin{}
	case TypeCamera:
		p = &Camera{projection: CameraPerspective}
	case TypeExtension:
		p = &Extension{extensionName: name}
	default:
		return nil
	}
	p.base().init(p, d, name)
	return p
}

// Transform is one mutation pass over a document. Transforms compose with
// [Document.Transform]; on error the pipeline stops and the document may be
// partially transformed - operate on a clone when atomicity matters.
type Transform func(*Document) error

// Transform applies each transform in order, stopping at the first error.
func (d *Document) Transform(fns ...Transform) error {
	for _, fn := range fns {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}
