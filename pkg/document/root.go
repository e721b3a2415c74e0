package document

// Root is the single top-level participant of a document, owning the named
// collections every other top-level participant lives in. Collection
// membership is ordinary links, so the generic copy machinery captures it
// during merge without special-casing.
type Root struct {
	property

	generator string
	version   string
	copyright string
}

// Collection relation names on Root, in serialization order.
var rootCollections = []string{
	"scenes", "nodes", "meshes", "materials", "textures",
	"accessors", "buffers", "animations", "skins", "cameras", "extensions",
}

// collectionForType maps top-level participant types to their Root
// collection. Types not listed here (Primitive, TextureInfo, animation
// internals) live only under their owners.
var collectionForType = map[PropertyType]string{
	TypeScene:     "scenes",
	TypeNode:      "nodes",
	TypeMesh:      "meshes",
	TypeMaterial:  "materials",
	TypeTexture:   "textures",
	TypeAccessor:  "accessors",
	TypeBuffer:    "buffers",
	TypeAnimation: "animations",
	TypeSkin:      "skins",
	TypeCamera:    "cameras",
	TypeExtension: "extensions",
}

func (r *Root) Type() PropertyType { return TypeRoot }

func (r *Root) relations() []relation {
	rels := make([]relation, 0, len(rootCollections)+1)
	for _, name := range rootCollections {
		rels = append(rels, relation{name: name, kind: relList})
	}
	rels = append(rels, relation{name: "defaultScene", kind: relSingle})
	return rels
}

// Generator returns the tool that produced the asset.
func (r *Root) Generator() string { return r.generator }

// SetGenerator sets the generator string.
func (r *Root) SetGenerator(v string) *Root {
	r.generator = v
	return r
}

// Version returns the glTF version of the asset.
func (r *Root) Version() string { return r.version }

// SetVersion sets the glTF version string.
func (r *Root) SetVersion(v string) *Root {
	r.version = v
	return r
}

// Copyright returns the asset copyright notice.
func (r *Root) Copyright() string { return r.copyright }

// SetCopyright sets the asset copyright notice.
func (r *Root) SetCopyright(v string) *Root {
	r.copyright = v
	return r
}

// GetDefaultScene returns the default scene, or nil.
func (r *Root) GetDefaultScene() *Scene {
	if s := r.ref("defaultScene"); s != nil {
		return s.(*Scene)
	}
	return nil
}

// SetDefaultScene sets or clears the default scene.
func (r *Root) SetDefaultScene(s *Scene) error {
	if s == nil {
		return r.setRef("defaultScene", nil)
	}
	return r.setRef("defaultScene", s)
}

// ListScenes returns the document's scenes in creation order.
func (r *Root) ListScenes() []*Scene {
	return listAs[*Scene](r.children("scenes"))
}

// ListNodes returns the document's nodes in creation order.
func (r *Root) ListNodes() []*Node {
	return listAs[*Node](r.children("nodes"))
}

// ListMeshes returns the document's meshes in creation order.
func (r *Root) ListMeshes() []*Mesh {
	return listAs[*Mesh](r.children("meshes"))
}

// ListMaterials returns the document's materials in creation order.
func (r *Root) ListMaterials() []*Material {
	return listAs[*Material](r.children("materials"))
}

// ListTextures returns the document's textures in creation order.
func (r *Root) ListTextures() []*Texture {
	return listAs[*Texture](r.children("textures"))
}

// ListAccessors returns the document's accessors in creation order.
func (r *Root) ListAccessors() []*Accessor {
	return listAs[*Accessor](r.children("accessors"))
}

// ListBuffers returns the document's buffers in creation order.
func (r *Root) ListBuffers() []*Buffer {
	return listAs[*Buffer](r.children("buffers"))
}

// ListAnimations returns the document's animations in creation order.
func (r *Root) ListAnimations() []*Animation {
	return listAs[*Animation](r.children("animations"))
}

// ListSkins returns the document's skins in creation order.
func (r *Root) ListSkins() []*Skin {
	return listAs[*Skin](r.children("skins"))
}

// ListCameras returns the document's cameras in creation order.
func (r *Root) ListCameras() []*Camera {
	return listAs[*Camera](r.children("cameras"))
}

// ListExtensions returns the document's registered extensions in creation
// order.
func (r *Root) ListExtensions() []*Extension {
	return listAs[*Extension](r.children("extensions"))
}

// ListProperties returns one collection as generic properties.
func (r *Root) ListProperties(collection string) []Property {
	return r.children(collection)
}

// attach appends a freshly created top-level participant to its collection.
func (r *Root) attach(p Property) {
	if name, ok := collectionForType[p.Type()]; ok {
		_ = r.addChild(name, p) // both endpoints are fresh and live
	}
}

func (r *Root) equalsData(other Property) bool {
	o, ok := other.(*Root)
	if !ok {
		return false
	}
	return r.generator == o.generator &&
		r.version == o.version &&
		r.copyright == o.copyright
}

func (r *Root) copyData(other Property) {
	o := other.(*Root)
	r.generator = o.generator
	r.version = o.version
	r.copyright = o.copyright
}

// listAs converts a generic property slice to its concrete type.
func listAs[T Property](props []Property) []T {
	out := make([]T, len(props))
	for i, p := range props {
		out[i] = p.(T)
	}
	return out
}
