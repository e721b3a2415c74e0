package gltfio

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/errors"
)

// writer carries the per-export state: the index assigned to each
// participant and the binary blob accessor data is packed into.
type writer struct {
	doc *document.Document

	scenes    map[*document.Scene]int
	nodes     map[*document.Node]int
	meshes    map[*document.Mesh]int
	materials map[*document.Material]int
	textures  map[*document.Texture]int
	accessors map[*document.Accessor]int
	samplers  map[*document.AnimationSampler]int

	bin []byte
	out documentJSON
}

// WriteGLTF serializes the document as glTF JSON with accessor data
// embedded as a base64 data URI.
func WriteGLTF(d *document.Document, w io.Writer) error {
	wr, err := newWriter(d)
	if err != nil {
		return err
	}
	if len(wr.bin) > 0 {
		wr.out.Buffers = []bufferJSON{{
			URI:        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(wr.bin),
			ByteLength: len(wr.bin),
		}}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wr.out); err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "encode glTF JSON")
	}
	return nil
}

// Export writes the document to path, choosing the container from the file
// extension: .glb for the binary container, anything else for glTF JSON.
func Export(d *document.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "create %s", path)
	}
	defer f.Close()
	if strings.EqualFold(extOf(path), ".glb") {
		return WriteGLB(d, f)
	}
	return WriteGLTF(d, f)
}

func extOf(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}

// newWriter assigns indices to every live participant and builds the JSON
// document plus the packed binary blob.
func newWriter(d *document.Document) (*writer, error) {
	w := &writer{
		doc:       d,
		scenes:    make(map[*document.Scene]int),
		nodes:     make(map[*document.Node]int),
		meshes:    make(map[*document.Mesh]int),
		materials: make(map[*document.Material]int),
		textures:  make(map[*document.Texture]int),
		accessors: make(map[*document.Accessor]int),
		samplers:  make(map[*document.AnimationSampler]int),
	}
	root := d.Root()

	w.out.Asset = assetJSON{
		Version:   root.Version(),
		Generator: root.Generator(),
		Copyright: root.Copyright(),
	}
	if w.out.Asset.Version == "" {
		w.out.Asset.Version = "2.0"
	}

	for _, e := range root.ListExtensions() {
		w.out.ExtensionsUsed = append(w.out.ExtensionsUsed, e.ExtensionName())
		if e.Required() {
			w.out.ExtensionsRequired = append(w.out.ExtensionsRequired, e.ExtensionName())
		}
	}

	// Index assignment first, so forward references resolve.
	for i, s := range root.ListScenes() {
		w.scenes[s] = i
	}
	for i, n := range root.ListNodes() {
		w.nodes[n] = i
	}
	for i, m := range root.ListMeshes() {
		w.meshes[m] = i
	}
	for i, m := range root.ListMaterials() {
		w.materials[m] = i
	}
	for i, t := range root.ListTextures() {
		w.textures[t] = i
	}
	for i, a := range root.ListAccessors() {
		w.accessors[a] = i
	}

	for _, a := range root.ListAccessors() {
		w.writeAccessor(a)
	}
	for _, t := range root.ListTextures() {
		w.writeTexture(t)
	}
	for _, m := range root.ListMaterials() {
		w.out.Materials = append(w.out.Materials, w.materialJSON(m))
	}
	for _, m := range root.ListMeshes() {
		w.out.Meshes = append(w.out.Meshes, w.meshJSON(m))
	}
	for _, c := range root.ListCameras() {
		w.out.Cameras = append(w.out.Cameras, cameraToJSON(c))
	}
	for _, s := range root.ListSkins() {
		w.out.Skins = append(w.out.Skins, w.skinJSON(s))
	}
	for _, n := range root.ListNodes() {
		w.out.Nodes = append(w.out.Nodes, w.nodeJSON(n))
	}
	for _, s := range root.ListScenes() {
		w.out.Scenes = append(w.out.Scenes, w.sceneJSON(s))
	}
	for _, a := range root.ListAnimations() {
		j, err := w.animationJSON(a)
		if err != nil {
			return nil, err
		}
		w.out.Animations = append(w.out.Animations, j)
	}
	if ds := root.GetDefaultScene(); ds != nil {
		if i, ok := w.scenes[ds]; ok {
			w.out.Scene = &i
		}
	}
	return w, nil
}

// writeAccessor packs the accessor's raw data into the shared blob and
// emits one tightly packed buffer view per accessor.
func (w *writer) writeAccessor(a *document.Accessor) {
	j := accessorJSON{
		Name:          a.Name(),
		ComponentType: int(a.ComponentType()),
		Normalized:    a.Normalized(),
		Count:         a.Count(),
		Type:          string(a.ElementType()),
		Min:           a.Min(),
		Max:           a.Max(),
	}
	if data := a.Data(); len(data) > 0 {
		// Views are 4-byte aligned per the format's alignment rules.
		for len(w.bin)%4 != 0 {
			w.bin = append(w.bin, 0)
		}
		view := len(w.out.BufferViews)
		w.out.BufferViews = append(w.out.BufferViews, bufferViewJSON{
			Buffer:     0,
			ByteOffset: len(w.bin),
			ByteLength: len(data),
		})
		w.bin = append(w.bin, data...)
		j.BufferView = &view
	}
	w.out.Accessors = append(w.out.Accessors, j)
}

// writeTexture emits the image, sampler, and texture entries for one
// texture. Sampler parameters come from the first material slot referencing
// the texture; identical samplers are shared.
func (w *writer) writeTexture(t *document.Texture) {
	img := imageJSON{Name: t.Name(), URI: t.URI(), MimeType: t.MimeType()}
	if data := t.Image(); len(data) > 0 && img.URI == "" {
		mime := img.MimeType
		if mime == "" {
			mime = DetectImageMIME(data)
			img.MimeType = mime
		}
		img.URI = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	}
	source := len(w.out.Images)
	w.out.Images = append(w.out.Images, img)

	tj := textureJSON{Name: t.Name(), Source: &source}
	if info := w.samplerFor(t); info != nil {
		tj.Sampler = w.internSampler(samplerJSON{
			MagFilter: omitZero(info.MagFilter()),
			MinFilter: omitZero(info.MinFilter()),
			WrapS:     omitDefault(info.WrapS(), document.WrapRepeat),
			WrapT:     omitDefault(info.WrapT(), document.WrapRepeat),
		})
	}
	w.out.Textures = append(w.out.Textures, tj)
}

// samplerFor finds the first material slot referencing t and returns its
// parameters, or nil when no slot does.
func (w *writer) samplerFor(t *document.Texture) *document.TextureInfo {
	for _, m := range w.doc.Root().ListMaterials() {
		for _, slot := range []string{
			document.SlotBaseColor, document.SlotMetallicRoughness,
			document.SlotNormal, document.SlotOcclusion, document.SlotEmissive,
		} {
			if m.GetTexture(slot) == t {
				return m.GetTextureInfo(slot)
			}
		}
	}
	return nil
}

// internSampler returns the index of an existing identical sampler entry,
// appending a new one if needed. Nil when the sampler is all defaults.
func (w *writer) internSampler(s samplerJSON) *int {
	if s.MagFilter == nil && s.MinFilter == nil && s.WrapS == nil && s.WrapT == nil {
		return nil
	}
	for i, have := range w.out.Samplers {
		if eqIntPtr(have.MagFilter, s.MagFilter) && eqIntPtr(have.MinFilter, s.MinFilter) &&
			eqIntPtr(have.WrapS, s.WrapS) && eqIntPtr(have.WrapT, s.WrapT) {
			return ptr(i)
		}
	}
	w.out.Samplers = append(w.out.Samplers, s)
	return ptr(len(w.out.Samplers) - 1)
}

func (w *writer) textureRef(m *document.Material, slot string) *textureRefJSON {
	t := m.GetTexture(slot)
	if t == nil {
		return nil
	}
	idx, ok := w.textures[t]
	if !ok {
		return nil
	}
	ref := &textureRefJSON{Index: idx}
	if info := m.GetTextureInfo(slot); info != nil {
		ref.TexCoord = info.TexCoord()
	}
	return ref
}

func (w *writer) materialJSON(m *document.Material) materialJSON {
	j := materialJSON{
		Name:        m.Name(),
		DoubleSided: m.DoubleSided(),
	}
	if m.AlphaMode() != document.AlphaOpaque {
		j.AlphaMode = m.AlphaMode()
	}
	if m.AlphaMode() == document.AlphaMask && m.AlphaCutoff() != 0.5 {
		j.AlphaCutoff = ptr(m.AlphaCutoff())
	}
	if ef := m.EmissiveFactor(); ef != [3]float32{} {
		j.EmissiveFactor = &ef
	}

	pbr := &pbrJSON{BaseColorTexture: w.textureRef(m, document.SlotBaseColor)}
	if bc := m.BaseColorFactor(); bc != [4]float32{1, 1, 1, 1} {
		pbr.BaseColorFactor = &bc
	}
	if v := m.MetallicFactor(); v != 1 {
		pbr.MetallicFactor = ptr(v)
	}
	if v := m.RoughnessFactor(); v != 1 {
		pbr.RoughnessFactor = ptr(v)
	}
	pbr.MetallicRoughnessTexture = w.textureRef(m, document.SlotMetallicRoughness)
	j.PBRMetallicRoughness = pbr

	if ref := w.textureRef(m, document.SlotNormal); ref != nil {
		n := &normalJSON{textureRefJSON: *ref}
		if v := m.NormalScale(); v != 1 {
			n.Scale = ptr(v)
		}
		j.NormalTexture = n
	}
	if ref := w.textureRef(m, document.SlotOcclusion); ref != nil {
		o := &occlusionJSON{textureRefJSON: *ref}
		if v := m.OcclusionStrength(); v != 1 {
			o.Strength = ptr(v)
		}
		j.OcclusionTexture = o
	}
	j.EmissiveTexture = w.textureRef(m, document.SlotEmissive)
	return j
}

func (w *writer) meshJSON(m *document.Mesh) meshJSON {
	j := meshJSON{Name: m.Name(), Weights: m.Weights()}
	for _, p := range m.ListPrimitives() {
		pj := primitiveJSON{Attributes: make(map[string]int)}
		for _, sem := range p.ListSemantics() {
			if idx, ok := w.accessors[p.GetAttribute(sem)]; ok {
				pj.Attributes[sem] = idx
			}
		}
		if idx := p.GetIndices(); idx != nil {
			if i, ok := w.accessors[idx]; ok {
				pj.Indices = &i
			}
		}
		if mat := p.GetMaterial(); mat != nil {
			if i, ok := w.materials[mat]; ok {
				pj.Material = &i
			}
		}
		if p.Mode() != document.ModeTriangles {
			pj.Mode = ptr(p.Mode())
		}
		j.Primitives = append(j.Primitives, pj)
	}
	return j
}

func (w *writer) nodeJSON(n *document.Node) nodeJSON {
	j := nodeJSON{Name: n.Name(), Weights: n.Weights()}
	for _, c := range n.ListChildren() {
		if i, ok := w.nodes[c]; ok {
			j.Children = append(j.Children, i)
		}
	}
	if m := n.GetMesh(); m != nil {
		if i, ok := w.meshes[m]; ok {
			j.Mesh = &i
		}
	}
	if c := n.GetCamera(); c != nil {
		for i, have := range w.doc.Root().ListCameras() {
			if have == c {
				j.Camera = ptr(i)
				break
			}
		}
	}
	if s := n.GetSkin(); s != nil {
		for i, have := range w.doc.Root().ListSkins() {
			if have == s {
				j.Skin = ptr(i)
				break
			}
		}
	}
	if t := n.Translation(); t != [3]float32{} {
		j.Translation = &t
	}
	if r := n.Rotation(); r != [4]float32{0, 0, 0, 1} {
		j.Rotation = &r
	}
	if s := n.Scale(); s != [3]float32{1, 1, 1} {
		j.Scale = &s
	}
	return j
}

func (w *writer) sceneJSON(s *document.Scene) sceneJSON {
	j := sceneJSON{Name: s.Name()}
	for _, n := range s.ListChildren() {
		if i, ok := w.nodes[n]; ok {
			j.Nodes = append(j.Nodes, i)
		}
	}
	return j
}

func (w *writer) skinJSON(s *document.Skin) skinJSON {
	j := skinJSON{Name: s.Name(), Joints: []int{}}
	if ibm := s.GetInverseBindMatrices(); ibm != nil {
		if i, ok := w.accessors[ibm]; ok {
			j.InverseBindMatrices = &i
		}
	}
	if sk := s.GetSkeleton(); sk != nil {
		if i, ok := w.nodes[sk]; ok {
			j.Skeleton = &i
		}
	}
	for _, joint := range s.ListJoints() {
		if i, ok := w.nodes[joint]; ok {
			j.Joints = append(j.Joints, i)
		}
	}
	return j
}

func (w *writer) animationJSON(a *document.Animation) (animationJSON, error) {
	j := animationJSON{Name: a.Name()}
	for i, s := range a.ListSamplers() {
		w.samplers[s] = i
		sj := animSamplerJSON{Interpolation: s.Interpolation()}
		in, out := s.GetInput(), s.GetOutput()
		if in == nil || out == nil {
			return j, errors.New(errors.ErrCodeInvalidAsset,
				"animation %q sampler %d is missing keyframe accessors", a.Name(), i)
		}
		sj.Input = w.accessors[in]
		sj.Output = w.accessors[out]
		j.Samplers = append(j.Samplers, sj)
	}
	for i, c := range a.ListChannels() {
		s := c.GetSampler()
		if s == nil {
			return j, errors.New(errors.ErrCodeInvalidAsset,
				"animation %q channel %d has no sampler", a.Name(), i)
		}
		si, ok := w.samplers[s]
		if !ok {
			return j, errors.New(errors.ErrCodeInvalidAsset,
				"animation %q channel %d references a sampler outside the animation", a.Name(), i)
		}
		cj := animChannelJSON{
			Sampler: si,
			Target:  animTargetJSON{Path: c.TargetPath()},
		}
		if n := c.GetTargetNode(); n != nil {
			if ni, ok := w.nodes[n]; ok {
				cj.Target.Node = &ni
			}
		}
		j.Channels = append(j.Channels, cj)
	}
	return j, nil
}

func cameraToJSON(c *document.Camera) cameraJSON {
	j := cameraJSON{Name: c.Name(), Type: c.Projection()}
	switch c.Projection() {
	case document.CameraOrthographic:
		j.Orthographic = &orthographicJSON{
			XMag:  c.XMag(),
			YMag:  c.YMag(),
			ZNear: c.ZNear(),
			ZFar:  c.ZFar(),
		}
	default:
		j.Type = document.CameraPerspective
		p := &perspectiveJSON{YFov: c.YFov(), ZNear: c.ZNear()}
		if v := c.AspectRatio(); v != 0 {
			p.AspectRatio = ptr(v)
		}
		if v := c.ZFar(); v != 0 {
			p.ZFar = ptr(v)
		}
		j.Perspective = p
	}
	return j
}

func ptr[T any](v T) *T { return &v }

func omitZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func omitDefault(v, def int) *int {
	if v == def {
		return nil
	}
	return &v
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
