package gltfio

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/errors"
)

// Option configures a read.
type Option func(*readConfig)

type readConfig struct {
	baseDir string
}

// WithBaseDir sets the directory relative buffer and image URIs are
// resolved against. Without it, external file references are left
// unresolved and only data URIs are loaded.
func WithBaseDir(dir string) Option {
	return func(c *readConfig) { c.baseDir = dir }
}

// ReadGLTF decodes glTF JSON from r into a fresh document.
//
// The returned document is independent of r: external and data-URI buffer
// contents are unpacked onto the accessors, and index references become
// links. ReadGLTF does not close r.
func ReadGLTF(r io.Reader, opts ...Option) (*document.Document, error) {
	var data documentJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode glTF JSON")
	}
	return buildDocument(&data, nil, opts...)
}

// Import reads the asset at path, choosing the container from the leading
// bytes rather than the extension, and resolves relative URIs against the
// file's directory.
func Import(path string) (*document.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if IsGLB(raw) {
		return ReadGLB(bytes.NewReader(raw))
	}
	return ReadGLTF(bytes.NewReader(raw), WithBaseDir(filepath.Dir(path)))
}

// buildDocument drives the document factories from the decoded JSON.
// bin is the GLB binary chunk for buffer 0, nil for JSON assets.
func buildDocument(data *documentJSON, bin []byte, opts ...Option) (*document.Document, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if data.Asset.Version == "" {
		return nil, errors.New(errors.ErrCodeInvalidAsset, "missing asset.version")
	}

	d := document.NewDocument()
	root := d.Root()
	root.SetVersion(data.Asset.Version)
	root.SetGenerator(data.Asset.Generator)
	root.SetCopyright(data.Asset.Copyright)

	required := make(map[string]bool, len(data.ExtensionsRequired))
	for _, name := range data.ExtensionsRequired {
		required[name] = true
	}
	for _, name := range data.ExtensionsUsed {
		d.CreateExtension(name).SetRequired(required[name])
	}

	ld := &loader{cfg: cfg, data: data, bin: bin, doc: d}
	if err := ld.buffers(); err != nil {
		return nil, err
	}
	if err := ld.accessors(); err != nil {
		return nil, err
	}
	if err := ld.textures(); err != nil {
		return nil, err
	}
	if err := ld.materials(); err != nil {
		return nil, err
	}
	if err := ld.meshes(); err != nil {
		return nil, err
	}
	ld.cameras()
	if err := ld.nodesAndSkins(); err != nil {
		return nil, err
	}
	if err := ld.scenes(); err != nil {
		return nil, err
	}
	if err := ld.animations(); err != nil {
		return nil, err
	}
	return d, nil
}

// loader carries the decoded JSON plus the participants created so far,
// indexed exactly as the source arrays are.
type loader struct {
	cfg  readConfig
	data *documentJSON
	bin  []byte
	doc  *document.Document

	bufData [][]byte
	bufs    []*document.Buffer
	accs    []*document.Accessor
	texs    []*document.Texture
	mats    []*document.Material
	mshs    []*document.Mesh
	cams    []*document.Camera
	nodes   []*document.Node
	skins   []*document.Skin
}

func (l *loader) buffers() error {
	for i, b := range l.data.Buffers {
		data, err := l.resolveURI(b.URI)
		if err != nil {
			return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "buffer %d", i)
		}
		if data == nil && i == 0 {
			data = l.bin
		}
		l.bufData = append(l.bufData, data)

		buf := l.doc.CreateBuffer(b.Name)
		if !strings.HasPrefix(b.URI, "data:") {
			buf.SetURI(b.URI)
		}
		l.bufs = append(l.bufs, buf)
	}
	return nil
}

// resolveURI loads a data URI or, when a base directory is configured, an
// external file. Returns nil data for an empty or unresolvable-but-absent
// URI.
func (l *loader) resolveURI(uri string) ([]byte, error) {
	if err := errors.ValidateBufferURI(uri); err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, nil
	}
	if rest, ok := strings.CutPrefix(uri, "data:"); ok {
		_, b64, ok := strings.Cut(rest, ";base64,")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "data URI is not base64 encoded")
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data URI")
		}
		return data, nil
	}
	if l.cfg.baseDir == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(l.cfg.baseDir, filepath.FromSlash(uri)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", uri)
	}
	return data, nil
}

// viewBytes slices one accessor's worth of bytes out of a buffer view.
func (l *loader) viewBytes(a accessorJSON) ([]byte, error) {
	if a.BufferView == nil {
		return nil, nil
	}
	vi := *a.BufferView
	if vi < 0 || vi >= len(l.data.BufferViews) {
		return nil, errors.New(errors.ErrCodeInvalidAccessor, "buffer view %d out of range", vi)
	}
	view := l.data.BufferViews[vi]
	if view.Buffer < 0 || view.Buffer >= len(l.bufData) {
		return nil, errors.New(errors.ErrCodeInvalidAccessor, "buffer %d out of range", view.Buffer)
	}
	buf := l.bufData[view.Buffer]
	if buf == nil {
		return nil, nil // external buffer not loaded
	}
	start := view.ByteOffset
	end := start + view.ByteLength
	if start < 0 || end > len(buf) {
		return nil, errors.New(errors.ErrCodeInvalidAccessor,
			"buffer view [%d:%d] exceeds buffer of %d bytes", start, end, len(buf))
	}
	raw := buf[start:end]

	compSize := document.ComponentType(a.ComponentType).Size()
	comps := document.ElementType(a.Type).Components()
	if compSize == 0 || comps == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAccessor,
			"unknown accessor type %s/%d", a.Type, a.ComponentType)
	}
	tight := compSize * comps
	stride := tight
	if view.ByteStride != nil && *view.ByteStride != 0 {
		stride = *view.ByteStride
	}

	off := a.ByteOffset
	if off < 0 || a.Count < 0 {
		return nil, errors.New(errors.ErrCodeInvalidAccessor,
			"negative accessor byteOffset %d or count %d", off, a.Count)
	}
	if a.Count == 0 {
		return nil, nil
	}
	need := off + (a.Count-1)*stride + tight
	if need > len(raw) {
		return nil, errors.New(errors.ErrCodeInvalidAccessor,
			"accessor needs %d bytes, view has %d", need, len(raw))
	}
	if stride == tight {
		return raw[off : off+a.Count*tight], nil
	}
	// Interleaved data is de-interleaved into the tightly packed layout the
	// accessor model stores.
	out := make([]byte, 0, a.Count*tight)
	for i := 0; i < a.Count; i++ {
		at := off + i*stride
		out = append(out, raw[at:at+tight]...)
	}
	return out, nil
}

func (l *loader) accessors() error {
	for i, a := range l.data.Accessors {
		acc := l.doc.CreateAccessor(a.Name).
			SetElementType(document.ElementType(a.Type)).
			SetComponentType(document.ComponentType(a.ComponentType)).
			SetNormalized(a.Normalized)
		data, err := l.viewBytes(a)
		if err != nil {
			return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "accessor %d", i)
		}
		acc.SetData(data)
		if a.BufferView != nil {
			vi := *a.BufferView
			if vi >= 0 && vi < len(l.data.BufferViews) {
				bi := l.data.BufferViews[vi].Buffer
				if bi >= 0 && bi < len(l.bufs) {
					if err := acc.SetBuffer(l.bufs[bi]); err != nil {
						return err
					}
				}
			}
		}
		l.accs = append(l.accs, acc)
	}
	return nil
}

func (l *loader) textures() error {
	for i, t := range l.data.Textures {
		tex := l.doc.CreateTexture(t.Name)
		if t.Source != nil {
			si := *t.Source
			if si < 0 || si >= len(l.data.Images) {
				return errors.New(errors.ErrCodeInvalidAsset, "texture %d: image %d out of range", i, si)
			}
			img := l.data.Images[si]
			if tex.Name() == "" {
				tex.SetName(img.Name)
			}
			tex.SetMimeType(img.MimeType)
			data, err := l.resolveURI(img.URI)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "texture %d", i)
			}
			if data != nil {
				tex.SetImage(data)
				if tex.MimeType() == "" {
					tex.SetMimeType(DetectImageMIME(data))
				}
			}
			if !strings.HasPrefix(img.URI, "data:") {
				tex.SetURI(img.URI)
			}
		}
		l.texs = append(l.texs, tex)
	}
	return nil
}

// applySampler copies texture sampler parameters onto the material slot's
// info sub-object. The on-disk model hangs sampler state off the texture;
// the in-memory model hangs it off the referencing slot.
func (l *loader) applySampler(m *document.Material, slot string, ref *textureRefJSON) error {
	if ref == nil {
		return nil
	}
	if ref.Index < 0 || ref.Index >= len(l.texs) {
		return errors.New(errors.ErrCodeInvalidAsset, "texture %d out of range", ref.Index)
	}
	if err := m.SetTexture(slot, l.texs[ref.Index]); err != nil {
		return err
	}
	info := m.GetTextureInfo(slot)
	info.SetTexCoord(ref.TexCoord)

	tj := l.data.Textures[ref.Index]
	if tj.Sampler == nil {
		return nil
	}
	si := *tj.Sampler
	if si < 0 || si >= len(l.data.Samplers) {
		return nil
	}
	s := l.data.Samplers[si]
	if s.MagFilter != nil {
		info.SetMagFilter(*s.MagFilter)
	}
	if s.MinFilter != nil {
		info.SetMinFilter(*s.MinFilter)
	}
	if s.WrapS != nil {
		info.SetWrapS(*s.WrapS)
	}
	if s.WrapT != nil {
		info.SetWrapT(*s.WrapT)
	}
	return nil
}

func (l *loader) materials() error {
	for i, m := range l.data.Materials {
		mat := l.doc.CreateMaterial(m.Name)
		if m.AlphaMode != "" {
			mat.SetAlphaMode(m.AlphaMode)
		}
		if m.AlphaCutoff != nil {
			mat.SetAlphaCutoff(*m.AlphaCutoff)
		}
		mat.SetDoubleSided(m.DoubleSided)
		if m.EmissiveFactor != nil {
			mat.SetEmissiveFactor(*m.EmissiveFactor)
		}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				mat.SetBaseColorFactor(*pbr.BaseColorFactor)
			}
			if pbr.MetallicFactor != nil {
				mat.SetMetallicFactor(*pbr.MetallicFactor)
			}
			if pbr.RoughnessFactor != nil {
				mat.SetRoughnessFactor(*pbr.RoughnessFactor)
			}
			if err := l.applySampler(mat, document.SlotBaseColor, pbr.BaseColorTexture); err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "material %d", i)
			}
			if err := l.applySampler(mat, document.SlotMetallicRoughness, pbr.MetallicRoughnessTexture); err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "material %d", i)
			}
		}
		if m.NormalTexture != nil {
			if err := l.applySampler(mat, document.SlotNormal, &m.NormalTexture.textureRefJSON); err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "material %d", i)
			}
			if m.NormalTexture.Scale != nil {
				mat.SetNormalScale(*m.NormalTexture.Scale)
			}
		}
		if m.OcclusionTexture != nil {
			if err := l.applySampler(mat, document.SlotOcclusion, &m.OcclusionTexture.textureRefJSON); err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "material %d", i)
			}
			if m.OcclusionTexture.Strength != nil {
				mat.SetOcclusionStrength(*m.OcclusionTexture.Strength)
			}
		}
		if err := l.applySampler(mat, document.SlotEmissive, m.EmissiveTexture); err != nil {
			return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "material %d", i)
		}
		l.mats = append(l.mats, mat)
	}
	return nil
}

func (l *loader) meshes() error {
	for i, m := range l.data.Meshes {
		mesh := l.doc.CreateMesh(m.Name).SetWeights(m.Weights)
		for pi, p := range m.Primitives {
			prim := l.doc.CreatePrimitive()
			if p.Mode != nil {
				prim.SetMode(*p.Mode)
			}
			for sem, ai := range p.Attributes {
				acc, err := l.accessor(ai)
				if err != nil {
					return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "mesh %d primitive %d attribute %s", i, pi, sem)
				}
				if err := prim.SetAttribute(sem, acc); err != nil {
					return err
				}
			}
			if p.Indices != nil {
				acc, err := l.accessor(*p.Indices)
				if err != nil {
					return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "mesh %d primitive %d indices", i, pi)
				}
				if err := prim.SetIndices(acc); err != nil {
					return err
				}
			}
			if p.Material != nil {
				mi := *p.Material
				if mi < 0 || mi >= len(l.mats) {
					return errors.New(errors.ErrCodeInvalidAsset,
						"mesh %d primitive %d: material %d out of range", i, pi, mi)
				}
				if err := prim.SetMaterial(l.mats[mi]); err != nil {
					return err
				}
			}
			if err := mesh.AddPrimitive(prim); err != nil {
				return err
			}
		}
		l.mshs = append(l.mshs, mesh)
	}
	return nil
}

func (l *loader) accessor(i int) (*document.Accessor, error) {
	if i < 0 || i >= len(l.accs) {
		return nil, errors.New(errors.ErrCodeInvalidAccessor, "accessor %d out of range", i)
	}
	return l.accs[i], nil
}

func (l *loader) cameras() {
	for _, c := range l.data.Cameras {
		cam := l.doc.CreateCamera(c.Name).SetProjection(c.Type)
		if p := c.Perspective; p != nil {
			cam.SetYFov(p.YFov).SetZNear(p.ZNear)
			if p.AspectRatio != nil {
				cam.SetAspectRatio(*p.AspectRatio)
			}
			if p.ZFar != nil {
				cam.SetZFar(*p.ZFar)
			}
		}
		if o := c.Orthographic; o != nil {
			cam.SetXMag(o.XMag).SetYMag(o.YMag).SetZNear(o.ZNear).SetZFar(o.ZFar)
		}
		l.cams = append(l.cams, cam)
	}
}

// nodesAndSkins creates every node first, then wires hierarchy, meshes,
// cameras, and skins. Skins and node hierarchy both reference nodes by
// index, so wiring waits until the whole array exists.
func (l *loader) nodesAndSkins() error {
	for _, n := range l.data.Nodes {
		node := l.doc.CreateNode(n.Name)
		if n.Translation != nil {
			node.SetTranslation(*n.Translation)
		}
		if n.Rotation != nil {
			node.SetRotation(*n.Rotation)
		}
		if n.Scale != nil {
			node.SetScale(*n.Scale)
		}
		node.SetWeights(n.Weights)
		l.nodes = append(l.nodes, node)
	}

	for i, s := range l.data.Skins {
		skin := l.doc.CreateSkin(s.Name)
		if s.InverseBindMatrices != nil {
			acc, err := l.accessor(*s.InverseBindMatrices)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "skin %d", i)
			}
			if err := skin.SetInverseBindMatrices(acc); err != nil {
				return err
			}
		}
		if s.Skeleton != nil {
			n, err := l.node(*s.Skeleton)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "skin %d skeleton", i)
			}
			if err := skin.SetSkeleton(n); err != nil {
				return err
			}
		}
		for _, ji := range s.Joints {
			n, err := l.node(ji)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "skin %d joint", i)
			}
			if err := skin.AddJoint(n); err != nil {
				return err
			}
		}
		l.skins = append(l.skins, skin)
	}

	for i, n := range l.data.Nodes {
		node := l.nodes[i]
		for _, ci := range n.Children {
			child, err := l.node(ci)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "node %d child", i)
			}
			if err := node.AddChild(child); err != nil {
				return err
			}
		}
		if n.Mesh != nil {
			mi := *n.Mesh
			if mi < 0 || mi >= len(l.mshs) {
				return errors.New(errors.ErrCodeInvalidAsset, "node %d: mesh %d out of range", i, mi)
			}
			if err := node.SetMesh(l.mshs[mi]); err != nil {
				return err
			}
		}
		if n.Camera != nil {
			ci := *n.Camera
			if ci < 0 || ci >= len(l.cams) {
				return errors.New(errors.ErrCodeInvalidAsset, "node %d: camera %d out of range", i, ci)
			}
			if err := node.SetCamera(l.cams[ci]); err != nil {
				return err
			}
		}
		if n.Skin != nil {
			si := *n.Skin
			if si < 0 || si >= len(l.skins) {
				return errors.New(errors.ErrCodeInvalidAsset, "node %d: skin %d out of range", i, si)
			}
			if err := node.SetSkin(l.skins[si]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *loader) node(i int) (*document.Node, error) {
	if i < 0 || i >= len(l.nodes) {
		return nil, errors.New(errors.ErrCodeInvalidAsset, "node %d out of range", i)
	}
	return l.nodes[i], nil
}

func (l *loader) scenes() error {
	var scenes []*document.Scene
	for i, s := range l.data.Scenes {
		scene := l.doc.CreateScene(s.Name)
		for _, ni := range s.Nodes {
			n, err := l.node(ni)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "scene %d", i)
			}
			if err := scene.AddChild(n); err != nil {
				return err
			}
		}
		scenes = append(scenes, scene)
	}
	if l.data.Scene != nil {
		si := *l.data.Scene
		if si < 0 || si >= len(scenes) {
			return errors.New(errors.ErrCodeInvalidAsset, "default scene %d out of range", si)
		}
		return l.doc.Root().SetDefaultScene(scenes[si])
	}
	return nil
}

func (l *loader) animations() error {
	for i, a := range l.data.Animations {
		anim := l.doc.CreateAnimation(a.Name)
		var samplers []*document.AnimationSampler
		for si, s := range a.Samplers {
			sampler := l.doc.CreateAnimationSampler()
			if s.Interpolation != "" {
				sampler.SetInterpolation(s.Interpolation)
			}
			in, err := l.accessor(s.Input)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "animation %d sampler %d input", i, si)
			}
			out, err := l.accessor(s.Output)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "animation %d sampler %d output", i, si)
			}
			if err := sampler.SetInput(in); err != nil {
				return err
			}
			if err := sampler.SetOutput(out); err != nil {
				return err
			}
			if err := anim.AddSampler(sampler); err != nil {
				return err
			}
			samplers = append(samplers, sampler)
		}
		for ci, c := range a.Channels {
			if c.Sampler < 0 || c.Sampler >= len(samplers) {
				return errors.New(errors.ErrCodeInvalidAsset,
					"animation %d channel %d: sampler %d out of range", i, ci, c.Sampler)
			}
			channel := l.doc.CreateAnimationChannel()
			channel.SetTargetPath(c.Target.Path)
			if err := channel.SetSampler(samplers[c.Sampler]); err != nil {
				return err
			}
			if c.Target.Node != nil {
				n, err := l.node(*c.Target.Node)
				if err != nil {
					return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidAsset), err, "animation %d channel %d", i, ci)
				}
				if err := channel.SetTargetNode(n); err != nil {
					return err
				}
			}
			if err := anim.AddChannel(channel); err != nil {
				return err
			}
		}
	}
	return nil
}
