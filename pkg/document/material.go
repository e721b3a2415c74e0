package document

// Alpha rendering modes.
const (
	AlphaOpaque = "OPAQUE"
	AlphaMask   = "MASK"
	AlphaBlend  = "BLEND"
)

// Texture slots on a material. Each slot is a pair of relations: the
// texture reference itself, plus an exclusively-owned [TextureInfo]
// sub-participant carrying UV and sampler parameters for that slot.
const (
	SlotBaseColor         = "baseColorTexture"
	SlotMetallicRoughness = "metallicRoughnessTexture"
	SlotNormal            = "normalTexture"
	SlotOcclusion         = "occlusionTexture"
	SlotEmissive          = "emissiveTexture"
)

var textureSlots = []string{
	SlotBaseColor, SlotMetallicRoughness, SlotNormal, SlotOcclusion, SlotEmissive,
}

// Material is a metallic-roughness PBR material. Textures referenced by a
// material may be shared; the per-slot TextureInfo sub-objects exist solely
// to serve this material and are disposed with it.
type Material struct {
	property

	alphaMode         string
	alphaCutoff       float32
	doubleSided       bool
	baseColorFactor   [4]float32
	emissiveFactor    [3]float32
	metallicFactor    float32
	roughnessFactor   float32
	normalScale       float32
	occlusionStrength float32
}

func (m *Material) Type() PropertyType { return TypeMaterial }

func (m *Material) relations() []relation {
	rels := make([]relation, 0, 2*len(textureSlots))
	for _, slot := range textureSlots {
		rels = append(rels,
			relation{name: slot, kind: relSingle},
			relation{name: slot + "Info", kind: relSingle, owned: true},
		)
	}
	return rels
}

// AlphaMode returns the alpha rendering mode. Defaults to AlphaOpaque.
func (m *Material) AlphaMode() string { return m.alphaMode }

// SetAlphaMode sets the alpha rendering mode.
func (m *Material) SetAlphaMode(mode string) *Material {
	m.alphaMode = mode
	return m
}

// AlphaCutoff returns the mask-mode alpha cutoff. Defaults to 0.5.
func (m *Material) AlphaCutoff() float32 { return m.alphaCutoff }

// SetAlphaCutoff sets the mask-mode alpha cutoff.
func (m *Material) SetAlphaCutoff(v float32) *Material {
	m.alphaCutoff = v
	return m
}

// DoubleSided reports whether back-face culling is disabled.
func (m *Material) DoubleSided() bool { return m.doubleSided }

// SetDoubleSided enables or disables double-sided rendering.
func (m *Material) SetDoubleSided(v bool) *Material {
	m.doubleSided = v
	return m
}

// BaseColorFactor returns the base color RGBA factor. Defaults to white.
func (m *Material) BaseColorFactor() [4]float32 { return m.baseColorFactor }

// SetBaseColorFactor sets the base color RGBA factor.
func (m *Material) SetBaseColorFactor(v [4]float32) *Material {
	m.baseColorFactor = v
	return m
}

// EmissiveFactor returns the emissive RGB factor.
func (m *Material) EmissiveFactor() [3]float32 { return m.emissiveFactor }

// SetEmissiveFactor sets the emissive RGB factor.
func (m *Material) SetEmissiveFactor(v [3]float32) *Material {
	m.emissiveFactor = v
	return m
}

// MetallicFactor returns the metalness factor. Defaults to 1.
func (m *Material) MetallicFactor() float32 { return m.metallicFactor }

// SetMetallicFactor sets the metalness factor.
func (m *Material) SetMetallicFactor(v float32) *Material {
	m.metallicFactor = v
	return m
}

// RoughnessFactor returns the roughness factor. Defaults to 1.
func (m *Material) RoughnessFactor() float32 { return m.roughnessFactor }

// SetRoughnessFactor sets the roughness factor.
func (m *Material) SetRoughnessFactor(v float32) *Material {
	m.roughnessFactor = v
	return m
}

// NormalScale returns the normal map scale. Defaults to 1.
func (m *Material) NormalScale() float32 { return m.normalScale }

// SetNormalScale sets the normal map scale.
func (m *Material) SetNormalScale(v float32) *Material {
	m.normalScale = v
	return m
}

// OcclusionStrength returns the occlusion strength. Defaults to 1.
func (m *Material) OcclusionStrength() float32 { return m.occlusionStrength }

// SetOcclusionStrength sets the occlusion strength.
func (m *Material) SetOcclusionStrength(v float32) *Material {
	m.occlusionStrength = v
	return m
}

// GetTexture returns the texture bound to a slot, or nil.
func (m *Material) GetTexture(slot string) *Texture {
	if t := m.ref(slot); t != nil {
		return t.(*Texture)
	}
	return nil
}

// SetTexture binds or clears the texture for a slot. Binding a texture
// lazily creates the slot's TextureInfo sub-participant; clearing the slot
// disposes it.
func (m *Material) SetTexture(slot string, t *Texture) error {
	if t == nil {
		if info := m.ref(slot + "Info"); info != nil {
			info.Dispose()
		}
		return m.setRef(slot, nil)
	}
	if err := m.setRef(slot, t); err != nil {
		return err
	}
	if m.ref(slot+"Info") == nil {
		info := m.doc.createTextureInfo(slot)
		if err := m.setRef(slot+"Info", info); err != nil {
			return err
		}
	}
	return nil
}

// GetTextureInfo returns the UV/sampler parameters for a slot, or nil if
// no texture is bound there.
func (m *Material) GetTextureInfo(slot string) *TextureInfo {
	if m.GetTexture(slot) == nil {
		return nil
	}
	if info := m.ref(slot + "Info"); info != nil {
		return info.(*TextureInfo)
	}
	return nil
}

// GetBaseColorTexture returns the base color texture, or nil.
func (m *Material) GetBaseColorTexture() *Texture { return m.GetTexture(SlotBaseColor) }

// SetBaseColorTexture binds or clears the base color texture.
func (m *Material) SetBaseColorTexture(t *Texture) error { return m.SetTexture(SlotBaseColor, t) }

// GetMetallicRoughnessTexture returns the metallic-roughness texture, or nil.
func (m *Material) GetMetallicRoughnessTexture() *Texture {
	return m.GetTexture(SlotMetallicRoughness)
}

// SetMetallicRoughnessTexture binds or clears the metallic-roughness texture.
func (m *Material) SetMetallicRoughnessTexture(t *Texture) error {
	return m.SetTexture(SlotMetallicRoughness, t)
}

// GetNormalTexture returns the normal map, or nil.
func (m *Material) GetNormalTexture() *Texture { return m.GetTexture(SlotNormal) }

// SetNormalTexture binds or clears the normal map.
func (m *Material) SetNormalTexture(t *Texture) error { return m.SetTexture(SlotNormal, t) }

// GetOcclusionTexture returns the occlusion map, or nil.
func (m *Material) GetOcclusionTexture() *Texture { return m.GetTexture(SlotOcclusion) }

// SetOcclusionTexture binds or clears the occlusion map.
func (m *Material) SetOcclusionTexture(t *Texture) error { return m.SetTexture(SlotOcclusion, t) }

// GetEmissiveTexture returns the emissive map, or nil.
func (m *Material) GetEmissiveTexture() *Texture { return m.GetTexture(SlotEmissive) }

// SetEmissiveTexture binds or clears the emissive map.
func (m *Material) SetEmissiveTexture(t *Texture) error { return m.SetTexture(SlotEmissive, t) }

func (m *Material) equalsData(other Property) bool {
	o, ok := other.(*Material)
	if !ok {
		return false
	}
	return m.alphaMode == o.alphaMode &&
		m.alphaCutoff == o.alphaCutoff &&
		m.doubleSided == o.doubleSided &&
		m.baseColorFactor == o.baseColorFactor &&
		m.emissiveFactor == o.emissiveFactor &&
		m.metallicFactor == o.metallicFactor &&
		m.roughnessFactor == o.roughnessFactor &&
		m.normalScale == o.normalScale &&
		m.occlusionStrength == o.occlusionStrength
}

func (m *Material) copyData(other Property) {
	o := other.(*Material)
	m.alphaMode = o.alphaMode
	m.alphaCutoff = o.alphaCutoff
	m.doubleSided = o.doubleSided
	m.baseColorFactor = o.baseColorFactor
	m.emissiveFactor = o.emissiveFactor
	m.metallicFactor = o.metallicFactor
	m.roughnessFactor = o.roughnessFactor
	m.normalScale = o.normalScale
	m.occlusionStrength = o.occlusionStrength
}

// TextureInfo carries the UV set selection and sampler parameters for one
// material texture slot. It exists solely to serve its owning material and
// is disposed with it.
type TextureInfo struct {
	property

	texCoord  int
	magFilter int
	minFilter int
	wrapS     int
	wrapT     int
}

// Sampler wrap modes and filters (GL enums, as serialized by the format).
const (
	WrapClampToEdge    = 33071
	WrapMirroredRepeat = 33648
	WrapRepeat         = 10497

	FilterNearest = 9728
	FilterLinear  = 9729
)

func (ti *TextureInfo) Type() PropertyType    { return TypeTextureInfo }
func (ti *TextureInfo) relations() []relation { return nil }

// TexCoord returns the UV set index used by the slot.
func (ti *TextureInfo) TexCoord() int { return ti.texCoord }

// SetTexCoord selects the UV set index.
func (ti *TextureInfo) SetTexCoord(i int) *TextureInfo {
	ti.texCoord = i
	return ti
}

// MagFilter returns the magnification filter, 0 if unset.
func (ti *TextureInfo) MagFilter() int { return ti.magFilter }

// SetMagFilter sets the magnification filter.
func (ti *TextureInfo) SetMagFilter(f int) *TextureInfo {
	ti.magFilter = f
	return ti
}

// MinFilter returns the minification filter, 0 if unset.
func (ti *TextureInfo) MinFilter() int { return ti.minFilter }

// SetMinFilter sets the minification filter.
func (ti *TextureInfo) SetMinFilter(f int) *TextureInfo {
	ti.minFilter = f
	return ti
}

// WrapS returns the U wrap mode. Defaults to WrapRepeat.
func (ti *TextureInfo) WrapS() int { return ti.wrapS }

// SetWrapS sets the U wrap mode.
func (ti *TextureInfo) SetWrapS(w int) *TextureInfo {
	ti.wrapS = w
	return ti
}

// WrapT returns the V wrap mode. Defaults to WrapRepeat.
func (ti *TextureInfo) WrapT() int { return ti.wrapT }

// SetWrapT sets the V wrap mode.
func (ti *TextureInfo) SetWrapT(w int) *TextureInfo {
	ti.wrapT = w
	return ti
}

func (ti *TextureInfo) equalsData(other Property) bool {
	o, ok := other.(*TextureInfo)
	if !ok {
		return false
	}
	return ti.texCoord == o.texCoord &&
		ti.magFilter == o.magFilter &&
		ti.minFilter == o.minFilter &&
		ti.wrapS == o.wrapS &&
		ti.wrapT == o.wrapT
}

func (ti *TextureInfo) copyData(other Property) {
	o := other.(*TextureInfo)
	ti.texCoord = o.texCoord
	ti.magFilter = o.magFilter
	ti.minFilter = o.minFilter
	ti.wrapS = o.wrapS
	ti.wrapT = o.wrapT
}
