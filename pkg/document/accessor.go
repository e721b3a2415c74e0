package document

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// ElementType is the per-element shape of an accessor.
type ElementType string

// Element types and their component counts.
const (
	ElementScalar ElementType = "SCALAR"
	ElementVec2   ElementType = "VEC2"
	ElementVec3   ElementType = "VEC3"
	ElementVec4   ElementType = "VEC4"
	ElementMat2   ElementType = "MAT2"
	ElementMat3   ElementType = "MAT3"
	ElementMat4   ElementType = "MAT4"
)

// Components returns the number of components per element, 0 for an
// unknown element type.
func (e ElementType) Components() int {
	switch e {
	case ElementScalar:
		return 1
	case ElementVec2:
		return 2
	case ElementVec3:
		return 3
	case ElementVec4, ElementMat2:
		return 4
	case ElementMat3:
		return 9
	case ElementMat4:
		return 16
	}
	return 0
}

// ComponentType is the storage type of a single component (GL enum, as
// serialized by the format).
type ComponentType int

// Component types.
const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
)

// Size returns the byte size of one component, 0 for an unknown type.
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	}
	return 0
}

// Accessor is a typed view over packed binary data: vertex positions,
// indices, animation keyframes. Accessors may be shared by any number of
// primitives and samplers; disposing a referrer never disposes an accessor.
type Accessor struct {
	property

	elementType   ElementType
	componentType ComponentType
	normalized    bool
	data          []byte
}

func (a *Accessor) Type() PropertyType { return TypeAccessor }

func (a *Accessor) relations() []relation {
	return []relation{
		{name: "buffer", kind: relSingle},
	}
}

// ElementType returns the per-element shape. Defaults to ElementScalar.
func (a *Accessor) ElementType() ElementType { return a.elementType }

// SetElementType sets the per-element shape.
func (a *Accessor) SetElementType(t ElementType) *Accessor {
	a.elementType = t
	return a
}

// ComponentType returns the component storage type. Defaults to ComponentFloat.
func (a *Accessor) ComponentType() ComponentType { return a.componentType }

// SetComponentType sets the component storage type.
func (a *Accessor) SetComponentType(t ComponentType) *Accessor {
	a.componentType = t
	return a
}

// Normalized reports whether integer data is normalized to [0,1] or [-1,1].
func (a *Accessor) Normalized() bool { return a.normalized }

// SetNormalized sets the normalized flag.
func (a *Accessor) SetNormalized(v bool) *Accessor {
	a.normalized = v
	return a
}

// GetBuffer returns the buffer this accessor's data is serialized into,
// or nil.
func (a *Accessor) GetBuffer() *Buffer {
	if b := a.ref("buffer"); b != nil {
		return b.(*Buffer)
	}
	return nil
}

// SetBuffer sets or clears the target buffer.
func (a *Accessor) SetBuffer(b *Buffer) error {
	if b == nil {
		return a.setRef("buffer", nil)
	}
	return a.setRef("buffer", b)
}

// Data returns the raw packed bytes, little-endian, tightly packed.
func (a *Accessor) Data() []byte { return a.data }

// SetData sets the raw packed bytes.
func (a *Accessor) SetData(data []byte) *Accessor {
	a.data = bytes.Clone(data)
	return a
}

// Count returns the number of elements, 0 if the accessor is untyped.
func (a *Accessor) Count() int {
	stride := a.componentType.Size() * a.elementType.Components()
	if stride == 0 {
		return 0
	}
	return len(a.data) / stride
}

// ComponentCount returns the total number of components across all
// elements.
func (a *Accessor) ComponentCount() int {
	if size := a.componentType.Size(); size > 0 {
		return len(a.data) / size
	}
	return 0
}

// Floats decodes every component as float32, regardless of the underlying
// component type. Integer components are converted without normalization.
func (a *Accessor) Floats() []float32 {
	n := a.ComponentCount()
	out := make([]float32, n)
	size := a.componentType.Size()
	for i := 0; i < n; i++ {
		out[i] = a.component(i * size)
	}
	return out
}

// SetFloats encodes the values into the accessor's component type.
// Values outside the component type's range are truncated.
func (a *Accessor) SetFloats(vals []float32) *Accessor {
	size := a.componentType.Size()
	data := make([]byte, len(vals)*size)
	for i, v := range vals {
		a.putComponent(data[i*size:], v)
	}
	a.data = data
	return a
}

// Uints decodes every component as uint32 without a float round-trip.
// Intended for index accessors.
func (a *Accessor) Uints() []uint32 {
	n := a.ComponentCount()
	out := make([]uint32, n)
	size := a.componentType.Size()
	for i := 0; i < n; i++ {
		switch a.componentType {
		case ComponentUnsignedByte:
			out[i] = uint32(a.data[i*size])
		case ComponentUnsignedShort:
			out[i] = uint32(binary.LittleEndian.Uint16(a.data[i*size:]))
		case ComponentUnsignedInt:
			out[i] = binary.LittleEndian.Uint32(a.data[i*size:])
		default:
			out[i] = uint32(a.component(i * size))
		}
	}
	return out
}

// SetUints encodes index values into the accessor's component type without
// a float round-trip.
func (a *Accessor) SetUints(vals []uint32) *Accessor {
	size := a.componentType.Size()
	data := make([]byte, len(vals)*size)
	for i, v := range vals {
		switch a.componentType {
		case ComponentUnsignedByte:
			data[i*size] = byte(v)
		case ComponentUnsignedShort:
			binary.LittleEndian.PutUint16(data[i*size:], uint16(v))
		case ComponentUnsignedInt:
			binary.LittleEndian.PutUint32(data[i*size:], v)
		default:
			a.putComponent(data[i*size:], float32(v))
		}
	}
	a.data = data
	return a
}

// Min returns the per-component minimum across all elements, one value per
// component of the element type. Returns nil for an empty accessor.
func (a *Accessor) Min() []float32 { return a.bound(math32.Min) }

// Max returns the per-component maximum across all elements, one value per
// component of the element type. Returns nil for an empty accessor.
func (a *Accessor) Max() []float32 { return a.bound(math32.Max) }

func (a *Accessor) bound(pick func(a, b float32) float32) []float32 {
	comps := a.elementType.Components()
	count := a.Count()
	if comps == 0 || count == 0 {
		return nil
	}
	floats := a.Floats()
	out := make([]float32, comps)
	copy(out, floats[:comps])
	for i := comps; i < count*comps; i++ {
		out[i%comps] = pick(out[i%comps], floats[i])
	}
	return out
}

// component decodes one component at a byte offset.
func (a *Accessor) component(off int) float32 {
	switch a.componentType {
	case ComponentByte:
		return float32(int8(a.data[off]))
	case ComponentUnsignedByte:
		return float32(a.data[off])
	case ComponentShort:
		return float32(int16(binary.LittleEndian.Uint16(a.data[off:])))
	case ComponentUnsignedShort:
		return float32(binary.LittleEndian.Uint16(a.data[off:]))
	case ComponentUnsignedInt:
		return float32(binary.LittleEndian.Uint32(a.data[off:]))
	case ComponentFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(a.data[off:]))
	}
	return 0
}

// putComponent encodes one component into dst.
func (a *Accessor) putComponent(dst []byte, v float32) {
	switch a.componentType {
	case ComponentByte:
		dst[0] = byte(int8(v))
	case ComponentUnsignedByte:
		dst[0] = byte(v)
	case ComponentShort:
		binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
	case ComponentUnsignedShort:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case ComponentUnsignedInt:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case ComponentFloat:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
	}
}

func (a *Accessor) equalsData(other Property) bool {
	o, ok := other.(*Accessor)
	if !ok {
		return false
	}
	return a.elementType == o.elementType &&
		a.componentType == o.componentType &&
		a.normalized == o.normalized &&
		bytes.Equal(a.data, o.data)
}

func (a *Accessor) copyData(other Property) {
	o := other.(*Accessor)
	a.elementType = o.elementType
	a.componentType = o.componentType
	a.normalized = o.normalized
	a.data = bytes.Clone(o.data)
}
