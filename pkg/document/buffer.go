package document

// Buffer is a serialization target for accessor data. At runtime all data
// lives on the accessors; buffers only carry the URI the writer packs them
// into, so several accessors sharing one buffer is purely a layout choice.
type Buffer struct {
	property

	uri string
}

func (b *Buffer) Type() PropertyType    { return TypeBuffer }
func (b *Buffer) relations() []relation { return nil }

// URI returns the buffer's serialization URI, empty for GLB-internal data.
func (b *Buffer) URI() string { return b.uri }

// SetURI sets the buffer's serialization URI.
func (b *Buffer) SetURI(uri string) *Buffer {
	b.uri = uri
	return b
}

func (b *Buffer) equalsData(other Property) bool {
	o, ok := other.(*Buffer)
	if !ok {
		return false
	}
	return b.uri == o.uri
}

func (b *Buffer) copyData(other Property) {
	b.uri = other.(*Buffer).uri
}
