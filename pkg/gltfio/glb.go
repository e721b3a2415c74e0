package gltfio

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/errors"
)

// GLB container constants.
const (
	glbMagic     = 0x46546C67 // "glTF"
	glbVersion   = 2
	chunkJSON    = 0x4E4F534A // "JSON"
	chunkBinary  = 0x004E4942 // "BIN\0"
	glbHeaderLen = 12
	chunkHdrLen  = 8
)

// IsGLB reports whether data starts with the GLB container magic.
func IsGLB(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == glbMagic
}

// ReadGLB decodes a binary glTF container from r into a fresh document.
// The first JSON chunk is the asset, the first BIN chunk backs buffer 0.
func ReadGLB(r io.Reader) (*document.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "read GLB stream")
	}
	if len(raw) < glbHeaderLen {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "GLB header truncated")
	}
	if !IsGLB(raw) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "not a GLB container")
	}
	if v := binary.LittleEndian.Uint32(raw[4:]); v != glbVersion {
		return nil, errors.New(errors.ErrCodeUnsupported, "GLB version %d not supported", v)
	}
	total := int(binary.LittleEndian.Uint32(raw[8:]))
	if total > len(raw) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"GLB declares %d bytes, stream has %d", total, len(raw))
	}

	var jsonChunk, binChunk []byte
	for off := glbHeaderLen; off+chunkHdrLen <= total; {
		length := int(binary.LittleEndian.Uint32(raw[off:]))
		kind := binary.LittleEndian.Uint32(raw[off+4:])
		body := off + chunkHdrLen
		if body+length > total {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "GLB chunk exceeds container")
		}
		switch kind {
		case chunkJSON:
			if jsonChunk == nil {
				jsonChunk = raw[body : body+length]
			}
		case chunkBinary:
			if binChunk == nil {
				binChunk = raw[body : body+length]
			}
		}
		off = body + length
	}
	if jsonChunk == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "GLB has no JSON chunk")
	}

	var data documentJSON
	if err := json.Unmarshal(jsonChunk, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode GLB JSON chunk")
	}
	return buildDocument(&data, binChunk)
}

// WriteGLB serializes the document as a binary glTF container: one JSON
// chunk padded with spaces, one BIN chunk padded with zeros.
func WriteGLB(d *document.Document, w io.Writer) error {
	wr, err := newWriter(d)
	if err != nil {
		return err
	}
	if len(wr.bin) > 0 {
		wr.out.Buffers = []bufferJSON{{ByteLength: len(wr.bin)}}
	}

	jsonChunk, err := json.Marshal(wr.out)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "encode GLB JSON chunk")
	}
	jsonChunk = pad(jsonChunk, ' ')
	binChunk := pad(wr.bin, 0)

	total := glbHeaderLen + chunkHdrLen + len(jsonChunk)
	if len(binChunk) > 0 {
		total += chunkHdrLen + len(binChunk)
	}

	var buf bytes.Buffer
	buf.Grow(total)
	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	writeU32(glbMagic)
	writeU32(glbVersion)
	writeU32(uint32(total))
	writeU32(uint32(len(jsonChunk)))
	writeU32(chunkJSON)
	buf.Write(jsonChunk)
	if len(binChunk) > 0 {
		writeU32(uint32(len(binChunk)))
		writeU32(chunkBinary)
		buf.Write(binChunk)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "write GLB container")
	}
	return nil
}

// pad rounds a chunk body up to 4-byte alignment.
func pad(b []byte, fill byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, fill)
	}
	return b
}
