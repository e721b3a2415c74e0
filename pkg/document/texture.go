package document

import "bytes"

// Texture is an image participant: encoded pixel data plus its MIME type,
// or a URI pointing at an external file. Pixel decoding is out of scope;
// the SDK treats image payloads as opaque bytes.
type Texture struct {
	property

	uri      string
	mimeType string
	image    []byte
}

func (t *Texture) Type() PropertyType    { return TypeTexture }
func (t *Texture) relations() []relation { return nil }

// URI returns the external image URI, empty for embedded images.
func (t *Texture) URI() string { return t.uri }

// SetURI sets the external image URI.
func (t *Texture) SetURI(uri string) *Texture {
	t.uri = uri
	return t
}

// MimeType returns the image MIME type ("image/png", "image/jpeg", ...).
func (t *Texture) MimeType() string { return t.mimeType }

// SetMimeType sets the image MIME type.
func (t *Texture) SetMimeType(mime string) *Texture {
	t.mimeType = mime
	return t
}

// Image returns the encoded image bytes, nil for external images that have
// not been loaded.
func (t *Texture) Image() []byte { return t.image }

// SetImage sets the encoded image bytes.
func (t *Texture) SetImage(data []byte) *Texture {
	t.image = bytes.Clone(data)
	return t
}

func (t *Texture) equalsData(other Property) bool {
	o, ok := other.(*Texture)
	if !ok {
		return false
	}
	return t.uri == o.uri &&
		t.mimeType == o.mimeType &&
		bytes.Equal(t.image, o.image)
}

func (t *Texture) copyData(other Property) {
	o := other.(*Texture)
	t.uri = o.uri
	t.mimeType = o.mimeType
	t.image = bytes.Clone(o.image)
}
