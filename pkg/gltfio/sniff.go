package gltfio

import "github.com/h2non/filetype"

// DetectImageMIME sniffs the MIME type of raw image bytes. Returns the
// generic octet-stream type when the format is unrecognized.
func DetectImageMIME(data []byte) string {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}
