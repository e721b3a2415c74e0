// Package gltfio reads and writes glTF 2.0 assets.
//
// The on-disk format indexes everything by array position; the in-memory
// model references everything by link. The reader turns indices into links
// by driving [document.Document] factories, and the writer assigns fresh
// indices from the Root collections on every export. Both .gltf (JSON with
// external or data-URI buffers) and .glb (binary container) are supported.
package gltfio
