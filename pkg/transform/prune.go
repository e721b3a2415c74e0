package transform

import (
	"github.com/modelwerk/gltfkit/pkg/document"
)

// pruneCollections lists the collections whose members exist to be
// referenced. Scenes, animations, and extensions are entry points: nothing
// references them, so "no parent but Root" is their normal state.
var pruneCollections = []string{
	"nodes", "skins", "meshes", "cameras", "materials", "textures", "accessors", "buffers",
}

// Prune returns a pass that disposes participants nothing references.
// A participant is dead when its only inbound links come from the Root
// collections. Disposal can orphan further participants, so the pass
// repeats until a full sweep removes nothing.
func Prune() document.Transform {
	return func(d *document.Document) error {
		total := 0
		for {
			removed := 0
			for _, collection := range pruneCollections {
				removed += pruneCollection(d, collection)
			}
			total += removed
			if removed == 0 {
				break
			}
		}
		d.Logger().Debug("prune complete", "removed", total)
		return nil
	}
}

func pruneCollection(d *document.Document, collection string) int {
	root := d.Root()
	removed := 0
	for _, p := range root.ListProperties(collection) {
		if p.Disposed() || referenced(d, p) {
			continue
		}
		d.Logger().Debug("pruned", "collection", collection, "name", p.Name())
		p.Dispose()
		removed++
	}
	return removed
}

// referenced reports whether any live participant except Root points at p.
func referenced(d *document.Document, p document.Property) bool {
	rootUID := d.Root().UID()
	for _, parent := range d.Graph().ListParents(p) {
		if parent.UID() != rootUID {
			return true
		}
	}
	return false
}
