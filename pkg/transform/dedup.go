package transform

import (
	"github.com/modelwerk/gltfkit/pkg/document"
)

// dedupCollections lists the collections worth deduplicating, cheapest
// comparisons first. Nodes and scenes are excluded: two nodes with equal
// data are usually distinct instances on purpose.
var dedupCollections = []string{"accessors", "textures", "materials", "meshes"}

// Dedup returns a pass that collapses structurally equal participants.
// For every group of equal participants the first one survives; inbound
// references of the rest are redirected to it and the rest are disposed.
func Dedup() document.Transform {
	return func(d *document.Document) error {
		total := 0
		for _, collection := range dedupCollections {
			removed, err := dedupCollection(d, collection)
			if err != nil {
				return err
			}
			total += removed
		}
		d.Logger().Debug("dedup complete", "removed", total)
		return nil
	}
}

func dedupCollection(d *document.Document, collection string) (int, error) {
	props := d.Root().ListProperties(collection)
	removed := 0
	// Quadratic scan. Collections are small compared to the accessor data
	// behind them, and Equals short-circuits on plain fields first.
	for i, keep := range props {
		if keep.Disposed() {
			continue
		}
		for _, dup := range props[i+1:] {
			if dup.Disposed() || !keep.Equals(dup) {
				continue
			}
			if err := document.Swap(dup, keep); err != nil {
				return removed, err
			}
			dup.Dispose()
			removed++
			d.Logger().Debug("deduplicated", "collection", collection, "name", keep.Name())
		}
	}
	return removed, nil
}
