// Package document implements the in-memory glTF 2.0 document model: a set
// of typed participants (scenes, nodes, meshes, materials, textures,
// accessors, ...) whose references to each other are tracked by a
// [graph.Graph] with referential integrity.
//
// A [Document] owns one graph and one [Root]. Participants are created
// through Document factory methods, which register them with the graph and,
// for top-level types, attach them to the Root collection:
//
//	doc := document.NewDocument()
//	tex := doc.CreateTexture("wood")
//	mat := doc.CreateMaterial("table")
//	_ = mat.SetBaseColorTexture(tex)
//
//	doc.Graph().ListParents(tex) // contains mat
//
// Disposing a participant removes every reference to it in one operation;
// referrers observe the removal immediately:
//
//	tex.Dispose()
//	mat.GetBaseColorTexture() // nil
//
// Cross-document references are never created directly. [Document.Merge]
// copies a whole document into another, manufacturing equivalent
// participants and remapping every reference; [Document.Clone] is a merge
// into a fresh document.
//
// Relation declarations per concrete type (name, single/list/attribute
// kind, ownership flag) drive structural copy, disposal cascade, and
// equality without reflection.
//
// Documents are designed for single-threaded, synchronous mutation. Every
// operation runs to completion before returning; callers needing atomicity
// across a failing transform should operate on a clone and discard it.
package document
