// Package transform provides document optimization passes built on the
// reference graph: structural deduplication and dead-participant pruning.
// Every pass is a [document.Transform], composable with
// [document.Document.Transform].
package transform
