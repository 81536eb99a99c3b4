// Package atomicfile persists single JSON documents with crash safety.
//
// Invariants:
// - Load always returns a usable document, never an error.
// - Save never leaves the target file truncated or half-written.
// - A backup taken before a save is restored if the save fails.
//
// Usage:
//
//	store := atomicfile.New(path, func() *Doc { return &Doc{} })
//	doc := store.Load()
//	doc.Field = "value"
//	ok := store.Save(doc)
//	_ = ok
package atomicfile
