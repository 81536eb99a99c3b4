// Package alias maps human-chosen names to session paths, persisted as one
// JSON document through an atomicfile store.
//
// Invariants:
// - Alias names are 1-128 chars of [A-Za-z0-9_-] and never a reserved word.
// - A record's createdAt survives every update to that alias.
// - The on-disk metadata block is recomputed on every save, never trusted.
// - No operation panics or returns a corrupt-document error; corruption
//   self-heals to an empty store.
//
// Usage:
//
//	store := alias.New("/home/user/.alcove/aliases.json")
//	_, _ = store.Set("sprint-review", "2026-03-05-abcd1234efgh-session.md", "")
//	rec := store.Resolve("sprint-review")
//	_ = rec
package alias
