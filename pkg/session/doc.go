// Package session enumerates and reads the directory of session content
// files, indexed by the session filename grammar.
//
// Invariants:
// - Only filenames the grammar accepts are visible to callers.
// - Enumeration sorts newest-modified-first before filtering and paging.
// - Files that vanish between enumeration and stat are skipped, not errors.
// - Content operations return false on I/O failure instead of an error.
//
// Usage:
//
//	repo, _ := session.New("/home/user/.alcove/sessions")
//	page := repo.List(session.ListOptions{Limit: 20})
//	_ = page
package session
