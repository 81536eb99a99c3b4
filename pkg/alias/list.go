package alias

import (
	"sort"
	"strings"
)

// Entry is a record paired with its alias name, as returned by List.
type Entry struct {
	Name string
	Record
}

// sortEntries orders newest-first by updatedAt, falling back to createdAt;
// entries with no usable timestamp end up last. Ties break on name so the
// order is stable across runs.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ki, kj := entries[i].sortKey(), entries[j].sortKey()
		if ki.Equal(kj) {
			return entries[i].Name < entries[j].Name
		}
		return ki.After(kj)
	})
}

func matchesSearch(e Entry, search string) bool {
	if strings.Contains(strings.ToLower(e.Name), search) {
		return true
	}
	return e.Title != nil && strings.Contains(strings.ToLower(*e.Title), search)
}

// List returns aliases sorted newest-first. A non-empty search filters by
// case-insensitive substring over name and title; a positive limit truncates
// the result.
func (s *Store) List(search string, limit int) []Entry {
	doc := s.file.Load()

	entries := make([]Entry, 0, len(doc.Aliases))
	needle := strings.ToLower(search)
	for name, rec := range doc.Aliases {
		e := Entry{Name: name, Record: rec}
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		entries = append(entries, e)
	}

	sortEntries(entries)

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Count returns the number of stored aliases.
func (s *Store) Count() int {
	return len(s.file.Load().Aliases)
}
