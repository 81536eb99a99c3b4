package alias

import (
	"sort"

	"github.com/alcove-sh/alcove/internal/metrics"
)

// CleanupResult summarizes an orphan sweep.
type CleanupResult struct {
	TotalChecked   int
	Removed        int
	RemovedAliases []string
}

// CleanupOrphans removes every alias whose session path fails the exists
// check. All removals are computed first and persisted in one save, not one
// save per removal.
func (s *Store) CleanupOrphans(exists func(sessionPath string) bool) (*CleanupResult, error) {
	doc := s.file.Load()

	var removed []string
	for name, rec := range doc.Aliases {
		if !exists(rec.SessionPath) {
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)

	result := &CleanupResult{
		TotalChecked:   len(doc.Aliases),
		Removed:        len(removed),
		RemovedAliases: removed,
	}

	if len(removed) == 0 {
		return result, nil
	}

	for _, name := range removed {
		delete(doc.Aliases, name)
	}
	if !s.persist(doc) {
		return nil, ErrPersist
	}

	metrics.AddOrphansRemoved(len(removed))
	s.logger.Info().
		Int("checked", result.TotalChecked).
		Int("removed", result.Removed).
		Msg("Orphaned aliases removed")

	return result, nil
}

// Orphans returns the aliases whose session path fails the exists check
// without removing anything. The janitor uses this for its dry-run stats.
func (s *Store) Orphans(exists func(sessionPath string) bool) []string {
	doc := s.file.Load()

	var orphans []string
	for name, rec := range doc.Aliases {
		if !exists(rec.SessionPath) {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	return orphans
}
