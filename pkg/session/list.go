package session

import (
	"math"
	"strings"
)

// DefaultLimit is the page size used when none is given.
const DefaultLimit = 50

// ListOptions selects and pages the session listing. A zero Limit means
// DefaultLimit; out-of-range values are clamped rather than rejected.
type ListOptions struct {
	Limit  int
	Offset int
	Date   string
	Search string
}

// Page is one page of the session listing.
type Page struct {
	Sessions []Record
	Total    int
	Offset   int
	Limit    int
	HasMore  bool
}

// CoerceOffset maps an untrusted numeric offset onto a usable one:
// NaN and negatives become 0, fractions are floored.
func CoerceOffset(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Floor(v))
}

// CoerceLimit maps an untrusted numeric limit onto a usable one: NaN
// becomes the default, everything else is floored and clamped to at
// least 1.
func CoerceLimit(v float64) int {
	if math.IsNaN(v) {
		return DefaultLimit
	}
	limit := int(math.Floor(v))
	if limit < 1 {
		return 1
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func clampLimit(limit int) int {
	if limit == 0 {
		return DefaultLimit
	}
	if limit < 1 {
		return 1
	}
	return limit
}

func matchesSearch(rec *Record, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Filename), needle) {
		return true
	}
	return rec.ShortID != "" && strings.Contains(strings.ToLower(rec.ShortID), needle)
}

// List enumerates the directory, filters by date and search, and pages the
// result. Sessions are always newest-modified-first.
func (r *Repository) List(opts ListOptions) Page {
	limit := clampLimit(opts.Limit)
	offset := clampOffset(opts.Offset)

	records := r.enumerate()

	filtered := records
	if opts.Date != "" || opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		filtered = make([]Record, 0, len(records))
		for i := range records {
			rec := &records[i]
			if opts.Date != "" && rec.Date != opts.Date {
				continue
			}
			if needle != "" && !matchesSearch(rec, needle) {
				continue
			}
			filtered = append(filtered, *rec)
		}
	}

	total := len(filtered)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Sessions: filtered[start:end],
		Total:    total,
		Offset:   offset,
		Limit:    limit,
		HasMore:  offset+limit < total,
	}
}
