package session

import (
	"os"
	"strings"
	"time"

	"github.com/alcove-sh/alcove/pkg/sessionfile"
)

// FindByID locates a session by short id prefix, exact filename (with or
// without the canonical extension), or, for legacy files, a bare date. With
// includeContent the file is read once and Content, Metadata and Stats are
// all derived from that single read. Returns nil when nothing matches or
// the content read fails.
func (r *Repository) FindByID(idOrFilename string, includeContent bool) *Record {
	if idOrFilename == "" {
		return nil
	}

	records := r.enumerate()
	found := findMatch(records, idOrFilename)
	if found == nil {
		return nil
	}

	out := *found
	if includeContent {
		data, err := os.ReadFile(out.SessionPath)
		if err != nil {
			r.logger.Warn().Str("file", out.Filename).Err(err).Msg("Failed to read session content")
			return nil
		}
		out.Content = string(data)
		out.Metadata = ParseMetadata(out.Content)
		out.Stats = StatsFromContent(out.Content)
	}
	return &out
}

func findMatch(records []Record, query string) *Record {
	// Short id prefix match, skipping legacy files that have no id.
	for i := range records {
		rec := &records[i]
		if rec.ShortID != sessionfile.NoID && strings.HasPrefix(rec.ShortID, query) {
			return rec
		}
	}

	// Exact filename, extension optional.
	for i := range records {
		rec := &records[i]
		if rec.Filename == query || rec.Filename == query+sessionfile.Ext {
			return rec
		}
	}

	// Legacy files answer to their bare date.
	legacy := query + sessionfile.Suffix
	for i := range records {
		if records[i].Filename == legacy {
			return &records[i]
		}
	}
	return nil
}

// Create writes content under a freshly minted filename for today and
// returns its record, or nil if the write failed.
func (r *Repository) Create(content string) *Record {
	name := sessionfile.Filename(time.Now(), sessionfile.NewShortID())
	if !r.Write(name, content) {
		return nil
	}
	return r.FindByID(name, false)
}
