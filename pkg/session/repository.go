package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alcove-sh/alcove/internal/metrics"
	"github.com/alcove-sh/alcove/pkg/sessionfile"
)

// Record is a session file as seen by the repository. Content, Metadata and
// Stats are populated only when content was explicitly requested.
type Record struct {
	sessionfile.Descriptor

	SessionPath  string
	Size         int64
	ModifiedTime time.Time
	CreatedTime  time.Time
	HasContent   bool

	Content  string
	Metadata *Metadata
	Stats    *Stats
}

// Repository reads and writes session files in one directory. All
// filesystem work is synchronous; the optional cache only short-circuits
// re-enumeration between directory changes.
type Repository struct {
	dir     string
	logger  zerolog.Logger
	cache   *indexCache
	watcher *dirWatcher
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger overrides the package-default logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithCache enables the fsnotify-backed index cache. Without it every List
// re-reads the directory.
func WithCache() Option {
	return func(r *Repository) { r.cache = newIndexCache() }
}

// New creates a repository over dir, creating the directory if needed. An
// empty dir defaults to ~/.alcove/sessions.
func New(dir string, opts ...Option) (*Repository, error) {
	metrics.EnsureRegistered()

	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".alcove", "sessions")
	}

	// MkdirAll treats an existing directory as success.
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	r := &Repository{
		dir:    dir,
		logger: log.With().Str("component", "session").Str("dir", dir).Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.cache != nil {
		watcher, err := newDirWatcher(dir, r.cache.Invalidate, r.logger)
		if err != nil {
			r.logger.Warn().Err(err).Msg("Directory watcher unavailable, caching disabled")
			r.cache = nil
		} else {
			r.watcher = watcher
		}
	}

	return r, nil
}

// Dir returns the session directory.
func (r *Repository) Dir() string { return r.dir }

// Close stops the directory watcher, if one is running.
func (r *Repository) Close() {
	if r.watcher != nil {
		r.watcher.Stop()
	}
}

// resolve turns a bare filename into a path inside the repository;
// absolute paths pass through.
func (r *Repository) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.dir, path)
}

// enumerate reads the directory and returns all grammar-valid session files
// sorted newest-modified-first. Files deleted between the directory read
// and the stat are skipped.
func (r *Repository) enumerate() []Record {
	if r.cache != nil {
		if records, ok := r.cache.Get(); ok {
			return records
		}
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Failed to read sessions directory")
		return nil
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		desc := sessionfile.Parse(entry.Name())
		if desc == nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Deleted between ReadDir and stat.
			r.logger.Debug().Str("file", entry.Name()).Msg("Session vanished during enumeration")
			continue
		}
		records = append(records, Record{
			Descriptor:   *desc,
			SessionPath:  filepath.Join(r.dir, entry.Name()),
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
			CreatedTime:  createdTime(info),
			HasContent:   info.Size() > 0,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].ModifiedTime.Equal(records[j].ModifiedTime) {
			return records[i].Filename > records[j].Filename
		}
		return records[i].ModifiedTime.After(records[j].ModifiedTime)
	})

	metrics.RecordSessionList()
	metrics.SetSessionCount(len(records))

	if r.cache != nil {
		r.cache.Set(records)
	}
	return records
}
