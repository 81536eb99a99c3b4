package atomicfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Diagnostic receives the stage ("read", "parse", "shape", "marshal",
// "backup", "write", "install", "restore") and cause of a failure that the
// store swallowed. Callers that only care about success can ignore it; tests
// and operators get the reason.
type Diagnostic func(stage string, err error)

// Store persists one JSON document at a fixed path. Load never fails: a
// missing, unreadable or corrupt file yields the default document. Save
// follows a backup + temp-file + rename protocol so the target file is never
// observed half-written.
//
// The store assumes at most one writer process per path. Two processes
// saving concurrently can interleave their backup/restore sequences; that
// is a documented limitation, not something the store detects.
type Store[T any] struct {
	path     string
	defaults func() *T
	validate func(raw []byte) error
	backfill func(*T)
	diag     Diagnostic
	logger   zerolog.Logger
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithValidate adds a shape check run against the raw document during Load.
// A validation failure is treated as corruption: Load returns the default
// document instead of the on-disk one.
func WithValidate[T any](fn func(raw []byte) error) Option[T] {
	return func(s *Store[T]) { s.validate = fn }
}

// WithBackfill runs after a successful parse to fill in optional fields the
// on-disk document may be missing. The file itself is untouched until the
// next Save.
func WithBackfill[T any](fn func(*T)) Option[T] {
	return func(s *Store[T]) { s.backfill = fn }
}

// WithDiagnostic registers a callback for swallowed failures.
func WithDiagnostic[T any](fn Diagnostic) Option[T] {
	return func(s *Store[T]) { s.diag = fn }
}

// WithLogger overrides the package-default logger.
func WithLogger[T any](logger zerolog.Logger) Option[T] {
	return func(s *Store[T]) { s.logger = logger }
}

// New creates a store for path. defaults must return a fresh document and is
// invoked whenever the on-disk state is missing or unusable.
func New[T any](path string, defaults func() *T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		path:     path,
		defaults: defaults,
		logger:   log.With().Str("component", "atomicfile").Str("path", path).Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the target file path.
func (s *Store[T]) Path() string { return s.path }

// BackupPath returns the sibling path used for the pre-save backup copy.
func (s *Store[T]) BackupPath() string { return s.path + ".backup" }

func (s *Store[T]) report(stage string, err error) {
	s.logger.Warn().Str("stage", stage).Err(err).Msg("Store operation degraded")
	if s.diag != nil {
		s.diag(stage, err)
	}
}

// Load reads the document from disk. It never returns an error: missing
// files, unreadable files, parse failures and shape violations all resolve
// to the default document, with the reason reported on the diagnostic
// channel.
func (s *Store[T]) Load() *T {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.report("read", err)
		}
		return s.defaults()
	}

	if s.validate != nil {
		if err := s.validate(raw); err != nil {
			s.report("shape", err)
			return s.defaults()
		}
	}

	doc := s.defaults()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.report("parse", err)
		return s.defaults()
	}

	if s.backfill != nil {
		s.backfill(doc)
	}
	return doc
}

// Save writes the document durably. It returns false instead of an error;
// on any failure after a backup was taken, the backup is copied back over
// the target so the previous state survives. The target is never left
// truncated or half-written.
func (s *Store[T]) Save(doc *T) bool {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.report("marshal", err)
		return false
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.report("write", fmt.Errorf("create store directory: %w", err))
		return false
	}

	backedUp := false
	if _, err := os.Stat(s.path); err == nil {
		if err := copyFile(s.path, s.BackupPath()); err != nil {
			s.report("backup", err)
			return false
		}
		backedUp = true
	}

	tempPath, err := s.writeTemp(data)
	if err != nil {
		s.report("write", err)
		s.rollback(backedUp)
		return false
	}

	if err := s.install(tempPath); err != nil {
		s.report("install", err)
		_ = os.Remove(tempPath)
		s.rollback(backedUp)
		return false
	}

	if backedUp {
		_ = os.Remove(s.BackupPath())
	}
	return true
}

// writeTemp writes data to a sibling temp file, synced and closed, and
// returns its path.
func (s *Store[T]) writeTemp(data []byte) (string, error) {
	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)

	tempFile, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Chmod(0600); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tempPath, nil
}

// install moves the temp file into place. Rename over an existing file is
// atomic on POSIX systems. Windows refuses that rename, so only there is
// the target removed first.
func (s *Store[T]) install(tempPath string) error {
	if err := os.Rename(tempPath, s.path); err != nil {
		if runtime.GOOS != "windows" {
			return fmt.Errorf("rename temp file: %w", err)
		}
		if removeErr := os.Remove(s.path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("remove destination before rename: %w", removeErr)
		}
		if renameErr := os.Rename(tempPath, s.path); renameErr != nil {
			return fmt.Errorf("rename temp file after remove: %w", renameErr)
		}
	}

	if dirHandle, err := os.Open(filepath.Dir(s.path)); err == nil {
		_ = dirHandle.Sync()
		_ = dirHandle.Close()
	}
	return nil
}

// rollback restores the backup over the target after a failed save. A
// failed restore is reported but the save is already a failure either way.
func (s *Store[T]) rollback(backedUp bool) {
	if !backedUp {
		return
	}
	if err := copyFile(s.BackupPath(), s.path); err != nil {
		s.report("restore", err)
		return
	}
	s.logger.Info().Msg("Restored store from backup after failed save")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return fmt.Errorf("sync %s: %w", dst, err)
	}
	return out.Close()
}
