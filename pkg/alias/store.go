package alias

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alcove-sh/alcove/internal/metrics"
	"github.com/alcove-sh/alcove/pkg/atomicfile"
)

// CurrentVersion is written into every saved store document.
const CurrentVersion = "1.0.0"

// Timestamp unmarshals leniently: a missing or malformed value becomes the
// zero time instead of failing the whole document, so one bad record cannot
// take the store down.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON never returns an error; unparsable input yields zero.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	t.Time = parsed
	return nil
}

// Record is the stored value for one alias.
type Record struct {
	SessionPath string    `json:"sessionPath"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
	Title       *string   `json:"title"`
}

// sortKey orders records: updatedAt wins, createdAt is the fallback, and
// records with neither sort to the end.
func (r *Record) sortKey() time.Time {
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt.Time
	}
	return r.CreatedAt.Time
}

type document struct {
	Version  string            `json:"version"`
	Aliases  map[string]Record `json:"aliases"`
	Metadata metadata          `json:"metadata"`
}

type metadata struct {
	TotalCount  int       `json:"totalCount"`
	LastUpdated Timestamp `json:"lastUpdated"`
}

func defaultDocument() *document {
	return &document{
		Version: CurrentVersion,
		Aliases: map[string]Record{},
	}
}

func backfillDocument(doc *document) {
	if doc.Version == "" {
		doc.Version = CurrentVersion
	}
	if doc.Aliases == nil {
		doc.Aliases = map[string]Record{}
	}
}

// Store is the alias CRUD layer over one atomicfile store. All operations
// load, mutate and save the full document; reads between operations are
// snapshot reads with no cross-process serialization.
type Store struct {
	file   *atomicfile.Store[document]
	logger zerolog.Logger
	diag   atomicfile.Diagnostic
}

// Option configures a Store.
type Option func(*Store)

// WithLogger overrides the package-default logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithDiagnostic forwards swallowed persistence failures to fn.
func WithDiagnostic(fn atomicfile.Diagnostic) Option {
	return func(s *Store) { s.diag = fn }
}

// New creates an alias store backed by the JSON document at path.
func New(path string, opts ...Option) *Store {
	metrics.EnsureRegistered()

	s := &Store{
		logger: log.With().Str("component", "alias").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.file = atomicfile.New(path, defaultDocument,
		atomicfile.WithValidate[document](validateShape),
		atomicfile.WithBackfill[document](backfillDocument),
		atomicfile.WithLogger[document](s.logger),
		atomicfile.WithDiagnostic[document](func(stage string, err error) {
			if stage == "write" || stage == "install" {
				metrics.RecordStoreRestore()
			}
			if s.diag != nil {
				s.diag(stage, err)
			}
		}),
	)
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.file.Path() }

// persist recomputes the derived metadata block and saves the document.
func (s *Store) persist(doc *document) bool {
	doc.Version = CurrentVersion
	doc.Metadata = metadata{
		TotalCount:  len(doc.Aliases),
		LastUpdated: Timestamp{time.Now()},
	}
	ok := s.file.Save(doc)
	metrics.RecordStoreSave(ok)
	if ok {
		metrics.SetAliasCount(len(doc.Aliases))
	}
	return ok
}

func titleOrNil(title string) *string {
	if title == "" {
		return nil
	}
	return &title
}

// Resolve returns the record for name, or nil. A name that fails the
// charset check resolves to nil rather than an error; nothing malformed
// can be stored, so nothing malformed can match.
func (s *Store) Resolve(name string) *Record {
	if name == "" || len(name) > MaxNameLength || !namePattern.MatchString(name) {
		return nil
	}
	doc := s.file.Load()
	rec, ok := doc.Aliases[name]
	if !ok {
		return nil
	}
	return &rec
}

// SetResult describes a completed Set.
type SetResult struct {
	IsNew       bool
	Alias       string
	SessionPath string
	Title       *string
}

// Set creates or updates an alias. Updates preserve the original createdAt.
// An empty title clears the stored title.
func (s *Store) Set(name, sessionPath, title string) (*SetResult, error) {
	res, err := s.set(name, sessionPath, title)
	metrics.RecordAliasOp("set", err == nil)
	return res, err
}

func (s *Store) set(name, sessionPath, title string) (*SetResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSessionPath(sessionPath); err != nil {
		return nil, err
	}

	doc := s.file.Load()
	now := Timestamp{time.Now()}

	existing, exists := doc.Aliases[name]
	rec := Record{
		SessionPath: strings.TrimSpace(sessionPath),
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       titleOrNil(title),
	}
	if exists {
		rec.CreatedAt = existing.CreatedAt
	}
	doc.Aliases[name] = rec

	if !s.persist(doc) {
		return nil, ErrPersist
	}

	s.logger.Debug().
		Str("alias", name).
		Str("session_path", rec.SessionPath).
		Bool("is_new", !exists).
		Msg("Alias set")

	return &SetResult{
		IsNew:       !exists,
		Alias:       name,
		SessionPath: rec.SessionPath,
		Title:       rec.Title,
	}, nil
}

// Delete removes an alias and returns the session path it pointed at.
func (s *Store) Delete(name string) (string, error) {
	path, err := s.delete(name)
	metrics.RecordAliasOp("delete", err == nil)
	return path, err
}

func (s *Store) delete(name string) (string, error) {
	doc := s.file.Load()

	rec, ok := doc.Aliases[name]
	if !ok {
		return "", fmt.Errorf("alias %q: %w", name, ErrNotFound)
	}

	delete(doc.Aliases, name)
	if !s.persist(doc) {
		return "", ErrPersist
	}

	s.logger.Debug().Str("alias", name).Msg("Alias deleted")
	return rec.SessionPath, nil
}

// RenameResult describes a completed Rename.
type RenameResult struct {
	OldAlias    string
	NewAlias    string
	SessionPath string
}

// Rename moves an alias to a new name, preserving createdAt and refreshing
// updatedAt. The mutation is destructive-then-persist: if the save fails the
// in-memory change is rolled back and a best-effort re-save of the original
// document is attempted, and the returned error notes the rollback.
func (s *Store) Rename(oldName, newName string) (*RenameResult, error) {
	res, err := s.rename(oldName, newName)
	metrics.RecordAliasOp("rename", err == nil)
	return res, err
}

func (s *Store) rename(oldName, newName string) (*RenameResult, error) {
	if err := validateName(newName); err != nil {
		return nil, err
	}

	doc := s.file.Load()

	old, ok := doc.Aliases[oldName]
	if !ok {
		return nil, fmt.Errorf("alias %q: %w", oldName, ErrNotFound)
	}
	if _, taken := doc.Aliases[newName]; taken {
		return nil, fmt.Errorf("alias %q: %w", newName, ErrExists)
	}

	delete(doc.Aliases, oldName)
	doc.Aliases[newName] = Record{
		SessionPath: old.SessionPath,
		CreatedAt:   old.CreatedAt,
		UpdatedAt:   Timestamp{time.Now()},
		Title:       old.Title,
	}

	if !s.persist(doc) {
		delete(doc.Aliases, newName)
		doc.Aliases[oldName] = old
		s.persist(doc)

		s.logger.Warn().
			Str("old", oldName).
			Str("new", newName).
			Msg("Rename persist failed, rolled back")
		return nil, fmt.Errorf("rename %q to %q rolled back: %w", oldName, newName, ErrPersist)
	}

	s.logger.Debug().Str("old", oldName).Str("new", newName).Msg("Alias renamed")
	return &RenameResult{
		OldAlias:    oldName,
		NewAlias:    newName,
		SessionPath: old.SessionPath,
	}, nil
}

// UpdateTitle sets or, with an empty title, clears an alias title. The
// stored title is returned.
func (s *Store) UpdateTitle(name, title string) (*string, error) {
	stored, err := s.updateTitle(name, title)
	metrics.RecordAliasOp("update_title", err == nil)
	return stored, err
}

func (s *Store) updateTitle(name, title string) (*string, error) {
	doc := s.file.Load()

	rec, ok := doc.Aliases[name]
	if !ok {
		return nil, fmt.Errorf("alias %q: %w", name, ErrNotFound)
	}

	rec.Title = titleOrNil(title)
	rec.UpdatedAt = Timestamp{time.Now()}
	doc.Aliases[name] = rec

	if !s.persist(doc) {
		return nil, ErrPersist
	}
	return rec.Title, nil
}

// ForSession returns every alias whose session path exactly equals
// sessionPath. No prefix or substring matching.
func (s *Store) ForSession(sessionPath string) []Entry {
	doc := s.file.Load()

	var entries []Entry
	for name, rec := range doc.Aliases {
		if rec.SessionPath == sessionPath {
			entries = append(entries, Entry{Name: name, Record: rec})
		}
	}
	sortEntries(entries)
	return entries
}
