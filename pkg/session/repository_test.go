package session

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcove-sh/alcove/pkg/sessionfile"
)

func setupTestRepo(t *testing.T, opts ...Option) *Repository {
	repo, err := New(t.TempDir(), opts...)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func writeSession(t *testing.T, repo *Repository, name, content string, modTime time.Time) {
	t.Helper()
	full := filepath.Join(repo.Dir(), name)
	require.NoError(t, os.WriteFile(full, []byte(content), 0600))
	if !modTime.IsZero() {
		require.NoError(t, os.Chtimes(full, modTime, modTime))
	}
}

func TestNew_DirectoryAlreadyExists(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir)
	require.NoError(t, err)
	defer first.Close()

	// A second first-touch of the same directory is success, not failure.
	second, err := New(dir)
	require.NoError(t, err)
	defer second.Close()
}

func TestRepository_ListSkipsForeignFiles(t *testing.T) {
	repo := setupTestRepo(t)

	writeSession(t, repo, "2026-03-01-abcd1234efgh-session.md", "a", time.Time{})
	writeSession(t, repo, "notes.txt", "ignored", time.Time{})
	writeSession(t, repo, "2026-02-31-abcd1234efgh-session.md", "bad date", time.Time{})
	require.NoError(t, os.Mkdir(filepath.Join(repo.Dir(), "subdir"), 0700))

	page := repo.List(ListOptions{})
	require.Len(t, page.Sessions, 1)
	assert.Equal(t, "2026-03-01-abcd1234efgh-session.md", page.Sessions[0].Filename)
	assert.Equal(t, 1, page.Total)
}

func TestRepository_ListSortsNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	writeSession(t, repo, "2026-03-01-aaaa1111bbbb-session.md", "old", base)
	writeSession(t, repo, "2026-03-02-cccc2222dddd-session.md", "new", base.Add(30*time.Minute))

	page := repo.List(ListOptions{})
	require.Len(t, page.Sessions, 2)
	assert.Equal(t, "2026-03-02-cccc2222dddd-session.md", page.Sessions[0].Filename)
	assert.Equal(t, "2026-03-01-aaaa1111bbbb-session.md", page.Sessions[1].Filename)
}

func TestRepository_ListPagination(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	names := []string{
		"2026-03-01-aaaa1111aaaa-session.md",
		"2026-03-02-bbbb2222bbbb-session.md",
		"2026-03-03-cccc3333cccc-session.md",
	}
	for i, name := range names {
		writeSession(t, repo, name, "content", base.Add(time.Duration(i)*time.Minute))
	}

	page := repo.List(ListOptions{Limit: 2})
	assert.Len(t, page.Sessions, 2)
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasMore)

	page = repo.List(ListOptions{Limit: 2, Offset: 2})
	assert.Len(t, page.Sessions, 1)
	assert.False(t, page.HasMore)

	page = repo.List(ListOptions{Limit: 2, Offset: 10})
	assert.Empty(t, page.Sessions)
	assert.Equal(t, 10, page.Offset)
}

func TestRepository_ListClampsBounds(t *testing.T) {
	repo := setupTestRepo(t)
	writeSession(t, repo, "2026-03-01-aaaa1111aaaa-session.md", "x", time.Time{})

	page := repo.List(ListOptions{Limit: -5, Offset: -3})
	assert.Equal(t, 1, page.Limit)
	assert.Zero(t, page.Offset)
	assert.Len(t, page.Sessions, 1)

	page = repo.List(ListOptions{})
	assert.Equal(t, DefaultLimit, page.Limit)
}

func TestCoerceOffsetAndLimit(t *testing.T) {
	assert.Zero(t, CoerceOffset(math.NaN()))
	assert.Zero(t, CoerceOffset(-4))
	assert.Equal(t, 2, CoerceOffset(2.9))

	assert.Equal(t, DefaultLimit, CoerceLimit(math.NaN()))
	assert.Equal(t, 1, CoerceLimit(-4))
	assert.Equal(t, 1, CoerceLimit(0.5))
	assert.Equal(t, 2, CoerceLimit(2.9))
}

func TestRepository_ListFilters(t *testing.T) {
	repo := setupTestRepo(t)

	writeSession(t, repo, "2026-03-01-aaaa1111aaaa-session.md", "x", time.Time{})
	writeSession(t, repo, "2026-03-02-bbbb2222bbbb-session.md", "x", time.Time{})
	writeSession(t, repo, "2026-03-02-session.md", "x", time.Time{})

	byDate := repo.List(ListOptions{Date: "2026-03-02"})
	assert.Equal(t, 2, byDate.Total)

	bySearch := repo.List(ListOptions{Search: "BBBB2222"})
	require.Equal(t, 1, bySearch.Total)
	assert.Equal(t, "2026-03-02-bbbb2222bbbb-session.md", bySearch.Sessions[0].Filename)

	both := repo.List(ListOptions{Date: "2026-03-02", Search: "aaaa"})
	assert.Zero(t, both.Total)
}

func TestRepository_ListRecordFields(t *testing.T) {
	repo := setupTestRepo(t)

	writeSession(t, repo, "2026-03-01-aaaa1111aaaa-session.md", "hello", time.Time{})
	writeSession(t, repo, "2026-03-02-bbbb2222bbbb-session.md", "", time.Time{})

	page := repo.List(ListOptions{})
	require.Len(t, page.Sessions, 2)
	for _, rec := range page.Sessions {
		assert.False(t, rec.ModifiedTime.IsZero())
		assert.False(t, rec.CreatedTime.IsZero())
		assert.Empty(t, rec.Content)
		assert.Nil(t, rec.Metadata)
	}

	withContent := page.Sessions[1]
	assert.Equal(t, int64(5), withContent.Size)
	assert.True(t, withContent.HasContent)
	assert.False(t, page.Sessions[0].HasContent)
}

func TestRepository_FindByID(t *testing.T) {
	repo := setupTestRepo(t)

	writeSession(t, repo, "2026-03-01-abcd1234efgh-session.md", "# Found\n", time.Time{})
	writeSession(t, repo, "2026-03-02-session.md", "legacy", time.Time{})

	t.Run("short id prefix", func(t *testing.T) {
		rec := repo.FindByID("abcd", false)
		require.NotNil(t, rec)
		assert.Equal(t, "2026-03-01-abcd1234efgh-session.md", rec.Filename)
	})

	t.Run("exact filename", func(t *testing.T) {
		rec := repo.FindByID("2026-03-01-abcd1234efgh-session.md", false)
		require.NotNil(t, rec)
	})

	t.Run("filename without extension", func(t *testing.T) {
		rec := repo.FindByID("2026-03-01-abcd1234efgh-session", false)
		require.NotNil(t, rec)
		assert.Equal(t, "2026-03-01-abcd1234efgh-session.md", rec.Filename)
	})

	t.Run("legacy by date", func(t *testing.T) {
		rec := repo.FindByID("2026-03-02", false)
		require.NotNil(t, rec)
		assert.True(t, rec.Legacy())
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, repo.FindByID("zzzz", false))
		assert.Nil(t, repo.FindByID("", false))
	})
}

func TestRepository_FindByIDWithContent(t *testing.T) {
	repo := setupTestRepo(t)

	content := "# Review\n\n## Completed\n- [x] ship it\n"
	writeSession(t, repo, "2026-03-01-abcd1234efgh-session.md", content, time.Time{})

	rec := repo.FindByID("abcd1234", true)
	require.NotNil(t, rec)
	assert.Equal(t, content, rec.Content)
	require.NotNil(t, rec.Metadata)
	assert.Equal(t, "Review", rec.Metadata.Title)
	require.NotNil(t, rec.Stats)
	assert.Equal(t, 1, rec.Stats.CompletedItems)
}

func TestRepository_WriteAppendDeleteExists(t *testing.T) {
	repo := setupTestRepo(t)
	name := "2026-03-01-abcd1234efgh-session.md"

	assert.False(t, repo.Exists(name))
	assert.True(t, repo.Write(name, "first\n"))
	assert.True(t, repo.Exists(name))
	assert.True(t, repo.Append(name, "second\n"))

	rec := repo.FindByID(name, true)
	require.NotNil(t, rec)
	assert.Equal(t, "first\nsecond\n", rec.Content)

	assert.True(t, repo.Delete(name))
	assert.False(t, repo.Exists(name))
	assert.False(t, repo.Delete(name))
}

func TestRepository_ExistsFalseForDirectory(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, os.Mkdir(filepath.Join(repo.Dir(), "subdir"), 0700))
	assert.False(t, repo.Exists("subdir"))
}

func TestRepository_Create(t *testing.T) {
	repo := setupTestRepo(t)

	rec := repo.Create("# Fresh\n")
	require.NotNil(t, rec)
	assert.NotEqual(t, sessionfile.NoID, rec.ShortID)
	assert.Equal(t, time.Now().Format(sessionfile.DateFormat), rec.Date)

	assert.True(t, repo.Exists(rec.Filename))
}

func TestRepository_CacheInvalidation(t *testing.T) {
	repo := setupTestRepo(t, WithCache())

	writeSession(t, repo, "2026-03-01-aaaa1111aaaa-session.md", "x", time.Time{})

	// Poll: the watcher delivers the create event asynchronously.
	require.Eventually(t, func() bool {
		return repo.List(ListOptions{}).Total == 1
	}, 2*time.Second, 20*time.Millisecond)

	writeSession(t, repo, "2026-03-02-bbbb2222bbbb-session.md", "y", time.Time{})
	require.Eventually(t, func() bool {
		return repo.List(ListOptions{}).Total == 2
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(repo.Dir(), "2026-03-01-aaaa1111aaaa-session.md")))
	require.Eventually(t, func() bool {
		return repo.List(ListOptions{}).Total == 1
	}, 2*time.Second, 20*time.Millisecond)
}
