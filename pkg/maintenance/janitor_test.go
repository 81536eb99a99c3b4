package maintenance

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcove-sh/alcove/pkg/alias"
	"github.com/alcove-sh/alcove/pkg/session"
)

func setupTestJanitor(t *testing.T) (*Janitor, *alias.Store, *session.Repository) {
	dir := t.TempDir()
	aliases := alias.New(filepath.Join(dir, "aliases.json"))
	sessions, err := session.New(filepath.Join(dir, "sessions"))
	require.NoError(t, err)
	t.Cleanup(sessions.Close)

	janitor, err := NewJanitor(aliases, sessions, "")
	require.NoError(t, err)
	return janitor, aliases, sessions
}

func TestNewJanitor_InvalidSchedule(t *testing.T) {
	_, err := NewJanitor(nil, nil, "not a schedule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid janitor schedule")
}

func TestJanitor_RunNow(t *testing.T) {
	janitor, aliases, sessions := setupTestJanitor(t)

	require.True(t, sessions.Write("2026-03-01-abcd1234efgh-session.md", "kept"))
	_, err := aliases.Set("keep", "2026-03-01-abcd1234efgh-session.md", "")
	require.NoError(t, err)
	_, err = aliases.Set("gone", "2026-01-01-deadbeef0000-session.md", "")
	require.NoError(t, err)

	result, err := janitor.RunNow()
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalChecked)
	assert.Equal(t, []string{"gone"}, result.RemovedAliases)

	assert.NotNil(t, aliases.Resolve("keep"))
	assert.Nil(t, aliases.Resolve("gone"))
}

func TestJanitor_StartStop(t *testing.T) {
	janitor, _, _ := setupTestJanitor(t)

	require.NoError(t, janitor.Start())
	assert.True(t, janitor.IsRunning())
	assert.Error(t, janitor.Start())

	require.NoError(t, janitor.Stop())
	assert.False(t, janitor.IsRunning())
	assert.Error(t, janitor.Stop())

	// A stopped janitor can be started again.
	require.NoError(t, janitor.Start())
	require.NoError(t, janitor.Stop())
}

func TestJanitor_Snapshot(t *testing.T) {
	janitor, aliases, _ := setupTestJanitor(t)

	_, err := aliases.Set("orphan", "nowhere.md", "")
	require.NoError(t, err)

	stats := janitor.Snapshot()
	assert.Equal(t, DefaultSchedule, stats.Schedule)
	assert.False(t, stats.Running)
	assert.False(t, stats.NextRun.IsZero())
	assert.Equal(t, 1, stats.TotalAliases)
	assert.Equal(t, []string{"orphan"}, stats.Orphans)
}
