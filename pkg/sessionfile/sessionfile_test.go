package sessionfile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidFilenames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		shortID  string
		date     string
	}{
		{"current form", "2026-02-28-abcd1234-session.md", "abcd1234", "2026-02-28"},
		{"legacy form", "2026-02-28-session.md", NoID, "2026-02-28"},
		{"long id", "2025-12-31-a1b2c3d4e5f6g7-session.md", "a1b2c3d4e5f6g7", "2025-12-31"},
		{"leap day", "2024-02-29-abcdefgh-session.md", "abcdefgh", "2024-02-29"},
		{"january first", "2026-01-01-session.md", NoID, "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := Parse(tt.filename)
			require.NotNil(t, desc)
			assert.Equal(t, tt.filename, desc.Filename)
			assert.Equal(t, tt.shortID, desc.ShortID)
			assert.Equal(t, tt.date, desc.Date)
			assert.Equal(t, tt.date, desc.Time.Format(DateFormat))
		})
	}
}

func TestParse_InvalidFilenames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"february 31st", "2026-02-31-abcd1234-session.md"},
		{"april 31st", "2026-04-31-session.md"},
		{"june 31st", "2026-06-31-abcd1234-session.md"},
		{"non-leap february 29th", "2026-02-29-abcd1234-session.md"},
		{"month zero", "2026-00-15-session.md"},
		{"month thirteen", "2026-13-01-session.md"},
		{"day zero", "2026-01-00-session.md"},
		{"day thirty-two", "2026-01-32-session.md"},
		{"short id too short", "2026-01-02-abc1234-session.md"},
		{"uppercase id", "2026-01-02-ABCD1234-session.md"},
		{"missing suffix", "2026-01-02-abcd1234.md"},
		{"wrong extension", "2026-01-02-abcd1234-session.txt"},
		{"no date", "abcd1234-session.md"},
		{"empty", ""},
		{"plain text", "notes.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Parse(tt.filename))
		})
	}
}

func TestParse_LeapYearBoundary(t *testing.T) {
	require.NotNil(t, Parse("2024-02-29-abcd1234-session.md"))
	assert.Nil(t, Parse("2025-02-29-abcd1234-session.md"))
}

func TestDescriptor_Legacy(t *testing.T) {
	assert.True(t, Parse("2026-01-02-session.md").Legacy())
	assert.False(t, Parse("2026-01-02-abcd1234-session.md").Legacy())
}

func TestFilename_RoundTrip(t *testing.T) {
	day := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.Local)

	name := Filename(day, "abcd1234efgh")
	desc := Parse(name)
	require.NotNil(t, desc)
	assert.Equal(t, "abcd1234efgh", desc.ShortID)
	assert.Equal(t, "2026-03-05", desc.Date)

	legacy := Filename(day, "")
	desc = Parse(legacy)
	require.NotNil(t, desc)
	assert.True(t, desc.Legacy())
}

func TestNewShortID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewShortID()
		assert.Len(t, id, shortIDLength)
		assert.False(t, seen[id], "short ids should not repeat")
		seen[id] = true

		desc := Parse(Filename(time.Now(), id))
		require.NotNil(t, desc)
		assert.Equal(t, id, desc.ShortID)
	}
}
