package sessionfile

import (
	"regexp"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Ext is the canonical session file extension.
	Ext = ".md"

	// Suffix terminates every session filename.
	Suffix = "-session" + Ext

	// NoID marks legacy filenames that carry no short identifier.
	NoID = "no-id"

	shortIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	shortIDLength   = 12
)

// DateFormat is the date layout embedded in session filenames.
const DateFormat = "2006-01-02"

var namePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:-([a-z0-9]{8,}))?-session\.md$`)

// Descriptor identifies a session file by the parts of its filename.
type Descriptor struct {
	Filename string
	ShortID  string
	Date     string
	Time     time.Time
}

// Legacy reports whether the filename carried no short identifier.
func (d *Descriptor) Legacy() bool { return d.ShortID == NoID }

// Parse validates name against the session filename grammar and returns its
// descriptor, or nil for anything that does not match. The embedded date
// must be calendar-valid: 2026-02-31 is rejected even though it matches the
// textual pattern, because constructing the date rolls it into March.
func Parse(name string) *Descriptor {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return nil
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if int(t.Month()) != month || t.Day() != day {
		return nil
	}

	shortID := m[4]
	if shortID == "" {
		shortID = NoID
	}

	return &Descriptor{
		Filename: name,
		ShortID:  shortID,
		Date:     m[1] + "-" + m[2] + "-" + m[3],
		Time:     t,
	}
}

// Filename builds a grammar-valid session filename for the given day.
// An empty or sentinel shortID yields the legacy form.
func Filename(t time.Time, shortID string) string {
	date := t.Format(DateFormat)
	if shortID == "" || shortID == NoID {
		return date + Suffix
	}
	return date + "-" + shortID + Suffix
}

// NewShortID mints a lowercase alphanumeric identifier long enough to
// satisfy the filename grammar.
func NewShortID() string {
	id, _ := gonanoid.Generate(shortIDAlphabet, shortIDLength)
	return id
}
