package session

import "strings"

// Metadata is the structure loosely extracted from session content. Every
// field is optional in the content; missing sections yield zero values.
type Metadata struct {
	Title       string
	Date        string
	Started     string
	LastUpdated string
	Completed   []string
	InProgress  []string
	Notes       string
	Context     string
}

// Stats summarizes session content.
type Stats struct {
	TotalItems      int
	CompletedItems  int
	InProgressItems int
	LineCount       int
	HasNotes        bool
	HasContext      bool
}

// Section markers. The two checklist sections are told apart only by these
// literal headings.
const (
	sectionCompleted  = "## Completed"
	sectionInProgress = "## In Progress"
	sectionNotes      = "## Notes"
	sectionContext    = "## Context"
)

func keyValue(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
}

func checklistItem(line string) (string, bool) {
	if !strings.HasPrefix(line, "- ") {
		return "", false
	}
	item := strings.TrimPrefix(line, "- ")
	for _, marker := range []string{"[x] ", "[X] ", "[ ] "} {
		if strings.HasPrefix(item, marker) {
			item = strings.TrimPrefix(item, marker)
			break
		}
	}
	item = strings.TrimSpace(item)
	return item, item != ""
}

// ParseMetadata extracts the recognized markers from free-form session
// content: the first top-level heading as title, `**Key:** value` lines,
// the two checklist sections, and free-text Notes and Context blocks.
// Nothing is required; unrecognized content is ignored.
func ParseMetadata(content string) *Metadata {
	meta := &Metadata{
		Completed:  []string{},
		InProgress: []string{},
	}

	var notes, context []string
	section := ""

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			if meta.Title == "" {
				meta.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			}
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			section = trimmed
			continue
		}

		if v, ok := keyValue(trimmed, "**Date:**"); ok {
			meta.Date = v
			continue
		}
		if v, ok := keyValue(trimmed, "**Started:**"); ok {
			meta.Started = v
			continue
		}
		if v, ok := keyValue(trimmed, "**Last Updated:**"); ok {
			meta.LastUpdated = v
			continue
		}

		switch section {
		case sectionCompleted:
			if item, ok := checklistItem(trimmed); ok {
				meta.Completed = append(meta.Completed, item)
			}
		case sectionInProgress:
			if item, ok := checklistItem(trimmed); ok {
				meta.InProgress = append(meta.InProgress, item)
			}
		case sectionNotes:
			notes = append(notes, line)
		case sectionContext:
			context = append(context, line)
		}
	}

	meta.Notes = strings.TrimSpace(strings.Join(notes, "\n"))
	meta.Context = strings.TrimSpace(strings.Join(context, "\n"))
	return meta
}

// StatsFromContent computes stats for already-loaded content.
func StatsFromContent(content string) *Stats {
	meta := ParseMetadata(content)

	lineCount := 0
	if content != "" {
		lineCount = strings.Count(content, "\n") + 1
	}

	return &Stats{
		TotalItems:      len(meta.Completed) + len(meta.InProgress),
		CompletedItems:  len(meta.Completed),
		InProgressItems: len(meta.InProgress),
		LineCount:       lineCount,
		HasNotes:        meta.Notes != "",
		HasContext:      meta.Context != "",
	}
}
