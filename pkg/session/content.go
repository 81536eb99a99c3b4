package session

import (
	"os"
	"path/filepath"
)

// Write replaces the file at path (bare filenames resolve inside the
// repository) with content. I/O failures are logged and reported as false.
func (r *Repository) Write(path, content string) bool {
	full := r.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0700); err != nil {
		r.logger.Warn().Str("path", full).Err(err).Msg("Failed to create session directory")
		return false
	}
	if err := os.WriteFile(full, []byte(content), 0600); err != nil {
		r.logger.Warn().Str("path", full).Err(err).Msg("Failed to write session")
		return false
	}
	return true
}

// Append adds content to the end of the file at path, creating it if
// missing.
func (r *Repository) Append(path, content string) bool {
	full := r.resolve(path)
	file, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		r.logger.Warn().Str("path", full).Err(err).Msg("Failed to open session for append")
		return false
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		r.logger.Warn().Str("path", full).Err(err).Msg("Failed to append to session")
		return false
	}
	return true
}

// Delete removes the file at path. Deleting a missing file is false, not an
// error.
func (r *Repository) Delete(path string) bool {
	full := r.resolve(path)
	if err := os.Remove(full); err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn().Str("path", full).Err(err).Msg("Failed to delete session")
		}
		return false
	}
	return true
}

// Exists reports whether path names a regular file. Directories do not
// count.
func (r *Repository) Exists(path string) bool {
	info, err := os.Stat(r.resolve(path))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// StatsFromPath reads the file at path and computes its stats, or nil when
// the read fails.
func (r *Repository) StatsFromPath(path string) *Stats {
	data, err := os.ReadFile(r.resolve(path))
	if err != nil {
		r.logger.Debug().Str("path", path).Err(err).Msg("Failed to read session for stats")
		return nil
	}
	return StatsFromContent(string(data))
}
