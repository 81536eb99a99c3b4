package alias

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxNameLength is the longest accepted alias name.
const MaxNameLength = 128

var (
	// ErrNotFound is returned when an alias does not exist.
	ErrNotFound = errors.New("alias not found")

	// ErrExists is returned when a rename target is already taken.
	ErrExists = errors.New("alias already exists")

	// ErrPersist is returned when the underlying store could not be saved.
	ErrPersist = errors.New("failed to persist alias store")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Reserved words collide with the command surface, compared
// case-insensitively.
var reservedNames = map[string]struct{}{
	"list":   {},
	"help":   {},
	"remove": {},
	"delete": {},
	"create": {},
	"set":    {},
}

func validateName(name string) error {
	if name == "" {
		return errors.New("alias name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("alias name exceeds %d characters", MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return errors.New("alias name may only contain letters, digits, hyphens and underscores")
	}
	if _, ok := reservedNames[strings.ToLower(name)]; ok {
		return fmt.Errorf("%q is a reserved name", name)
	}
	return nil
}

func validateSessionPath(sessionPath string) error {
	if strings.TrimSpace(sessionPath) == "" {
		return errors.New("session path cannot be empty")
	}
	return nil
}
