package model

import (
	"strings"

	"github.com/google/uuid"
)

// ID is a 32-character lowercase hex identifier, the form every item kind
// uses (a UUIDv7 with dashes stripped). It is the filename stem used on
// the remote: "<id>.md".
type ID string

// NewID generates a fresh time-ordered identifier.
func NewID() ID {
	u, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the global entropy source errors, which
		// does not happen on any supported platform; fall back rather than
		// panic in a library used by long-running daemons.
		u = uuid.New()
	}

	return ID(strings.ReplaceAll(u.String(), "-", ""))
}

// Empty reports whether the ID is unset.
func (id ID) Empty() bool {
	return id == ""
}

// String returns the raw 32-character hex form.
func (id ID) String() string {
	return string(id)
}

// Filename returns the remote object name for this id ("<id>.md").
func (id ID) Filename() string {
	return string(id) + ".md"
}
