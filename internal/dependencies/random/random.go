package random

import (
	"strings"

	"github.com/google/uuid"
)

// Random generates identifiers that tests can replace
type Random interface {
	// ID returns a new unique identifier
	ID() string
}

// UUID generates identifiers from random (v4) UUIDs
type UUID struct{}

// New creates a UUID generator
func New() UUID {
	return UUID{}
}

// ID returns a random UUID without dashes, short enough for a URL path
func (UUID) ID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
