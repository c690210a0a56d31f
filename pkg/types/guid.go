package types

import (
	"strings"

	"github.com/google/uuid"
)

// GUID is a 128-bit globally unique identifier used for class ids,
// interface ids, container formats and property format ids.
// Two GUIDs are equal when their bytes are equal.
type GUID uuid.UUID

// ParseGUID parses s in any form accepted by uuid.Parse, including the
// braced registry form "{4DB4F1DE-8B5D-4E8A-9B83-B5164A4F0206}".
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, err
	}
	return GUID(u), nil
}

// MustParseGUID is like ParseGUID but panics on malformed input.
// Intended for package-level identifier constants.
func MustParseGUID(s string) GUID {
	return GUID(uuid.MustParse(s))
}

// NewGUID returns a random (version 4) GUID.
func NewGUID() GUID {
	return GUID(uuid.New())
}

// String returns the registry form: upper case, braced.
func (g GUID) String() string {
	return "{" + strings.ToUpper(uuid.UUID(g).String()) + "}"
}

// IsZero reports whether g is the nil GUID.
func (g GUID) IsZero() bool {
	return uuid.UUID(g) == uuid.Nil
}
