package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID returns the canonical form of a record or user identifier.
// UUIDs collapse to their lowercase hyphenated form; anything else (such as
// a Mongo ObjectID hex string) is trimmed and lowercased.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return strings.ToLower(id)
}

// SameIdentity reports whether two identifiers name the same subject.
func SameIdentity(a, b string) bool {
	na, nb := NormalizeID(a), NormalizeID(b)
	return na != "" && na == nb
}
