package types

import (
	"time"

	"github.com/google/uuid"
)

// NewDocID generates a UUIDv7 document identifier.
// Time-ordered IDs ensure sequential inserts cluster in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewDocID() DocID {
	return DocID(uuid.Must(uuid.NewV7()).String())
}

// ParseDocID validates and converts a string to DocID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseDocID(s string) (DocID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return DocID(s), nil
}

// DocIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Enables time-based queries without database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func DocIDTime(id DocID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
