// Package types provides domain models shared across docsieve components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library. ID utilities in ids.go import uuid but are isolated for selective
// inclusion.
package types

// DocID represents a UUIDv7 document identifier.
// String alias enables type safety while maintaining JSON string serialization.
// UUIDv7 time-ordering ensures sequential inserts cluster in B-tree pages.
type DocID string

// IDField is the reserved document field holding the document identifier.
// Inserting a document without it assigns a fresh UUIDv7.
const IDField = "id"
