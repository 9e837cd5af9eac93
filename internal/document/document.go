// Package document provides the schema-less document representation consumed
// by the filter engine and the collection host.
//
// A Document is a decoded JSON object. Field resolution supports dotted paths
// into nested sub-documents and arrays; resolution of a missing path yields
// an absent result, never an error.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/solatis/docsieve/internal/types"
)

// Document is one schema-less record. Values follow encoding/json decoding
// conventions: map[string]any, []any, string, float64, bool, nil.
type Document map[string]any

// FromJSON decodes a JSON object into a Document.
// Non-object payloads (arrays, scalars) are rejected; documents are mappings.
func FromJSON(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, types.ErrEmptyDocument
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}
	if doc == nil {
		return nil, types.ErrEmptyDocument
	}
	return doc, nil
}

// JSON encodes the document back to its JSON object form.
func (d Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// ID returns the document identifier, or empty when unset.
func (d Document) ID() types.DocID {
	if s, ok := d[types.IDField].(string); ok {
		return types.DocID(s)
	}
	return ""
}

// Resolve traverses the document along a dotted field path.
// It returns (nil, false) when the path does not exist; it never fails.
// Implements the Resolver collaborator consumed by the filter engine.
func (d Document) Resolve(path string) (any, bool) {
	return resolvePath(splitPath(path), map[string]any(d))
}
