package types

import "errors"

// Sentinel errors for docsieve operations.
var (
	// ErrUnsupportedOperator indicates a $-prefixed filter key outside the
	// closed operator set. Raised at compile time only.
	ErrUnsupportedOperator = errors.New("unsupported filter operator")

	// ErrMalformedCondition indicates a filter node that does not follow the
	// { <field>: { <operator>: <value> } } grammar. Raised at compile time only.
	ErrMalformedCondition = errors.New("malformed filter condition")

	// ErrIndexOutOfRange indicates a positional collection access outside bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyDocument indicates a JSONL line or insert payload with no content.
	ErrEmptyDocument = errors.New("empty document")
)
