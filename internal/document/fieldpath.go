package document

import (
	"strconv"
	"strings"
)

/*
 * Field path resolution.
 *
 * A dotted path like "user.address.city" or "items.0.price" is split into
 * segments and resolved recursively through nested objects and arrays.
 * Purely numeric segments double as array indices; on objects they are
 * ordinary keys.
 *
 * Resolution is total: every failure mode (missing key, index out of bounds,
 * scalar mid-path, null sub-document) yields the absent result. The filter
 * engine turns absence into a false leaf, so documents of any shape can be
 * evaluated safely.
 */

// segment is one component of a dotted field path.
type segment struct {
	key     string
	index   int
	isIndex bool
}

// splitPath parses a dotted path into segments.
// A purely numeric component is also usable as an array index.
func splitPath(path string) []segment {
	parts := strings.Split(path, ".")
	segments := make([]segment, len(parts))
	for i, part := range parts {
		segments[i] = segment{key: part}
		if idx, err := strconv.Atoi(part); err == nil {
			segments[i].index = idx
			segments[i].isIndex = true
		}
	}
	return segments
}

// resolvePath traverses nested structures following path segments.
func resolvePath(path []segment, current any) (any, bool) {
	if len(path) == 0 {
		return current, true
	}

	seg := path[0]
	remaining := path[1:]

	switch v := current.(type) {
	case map[string]any:
		val, ok := v[seg.key]
		if !ok {
			return nil, false
		}
		return resolvePath(remaining, val)

	case []any:
		if !seg.isIndex {
			// Dotted keys cannot address array elements by name.
			return nil, false
		}
		if seg.index < 0 || seg.index >= len(v) {
			return nil, false
		}
		return resolvePath(remaining, v[seg.index])

	default:
		// Scalar or null value but path continues.
		return nil, false
	}
}
