package filter

/*
 * Query façade.
 *
 * Compile builds the predicate tree exactly once; Matches evaluates it
 * against one document via the Resolver collaborator. The façade holds no
 * per-call state and performs no memoization, so a single Query may be
 * evaluated concurrently against many documents without synchronization.
 */

// Resolver resolves a dotted field path against one document.
// It returns the resolved value and true, or (nil, false) when the path does
// not exist. Resolution must never fail for missing fields.
type Resolver interface {
	Resolve(path string) (any, bool)
}

// Query owns a compiled predicate tree.
type Query struct {
	root Node
}

// Compile parses a condition spec into a reusable Query.
// The spec is a JSON-representable value: a mapping from string keys to
// mappings, lists, or scalar literals. An empty mapping compiles to the
// distinguished match-all query. Compilation fails atomically with
// ErrUnsupportedOperator or ErrMalformedCondition; no partial tree is
// ever returned.
func Compile(spec any) (*Query, error) {
	root, err := parseNode(spec, nil)
	if err != nil {
		return nil, err
	}
	return &Query{root: root}, nil
}

// Matches reports whether doc satisfies the compiled condition.
// A query compiled from an empty spec matches every document.
func (q *Query) Matches(doc Resolver) bool {
	if q.root == nil {
		return true
	}
	return evaluate(q.root, doc)
}
