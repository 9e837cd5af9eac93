// Package filter implements the declarative filter-query engine for docsieve.
//
// Nested, JSON-like condition specs (e.g., `{"price": {"$gt": 10}}`) are
// compiled into an immutable predicate tree, which is then evaluated against
// document-like records to produce a boolean match decision.
package filter

import (
	"fmt"

	"github.com/solatis/docsieve/internal/types"
)

/*
 * Operator registry.
 *
 * Closed, static lookup from textual operator tokens ("$gt", "$in", ...) to
 * Op enum values, partitioned into comparison, regex, array, and membership
 * categories. Logical tokens ("$and", "$or", "$not") are handled separately
 * by the parser because they shape the tree rather than a single leaf.
 *
 * The tables are package-level and never written after init. Lookup of a
 * token outside the closed set fails with ErrUnsupportedOperator carrying
 * the offending token; the parser surfaces that error unchanged.
 */

// Op is the closed set of leaf operator kinds.
type Op int

const (
	OpInvalid Op = iota
	OpLt
	OpGt
	OpLte
	OpGte
	OpEq
	OpNeq
	OpExists
	OpRegex
	OpSize
	OpIn
	OpNin
)

// Combinator selects how a logical node folds its children.
type Combinator int

const (
	CombAnd Combinator = iota
	CombOr
)

// Logical tokens shape the predicate tree; they never appear in leaves.
const (
	tokenAnd = "$and"
	tokenOr  = "$or"
	tokenNot = "$not"
)

var comparisonOps = map[string]Op{
	"$lt":     OpLt,
	"$gt":     OpGt,
	"$lte":    OpLte,
	"$gte":    OpGte,
	"$eq":     OpEq,
	"$neq":    OpNeq,
	"$exists": OpExists,
}

var regexOps = map[string]Op{
	"$regex": OpRegex,
}

var arrayOps = map[string]Op{
	"$size": OpSize,
}

var membershipOps = map[string]Op{
	"$in":  OpIn,
	"$nin": OpNin,
}

// supportedOps is the union of all leaf operator categories.
var supportedOps = func() map[string]Op {
	m := make(map[string]Op)
	for _, table := range []map[string]Op{comparisonOps, regexOps, arrayOps, membershipOps} {
		for token, op := range table {
			m[token] = op
		}
	}
	return m
}()

// lookupOp translates a textual operator token into its Op kind.
// Unknown tokens fail with ErrUnsupportedOperator carrying the token.
func lookupOp(token string) (Op, error) {
	op, ok := supportedOps[token]
	if !ok {
		return OpInvalid, fmt.Errorf("%w: %s", types.ErrUnsupportedOperator, token)
	}
	return op, nil
}

// isLogicalToken reports whether token is $and, $or, or $not.
func isLogicalToken(token string) bool {
	return token == tokenAnd || token == tokenOr || token == tokenNot
}
