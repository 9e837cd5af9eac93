package filter

import (
	"reflect"
	"strings"
)

/*
 * Predicate tree evaluation.
 *
 * evaluate walks the compiled tree against one document with short-circuit
 * boolean composition: AND stops at the first false child (empty list is
 * true), OR stops at the first true child (empty list is false), and Negate
 * inverts the folded result.
 *
 * Leaf evaluation never fails. Missing fields, type mismatches, and absent
 * sub-documents all degrade to a false leaf result; the single exception is
 * $exists, which tests absence itself. A compiled query stays safe to reuse
 * against heterogeneous, schema-less documents.
 *
 * Numeric comparison handles float64/int/int64 mixing for JSON compatibility.
 */

// evaluate applies node to doc, dispatching on node kind.
func evaluate(node Node, doc Resolver) bool {
	switch n := node.(type) {
	case *LogicalNode:
		return evaluateLogical(n, doc)
	case *Leaf:
		return evaluateLeaf(n, doc)
	default:
		return false
	}
}

// evaluateLogical folds children left-to-right with short-circuiting,
// then applies negation to the combined result.
func evaluateLogical(n *LogicalNode, doc Resolver) bool {
	var result bool
	switch n.Combinator {
	case CombOr:
		result = false
		for _, child := range n.Children {
			if evaluate(child, doc) {
				result = true
				break
			}
		}
	default:
		// CombAnd: identity of conjunction, an empty child list is true.
		result = true
		for _, child := range n.Children {
			if !evaluate(child, doc) {
				result = false
				break
			}
		}
	}

	if n.Negate {
		return !result
	}
	return result
}

// evaluateLeaf resolves the leaf's field path and applies its operator.
func evaluateLeaf(leaf *Leaf, doc Resolver) bool {
	value, found := doc.Resolve(leaf.Field)

	switch leaf.Op {
	case OpLt:
		cmp, ok := orderValues(value, leaf.Operand)
		return found && ok && cmp < 0
	case OpGt:
		cmp, ok := orderValues(value, leaf.Operand)
		return found && ok && cmp > 0
	case OpLte:
		cmp, ok := orderValues(value, leaf.Operand)
		return found && ok && cmp <= 0
	case OpGte:
		cmp, ok := orderValues(value, leaf.Operand)
		return found && ok && cmp >= 0

	case OpEq:
		return equalResolved(value, found, leaf.Operand)
	case OpNeq:
		return !equalResolved(value, found, leaf.Operand)

	case OpExists:
		want, ok := leaf.Operand.(bool)
		if !ok {
			return false
		}
		return (found && value != nil) == want

	case OpRegex:
		s, ok := value.(string)
		return found && ok && leaf.pattern.MatchString(s)

	case OpSize:
		arr, ok := value.([]any)
		want, okNum := toFloat64(leaf.Operand)
		return found && ok && okNum && float64(len(arr)) == want

	case OpIn:
		return found && isMember(value, leaf.Operand)
	case OpNin:
		// An absent field is never a member of the operand collection.
		return !found || !isMember(value, leaf.Operand)

	default:
		return false
	}
}

// equalResolved performs structural equality between a resolved value and an
// operand. An absent field compares equal only to an explicit null operand.
func equalResolved(value any, found bool, operand any) bool {
	if !found {
		return operand == nil
	}
	if na, nb, ok := asNumbers(value, operand); ok {
		return na == nb
	}
	return reflect.DeepEqual(normalizeValue(value), normalizeValue(operand))
}

// isMember tests membership of value in the operand collection using the
// same structural equality as $eq.
func isMember(value, operand any) bool {
	arr, ok := operand.([]any)
	if !ok {
		return false
	}
	for _, elem := range arr {
		if equalResolved(value, true, elem) {
			return true
		}
	}
	return false
}

// orderValues performs three-way ordinal comparison.
// Numbers compare numerically, strings lexicographically; anything else is
// incomparable and reported via the second return.
func orderValues(a, b any) (int, bool) {
	if na, nb, ok := asNumbers(a, b); ok {
		switch {
		case na < nb:
			return -1, true
		case na > nb:
			return 1, true
		default:
			return 0, true
		}
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

// asNumbers attempts to convert both values to float64 for numeric comparison.
func asNumbers(a, b any) (float64, float64, bool) {
	na, okA := toFloat64(a)
	nb, okB := toFloat64(b)
	return na, nb, okA && okB
}

// toFloat64 converts value to float64 if it's a numeric type.
// Handles float64 from JSON unmarshaling plus int variants from in-process specs.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// normalizeValue rewrites numeric types to float64 through nested structures
// so structural equality is insensitive to how a number entered the system
// (JSON decoding vs in-process literal).
func normalizeValue(v any) any {
	switch val := v.(type) {
	case float32, int, int64:
		f, _ := toFloat64(val)
		return f
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalizeValue(elem)
		}
		return out
	default:
		return v
	}
}
