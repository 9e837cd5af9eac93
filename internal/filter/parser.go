package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/solatis/docsieve/internal/types"
)

/*
 * Condition parser.
 *
 * Recursive descent over the raw condition spec, producing a predicate tree.
 * A spec node is a mapping, a list, or (illegal) any other value:
 *
 *   - mapping entries are either logical tokens ($and/$or/$not), which shape
 *     the tree, or field names, whose value must be a non-empty
 *     {<operator>: <value>} mapping;
 *   - multiple operators under one field are implicitly conjoined;
 *   - list elements are parsed independently and folded into a running root
 *     with implicit conjunction;
 *   - a single logical operator under a field key discards the field name and
 *     recurses into its value directly (field-scoped pass-through).
 *
 * Go maps carry no insertion order, so mapping keys are visited in sorted
 * order. Child ordering has no effect on the AND/OR result, only on
 * short-circuit cost; sorting keeps compiled trees deterministic.
 *
 * The parser never partially succeeds: the first failure anywhere in the
 * descent aborts the whole compilation.
 */

// parseNode compiles one spec node, folding the produced predicates into
// root. A nil root means no predicate has been assembled yet.
func parseNode(data any, root Node) (Node, error) {
	switch spec := data.(type) {
	case map[string]any:
		for _, key := range sortedKeys(spec) {
			node, err := parseEntry(key, spec[key])
			if err != nil {
				return nil, err
			}
			root = attach(root, node)
		}
		return root, nil

	case []any:
		for _, elem := range spec {
			node, err := parseNode(elem, nil)
			if err != nil {
				return nil, err
			}
			root = attach(root, node)
		}
		return root, nil

	default:
		return nil, fmt.Errorf("%w: expected mapping or list, got %T", types.ErrMalformedCondition, data)
	}
}

// parseEntry compiles a single mapping entry into a predicate node.
func parseEntry(key string, value any) (Node, error) {
	switch {
	case key == tokenAnd:
		return parseNode(value, &LogicalNode{Combinator: CombAnd})

	case key == tokenOr:
		return parseNode(value, &LogicalNode{Combinator: CombOr})

	case key == tokenNot:
		// Negation applies to the combined result of the nested clause.
		return parseNode(value, &LogicalNode{Combinator: CombAnd, Negate: true})

	case strings.HasPrefix(key, "$"):
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedOperator, key)

	default:
		return parseFieldEntry(key, value)
	}
}

// parseFieldEntry compiles a field condition: the value must be a non-empty
// mapping from operator token to operand.
func parseFieldEntry(field string, value any) (Node, error) {
	ops, ok := value.(map[string]any)
	if !ok || len(ops) == 0 {
		return nil, fmt.Errorf(
			"%w: field %q must map to a non-empty { <operator>: <value> } mapping",
			types.ErrMalformedCondition, field,
		)
	}

	if len(ops) == 1 {
		token := sortedKeys(ops)[0]
		operand := ops[token]

		// Field-scoped logical pass-through: when the single operator is
		// itself logical, the field name acts purely as a syntactic scope and
		// is not attached to the resulting node.
		if isLogicalToken(token) {
			return parseEntry(token, operand)
		}

		op, err := lookupOp(token)
		if err != nil {
			return nil, err
		}
		return newLeaf(field, op, operand)
	}

	// Multiple operators on one field are implicitly conjoined.
	group := newImplicitGroup()
	for _, token := range sortedKeys(ops) {
		child, err := parseFieldEntry(field, map[string]any{token: ops[token]})
		if err != nil {
			return nil, err
		}
		group.addChild(child)
	}
	return group, nil
}

// attach folds node into the running root. A bare Leaf root is first wrapped
// in an implicit AND group so the new node can join it as a sibling.
func attach(root, node Node) Node {
	if node == nil {
		return root
	}
	switch r := root.(type) {
	case nil:
		return node
	case *Leaf:
		group := newImplicitGroup()
		group.addChild(r)
		group.addChild(node)
		return group
	case *LogicalNode:
		r.addChild(node)
		return r
	default:
		return node
	}
}

// sortedKeys returns the mapping keys in sorted order for deterministic trees.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
