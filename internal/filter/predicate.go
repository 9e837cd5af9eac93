package filter

import (
	"fmt"
	"regexp"

	"github.com/solatis/docsieve/internal/types"
)

/*
 * Predicate tree data model.
 *
 * A compiled filter is a tagged union of two node kinds:
 *   - LogicalNode: AND/OR over child predicates, with optional result negation
 *   - Leaf: one field tested against one operator and operand
 *
 * Trees are immutable after compilation; child lists are only appended to
 * during the recursive descent in parser.go. Evaluation never mutates a node,
 * which makes a compiled tree safe for concurrent use.
 *
 * Regex operands are compiled here, at construction time. This keeps the
 * evaluation path error-free: a leaf can only hold a valid *regexp.Regexp.
 */

// Node is the common interface of predicate tree nodes.
type Node interface {
	isNode()
}

// LogicalNode combines child predicates via AND/OR.
// Negate applies to the combined result of the node, not to each child.
type LogicalNode struct {
	Combinator Combinator
	Negate     bool
	Children   []Node
}

// Leaf is a terminal predicate testing one field against one operand.
type Leaf struct {
	Field   string
	Op      Op
	Operand any

	// pattern is the compiled form of Operand for OpRegex leaves.
	pattern *regexp.Regexp
}

func (*LogicalNode) isNode() {}
func (*Leaf) isNode()        {}

// addChild appends a child during compilation. Trees are immutable afterwards.
func (n *LogicalNode) addChild(child Node) {
	n.Children = append(n.Children, child)
}

// newImplicitGroup returns the node used whenever conditions are combined
// without an explicit $and/$or: sibling fields, multiple operators on one
// field, and list elements. The default combinator is conjunction.
func newImplicitGroup() *LogicalNode {
	return &LogicalNode{Combinator: CombAnd}
}

// newLeaf builds a terminal predicate, compiling regex operands eagerly.
// An invalid or non-string $regex operand is a malformed condition: deferring
// the failure to evaluation would violate the never-fails evaluation contract.
func newLeaf(field string, op Op, operand any) (*Leaf, error) {
	leaf := &Leaf{Field: field, Op: op, Operand: operand}

	if op == OpRegex {
		expr, ok := operand.(string)
		if !ok {
			return nil, fmt.Errorf("%w: $regex operand for field %q must be a string", types.ErrMalformedCondition, field)
		}
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid $regex pattern for field %q: %v", types.ErrMalformedCondition, field, err)
		}
		leaf.pattern = pattern
	}

	return leaf, nil
}
