package ast

import "github.com/epochlang/go-epoch/internal/source"

// ExpressionOrAssignment is the right-hand side of an assignment: either a
// terminal expression (foo = 42) or a further assignment, which is how
// chained assignments (foo = bar = 42) are represented.
type ExpressionOrAssignment interface {
	Node
	expressionOrAssignment()
}

// Assignment assigns the right-hand side to the member access chain on the
// left. The operator identifier distinguishes plain assignment from the
// compound forms (+=, -=, ...).
type Assignment struct {
	LHS      []Identifier
	Operator source.Ident
	RHS      ExpressionOrAssignment
}

// NewSimpleAssignment builds an Assignment from the single-identifier
// left-hand-side fast path the parser uses for trivial targets.
func NewSimpleAssignment(lhs Identifier, op source.Ident, rhs ExpressionOrAssignment) *Assignment {
	return &Assignment{
		LHS:      []Identifier{lhs},
		Operator: op,
		RHS:      rhs,
	}
}

// Initialization defines a variable by invoking its type's constructor:
// a type specifier, the new variable's name, and the constructor argument
// expressions. Initializations read like assignments but compile as
// statements.
type Initialization struct {
	TypeSpecifier source.Ident
	TemplateArgs  []TemplateArgument
	Name          source.Ident
	Params        []*Expression
}

func (*Assignment) astNode()     {}
func (*Initialization) astNode() {}

func (Undefined) expressionOrAssignment()   {}
func (*Expression) expressionOrAssignment() {}
func (*Assignment) expressionOrAssignment() {}
