package ir

import (
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// ExpressionAtom is one element of the flattened expression form. The atom
// list is a simple linear rendering of the source expression; precedence
// resolution belongs to the code generator.
type ExpressionAtom interface {
	expressionAtom()
}

// Expression is an ordered sequence of atoms plus the type inference
// eventually assigns to the whole expression.
type Expression struct {
	Atoms []ExpressionAtom

	inferred types.TypeID
}

// NewExpression creates an empty expression awaiting atoms.
func NewExpression() *Expression {
	return &Expression{inferred: types.Infer}
}

// AddAtom appends an atom.
func (e *Expression) AddAtom(a ExpressionAtom) {
	e.Atoms = append(e.Atoms, a)
}

// Type returns the inferred type of the expression.
func (e *Expression) Type() types.TypeID { return e.inferred }

// SetType records the inferred type.
func (e *Expression) SetType(t types.TypeID) { e.inferred = t }

// ExpressionAtomIdentifier names a variable (or, for constructor calls, the
// identifier being defined). Type is filled in by inference.
type ExpressionAtomIdentifier struct {
	Handle stringpool.Handle
	Type   types.TypeID
}

// ExpressionAtomIdentifierReference names a variable bound by reference.
type ExpressionAtomIdentifierReference struct {
	Handle stringpool.Handle
	Type   types.TypeID
}

// ExpressionAtomOperator is an infix or unary-prefix operator occurrence.
type ExpressionAtomOperator struct {
	Handle         stringpool.Handle
	IsMemberAccess bool
	Type           types.TypeID
}

// ExpressionAtomLiteralInteger32 is a 32-bit integer literal atom.
type ExpressionAtomLiteralInteger32 struct {
	Value int32
}

// ExpressionAtomLiteralReal32 is a 32-bit real literal atom.
type ExpressionAtomLiteralReal32 struct {
	Value float32
}

// ExpressionAtomLiteralBoolean is a boolean literal atom.
type ExpressionAtomLiteralBoolean struct {
	Value bool
}

// ExpressionAtomLiteralString is a pooled string literal atom.
type ExpressionAtomLiteralString struct {
	Handle stringpool.Handle
}

// ExpressionAtomStatement is a nested function invocation.
type ExpressionAtomStatement struct {
	Statement *Statement
}

// ExpressionAtomParenthetical wraps a parenthesized construct.
type ExpressionAtomParenthetical struct {
	Parenthetical Parenthetical
}

// ExpressionAtomCopyFromStructure marks a member copy out of a structure
// value; emitted by later lowering stages when rewriting member access.
type ExpressionAtomCopyFromStructure struct {
	Structure types.TypeID
	Member    stringpool.Handle
}

// ExpressionAtomBindReference binds a name to a structure member by
// reference for writeback.
type ExpressionAtomBindReference struct {
	Name               stringpool.Handle
	StructureName      stringpool.Handle
	IsReference        bool
	OverrideInputAsRef bool
}

// ExpressionAtomTypeAnnotation carries an explicit type into the atom
// stream for the code generator.
type ExpressionAtomTypeAnnotation struct {
	Type types.TypeID
}

// ExpressionAtomTempReferenceFromRegister asks the code generator to
// materialise a temporary reference from the active register.
type ExpressionAtomTempReferenceFromRegister struct{}

func (*ExpressionAtomIdentifier) expressionAtom()              {}
func (*ExpressionAtomIdentifierReference) expressionAtom()     {}
func (*ExpressionAtomOperator) expressionAtom()                {}
func (*ExpressionAtomLiteralInteger32) expressionAtom()        {}
func (*ExpressionAtomLiteralReal32) expressionAtom()           {}
func (*ExpressionAtomLiteralBoolean) expressionAtom()          {}
func (*ExpressionAtomLiteralString) expressionAtom()           {}
func (*ExpressionAtomStatement) expressionAtom()               {}
func (*ExpressionAtomParenthetical) expressionAtom()           {}
func (*ExpressionAtomCopyFromStructure) expressionAtom()       {}
func (*ExpressionAtomBindReference) expressionAtom()           {}
func (*ExpressionAtomTypeAnnotation) expressionAtom()          {}
func (*ExpressionAtomTempReferenceFromRegister) expressionAtom() {}

// Parenthetical is the payload of a parenthetical atom: a parenthesized
// expression or a pre/post operator statement.
type Parenthetical interface {
	parenthetical()
}

// ParentheticalExpression wraps a parenthesized sub-expression.
type ParentheticalExpression struct {
	Expression *Expression
}

// ParentheticalPreOp wraps a pre-operator statement used as a value.
type ParentheticalPreOp struct {
	Statement *PreOpStatement
}

// ParentheticalPostOp wraps a post-operator statement used as a value.
type ParentheticalPostOp struct {
	Statement *PostOpStatement
}

func (*ParentheticalExpression) parenthetical() {}
func (*ParentheticalPreOp) parenthetical()      {}
func (*ParentheticalPostOp) parenthetical()     {}
