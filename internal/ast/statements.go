package ast

import "github.com/epochlang/go-epoch/internal/source"

// Statement is the Epoch function call syntax: an identifier with optional
// template arguments and an ordered parameter expression list.
type Statement struct {
	Identifier   source.Ident
	TemplateArgs []TemplateArgument
	Params       []*Expression
}

// PreOperatorStatement is an operator applied before its operand, as in
// ++counter. The operand is a member access chain.
type PreOperatorStatement struct {
	Operator source.Ident
	Operand  []Identifier
}

// PostOperatorStatement is an operator applied after its operand, as in
// counter++.
type PostOperatorStatement struct {
	Operand  []Identifier
	Operator source.Ident
}

// AnyStatement is any statement variety legal in a code block.
type AnyStatement interface {
	Node
	anyStatement()
}

func (*Statement) astNode()             {}
func (*PreOperatorStatement) astNode()  {}
func (*PostOperatorStatement) astNode() {}

func (Undefined) anyStatement()              {}
func (*PreOperatorStatement) anyStatement()  {}
func (*PostOperatorStatement) anyStatement() {}
func (*Statement) anyStatement()             {}
func (*Initialization) anyStatement()        {}
