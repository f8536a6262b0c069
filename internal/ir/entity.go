package ir

import "github.com/epochlang/go-epoch/internal/stringpool"

// Entity is a lowered flow-control construct: name, the registry-assigned
// tag, parameter expressions, the owned body, and the ordered chain of
// subordinate entities. Postfix entities additionally carry the closing
// identifier and its parameters.
type Entity struct {
	Name stringpool.Handle
	Tag  EntityTag

	PostfixName stringpool.Handle
	PostfixTag  EntityTag

	Params        []*Expression
	PostfixParams []*Expression

	Code  *CodeBlock
	Chain []*Entity
}

// NewEntity creates an entity awaiting parameters and a body.
func NewEntity(name stringpool.Handle) *Entity {
	return &Entity{Name: name}
}

// AddParameter appends a parameter expression.
func (e *Entity) AddParameter(expr *Expression) {
	e.Params = append(e.Params, expr)
}

// AddPostfixParameter appends a parameter of the postfix closer.
func (e *Entity) AddPostfixParameter(expr *Expression) {
	e.PostfixParams = append(e.PostfixParams, expr)
}

// SetCode installs the entity body.
func (e *Entity) SetCode(block *CodeBlock) {
	e.Code = block
}

// AddChain appends a subordinate entity in declaration order.
func (e *Entity) AddChain(chained *Entity) {
	e.Chain = append(e.Chain, chained)
}
