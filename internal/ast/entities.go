package ast

import "github.com/epochlang/go-epoch/internal/source"

// Entity is an invocation of a user-extensible flow control construct such
// as if or while: an identifier, parameter expressions, a body, and an
// ordered chain of subordinate entities (elseif/else).
type Entity struct {
	Identifier source.Ident
	Parameters []*Expression
	Code       *CodeBlock
	Chain      []*ChainedEntity
}

// ChainedEntity is a subordinate entity attached to the chain of an outer
// entity invocation.
type ChainedEntity struct {
	Identifier source.Ident
	Parameters []*Expression
	Code       *CodeBlock
}

// PostfixEntity is an entity whose closing identifier and parameters appear
// after the body, as in do/while.
type PostfixEntity struct {
	Identifier        source.Ident
	Parameters        []*Expression
	Code              *CodeBlock
	PostfixIdentifier source.Ident
	PostfixParameters []*Expression
}

// AnyEntity is either a standard or a postfix entity invocation.
type AnyEntity interface {
	Node
	anyEntity()
}

func (*Entity) astNode()        {}
func (*ChainedEntity) astNode() {}
func (*PostfixEntity) astNode() {}

func (Undefined) anyEntity()      {}
func (*Entity) anyEntity()        {}
func (*PostfixEntity) anyEntity() {}
