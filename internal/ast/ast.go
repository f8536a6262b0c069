// Package ast defines the Abstract Syntax Tree node types for Epoch.
//
// The tree is built eagerly by the parser and consumed exactly once by the
// semantic pass. Identifiers and string literals borrow the source buffer;
// nodes themselves are allocated from an Arena whose lifetime is the
// compilation, so individual nodes are never freed.
package ast

import (
	"github.com/epochlang/go-epoch/internal/source"
)

// Node is the base interface for all AST nodes, including the synthetic
// marker nodes injected by the traverser.
type Node interface {
	astNode()
}

// Undefined is the placeholder node used where an optional production was
// omitted or a parse alternative failed. In a fully parsed program it is
// legal only as an omitted optional or as a void function return.
type Undefined struct{}

// Identifier wraps a borrowed source identifier so it can take part in
// traversal and in the variant interfaces.
type Identifier struct {
	source.Ident
}

// Literal wraps a literal token captured directly by the parser.
type Literal struct {
	Token source.LiteralToken
}

// Program is the root node of the AST: an ordered sequence of top-level
// meta-entities.
type Program struct {
	MetaEntities []MetaEntity
}

// MetaEntity is any top-level construct: a structure definition, a function
// definition, or a global code block.
type MetaEntity interface {
	Node
	metaEntity()
}

func (Undefined) astNode()  {}
func (Identifier) astNode() {}
func (Literal) astNode()    {}
func (*Program) astNode()   {}

func (Undefined) metaEntity()  {}
func (*Structure) metaEntity() {}
func (*Function) metaEntity()  {}
func (*CodeBlock) metaEntity() {}
