package ast

import "github.com/epochlang/go-epoch/internal/source"

// TemplateParameter is one (type, name) pair in a template parameter list.
type TemplateParameter struct {
	Type source.Ident
	Name source.Ident
}

// TemplateArgument is one argument in a template argument list: either an
// identifier naming a type or a literal value.
type TemplateArgument interface {
	Node
	templateArgument()
}

func (Undefined) templateArgument()  {}
func (Identifier) templateArgument() {}
func (Literal) templateArgument()    {}
