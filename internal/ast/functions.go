package ast

import "github.com/epochlang/go-epoch/internal/source"

// FunctionTag is a single metadata tag applied to a function definition.
// Tags carry implementation hints to the compiler and runtime; a common
// example is "external", which defers the body to a native library.
type FunctionTag struct {
	Name   source.Ident
	Params []source.LiteralToken
}

// FunctionReturn is the optional return clause of a function: absent
// (Undefined, a void function), an expression, or an initialization.
type FunctionReturn interface {
	Node
	functionReturn()
}

// Function is a function definition: name, ordered parameters, the optional
// return clause, optional tags, and the body.
type Function struct {
	Name   source.Ident
	Params []FunctionParameter
	Return FunctionReturn
	Tags   []*FunctionTag
	Code   *CodeBlock // nil when the definition carries no body
}

// FunctionParameter is any valid parameter form: a named parameter, an
// expression (the pattern-matching form), a function reference signature
// for higher-order functions, or the "nothing" dummy.
type FunctionParameter interface {
	Node
	functionParameter()
}

// NamedFunctionParameter binds a typed name into the function's scope.
type NamedFunctionParameter struct {
	Type         source.Ident
	TemplateArgs []TemplateArgument
	IsReference  bool
	Name         source.Ident
}

// Nothing is the dummy parameter marking a deliberately empty slot.
type Nothing struct{}

// FunctionReferenceSignature constrains which functions may be passed to a
// higher-order function: a parameter type list and an optional return type.
type FunctionReferenceSignature struct {
	Identifier source.Ident
	ParamTypes []source.Ident
	ReturnType source.Ident // Empty when the referenced function returns nothing
}

func (*Function) astNode()                   {}
func (*FunctionTag) astNode()                {}
func (*NamedFunctionParameter) astNode()     {}
func (Nothing) astNode()                     {}
func (*FunctionReferenceSignature) astNode() {}

func (Undefined) functionReturn()       {}
func (*Expression) functionReturn()     {}
func (*Initialization) functionReturn() {}

func (Undefined) functionParameter()                   {}
func (*NamedFunctionParameter) functionParameter()     {}
func (*Expression) functionParameter()                 {}
func (*FunctionReferenceSignature) functionParameter() {}
func (Nothing) functionParameter()                     {}
