package ast

import "github.com/epochlang/go-epoch/internal/source"

// Structure is a complete structure definition: a name, an optional
// template parameter list, and the ordered member definitions.
type Structure struct {
	Identifier     source.Ident
	TemplateParams []TemplateParameter
	Members        []StructureMember
}

// StructureMember is any legal member of a structure definition.
type StructureMember interface {
	Node
	structureMember()
}

// StructureMemberVariable is a plain member variable: a type (possibly with
// template arguments) and a name.
type StructureMemberVariable struct {
	Type         source.Ident
	TemplateArgs []TemplateArgument
	Name         source.Ident
}

// StructureMemberFunctionRef is a function-reference member: the member
// holds a reference to any function matching the given signature.
type StructureMemberFunctionRef struct {
	Name       source.Ident
	ParamTypes []source.Ident
	ReturnType source.Ident // Empty when the referenced function returns nothing
}

func (*Structure) astNode()                  {}
func (*StructureMemberVariable) astNode()    {}
func (*StructureMemberFunctionRef) astNode() {}

func (Undefined) structureMember()                   {}
func (*StructureMemberVariable) structureMember()    {}
func (*StructureMemberFunctionRef) structureMember() {}
