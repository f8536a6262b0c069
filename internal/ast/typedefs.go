package ast

import "github.com/epochlang/go-epoch/internal/source"

// TypeAlias maps a custom type name onto an existing type's
// representation. The alias is freely interchangeable with the
// representation type.
type TypeAlias struct {
	AliasName          source.Ident
	RepresentationName source.Ident
}

// StrongTypeAlias also maps a custom name onto an existing
// representation, but the new type does not interchange with other types
// sharing that representation.
type StrongTypeAlias struct {
	AliasName          source.Ident
	RepresentationName source.Ident
}

// SumTypeBase names one base type of an algebraic sum type.
type SumTypeBase struct {
	Name         source.Ident
	TemplateArgs []TemplateArgument
}

// SumType is a discriminated union of two or more base types; a value of
// the sum holds exactly one of the bases at a time.
type SumType struct {
	Name           source.Ident
	TemplateParams []TemplateParameter
	BaseTypes      []SumTypeBase
}

func (*TypeAlias) astNode()       {}
func (*StrongTypeAlias) astNode() {}
func (*SumType) astNode()         {}

func (*TypeAlias) metaEntity()       {}
func (*StrongTypeAlias) metaEntity() {}
func (*SumType) metaEntity()         {}
