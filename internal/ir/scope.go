package ir

import (
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// VariableOrigin records how a variable entered its scope.
type VariableOrigin int

const (
	OriginLocal VariableOrigin = iota
	OriginParameter
	OriginReturn
	OriginGlobal
)

func (o VariableOrigin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginParameter:
		return "parameter"
	case OriginReturn:
		return "return"
	default:
		return "global"
	}
}

// Variable is one entry in a lexical scope.
type Variable struct {
	Name        string
	NameHandle  stringpool.Handle
	Type        types.TypeID
	IsReference bool
	Origin      VariableOrigin
}

// ScopeDescription is an ordered variable table with a link to the
// enclosing scope. Insertion order is preserved for stable code
// generation. The parent link is borrow-only: the global scope is owned by
// the program, every other scope by its code block, and destruction never
// follows the parent link.
type ScopeDescription struct {
	parent    *ScopeDescription
	Variables []Variable
}

// NewScopeDescription creates a scope chained under parent. A nil parent
// creates a root (global) scope.
func NewScopeDescription(parent *ScopeDescription) *ScopeDescription {
	return &ScopeDescription{parent: parent}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *ScopeDescription) Parent() *ScopeDescription { return s.parent }

// AddVariable appends a variable to this scope.
func (s *ScopeDescription) AddVariable(name string, handle stringpool.Handle, t types.TypeID, isRef bool, origin VariableOrigin) {
	s.Variables = append(s.Variables, Variable{
		Name:        name,
		NameHandle:  handle,
		Type:        t,
		IsReference: isRef,
		Origin:      origin,
	})
}

// Lookup resolves a name through the parent chain. The innermost binding
// wins; within one scope the most recent binding wins.
func (s *ScopeDescription) Lookup(handle stringpool.Handle) (Variable, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		for i := len(scope.Variables) - 1; i >= 0; i-- {
			if scope.Variables[i].NameHandle == handle {
				return scope.Variables[i], true
			}
		}
	}
	return Variable{}, false
}

// LookupLocal resolves a name in this scope only.
func (s *ScopeDescription) LookupLocal(handle stringpool.Handle) (Variable, bool) {
	for i := len(s.Variables) - 1; i >= 0; i-- {
		if s.Variables[i].NameHandle == handle {
			return s.Variables[i], true
		}
	}
	return Variable{}, false
}
