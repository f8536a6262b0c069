package ir

import (
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// StructureMember is one member definition inside a structure.
type StructureMember interface {
	structureMember()

	// EpochType resolves the member's type against the program.
	EpochType(prog *Program) types.TypeID
}

// StructureMemberVariable is a plain typed member.
type StructureMemberVariable struct {
	Type stringpool.Handle
}

func (*StructureMemberVariable) structureMember() {}

// EpochType resolves the member's declared type name.
func (m *StructureMemberVariable) EpochType(prog *Program) types.TypeID {
	return prog.LookupType(m.Type)
}

// StructureMemberFunctionRef is a member holding a reference to any
// function matching the recorded signature. A zero ReturnType handle means
// the referenced function returns nothing.
type StructureMemberFunctionRef struct {
	ParamTypes []stringpool.Handle
	ReturnType stringpool.Handle
}

func (*StructureMemberFunctionRef) structureMember() {}

// EpochType reports the function-reference type.
func (m *StructureMemberFunctionRef) EpochType(prog *Program) types.TypeID {
	return types.FunctionRef
}

// StructureMemberEntry pairs a member with its name, preserving the
// declaration order.
type StructureMemberEntry struct {
	Name   stringpool.Handle
	Member StructureMember
}

// Structure is a lowered structure definition.
type Structure struct {
	Name    stringpool.Handle
	TypeID  types.TypeID
	Members []StructureMemberEntry
}

// NewStructure creates a structure awaiting members.
func NewStructure() *Structure {
	return &Structure{}
}

// AddMember appends a named member in declaration order.
func (s *Structure) AddMember(name stringpool.Handle, member StructureMember) {
	s.Members = append(s.Members, StructureMemberEntry{Name: name, Member: member})
}

// MemberType resolves a member's type by name, reporting false for an
// unknown member.
func (s *Structure) MemberType(name stringpool.Handle, prog *Program) (types.TypeID, bool) {
	for _, entry := range s.Members {
		if entry.Name == name {
			return entry.Member.EpochType(prog), true
		}
	}
	return types.Error, false
}
