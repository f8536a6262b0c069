package ir

import (
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// Statement is a function invocation: a name handle, the ordered argument
// expressions, and the return type resolved by inference.
type Statement struct {
	Name   stringpool.Handle
	Params []*Expression

	returnType types.TypeID
}

// NewStatement creates a statement awaiting parameters.
func NewStatement(name stringpool.Handle) *Statement {
	return &Statement{Name: name, returnType: types.Infer}
}

// AddParameter appends an argument expression.
func (s *Statement) AddParameter(e *Expression) {
	s.Params = append(s.Params, e)
}

// ReturnType returns the resolved return type.
func (s *Statement) ReturnType() types.TypeID { return s.returnType }

// SetReturnType records the resolved return type.
func (s *Statement) SetReturnType(t types.TypeID) { s.returnType = t }

// PreOpStatement applies an operator before its operand (++counter). The
// operand is a member access chain of pooled handles.
type PreOpStatement struct {
	OperatorName stringpool.Handle
	Operand      []stringpool.Handle

	operandType types.TypeID
}

// NewPreOpStatement builds a pre-operator statement.
func NewPreOpStatement(operator stringpool.Handle, operand []stringpool.Handle) *PreOpStatement {
	return &PreOpStatement{OperatorName: operator, Operand: operand, operandType: types.Infer}
}

// Type returns the resolved operand type.
func (s *PreOpStatement) Type() types.TypeID { return s.operandType }

// SetType records the resolved operand type.
func (s *PreOpStatement) SetType(t types.TypeID) { s.operandType = t }

// PostOpStatement applies an operator after its operand (counter++).
type PostOpStatement struct {
	Operand      []stringpool.Handle
	OperatorName stringpool.Handle

	operandType types.TypeID
}

// NewPostOpStatement builds a post-operator statement.
func NewPostOpStatement(operand []stringpool.Handle, operator stringpool.Handle) *PostOpStatement {
	return &PostOpStatement{Operand: operand, OperatorName: operator, operandType: types.Infer}
}

// Type returns the resolved operand type.
func (s *PostOpStatement) Type() types.TypeID { return s.operandType }

// SetType records the resolved operand type.
func (s *PostOpStatement) SetType(t types.TypeID) { s.operandType = t }
