package ir

import (
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// AssignmentChain is the right-hand side of an assignment: either a
// terminal expression or a nested assignment, which is how chained
// assignments (a = b = 42) survive lowering.
type AssignmentChain interface {
	assignmentChain()
}

// AssignmentChainExpression terminates a chain with a value.
type AssignmentChainExpression struct {
	Expression *Expression
}

// AssignmentChainAssignment continues a chain with a nested assignment.
type AssignmentChainAssignment struct {
	Assignment *Assignment
}

func (*AssignmentChainExpression) assignmentChain() {}
func (*AssignmentChainAssignment) assignmentChain() {}

// Assignment writes the chain's value through the left-hand member access
// chain. OperatorName distinguishes plain from compound assignment.
type Assignment struct {
	LHS          []stringpool.Handle
	OperatorName stringpool.Handle
	RHS          AssignmentChain

	lhsType types.TypeID
}

// NewAssignment builds an assignment awaiting its right-hand side.
func NewAssignment(lhs []stringpool.Handle, operator stringpool.Handle) *Assignment {
	return &Assignment{LHS: lhs, OperatorName: operator, lhsType: types.Infer}
}

// SetRHS installs the right-hand side of this assignment.
func (a *Assignment) SetRHS(chain AssignmentChain) {
	a.RHS = chain
}

// SetRHSRecursive walks to the innermost open assignment of the chain and
// installs the right-hand side there. Used while lowering chained
// assignments, where each new link belongs to the deepest assignment seen
// so far.
func (a *Assignment) SetRHSRecursive(chain AssignmentChain) {
	inner := a
	for {
		next, ok := inner.RHS.(*AssignmentChainAssignment)
		if !ok {
			break
		}
		inner = next.Assignment
	}
	inner.RHS = chain
}

// LHSType returns the resolved type of the assignment target.
func (a *Assignment) LHSType() types.TypeID { return a.lhsType }

// SetLHSType records the resolved target type.
func (a *Assignment) SetLHSType(t types.TypeID) { a.lhsType = t }

// Initialization defines a variable by constructor call: the type, the new
// variable's name, and the constructor arguments.
type Initialization struct {
	TypeName stringpool.Handle
	Name     stringpool.Handle
	Params   []*Expression
}

// NewInitialization builds an initialization awaiting parameters.
func NewInitialization(typeName, name stringpool.Handle) *Initialization {
	return &Initialization{TypeName: typeName, Name: name}
}

// AddParameter appends a constructor argument expression.
func (init *Initialization) AddParameter(e *Expression) {
	init.Params = append(init.Params, e)
}
