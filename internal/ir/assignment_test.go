package ir

import (
	"testing"

	"github.com/epochlang/go-epoch/internal/stringpool"
)

func TestAssignment_SetRHSRecursive(t *testing.T) {
	pool := stringpool.NewPool()
	a := pool.Pool("a")
	b := pool.Pool("b")
	eq := pool.Pool("=")

	outer := NewAssignment([]stringpool.Handle{a}, eq)
	inner := NewAssignment([]stringpool.Handle{b}, eq)

	// Link the chain the way lowering does: the inner assignment attaches
	// through the outer, then the terminal value lands on the innermost
	// open right-hand side.
	outer.SetRHSRecursive(&AssignmentChainAssignment{Assignment: inner})

	value := NewExpression()
	value.AddAtom(&ExpressionAtomLiteralInteger32{Value: 42})
	outer.SetRHSRecursive(&AssignmentChainExpression{Expression: value})

	chain, ok := outer.RHS.(*AssignmentChainAssignment)
	if !ok {
		t.Fatalf("outer RHS is %T, want a nested assignment", outer.RHS)
	}
	if chain.Assignment != inner {
		t.Fatal("outer chain does not hold the inner assignment")
	}

	terminal, ok := inner.RHS.(*AssignmentChainExpression)
	if !ok {
		t.Fatalf("inner RHS is %T, want the terminal expression", inner.RHS)
	}
	if terminal.Expression != value {
		t.Error("terminal expression not installed on the innermost assignment")
	}
}

func TestAssignment_LHSNeverEmptyAfterConstruction(t *testing.T) {
	pool := stringpool.NewPool()
	a := NewAssignment([]stringpool.Handle{pool.Pool("target")}, pool.Pool("+="))

	if len(a.LHS) < 1 {
		t.Error("assignment constructed without a target")
	}
	if a.OperatorName == 0 {
		t.Error("compound assignment lost its operator handle")
	}
}
