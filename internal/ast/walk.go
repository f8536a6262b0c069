package ast

import "github.com/epochlang/go-epoch/errors"

// Visitor receives an Enter callback before each node's children are
// visited and a Leave callback after. The traverser knows nothing about
// what the callbacks do; stateful visitors (the semantic pass in
// particular) rely on the synthetic marker nodes to track context.
type Visitor interface {
	Enter(n Node)
	Leave(n Node)
}

// Marker nodes injected into the traversal. They carry no data; they exist
// solely so visitors can maintain state across a region of the walk.
type (
	// FunctionReturnExpression brackets the return clause of a function.
	FunctionReturnExpression struct{}

	// ExpressionComponentPrefixes brackets the unary prefix operators of
	// an expression component.
	ExpressionComponentPrefixes struct{}

	// FunctionSignatureParams brackets the parameter type list of a
	// function reference signature.
	FunctionSignatureParams struct{}

	// FunctionSignatureReturn brackets the return type of a function
	// reference signature.
	FunctionSignatureReturn struct{}

	// StructureFunctionParams brackets the parameter type list of a
	// structure function-reference member.
	StructureFunctionParams struct{}

	// StructureFunctionReturn brackets the return type of a structure
	// function-reference member.
	StructureFunctionReturn struct{}
)

func (FunctionReturnExpression) astNode()    {}
func (ExpressionComponentPrefixes) astNode() {}
func (FunctionSignatureParams) astNode()     {}
func (FunctionSignatureReturn) astNode()     {}
func (StructureFunctionParams) astNode()     {}
func (StructureFunctionReturn) astNode()     {}

// Walk traverses the program in the fixed descent order, invoking the
// visitor's Enter before each node's children and Leave after.
func Walk(v Visitor, program *Program) {
	v.Enter(program)
	for _, me := range program.MetaEntities {
		walkMetaEntity(v, me)
	}
	v.Leave(program)
}

// WalkDeferred unwraps a deferred holder and traverses its content. Empty
// holders contribute nothing to the walk.
func WalkDeferred[T any](v Visitor, d Deferred[T]) {
	if d.Empty() {
		return
	}
	WalkNode(v, any(d.Ptr()).(Node))
}

// WalkNode traverses a single node of any kind. Unknown node types are a
// contract violation between the parser and this traversal.
func WalkNode(v Visitor, n Node) {
	switch n := n.(type) {
	case *Program:
		Walk(v, n)
	case Undefined:
		leaf(v, n)
	case Identifier:
		leaf(v, n)
	case Literal:
		leaf(v, n)
	case *Structure:
		walkStructure(v, n)
	case *TypeAlias:
		leaf(v, n)
	case *StrongTypeAlias:
		leaf(v, n)
	case *SumType:
		leaf(v, n)
	case *StructureMemberVariable:
		leaf(v, n)
	case *StructureMemberFunctionRef:
		walkStructureMemberFunctionRef(v, n)
	case *Function:
		walkFunction(v, n)
	case *NamedFunctionParameter:
		leaf(v, n)
	case Nothing:
		leaf(v, n)
	case *FunctionReferenceSignature:
		walkFunctionReferenceSignature(v, n)
	case *FunctionTag:
		walkFunctionTag(v, n)
	case *Expression:
		walkExpression(v, n)
	case *ExpressionComponent:
		walkExpressionComponent(v, n)
	case *ExpressionFragment:
		walkExpressionFragment(v, n)
	case *Statement:
		walkStatement(v, n)
	case *PreOperatorStatement:
		walkPreOperatorStatement(v, n)
	case *PostOperatorStatement:
		walkPostOperatorStatement(v, n)
	case *Assignment:
		walkAssignment(v, n)
	case *Initialization:
		walkInitialization(v, n)
	case *CodeBlock:
		walkCodeBlock(v, n)
	case *Entity:
		walkEntity(v, n)
	case *ChainedEntity:
		walkChainedEntity(v, n)
	case *PostfixEntity:
		walkPostfixEntity(v, n)
	default:
		// A node type exists that this traversal does not recognize; the
		// implementation is incomplete for the grammar.
		panic(errors.Internalf("ast: unrecognized node type %T in traversal", n))
	}
}

func leaf(v Visitor, n Node) {
	v.Enter(n)
	v.Leave(n)
}

func walkMetaEntity(v Visitor, me MetaEntity) {
	WalkNode(v, me)
}

func walkStructure(v Visitor, s *Structure) {
	v.Enter(s)
	for _, m := range s.Members {
		WalkNode(v, m)
	}
	v.Leave(s)
}

func walkStructureMemberFunctionRef(v Visitor, m *StructureMemberFunctionRef) {
	v.Enter(m)

	v.Enter(StructureFunctionParams{})
	for _, pt := range m.ParamTypes {
		leaf(v, Identifier{Ident: pt})
	}
	v.Leave(StructureFunctionParams{})

	v.Enter(StructureFunctionReturn{})
	if !m.ReturnType.Empty() {
		leaf(v, Identifier{Ident: m.ReturnType})
	}
	v.Leave(StructureFunctionReturn{})

	v.Leave(m)
}

func walkFunction(v Visitor, fn *Function) {
	v.Enter(fn)

	for _, p := range fn.Params {
		WalkNode(v, p)
	}

	v.Enter(FunctionReturnExpression{})
	if fn.Return != nil {
		WalkNode(v, fn.Return)
	} else {
		leaf(v, Undefined{})
	}
	v.Leave(FunctionReturnExpression{})

	if fn.Code != nil {
		walkCodeBlock(v, fn.Code)
	}

	for _, tag := range fn.Tags {
		walkFunctionTag(v, tag)
	}

	v.Leave(fn)
}

func walkFunctionTag(v Visitor, tag *FunctionTag) {
	v.Enter(tag)
	for _, p := range tag.Params {
		leaf(v, Literal{Token: p})
	}
	v.Leave(tag)
}

func walkFunctionReferenceSignature(v Visitor, sig *FunctionReferenceSignature) {
	v.Enter(sig)

	v.Enter(FunctionSignatureParams{})
	for _, pt := range sig.ParamTypes {
		leaf(v, Identifier{Ident: pt})
	}
	v.Leave(FunctionSignatureParams{})

	v.Enter(FunctionSignatureReturn{})
	if !sig.ReturnType.Empty() {
		leaf(v, Identifier{Ident: sig.ReturnType})
	}
	v.Leave(FunctionSignatureReturn{})

	v.Leave(sig)
}

func walkExpression(v Visitor, e *Expression) {
	v.Enter(e)
	if e.First != nil {
		walkExpressionComponent(v, e.First)
	}
	for _, frag := range e.Remaining {
		walkExpressionFragment(v, frag)
	}
	v.Leave(e)
}

func walkExpressionComponent(v Visitor, c *ExpressionComponent) {
	v.Enter(c)

	v.Enter(ExpressionComponentPrefixes{})
	for _, prefix := range c.UnaryPrefixes {
		leaf(v, prefix)
	}
	v.Leave(ExpressionComponentPrefixes{})

	if c.Value != nil {
		WalkNode(v, c.Value)
	}

	v.Leave(c)
}

func walkExpressionFragment(v Visitor, f *ExpressionFragment) {
	v.Enter(f)
	if f.Component != nil {
		walkExpressionComponent(v, f.Component)
	}
	v.Leave(f)
}

func walkStatement(v Visitor, s *Statement) {
	v.Enter(s)
	for _, p := range s.Params {
		walkExpression(v, p)
	}
	v.Leave(s)
}

func walkPreOperatorStatement(v Visitor, s *PreOperatorStatement) {
	v.Enter(s)
	for _, op := range s.Operand {
		leaf(v, op)
	}
	v.Leave(s)
}

func walkPostOperatorStatement(v Visitor, s *PostOperatorStatement) {
	v.Enter(s)
	for _, op := range s.Operand {
		leaf(v, op)
	}
	v.Leave(s)
}

func walkAssignment(v Visitor, a *Assignment) {
	v.Enter(a)
	for _, lhs := range a.LHS {
		leaf(v, lhs)
	}
	if a.RHS != nil {
		WalkNode(v, a.RHS)
	}
	v.Leave(a)
}

func walkInitialization(v Visitor, init *Initialization) {
	v.Enter(init)
	for _, p := range init.Params {
		walkExpression(v, p)
	}
	v.Leave(init)
}

func walkCodeBlock(v Visitor, b *CodeBlock) {
	v.Enter(b)
	for _, entry := range b.Entries {
		WalkNode(v, entry)
	}
	v.Leave(b)
}

func walkEntity(v Visitor, e *Entity) {
	v.Enter(e)
	for _, p := range e.Parameters {
		walkExpression(v, p)
	}
	if e.Code != nil {
		walkCodeBlock(v, e.Code)
	}
	for _, chained := range e.Chain {
		walkChainedEntity(v, chained)
	}
	v.Leave(e)
}

func walkChainedEntity(v Visitor, e *ChainedEntity) {
	v.Enter(e)
	leaf(v, Identifier{Ident: e.Identifier})
	for _, p := range e.Parameters {
		walkExpression(v, p)
	}
	if e.Code != nil {
		walkCodeBlock(v, e.Code)
	}
	v.Leave(e)
}

func walkPostfixEntity(v Visitor, e *PostfixEntity) {
	v.Enter(e)
	for _, p := range e.Parameters {
		walkExpression(v, p)
	}
	if e.Code != nil {
		walkCodeBlock(v, e.Code)
	}
	leaf(v, Identifier{Ident: e.PostfixIdentifier})
	for _, p := range e.PostfixParameters {
		walkExpression(v, p)
	}
	v.Leave(e)
}
