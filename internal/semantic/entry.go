package semantic

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/stringpool"
)

// Enter is the traversal entry action: open a region for the node, push
// its state, and allocate the in-flight IR object the exit action will
// attach. Node kinds the pass does not recognize are a mismatch between
// the parser and this lowering and fault immediately.
func (p *CompilePassSemantics) Enter(n ast.Node) {
	switch n := n.(type) {
	case ast.Undefined:
		p.enterUndefined()

	case *ast.Program:
		p.enterProgram()

	case ast.Identifier:
		p.enterIdentifier(n)

	case ast.Literal:
		p.enterLiteral(n)

	case *ast.Structure:
		p.structures = append(p.structures, ir.NewStructure())

	case *ast.TypeAlias:
		p.enterTypeAlias(n)

	case *ast.StrongTypeAlias:
		p.enterStrongTypeAlias(n)

	case *ast.SumType:
		p.enterSumType(n)

	case *ast.StructureMemberVariable:
		p.enterStructureMemberVariable(n)

	case *ast.StructureMemberFunctionRef:
		p.enterStructureMemberFunctionRef(n)

	case *ast.Function:
		p.pushState(StateFunction)
		p.functions = append(p.functions, ir.NewFunction())

	case *ast.NamedFunctionParameter:
		p.enterNamedFunctionParameter(n)

	case ast.Nothing:
		p.enterNothingParameter()

	case *ast.FunctionReferenceSignature:
		p.enterFunctionReferenceSignature(n)

	case *ast.FunctionTag:
		p.enterFunctionTag(n)

	case *ast.Expression:
		p.pushState(StateExpression)
		p.expressions = append(p.expressions, ir.NewExpression())

	case *ast.ExpressionComponent:
		p.pushState(StateExpressionComponent)

	case *ast.ExpressionFragment:
		p.enterExpressionFragment(n)

	case *ast.Statement:
		name := p.program.AddString(n.Identifier.Text)
		p.Errors.SetContext(n.Identifier)
		p.pushState(StateStatement)
		p.statements = append(p.statements, ir.NewStatement(name))

	case *ast.PreOperatorStatement:
		p.pushState(StatePreOpStatement)

	case *ast.PostOperatorStatement:
		p.pushState(StatePostOpStatement)

	case *ast.Assignment:
		p.enterAssignment(n)

	case *ast.Initialization:
		p.enterInitialization(n)

	case *ast.CodeBlock:
		p.enterCodeBlock()

	case *ast.Entity:
		name := p.program.AddString(n.Identifier.Text)
		p.Errors.SetContext(n.Identifier)
		p.pushState(StateEntity)
		p.entities = append(p.entities, ir.NewEntity(name))

	case *ast.ChainedEntity:
		name := p.program.AddString(n.Identifier.Text)
		p.Errors.SetContext(n.Identifier)
		p.pushState(StateChainedEntity)
		p.chainedEntities = append(p.chainedEntities, ir.NewEntity(name))

	case *ast.PostfixEntity:
		name := p.program.AddString(n.Identifier.Text)
		p.Errors.SetContext(n.Identifier)
		p.pushState(StatePostfixEntity)
		p.postfixEntities = append(p.postfixEntities, ir.NewEntity(name))

	case ast.FunctionReturnExpression:
		p.pushState(StateFunctionReturn)
		p.inFunctionReturn = true
		p.returnExprMark = len(p.expressions)
		p.returnInitMark = len(p.initializations)

	case ast.ExpressionComponentPrefixes:
		p.pushState(StateExpressionComponentPrefixes)

	case ast.FunctionSignatureParams:
		p.pushState(StateFunctionSignatureParams)

	case ast.FunctionSignatureReturn:
		p.pushState(StateFunctionSignatureReturn)

	case ast.StructureFunctionParams:
		p.pushState(StateStructureFunctionParams)

	case ast.StructureFunctionReturn:
		p.pushState(StateStructureFunctionReturn)

	default:
		// A node class exists and has been traversed but no overload here
		// recognizes it; the lowering is incomplete for the grammar.
		panic(errors.Internalf("unrecognized AST node type %T", n))
	}
}

// enterUndefined admits the two places an undefined node may legally
// appear in a fully parsed program: an idle pass and a void function
// return.
func (p *CompilePassSemantics) enterUndefined() {
	switch p.topState() {
	case StateUnknown, StateFunctionReturn:
		return
	}
	panic(errors.Internalf("undefined AST node in unexpected context (state %s)", p.topState()))
}

func (p *CompilePassSemantics) enterProgram() {
	if p.program != nil {
		panic(&errors.ReentrantASTError{})
	}
	p.pushState(StateProgram)
	p.program = ir.NewProgram(p.strings, p.session)
}

func (p *CompilePassSemantics) enterTypeAlias(n *ast.TypeAlias) {
	p.Errors.SetContext(n.AliasName)

	repr, known := p.session.Types.Lookup(n.RepresentationName.Text)
	if !known {
		p.Errors.AddErrorAt(n.RepresentationName, errors.KindTypeError,
			"alias '%s' refers to unknown type '%s'", n.AliasName.Text, n.RepresentationName.Text)
		return
	}
	p.program.AddTypeAlias(p.program.AddString(n.AliasName.Text), repr)
}

func (p *CompilePassSemantics) enterStrongTypeAlias(n *ast.StrongTypeAlias) {
	p.Errors.SetContext(n.AliasName)

	if _, known := p.session.Types.Lookup(n.RepresentationName.Text); !known {
		p.Errors.AddErrorAt(n.RepresentationName, errors.KindTypeError,
			"strong alias '%s' refers to unknown type '%s'", n.AliasName.Text, n.RepresentationName.Text)
		return
	}
	p.program.AddStrongTypeAlias(p.program.AddString(n.AliasName.Text))
}

func (p *CompilePassSemantics) enterSumType(n *ast.SumType) {
	p.Errors.SetContext(n.Name)

	bases := make([]stringpool.Handle, 0, len(n.BaseTypes))
	for _, base := range n.BaseTypes {
		bases = append(bases, p.program.AddString(base.Name.Text))
	}
	p.program.AddSumType(p.program.AddString(n.Name.Text), bases)
}

func (p *CompilePassSemantics) enterStructureMemberVariable(n *ast.StructureMemberVariable) {
	if len(p.structures) == 0 {
		panic(errors.Internalf("structure member AST node outside a structure definition"))
	}

	name := p.program.AddString(n.Name.Text)
	typeName := p.program.AddString(n.Type.Text)
	p.Errors.SetContext(n.Name)

	current := p.structures[len(p.structures)-1]
	current.AddMember(name, &ir.StructureMemberVariable{Type: typeName})
}

func (p *CompilePassSemantics) enterStructureMemberFunctionRef(n *ast.StructureMemberFunctionRef) {
	if len(p.structures) == 0 {
		panic(errors.Internalf("structure member AST node outside a structure definition"))
	}

	p.pushState(StateStructureFunction)
	p.structureFns = append(p.structureFns, &structureFnBuilder{
		name:   p.program.AddString(n.Name.Text),
		member: &ir.StructureMemberFunctionRef{},
	})
}

func (p *CompilePassSemantics) enterNamedFunctionParameter(n *ast.NamedFunctionParameter) {
	if len(p.functions) == 0 {
		panic(errors.Internalf("function parameter AST node outside a function definition"))
	}

	name := p.program.AddString(n.Name.Text)
	typeName := p.program.AddString(n.Type.Text)

	p.currentFunction().AddParameter(name, &ir.FunctionParamNamed{
		Type:        typeName,
		IsReference: n.IsReference,
	})
}

func (p *CompilePassSemantics) enterNothingParameter() {
	if len(p.functions) == 0 {
		panic(errors.Internalf("function parameter AST node outside a function definition"))
	}
	p.currentFunction().AddParameter(p.program.AllocateAnonymousParamName(), &ir.FunctionParamNothing{})
}

func (p *CompilePassSemantics) enterFunctionReferenceSignature(n *ast.FunctionReferenceSignature) {
	if len(p.functions) == 0 {
		panic(errors.Internalf("function reference signature outside a function definition"))
	}

	p.pushState(StateFunctionSignature)
	p.signatures = append(p.signatures, &signatureBuilder{
		name:  p.program.AddString(n.Identifier.Text),
		param: &ir.FunctionParamFuncRef{},
	})
}

func (p *CompilePassSemantics) enterFunctionTag(n *ast.FunctionTag) {
	if len(p.functions) == 0 {
		panic(errors.Internalf("function tag outside a function definition"))
	}

	p.pushState(StateFunctionTag)
	p.tags = append(p.tags, &ir.FunctionTag{
		Name:   p.program.AddString(n.Name.Text),
		Ident:  n.Name,
		Params: n.Params,
	})
}

func (p *CompilePassSemantics) enterExpressionFragment(n *ast.ExpressionFragment) {
	p.pushState(StateExpressionFragment)

	opname := p.program.AddString(n.Operator.Text)
	p.currentExpression().AddAtom(&ir.ExpressionAtomOperator{
		Handle:         opname,
		IsMemberAccess: n.Operator.Text == ".",
	})
}

func (p *CompilePassSemantics) enterAssignment(n *ast.Assignment) {
	state := p.topState()
	p.pushState(StateAssignment)

	opname := p.program.AddString(n.Operator.Text)
	if !n.Operator.Empty() {
		p.Errors.SetContext(n.Operator)
	}

	lhs := make([]stringpool.Handle, 0, len(n.LHS))
	for _, id := range n.LHS {
		lhs = append(lhs, p.program.AddString(id.Text))
	}

	switch state {
	case StateCodeBlock:
		p.assignments = append(p.assignments, ir.NewAssignment(lhs, opname))

	case StateAssignment:
		// Chained assignment: the new link belongs to the innermost open
		// assignment of the chain and never joins the in-flight stack.
		if len(p.assignments) == 0 {
			p.invalidState("chained assignment")
		}
		inner := ir.NewAssignment(lhs, opname)
		p.assignments[len(p.assignments)-1].SetRHSRecursive(&ir.AssignmentChainAssignment{Assignment: inner})

	default:
		p.invalidState("assignment")
	}
}

func (p *CompilePassSemantics) enterInitialization(n *ast.Initialization) {
	typeName := p.program.AddString(n.TypeSpecifier.Text)
	varName := p.program.AddString(n.Name.Text)
	p.Errors.SetContext(n.Name)

	p.pushState(StateInitialization)
	p.initializations = append(p.initializations, ir.NewInitialization(typeName, varName))
}

func (p *CompilePassSemantics) enterCodeBlock() {
	var scope *ir.ScopeDescription
	owned := true

	switch p.topState() {
	case StateProgram:
		scope = p.program.GlobalScope()
		owned = false
	case StateFunction:
		scope = ir.NewScopeDescription(p.program.GlobalScope())
	default:
		scope = ir.NewScopeDescription(p.currentCodeBlock().Scope())
	}

	p.codeBlocks = append(p.codeBlocks, ir.NewCodeBlock(scope, owned))
	p.pushState(StateCodeBlock)
}
