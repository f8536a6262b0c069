package semantic

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/stringpool"
)

// Leave is the traversal exit action: pop the node's state and attach the
// finished IR object to its parent, chosen by the newly exposed top of the
// state stack.
func (p *CompilePassSemantics) Leave(n ast.Node) {
	switch n := n.(type) {
	case *ast.Program:
		p.popState(StateProgram)

	case *ast.Structure:
		p.leaveStructure(n)

	case *ast.StructureMemberFunctionRef:
		p.leaveStructureMemberFunctionRef()

	case *ast.Function:
		p.leaveFunction(n)

	case *ast.FunctionReferenceSignature:
		p.leaveFunctionReferenceSignature()

	case *ast.FunctionTag:
		p.leaveFunctionTag()

	case *ast.Expression:
		p.leaveExpression()

	case *ast.ExpressionComponent:
		p.popState(StateExpressionComponent)

	case *ast.ExpressionFragment:
		p.popState(StateExpressionFragment)

	case *ast.Statement:
		p.leaveStatement()

	case *ast.PreOperatorStatement:
		p.leavePreOperatorStatement(n)

	case *ast.PostOperatorStatement:
		p.leavePostOperatorStatement(n)

	case *ast.Assignment:
		p.leaveAssignment(n)

	case *ast.Initialization:
		p.leaveInitialization()

	case *ast.CodeBlock:
		p.leaveCodeBlock()

	case *ast.Entity:
		p.leaveEntity()

	case *ast.ChainedEntity:
		p.leaveChainedEntity()

	case *ast.PostfixEntity:
		p.leavePostfixEntity()

	case ast.FunctionReturnExpression:
		p.leaveFunctionReturn()

	case ast.ExpressionComponentPrefixes:
		p.popState(StateExpressionComponentPrefixes)

	case ast.FunctionSignatureParams:
		p.popState(StateFunctionSignatureParams)

	case ast.FunctionSignatureReturn:
		p.popState(StateFunctionSignatureReturn)

	case ast.StructureFunctionParams:
		p.popState(StateStructureFunctionParams)

	case ast.StructureFunctionReturn:
		p.popState(StateStructureFunctionReturn)

	default:
		// Everything else is a leaf as far as the exit action is
		// concerned: identifiers, literals, markers already handled on
		// entry, and the undefined node.
	}
}

func (p *CompilePassSemantics) leaveStructure(n *ast.Structure) {
	if len(p.structures) != 1 {
		// Nested structure definitions parse but are not lowered.
		panic(&errors.UnsupportedFeatureError{Feature: "nested structure definitions"})
	}

	structure := p.structures[len(p.structures)-1]
	p.structures = p.structures[:len(p.structures)-1]

	name := p.program.AddString(n.Identifier.Text)
	p.program.AddStructure(name, structure)
}

func (p *CompilePassSemantics) leaveStructureMemberFunctionRef() {
	p.popState(StateStructureFunction)

	builder := p.structureFns[len(p.structureFns)-1]
	p.structureFns = p.structureFns[:len(p.structureFns)-1]

	current := p.structures[len(p.structures)-1]
	current.AddMember(builder.name, builder.member)
}

func (p *CompilePassSemantics) leaveFunction(n *ast.Function) {
	p.popState(StateFunction)

	fn := p.currentFunction()

	if fn.GetCode() == nil {
		scope := ir.NewScopeDescription(p.program.GlobalScope())
		fn.SetCode(ir.NewCodeBlock(scope, true))
	}

	// Named parameters become local variables of the body scope.
	for _, name := range fn.ParameterNames() {
		if !fn.IsParameterLocalVariable(name) {
			continue
		}
		t := fn.ParameterType(name, p.program)
		isRef := fn.IsParameterReference(name)
		fn.GetCode().AddVariable(p.program.GetString(name), name, t, isRef, ir.OriginParameter)
	}

	if len(p.functions) != 1 {
		// An inner function was produced by the parser, but lowering for
		// nested functions is not implemented.
		panic(&errors.UnsupportedFeatureError{Feature: "nested (inner) functions"})
	}

	overload := p.program.CreateFunctionOverload(n.Name.Text)
	p.program.AddFunction(overload, fn)
	p.functions = p.functions[:len(p.functions)-1]
}

func (p *CompilePassSemantics) leaveFunctionReferenceSignature() {
	p.popState(StateFunctionSignature)

	builder := p.signatures[len(p.signatures)-1]
	p.signatures = p.signatures[:len(p.signatures)-1]

	p.currentFunction().AddParameter(builder.name, builder.param)
}

func (p *CompilePassSemantics) leaveFunctionTag() {
	p.popState(StateFunctionTag)

	tag := p.tags[len(p.tags)-1]
	p.tags = p.tags[:len(p.tags)-1]

	p.currentFunction().AddTag(tag)
}

func (p *CompilePassSemantics) leaveExpression() {
	p.popState(StateExpression)

	switch p.topState() {
	case StateStatement:
		p.currentStatement().AddParameter(p.popExpression())

	case StateAssignment:
		if len(p.assignments) == 0 {
			p.invalidState("expression attaching to assignment")
		}
		expr := p.popExpression()
		p.assignments[len(p.assignments)-1].SetRHSRecursive(&ir.AssignmentChainExpression{Expression: expr})

	case StateEntity:
		expr := p.popExpression()
		p.entities[len(p.entities)-1].AddParameter(expr)

	case StateChainedEntity:
		expr := p.popExpression()
		p.chainedEntities[len(p.chainedEntities)-1].AddParameter(expr)

	case StatePostfixEntity:
		expr := p.popExpression()
		entity := p.postfixEntities[len(p.postfixEntities)-1]
		if entity.PostfixName != 0 {
			entity.AddPostfixParameter(expr)
		} else {
			entity.AddParameter(expr)
		}

	case StateFunctionReturn:
		// Left in flight; the return marker exit consumes it.

	case StateFunction:
		// A pattern-matched parameter: the expression is the parameter.
		paramName := p.program.AllocateAnonymousParamName()
		p.currentFunction().AddParameter(paramName, &ir.FunctionParamExpression{Expression: p.popExpression()})

	case StateInitialization:
		p.initializations[len(p.initializations)-1].AddParameter(p.popExpression())

	case StateExpressionComponent:
		// A parenthesized sub-expression: it becomes a parenthetical atom
		// of the enclosing expression.
		inner := p.popExpression()
		p.currentExpression().AddAtom(&ir.ExpressionAtomParenthetical{
			Parenthetical: &ir.ParentheticalExpression{Expression: inner},
		})

	default:
		p.invalidState("expression exit")
	}
}

func (p *CompilePassSemantics) leaveStatement() {
	p.popState(StateStatement)

	stmt := p.currentStatement()
	p.statements = p.statements[:len(p.statements)-1]

	switch p.topState() {
	case StateExpressionComponent, StateExpressionFragment:
		p.currentExpression().AddAtom(&ir.ExpressionAtomStatement{Statement: stmt})

	case StateCodeBlock:
		p.currentCodeBlock().AddEntry(stmt)

	default:
		p.invalidState("statement exit")
	}
}

func (p *CompilePassSemantics) leavePreOperatorStatement(n *ast.PreOperatorStatement) {
	p.popState(StatePreOpStatement)

	opname := p.program.AddString(n.Operator.Text)
	stmt := ir.NewPreOpStatement(opname, p.poolIdentifiers(n.Operand))

	switch p.topState() {
	case StateExpressionComponent, StateExpressionFragment:
		p.currentExpression().AddAtom(&ir.ExpressionAtomParenthetical{
			Parenthetical: &ir.ParentheticalPreOp{Statement: stmt},
		})

	case StateCodeBlock:
		p.currentCodeBlock().AddEntry(stmt)

	default:
		p.invalidState("pre-operator statement exit")
	}
}

func (p *CompilePassSemantics) leavePostOperatorStatement(n *ast.PostOperatorStatement) {
	p.popState(StatePostOpStatement)

	opname := p.program.AddString(n.Operator.Text)
	stmt := ir.NewPostOpStatement(p.poolIdentifiers(n.Operand), opname)

	switch p.topState() {
	case StateExpressionComponent, StateExpressionFragment:
		p.currentExpression().AddAtom(&ir.ExpressionAtomParenthetical{
			Parenthetical: &ir.ParentheticalPostOp{Statement: stmt},
		})

	case StateCodeBlock:
		p.currentCodeBlock().AddEntry(stmt)

	default:
		p.invalidState("post-operator statement exit")
	}
}

func (p *CompilePassSemantics) leaveAssignment(n *ast.Assignment) {
	p.popState(StateAssignment)

	switch p.topState() {
	case StateCodeBlock:
		assignment := p.assignments[len(p.assignments)-1]
		p.assignments = p.assignments[:len(p.assignments)-1]

		if assignment.RHS == nil {
			// The right-hand side never materialized; lowering for this
			// form is deliberately absent.
			panic(&errors.UnsupportedFeatureError{Feature: "assignment without a lowered right-hand side"})
		}
		p.currentCodeBlock().AddEntry(assignment)

	case StateAssignment:
		// A chain link; it was attached to the outer assignment on entry.

	default:
		p.invalidState("assignment exit")
	}
}

func (p *CompilePassSemantics) leaveInitialization() {
	p.popState(StateInitialization)

	init := p.initializations[len(p.initializations)-1]

	switch p.topState() {
	case StateCodeBlock:
		p.initializations = p.initializations[:len(p.initializations)-1]
		p.currentCodeBlock().AddEntry(init)

	case StateFunctionReturn:
		// Left in flight; the return marker exit consumes it.

	default:
		p.invalidState("initialization exit")
	}
}

func (p *CompilePassSemantics) leaveCodeBlock() {
	p.program.AllocateLexicalScopeName(p.currentCodeBlock())

	p.popState(StateCodeBlock)

	block := p.currentCodeBlock()
	p.codeBlocks = p.codeBlocks[:len(p.codeBlocks)-1]

	switch p.topState() {
	case StateCodeBlock:
		p.currentCodeBlock().AddEntry(block)

	case StateFunction:
		p.currentFunction().SetCode(block)

	case StateProgram:
		p.program.AddGlobalCodeBlock(block)

	case StateEntity:
		p.entities[len(p.entities)-1].SetCode(block)

	case StateChainedEntity:
		p.chainedEntities[len(p.chainedEntities)-1].SetCode(block)

	case StatePostfixEntity:
		p.postfixEntities[len(p.postfixEntities)-1].SetCode(block)

	default:
		p.invalidState("code block exit")
	}
}

func (p *CompilePassSemantics) leaveEntity() {
	p.popState(StateEntity)

	entity := p.entities[len(p.entities)-1]

	switch p.topState() {
	case StateCodeBlock:
		p.entities = p.entities[:len(p.entities)-1]
		p.currentCodeBlock().AddEntry(entity)

	default:
		p.invalidState("entity exit")
	}
}

func (p *CompilePassSemantics) leaveChainedEntity() {
	p.popState(StateChainedEntity)

	if p.topState() != StateEntity {
		p.invalidState("chained entity exit")
	}

	chained := p.chainedEntities[len(p.chainedEntities)-1]
	p.chainedEntities = p.chainedEntities[:len(p.chainedEntities)-1]
	p.entities[len(p.entities)-1].AddChain(chained)
}

func (p *CompilePassSemantics) leavePostfixEntity() {
	p.popState(StatePostfixEntity)

	entity := p.postfixEntities[len(p.postfixEntities)-1]

	switch p.topState() {
	case StateCodeBlock:
		p.postfixEntities = p.postfixEntities[:len(p.postfixEntities)-1]
		p.currentCodeBlock().AddEntry(entity)

	default:
		p.invalidState("postfix entity exit")
	}
}

func (p *CompilePassSemantics) leaveFunctionReturn() {
	if len(p.functions) == 0 {
		p.invalidState("function return exit")
	}

	fn := p.currentFunction()

	if len(p.expressions) > p.returnExprMark {
		fn.SetReturnExpression(p.popExpression())
	}
	if len(p.initializations) > p.returnInitMark {
		init := p.initializations[len(p.initializations)-1]
		p.initializations = p.initializations[:len(p.initializations)-1]
		fn.SetReturnInitialization(init)
	}

	p.popState(StateFunctionReturn)
	p.inFunctionReturn = false
}

func (p *CompilePassSemantics) poolIdentifiers(idents []ast.Identifier) []stringpool.Handle {
	handles := make([]stringpool.Handle, 0, len(idents))
	for _, id := range idents {
		handles = append(handles, p.program.AddString(id.Text))
	}
	return handles
}
