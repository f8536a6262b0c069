// Package semantic lowers a parsed AST into the typed intermediate
// representation. The pass is a single entry/exit traversal action driven
// by the AST walker: a stack of parse states plus per-kind stacks of
// in-flight IR objects. After lowering, three phases run in order:
// compile-time code execution, type inference, and validation.
package semantic

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/stringpool"
)

// CompilePassSemantics converts an AST into the semantic IR. One instance
// handles one program at a time; feeding it a second program before
// detaching the first reports a re-entrant AST.
type CompilePassSemantics struct {
	strings *stringpool.Pool
	session *ir.CompileSession

	// Errors is the diagnostic buffer the pass and its phases append to.
	Errors *errors.CompileErrors

	program *ir.Program

	states []State

	structures      []*ir.Structure
	functions       []*ir.Function
	expressions     []*ir.Expression
	assignments     []*ir.Assignment
	statements      []*ir.Statement
	codeBlocks      []*ir.CodeBlock
	entities        []*ir.Entity
	chainedEntities []*ir.Entity
	postfixEntities []*ir.Entity
	initializations []*ir.Initialization
	signatures      []*signatureBuilder
	structureFns    []*structureFnBuilder
	tags            []*ir.FunctionTag

	inFunctionReturn bool
	returnExprMark   int
	returnInitMark   int
}

// signatureBuilder accumulates a function-reference parameter while its
// marker regions are traversed.
type signatureBuilder struct {
	name  stringpool.Handle
	param *ir.FunctionParamFuncRef
}

// structureFnBuilder accumulates a structure function-reference member.
type structureFnBuilder struct {
	name   stringpool.Handle
	member *ir.StructureMemberFunctionRef
}

// NewCompilePassSemantics constructs the pass over a session.
func NewCompilePassSemantics(strings *stringpool.Pool, session *ir.CompileSession) *CompilePassSemantics {
	return &CompilePassSemantics{
		strings: strings,
		session: session,
		Errors:  &errors.CompileErrors{},
		states:  []State{StateUnknown},
	}
}

// DetachProgram releases the lowered program to the caller and readies the
// pass for another tree.
func (p *CompilePassSemantics) DetachProgram() *ir.Program {
	prog := p.program
	p.program = nil
	return prog
}

// CompileTimeCodeExecution runs phase one over the attached program.
func (p *CompilePassSemantics) CompileTimeCodeExecution() bool {
	if p.program == nil {
		return false
	}
	return p.program.CompileTimeCodeExecution(p.Errors)
}

// TypeInference runs phase two over the attached program.
func (p *CompilePassSemantics) TypeInference() bool {
	if p.program == nil {
		return false
	}
	return p.program.TypeInference(p.Errors)
}

// Validate runs phase three over the attached program.
func (p *CompilePassSemantics) Validate() bool {
	if p.program == nil {
		return false
	}
	return p.program.Validate(p.Errors)
}

// state stack helpers

func (p *CompilePassSemantics) pushState(s State) {
	p.states = append(p.states, s)
}

func (p *CompilePassSemantics) popState(expect State) {
	if len(p.states) == 0 {
		panic(errors.Internalf("state stack underflow popping %s", expect))
	}
	top := p.states[len(p.states)-1]
	if top != expect {
		panic(errors.Internalf("invalid parse state: expected %s, found %s", expect, top))
	}
	p.states = p.states[:len(p.states)-1]
}

func (p *CompilePassSemantics) topState() State {
	if len(p.states) == 0 {
		return StateUnknown
	}
	return p.states[len(p.states)-1]
}

func (p *CompilePassSemantics) invalidState(where string) {
	panic(errors.Internalf("invalid parse state: %s reached in state %s", where, p.topState()))
}

// in-flight object helpers; emptiness is always a traversal contract
// violation, so the accessors fault hard.

func (p *CompilePassSemantics) currentExpression() *ir.Expression {
	if len(p.expressions) == 0 {
		panic(errors.Internalf("no expression in flight"))
	}
	return p.expressions[len(p.expressions)-1]
}

func (p *CompilePassSemantics) popExpression() *ir.Expression {
	e := p.currentExpression()
	p.expressions = p.expressions[:len(p.expressions)-1]
	return e
}

func (p *CompilePassSemantics) currentStatement() *ir.Statement {
	if len(p.statements) == 0 {
		panic(errors.Internalf("no statement in flight"))
	}
	return p.statements[len(p.statements)-1]
}

func (p *CompilePassSemantics) currentFunction() *ir.Function {
	if len(p.functions) == 0 {
		panic(errors.Internalf("no function in flight"))
	}
	return p.functions[len(p.functions)-1]
}

func (p *CompilePassSemantics) currentCodeBlock() *ir.CodeBlock {
	if len(p.codeBlocks) == 0 {
		panic(errors.Internalf("no code block in flight"))
	}
	return p.codeBlocks[len(p.codeBlocks)-1]
}

// ValidateSemantics lowers a program and runs the three phases. On success
// the detached IR program is returned with the diagnostic buffer. A phase
// failure returns a nil program and the buffer. Fatal conditions (internal
// errors, re-entrant ASTs, unsupported features, exhausted arenas or
// handle spaces) are returned as the error value.
func ValidateSemantics(program *ast.Program, strings *stringpool.Pool, session *ir.CompileSession) (result *ir.Program, errs *errors.CompileErrors, fatal error) {
	pass := NewCompilePassSemantics(strings, session)
	return runPass(pass, program)
}

func runPass(pass *CompilePassSemantics, program *ast.Program) (result *ir.Program, errs *errors.CompileErrors, fatal error) {
	defer func() {
		if r := recover(); r != nil {
			if err := fatalFromPanic(r); err != nil {
				result = nil
				errs = pass.Errors
				fatal = err
				return
			}
			panic(r)
		}
	}()

	ast.Walk(pass, program)

	// Non-fatal diagnostics let the current stage finish best-effort but
	// stop the pass at the next transition.
	if pass.Errors.HasErrors() {
		return nil, pass.Errors, nil
	}
	if !pass.CompileTimeCodeExecution() || pass.Errors.HasErrors() {
		return nil, pass.Errors, nil
	}
	if !pass.TypeInference() || pass.Errors.HasErrors() {
		return nil, pass.Errors, nil
	}
	if !pass.Validate() || pass.Errors.HasErrors() {
		return nil, pass.Errors, nil
	}

	return pass.DetachProgram(), pass.Errors, nil
}

// fatalFromPanic maps recognized fatal panic payloads onto errors; any
// other payload propagates as a genuine crash.
func fatalFromPanic(r any) error {
	switch err := r.(type) {
	case *errors.InternalError:
		return err
	case *errors.ReentrantASTError:
		return err
	case *errors.UnsupportedFeatureError:
		return err
	case error:
		if err == ast.ErrArenaExhausted || err == stringpool.ErrHandlesExhausted {
			return err
		}
	}
	return nil
}
