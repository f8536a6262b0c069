package semantic_test

import (
	"strings"
	"testing"

	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/semantic"
	"github.com/epochlang/go-epoch/internal/types"
	"github.com/epochlang/go-epoch/pkg/epoch"
)

func compileOK(t *testing.T, prog *ast.Program) (*epoch.Compiler, *ir.Program) {
	t.Helper()

	compiler := epoch.New("", "test.epoch")
	result, errs, fatal := compiler.Compile(prog)
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if result == nil {
		t.Fatalf("compilation failed:\n%+v", errs.Entries())
	}
	if errs.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", errs.Entries())
	}
	return compiler, result
}

func firstFunction(t *testing.T, compiler *epoch.Compiler, result *ir.Program, base string) *ir.Function {
	t.Helper()

	overloads := result.Overloads(base)
	if len(overloads) == 0 {
		t.Fatalf("no overloads recorded for %q", base)
	}
	fn, ok := result.FunctionByOverload(overloads[0])
	if !ok {
		t.Fatalf("overload handle for %q has no function", base)
	}
	return fn
}

func TestLower_EmptyProgram(t *testing.T) {
	_, result := compileOK(t, program())

	if len(result.Structures()) != 0 {
		t.Error("empty program lowered structures")
	}
	if len(result.Functions()) != 0 {
		t.Error("empty program lowered functions")
	}
	if len(result.GlobalCodeBlocks()) != 0 {
		t.Error("empty program lowered a global code block")
	}
}

func TestLower_SimpleFunction(t *testing.T) {
	compiler, result := compileOK(t, program(fn("main")))

	main := firstFunction(t, compiler, result, "main")
	if main.Code == nil {
		t.Fatal("function has no code block")
	}
	if !main.Code.OwnsScope() {
		t.Error("function body must own a fresh scope")
	}
	if main.Code.Scope().Parent() != result.GlobalScope() {
		t.Error("function scope must parent on the global scope")
	}
	if len(main.Code.Entries) != 0 {
		t.Errorf("empty function lowered %d entries", len(main.Code.Entries))
	}
	if main.Return != nil {
		t.Error("void function lowered a return expression")
	}
}

func TestLower_StructureAndConstructor(t *testing.T) {
	structure := &ast.Structure{
		Identifier: id("Point"),
		Members: []ast.StructureMember{
			&ast.StructureMemberVariable{Type: id("integer"), Name: id("x")},
			&ast.StructureMemberVariable{Type: id("integer"), Name: id("y")},
		},
	}
	body := fn("f", call("Point", expr("p"), expr("1"), expr("2")))

	compiler, result := compileOK(t, program(structure, body))

	if len(result.Structures()) != 1 {
		t.Fatalf("lowered %d structures, want 1", len(result.Structures()))
	}
	point := result.Structures()[0]
	if len(point.Members) != 2 {
		t.Fatalf("structure has %d members, want 2", len(point.Members))
	}

	f := firstFunction(t, compiler, result, "f")
	pHandle, ok := compiler.Pool.Lookup("p")
	if !ok {
		t.Fatal("variable name was never pooled")
	}
	v, found := f.Code.Scope().Lookup(pHandle)
	if !found {
		t.Fatal("constructor did not add 'p' to the function scope")
	}
	if v.Type != point.TypeID {
		t.Errorf("p has type %v, want the structure type %v", v.Type, point.TypeID)
	}
	if v.Origin != ir.OriginLocal {
		t.Errorf("p has origin %v, want local", v.Origin)
	}
}

func TestLower_ChainedEntity(t *testing.T) {
	body := fn("g",
		define("boolean", "a", "true"),
		define("boolean", "b", "false"),
		&ast.Entity{
			Identifier: id("if"),
			Parameters: []*ast.Expression{expr("a")},
			Code:       &ast.CodeBlock{Entries: []ast.CodeBlockEntry{define("integer", "x", "1")}},
			Chain: []*ast.ChainedEntity{
				{
					Identifier: id("elseif"),
					Parameters: []*ast.Expression{expr("b")},
					Code:       &ast.CodeBlock{Entries: []ast.CodeBlockEntry{define("integer", "y", "2")}},
				},
				{
					Identifier: id("else"),
					Code:       &ast.CodeBlock{Entries: []ast.CodeBlockEntry{define("integer", "z", "3")}},
				},
			},
		},
	)

	compiler, result := compileOK(t, program(body))

	g := firstFunction(t, compiler, result, "g")
	if len(g.Code.Entries) != 3 {
		t.Fatalf("function body has %d entries, want 3", len(g.Code.Entries))
	}

	entity, ok := g.Code.Entries[2].(*ir.Entity)
	if !ok {
		t.Fatalf("third entry is %T, want an entity", g.Code.Entries[2])
	}
	if entity.Tag != epoch.TagIf {
		t.Errorf("entity tag = %v, want the if tag", entity.Tag)
	}
	if len(entity.Chain) != 2 {
		t.Fatalf("entity chain has %d links, want 2", len(entity.Chain))
	}

	if result.Session.Strings.GetPooledString(entity.Chain[0].Name) != "elseif" {
		t.Error("chain order broken: elseif must come first")
	}
	if result.Session.Strings.GetPooledString(entity.Chain[1].Name) != "else" {
		t.Error("chain order broken: else must come last")
	}
	for i, link := range entity.Chain {
		if link.Code == nil {
			t.Errorf("chain link %d has no owned code block", i)
		} else if !link.Code.OwnsScope() {
			t.Errorf("chain link %d borrows its scope", i)
		}
	}
}

func TestLower_ChainedAssignment(t *testing.T) {
	inner := assign("b", expr("42"))
	body := fn("h",
		define("integer", "a", "0"),
		define("integer", "b", "0"),
		assign("a", inner),
	)

	compiler, result := compileOK(t, program(body))

	h := firstFunction(t, compiler, result, "h")
	assignment, ok := h.Code.Entries[2].(*ir.Assignment)
	if !ok {
		t.Fatalf("third entry is %T, want an assignment", h.Code.Entries[2])
	}
	if len(assignment.LHS) < 1 {
		t.Fatal("assignment lost its target")
	}

	chain, ok := assignment.RHS.(*ir.AssignmentChainAssignment)
	if !ok {
		t.Fatalf("outer RHS is %T, want a chained assignment", assignment.RHS)
	}
	terminal, ok := chain.Assignment.RHS.(*ir.AssignmentChainExpression)
	if !ok {
		t.Fatalf("inner RHS is %T, want the terminal expression", chain.Assignment.RHS)
	}

	if len(terminal.Expression.Atoms) != 1 {
		t.Fatalf("terminal expression has %d atoms, want 1", len(terminal.Expression.Atoms))
	}
	lit, ok := terminal.Expression.Atoms[0].(*ir.ExpressionAtomLiteralInteger32)
	if !ok || lit.Value != 42 {
		t.Errorf("terminal atom = %#v, want int32 42", terminal.Expression.Atoms[0])
	}
}

func TestLower_LiteralClassification(t *testing.T) {
	// Lowering only: the statement is not resolvable, so the phases are
	// not run. Each parameter expression carries one identifier span that
	// classification must turn into the right atom.
	body := fn("lits",
		call("print",
			expr("true"), expr("false"), expr("3.14"), expr("42"), expr(`"hello"`), expr("foo")),
	)

	compiler := epoch.New("", "test.epoch")
	pass := semantic.NewCompilePassSemantics(compiler.Pool, compiler.Session)
	ast.Walk(pass, program(body))
	result := pass.DetachProgram()
	if result == nil {
		t.Fatal("lowering produced no program")
	}

	lits := firstFunction(t, compiler, result, "lits")
	stmt, ok := lits.Code.Entries[0].(*ir.Statement)
	if !ok {
		t.Fatalf("entry is %T, want a statement", lits.Code.Entries[0])
	}
	if len(stmt.Params) != 6 {
		t.Fatalf("statement has %d params, want 6", len(stmt.Params))
	}

	atom := func(i int) ir.ExpressionAtom { return stmt.Params[i].Atoms[0] }

	if b, ok := atom(0).(*ir.ExpressionAtomLiteralBoolean); !ok || !b.Value {
		t.Errorf("param 0 = %#v, want boolean true", atom(0))
	}
	if b, ok := atom(1).(*ir.ExpressionAtomLiteralBoolean); !ok || b.Value {
		t.Errorf("param 1 = %#v, want boolean false", atom(1))
	}
	if r, ok := atom(2).(*ir.ExpressionAtomLiteralReal32); !ok || r.Value != 3.14 {
		t.Errorf("param 2 = %#v, want real 3.14", atom(2))
	}
	if n, ok := atom(3).(*ir.ExpressionAtomLiteralInteger32); !ok || n.Value != 42 {
		t.Errorf("param 3 = %#v, want int32 42", atom(3))
	}
	if s, ok := atom(4).(*ir.ExpressionAtomLiteralString); !ok || result.GetString(s.Handle) != "hello" {
		t.Errorf("param 4 = %#v, want pooled string literal", atom(4))
	}
	if v, ok := atom(5).(*ir.ExpressionAtomIdentifier); !ok || result.GetString(v.Handle) != "foo" {
		t.Errorf("param 5 = %#v, want identifier foo", atom(5))
	}
}

func TestLower_ReentrantAST(t *testing.T) {
	compiler := epoch.New("", "test.epoch")
	pass := semantic.NewCompilePassSemantics(compiler.Pool, compiler.Session)

	ast.Walk(pass, program())

	defer func() {
		if _, ok := recover().(*errors.ReentrantASTError); !ok {
			t.Error("expected a re-entrant AST fault for the second program")
		}
	}()
	ast.Walk(pass, program())
}

func TestLower_PatternMatchedParameter(t *testing.T) {
	matched := &ast.Function{
		Name:   id("fact"),
		Params: []ast.FunctionParameter{expr("1")},
		Code:   &ast.CodeBlock{},
	}

	compiler, result := compileOK(t, program(matched))

	fact := firstFunction(t, compiler, result, "fact")
	if len(fact.Params) != 1 {
		t.Fatalf("function has %d params, want 1", len(fact.Params))
	}
	pattern, ok := fact.Params[0].Param.(*ir.FunctionParamExpression)
	if !ok {
		t.Fatalf("param is %T, want a pattern expression", fact.Params[0].Param)
	}
	if pattern.Expression.Type() != types.Integer32 {
		t.Errorf("pattern type = %v, want integer", pattern.Expression.Type())
	}
	if !strings.Contains(result.GetString(fact.Params[0].Name), "@@") {
		t.Error("pattern parameter should receive an internal anonymous name")
	}
}

func TestLower_PostfixEntity(t *testing.T) {
	body := fn("loop",
		define("boolean", "flag", "true"),
		&ast.PostfixEntity{
			Identifier:        id("do"),
			Code:              &ast.CodeBlock{Entries: []ast.CodeBlockEntry{define("integer", "i", "0")}},
			PostfixIdentifier: id("while"),
			PostfixParameters: []*ast.Expression{expr("flag")},
		},
	)

	compiler, result := compileOK(t, program(body))

	loop := firstFunction(t, compiler, result, "loop")
	entity, ok := loop.Code.Entries[1].(*ir.Entity)
	if !ok {
		t.Fatalf("second entry is %T, want an entity", loop.Code.Entries[1])
	}
	if result.GetString(entity.PostfixName) != "while" {
		t.Errorf("postfix closer = %q, want while", result.GetString(entity.PostfixName))
	}
	if entity.PostfixTag != epoch.TagDoWhileCloser {
		t.Errorf("postfix tag = %v, want the do/while closer tag", entity.PostfixTag)
	}
	if len(entity.PostfixParams) != 1 {
		t.Errorf("postfix closer has %d params, want 1", len(entity.PostfixParams))
	}
	if len(entity.Params) != 0 {
		t.Errorf("leading parameter list has %d entries, want 0", len(entity.Params))
	}
}

func TestLower_FunctionTags(t *testing.T) {
	tagged := &ast.Function{
		Name: id("native"),
		Tags: []*ast.FunctionTag{{Name: id("external")}},
		Code: &ast.CodeBlock{},
	}

	compiler, result := compileOK(t, program(tagged))

	native := firstFunction(t, compiler, result, "native")
	if len(native.Tags) != 1 {
		t.Fatalf("function has %d tags, want 1", len(native.Tags))
	}
	if native.Tags[0].InvokeRuntime != "marshalexternal" {
		t.Errorf("tag helper did not record the runtime invocation: %q", native.Tags[0].InvokeRuntime)
	}
}

func TestLower_UnknownTagFailsValidation(t *testing.T) {
	tagged := &ast.Function{
		Name: id("odd"),
		Tags: []*ast.FunctionTag{{Name: id("nosuchtag")}},
		Code: &ast.CodeBlock{},
	}

	compiler := epoch.New("", "test.epoch")
	result, errs, fatal := compiler.Compile(program(tagged))
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if result != nil {
		t.Fatal("validation should have rejected the unknown tag")
	}

	found := false
	for _, e := range errs.Entries() {
		if e.Kind == errors.KindUnknownTag {
			found = true
		}
	}
	if !found {
		t.Errorf("no unknown-tag diagnostic recorded: %+v", errs.Entries())
	}
}

func TestLower_UndefinedMetaEntityIsFatal(t *testing.T) {
	compiler := epoch.New("", "test.epoch")

	result, _, fatal := compiler.Compile(program(ast.Undefined{}))
	if result != nil {
		t.Fatal("undefined meta-entity must not lower")
	}
	if _, ok := fatal.(*errors.InternalError); !ok {
		t.Errorf("fatal = %v (%T), want an internal error", fatal, fatal)
	}
}

func TestLower_ParentheticalExpression(t *testing.T) {
	// x = (y + 1) * 2
	paren := &ast.Expression{
		First: &ast.ExpressionComponent{Value: binary("y", "+", "1")},
		Remaining: []*ast.ExpressionFragment{
			{Operator: id("*"), Component: val("2")},
		},
	}
	body := fn("calc",
		define("integer", "x", "0"),
		define("integer", "y", "0"),
		assign("x", paren),
	)

	compiler, result := compileOK(t, program(body))

	calc := firstFunction(t, compiler, result, "calc")
	assignment := calc.Code.Entries[2].(*ir.Assignment)
	terminal := assignment.RHS.(*ir.AssignmentChainExpression)

	if len(terminal.Expression.Atoms) != 3 {
		t.Fatalf("expression has %d atoms, want 3", len(terminal.Expression.Atoms))
	}
	parenAtom, ok := terminal.Expression.Atoms[0].(*ir.ExpressionAtomParenthetical)
	if !ok {
		t.Fatalf("first atom is %T, want a parenthetical", terminal.Expression.Atoms[0])
	}
	if _, ok := parenAtom.Parenthetical.(*ir.ParentheticalExpression); !ok {
		t.Errorf("parenthetical payload is %T, want an expression", parenAtom.Parenthetical)
	}
	if terminal.Expression.Type() != types.Integer32 {
		t.Errorf("expression type = %v, want integer", terminal.Expression.Type())
	}
}

func TestLower_PreOpStatement(t *testing.T) {
	body := fn("bump",
		define("integer", "counter", "0"),
		&ast.PreOperatorStatement{
			Operator: id("++"),
			Operand:  []ast.Identifier{{Ident: id("counter")}},
		},
	)

	compiler, result := compileOK(t, program(body))

	bump := firstFunction(t, compiler, result, "bump")
	preop, ok := bump.Code.Entries[1].(*ir.PreOpStatement)
	if !ok {
		t.Fatalf("second entry is %T, want a pre-operator statement", bump.Code.Entries[1])
	}
	if preop.Type() != types.Integer32 {
		t.Errorf("pre-op type = %v, want integer", preop.Type())
	}
}

func TestLower_GlobalCodeBlock(t *testing.T) {
	global := &ast.CodeBlock{
		Entries: []ast.CodeBlockEntry{define("integer", "g", "1")},
	}

	compiler, result := compileOK(t, program(global))

	blocks := result.GlobalCodeBlocks()
	if len(blocks) != 1 {
		t.Fatalf("lowered %d global blocks, want 1", len(blocks))
	}
	if blocks[0].OwnsScope() {
		t.Error("global block must borrow the global scope, not own one")
	}
	if blocks[0].Scope() != result.GlobalScope() {
		t.Error("global block is not using the program's global scope")
	}

	gHandle, _ := compiler.Pool.Lookup("g")
	if _, found := result.GlobalScope().Lookup(gHandle); !found {
		t.Error("compile-time execution did not add the global variable")
	}
}

func TestLower_TypeErrorFailsInference(t *testing.T) {
	body := fn("broken",
		assign("missing", expr("1")),
	)

	compiler := epoch.New("", "test.epoch")
	result, errs, fatal := compiler.Compile(program(body))
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if result != nil {
		t.Fatal("unbound assignment target must fail the pass")
	}
	if !errs.HasErrors() {
		t.Error("no diagnostics recorded for the unbound identifier")
	}
}
