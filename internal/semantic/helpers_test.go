package semantic_test

import (
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/source"
)

// AST construction helpers shared by the lowering tests. Identifier spans
// reference synthetic offsets; the tests that exercise diagnostics build
// real buffers instead.

func id(text string) source.Ident {
	return source.Ident{Text: text}
}

func val(text string) *ast.ExpressionComponent {
	return &ast.ExpressionComponent{Value: ast.Identifier{Ident: id(text)}}
}

func expr(text string) *ast.Expression {
	return &ast.Expression{First: val(text)}
}

func binary(lhs, op, rhs string) *ast.Expression {
	return &ast.Expression{
		First: val(lhs),
		Remaining: []*ast.ExpressionFragment{
			{Operator: id(op), Component: val(rhs)},
		},
	}
}

func assign(target string, rhs ast.ExpressionOrAssignment) *ast.Assignment {
	return ast.NewSimpleAssignment(ast.Identifier{Ident: id(target)}, id("="), rhs)
}

func call(name string, params ...*ast.Expression) *ast.Statement {
	return &ast.Statement{Identifier: id(name), Params: params}
}

// define builds the variable-definition statement form, e.g.
// integer(counter, 0).
func define(typeName, varName, value string) *ast.Statement {
	return call(typeName, expr(varName), expr(value))
}

func fn(name string, body ...ast.CodeBlockEntry) *ast.Function {
	return &ast.Function{
		Name: id(name),
		Code: &ast.CodeBlock{Entries: body},
	}
}

func program(entities ...ast.MetaEntity) *ast.Program {
	return &ast.Program{MetaEntities: entities}
}
