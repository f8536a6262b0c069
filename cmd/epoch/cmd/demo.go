package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/source"
	"github.com/epochlang/go-epoch/pkg/epoch"
)

// demoSource is the program the demo command lowers. The AST below is the
// tree a parser would produce for it; the front end itself consumes ASTs,
// so the demo builds one in process.
const demoSource = `structure Point : integer x, integer y

sum : integer a, integer b -> integer ret = 0
{
	if(a > b)
	{
		ret = a
	}
	elseif(a < b)
	{
		ret = b
	}
	else
	{
		ret = a + b
	}
}

entrypoint :
{
	Point(origin, 0, 0)
	integer(total, 42)
}
`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Lower a built-in demo program and print its IR",
	Long: `Build the AST of a small demonstration program in process, run the
semantic pass over it, and print the resulting intermediate
representation together with any diagnostics.`,
	Run: func(cmd *cobra.Command, args []string) {
		runDemo()
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo() {
	compiler := epoch.New(demoSource, "demo.epoch")
	program := buildDemoProgram()

	fmt.Print("--- AST ---\n")
	fmt.Print(ast.Dump(program))

	result, errs, fatal := compiler.Compile(program)
	if fatal != nil {
		exitWithError("%v", fatal)
	}
	if result == nil {
		compilerErrors := errs.ToCompilerErrors(compiler.Session.Source)
		exitWithError("compilation failed:\n%s", errors.FormatErrors(compilerErrors, true))
	}

	fmt.Print("\n--- IR ---\n")
	fmt.Print(ir.Dump(result))

	if errs.Len() > 0 {
		fmt.Print("\n--- diagnostics ---\n")
		compilerErrors := errs.ToCompilerErrors(compiler.Session.Source)
		fmt.Println(errors.FormatErrors(compilerErrors, true))
	}
}

// demoIdent borrows the first occurrence of a token from the demo source.
func demoIdent(text string) source.Ident {
	off := strings.Index(demoSource, text)
	if off < 0 {
		off = 0
	}
	return source.Ident{Text: text, Off: off}
}

func demoVal(text string) *ast.ExpressionComponent {
	return &ast.ExpressionComponent{Value: ast.Identifier{Ident: demoIdent(text)}}
}

func demoExpr(text string) *ast.Expression {
	return &ast.Expression{First: demoVal(text)}
}

func demoBinary(lhs, op, rhs string) *ast.Expression {
	return &ast.Expression{
		First: demoVal(lhs),
		Remaining: []*ast.ExpressionFragment{
			{Operator: demoIdent(op), Component: demoVal(rhs)},
		},
	}
}

func demoAssign(target string, rhs *ast.Expression) *ast.Assignment {
	return ast.NewSimpleAssignment(ast.Identifier{Ident: demoIdent(target)}, demoIdent("="), rhs)
}

func buildDemoProgram() *ast.Program {
	structure := &ast.Structure{
		Identifier: demoIdent("Point"),
		Members: []ast.StructureMember{
			&ast.StructureMemberVariable{Type: demoIdent("integer"), Name: demoIdent("x")},
			&ast.StructureMemberVariable{Type: demoIdent("integer"), Name: demoIdent("y")},
		},
	}

	sum := &ast.Function{
		Name: demoIdent("sum"),
		Params: []ast.FunctionParameter{
			&ast.NamedFunctionParameter{Type: demoIdent("integer"), Name: demoIdent("a")},
			&ast.NamedFunctionParameter{Type: demoIdent("integer"), Name: demoIdent("b")},
		},
		Return: &ast.Expression{
			First: &ast.ExpressionComponent{
				Value: &ast.Statement{
					Identifier: demoIdent("integer"),
					Params: []*ast.Expression{
						demoExpr("ret"),
						demoExpr("0"),
					},
				},
			},
		},
		Code: &ast.CodeBlock{
			Entries: []ast.CodeBlockEntry{
				&ast.Entity{
					Identifier: demoIdent("if"),
					Parameters: []*ast.Expression{demoBinary("a", ">", "b")},
					Code: &ast.CodeBlock{
						Entries: []ast.CodeBlockEntry{demoAssign("ret", demoExpr("a"))},
					},
					Chain: []*ast.ChainedEntity{
						{
							Identifier: demoIdent("elseif"),
							Parameters: []*ast.Expression{demoBinary("a", "<", "b")},
							Code: &ast.CodeBlock{
								Entries: []ast.CodeBlockEntry{demoAssign("ret", demoExpr("b"))},
							},
						},
						{
							Identifier: demoIdent("else"),
							Code: &ast.CodeBlock{
								Entries: []ast.CodeBlockEntry{demoAssign("ret", demoBinary("a", "+", "b"))},
							},
						},
					},
				},
			},
		},
	}

	entrypoint := &ast.Function{
		Name: demoIdent("entrypoint"),
		Code: &ast.CodeBlock{
			Entries: []ast.CodeBlockEntry{
				&ast.Statement{
					Identifier: demoIdent("Point"),
					Params: []*ast.Expression{
						demoExpr("origin"),
						demoExpr("0"),
						demoExpr("0"),
					},
				},
				&ast.Statement{
					Identifier: demoIdent("integer"),
					Params: []*ast.Expression{
						demoExpr("total"),
						demoExpr("42"),
					},
				},
			},
		},
	}

	return &ast.Program{MetaEntities: []ast.MetaEntity{structure, sum, entrypoint}}
}
