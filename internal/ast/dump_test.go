package ast

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/epochlang/go-epoch/internal/source"
)

func TestDump_IsDeterministic(t *testing.T) {
	program := dumpFixture()

	first := Dump(program)
	second := Dump(program)

	if first != second {
		t.Error("dumping the same tree twice produced different output")
	}
}

func TestDump_Snapshot(t *testing.T) {
	snaps.MatchSnapshot(t, Dump(dumpFixture()))
}

func TestDump_RendersEveryNodeKind(t *testing.T) {
	out := Dump(dumpFixture())

	for _, want := range []string{
		"structure Point",
		"member x : integer",
		"function compare",
		"param a : integer",
		"return",
		"entity if",
		"chained entity else",
		"assignment =",
		"statement print",
		"literal 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q:\n%s", want, out)
		}
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		name string
		tok  source.LiteralToken
		want string
	}{
		{"integer", source.IntegerLiteral{Value: 42}, "42"},
		{"unsigned", source.UIntegerLiteral{Value: 7}, "7"},
		{"real", source.RealLiteral{Value: 2.5}, "2.5"},
		{"boolean true", source.BooleanLiteral{Value: true}, "true"},
		{"boolean false", source.BooleanLiteral{Value: false}, "false"},
		{"string", source.StringLiteral{Value: source.Ident{Text: "hi"}}, `"hi"`},
		{"undefined", source.UndefinedLiteral{}, "(undefined)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLiteral(tt.tok); got != tt.want {
				t.Errorf("FormatLiteral() = %q, want %q", got, tt.want)
			}
		})
	}
}

func dumpFixture() *Program {
	id := func(text string) source.Ident { return source.Ident{Text: text} }
	val := func(text string) *ExpressionComponent {
		return &ExpressionComponent{Value: Identifier{Ident: id(text)}}
	}
	expr := func(text string) *Expression {
		return &Expression{First: val(text)}
	}

	structure := &Structure{
		Identifier: id("Point"),
		Members: []StructureMember{
			&StructureMemberVariable{Type: id("integer"), Name: id("x")},
			&StructureMemberVariable{Type: id("integer"), Name: id("y")},
			&StructureMemberFunctionRef{
				Name:       id("transform"),
				ParamTypes: []source.Ident{id("integer")},
				ReturnType: id("integer"),
			},
		},
	}

	fn := &Function{
		Name: id("compare"),
		Params: []FunctionParameter{
			&NamedFunctionParameter{Type: id("integer"), Name: id("a")},
			&NamedFunctionParameter{Type: id("integer"), Name: id("b")},
		},
		Return: Undefined{},
		Code: &CodeBlock{
			Entries: []CodeBlockEntry{
				&Entity{
					Identifier: id("if"),
					Parameters: []*Expression{
						{
							First: val("a"),
							Remaining: []*ExpressionFragment{
								{Operator: id("<"), Component: val("b")},
							},
						},
					},
					Code: &CodeBlock{
						Entries: []CodeBlockEntry{
							NewSimpleAssignment(Identifier{Ident: id("a")}, id("="), expr("b")),
						},
					},
					Chain: []*ChainedEntity{
						{
							Identifier: id("else"),
							Code: &CodeBlock{
								Entries: []CodeBlockEntry{
									&Statement{
										Identifier: id("print"),
										Params: []*Expression{
											{First: &ExpressionComponent{Value: Literal{Token: source.IntegerLiteral{Value: 3}}}},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	return &Program{MetaEntities: []MetaEntity{structure, fn}}
}
