package ast

import (
	"fmt"
	"strings"

	"github.com/epochlang/go-epoch/internal/source"
)

// Dump renders the program as a stable, indented textual tree. The output
// is deterministic for a given tree and is snapshot-tested alongside the IR
// dump of the lowered program.
func Dump(program *Program) string {
	d := &dumper{}
	Walk(d, program)
	return d.sb.String()
}

type dumper struct {
	sb     strings.Builder
	indent int
}

func (d *dumper) line(format string, args ...any) {
	d.sb.WriteString(strings.Repeat("  ", d.indent))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

func (d *dumper) Enter(n Node) {
	switch n := n.(type) {
	case *Program:
		d.line("program")
	case Undefined:
		d.line("(undefined)")
	case Identifier:
		d.line("identifier %s", n.Text)
	case Literal:
		d.line("literal %s", FormatLiteral(n.Token))
	case *Structure:
		d.line("structure %s", n.Identifier.Text)
	case *TypeAlias:
		d.line("type alias %s = %s", n.AliasName.Text, n.RepresentationName.Text)
	case *StrongTypeAlias:
		d.line("strong type alias %s = %s", n.AliasName.Text, n.RepresentationName.Text)
	case *SumType:
		d.line("sum type %s", n.Name.Text)
	case *StructureMemberVariable:
		d.line("member %s : %s", n.Name.Text, n.Type.Text)
	case *StructureMemberFunctionRef:
		d.line("member funcref %s", n.Name.Text)
	case *Function:
		d.line("function %s", n.Name.Text)
	case *NamedFunctionParameter:
		if n.IsReference {
			d.line("param %s : %s ref", n.Name.Text, n.Type.Text)
		} else {
			d.line("param %s : %s", n.Name.Text, n.Type.Text)
		}
	case Nothing:
		d.line("param nothing")
	case *FunctionReferenceSignature:
		d.line("param funcref %s", n.Identifier.Text)
	case *FunctionTag:
		d.line("tag %s", n.Name.Text)
	case *Expression:
		d.line("expression")
	case *ExpressionComponent:
		d.line("component")
	case *ExpressionFragment:
		d.line("fragment %s", n.Operator.Text)
	case *Statement:
		d.line("statement %s", n.Identifier.Text)
	case *PreOperatorStatement:
		d.line("preop %s", n.Operator.Text)
	case *PostOperatorStatement:
		d.line("postop %s", n.Operator.Text)
	case *Assignment:
		d.line("assignment %s", n.Operator.Text)
	case *Initialization:
		d.line("initialization %s %s", n.TypeSpecifier.Text, n.Name.Text)
	case *CodeBlock:
		d.line("block")
	case *Entity:
		d.line("entity %s", n.Identifier.Text)
	case *ChainedEntity:
		d.line("chained entity %s", n.Identifier.Text)
	case *PostfixEntity:
		d.line("postfix entity %s / %s", n.Identifier.Text, n.PostfixIdentifier.Text)
	case FunctionReturnExpression:
		d.line("return")
	case ExpressionComponentPrefixes:
		d.line("prefixes")
	case FunctionSignatureParams:
		d.line("signature params")
	case FunctionSignatureReturn:
		d.line("signature return")
	case StructureFunctionParams:
		d.line("funcref params")
	case StructureFunctionReturn:
		d.line("funcref return")
	default:
		d.line("(unknown %T)", n)
	}
	d.indent++
}

func (d *dumper) Leave(n Node) {
	d.indent--
}

// FormatLiteral renders a literal token the way the dump and diagnostics
// print it.
func FormatLiteral(tok source.LiteralToken) string {
	switch tok := tok.(type) {
	case source.IntegerLiteral:
		return fmt.Sprintf("%d", tok.Value)
	case source.UIntegerLiteral:
		return fmt.Sprintf("%d", tok.Value)
	case source.RealLiteral:
		return fmt.Sprintf("%g", tok.Value)
	case source.StringLiteral:
		return fmt.Sprintf("%q", tok.Value.Text)
	case source.BooleanLiteral:
		if tok.Value {
			return "true"
		}
		return "false"
	case source.UndefinedLiteral, nil:
		return "(undefined)"
	default:
		return fmt.Sprintf("(unknown literal %T)", tok)
	}
}
