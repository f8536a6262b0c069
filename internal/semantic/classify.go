package semantic

import (
	"strconv"
	"strings"

	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/source"
)

// enterIdentifier handles an identifier reaching the pass. Identifiers are
// not always leaves of interest: depending on the current state they are
// literal-classified into expression atoms, recorded as unary prefix
// operators, collected into signature type lists, or ignored because the
// enclosing node's handler already read them.
func (p *CompilePassSemantics) enterIdentifier(n ast.Identifier) {
	p.Errors.SetContext(n.Ident)

	switch p.topState() {
	case StateExpressionComponent, StateExpressionFragment:
		if atom, ok := p.classifyIdentifier(n.Ident); ok {
			p.currentExpression().AddAtom(atom)
		}

	case StateExpressionComponentPrefixes:
		p.currentExpression().AddAtom(&ir.ExpressionAtomOperator{
			Handle: p.program.AddString(n.Text),
		})

	case StateFunction:
		// The identifier names the function being lowered.
		p.currentFunction().SetName(p.program.AddString(n.Text))

	case StateAssignment:
		// Left-hand identifiers; the assignment's entry handler already
		// pooled them.

	case StatePreOpStatement, StatePostOpStatement:
		// Operand chain; the statement's exit handler reads it whole.

	case StateChainedEntity:
		// The chain name; the entity's entry handler already read it.

	case StatePostfixEntity:
		// The closing identifier of a postfix entity.
		entity := p.postfixEntities[len(p.postfixEntities)-1]
		entity.PostfixName = p.program.AddString(n.Text)

	case StateFunctionSignatureParams:
		builder := p.signatures[len(p.signatures)-1]
		builder.param.ParamTypes = append(builder.param.ParamTypes, p.program.AddString(n.Text))

	case StateFunctionSignatureReturn:
		p.signatures[len(p.signatures)-1].param.ReturnType = p.program.AddString(n.Text)

	case StateStructureFunctionParams:
		builder := p.structureFns[len(p.structureFns)-1]
		builder.member.ParamTypes = append(builder.member.ParamTypes, p.program.AddString(n.Text))

	case StateStructureFunctionReturn:
		p.structureFns[len(p.structureFns)-1].member.ReturnType = p.program.AddString(n.Text)

	default:
		p.invalidState("identifier")
	}
}

// classifyIdentifier inspects the identifier's text and produces the
// matching expression atom: a quoted string, a boolean keyword, a real
// (contains a point), an integer, or failing all of those, a variable
// identifier. A token that looks like a literal but fails to parse is a
// diagnostic, not an atom.
func (p *CompilePassSemantics) classifyIdentifier(id source.Ident) (ir.ExpressionAtom, bool) {
	raw := id.Text

	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		handle := p.program.AddString(raw[1 : len(raw)-1])
		return &ir.ExpressionAtomLiteralString{Handle: handle}, true
	}

	if raw == "true" {
		return &ir.ExpressionAtomLiteralBoolean{Value: true}, true
	}
	if raw == "false" {
		return &ir.ExpressionAtomLiteralBoolean{Value: false}, true
	}

	if strings.ContainsRune(raw, '.') {
		value, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			p.Errors.AddErrorAt(id, errors.KindLiteralParseError,
				"invalid floating point literal '%s'", raw)
			return nil, false
		}
		return &ir.ExpressionAtomLiteralReal32{Value: float32(value)}, true
	}

	if value, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return &ir.ExpressionAtomLiteralInteger32{Value: int32(uint32(value))}, true
	}

	return &ir.ExpressionAtomIdentifier{Handle: p.program.AddString(raw)}, true
}

// enterLiteral handles a literal token the parser captured directly.
func (p *CompilePassSemantics) enterLiteral(n ast.Literal) {
	switch p.topState() {
	case StateExpressionComponent, StateExpressionFragment:
		if atom, ok := p.literalAtom(n.Token); ok {
			p.currentExpression().AddAtom(atom)
		}

	case StateFunctionTag:
		// Tag parameters; the tag's entry handler captured the list.

	default:
		p.invalidState("literal token")
	}
}

func (p *CompilePassSemantics) literalAtom(tok source.LiteralToken) (ir.ExpressionAtom, bool) {
	switch tok := tok.(type) {
	case source.IntegerLiteral:
		return &ir.ExpressionAtomLiteralInteger32{Value: tok.Value}, true
	case source.UIntegerLiteral:
		return &ir.ExpressionAtomLiteralInteger32{Value: int32(tok.Value)}, true
	case source.RealLiteral:
		return &ir.ExpressionAtomLiteralReal32{Value: tok.Value}, true
	case source.BooleanLiteral:
		return &ir.ExpressionAtomLiteralBoolean{Value: tok.Value}, true
	case source.StringLiteral:
		return &ir.ExpressionAtomLiteralString{Handle: p.program.AddString(tok.Value.Text)}, true
	case source.UndefinedLiteral:
		p.Errors.AddError(errors.KindLiteralParseError, "undefined literal token in expression")
		return nil, false
	default:
		return nil, false
	}
}
