package ir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/epochlang/go-epoch/internal/stringpool"
)

// Dump renders the program as a stable, indented textual tree. Overload
// sets print sorted by base name; everything else follows lowering order,
// so the output is deterministic for a given program.
func Dump(p *Program) string {
	d := &dumper{prog: p}
	d.program()
	return d.sb.String()
}

type dumper struct {
	prog   *Program
	sb     strings.Builder
	indent int
}

func (d *dumper) line(format string, args ...any) {
	d.sb.WriteString(strings.Repeat("  ", d.indent))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

func (d *dumper) nested(body func()) {
	d.indent++
	body()
	d.indent--
}

func (d *dumper) program() {
	d.line("program")
	d.nested(func() {
		for _, name := range d.prog.SumTypes() {
			bases := make([]string, 0, len(d.prog.SumTypeBases(name)))
			for _, base := range d.prog.SumTypeBases(name) {
				bases = append(bases, d.prog.GetString(base))
			}
			d.line("sum type %s = %s", d.prog.GetString(name), strings.Join(bases, " | "))
		}

		for _, s := range d.prog.Structures() {
			d.structure(s)
		}

		bases := d.prog.OverloadBases()
		sort.Strings(bases)
		for _, base := range bases {
			for _, overload := range d.prog.Overloads(base) {
				if fn, ok := d.prog.FunctionByOverload(overload); ok {
					d.function(fn)
				}
			}
		}

		for _, block := range d.prog.GlobalCodeBlocks() {
			d.line("global")
			d.nested(func() { d.codeBlock(block) })
		}
	})
}

func (d *dumper) structure(s *Structure) {
	d.line("structure %s", d.prog.GetString(s.Name))
	d.nested(func() {
		for _, entry := range s.Members {
			switch member := entry.Member.(type) {
			case *StructureMemberVariable:
				d.line("member %s : %s", d.prog.GetString(entry.Name), d.prog.GetString(member.Type))
			case *StructureMemberFunctionRef:
				params := make([]string, 0, len(member.ParamTypes))
				for _, pt := range member.ParamTypes {
					params = append(params, d.prog.GetString(pt))
				}
				ret := "void"
				if member.ReturnType != 0 {
					ret = d.prog.GetString(member.ReturnType)
				}
				d.line("member funcref %s (%s) -> %s", d.prog.GetString(entry.Name), strings.Join(params, ", "), ret)
			}
		}
	})
}

func (d *dumper) function(fn *Function) {
	d.line("function %s", d.prog.GetString(fn.Name))
	d.nested(func() {
		for _, entry := range fn.Params {
			switch param := entry.Param.(type) {
			case *FunctionParamNamed:
				ref := ""
				if param.IsReference {
					ref = " ref"
				}
				d.line("param %s : %s%s", d.prog.GetString(entry.Name), d.prog.GetString(param.Type), ref)
			case *FunctionParamExpression:
				d.line("param pattern %s", d.prog.GetString(entry.Name))
				d.nested(func() { d.expression(param.Expression) })
			case *FunctionParamFuncRef:
				params := make([]string, 0, len(param.ParamTypes))
				for _, pt := range param.ParamTypes {
					params = append(params, d.prog.GetString(pt))
				}
				ret := "void"
				if param.ReturnType != 0 {
					ret = d.prog.GetString(param.ReturnType)
				}
				d.line("param funcref %s (%s) -> %s", d.prog.GetString(entry.Name), strings.Join(params, ", "), ret)
			case *FunctionParamNothing:
				d.line("param nothing")
			}
		}

		if fn.Return != nil {
			d.line("return")
			d.nested(func() { d.expression(fn.Return) })
		}
		if fn.ReturnInit != nil {
			d.line("return initialization %s %s", d.prog.GetString(fn.ReturnInit.TypeName), d.prog.GetString(fn.ReturnInit.Name))
			d.nested(func() {
				for _, p := range fn.ReturnInit.Params {
					d.expression(p)
				}
			})
		}

		for _, tag := range fn.Tags {
			d.line("tag %s", d.prog.GetString(tag.Name))
		}

		if fn.Code != nil {
			d.line("block")
			d.nested(func() { d.codeBlock(fn.Code) })
		}
	})
}

func (d *dumper) codeBlock(b *CodeBlock) {
	for _, v := range b.Scope().Variables {
		if b.OwnsScope() || v.Origin == OriginGlobal {
			d.line("var %s : %s (%s)", v.Name, d.prog.Session.Types.NameOf(v.Type), v.Origin)
		}
	}
	for _, entry := range b.Entries {
		d.entry(entry)
	}
}

func (d *dumper) entry(entry CodeBlockEntry) {
	switch entry := entry.(type) {
	case *Statement:
		d.statement(entry)
	case *PreOpStatement:
		d.line("preop %s %s", d.prog.GetString(entry.OperatorName), d.accessChain(entry.Operand))
	case *PostOpStatement:
		d.line("postop %s %s", d.accessChain(entry.Operand), d.prog.GetString(entry.OperatorName))
	case *Assignment:
		d.assignment(entry)
	case *Entity:
		d.entity(entry)
	case *CodeBlock:
		d.line("block")
		d.nested(func() { d.codeBlock(entry) })
	case *Initialization:
		d.line("initialization %s %s", d.prog.GetString(entry.TypeName), d.prog.GetString(entry.Name))
		d.nested(func() {
			for _, p := range entry.Params {
				d.expression(p)
			}
		})
	}
}

func (d *dumper) statement(s *Statement) {
	d.line("statement %s", d.prog.GetString(s.Name))
	d.nested(func() {
		for _, p := range s.Params {
			d.expression(p)
		}
	})
}

func (d *dumper) assignment(a *Assignment) {
	d.line("assignment %s %s", d.accessChain(a.LHS), d.prog.GetString(a.OperatorName))
	d.nested(func() { d.chain(a.RHS) })
}

func (d *dumper) chain(chain AssignmentChain) {
	switch chain := chain.(type) {
	case *AssignmentChainExpression:
		d.expression(chain.Expression)
	case *AssignmentChainAssignment:
		d.assignment(chain.Assignment)
	case nil:
		d.line("(no rhs)")
	}
}

func (d *dumper) entity(e *Entity) {
	d.line("entity %s", d.prog.GetString(e.Name))
	d.nested(func() {
		for _, p := range e.Params {
			d.expression(p)
		}
		if e.Code != nil {
			d.line("block")
			d.nested(func() { d.codeBlock(e.Code) })
		}
		for _, chained := range e.Chain {
			d.line("chained")
			d.nested(func() { d.entity(chained) })
		}
		if e.PostfixName != 0 {
			d.line("postfix %s", d.prog.GetString(e.PostfixName))
			d.nested(func() {
				for _, p := range e.PostfixParams {
					d.expression(p)
				}
			})
		}
	})
}

func (d *dumper) expression(e *Expression) {
	d.line("expression : %s", d.prog.Session.Types.NameOf(e.Type()))
	d.nested(func() {
		for _, atom := range e.Atoms {
			d.atom(atom)
		}
	})
}

func (d *dumper) atom(atom ExpressionAtom) {
	switch atom := atom.(type) {
	case *ExpressionAtomIdentifier:
		d.line("identifier %s", d.prog.GetString(atom.Handle))
	case *ExpressionAtomIdentifierReference:
		d.line("identifier ref %s", d.prog.GetString(atom.Handle))
	case *ExpressionAtomOperator:
		if atom.IsMemberAccess {
			d.line("member-access %s", d.prog.GetString(atom.Handle))
		} else {
			d.line("operator %s", d.prog.GetString(atom.Handle))
		}
	case *ExpressionAtomLiteralInteger32:
		d.line("int32 %d", atom.Value)
	case *ExpressionAtomLiteralReal32:
		d.line("real32 %g", atom.Value)
	case *ExpressionAtomLiteralBoolean:
		d.line("boolean %t", atom.Value)
	case *ExpressionAtomLiteralString:
		d.line("string %q", d.prog.GetString(atom.Handle))
	case *ExpressionAtomStatement:
		d.statement(atom.Statement)
	case *ExpressionAtomParenthetical:
		d.line("parenthetical")
		d.nested(func() {
			switch p := atom.Parenthetical.(type) {
			case *ParentheticalExpression:
				d.expression(p.Expression)
			case *ParentheticalPreOp:
				d.line("preop %s %s", d.prog.GetString(p.Statement.OperatorName), d.accessChain(p.Statement.Operand))
			case *ParentheticalPostOp:
				d.line("postop %s %s", d.accessChain(p.Statement.Operand), d.prog.GetString(p.Statement.OperatorName))
			}
		})
	case *ExpressionAtomCopyFromStructure:
		d.line("copy-from-structure %s", d.prog.GetString(atom.Member))
	case *ExpressionAtomBindReference:
		d.line("bind-reference %s", d.prog.GetString(atom.Name))
	case *ExpressionAtomTypeAnnotation:
		d.line("type-annotation %s", d.prog.Session.Types.NameOf(atom.Type))
	case *ExpressionAtomTempReferenceFromRegister:
		d.line("temp-reference")
	}
}

func (d *dumper) accessChain(chain []stringpool.Handle) string {
	parts := make([]string, 0, len(chain))
	for _, h := range chain {
		parts = append(parts, d.prog.GetString(h))
	}
	return strings.Join(parts, ".")
}
