package ir

import (
	"github.com/epochlang/go-epoch/errors"
)

// validator runs the independent structural predicates of the final phase:
// every expression typed, every statement callable, every assignment
// target assignable, every entity tag registered, and every overload set
// internally consistent.
type validator struct {
	prog *Program
	errs *errors.CompileErrors
}

func (v *validator) program() bool {
	ok := true

	for _, block := range v.prog.GlobalCodeBlocks() {
		if !v.codeBlock(block) {
			ok = false
		}
	}
	for _, fn := range v.prog.Functions() {
		if !v.function(fn) {
			ok = false
		}
	}
	if !v.overloadSets() {
		ok = false
	}
	if !v.sumTypes() {
		ok = false
	}
	return ok
}

// sumTypes checks every sum type base resolves to a known type; bases may
// reference structures declared after the sum type, which is why the check
// waits for the whole program.
func (v *validator) sumTypes() bool {
	ok := true
	for _, name := range v.prog.SumTypes() {
		for _, base := range v.prog.SumTypeBases(name) {
			if _, known := v.prog.Session.Types.Lookup(v.prog.GetString(base)); !known {
				v.errs.AddError(errors.KindTypeError,
					"sum type '%s' has unknown base type '%s'",
					v.prog.GetString(name), v.prog.GetString(base))
				ok = false
			}
		}
	}
	return ok
}

func (v *validator) function(fn *Function) bool {
	ok := true
	if fn.Return != nil && !v.expression(fn.Return) {
		ok = false
	}
	for _, entry := range fn.Params {
		if pattern, isPattern := entry.Param.(*FunctionParamExpression); isPattern {
			if !v.expression(pattern.Expression) {
				ok = false
			}
		}
	}
	for _, tag := range fn.Tags {
		if !v.tag(tag) {
			ok = false
		}
	}
	if fn.Code != nil && !v.codeBlock(fn.Code) {
		ok = false
	}
	return ok
}

func (v *validator) tag(tag *FunctionTag) bool {
	helper, known := v.prog.Session.TagHelpers[v.prog.GetString(tag.Name)]
	if !known {
		v.errs.AddErrorAt(tag.Ident, errors.KindUnknownTag,
			"unknown function tag '%s'", v.prog.GetString(tag.Name))
		return false
	}
	if invoke, emit := helper(tag); emit {
		tag.InvokeRuntime = invoke
	}
	return true
}

func (v *validator) codeBlock(b *CodeBlock) bool {
	ok := true
	for _, entry := range b.Entries {
		switch entry := entry.(type) {
		case *Statement:
			if !v.statement(entry) {
				ok = false
			}
		case *PreOpStatement:
			if !entry.Type().Resolved() {
				v.errs.AddError(errors.KindTypeError, "operator statement has unresolved type")
				ok = false
			}
		case *PostOpStatement:
			if !entry.Type().Resolved() {
				v.errs.AddError(errors.KindTypeError, "operator statement has unresolved type")
				ok = false
			}
		case *Assignment:
			if !v.assignment(entry, b.Scope()) {
				ok = false
			}
		case *Entity:
			if !v.entity(entry, false) {
				ok = false
			}
		case *CodeBlock:
			if !v.codeBlock(entry) {
				ok = false
			}
		case *Initialization:
			for _, p := range entry.Params {
				if !v.expression(p) {
					ok = false
				}
			}
		}
	}
	return ok
}

func (v *validator) statement(s *Statement) bool {
	ok := true
	for _, p := range s.Params {
		if !v.expression(p) {
			ok = false
		}
	}
	if !s.ReturnType().Resolved() {
		v.errs.AddError(errors.KindOverloadError,
			"statement '%s' does not resolve to a callable overload", v.prog.GetString(s.Name))
		ok = false
	}
	return ok
}

func (v *validator) expression(e *Expression) bool {
	ok := true
	if !e.Type().Resolved() {
		v.errs.AddError(errors.KindTypeError, "expression has unresolved type")
		ok = false
	}
	for _, atom := range e.Atoms {
		switch atom := atom.(type) {
		case *ExpressionAtomStatement:
			if !v.statement(atom.Statement) {
				ok = false
			}
		case *ExpressionAtomParenthetical:
			if inner, isExpr := atom.Parenthetical.(*ParentheticalExpression); isExpr {
				if !v.expression(inner.Expression) {
					ok = false
				}
			}
		}
	}
	return ok
}

func (v *validator) assignment(a *Assignment, scope *ScopeDescription) bool {
	ok := true

	if len(a.LHS) == 0 {
		v.errs.AddError(errors.KindTypeError, "assignment has no target")
		return false
	}
	if _, bound := scope.Lookup(a.LHS[0]); !bound {
		v.errs.AddError(errors.KindTypeError,
			"assignment target '%s' is not assignable here", v.prog.GetString(a.LHS[0]))
		ok = false
	}

	switch chain := a.RHS.(type) {
	case *AssignmentChainExpression:
		if !v.expression(chain.Expression) {
			ok = false
		}
	case *AssignmentChainAssignment:
		if !v.assignment(chain.Assignment, scope) {
			ok = false
		}
	case nil:
		v.errs.AddError(errors.KindTypeError, "assignment has no right-hand side")
		ok = false
	}
	return ok
}

func (v *validator) entity(e *Entity, chained bool) bool {
	ok := true

	name := v.prog.GetString(e.Name)
	registry := v.prog.Session.EntityTags
	if chained {
		registry = v.prog.Session.ChainedTags
	}
	tag, known := registry[name]
	if !known {
		v.errs.AddError(errors.KindTypeError, "unknown entity '%s'", name)
		ok = false
	} else {
		e.Tag = tag
	}

	if e.PostfixName != 0 {
		closerTag, closerKnown := v.prog.Session.PostfixClosers[v.prog.GetString(e.PostfixName)]
		if !closerKnown {
			v.errs.AddError(errors.KindTypeError,
				"unknown postfix entity closer '%s'", v.prog.GetString(e.PostfixName))
			ok = false
		} else {
			e.PostfixTag = closerTag
		}
	}

	for _, p := range e.Params {
		if !v.expression(p) {
			ok = false
		}
	}
	for _, p := range e.PostfixParams {
		if !v.expression(p) {
			ok = false
		}
	}
	if e.Code != nil && !v.codeBlock(e.Code) {
		ok = false
	}
	for _, sub := range e.Chain {
		if !v.entity(sub, true) {
			ok = false
		}
	}
	return ok
}

// overloadSets checks that overloads sharing a base name agree on arity
// whenever any of them pattern-matches on values; dispatch between them
// happens per call site at runtime and requires aligned parameter lists.
func (v *validator) overloadSets() bool {
	ok := true
	for _, base := range v.prog.OverloadBases() {
		handles := v.prog.Overloads(base)
		if len(handles) < 2 {
			continue
		}

		hasPattern := false
		for _, h := range handles {
			if fn, found := v.prog.FunctionByOverload(h); found && fn.HasPatternParams() {
				hasPattern = true
			}
		}
		if !hasPattern {
			continue
		}

		arity := -1
		for _, h := range handles {
			fn, found := v.prog.FunctionByOverload(h)
			if !found {
				continue
			}
			if arity == -1 {
				arity = len(fn.Params)
			} else if len(fn.Params) != arity {
				v.errs.AddError(errors.KindOverloadError,
					"overloads of '%s' pattern-match on values but disagree on parameter count", base)
				ok = false
				break
			}
		}
	}
	return ok
}
