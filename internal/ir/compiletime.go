package ir

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/types"
)

// CompileConstructorStructure is the compile-time helper registered for
// every structure definition. When a statement invoking the structure's
// name is executed at compile time, the helper adds the variable named by
// the first argument to the active lexical scope, typed as the structure.
func CompileConstructorStructure(stmt *Statement, prog *Program, active *CodeBlock, inReturnExpr bool, errs *errors.CompileErrors) bool {
	ident, ok := firstParameterIdentifier(stmt)
	if !ok {
		errs.AddError(errors.KindTypeError,
			"constructor call '%s' requires an identifier as its first argument", prog.GetString(stmt.Name))
		return false
	}

	origin := OriginLocal
	if inReturnExpr {
		origin = OriginReturn
	}
	effective := prog.LookupType(stmt.Name)
	active.AddVariable(prog.GetString(ident.Handle), ident.Handle, effective, false, origin)
	return true
}

// firstParameterIdentifier extracts the identifier atom a constructor call
// names its new variable with. Malformed trees report false rather than
// panicking; the caller turns that into a diagnostic.
func firstParameterIdentifier(stmt *Statement) (*ExpressionAtomIdentifier, bool) {
	if len(stmt.Params) == 0 || len(stmt.Params[0].Atoms) == 0 {
		return nil, false
	}
	ident, ok := stmt.Params[0].Atoms[0].(*ExpressionAtomIdentifier)
	return ident, ok
}

// compileTimeExecution walks the block's entries, invoking constructor
// helpers for variable definitions and recursing into nested constructs.
func (b *CodeBlock) compileTimeExecution(prog *Program, errs *errors.CompileErrors, inReturnExpr bool) bool {
	ok := true
	for _, entry := range b.Entries {
		switch entry := entry.(type) {
		case *Statement:
			if helper, registered := prog.Session.ConstructorHelpers[entry.Name]; registered {
				if !helper(entry, prog, b, inReturnExpr, errs) {
					ok = false
				}
			}

		case *Initialization:
			effective := prog.LookupType(entry.TypeName)
			if effective == types.Error {
				errs.AddError(errors.KindTypeError,
					"unknown type '%s' in initialization", prog.GetString(entry.TypeName))
				ok = false
				continue
			}
			b.AddVariable(prog.GetString(entry.Name), entry.Name, effective, false, OriginLocal)

		case *Entity:
			if !entityCompileTime(entry, prog, errs) {
				ok = false
			}

		case *CodeBlock:
			if !entry.compileTimeExecution(prog, errs, false) {
				ok = false
			}
		}
	}
	return ok
}

func entityCompileTime(e *Entity, prog *Program, errs *errors.CompileErrors) bool {
	ok := true
	if e.Code != nil {
		if !e.Code.compileTimeExecution(prog, errs, false) {
			ok = false
		}
	}
	for _, chained := range e.Chain {
		if !entityCompileTime(chained, prog, errs) {
			ok = false
		}
	}
	return ok
}

// compileTimeExecution handles a function: constructor calls inside the
// return expression register the return variable, then the body runs.
func (f *Function) compileTimeExecution(prog *Program, errs *errors.CompileErrors) bool {
	ok := true

	if f.Return != nil && f.Code != nil {
		for _, atom := range f.Return.Atoms {
			stmt, isStmt := atom.(*ExpressionAtomStatement)
			if !isStmt {
				continue
			}
			if helper, registered := prog.Session.ConstructorHelpers[stmt.Statement.Name]; registered {
				if !helper(stmt.Statement, prog, f.Code, true, errs) {
					ok = false
				}
			}
		}
	}

	if f.ReturnInit != nil && f.Code != nil {
		effective := prog.LookupType(f.ReturnInit.TypeName)
		if effective == types.Error {
			errs.AddError(errors.KindTypeError,
				"unknown type '%s' in return initialization", prog.GetString(f.ReturnInit.TypeName))
			ok = false
		} else {
			f.Code.AddVariable(prog.GetString(f.ReturnInit.Name), f.ReturnInit.Name, effective, false, OriginReturn)
		}
	}

	if f.Code != nil {
		if !f.Code.compileTimeExecution(prog, errs, false) {
			ok = false
		}
	}
	return ok
}
