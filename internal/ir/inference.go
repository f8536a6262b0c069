package ir

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// inferencer performs the bottom-up type resolution phase: every atom gets
// a type from the scope chain, statements resolve their overloads, and the
// results propagate outward to expressions and assignments.
type inferencer struct {
	prog *Program
	errs *errors.CompileErrors

	// inProgress guards against infinite recursion when the return type
	// of a self-recursive function is demanded during its own inference.
	inProgress map[*Function]bool
}

func (inf *inferencer) function(f *Function) bool {
	ok := true

	scope := inf.prog.GlobalScope()
	if f.Code != nil {
		scope = f.Code.Scope()
	}

	for _, entry := range f.Params {
		if pattern, isPattern := entry.Param.(*FunctionParamExpression); isPattern {
			if !inf.expression(pattern.Expression, scope) {
				ok = false
			}
		}
	}

	if f.Return != nil {
		if !inf.expression(f.Return, scope) {
			ok = false
		}
	}
	if f.ReturnInit != nil {
		for _, p := range f.ReturnInit.Params {
			if !inf.expression(p, scope) {
				ok = false
			}
		}
	}

	if f.Code != nil {
		if !inf.codeBlock(f.Code) {
			ok = false
		}
	}
	return ok
}

func (inf *inferencer) codeBlock(b *CodeBlock) bool {
	ok := true
	for _, entry := range b.Entries {
		switch entry := entry.(type) {
		case *Statement:
			if !inf.statement(entry, b.Scope()) {
				ok = false
			}
		case *PreOpStatement:
			if !inf.operandStatement(entry.OperatorName, entry.Operand, b.Scope(), entry.SetType) {
				ok = false
			}
		case *PostOpStatement:
			if !inf.operandStatement(entry.OperatorName, entry.Operand, b.Scope(), entry.SetType) {
				ok = false
			}
		case *Assignment:
			if !inf.assignment(entry, b.Scope()) {
				ok = false
			}
		case *Entity:
			if !inf.entity(entry, b.Scope()) {
				ok = false
			}
		case *CodeBlock:
			if !inf.codeBlock(entry) {
				ok = false
			}
		case *Initialization:
			for _, p := range entry.Params {
				if !inf.expression(p, b.Scope()) {
					ok = false
				}
			}
		}
	}
	return ok
}

func (inf *inferencer) entity(e *Entity, scope *ScopeDescription) bool {
	ok := true
	for _, p := range e.Params {
		if !inf.expression(p, scope) {
			ok = false
		}
	}
	for _, p := range e.PostfixParams {
		if !inf.expression(p, scope) {
			ok = false
		}
	}
	if e.Code != nil {
		if !inf.codeBlock(e.Code) {
			ok = false
		}
	}
	for _, chained := range e.Chain {
		if !inf.entity(chained, scope) {
			ok = false
		}
	}
	return ok
}

// expression resolves the expression's atoms left to right. The atom list
// is the flat rendering of the source expression: operands interleaved
// with infix operator atoms, unary operators preceding their operand.
func (inf *inferencer) expression(e *Expression, scope *ScopeDescription) bool {
	if len(e.Atoms) == 0 {
		e.SetType(types.Void)
		return true
	}

	i := 0
	cur, ok := inf.operand(e, &i, scope)
	if !ok {
		e.SetType(types.Error)
		return false
	}

	for i < len(e.Atoms) {
		op, isOp := e.Atoms[i].(*ExpressionAtomOperator)
		if !isOp {
			inf.errs.AddError(errors.KindTypeError,
				"malformed expression: expected operator between terms")
			e.SetType(types.Error)
			return false
		}
		i++

		if op.IsMemberAccess {
			member, isIdent := atomAt(e, i).(*ExpressionAtomIdentifier)
			if !isIdent {
				inf.errs.AddError(errors.KindTypeError,
					"member access requires a member name on the right-hand side")
				e.SetType(types.Error)
				return false
			}
			i++

			memberType, found := inf.memberTypeOf(cur, member.Handle)
			if !found {
				inf.errs.AddError(errors.KindTypeError,
					"type '%s' has no member '%s'",
					inf.prog.Session.Types.NameOf(cur), inf.prog.GetString(member.Handle))
				e.SetType(types.Error)
				return false
			}
			member.Type = memberType
			op.Type = memberType
			cur = memberType
			continue
		}

		rhs, rhsOK := inf.operand(e, &i, scope)
		if !rhsOK {
			e.SetType(types.Error)
			return false
		}

		result, resolved := inf.resolveBinaryOperator(op.Handle, cur, rhs)
		if !resolved {
			inf.errs.AddError(errors.KindOverloadError,
				"no overload of operator '%s' accepts (%s, %s)",
				inf.prog.GetString(op.Handle),
				inf.prog.Session.Types.NameOf(cur), inf.prog.Session.Types.NameOf(rhs))
			e.SetType(types.Error)
			return false
		}
		op.Type = result
		cur = result
	}

	e.SetType(cur)
	return true
}

func atomAt(e *Expression, i int) ExpressionAtom {
	if i >= len(e.Atoms) {
		return nil
	}
	return e.Atoms[i]
}

// operand consumes one operand starting at *i: any run of unary operator
// atoms followed by a value atom.
func (inf *inferencer) operand(e *Expression, i *int, scope *ScopeDescription) (types.TypeID, bool) {
	var unary []*ExpressionAtomOperator
	for {
		op, isOp := atomAt(e, *i).(*ExpressionAtomOperator)
		if !isOp || op.IsMemberAccess {
			break
		}
		// An operator in operand position is a unary prefix only when a
		// value atom follows; infix operators never reach here.
		unary = append(unary, op)
		*i++
	}

	t, ok := inf.valueAtom(atomAt(e, *i), scope)
	if !ok {
		return types.Error, false
	}
	*i++

	for j := len(unary) - 1; j >= 0; j-- {
		result, resolved := inf.resolveUnaryOperator(unary[j].Handle, t)
		if !resolved {
			inf.errs.AddError(errors.KindOverloadError,
				"no overload of unary operator '%s' accepts %s",
				inf.prog.GetString(unary[j].Handle), inf.prog.Session.Types.NameOf(t))
			return types.Error, false
		}
		unary[j].Type = result
		t = result
	}
	return t, true
}

func (inf *inferencer) valueAtom(atom ExpressionAtom, scope *ScopeDescription) (types.TypeID, bool) {
	switch atom := atom.(type) {
	case nil:
		inf.errs.AddError(errors.KindTypeError, "malformed expression: missing operand")
		return types.Error, false

	case *ExpressionAtomIdentifier:
		v, found := scope.Lookup(atom.Handle)
		if !found {
			inf.errs.AddError(errors.KindTypeError,
				"identifier '%s' has no binding in this scope", inf.prog.GetString(atom.Handle))
			atom.Type = types.Error
			return types.Error, false
		}
		atom.Type = v.Type
		return v.Type, true

	case *ExpressionAtomIdentifierReference:
		v, found := scope.Lookup(atom.Handle)
		if !found {
			inf.errs.AddError(errors.KindTypeError,
				"identifier '%s' has no binding in this scope", inf.prog.GetString(atom.Handle))
			atom.Type = types.Error
			return types.Error, false
		}
		atom.Type = v.Type
		return v.Type, true

	case *ExpressionAtomLiteralInteger32:
		return types.Integer32, true
	case *ExpressionAtomLiteralReal32:
		return types.Real32, true
	case *ExpressionAtomLiteralBoolean:
		return types.Boolean, true
	case *ExpressionAtomLiteralString:
		return types.String, true

	case *ExpressionAtomStatement:
		if !inf.statementIn(atom.Statement, scope) {
			return types.Error, false
		}
		return atom.Statement.ReturnType(), true

	case *ExpressionAtomParenthetical:
		return inf.parenthetical(atom.Parenthetical, scope)

	case *ExpressionAtomTypeAnnotation:
		return atom.Type, true

	default:
		inf.errs.AddError(errors.KindTypeError, "unexpected atom in operand position")
		return types.Error, false
	}
}

func (inf *inferencer) parenthetical(p Parenthetical, scope *ScopeDescription) (types.TypeID, bool) {
	switch p := p.(type) {
	case *ParentheticalExpression:
		if !inf.expression(p.Expression, scope) {
			return types.Error, false
		}
		return p.Expression.Type(), true
	case *ParentheticalPreOp:
		if !inf.operandStatement(p.Statement.OperatorName, p.Statement.Operand, scope, p.Statement.SetType) {
			return types.Error, false
		}
		return p.Statement.Type(), true
	case *ParentheticalPostOp:
		if !inf.operandStatement(p.Statement.OperatorName, p.Statement.Operand, scope, p.Statement.SetType) {
			return types.Error, false
		}
		return p.Statement.Type(), true
	default:
		return types.Error, false
	}
}

// operandStatement types a pre/post operator statement: resolve the member
// access chain, then the operator overload against the operand type.
func (inf *inferencer) operandStatement(operator stringpool.Handle, operand []stringpool.Handle, scope *ScopeDescription, setType func(types.TypeID)) bool {
	t, ok := inf.resolveAccessChain(operand, scope)
	if !ok {
		setType(types.Error)
		return false
	}

	result, resolved := inf.resolveUnaryOperator(operator, t)
	if !resolved {
		inf.errs.AddError(errors.KindOverloadError,
			"no overload of operator '%s' accepts %s",
			inf.prog.GetString(operator), inf.prog.Session.Types.NameOf(t))
		setType(types.Error)
		return false
	}
	setType(result)
	return true
}

// resolveAccessChain types a member access chain: a variable followed by
// zero or more member names.
func (inf *inferencer) resolveAccessChain(chain []stringpool.Handle, scope *ScopeDescription) (types.TypeID, bool) {
	if len(chain) == 0 {
		inf.errs.AddError(errors.KindTypeError, "empty member access chain")
		return types.Error, false
	}

	v, found := scope.Lookup(chain[0])
	if !found {
		inf.errs.AddError(errors.KindTypeError,
			"identifier '%s' has no binding in this scope", inf.prog.GetString(chain[0]))
		return types.Error, false
	}

	cur := v.Type
	for _, member := range chain[1:] {
		memberType, ok := inf.memberTypeOf(cur, member)
		if !ok {
			inf.errs.AddError(errors.KindTypeError,
				"type '%s' has no member '%s'",
				inf.prog.Session.Types.NameOf(cur), inf.prog.GetString(member))
			return types.Error, false
		}
		cur = memberType
	}
	return cur, true
}

func (inf *inferencer) memberTypeOf(t types.TypeID, member stringpool.Handle) (types.TypeID, bool) {
	structure, isStruct := inf.prog.StructureByType(t)
	if !isStruct {
		return types.Error, false
	}
	return structure.MemberType(member, inf.prog)
}

func (inf *inferencer) statement(s *Statement, scope *ScopeDescription) bool {
	return inf.statementIn(s, scope)
}

// statementIn resolves a statement's overload from the session signature
// registry and the program's lowered functions, after inferring the
// argument expressions.
func (inf *inferencer) statementIn(s *Statement, scope *ScopeDescription) bool {
	ok := true
	for _, p := range s.Params {
		if !inf.expression(p, scope) {
			ok = false
		}
	}
	if !ok {
		s.SetReturnType(types.Error)
		return false
	}

	if ret, resolved := inf.resolveCall(s); resolved {
		s.SetReturnType(ret)
		return true
	}

	inf.errs.AddError(errors.KindOverloadError,
		"no overload of '%s' matches this call", inf.prog.GetString(s.Name))
	s.SetReturnType(types.Error)
	return false
}

// resolveCall matches a statement against the registered signatures first,
// then against the lowered source functions.
func (inf *inferencer) resolveCall(s *Statement) (types.TypeID, bool) {
	for _, sig := range inf.prog.Session.FunctionSignatures[s.Name] {
		if inf.signatureMatches(sig, s.Params) {
			return sig.Return, true
		}
	}

	base := inf.prog.GetString(s.Name)
	for _, overload := range inf.prog.Overloads(base) {
		fn, found := inf.prog.FunctionByOverload(overload)
		if !found {
			continue
		}
		if inf.functionMatches(fn, s.Params) {
			return inf.returnTypeOf(fn), true
		}
	}
	return types.Error, false
}

func (inf *inferencer) signatureMatches(sig FunctionSignature, args []*Expression) bool {
	if len(sig.Params) != len(args) {
		return false
	}
	for i, p := range sig.Params {
		if !inf.argumentMatches(p.Type, args[i]) {
			return false
		}
	}
	return true
}

func (inf *inferencer) functionMatches(fn *Function, args []*Expression) bool {
	if len(fn.Params) != len(args) {
		return false
	}
	for i, entry := range fn.Params {
		switch param := entry.Param.(type) {
		case *FunctionParamNamed:
			if !inf.argumentMatches(inf.prog.LookupType(param.Type), args[i]) {
				return false
			}
		case *FunctionParamExpression:
			// Pattern parameters match on value; the type side accepts
			// any argument of the pattern expression's type.
			if param.Expression.Type().Resolved() && args[i].Type().Resolved() &&
				param.Expression.Type() != args[i].Type() {
				return false
			}
		case *FunctionParamFuncRef:
			// Higher-order arguments arrive as bare identifiers naming
			// functions; arity matching is all dispatch needs here.
		case *FunctionParamNothing:
			// The nothing slot matches anything and binds nothing.
		}
	}
	return true
}

// argumentMatches compares a declared parameter type against an inferred
// argument. The identifier pseudo-type accepts any argument whose leading
// atom is an identifier; constructor signatures use it for the variable
// being defined, which has no type until the constructor runs.
func (inf *inferencer) argumentMatches(declared types.TypeID, arg *Expression) bool {
	if declared == types.Identifier {
		if len(arg.Atoms) == 0 {
			return false
		}
		switch arg.Atoms[0].(type) {
		case *ExpressionAtomIdentifier, *ExpressionAtomIdentifierReference:
			return true
		}
		return false
	}
	return declared == arg.Type()
}

// returnTypeOf produces a function's return type, inferring the return
// expression on demand. Self-recursive demand reports Infer and lets the
// validation phase flag the cycle.
func (inf *inferencer) returnTypeOf(fn *Function) types.TypeID {
	if fn.ReturnInit != nil {
		return inf.prog.LookupType(fn.ReturnInit.TypeName)
	}
	if fn.Return == nil {
		return types.Void
	}
	if fn.Return.Type().Resolved() {
		return fn.Return.Type()
	}

	if inf.inProgress == nil {
		inf.inProgress = make(map[*Function]bool)
	}
	if inf.inProgress[fn] {
		return types.Infer
	}
	inf.inProgress[fn] = true
	defer delete(inf.inProgress, fn)

	scope := inf.prog.GlobalScope()
	if fn.Code != nil {
		scope = fn.Code.Scope()
	}
	inf.expression(fn.Return, scope)
	return fn.Return.Type()
}

// resolveBinaryOperator finds the overload of an infix operator matching
// the operand pair.
func (inf *inferencer) resolveBinaryOperator(op stringpool.Handle, lhs, rhs types.TypeID) (types.TypeID, bool) {
	for _, sig := range inf.prog.Session.FunctionSignatures[op] {
		if len(sig.Params) != 2 {
			continue
		}
		if sig.Params[0].Type == lhs && sig.Params[1].Type == rhs {
			return sig.Return, true
		}
	}
	return types.Error, false
}

// resolveUnaryOperator finds the overload of a prefix/postfix operator
// matching a single operand.
func (inf *inferencer) resolveUnaryOperator(op stringpool.Handle, operand types.TypeID) (types.TypeID, bool) {
	for _, sig := range inf.prog.Session.FunctionSignatures[op] {
		if len(sig.Params) != 1 {
			continue
		}
		if sig.Params[0].Type == operand {
			return sig.Return, true
		}
	}
	return types.Error, false
}

func (inf *inferencer) assignment(a *Assignment, scope *ScopeDescription) bool {
	lhsType, ok := inf.resolveAccessChain(a.LHS, scope)
	if !ok {
		a.SetLHSType(types.Error)
		return false
	}
	a.SetLHSType(lhsType)

	return inf.assignmentChain(a.RHS, lhsType, scope)
}

func (inf *inferencer) assignmentChain(chain AssignmentChain, lhsType types.TypeID, scope *ScopeDescription) bool {
	switch chain := chain.(type) {
	case *AssignmentChainExpression:
		if !inf.expression(chain.Expression, scope) {
			return false
		}
		if chain.Expression.Type() != lhsType {
			inf.errs.AddError(errors.KindTypeError,
				"cannot assign %s to %s",
				inf.prog.Session.Types.NameOf(chain.Expression.Type()),
				inf.prog.Session.Types.NameOf(lhsType))
			return false
		}
		return true

	case *AssignmentChainAssignment:
		return inf.assignment(chain.Assignment, scope)

	case nil:
		// Left open by lowering; already diagnosed there.
		return false

	default:
		return false
	}
}
