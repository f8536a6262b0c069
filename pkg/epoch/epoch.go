// Package epoch is the public face of the Epoch front-end core. It wires a
// compile session with the standard primitive types, operators, entities,
// and tag helpers, and drives the semantic pass over a parsed AST.
//
// The parser is an external collaborator: callers hand Compile a finished
// *ast.Program whose identifier spans reference the session's source
// buffer, and keep that buffer alive for the duration of the pass.
package epoch

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/ir"
	"github.com/epochlang/go-epoch/internal/semantic"
	"github.com/epochlang/go-epoch/internal/source"
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// Entity tags assigned to the standard flow control constructs.
const (
	TagIf ir.EntityTag = iota + 1
	TagWhile
	TagElseIf
	TagElse
	TagDo
	TagDoWhileCloser
	TagParallelFor
)

// Compiler bundles the string pool and compile session one compilation
// uses. Create one per source buffer with New.
type Compiler struct {
	Pool    *stringpool.Pool
	Session *ir.CompileSession
}

// New prepares a compiler over a source buffer, registering the standard
// library surface the front end knows about: primitive constructors, the
// built-in operator overloads, the flow control entities, and the standard
// function tags.
func New(src, filename string) *Compiler {
	pool := stringpool.NewPool()
	session := ir.NewCompileSession(&source.Buffer{Text: src, Name: filename}, pool)

	registerPrimitiveConstructors(pool, session)
	registerOperators(session)
	registerEntities(session)
	registerTags(session)

	return &Compiler{Pool: pool, Session: session}
}

// Compile lowers the program and runs the phases. On success it returns
// the IR program; on a phase failure the program is nil and the buffer
// holds the diagnostics. Fatal conditions are reported as the error.
func (c *Compiler) Compile(program *ast.Program) (*ir.Program, *errors.CompileErrors, error) {
	return semantic.ValidateSemantics(program, c.Pool, c.Session)
}

// registerPrimitiveConstructors makes the primitive type names callable as
// variable-definition statements, e.g. integer(counter, 0). The structure
// constructor helper serves: it resolves the statement name through the
// type registry and adds the variable to the active scope.
func registerPrimitiveConstructors(pool *stringpool.Pool, session *ir.CompileSession) {
	primitives := []struct {
		name string
		id   types.TypeID
	}{
		{"integer", types.Integer32},
		{"real", types.Real32},
		{"boolean", types.Boolean},
		{"string", types.String},
	}

	for _, prim := range primitives {
		handle := pool.Pool(prim.name)
		session.ConstructorHelpers[handle] = ir.CompileConstructorStructure

		sig := ir.FunctionSignature{Return: prim.id}
		sig.AddParameter("id", types.Identifier, false)
		sig.AddParameter("value", prim.id, false)
		session.FunctionSignatures[handle] = append(session.FunctionSignatures[handle], sig)
	}
}

// registerOperators installs the built-in operator overloads. Operators
// are functions; overload resolution treats them like any other call.
func registerOperators(session *ir.CompileSession) {
	binary := func(name string, lhs, rhs, ret types.TypeID) {
		sig := ir.FunctionSignature{Return: ret}
		sig.AddParameter("lhs", lhs, false)
		sig.AddParameter("rhs", rhs, false)
		session.RegisterFunctionSignature(name, sig)
	}
	unary := func(name string, operand, ret types.TypeID) {
		sig := ir.FunctionSignature{Return: ret}
		sig.AddParameter("operand", operand, false)
		session.RegisterFunctionSignature(name, sig)
	}

	for _, op := range []string{"+", "-", "*", "/"} {
		binary(op, types.Integer32, types.Integer32, types.Integer32)
		binary(op, types.Real32, types.Real32, types.Real32)
	}
	binary("+", types.String, types.String, types.String)

	for _, op := range []string{"==", "!=", "<", ">", "<=", ">="} {
		binary(op, types.Integer32, types.Integer32, types.Boolean)
		binary(op, types.Real32, types.Real32, types.Boolean)
	}
	binary("==", types.Boolean, types.Boolean, types.Boolean)
	binary("!=", types.Boolean, types.Boolean, types.Boolean)
	binary("==", types.String, types.String, types.Boolean)
	binary("!=", types.String, types.String, types.Boolean)

	binary("&&", types.Boolean, types.Boolean, types.Boolean)
	binary("||", types.Boolean, types.Boolean, types.Boolean)

	unary("!", types.Boolean, types.Boolean)
	unary("-", types.Integer32, types.Integer32)
	unary("-", types.Real32, types.Real32)
	unary("++", types.Integer32, types.Integer32)
	unary("--", types.Integer32, types.Integer32)
}

// registerEntities installs the standard flow control constructs.
func registerEntities(session *ir.CompileSession) {
	session.RegisterEntity("if", TagIf)
	session.RegisterEntity("while", TagWhile)
	session.RegisterEntity("parallelfor", TagParallelFor)
	session.RegisterChainedEntity("elseif", TagElseIf)
	session.RegisterChainedEntity("else", TagElse)
	session.RegisterEntity("do", TagDo)
	session.RegisterPostfixCloser("while", TagDoWhileCloser)
}

// registerTags installs the standard function tags. The external tag asks
// the emitter to route calls through the native marshalling thunk; the
// pure tag is declarative.
func registerTags(session *ir.CompileSession) {
	session.RegisterTagHelper("external", func(tag *ir.FunctionTag) (string, bool) {
		return "marshalexternal", true
	})
	session.RegisterTagHelper("pure", func(tag *ir.FunctionTag) (string, bool) {
		return "", false
	})
}
