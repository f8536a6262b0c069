// Package ir defines the typed intermediate representation produced by the
// semantic pass: the lowered program, its structures, function overloads,
// scopes, typed expression atoms, and entity chains. IR objects are owned
// by the Program; ownership is strictly tree shaped and everything is
// released together when the program is dropped.
package ir

import (
	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/source"
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// EntityTag identifies one registered entity construct (if, while, ...) to
// the code generator.
type EntityTag uint32

// InvalidEntityTag is the zero sentinel for unregistered entities.
const InvalidEntityTag EntityTag = 0

// ConstructorHelper is invoked during compile-time code execution when a
// variable-definition statement is found. The helper adds the variable and
// its type metadata to the active lexical scope. It reports false (after
// appending diagnostics) when the statement is malformed.
type ConstructorHelper func(stmt *Statement, prog *Program, active *CodeBlock, inReturnExpr bool, errs *errors.CompileErrors) bool

// TagHelper interprets one function tag. It returns the name of a runtime
// function to invoke when emitting the tagged function, or emit=false when
// the tag is purely declarative.
type TagHelper func(tag *FunctionTag) (invoke string, emit bool)

// SignatureParam is one parameter slot in a registered function signature.
type SignatureParam struct {
	Name        string
	Type        types.TypeID
	IsReference bool
}

// FunctionSignature describes one callable overload for dispatch purposes.
type FunctionSignature struct {
	Params []SignatureParam
	Return types.TypeID
}

// AddParameter appends a parameter slot.
func (sig *FunctionSignature) AddParameter(name string, t types.TypeID, isRef bool) {
	sig.Params = append(sig.Params, SignatureParam{Name: name, Type: t, IsReference: isRef})
}

// CompileSession carries the shared state one compilation reads: the source
// buffer (kept alive by the caller for the duration of the pass), the
// string pool, the type registry, and the helper tables consulted during
// lowering and the phases.
type CompileSession struct {
	Source  *source.Buffer
	Strings *stringpool.Pool
	Types   *types.Registry

	// ConstructorHelpers maps statement names to the compile-time helper
	// run for variable definitions of that type.
	ConstructorHelpers map[stringpool.Handle]ConstructorHelper

	// TagHelpers maps function tag names to their interpreters.
	TagHelpers map[string]TagHelper

	// FunctionSignatures holds every callable overload, keyed by name
	// handle. Operators are functions and live here too.
	FunctionSignatures map[stringpool.Handle][]FunctionSignature

	// EntityTags maps entity names (if, while, ...) onto their registered
	// tags; ChainedTags covers the chain-only names (elseif, else) and
	// PostfixClosers the trailing names of postfix entities (the while of
	// do/while).
	EntityTags     map[string]EntityTag
	ChainedTags    map[string]EntityTag
	PostfixClosers map[string]EntityTag
}

// NewCompileSession creates an empty session over a source buffer.
func NewCompileSession(buf *source.Buffer, strings *stringpool.Pool) *CompileSession {
	return &CompileSession{
		Source:             buf,
		Strings:            strings,
		Types:              types.NewRegistry(),
		ConstructorHelpers: make(map[stringpool.Handle]ConstructorHelper),
		TagHelpers:         make(map[string]TagHelper),
		FunctionSignatures: make(map[stringpool.Handle][]FunctionSignature),
		EntityTags:         make(map[string]EntityTag),
		ChainedTags:        make(map[string]EntityTag),
		PostfixClosers:     make(map[string]EntityTag),
	}
}

// RegisterFunctionSignature appends one overload for a name.
func (s *CompileSession) RegisterFunctionSignature(name string, sig FunctionSignature) {
	h := s.Strings.Pool(name)
	s.FunctionSignatures[h] = append(s.FunctionSignatures[h], sig)
}

// RegisterEntity registers a leading entity name.
func (s *CompileSession) RegisterEntity(name string, tag EntityTag) {
	s.EntityTags[name] = tag
}

// RegisterChainedEntity registers a chain-position entity name.
func (s *CompileSession) RegisterChainedEntity(name string, tag EntityTag) {
	s.ChainedTags[name] = tag
}

// RegisterPostfixCloser registers the trailing name of a postfix entity.
func (s *CompileSession) RegisterPostfixCloser(name string, tag EntityTag) {
	s.PostfixClosers[name] = tag
}

// RegisterTagHelper registers a function tag interpreter.
func (s *CompileSession) RegisterTagHelper(name string, helper TagHelper) {
	s.TagHelpers[name] = helper
}

// FindLine locates an identifier's 1-based line in the session source.
func (s *CompileSession) FindLine(id source.Ident) int { return s.Source.FindLine(id) }

// FindColumn locates an identifier's 1-based column in the session source.
func (s *CompileSession) FindColumn(id source.Ident) int { return s.Source.FindColumn(id) }

// FindSource names the buffer an identifier points into.
func (s *CompileSession) FindSource(id source.Ident) string { return s.Source.FindSource(id) }
