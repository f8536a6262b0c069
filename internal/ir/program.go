package ir

import (
	"fmt"

	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// Program is the root of the lowered IR. It owns every sub-entity: the
// global scope, structures, the function overload sets, and the global
// code blocks.
type Program struct {
	Session *CompileSession

	strings     *stringpool.Pool
	globalScope *ScopeDescription

	structures     map[stringpool.Handle]*Structure
	structureOrder []stringpool.Handle

	functions     map[stringpool.Handle]*Function
	functionOrder []stringpool.Handle

	// overloads maps a base function name onto the internal overload
	// names generated for it, in creation order.
	overloads map[string][]stringpool.Handle

	globalBlocks []*CodeBlock

	// sumTypes maps a sum type's name onto its base type names, with a
	// parallel order list for deterministic iteration.
	sumTypes     map[stringpool.Handle][]stringpool.Handle
	sumTypeOrder []stringpool.Handle

	anonymousParams int
	scopeNames      int
}

// NewProgram creates an empty program bound to a pool and session.
func NewProgram(strings *stringpool.Pool, session *CompileSession) *Program {
	return &Program{
		Session:     session,
		strings:     strings,
		globalScope: NewScopeDescription(nil),
		structures:  make(map[stringpool.Handle]*Structure),
		functions:   make(map[stringpool.Handle]*Function),
		overloads:   make(map[string][]stringpool.Handle),
		sumTypes:    make(map[stringpool.Handle][]stringpool.Handle),
	}
}

// AddString interns a string into the program's pool.
func (p *Program) AddString(s string) stringpool.Handle {
	return p.strings.PoolFast(s)
}

// GetString resolves a pooled handle.
func (p *Program) GetString(h stringpool.Handle) string {
	return p.strings.GetPooledString(h)
}

// GlobalScope returns the scope owned by the program and borrowed by
// program-level code blocks.
func (p *Program) GlobalScope() *ScopeDescription { return p.globalScope }

// Structures returns the lowered structures in declaration order.
func (p *Program) Structures() []*Structure {
	out := make([]*Structure, 0, len(p.structureOrder))
	for _, h := range p.structureOrder {
		out = append(out, p.structures[h])
	}
	return out
}

// StructureByName finds a structure by name handle.
func (p *Program) StructureByName(name stringpool.Handle) (*Structure, bool) {
	s, ok := p.structures[name]
	return s, ok
}

// StructureByType finds a structure by its allocated type identifier.
func (p *Program) StructureByType(t types.TypeID) (*Structure, bool) {
	for _, h := range p.structureOrder {
		if p.structures[h].TypeID == t {
			return p.structures[h], true
		}
	}
	return nil, false
}

// AddStructure records a lowered structure, allocates its type identifier,
// and registers the compile-time constructor machinery: a constructor
// helper keyed by the structure's name, and a callable signature taking
// the new variable's identifier followed by the member values.
func (p *Program) AddStructure(name stringpool.Handle, s *Structure) {
	s.Name = name
	s.TypeID = p.Session.Types.AllocateStructure(p.GetString(name))
	p.structures[name] = s
	p.structureOrder = append(p.structureOrder, name)

	p.Session.ConstructorHelpers[name] = CompileConstructorStructure

	sig := FunctionSignature{Return: s.TypeID}
	sig.AddParameter("id", types.Identifier, false)
	for _, member := range s.Members {
		sig.AddParameter(p.GetString(member.Name), member.Member.EpochType(p), false)
	}
	p.Session.FunctionSignatures[name] = append(p.Session.FunctionSignatures[name], sig)
}

// Functions returns the lowered functions in creation order.
func (p *Program) Functions() []*Function {
	out := make([]*Function, 0, len(p.functionOrder))
	for _, h := range p.functionOrder {
		out = append(out, p.functions[h])
	}
	return out
}

// FunctionByOverload finds a function by its overload handle.
func (p *Program) FunctionByOverload(h stringpool.Handle) (*Function, bool) {
	f, ok := p.functions[h]
	return f, ok
}

// Overloads returns the overload handles generated for a base name.
func (p *Program) Overloads(base string) []stringpool.Handle {
	return p.overloads[base]
}

// OverloadBases lists every base name with at least one overload, in no
// particular order; callers needing determinism sort the result.
func (p *Program) OverloadBases() []string {
	out := make([]string, 0, len(p.overloads))
	for base := range p.overloads {
		out = append(out, base)
	}
	return out
}

// CreateFunctionOverload allocates the internal overload name for the next
// overload of a base name. The generated names use a separator no source
// identifier can contain, so they can never collide with source-level
// names.
func (p *Program) CreateFunctionOverload(base string) stringpool.Handle {
	index := len(p.overloads[base])
	h := p.AddString(fmt.Sprintf("%s@@overload:%d", base, index))
	p.overloads[base] = append(p.overloads[base], h)
	return h
}

// AddFunction records a lowered function under its overload handle.
func (p *Program) AddFunction(overload stringpool.Handle, f *Function) {
	f.Name = overload
	p.functions[overload] = f
	p.functionOrder = append(p.functionOrder, overload)
}

// AddTypeAlias binds an alias name to an existing type's identifier. The
// alias interchanges freely with its representation.
func (p *Program) AddTypeAlias(alias stringpool.Handle, representation types.TypeID) {
	p.Session.Types.Register(p.GetString(alias), representation)
}

// AddStrongTypeAlias allocates a distinct type identifier for an alias
// that must not interchange with its representation.
func (p *Program) AddStrongTypeAlias(alias stringpool.Handle) types.TypeID {
	return p.Session.Types.AllocateNamed(p.GetString(alias))
}

// AddSumType records a sum type and its base type names. The bases are
// validated once the whole program is lowered, so forward references to
// later structures work.
func (p *Program) AddSumType(name stringpool.Handle, bases []stringpool.Handle) types.TypeID {
	if _, exists := p.sumTypes[name]; !exists {
		p.sumTypeOrder = append(p.sumTypeOrder, name)
	}
	p.sumTypes[name] = bases
	return p.Session.Types.AllocateNamed(p.GetString(name))
}

// SumTypes returns the lowered sum type names in declaration order.
func (p *Program) SumTypes() []stringpool.Handle { return p.sumTypeOrder }

// SumTypeBases returns the base type names of a sum type.
func (p *Program) SumTypeBases(name stringpool.Handle) []stringpool.Handle {
	return p.sumTypes[name]
}

// AddGlobalCodeBlock appends a program-level code block.
func (p *Program) AddGlobalCodeBlock(block *CodeBlock) {
	p.globalBlocks = append(p.globalBlocks, block)
}

// GlobalCodeBlocks returns the program-level blocks in order.
func (p *Program) GlobalCodeBlocks() []*CodeBlock { return p.globalBlocks }

// LookupType resolves a pooled type name to a type identifier.
func (p *Program) LookupType(name stringpool.Handle) types.TypeID {
	id, ok := p.Session.Types.Lookup(p.GetString(name))
	if !ok {
		return types.Error
	}
	return id
}

// AllocateAnonymousParamName generates an internal parameter name for
// pattern-matched parameters. The names share the overload separator and
// therefore never collide with source identifiers.
func (p *Program) AllocateAnonymousParamName() stringpool.Handle {
	p.anonymousParams++
	return p.AddString(fmt.Sprintf("@@patternmatch:%d", p.anonymousParams))
}

// AllocateLexicalScopeName assigns the block's internal scope name.
func (p *Program) AllocateLexicalScopeName(block *CodeBlock) {
	p.scopeNames++
	block.ScopeName = p.AddString(fmt.Sprintf("@@scope:%d", p.scopeNames))
}

// CompileTimeCodeExecution runs phase one over the whole program: every
// variable-definition statement invokes its registered constructor helper,
// populating the lexical scopes. Reports false when any helper failed.
func (p *Program) CompileTimeCodeExecution(errs *errors.CompileErrors) bool {
	ok := true
	for _, block := range p.globalBlocks {
		if !block.compileTimeExecution(p, errs, false) {
			ok = false
		}
	}
	for _, h := range p.functionOrder {
		if !p.functions[h].compileTimeExecution(p, errs) {
			ok = false
		}
	}
	return ok
}

// TypeInference runs phase two: resolve every atom's type bottom-up and
// annotate expressions, statements, and assignments.
func (p *Program) TypeInference(errs *errors.CompileErrors) bool {
	inf := &inferencer{prog: p, errs: errs}

	ok := true
	for _, block := range p.globalBlocks {
		if !inf.codeBlock(block) {
			ok = false
		}
	}
	for _, h := range p.functionOrder {
		if !inf.function(p.functions[h]) {
			ok = false
		}
	}
	return ok
}

// Validate runs phase three: the independent structural predicates over
// the fully inferred IR.
func (p *Program) Validate(errs *errors.CompileErrors) bool {
	v := &validator{prog: p, errs: errs}
	return v.program()
}
