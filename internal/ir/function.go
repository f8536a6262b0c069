package ir

import (
	"github.com/epochlang/go-epoch/internal/source"
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// FunctionParam is any lowered parameter form.
type FunctionParam interface {
	functionParam()
}

// FunctionParamNamed binds a typed name into the function's scope.
type FunctionParamNamed struct {
	Type        stringpool.Handle
	IsReference bool
}

// FunctionParamExpression is a pattern-matched value parameter: the
// function only matches calls whose argument equals the expression.
type FunctionParamExpression struct {
	Expression *Expression
}

// FunctionParamFuncRef accepts references to functions matching the
// recorded signature. A zero ReturnType handle means no return value.
type FunctionParamFuncRef struct {
	ParamTypes []stringpool.Handle
	ReturnType stringpool.Handle
}

// FunctionParamNothing is the deliberately empty parameter slot.
type FunctionParamNothing struct{}

func (*FunctionParamNamed) functionParam()      {}
func (*FunctionParamExpression) functionParam() {}
func (*FunctionParamFuncRef) functionParam()    {}
func (*FunctionParamNothing) functionParam()    {}

// FunctionParamEntry pairs a parameter with its name, preserving order.
// Pattern-matched parameters get program-allocated anonymous names.
type FunctionParamEntry struct {
	Name  stringpool.Handle
	Param FunctionParam
}

// FunctionTag is one lowered metadata tag.
type FunctionTag struct {
	Name   stringpool.Handle
	Ident  source.Ident
	Params []source.LiteralToken

	// InvokeRuntime is the runtime function the tag helper asked to call
	// when emitting this function; empty for declarative tags.
	InvokeRuntime string
}

// Function is a lowered function definition keyed by its overload handle.
type Function struct {
	Name   stringpool.Handle
	Params []FunctionParamEntry

	Return     *Expression
	ReturnInit *Initialization

	Tags []*FunctionTag
	Code *CodeBlock
}

// NewFunction creates an empty function awaiting lowering.
func NewFunction() *Function {
	return &Function{}
}

// SetName records the overload name handle.
func (f *Function) SetName(name stringpool.Handle) { f.Name = name }

// AddParameter appends a named parameter in declaration order.
func (f *Function) AddParameter(name stringpool.Handle, p FunctionParam) {
	f.Params = append(f.Params, FunctionParamEntry{Name: name, Param: p})
}

// AddTag appends a lowered tag.
func (f *Function) AddTag(tag *FunctionTag) {
	f.Tags = append(f.Tags, tag)
}

// SetCode installs the function body.
func (f *Function) SetCode(block *CodeBlock) { f.Code = block }

// GetCode returns the function body, nil before one is installed.
func (f *Function) GetCode() *CodeBlock { return f.Code }

// SetReturnExpression installs the return expression.
func (f *Function) SetReturnExpression(e *Expression) { f.Return = e }

// SetReturnInitialization installs the return initialization form.
func (f *Function) SetReturnInitialization(init *Initialization) { f.ReturnInit = init }

// ParameterNames lists the parameter name handles in declaration order.
func (f *Function) ParameterNames() []stringpool.Handle {
	names := make([]stringpool.Handle, 0, len(f.Params))
	for _, p := range f.Params {
		names = append(names, p.Name)
	}
	return names
}

// IsParameterLocalVariable reports whether the named parameter binds a
// local variable in the function body. Named parameters do; pattern
// expressions, function references, and nothing slots do not.
func (f *Function) IsParameterLocalVariable(name stringpool.Handle) bool {
	for _, p := range f.Params {
		if p.Name == name {
			_, named := p.Param.(*FunctionParamNamed)
			return named
		}
	}
	return false
}

// ParameterType resolves the declared type of the named parameter.
func (f *Function) ParameterType(name stringpool.Handle, prog *Program) types.TypeID {
	for _, p := range f.Params {
		if p.Name == name {
			if named, ok := p.Param.(*FunctionParamNamed); ok {
				return prog.LookupType(named.Type)
			}
		}
	}
	return types.Error
}

// IsParameterReference reports whether the named parameter has reference
// semantics.
func (f *Function) IsParameterReference(name stringpool.Handle) bool {
	for _, p := range f.Params {
		if p.Name == name {
			if named, ok := p.Param.(*FunctionParamNamed); ok {
				return named.IsReference
			}
		}
	}
	return false
}

// HasPatternParams reports whether any parameter is the pattern-matched
// expression form.
func (f *Function) HasPatternParams() bool {
	for _, p := range f.Params {
		if _, ok := p.Param.(*FunctionParamExpression); ok {
			return true
		}
	}
	return false
}
