package ir

import (
	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

// CodeBlockEntry is any lowered construct a code block can hold.
type CodeBlockEntry interface {
	codeBlockEntry()
}

func (*Statement) codeBlockEntry()      {}
func (*PreOpStatement) codeBlockEntry() {}
func (*PostOpStatement) codeBlockEntry() {}
func (*Assignment) codeBlockEntry()     {}
func (*Entity) codeBlockEntry()         {}
func (*CodeBlock) codeBlockEntry()      {}
func (*Initialization) codeBlockEntry() {}

// CodeBlock owns an ordered entry list and (usually) its lexical scope.
// Blocks attached directly to the program borrow the global scope instead
// of owning one; everything else owns a fresh scope chained under the
// enclosing block's.
type CodeBlock struct {
	Entries []CodeBlockEntry

	scope     *ScopeDescription
	ownsScope bool

	// ScopeName is the internal name the program allocates for this
	// block's scope; it never collides with a source identifier.
	ScopeName stringpool.Handle
}

// NewCodeBlock wraps a scope. ownsScope records whether the block owns the
// scope or borrows it (the global scope case).
func NewCodeBlock(scope *ScopeDescription, ownsScope bool) *CodeBlock {
	return &CodeBlock{scope: scope, ownsScope: ownsScope}
}

// Scope returns the block's lexical scope.
func (b *CodeBlock) Scope() *ScopeDescription { return b.scope }

// OwnsScope reports whether the block owns its scope.
func (b *CodeBlock) OwnsScope() bool { return b.ownsScope }

// AddEntry appends an entry in lowering order.
func (b *CodeBlock) AddEntry(entry CodeBlockEntry) {
	b.Entries = append(b.Entries, entry)
}

// AddVariable adds a variable to the block's scope.
func (b *CodeBlock) AddVariable(name string, handle stringpool.Handle, t types.TypeID, isRef bool, origin VariableOrigin) {
	b.scope.AddVariable(name, handle, t, isRef, origin)
}
