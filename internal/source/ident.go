// Package source defines the textual leaves of the Epoch AST: identifiers
// and literal tokens that borrow their storage from the original source
// buffer, plus the position math used for diagnostics.
package source

// Ident is a borrowed slice of the source text. Text aliases the source
// buffer (Go strings share backing storage, so no copy is made) and Off is
// the byte offset of the slice within that buffer. Identifiers are cheap to
// copy and never own storage; they remain valid for the lifetime of the
// source buffer.
type Ident struct {
	Text string
	Off  int
}

// MakeIdent borrows the half-open byte range [begin, end) of src.
func MakeIdent(src string, begin, end int) Ident {
	return Ident{Text: src[begin:end], Off: begin}
}

// Begin returns the byte offset of the first character.
func (id Ident) Begin() int { return id.Off }

// End returns the byte offset one past the last character.
func (id Ident) End() int { return id.Off + len(id.Text) }

// Empty reports whether the identifier covers no characters.
func (id Ident) Empty() bool { return len(id.Text) == 0 }

// Equal compares two identifiers structurally, character by character.
// Two identifiers with the same spelling are equal even when they point at
// different occurrences in the buffer.
func (id Ident) Equal(other Ident) bool { return id.Text == other.Text }

func (id Ident) String() string { return id.Text }
