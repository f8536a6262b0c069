package source

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column location in a source buffer.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Buffer pairs a source text with the file name it was loaded from. The
// compile session keeps one Buffer alive for the duration of a pass; every
// Ident handed to the pass must point into it.
type Buffer struct {
	Text string
	Name string
}

// FindLine computes the 1-based line number of the identifier's first
// character. Identifiers that fall outside the buffer report line 0.
func (b *Buffer) FindLine(id Ident) int {
	if id.Off < 0 || id.Off > len(b.Text) {
		return 0
	}
	return 1 + strings.Count(b.Text[:id.Off], "\n")
}

// FindColumn computes the 1-based column of the identifier's first
// character, counting from the most recent newline.
func (b *Buffer) FindColumn(id Ident) int {
	if id.Off < 0 || id.Off > len(b.Text) {
		return 0
	}
	nl := strings.LastIndexByte(b.Text[:id.Off], '\n')
	return id.Off - nl
}

// FindSource returns the name of the buffer the identifier points into.
func (b *Buffer) FindSource(id Ident) string {
	return b.Name
}

// PositionOf bundles the line/column lookups into a Position.
func (b *Buffer) PositionOf(id Ident) Position {
	return Position{
		Line:   b.FindLine(id),
		Column: b.FindColumn(id),
		Offset: id.Off,
	}
}

// Contains reports whether the identifier's span lies inside the buffer.
func (b *Buffer) Contains(id Ident) bool {
	return id.Off >= 0 && id.End() <= len(b.Text)
}
