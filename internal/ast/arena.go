package ast

import "errors"

// ErrArenaExhausted is reported (via panic, recovered at the pass boundary)
// when the arena cannot obtain more backing memory for nodes.
var ErrArenaExhausted = errors.New("ast: arena exhausted")

// Arena owns every AST node built for one compilation. Allocation is O(1);
// dropping the whole arena at the end of the pass is O(1) as well. There is
// no per-node free list: nodes live exactly as long as the arena.
//
// The arena is not safe for concurrent allocation; a single compilation
// owns its arena for the duration of parsing and lowering.
type Arena struct {
	// limit caps the number of live nodes; zero means unbounded. The cap
	// exists so hosts embedding the compiler can bound a runaway parse.
	limit int

	retained []any
}

// NewArena creates an unbounded arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewArenaWithLimit creates an arena that refuses to allocate more than
// limit nodes.
func NewArenaWithLimit(limit int) *Arena {
	return &Arena{limit: limit}
}

// Len reports how many nodes the arena currently owns.
func (a *Arena) Len() int { return len(a.retained) }

// Release drops every node the arena owns.
func (a *Arena) Release() { a.retained = nil }

func (a *Arena) keep(n any) {
	if a.limit > 0 && len(a.retained) >= a.limit {
		panic(ErrArenaExhausted)
	}
	a.retained = append(a.retained, n)
}

// Alloc returns a zero-valued node cell owned by the arena. The returned
// pointer stays valid until Release.
func Alloc[T any](a *Arena) *T {
	cell := new(T)
	a.keep(cell)
	return cell
}
