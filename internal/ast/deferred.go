package ast

// Deferred is a transparent holder for a node whose construction is put off
// until first write access. A backtracking parser copies holders freely
// while trying alternative productions; copying shares the underlying cell
// rather than the contents, so a failed alternative costs a pointer copy
// instead of a node copy.
//
// A Deferred is either empty or points at exactly one live cell in the
// arena. The arena owns the cell; holders never free it.
type Deferred[T any] struct {
	cell *T
}

// Defer wraps an already-allocated cell in a holder.
func Defer[T any](cell *T) Deferred[T] {
	return Deferred[T]{cell: cell}
}

// Empty reports whether the holder has materialised a cell yet.
func (d Deferred[T]) Empty() bool { return d.cell == nil }

// Ptr returns the held cell, or nil for an empty holder. Read access never
// materialises.
func (d Deferred[T]) Ptr() *T { return d.cell }

// Ensure returns the held cell, materialising a default-constructed one in
// the arena on first write access.
func (d *Deferred[T]) Ensure(a *Arena) *T {
	if d.cell == nil {
		d.cell = Alloc[T](a)
	}
	return d.cell
}

// DeferredContainer wraps an ordered sequence the same way Deferred wraps a
// single node: the backing slice is materialised on first insertion and
// shared between copies of the holder.
type DeferredContainer[T any] struct {
	cell *container[T]
}

type container[T any] struct {
	items []T
}

// Empty reports whether the container holds no items.
func (d DeferredContainer[T]) Empty() bool {
	return d.cell == nil || len(d.cell.items) == 0
}

// Len reports the number of held items.
func (d DeferredContainer[T]) Len() int {
	if d.cell == nil {
		return 0
	}
	return len(d.cell.items)
}

// Items exposes the backing slice for iteration. The slice is nil for an
// empty holder.
func (d DeferredContainer[T]) Items() []T {
	if d.cell == nil {
		return nil
	}
	return d.cell.items
}

// Insert appends an item, materialising the backing container on first use.
func (d *DeferredContainer[T]) Insert(a *Arena, item T) {
	if d.cell == nil {
		d.cell = Alloc[container[T]](a)
	}
	d.cell.items = append(d.cell.items, item)
}
