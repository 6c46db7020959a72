package tsuiseki

import "unsafe"

// cursor is the shared iteration state query terms read their current
// archetype and row from.
type cursor struct {
	arch *archetype
	row  int
}

// Term is one clause of a query: a compile-time-typed capability descriptor
// paired with an O(1), allocation-free per-archetype runtime cursor.
//
// Anchoring never panics on a non-matching archetype; returning false is
// normal control flow and the iterator silently moves on.
type Term interface {
	// bind attaches the term to an iterator's row cursor. Called once, before
	// any anchoring.
	bind(c *cursor)
	// matches reports whether the archetype participates, without touching
	// cursor state.
	matches(a *archetype) bool
	// anchor prepares column access for the archetype. Returning false
	// rejects the whole archetype for this query.
	anchor(a *archetype) bool
	// skip reports whether the given row fails this term's row filter.
	skip(row int) bool
	// unfiltered reports whether skip is constant false, which is what allows
	// exact length reporting on the iterator.
	unfiltered() bool
	// appendAccess merges the term's declared access into acc.
	appendAccess(acc *QueryAccess)
}

// RefTerm is the runtime cursor for read-only access to component T.
type RefTerm[T any] struct {
	c    *cursor
	base unsafe.Pointer
	size uintptr
	id   uint8
}

// Ref builds a query term providing read-only access to component T.
// Archetypes lacking T are skipped entirely.
func Ref[T any](w *World) *RefTerm[T] {
	id := componentID[T](w)
	return &RefTerm[T]{
		id:   id,
		size: w.components.compIDToSize[id],
		base: unsafe.Pointer(&zeroSized), // placeholder, never dereferenced
	}
}

func (t *RefTerm[T]) bind(c *cursor) { t.c = c }
func (t *RefTerm[T]) matches(a *archetype) bool { return a.has(t.id) }
func (t *RefTerm[T]) skip(int) bool { return false }
func (t *RefTerm[T]) unfiltered() bool { return true }
func (t *RefTerm[T]) appendAccess(acc *QueryAccess) { acc.addRead(t.id) }

func (t *RefTerm[T]) anchor(a *archetype) bool {
	if !a.has(t.id) {
		return false
	}
	t.base = a.basePtr(a.slot(t.id))
	return true
}

// Get returns the component for the current row. The value must be treated as
// read-only; use Mut for write access so the change tracker sees the write.
func (t *RefTerm[T]) Get() *T {
	return (*T)(unsafe.Add(t.base, uintptr(t.c.row)*t.size))
}

// MutTerm is the runtime cursor for mutable access to component T.
type MutTerm[T any] struct {
	c       *cursor
	base    unsafe.Pointer
	mutated []bool
	size    uintptr
	id      uint8
}

// Mut builds a query term providing mutable access to component T. Obtaining
// the component through Get marks the row mutated.
func Mut[T any](w *World) *MutTerm[T] {
	id := componentID[T](w)
	return &MutTerm[T]{
		id:   id,
		size: w.components.compIDToSize[id],
		base: unsafe.Pointer(&zeroSized),
	}
}

func (t *MutTerm[T]) bind(c *cursor) { t.c = c }
func (t *MutTerm[T]) matches(a *archetype) bool { return a.has(t.id) }
func (t *MutTerm[T]) skip(int) bool { return false }
func (t *MutTerm[T]) unfiltered() bool { return true }
func (t *MutTerm[T]) appendAccess(acc *QueryAccess) { acc.addWrite(t.id) }

func (t *MutTerm[T]) anchor(a *archetype) bool {
	s := a.slot(t.id)
	if s < 0 {
		return false
	}
	t.base = a.basePtr(s)
	t.mutated = a.mutated[s]
	return true
}

// Get returns the component for the current row and sets its mutated bit.
// The bit is set on every call, whether or not the caller actually writes
// through the pointer; the tracker deliberately over-approximates.
func (t *MutTerm[T]) Get() *T {
	t.mutated[t.c.row] = true
	return (*T)(unsafe.Add(t.base, uintptr(t.c.row)*t.size))
}
