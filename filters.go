package tsuiseki

import "unsafe"

// AddedTerm yields rows whose T component was written into a previously
// empty slot since the last ClearTrackers.
type AddedTerm[T any] struct {
	c     *cursor
	base  unsafe.Pointer
	added []bool
	size  uintptr
	id    uint8
}

// Added builds a filter term matching components of type T added since the
// last ClearTrackers. Access to the value is read-only.
func Added[T any](w *World) *AddedTerm[T] {
	id := componentID[T](w)
	return &AddedTerm[T]{
		id:   id,
		size: w.components.compIDToSize[id],
		base: unsafe.Pointer(&zeroSized),
	}
}

func (t *AddedTerm[T]) bind(c *cursor) { t.c = c }
func (t *AddedTerm[T]) matches(a *archetype) bool { return a.has(t.id) }
func (t *AddedTerm[T]) unfiltered() bool { return false }
func (t *AddedTerm[T]) appendAccess(acc *QueryAccess) { acc.addRead(t.id) }

func (t *AddedTerm[T]) anchor(a *archetype) bool {
	s := a.slot(t.id)
	if s < 0 {
		return false
	}
	t.base = a.basePtr(s)
	t.added = a.added[s]
	return true
}

func (t *AddedTerm[T]) skip(row int) bool {
	return !t.added[row]
}

// Get returns the component for the current row, read-only.
func (t *AddedTerm[T]) Get() *T {
	return (*T)(unsafe.Add(t.base, uintptr(t.c.row)*t.size))
}

// MutatedTerm yields rows whose T component was written through mutable
// access since the last ClearTrackers. Added components do not count.
type MutatedTerm[T any] struct {
	c       *cursor
	base    unsafe.Pointer
	mutated []bool
	size    uintptr
	id      uint8
}

// Mutated builds a filter term matching components of type T mutated since
// the last ClearTrackers. Access to the value is read-only.
func Mutated[T any](w *World) *MutatedTerm[T] {
	id := componentID[T](w)
	return &MutatedTerm[T]{
		id:   id,
		size: w.components.compIDToSize[id],
		base: unsafe.Pointer(&zeroSized),
	}
}

func (t *MutatedTerm[T]) bind(c *cursor) { t.c = c }
func (t *MutatedTerm[T]) matches(a *archetype) bool { return a.has(t.id) }
func (t *MutatedTerm[T]) unfiltered() bool { return false }
func (t *MutatedTerm[T]) appendAccess(acc *QueryAccess) { acc.addRead(t.id) }

func (t *MutatedTerm[T]) anchor(a *archetype) bool {
	s := a.slot(t.id)
	if s < 0 {
		return false
	}
	t.base = a.basePtr(s)
	t.mutated = a.mutated[s]
	return true
}

func (t *MutatedTerm[T]) skip(row int) bool {
	return !t.mutated[row]
}

// Get returns the component for the current row, read-only.
func (t *MutatedTerm[T]) Get() *T {
	return (*T)(unsafe.Add(t.base, uintptr(t.c.row)*t.size))
}

// ChangedTerm yields rows whose T component was either added or mutated
// since the last ClearTrackers.
type ChangedTerm[T any] struct {
	c       *cursor
	base    unsafe.Pointer
	added   []bool
	mutated []bool
	size    uintptr
	id      uint8
}

// Changed builds a filter term matching components of type T added or
// mutated since the last ClearTrackers. Access to the value is read-only.
func Changed[T any](w *World) *ChangedTerm[T] {
	id := componentID[T](w)
	return &ChangedTerm[T]{
		id:   id,
		size: w.components.compIDToSize[id],
		base: unsafe.Pointer(&zeroSized),
	}
}

func (t *ChangedTerm[T]) bind(c *cursor) { t.c = c }
func (t *ChangedTerm[T]) matches(a *archetype) bool { return a.has(t.id) }
func (t *ChangedTerm[T]) unfiltered() bool { return false }
func (t *ChangedTerm[T]) appendAccess(acc *QueryAccess) { acc.addRead(t.id) }

func (t *ChangedTerm[T]) anchor(a *archetype) bool {
	s := a.slot(t.id)
	if s < 0 {
		return false
	}
	t.base = a.basePtr(s)
	t.added = a.added[s]
	t.mutated = a.mutated[s]
	return true
}

func (t *ChangedTerm[T]) skip(row int) bool {
	return !t.added[row] && !t.mutated[row]
}

// Get returns the component for the current row, read-only.
func (t *ChangedTerm[T]) Get() *T {
	return (*T)(unsafe.Add(t.base, uintptr(t.c.row)*t.size))
}

// WithTerm restricts a query to archetypes that contain T without exposing
// T's value.
type WithTerm struct {
	id uint8
}

// With builds a filter term requiring the presence of component T.
func With[T any](w *World) *WithTerm {
	return &WithTerm{id: componentID[T](w)}
}

func (t *WithTerm) bind(*cursor) {}
func (t *WithTerm) matches(a *archetype) bool { return a.has(t.id) }
func (t *WithTerm) anchor(a *archetype) bool { return a.has(t.id) }
func (t *WithTerm) skip(int) bool { return false }
func (t *WithTerm) unfiltered() bool { return true }
func (t *WithTerm) appendAccess(acc *QueryAccess) { acc.addWith(t.id) }

// WithoutTerm restricts a query to archetypes that lack T.
type WithoutTerm struct {
	id uint8
}

// Without builds a filter term requiring the absence of component T.
func Without[T any](w *World) *WithoutTerm {
	return &WithoutTerm{id: componentID[T](w)}
}

func (t *WithoutTerm) bind(*cursor) {}
func (t *WithoutTerm) matches(a *archetype) bool { return !a.has(t.id) }
func (t *WithoutTerm) anchor(a *archetype) bool { return !a.has(t.id) }
func (t *WithoutTerm) skip(int) bool { return false }
func (t *WithoutTerm) unfiltered() bool { return true }
func (t *WithoutTerm) appendAccess(acc *QueryAccess) { acc.addWithout(t.id) }

// OptTerm makes an inner term optional: archetypes the inner term rejects
// still participate, with the inner accessor reported absent. Callers must
// check Present before touching the inner term's accessor.
type OptTerm struct {
	inner   Term
	present bool
}

// Opt wraps a term so that its absence no longer rejects an archetype.
func Opt(inner Term) *OptTerm {
	return &OptTerm{inner: inner}
}

func (t *OptTerm) bind(c *cursor) { t.inner.bind(c) }
func (t *OptTerm) matches(*archetype) bool { return true }

func (t *OptTerm) anchor(a *archetype) bool {
	t.present = t.inner.anchor(a)
	return true
}

func (t *OptTerm) skip(row int) bool {
	if !t.present {
		return false
	}
	return t.inner.skip(row)
}

func (t *OptTerm) unfiltered() bool { return t.inner.unfiltered() }
func (t *OptTerm) appendAccess(acc *QueryAccess) { t.inner.appendAccess(acc) }

// Present reports whether the inner term matched the current archetype.
func (t *OptTerm) Present() bool {
	return t.present
}

// OrTerm unites the row filters of several terms: a row qualifies when any
// branch wants it. Archetype matching stays a logical AND, same as the rest
// of the query; only the per-row skip is inverted.
type OrTerm struct {
	terms []Term
}

// Or combines change-filter terms so a row passes if at least one branch
// passes. Every branch's component must still be present on the archetype.
func Or(terms ...Term) *OrTerm {
	return &OrTerm{terms: terms}
}

func (t *OrTerm) bind(c *cursor) {
	for _, sub := range t.terms {
		sub.bind(c)
	}
}

func (t *OrTerm) matches(a *archetype) bool {
	for _, sub := range t.terms {
		if !sub.matches(a) {
			return false
		}
	}
	return true
}

func (t *OrTerm) anchor(a *archetype) bool {
	for _, sub := range t.terms {
		if !sub.anchor(a) {
			return false
		}
	}
	return true
}

func (t *OrTerm) skip(row int) bool {
	for _, sub := range t.terms {
		if !sub.skip(row) {
			return false
		}
	}
	return true
}

func (t *OrTerm) unfiltered() bool {
	for _, sub := range t.terms {
		if !sub.unfiltered() {
			return false
		}
	}
	return true
}

func (t *OrTerm) appendAccess(acc *QueryAccess) {
	for _, sub := range t.terms {
		sub.appendAccess(acc)
	}
}
