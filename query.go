package tsuiseki

// QueryIter streams the rows of every archetype matched by a set of terms.
// One Next/accessor pass per instance; Reset rewinds, and a fresh Query call
// is equivalent. Iteration must not be interleaved with world mutation.
type QueryIter struct {
	world   *World
	terms   []Term
	cur     cursor
	archIdx int
	length  int // rows in the current archetype
}

// Query builds an iterator over all entities matching every term. A query
// matching zero archetypes or zero rows is not an error; the iterator is
// simply empty.
func (w *World) Query(terms ...Term) *QueryIter {
	it := &QueryIter{world: w, terms: terms}
	it.cur.row = -1
	for _, t := range terms {
		t.bind(&it.cur)
	}
	return it
}

// Next advances to the next matching row. It returns false once all
// archetypes are exhausted. Term accessors and Entity are only valid after
// Next has returned true.
func (it *QueryIter) Next() bool {
	for {
		it.cur.row++
		if it.cur.row < it.length {
			if it.skipRow(it.cur.row) {
				continue
			}
			return true
		}
		if !it.nextArchetype() {
			return false
		}
	}
}

func (it *QueryIter) skipRow(row int) bool {
	for _, t := range it.terms {
		if t.skip(row) {
			return true
		}
	}
	return false
}

// nextArchetype advances to the next archetype every term anchors on.
// Non-matching archetypes are normal control flow, not errors.
func (it *QueryIter) nextArchetype() bool {
	for it.archIdx < len(it.world.archetypes) {
		a := it.world.archetypes[it.archIdx]
		it.archIdx++
		if a.len() == 0 {
			continue
		}
		anchored := true
		for _, t := range it.terms {
			if !t.anchor(a) {
				anchored = false
				break
			}
		}
		if !anchored {
			continue
		}
		it.cur.arch = a
		it.length = a.len()
		it.cur.row = -1
		return true
	}
	return false
}

// Entity returns the entity at the current row.
func (it *QueryIter) Entity() Entity {
	return it.cur.arch.entities[it.cur.row]
}

// Reset rewinds the iterator to the beginning, picking up archetypes created
// since construction.
func (it *QueryIter) Reset() {
	it.archIdx = 0
	it.length = 0
	it.cur.arch = nil
	it.cur.row = -1
}

// Len reports the number of rows the query would yield. exact is false when
// any term filters rows (Added, Mutated, Changed, a filtering Or): their
// membership depends on per-row state only a full scan can observe, and the
// count is then left at zero.
func (it *QueryIter) Len() (n int, exact bool) {
	for _, t := range it.terms {
		if !t.unfiltered() {
			return 0, false
		}
	}
	for _, a := range it.world.archetypes {
		if a.len() == 0 {
			continue
		}
		match := true
		for _, t := range it.terms {
			if !t.matches(a) {
				match = false
				break
			}
		}
		if match {
			n += a.len()
		}
	}
	return n, true
}

// Access returns the union of the declared access of all terms.
func (it *QueryIter) Access() QueryAccess {
	var acc QueryAccess
	for _, t := range it.terms {
		t.appendAccess(&acc)
	}
	return acc
}
