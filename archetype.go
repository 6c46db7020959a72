package tsuiseki

import "unsafe"

// zeroSized backs component pointers for zero-size types, so that accessors
// never hand out a nil pointer.
var zeroSized byte

// archetype holds columnar storage for one unique component-set mask.
//
// Every per-row array (entities, each component column, each change-tracking
// array) has the same logical length at all times. A component column is a
// byte arena indexed by row*size; the query layer trusts the iterator's
// bounds instead of re-checking per access.
type archetype struct {
	mask        bitmask256
	compOrder   []uint8   // component IDs in this archetype
	compSizes   []uintptr // parallel to compOrder
	columns     [][]byte  // parallel to compOrder, len = rows*size
	added       [][]bool  // parallel to compOrder, len = rows
	mutated     [][]bool  // parallel to compOrder, len = rows
	entities    []Entity
	slots       [MaxComponentTypes]int16 // column index per component ID, -1 if absent
	index       int                      // position in world.archetypes
	fingerprint uint64                   // registration-order-independent identity
}

// slot returns the column index for a component ID, or -1 if not present.
func (a *archetype) slot(id uint8) int {
	return int(a.slots[id])
}

func (a *archetype) has(id uint8) bool {
	return a.mask.has(id)
}

// len returns the number of rows (entities) in this archetype.
func (a *archetype) len() int {
	return len(a.entities)
}

// basePtr returns the base address of a column, usable as a dangling
// placeholder while the column is empty.
func (a *archetype) basePtr(slot int) unsafe.Pointer {
	col := a.columns[slot]
	if len(col) == 0 {
		return unsafe.Pointer(&zeroSized)
	}
	return unsafe.Pointer(&col[0])
}

// rowPtr returns the address of one component value.
func (a *archetype) rowPtr(slot, row int) unsafe.Pointer {
	size := a.compSizes[slot]
	if size == 0 {
		return unsafe.Pointer(&zeroSized)
	}
	return unsafe.Pointer(&a.columns[slot][uintptr(row)*size])
}

// alloc appends one zeroed row for e and returns its index. Change bits for
// the new row start out false.
func (a *archetype) alloc(e Entity) int {
	row := len(a.entities)
	a.entities = extendSlice(a.entities, 1)
	a.entities[row] = e
	for s, size := range a.compSizes {
		n := int(size)
		col := extendSlice(a.columns[s], n)
		// reslicing within capacity exposes bytes of previously removed rows
		clear(col[len(col)-n:])
		a.columns[s] = col

		ad := extendSlice(a.added[s], 1)
		ad[row] = false
		a.added[s] = ad

		mu := extendSlice(a.mutated[s], 1)
		mu[row] = false
		a.mutated[s] = mu
	}
	return row
}

// swapRemove removes a row by overwriting it with the last row and shrinking
// every per-row array by one. It returns the entity that was relocated into
// the removed slot, if any; the caller must rewrite that entity's index entry.
func (a *archetype) swapRemove(row int) (Entity, bool) {
	lastIdx := len(a.entities) - 1
	var moved Entity
	ok := false
	if row < lastIdx {
		moved = a.entities[lastIdx]
		a.entities[row] = moved
		for s, size := range a.compSizes {
			if size > 0 {
				col := a.columns[s]
				copy(col[uintptr(row)*size:uintptr(row+1)*size], col[uintptr(lastIdx)*size:uintptr(lastIdx+1)*size])
			}
			a.added[s][row] = a.added[s][lastIdx]
			a.mutated[s][row] = a.mutated[s][lastIdx]
		}
		ok = true
	}
	a.entities = a.entities[:lastIdx]
	for s, size := range a.compSizes {
		a.columns[s] = a.columns[s][:uintptr(lastIdx)*size]
		a.added[s] = a.added[s][:lastIdx]
		a.mutated[s] = a.mutated[s][:lastIdx]
	}
	return moved, ok
}

// clearTrackers resets every added/mutated bit in this archetype to false.
func (a *archetype) clearTrackers() {
	for s := range a.compOrder {
		clear(a.added[s])
		clear(a.mutated[s])
	}
}

// reset drops all rows but keeps capacity; change bits vanish with the rows.
func (a *archetype) reset() {
	a.entities = a.entities[:0]
	for s := range a.compOrder {
		a.columns[s] = a.columns[s][:0]
		a.added[s] = a.added[s][:0]
		a.mutated[s] = a.mutated[s][:0]
	}
}
