package tsuiseki

// GetComponent retrieves a pointer to the component of type T for the given
// entity. Read access only; the change tracker is not touched. Returns false
// if the entity is invalid or does not have the component.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	if !w.IsValid(e) {
		return nil, false
	}
	meta := w.metas[e.ID]
	a := w.archetypes[meta.archetypeIndex]
	id := componentID[T](w)
	s := a.slot(id)
	if s < 0 {
		return nil, false
	}
	return (*T)(a.rowPtr(s, meta.index)), true
}

// GetMut retrieves a mutable pointer to the component of type T for the
// given entity and marks it mutated. The bit is set at borrow time whether
// or not the caller writes through the pointer; the tracker deliberately
// over-approximates. Returns ErrNoSuchEntity for dead entities and
// MissingComponentError when the archetype lacks T.
func GetMut[T any](w *World, e Entity) (*T, error) {
	if !w.IsValid(e) {
		return nil, ErrNoSuchEntity
	}
	meta := w.metas[e.ID]
	a := w.archetypes[meta.archetypeIndex]
	id := componentID[T](w)
	s := a.slot(id)
	if s < 0 {
		return nil, missingComponent[T]()
	}
	a.mutated[s][meta.index] = true
	return (*T)(a.rowPtr(s, meta.index)), nil
}

// HasComponent reports whether a live entity carries component T.
func HasComponent[T any](w *World, e Entity) bool {
	return w.entityHas(e, componentID[T](w))
}
