package tsuiseki

// spawnRow places a fresh entity into arch and records its index entry.
func (w *World) spawnRow(arch *archetype) (Entity, int) {
	e := w.allocEntity()
	row := arch.alloc(e)
	meta := &w.metas[e.ID]
	meta.archetypeIndex = arch.index
	meta.index = row
	return e, row
}

// archetypeByIDs locates or creates the archetype for the exact component set.
func (w *World) archetypeByIDs(ids ...uint8) *archetype {
	mask := makeMask(ids...)
	if idx, ok := w.maskToArch[mask]; ok {
		return w.archetypes[idx]
	}
	specs := make([]compSpec, len(ids))
	for i, id := range ids {
		specs[i] = w.spec(id)
	}
	return w.getOrCreateArchetype(mask, specs)
}

// setComp writes a component value into a row, optionally marking it added.
func setComp[T any](arch *archetype, row int, id uint8, v T, markAdded bool) {
	s := arch.slot(id)
	*(*T)(arch.rowPtr(s, row)) = v
	if markAdded {
		arch.added[s][row] = true
	}
}

// SpawnEmpty allocates a fresh entity with no components.
func (w *World) SpawnEmpty() Entity {
	arch := w.getOrCreateArchetype(bitmask256{}, nil)
	e, _ := w.spawnRow(arch)
	return e
}

// Spawn allocates a fresh entity with component a, marking it added.
func Spawn[A any](w *World, a A) Entity {
	idA := componentID[A](w)
	arch := w.archetypeByIDs(idA)
	e, row := w.spawnRow(arch)
	setComp(arch, row, idA, a, true)
	return e
}

// Spawn2 allocates a fresh entity with two components, marking both added.
func Spawn2[A, B any](w *World, a A, b B) Entity {
	idA := componentID[A](w)
	idB := componentID[B](w)
	arch := w.archetypeByIDs(idA, idB)
	e, row := w.spawnRow(arch)
	setComp(arch, row, idA, a, true)
	setComp(arch, row, idB, b, true)
	return e
}

// Spawn3 allocates a fresh entity with three components, marking all added.
func Spawn3[A, B, C any](w *World, a A, b B, c C) Entity {
	idA := componentID[A](w)
	idB := componentID[B](w)
	idC := componentID[C](w)
	arch := w.archetypeByIDs(idA, idB, idC)
	e, row := w.spawnRow(arch)
	setComp(arch, row, idA, a, true)
	setComp(arch, row, idB, b, true)
	setComp(arch, row, idC, c, true)
	return e
}

// Spawn4 allocates a fresh entity with four components, marking all added.
func Spawn4[A, B, C, D any](w *World, a A, b B, c C, d D) Entity {
	idA := componentID[A](w)
	idB := componentID[B](w)
	idC := componentID[C](w)
	idD := componentID[D](w)
	arch := w.archetypeByIDs(idA, idB, idC, idD)
	e, row := w.spawnRow(arch)
	setComp(arch, row, idA, a, true)
	setComp(arch, row, idB, b, true)
	setComp(arch, row, idC, c, true)
	setComp(arch, row, idD, d, true)
	return e
}

// SpawnBatch allocates count entities all carrying component value a.
func SpawnBatch[A any](w *World, count int, a A) []Entity {
	if count <= 0 {
		return nil
	}
	idA := componentID[A](w)
	arch := w.archetypeByIDs(idA)
	ents := make([]Entity, count)
	for i := range ents {
		e, row := w.spawnRow(arch)
		setComp(arch, row, idA, a, true)
		ents[i] = e
	}
	return ents
}
