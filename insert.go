package tsuiseki

// moveRow migrates an entity's row from src to dst, carrying component
// values and their added/mutated bits for every component present in both
// archetypes. Changed-state survives the migration. The vacated source row
// is swap-removed and the relocated entity's index entry rewritten as an
// explicit second step.
func (w *World) moveRow(e Entity, meta *entityMeta, src, dst *archetype) int {
	oldRow := meta.index
	newRow := dst.alloc(e)
	for s, cid := range src.compOrder {
		ds := dst.slot(cid)
		if ds < 0 {
			continue
		}
		size := src.compSizes[s]
		if size > 0 {
			copy(dst.columns[ds][uintptr(newRow)*size:uintptr(newRow+1)*size],
				src.columns[s][uintptr(oldRow)*size:uintptr(oldRow+1)*size])
		}
		dst.added[ds][newRow] = src.added[s][oldRow]
		dst.mutated[ds][newRow] = src.mutated[s][oldRow]
	}
	if moved, ok := src.swapRemove(oldRow); ok {
		w.metas[moved.ID].index = oldRow
	}
	meta.archetypeIndex = dst.index
	meta.index = newRow
	return newRow
}

// insertIDs is the shared migration path of the Insert family. write is
// called with the destination archetype and row to place the new values;
// per-component added marking is the writer's job. Components already
// present keep their change bits and are overwritten in place.
func (w *World) insertIDs(e Entity, ids []uint8, write func(arch *archetype, row int)) error {
	if !w.IsValid(e) {
		return ErrNoSuchEntity
	}
	meta := &w.metas[e.ID]
	src := w.archetypes[meta.archetypeIndex]
	newMask := src.mask
	for _, id := range ids {
		newMask.set(id)
	}
	if newMask == src.mask {
		// all components already present; overwrite values in place
		write(src, meta.index)
		return nil
	}
	var dst *archetype
	if idx, ok := w.maskToArch[newMask]; ok {
		dst = w.archetypes[idx]
	} else {
		dst = w.getOrCreateArchetype(newMask, w.specsFor(src, ids, bitmask256{}))
	}
	row := w.moveRow(e, meta, src, dst)
	write(dst, row)
	return nil
}

// Insert adds component a to an entity, migrating it to the archetype for
// its widened component set. A newly present component is marked added; a
// component the entity already had is overwritten with its change bits left
// untouched. Existing components carry their bits across the migration.
func Insert[A any](w *World, e Entity, a A) error {
	idA := componentID[A](w)
	hadA := w.entityHas(e, idA)
	return w.insertIDs(e, []uint8{idA}, func(arch *archetype, row int) {
		setComp(arch, row, idA, a, !hadA)
	})
}

// Insert2 adds two components to an entity. See Insert.
func Insert2[A, B any](w *World, e Entity, a A, b B) error {
	idA := componentID[A](w)
	idB := componentID[B](w)
	hadA := w.entityHas(e, idA)
	hadB := w.entityHas(e, idB)
	return w.insertIDs(e, []uint8{idA, idB}, func(arch *archetype, row int) {
		setComp(arch, row, idA, a, !hadA)
		setComp(arch, row, idB, b, !hadB)
	})
}

// Insert3 adds three components to an entity. See Insert.
func Insert3[A, B, C any](w *World, e Entity, a A, b B, c C) error {
	idA := componentID[A](w)
	idB := componentID[B](w)
	idC := componentID[C](w)
	hadA := w.entityHas(e, idA)
	hadB := w.entityHas(e, idB)
	hadC := w.entityHas(e, idC)
	return w.insertIDs(e, []uint8{idA, idB, idC}, func(arch *archetype, row int) {
		setComp(arch, row, idA, a, !hadA)
		setComp(arch, row, idB, b, !hadB)
		setComp(arch, row, idC, c, !hadC)
	})
}

// Insert4 adds four components to an entity. See Insert.
func Insert4[A, B, C, D any](w *World, e Entity, a A, b B, c C, d D) error {
	idA := componentID[A](w)
	idB := componentID[B](w)
	idC := componentID[C](w)
	idD := componentID[D](w)
	hadA := w.entityHas(e, idA)
	hadB := w.entityHas(e, idB)
	hadC := w.entityHas(e, idC)
	hadD := w.entityHas(e, idD)
	return w.insertIDs(e, []uint8{idA, idB, idC, idD}, func(arch *archetype, row int) {
		setComp(arch, row, idA, a, !hadA)
		setComp(arch, row, idB, b, !hadB)
		setComp(arch, row, idC, c, !hadC)
		setComp(arch, row, idD, d, !hadD)
	})
}

// entityHas reports whether a live entity's archetype contains the component.
func (w *World) entityHas(e Entity, id uint8) bool {
	if !w.IsValid(e) {
		return false
	}
	return w.archetypes[w.metas[e.ID].archetypeIndex].has(id)
}

// RemoveComponent removes component T from an entity, migrating it to the
// archetype for its narrowed component set. The remaining components keep
// their change bits. Removing a component the entity does not have returns
// MissingComponentError.
func RemoveComponent[T any](w *World, e Entity) error {
	if !w.IsValid(e) {
		return ErrNoSuchEntity
	}
	meta := &w.metas[e.ID]
	src := w.archetypes[meta.archetypeIndex]
	id := componentID[T](w)
	if !src.has(id) {
		return missingComponent[T]()
	}
	newMask := src.mask
	newMask.unset(id)
	var dst *archetype
	if idx, ok := w.maskToArch[newMask]; ok {
		dst = w.archetypes[idx]
	} else {
		dst = w.getOrCreateArchetype(newMask, w.specsFor(src, nil, makeMask(id)))
	}
	w.moveRow(e, meta, src, dst)
	return nil
}
