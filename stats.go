package tsuiseki

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// fingerprintNames hashes a component-type-name set into a stable archetype
// identity. Unlike the mask, it does not depend on registration order, so it
// can be compared across runs and across worlds.
func fingerprintNames(names []string) uint64 {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	h := xxhash.New()
	for _, n := range sorted {
		_, _ = h.WriteString(n)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// ArchetypeStats is a snapshot of one archetype.
type ArchetypeStats struct {
	Components  []string
	Rows        int
	Fingerprint uint64
}

// WorldStats is a point-in-time snapshot of the world's storage shape,
// intended for debugging and metrics export.
type WorldStats struct {
	WorldID string
	// ArchetypeVersion increments whenever a new archetype is created, so a
	// consumer can cache derived data until the storage shape changes.
	ArchetypeVersion uint32
	Entities         int
	Archetypes       []ArchetypeStats
}

// Stats captures the current storage shape. The snapshot is detached; later
// mutations do not affect it.
func (w *World) Stats() WorldStats {
	st := WorldStats{
		WorldID:          w.id.String(),
		ArchetypeVersion: w.archVer,
		Entities:         len(w.metas) - len(w.freeIDs),
		Archetypes:       make([]ArchetypeStats, len(w.archetypes)),
	}
	for i, a := range w.archetypes {
		names := make([]string, len(a.compOrder))
		for j, cid := range a.compOrder {
			names[j] = w.components.compIDToType[cid].String()
		}
		st.Archetypes[i] = ArchetypeStats{
			Components:  names,
			Rows:        a.len(),
			Fingerprint: a.fingerprint,
		}
	}
	return st
}
