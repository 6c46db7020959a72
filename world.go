// Package tsuiseki implements an archetype-based Entity Component System
// storage core with per-component change tracking.
//
// Features:
// - Archetype-based columnar storage with max 256 component types.
// - Bitmask for fast archetype lookup.
// - Per-component-per-row added/mutated tracking that survives migration.
// - Composable query terms (Ref, Mut, Added, Mutated, Changed, With,
//   Without, Opt, Or) with zero-allocation per-archetype cursors.
// - Batched iteration for parallel dispatch.
package tsuiseki

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// World owns the archetypes, the entity index, and the component registry.
// Mutation (spawn, insert, remove, despawn) is exclusive and must not be
// interleaved with query iteration; row indices are only stable between
// mutations.
type World struct {
	id           uuid.UUID
	log          *zap.Logger
	resources    *Resources
	events       *EventBus
	components   componentRegistry
	archetypes   []*archetype
	maskToArch   map[bitmask256]int
	metas        []entityMeta // indexed by entity ID
	freeIDs      []uint32     // stack of recycled entity IDs
	nextVer      uint32       // version for the next created entity
	archVer      uint32       // incremented when a new archetype is created
	defaultBatch int          // rows per batch when QueryBatched gets no size
}

// defaultBatchSize is the QueryBatched fallback when no size is configured.
const defaultBatchSize = 64

// Option configures a World at construction time.
type Option func(*World)

// WithLogger attaches a structured logger. The world logs archetype creation
// and capacity growth at debug level. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// WithDefaultBatchSize sets the batch size QueryBatched uses when called
// with a non-positive size.
func WithDefaultBatchSize(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.defaultBatch = n
		}
	}
}

// NewWorld creates and initializes a new World with a pre-allocated entity
// pool of the given initial capacity. The pool grows automatically when
// exhausted.
func NewWorld(initialCapacity int, opts ...Option) *World {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	w := &World{
		id:           uuid.New(),
		log:          zap.NewNop(),
		resources:    &Resources{},
		events:       &EventBus{},
		maskToArch:   make(map[bitmask256]int),
		archetypes:   make([]*archetype, 0, 16),
		metas:        make([]entityMeta, initialCapacity),
		freeIDs:      make([]uint32, initialCapacity),
		nextVer:      1,
		defaultBatch: defaultBatchSize,
	}
	w.components.compTypeMap = make(map[reflect.Type]uint8, 16)
	for i := range w.freeIDs {
		w.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for i := range w.metas {
		w.metas[i].archetypeIndex = -1
		w.metas[i].index = -1
	}
	for _, opt := range opts {
		opt(w)
	}
	// Pre-create the empty archetype so SpawnEmpty never misses.
	w.getOrCreateArchetype(bitmask256{}, nil)
	w.log.Info("world created",
		zap.String("world_id", w.id.String()),
		zap.Int("initial_capacity", initialCapacity))
	return w
}

// ID returns the world's unique identifier, used for log correlation when
// multiple worlds coexist.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Resources returns the world's resource store: a typed key-value store for
// global singletons such as asset managers or timers.
func (w *World) Resources() *Resources {
	return w.resources
}

// Events returns the world's event bus.
func (w *World) Events() *EventBus {
	return w.events
}

// IsValid checks if the entity is currently alive in the world. An entity is
// valid if its ID is within bounds and its version matches the world's current
// version for that ID, which guards against stale references to recycled IDs.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.metas) {
		return false
	}
	meta := w.metas[e.ID]
	return meta.version != 0 && meta.version == e.Version
}

// getOrCreateArchetype returns the archetype for the given mask, creating it
// on first use. Archetypes are never destroyed; empty ones are retained for
// reuse. specs describe the component set when the archetype must be built.
func (w *World) getOrCreateArchetype(mask bitmask256, specs []compSpec) *archetype {
	if idx, ok := w.maskToArch[mask]; ok {
		return w.archetypes[idx]
	}
	a := &archetype{
		index:     len(w.archetypes),
		mask:      mask,
		compOrder: make([]uint8, len(specs)),
		compSizes: make([]uintptr, len(specs)),
		columns:   make([][]byte, len(specs)),
		added:     make([][]bool, len(specs)),
		mutated:   make([][]bool, len(specs)),
	}
	for i := range a.slots {
		a.slots[i] = -1
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].id < specs[j].id })
	names := make([]string, len(specs))
	for i, sp := range specs {
		a.compOrder[i] = sp.id
		a.compSizes[i] = sp.size
		a.columns[i] = []byte{}
		a.added[i] = []bool{}
		a.mutated[i] = []bool{}
		a.slots[sp.id] = int16(i)
		names[i] = sp.typ.String()
	}
	a.fingerprint = fingerprintNames(names)
	w.archetypes = append(w.archetypes, a)
	w.maskToArch[mask] = a.index
	w.archVer++
	w.log.Debug("archetype created",
		zap.String("world_id", w.id.String()),
		zap.Int("archetype", a.index),
		zap.Strings("components", names),
		zap.Uint64("fingerprint", a.fingerprint))
	return a
}

// specsFor assembles the compSpec list matching an archetype's component set,
// optionally adding or dropping IDs. add entries already present are ignored.
func (w *World) specsFor(a *archetype, add []uint8, drop bitmask256) []compSpec {
	specs := make([]compSpec, 0, len(a.compOrder)+len(add))
	for _, cid := range a.compOrder {
		if drop.has(cid) {
			continue
		}
		specs = append(specs, w.spec(cid))
	}
	for _, cid := range add {
		if !a.has(cid) {
			specs = append(specs, w.spec(cid))
		}
	}
	return specs
}

func (w *World) spec(id uint8) compSpec {
	return compSpec{
		id:   id,
		typ:  w.components.compIDToType[id],
		size: w.components.compIDToSize[id],
	}
}

// allocEntity pops a free entity ID, growing the pool when empty.
func (w *World) allocEntity() Entity {
	if len(w.freeIDs) == 0 {
		w.expand(1)
	}
	last := len(w.freeIDs) - 1
	id := w.freeIDs[last]
	w.freeIDs = w.freeIDs[:last]
	meta := &w.metas[id]
	meta.version = w.nextVer
	w.nextVer++
	return Entity{ID: id, Version: meta.version}
}

// expand grows the entity pool to hold at least additional more entities.
func (w *World) expand(additional int) {
	oldCap := len(w.metas)
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 1
	}
	if newCap < oldCap+additional {
		newCap = oldCap + additional
	}
	delta := newCap - oldCap
	newMetas := make([]entityMeta, delta)
	for i := range newMetas {
		newMetas[i].archetypeIndex = -1
		newMetas[i].index = -1
	}
	w.metas = append(w.metas, newMetas...)
	for i := 0; i < delta; i++ {
		w.freeIDs = append(w.freeIDs, uint32(newCap-1-i))
	}
	w.log.Debug("entity pool grown",
		zap.String("world_id", w.id.String()),
		zap.Int("capacity", newCap))
}

// Despawn removes the entity's row from its archetype via swap-with-last,
// retires the entity's index mapping, and recycles its ID. Queries holding
// only the Entity value afterwards observe it as absent.
func (w *World) Despawn(e Entity) error {
	if !w.IsValid(e) {
		return ErrNoSuchEntity
	}
	meta := &w.metas[e.ID]
	a := w.archetypes[meta.archetypeIndex]
	if moved, ok := a.swapRemove(meta.index); ok {
		w.metas[moved.ID].index = meta.index
	}
	meta.archetypeIndex = -1
	meta.index = -1
	meta.version = 0
	w.freeIDs = append(w.freeIDs, e.ID)
	return nil
}

// ClearTrackers resets every added/mutated bit in every archetype to false.
// This is the only change-bit reset path; it is expected to run once per
// logical frame, at a cadence chosen by the surrounding scheduler.
func (w *World) ClearTrackers() {
	for _, a := range w.archetypes {
		a.clearTrackers()
	}
}

// ClearEntities removes all entities from the world, recycling their IDs and
// resetting archetypes without deallocating their storage.
func (w *World) ClearEntities() {
	for i := range w.metas {
		w.metas[i].archetypeIndex = -1
		w.metas[i].index = -1
		w.metas[i].version = 0
	}
	w.freeIDs = w.freeIDs[:0]
	for i := 0; i < len(w.metas); i++ {
		w.freeIDs = append(w.freeIDs, uint32(len(w.metas)-1-i))
	}
	for _, a := range w.archetypes {
		a.reset()
	}
}
