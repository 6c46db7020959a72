package tsuiseki

import "reflect"

// MaxComponentTypes defines the maximum number of unique component types that
// can be registered in a World. This value is fixed at 256.
const MaxComponentTypes = 256

// compSpec bundles a component type's ID, size, and reflect.Type.
type compSpec struct {
	typ  reflect.Type
	size uintptr
	id   uint8
}

// componentRegistry maps component types to small dense IDs, per world.
type componentRegistry struct {
	compIDToType [MaxComponentTypes]reflect.Type
	compIDToSize [MaxComponentTypes]uintptr
	compTypeMap  map[reflect.Type]uint8
	nextCompID   uint16 // counter for assigning new component type IDs
}

// getCompTypeID registers or fetches a component type ID for t.
func (r *componentRegistry) getCompTypeID(t reflect.Type) uint8 {
	if id, ok := r.compTypeMap[t]; ok {
		return id
	}
	if r.nextCompID >= MaxComponentTypes {
		panic("ecs: too many component types")
	}
	id := uint8(r.nextCompID)
	r.compTypeMap[t] = id
	r.compIDToType[id] = t
	r.compIDToSize[id] = t.Size()
	r.nextCompID++
	return id
}

// componentID registers or fetches the ID for component type T in w.
func componentID[T any](w *World) uint8 {
	return w.components.getCompTypeID(reflect.TypeOf((*T)(nil)).Elem())
}
