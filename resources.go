package tsuiseki

import "reflect"

// Resources is a per-world store of singleton values keyed by type. At most
// one value of a given type may be present at a time. Slots freed by Remove
// are reused by later Adds.
type Resources struct {
	values  []any
	byType  map[reflect.Type]int
	freeIDs []int
}

// Add stores a resource and returns its slot ID. Panics on nil and on a
// duplicate type.
func (r *Resources) Add(res any) int {
	if res == nil {
		panic("ecs: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.byType == nil {
		r.byType = make(map[reflect.Type]int)
	}
	if _, ok := r.byType[t]; ok {
		panic("ecs: resource of this type already exists")
	}
	var id int
	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		r.values[id] = res
	} else {
		r.values = append(r.values, res)
		id = len(r.values) - 1
	}
	r.byType[t] = id
	return id
}

// Has reports whether the slot holds a live resource.
func (r *Resources) Has(id int) bool {
	return id >= 0 && id < len(r.values) && r.values[id] != nil
}

// Get returns the resource in the slot, or nil.
func (r *Resources) Get(id int) any {
	if !r.Has(id) {
		return nil
	}
	return r.values[id]
}

// Remove frees the slot and makes its type available for a new Add.
func (r *Resources) Remove(id int) {
	if !r.Has(id) {
		return
	}
	delete(r.byType, reflect.TypeOf(r.values[id]))
	r.values[id] = nil
	r.freeIDs = append(r.freeIDs, id)
}

// Clear drops every resource and resets the free list.
func (r *Resources) Clear() {
	for i := range r.values {
		r.values[i] = nil
	}
	r.values = r.values[:0]
	clear(r.byType)
	r.freeIDs = r.freeIDs[:0]
}

// HasResource reports whether a resource of type T is stored, along with its
// slot ID, or -1.
func HasResource[T any](r *Resources) (bool, int) {
	if id, ok := r.byType[reflect.TypeOf((**T)(nil)).Elem()]; ok {
		return true, id
	}
	return false, -1
}

// GetResource returns the stored *T and its slot ID, or nil and -1.
func GetResource[T any](r *Resources) (*T, int) {
	if id, ok := r.byType[reflect.TypeOf((**T)(nil)).Elem()]; ok {
		return r.values[id].(*T), id
	}
	return nil, -1
}
