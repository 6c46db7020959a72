package tsuiseki

// Access is the kind of use a query term declares for an archetype.
type Access uint8

const (
	// AccessIterate reads entity IDs only, no component data.
	AccessIterate Access = iota
	// AccessRead reads component data.
	AccessRead
	// AccessWrite reads and writes component data.
	AccessWrite
)

// QueryAccess describes which components a query reads, writes, and filters
// on. The core does not enforce anything with it; it is the input an external
// scheduler uses to decide which queries may run concurrently.
type QueryAccess struct {
	reads   bitmask256
	writes  bitmask256
	with    bitmask256
	without bitmask256
}

func (qa *QueryAccess) addRead(id uint8)    { qa.reads.set(id) }
func (qa *QueryAccess) addWrite(id uint8)   { qa.writes.set(id) }
func (qa *QueryAccess) addWith(id uint8)    { qa.with.set(id) }
func (qa *QueryAccess) addWithout(id uint8) { qa.without.set(id) }

// merge unions another access set into qa.
func (qa *QueryAccess) merge(other QueryAccess) {
	qa.reads = orMask(qa.reads, other.reads)
	qa.writes = orMask(qa.writes, other.writes)
	qa.with = orMask(qa.with, other.with)
	qa.without = orMask(qa.without, other.without)
}

// HasWrites reports whether the query declares write access to any component.
func (qa QueryAccess) HasWrites() bool {
	return qa.writes != (bitmask256{})
}

// ConflictsWith reports whether two access sets cannot run concurrently: one
// side writes a component the other reads or writes. Filter-only terms
// (With, Without) never conflict.
func (qa QueryAccess) ConflictsWith(other QueryAccess) bool {
	if qa.writes.intersects(other.reads) || qa.writes.intersects(other.writes) {
		return true
	}
	return other.writes.intersects(qa.reads)
}
