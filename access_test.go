package tsuiseki_test

import (
	"testing"

	"github.com/kasaix/tsuiseki"
	"github.com/stretchr/testify/assert"
)

// go test -run ^TestQueryAccessConflicts$ . -count 1
func TestQueryAccessConflicts(t *testing.T) {
	w := tsuiseki.NewWorld(4)

	readPos := w.Query(tsuiseki.Ref[Position](w)).Access()
	writePos := w.Query(tsuiseki.Mut[Position](w)).Access()
	writeVel := w.Query(tsuiseki.Mut[Velocity](w)).Access()
	filterPos := w.Query(tsuiseki.With[Position](w), tsuiseki.Ref[Velocity](w)).Access()

	assert.False(t, readPos.ConflictsWith(readPos), "two readers never conflict")
	assert.True(t, readPos.ConflictsWith(writePos))
	assert.True(t, writePos.ConflictsWith(readPos))
	assert.True(t, writePos.ConflictsWith(writePos))
	assert.False(t, writePos.ConflictsWith(writeVel), "disjoint writes do not conflict")
	assert.False(t, writePos.ConflictsWith(filterPos), "With is presence-only, not a read")
}

// go test -run ^TestQueryAccessHasWrites$ . -count 1
func TestQueryAccessHasWrites(t *testing.T) {
	w := tsuiseki.NewWorld(4)

	assert.False(t, w.Query(tsuiseki.Ref[Position](w)).Access().HasWrites())
	assert.True(t, w.Query(tsuiseki.Mut[Position](w)).Access().HasWrites())
}

// go test -run ^TestQueryAccessUnionsTerms$ . -count 1
func TestQueryAccessUnionsTerms(t *testing.T) {
	w := tsuiseki.NewWorld(4)

	// Or and Opt contribute their inner terms' access
	acc := w.Query(tsuiseki.Opt(tsuiseki.Mut[Position](w))).Access()
	assert.True(t, acc.HasWrites())

	acc = w.Query(tsuiseki.Or(
		tsuiseki.Mutated[Position](w),
		tsuiseki.Added[Velocity](w),
	)).Access()
	other := w.Query(tsuiseki.Mut[Velocity](w)).Access()
	assert.True(t, acc.ConflictsWith(other))
}
