package tsuiseki_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kasaix/tsuiseki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -run ^TestBatchesCoverAllRowsDisjointly$ . -count 1
func TestBatchesCoverAllRowsDisjointly(t *testing.T) {
	w := tsuiseki.NewWorld(256)
	want := map[tsuiseki.Entity]bool{}
	for i := 0; i < 100; i++ {
		want[tsuiseki.Spawn(w, Health{Current: i})] = true
	}
	// second archetype, also matching
	for i := 0; i < 30; i++ {
		want[tsuiseki.Spawn2(w, Health{Current: i}, Position{})] = true
	}

	got := map[tsuiseki.Entity]bool{}
	bit := w.QueryBatched(16, tsuiseki.Ref[Health](w))
	for {
		b, ok := bit.Next()
		if !ok {
			break
		}
		assert.LessOrEqual(t, b.Len(), 16)
		it, ok := b.Iter(tsuiseki.Ref[Health](w))
		require.True(t, ok)
		for it.Next() {
			e := it.Entity()
			require.False(t, got[e], "row %v appeared in two batches", e)
			got[e] = true
		}
	}
	assert.Equal(t, want, got)
}

// go test -run ^TestBatchIterHonorsRowFilters$ . -count 1
func TestBatchIterHonorsRowFilters(t *testing.T) {
	w := tsuiseki.NewWorld(64)
	ents := tsuiseki.SpawnBatch(w, 20, Health{})
	w.ClearTrackers()
	for i, e := range ents {
		if i%2 == 0 {
			_, err := tsuiseki.GetMut[Health](w, e)
			require.NoError(t, err)
		}
	}

	n := 0
	bit := w.QueryBatched(8, tsuiseki.Mutated[Health](w))
	for {
		b, ok := bit.Next()
		if !ok {
			break
		}
		it, ok := b.Iter(tsuiseki.Mutated[Health](w))
		require.True(t, ok)
		for it.Next() {
			n++
		}
	}
	assert.Equal(t, 10, n)
}

// go test -run ^TestBatchDefaultSize$ . -count 1
func TestBatchDefaultSize(t *testing.T) {
	w := tsuiseki.NewWorld(256, tsuiseki.WithDefaultBatchSize(32))
	tsuiseki.SpawnBatch(w, 100, Health{})

	bit := w.QueryBatched(0, tsuiseki.Ref[Health](w))
	b, ok := bit.Next()
	require.True(t, ok)
	assert.Equal(t, 32, b.Len())
}

// go test -run ^TestForEachBatchParallel$ . -count 1
func TestForEachBatchParallel(t *testing.T) {
	w := tsuiseki.NewWorld(2048)
	const n = 1000
	for k := 0; k < n; k++ {
		tsuiseki.Spawn2(w, Position{}, Velocity{VX: 1})
	}

	bit := w.QueryBatched(64, tsuiseki.Mut[Position](w), tsuiseki.Ref[Velocity](w))
	err := tsuiseki.ForEachBatch(context.Background(), bit, 4, func(b tsuiseki.Batch) error {
		p := tsuiseki.Mut[Position](w)
		v := tsuiseki.Ref[Velocity](w)
		it, ok := b.Iter(p, v)
		if !ok {
			return errors.New("term set rejected its own batch")
		}
		for it.Next() {
			p.Get().X += v.Get().VX
		}
		return nil
	})
	require.NoError(t, err)

	sum := float32(0)
	p := tsuiseki.Ref[Position](w)
	it := w.Query(p)
	for it.Next() {
		sum += p.Get().X
	}
	assert.Equal(t, float32(n), sum)
}

// go test -run ^TestForEachBatchPropagatesError$ . -count 1
func TestForEachBatchPropagatesError(t *testing.T) {
	w := tsuiseki.NewWorld(256)
	tsuiseki.SpawnBatch(w, 100, Health{})

	errBoom := errors.New("boom")
	bit := w.QueryBatched(10, tsuiseki.Ref[Health](w))
	err := tsuiseki.ForEachBatch(context.Background(), bit, 2, func(tsuiseki.Batch) error {
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
}

// go test -run ^TestBatchIterRejectsWrongArchetype$ . -count 1
func TestBatchIterRejectsWrongArchetype(t *testing.T) {
	w := tsuiseki.NewWorld(8)
	tsuiseki.SpawnBatch(w, 5, Health{})

	bit := w.QueryBatched(10, tsuiseki.Ref[Health](w))
	b, ok := bit.Next()
	require.True(t, ok)

	// binding a term for an absent component must fail cleanly
	_, ok = b.Iter(tsuiseki.Ref[Velocity](w))
	assert.False(t, ok)
}
