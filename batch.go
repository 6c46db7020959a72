package tsuiseki

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch is a contiguous row range within one archetype. Two batches produced
// by the same BatchedIter never reference the same row: ranges within one
// archetype do not overlap and distinct archetypes share no rows, so handing
// batches to separate workers is sound as long as their declared QueryAccess
// does not alias any concurrently running query.
type Batch struct {
	arch  *archetype
	start int
	end   int
}

// Len returns the number of rows in the batch, before row filters.
func (b Batch) Len() int {
	return b.end - b.start
}

// Iter binds freshly constructed terms to this batch's rows. Each worker must
// build its own terms: sharing term instances across goroutines races on
// their cursors. ok is false when a term rejects the batch's archetype, which
// means the term set differs from the one the batches were produced with.
func (b Batch) Iter(terms ...Term) (it *BatchIter, ok bool) {
	bi := &BatchIter{terms: terms, end: b.end}
	bi.cur.arch = b.arch
	bi.cur.row = b.start - 1
	for _, t := range terms {
		t.bind(&bi.cur)
		if !t.anchor(b.arch) {
			return nil, false
		}
	}
	return bi, true
}

// BatchIter iterates the rows of a single Batch, honoring term row filters.
type BatchIter struct {
	terms []Term
	cur   cursor
	end   int
}

// Next advances to the next matching row within the batch.
func (bi *BatchIter) Next() bool {
	for {
		bi.cur.row++
		if bi.cur.row >= bi.end {
			return false
		}
		skip := false
		for _, t := range bi.terms {
			if t.skip(bi.cur.row) {
				skip = true
				break
			}
		}
		if !skip {
			return true
		}
	}
}

// Entity returns the entity at the current row.
func (bi *BatchIter) Entity() Entity {
	return bi.cur.arch.entities[bi.cur.row]
}

// BatchedIter yields fixed-size row ranges of the archetypes matched by a
// set of prototype terms, for downstream parallel dispatch. The prototype
// terms are used for archetype matching only; workers bind their own term
// instances per batch.
type BatchedIter struct {
	world     *World
	terms     []Term
	batchSize int
	archIdx   int
	offset    int
}

// QueryBatched builds a batched iterator with at most batchSize rows per
// batch. A batchSize <= 0 falls back to the world's default.
func (w *World) QueryBatched(batchSize int, terms ...Term) *BatchedIter {
	if batchSize <= 0 {
		batchSize = w.defaultBatch
	}
	return &BatchedIter{world: w, terms: terms, batchSize: batchSize}
}

// Next returns the next batch, or ok=false when all archetypes are consumed.
func (bi *BatchedIter) Next() (b Batch, ok bool) {
	for bi.archIdx < len(bi.world.archetypes) {
		a := bi.world.archetypes[bi.archIdx]
		if bi.offset >= a.len() || !bi.matchAll(a) {
			bi.archIdx++
			bi.offset = 0
			continue
		}
		start := bi.offset
		end := min(start+bi.batchSize, a.len())
		bi.offset = end
		return Batch{arch: a, start: start, end: end}, true
	}
	return Batch{}, false
}

func (bi *BatchedIter) matchAll(a *archetype) bool {
	for _, t := range bi.terms {
		if !t.matches(a) {
			return false
		}
	}
	return true
}

// ForEachBatch distributes the batches of it over at most workers goroutines
// and waits for completion. fn typically binds its own terms via Batch.Iter.
// The first error cancels the remaining work.
func ForEachBatch(ctx context.Context, it *BatchedIter, workers int, fn func(Batch) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return fn(b)
		})
	}
	return g.Wait()
}
