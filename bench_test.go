package tsuiseki

import (
	"fmt"
	"testing"
)

type benchPos struct{ X, Y float64 }
type benchVel struct{ X, Y float64 }

// Query Iteration Benchmarks
func BenchmarkQueryIterate(b *testing.B) {
	sizes := []int{1000, 10000, 100000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dK", size/1000), func(b *testing.B) {
			w := NewWorld(size)
			for j := 0; j < size; j++ {
				Spawn2(w, benchPos{}, benchVel{X: 1, Y: 2})
			}
			p := Mut[benchPos](w)
			v := Ref[benchVel](w)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				it := w.Query(p, v)
				for it.Next() {
					pp := p.Get()
					vv := v.Get()
					pp.X += vv.X
					pp.Y += vv.Y
				}
			}
		})
	}
}

// Spawn Benchmarks
func BenchmarkSpawn(b *testing.B) {
	sizes := []int{1000, 10000, 100000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dK", size/1000), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				w := NewWorld(size)
				b.StartTimer()
				for j := 0; j < size; j++ {
					Spawn2(w, benchPos{}, benchVel{})
				}
			}
		})
	}
}

// Change-Filtered Iteration Benchmarks
func BenchmarkChangedFilter(b *testing.B) {
	const size = 100000
	w := NewWorld(size)
	ents := make([]Entity, 0, size)
	for j := 0; j < size; j++ {
		ents = append(ents, Spawn(w, benchPos{}))
	}
	w.ClearTrackers()
	// dirty 1% of the rows
	for i := 0; i < size; i += 100 {
		_, _ = GetMut[benchPos](w, ents[i])
	}
	term := Changed[benchPos](w)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		n := 0
		it := w.Query(term)
		for it.Next() {
			n++
		}
		benchSink = n
	}
}

var benchSink int

// Insert Migration Benchmarks
func BenchmarkInsertMigration(b *testing.B) {
	const size = 10000
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		w := NewWorld(size)
		ents := make([]Entity, 0, size)
		for j := 0; j < size; j++ {
			ents = append(ents, Spawn(w, benchPos{}))
		}
		b.StartTimer()
		for _, e := range ents {
			_ = Insert(w, e, benchVel{})
		}
	}
}
