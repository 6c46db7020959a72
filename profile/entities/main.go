// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/kasaix/tsuiseki"
	"github.com/pkg/profile"
)

type pos struct {
	X, Y float64
}

type vel struct {
	X, Y float64
}

func main() {
	rounds := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for ri := 0; ri < rounds; ri++ {
		w := tsuiseki.NewWorld(numEntities)
		p := tsuiseki.Mut[pos](w)
		v := tsuiseki.Ref[vel](w)

		for ii := 0; ii < iters; ii++ {
			for i := 0; i < numEntities; i++ {
				tsuiseki.Spawn2(w, pos{}, vel{X: 1, Y: 2})
			}
			entities := []tsuiseki.Entity{}
			it := w.Query(p, v)
			for it.Next() {
				entities = append(entities, it.Entity())
				pp := p.Get()
				vv := v.Get()
				pp.X += vv.X
				pp.Y += vv.Y
			}
			for _, e := range entities {
				_ = w.Despawn(e)
			}
		}
	}
}
