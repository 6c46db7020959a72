// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.pprof

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
	entities := 100000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for ri := 0; ri < rounds; ri++ {
		w := tsuiseki.NewWorld(numEntities)
		for i := 0; i < numEntities; i++ {
			tsuiseki.Spawn2(w, pos{}, vel{X: 1, Y: 2})
		}

		p := tsuiseki.Mut[pos](w)
		v := tsuiseki.Ref[vel](w)

		for ii := 0; ii < iters; ii++ {
			it := w.Query(p, v)
			for it.Next() {
				pp := p.Get()
				vv := v.Get()
				pp.X += vv.X
				pp.Y += vv.Y
			}
			w.ClearTrackers()
		}
	}
}
