package engine

import (
	"fmt"

	"github.com/yohamta/donburi"
)

// Single returns the only entry matching q. It panics when there are zero
// or several matches: callers rely on the entity being a singleton.
func Single(w donburi.World, q *donburi.Query) *donburi.Entry {
	var (
		found *donburi.Entry
		count int
	)
	q.Each(w, func(e *donburi.Entry) {
		count++
		found = e
	})
	if count != 1 {
		panic(fmt.Sprintf("engine: Single expected exactly one entity, found %d", count))
	}
	return found
}

// Entities collects the entities matching q, so callers can change the
// world after the query finishes.
func Entities(w donburi.World, q *donburi.Query) []donburi.Entity {
	var out []donburi.Entity
	q.Each(w, func(e *donburi.Entry) {
		out = append(out, e.Entity())
	})
	return out
}
