package engine

import "github.com/yohamta/donburi"

// Commands defers structural world changes until the running system
// returns, so systems can despawn while iterating a query.
type Commands struct {
	despawn []donburi.Entity
	marked  map[donburi.Entity]struct{}
	queued  []func(w donburi.World)
}

// Despawn schedules e for removal. Repeated calls for the same entity
// and entities that are already gone are ignored.
func (c *Commands) Despawn(e donburi.Entity) {
	if c.marked == nil {
		c.marked = make(map[donburi.Entity]struct{})
	}
	if _, dup := c.marked[e]; dup {
		return
	}
	c.marked[e] = struct{}{}
	c.despawn = append(c.despawn, e)
}

// Add schedules fn to run against the world.
func (c *Commands) Add(fn func(w donburi.World)) {
	c.queued = append(c.queued, fn)
}

// Len returns the number of pending commands.
func (c *Commands) Len() int {
	return len(c.despawn) + len(c.queued)
}

func (c *Commands) flush(w donburi.World) {
	for len(c.queued) > 0 {
		queued := c.queued
		c.queued = nil
		for _, fn := range queued {
			fn(w)
		}
	}
	for _, e := range c.despawn {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
	c.despawn = c.despawn[:0]
	clear(c.marked)
}
