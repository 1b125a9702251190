package physics

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ContactKind tells whether a contact began or ended.
type ContactKind int

const (
	Started ContactKind = iota
	Stopped
)

func (k ContactKind) String() string {
	if k == Started {
		return "started"
	}
	return "stopped"
}

// CollisionEvent reports a change in the set of touching bodies.
// A is the body created first.
type CollisionEvent struct {
	Kind   ContactKind
	A, B   donburi.Entity
	Sensor bool
}

// Involves reports whether e is one of the two bodies, and returns the other.
func (ev CollisionEvent) Involves(e donburi.Entity) (donburi.Entity, bool) {
	switch e {
	case ev.A:
		return ev.B, true
	case ev.B:
		return ev.A, true
	}
	return e, false
}

// CollisionEvents carries every contact change, published by the step
// and delivered at the end of the PostUpdate stage.
var CollisionEvents = events.NewEventType[CollisionEvent]()
