package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/kamstrup/intmap"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
)

// Handle identifies a body inside the physics world. Handles grow
// monotonically, so ordering by handle is ordering by creation.
type Handle uint32

// The resolv space only covers non-negative coordinates, so world
// positions are shifted by spaceExtent/2. Bodies wandering outside the
// covered square leave the space and stop producing contacts.
const (
	spaceExtent = 8192
	spaceCell   = 64
	spaceShift  = spaceExtent / 2
)

type pairKey struct{ a, b Handle }

func makePair(a, b Handle) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

type contact struct {
	a, b   donburi.Entity
	sensor bool
}

type body struct {
	handle Handle
	entity donburi.Entity
	kind   BodyKind
	sensor bool

	parts  []Shape
	scale  core.Vec2
	shapes []resolv.IShape
	// anchors[i] is the shape's position relative to its centre, in resolv space
	anchors []core.Vec2
	// centers[i] is the part's centre in world space after the last place
	centers []core.Vec2
	inSpace bool
}

// World is the physics plugin state. One lives in each ECS world, stored
// on a singleton entity.
type World struct {
	space    *resolv.Space
	bodies   *intmap.Map[Handle, *body]
	order    []Handle
	byEntity map[donburi.Entity]Handle
	owner    map[resolv.IShape]Handle
	contacts map[pairKey]contact
	next     Handle
}

var worldComponent = donburi.NewComponentType[World]()

func newWorld() World {
	return World{
		space:    resolv.NewSpace(spaceExtent, spaceExtent, spaceCell, spaceCell),
		bodies:   intmap.New[Handle, *body](64),
		byEntity: make(map[donburi.Entity]Handle),
		owner:    make(map[resolv.IShape]Handle),
		contacts: make(map[pairKey]contact),
		next:     1,
	}
}

// Of returns the physics world installed in w. It panics when the plugin
// was not added.
func Of(w donburi.World) *World {
	e, ok := worldComponent.First(w)
	if !ok {
		panic("physics: plugin not installed")
	}
	return worldComponent.Get(e)
}

// BodyCount returns the number of live bodies.
func (pw *World) BodyCount() int {
	return pw.bodies.Len()
}

// HandleOf returns the body handle of an entity.
func (pw *World) HandleOf(e donburi.Entity) (Handle, bool) {
	h, ok := pw.byEntity[e]
	return h, ok
}

// ContactsWith returns the entities currently touching e, oldest body first.
func (pw *World) ContactsWith(e donburi.Entity) []donburi.Entity {
	h, ok := pw.byEntity[e]
	if !ok {
		return nil
	}
	type other struct {
		h Handle
		e donburi.Entity
	}
	var found []other
	for key, c := range pw.contacts {
		switch h {
		case key.a:
			found = append(found, other{key.b, c.b})
		case key.b:
			found = append(found, other{key.a, c.a})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].h < found[j].h })

	out := make([]donburi.Entity, len(found))
	for i, f := range found {
		out[i] = f.e
	}
	return out
}

// InContact reports whether a and b currently touch.
func (pw *World) InContact(a, b donburi.Entity) bool {
	ha, okA := pw.byEntity[a]
	hb, okB := pw.byEntity[b]
	if !okA || !okB {
		return false
	}
	_, ok := pw.contacts[makePair(ha, hb)]
	return ok
}

var (
	moverQuery    = donburi.NewQuery(filter.Contains(RigidBody, Velocity, engine.Transform))
	colliderQuery = donburi.NewQuery(filter.Contains(Collider, engine.Transform))
)

// step advances the physics world by one frame.
func (pw *World) step(w donburi.World, dt float64) []CollisionEvent {
	integrate(w, dt)
	pw.syncBodies(w)
	return pw.updateContacts()
}

// integrate moves velocity-based bodies. First order: x += v*dt.
func integrate(w donburi.World, dt float64) {
	moverQuery.Each(w, func(e *donburi.Entry) {
		if *RigidBody.Get(e) != KinematicVelocityBased {
			return
		}
		tf := engine.Transform.Get(e)
		tf.Translation = tf.Translation.Add(Velocity.Get(e).Linear.Scale(dt))
	})
}

func (pw *World) syncBodies(w donburi.World) {
	seen := make(map[Handle]bool, len(pw.order))

	colliderQuery.Each(w, func(e *donburi.Entry) {
		tf := engine.Transform.Get(e)
		col := Collider.Get(e)
		kind := Fixed
		if e.HasComponent(RigidBody) {
			kind = *RigidBody.Get(e)
		}

		h, ok := pw.byEntity[e.Entity()]
		if !ok {
			h = pw.addBody(e.Entity(), kind, *col, tf.Scale)
		}
		seen[h] = true

		b, _ := pw.bodies.Get(h)
		b.kind = kind
		b.sensor = col.Sensor
		if b.scale != tf.Scale || len(b.parts) != len(col.Parts) {
			pw.rebuildShapes(b, col.Parts, tf.Scale)
		}
		pw.place(b, tf.Translation)
	})

	kept := pw.order[:0]
	for _, h := range pw.order {
		if seen[h] {
			kept = append(kept, h)
			continue
		}
		pw.removeBody(h)
	}
	pw.order = kept
}

func (pw *World) addBody(e donburi.Entity, kind BodyKind, col ColliderData, scale core.Vec2) Handle {
	h := pw.next
	pw.next++

	b := &body{handle: h, entity: e, kind: kind, sensor: col.Sensor}
	pw.rebuildShapes(b, col.Parts, scale)

	pw.bodies.Put(h, b)
	pw.byEntity[e] = h
	pw.order = append(pw.order, h)
	return h
}

func (pw *World) rebuildShapes(b *body, parts []Shape, scale core.Vec2) {
	pw.detach(b)
	for _, sh := range b.shapes {
		delete(pw.owner, sh)
	}

	b.parts = append(b.parts[:0], parts...)
	b.scale = scale
	b.shapes = b.shapes[:0]
	b.anchors = b.anchors[:0]
	b.centers = b.centers[:0]

	for _, part := range parts {
		half := part.halfSize(scale)
		var sh resolv.IShape
		if part.Kind == ShapeBall {
			sh = resolv.NewCircle(0, 0, half.X)
		} else {
			sh = resolv.NewRectangleTopLeft(-half.X, -half.Y, 2*half.X, 2*half.Y)
		}
		pos := sh.Position()
		b.shapes = append(b.shapes, sh)
		b.anchors = append(b.anchors, core.V2(pos.X, pos.Y))
		b.centers = append(b.centers, core.Vec2{})
		pw.owner[sh] = b.handle
	}
}

// place moves every part so that the body is centred on center.
func (pw *World) place(b *body, center core.Vec2) {
	inside := true
	for i, part := range b.parts {
		half := part.halfSize(b.scale)
		c := center.Add(part.Offset.Mul(b.scale))
		b.centers[i] = c
		if c.X-half.X < -spaceShift || c.X+half.X > spaceShift ||
			c.Y-half.Y < -spaceShift || c.Y+half.Y > spaceShift {
			inside = false
		}
		// resolv's y axis points down
		a := b.anchors[i]
		b.shapes[i].SetPosition(c.X+spaceShift+a.X, spaceShift-c.Y+a.Y)
	}

	switch {
	case inside && !b.inSpace:
		for _, sh := range b.shapes {
			pw.space.Add(sh)
		}
		b.inSpace = true
	case !inside && b.inSpace:
		pw.detach(b)
	}
}

func (pw *World) detach(b *body) {
	if !b.inSpace {
		return
	}
	for _, sh := range b.shapes {
		pw.space.Remove(sh)
	}
	b.inSpace = false
}

func (pw *World) removeBody(h Handle) {
	b, ok := pw.bodies.Get(h)
	if !ok {
		return
	}
	pw.detach(b)
	for _, sh := range b.shapes {
		delete(pw.owner, sh)
	}
	delete(pw.byEntity, b.entity)
	pw.bodies.Del(h)
}

// updateContacts recomputes touching pairs. Only pairs with at least one
// non-fixed body are considered.
func (pw *World) updateContacts() []CollisionEvent {
	current := make(map[pairKey]contact, len(pw.contacts))
	addPair := func(b, other *body) {
		key := makePair(b.handle, other.handle)
		if _, dup := current[key]; dup {
			return
		}
		first, second := b, other
		if other.handle < b.handle {
			first, second = other, b
		}
		current[key] = contact{
			a:      first.entity,
			b:      second.entity,
			sensor: b.sensor || other.sensor,
		}
	}

	for _, h := range pw.order {
		b, _ := pw.bodies.Get(h)
		if b.kind == Fixed || !b.inSpace {
			continue
		}
		for _, sh := range b.shapes {
			sh.IntersectionTest(resolv.IntersectionTestSettings{
				TestAgainst: sh.SelectTouchingCells(1).FilterShapes(),
				OnIntersect: func(set resolv.IntersectionSet) bool {
					oh, ok := pw.owner[set.OtherShape]
					if !ok || oh == h {
						return true
					}
					other, _ := pw.bodies.Get(oh)
					addPair(b, other)
					return true
				},
			})
		}
		// resolv reports crossing edges only, so a part lying wholly
		// inside another needs its own test
		for _, oh := range pw.order {
			if oh == h {
				continue
			}
			if _, dup := current[makePair(h, oh)]; dup {
				continue
			}
			other, _ := pw.bodies.Get(oh)
			if other.inSpace && (b.holdsCentreOf(other) || other.holdsCentreOf(b)) {
				addPair(b, other)
			}
		}
	}

	var started, stopped []pairKey
	for key := range current {
		if _, ok := pw.contacts[key]; !ok {
			started = append(started, key)
		}
	}
	for key := range pw.contacts {
		if _, ok := current[key]; !ok {
			stopped = append(stopped, key)
		}
	}
	sortPairs(started)
	sortPairs(stopped)

	out := make([]CollisionEvent, 0, len(started)+len(stopped))
	for _, key := range stopped {
		c := pw.contacts[key]
		out = append(out, CollisionEvent{Kind: Stopped, A: c.a, B: c.b, Sensor: c.sensor})
	}
	for _, key := range started {
		c := current[key]
		out = append(out, CollisionEvent{Kind: Started, A: c.a, B: c.b, Sensor: c.sensor})
	}
	pw.contacts = current
	return out
}

// holdsCentreOf reports whether the centre of any part of o lies inside
// a part of b.
func (b *body) holdsCentreOf(o *body) bool {
	for i, part := range b.parts {
		c := b.centers[i]
		half := part.halfSize(b.scale)
		for _, p := range o.centers {
			d := p.Sub(c)
			if part.Kind == ShapeBall {
				if d.Len() <= half.X {
					return true
				}
				continue
			}
			if math.Abs(d.X) <= half.X && math.Abs(d.Y) <= half.Y {
				return true
			}
		}
	}
	return false
}

func sortPairs(keys []pairKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
}

func (pw *World) String() string {
	return fmt.Sprintf("physics.World{bodies: %d, contacts: %d}", pw.bodies.Len(), len(pw.contacts))
}
