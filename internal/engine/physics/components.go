// Package physics is the engine's physics plugin: rigid bodies, velocity,
// colliders and contact events. Narrow phase and spatial partitioning are
// delegated to resolv.
package physics

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// BodyKind selects how a body moves.
type BodyKind int

const (
	// Fixed bodies never move on their own.
	Fixed BodyKind = iota
	// KinematicPositionBased bodies are moved by writing their transform.
	KinematicPositionBased
	// KinematicVelocityBased bodies are moved by the step, using Velocity.
	KinematicVelocityBased
)

func (k BodyKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case KinematicPositionBased:
		return "kinematic_position"
	case KinematicVelocityBased:
		return "kinematic_velocity"
	default:
		return "unknown"
	}
}

var RigidBody = donburi.NewComponentType[BodyKind]()

// VelocityData is a linear velocity in px/s.
type VelocityData struct {
	Linear core.Vec2
}

var Velocity = donburi.NewComponentType[VelocityData]()

// ShapeKind distinguishes collider parts.
type ShapeKind int

const (
	ShapeCuboid ShapeKind = iota
	ShapeBall
)

// Shape is one part of a collider, positioned relative to the entity.
type Shape struct {
	Kind        ShapeKind
	HalfExtents core.Vec2 // cuboid
	Radius      float64   // ball
	Offset      core.Vec2
}

// Cuboid returns a box with the given half extents.
func Cuboid(hx, hy float64) Shape {
	return Shape{Kind: ShapeCuboid, HalfExtents: core.V2(hx, hy)}
}

// Ball returns a circle with the given radius.
func Ball(r float64) Shape {
	return Shape{Kind: ShapeBall, Radius: r}
}

// At returns s moved to a local offset.
func (s Shape) At(x, y float64) Shape {
	s.Offset = core.V2(x, y)
	return s
}

// halfSize returns the scaled half extents of the part's bounding box.
func (s Shape) halfSize(scale core.Vec2) core.Vec2 {
	if s.Kind == ShapeBall {
		r := s.Radius * max(scale.X, scale.Y)
		return core.V2(r, r)
	}
	return s.HalfExtents.Mul(scale)
}

// ColliderData gives an entity a collision volume made of one or more parts.
// Part extents and offsets scale with the entity's transform.
type ColliderData struct {
	Parts  []Shape
	Sensor bool
}

// NewCollider builds a solid collider from parts.
func NewCollider(parts ...Shape) ColliderData {
	return ColliderData{Parts: parts}
}

var Collider = donburi.NewComponentType[ColliderData]()
