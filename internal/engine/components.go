package engine

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// TransformData places an entity in world space. Y points up and units are
// pixels; Scale stretches sprites and colliders.
type TransformData struct {
	Translation core.Vec2
	Scale       core.Vec2
	Z           float64
}

// NewTransform returns an unscaled transform at (x, y).
func NewTransform(x, y float64) TransformData {
	return TransformData{Translation: core.V2(x, y), Scale: core.V2(1, 1)}
}

// WithScale returns t with the given scale.
func (t TransformData) WithScale(sx, sy float64) TransformData {
	t.Scale = core.V2(sx, sy)
	return t
}

// WithZ returns t with the given draw depth.
func (t TransformData) WithZ(z float64) TransformData {
	t.Z = z
	return t
}

var Transform = donburi.NewComponentType[TransformData]()

// SpriteData draws an asset sprite centred on the entity's transform.
// A zero CustomSize uses the sprite's native size.
type SpriteData struct {
	Sprite     assets.Sprite
	CustomSize core.Vec2
	Hidden     bool
}

// Size returns the drawn size in world px before scaling.
func (s SpriteData) Size() core.Vec2 {
	if !s.CustomSize.IsZero() {
		return s.CustomSize
	}
	return s.Sprite.Size
}

var Sprite = donburi.NewComponentType[SpriteData]()

// Anchor positions a text label relative to the window.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorBottomLeft
)

// TextData is a screen-anchored label. Offset is in cells from the anchor.
type TextData struct {
	Value  string
	Anchor Anchor
	Offset core.Vec2
	Color  core.Color
}

var Text = donburi.NewComponentType[TextData]()

// Spawn creates an entity with the given components and returns its entry.
func Spawn(w donburi.World, components ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(components...))
}
