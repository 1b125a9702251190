package flappy

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/engine/physics"
)

// drawPipes paints each pipe's collider parts with the pipe sprite.
func (r *Run) drawPipes(ctx *engine.Context, dst *core.Screen) {
	cam, ok := engine.CameraOf(ctx.World)
	if !ok || ctx.Assets == nil {
		return
	}
	sprite, err := ctx.Assets.Load(r.cfg.Pipes.Sprite)
	if err != nil {
		return
	}
	w, h := dst.Width(), dst.Height()

	pipeQuery.Each(ctx.World, func(e *donburi.Entry) {
		tf := engine.Transform.Get(e)
		for _, part := range physics.Collider.Get(e).Parts {
			center := tf.Translation.Add(part.Offset)
			size := part.HalfExtents.Scale(2)
			dst.DrawRectColored(cam.CellRect(center, size, w, h), sprite.Glyph, sprite.Color)
		}
	})
}
