package physics

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
)

// Options configure the physics plugin.
type Options struct {
	// DebugRender outlines every collider part on top of sprites.
	DebugRender bool
}

// Plugin installs the physics world and its step. The step runs in
// PostUpdate, after gameplay systems have written velocities and
// transforms, so contact events describe the positions about to be drawn.
func Plugin(opts Options) engine.Plugin {
	return func(app *engine.App) {
		w := app.World()
		e := engine.Spawn(w, worldComponent)
		worldComponent.SetValue(e, newWorld())

		app.AddSystems(engine.PostUpdate, engine.NewSystem("physics_step", stepSystem))
		if opts.DebugRender {
			app.AddRenderHook(debugRender)
		}
	}
}

func stepSystem(ctx *engine.Context) {
	pw := Of(ctx.World)
	for _, ev := range pw.step(ctx.World, ctx.Time.DeltaSeconds()) {
		ctx.Logger.Debug("contact", "kind", ev.Kind, "sensor", ev.Sensor)
		CollisionEvents.Publish(ctx.World, ev)
	}
}

// ContactsWith returns the entities touching e after the last step.
func ContactsWith(w donburi.World, e donburi.Entity) []donburi.Entity {
	return Of(w).ContactsWith(e)
}

// InContact reports whether a and b touched after the last step.
func InContact(w donburi.World, a, b donburi.Entity) bool {
	return Of(w).InContact(a, b)
}

var debugQuery = donburi.NewQuery(filter.Contains(Collider, engine.Transform))

func debugRender(ctx *engine.Context, dst *core.Screen) {
	cam, ok := engine.CameraOf(ctx.World)
	if !ok {
		cam = engine.DefaultCamera()
	}
	debugQuery.Each(ctx.World, func(e *donburi.Entry) {
		tf := engine.Transform.Get(e)
		col := Collider.Get(e)
		color := core.ColorBrightGreen
		if col.Sensor {
			color = core.ColorBrightMagenta
		}
		for _, part := range col.Parts {
			center := tf.Translation.Add(part.Offset.Mul(tf.Scale))
			size := part.halfSize(tf.Scale).Scale(2)
			r := cam.CellRect(center, size, dst.Width(), dst.Height())
			dst.DrawOutline(r, '·', color)
		}
	})
}
