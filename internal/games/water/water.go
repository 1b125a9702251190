// Package water is a top-down movement demo: a ball drifts over a strip of
// water tiles, steered one key press at a time.
package water

import (
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/config"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/engine/physics"
)

// PlayerData marks the moving ball.
type PlayerData struct {
	Speed float64
}

var Player = donburi.NewComponentType[PlayerData]()

var playerQuery = donburi.NewQuery(filter.Contains(Player, physics.Velocity))

// KeyboardDirectionalInput is a unit direction requested by a key press.
type KeyboardDirectionalInput struct {
	Dir core.Vec2
}

var DirectionalInput = events.NewEventType[KeyboardDirectionalInput]()

// directions maps key actions to steering directions, in press order.
var directions = []struct {
	action core.Action
	dir    core.Vec2
}{
	{core.ActionUp, core.V2(0, 1)},
	{core.ActionLeft, core.V2(-1, 0)},
	{core.ActionDown, core.V2(0, -1)},
	{core.ActionRight, core.V2(1, 0)},
}

// AppOptions configure NewApp.
type AppOptions struct {
	Runtime        core.RuntimeConfig
	Config         config.WaterConfig
	Assets         *assets.Server
	Logger         *log.Logger
	DebugColliders bool
}

// NewApp builds the demo world.
func NewApp(opts AppOptions) *engine.App {
	cfg := opts.Config
	app := engine.New(engine.Options{
		Name:   "water",
		Logger: opts.Logger,
		Assets: opts.Assets,
		Width:  opts.Runtime.ScreenW,
		Height: opts.Runtime.ScreenH,
	})
	app.AddPlugin(engine.CameraPlugin(cfg.View.PixelsPerCellX, cfg.View.PixelsPerCellY))
	app.AddPlugin(physics.Plugin(physics.Options{DebugRender: opts.DebugColliders}))

	app.AddSystems(engine.Startup,
		engine.NewSystem("setup_world", func(ctx *engine.Context) { setupWorld(ctx, cfg.Ground) }),
		engine.NewSystem("setup_player", func(ctx *engine.Context) { setupPlayer(ctx, cfg.Player) }),
	)
	app.AddSystems(engine.PreUpdate, engine.NewSystem("keyboard_input", keyboardInput))

	DirectionalInput.Subscribe(app.World(), movePlayer)
	return app
}

func setupWorld(ctx *engine.Context, g config.WaterGround) {
	e := engine.Spawn(ctx.World, engine.Transform, engine.Sprite, physics.Collider)
	engine.Transform.SetValue(e, engine.NewTransform(g.Position.X, g.Position.Y).WithScale(g.Scale.X, g.Scale.Y))
	engine.Sprite.SetValue(e, engine.SpriteData{Sprite: ctx.Assets.MustLoad(g.Sprite)})
	physics.Collider.SetValue(e, physics.NewCollider(physics.Cuboid(g.HalfExtents.X, g.HalfExtents.Y)))
}

func setupPlayer(ctx *engine.Context, p config.WaterPlayer) {
	e := engine.Spawn(ctx.World, engine.Transform, engine.Sprite, physics.RigidBody, physics.Velocity, physics.Collider, Player)
	engine.Transform.SetValue(e, engine.NewTransform(0, 0).WithZ(1))
	engine.Sprite.SetValue(e, engine.SpriteData{Sprite: ctx.Assets.MustLoad(p.Sprite)})
	physics.RigidBody.SetValue(e, physics.KinematicVelocityBased)
	physics.Collider.SetValue(e, physics.NewCollider(physics.Ball(p.Radius)))
	Player.SetValue(e, PlayerData{Speed: p.Speed})
}

func keyboardInput(ctx *engine.Context) {
	for _, d := range directions {
		if ctx.Input.JustPressed(d.action) {
			DirectionalInput.Publish(ctx.World, KeyboardDirectionalInput{Dir: d.dir})
		}
	}
}

// movePlayer replaces the ball's velocity. Several presses in one frame
// apply in table order, so the last of them wins.
func movePlayer(w donburi.World, ev KeyboardDirectionalInput) {
	e := engine.Single(w, playerQuery)
	speed := Player.Get(e).Speed
	physics.Velocity.Get(e).Linear = ev.Dir.Scale(speed)
}
