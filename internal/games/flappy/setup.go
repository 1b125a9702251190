package flappy

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/config"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/engine/physics"
)

// AppOptions configure NewApp.
type AppOptions struct {
	Runtime        core.RuntimeConfig
	Config         config.FlappyConfig
	Assets         *assets.Server
	Logger         *log.Logger
	DebugColliders bool
}

// NewApp builds a fresh world with every flappy system registered.
func NewApp(opts AppOptions) (*engine.App, *Run) {
	app := engine.New(engine.Options{
		Name:   "flappy",
		Logger: opts.Logger,
		Assets: opts.Assets,
		Width:  opts.Runtime.ScreenW,
		Height: opts.Runtime.ScreenH,
	})
	run := newRun(opts.Config, opts.Runtime.Seed)
	run.State = engine.AddState(app, Playing).AllowTable(transitions)

	view := opts.Config.View
	app.AddPlugin(engine.CameraPlugin(view.PixelsPerCellX, view.PixelsPerCellY))
	app.AddPlugin(physics.Plugin(physics.Options{DebugRender: opts.DebugColliders}))
	app.AddRenderHook(run.drawPipes)

	playing := run.State.Is(Playing)
	app.AddSystems(engine.Startup,
		engine.NewSystem("setup_ground", run.setupGround),
		engine.NewSystem("setup_player", run.setupPlayer),
		engine.NewSystem("setup_score_label", run.setupScoreLabel),
	)
	app.AddSystems(engine.PreUpdate,
		engine.NewSystem("pause_input", run.pauseInput).RunIf(engine.InState(run.State, Playing, Paused)),
		engine.NewSystem("jump_input", run.jumpInput).RunIf(playing),
	)
	app.AddSystems(engine.Update,
		engine.NewSystem("apply_gravity", run.applyGravity).RunIf(playing),
		engine.NewSystem("spawn_pipes", run.spawnPipes).RunIf(playing),
		engine.NewSystem("move_pipes", run.movePipes).RunIf(playing),
		engine.NewSystem("despawn_offscreen", run.despawnOffscreen).RunIf(playing),
		engine.NewSystem("score_pipes", run.scorePipes).RunIf(playing),
		engine.NewSystem("check_bounds", run.checkBounds).RunIf(playing),
		engine.NewSystem("fall_further", run.fallFurther).RunIf(run.State.Is(Dead)),
	)
	app.AddSystems(engine.Last,
		engine.NewSystem("update_score_label", run.updateScoreLabel),
	)
	run.State.OnEnter(Dead, engine.NewSystem("on_death", run.onDeath))

	physics.CollisionEvents.Subscribe(app.World(), run.onContact)
	return app, run
}

func (r *Run) setupGround(ctx *engine.Context) {
	vp := ctx.Viewport()
	h := r.cfg.Ground.Height
	if h <= 0 {
		return
	}
	width := vp.Width() + 4*r.cfg.Pipes.HalfWidth

	e := engine.Spawn(ctx.World, engine.Transform, engine.Sprite, physics.RigidBody, physics.Collider, Ground)
	engine.Transform.SetValue(e, engine.NewTransform(0, vp.Min.Y+h/2))
	engine.Sprite.SetValue(e, engine.SpriteData{
		Sprite:     ctx.Assets.MustLoad(r.cfg.Ground.Sprite),
		CustomSize: core.V2(width, h),
	})
	physics.RigidBody.SetValue(e, physics.Fixed)
	physics.Collider.SetValue(e, physics.NewCollider(physics.Cuboid(width/2, h/2)))
	Ground.SetValue(e, GroundData{Top: vp.Min.Y + h})
}

func (r *Run) setupPlayer(ctx *engine.Context) {
	vp := ctx.Viewport()
	p := r.cfg.Player
	// small windows would otherwise start the bird off screen
	x := math.Max(p.X, vp.Min.X+4*p.Radius)

	e := engine.Spawn(ctx.World, engine.Transform, engine.Sprite, physics.RigidBody, physics.Velocity, physics.Collider, Player)
	engine.Transform.SetValue(e, engine.NewTransform(x, p.Y).WithZ(2))
	engine.Sprite.SetValue(e, engine.SpriteData{
		Sprite:     ctx.Assets.MustLoad(p.Sprite),
		CustomSize: core.V2(2*p.Radius, 2*p.Radius),
	})
	physics.RigidBody.SetValue(e, physics.KinematicVelocityBased)
	physics.Collider.SetValue(e, physics.NewCollider(physics.Ball(p.Radius)))
	Player.SetValue(e, PlayerData{JumpTimer: engine.NewTimer(r.cfg.Physics.JumpDuration, engine.Once)})
}

func (r *Run) setupScoreLabel(ctx *engine.Context) {
	e := engine.Spawn(ctx.World, engine.Text, ScoreLabel)
	engine.Text.SetValue(e, engine.TextData{
		Value:  "Score: 0",
		Anchor: engine.AnchorTopCenter,
		Color:  core.ColorBrightWhite,
	})
	ScoreLabel.SetValue(e, ScoreLabelData{Format: "Score: %d"})
}
