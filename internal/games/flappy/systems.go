package flappy

import (
	"fmt"
	"math"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/engine/physics"
)

// pauseInput toggles between Playing and Paused. The bird's velocity is
// parked in StoredVelocity while paused.
func (r *Run) pauseInput(ctx *engine.Context) {
	if !ctx.Input.JustPressed(core.ActionPause) || r.dying() {
		return
	}
	vel := physics.Velocity.Get(engine.Single(ctx.World, playerQuery))

	switch r.State.Current() {
	case Playing:
		r.StoredVelocity = vel.Linear
		vel.Linear = core.Vec2{}
		r.State.Set(Paused)
	case Paused:
		vel.Linear = r.StoredVelocity
		r.State.Set(Playing)
	}
}

func (r *Run) jumpInput(ctx *engine.Context) {
	if !ctx.Input.AnyJustPressed(core.ActionJump, core.ActionUp) || r.dying() {
		return
	}
	p := Player.Get(engine.Single(ctx.World, playerQuery))
	if p.IsJumping {
		return
	}
	p.IsJumping = true
	p.JumpTimer.Reset()
}

// applyGravity holds jump speed for the jump duration, then lets the bird
// fall, capped at max fall speed.
func (r *Run) applyGravity(ctx *engine.Context) {
	e := engine.Single(ctx.World, playerQuery)
	p := Player.Get(e)
	vel := physics.Velocity.Get(e)
	phys := r.cfg.Physics

	if p.IsJumping {
		vel.Linear.Y = phys.JumpSpeed
		p.JumpTimer.Tick(ctx.Time.Delta())
		if p.JumpTimer.Finished() {
			p.IsJumping = false
		}
		return
	}
	vel.Linear.Y = math.Max(vel.Linear.Y-phys.Gravity*ctx.Time.DeltaSeconds(), -phys.MaxFallSpeed)
}

func (r *Run) spawnPipes(ctx *engine.Context) {
	r.ticks++
	pipes := r.cfg.Pipes
	r.spawnTimer.SetDuration(r.difficulty.Interval(pipes.SpawnInterval, pipes.MinInterval, r.Score, r.ticks))
	r.spawnTimer.Tick(ctx.Time.Delta())

	for i := 0; i < r.spawnTimer.TimesFinishedThisTick(); i++ {
		vp := ctx.Viewport()
		gap := r.difficulty.GapSize(pipes.GapSize, pipes.MinGapSize, r.Score, r.ticks)

		lo := r.groundTop(vp) + pipes.Margin + gap/2
		hi := vp.Max.Y - pipes.Margin - gap/2
		center := (lo + hi) / 2
		if hi > lo {
			center = lo + r.rng.Float64()*(hi-lo)
		}
		r.spawnPipe(ctx, vp.Max.X+pipes.HalfWidth, center, gap)
	}
}

// spawnPipe creates one pipe at x: a single body whose collider has a top
// and a bottom part around the gap.
func (r *Run) spawnPipe(ctx *engine.Context, x, gapCenter, gap float64) *donburi.Entry {
	vp := ctx.Viewport()
	pipes := r.cfg.Pipes
	hw := pipes.HalfWidth
	speed := r.difficulty.Speed(pipes.Speed, r.Score, r.ticks)

	// parts reach past the view so the bird cannot slip around them
	topLen := math.Max(vp.Max.Y+hw-(gapCenter+gap/2), 1)
	bottomLen := math.Max((gapCenter-gap/2)-(vp.Min.Y-hw), 1)

	e := engine.Spawn(ctx.World, engine.Transform, physics.RigidBody, physics.Velocity, physics.Collider, Pipe)
	engine.Transform.SetValue(e, engine.NewTransform(x, gapCenter).WithZ(1))
	physics.RigidBody.SetValue(e, physics.KinematicPositionBased)
	physics.Velocity.SetValue(e, physics.VelocityData{Linear: core.V2(-speed, 0)})
	physics.Collider.SetValue(e, physics.NewCollider(
		physics.Cuboid(hw, topLen/2).At(0, gap/2+topLen/2),
		physics.Cuboid(hw, bottomLen/2).At(0, -gap/2-bottomLen/2),
	))
	Pipe.SetValue(e, PipeData{HalfWidth: hw, GapCenter: gapCenter, GapSize: gap})

	ctx.Logger.Debug("spawned pipe", "x", x, "gap_center", gapCenter, "gap", gap, "speed", speed)
	return e
}

// movePipes scrolls pipes. Pipes are position-based bodies, so the
// gameplay code moves them rather than the physics step.
func (r *Run) movePipes(ctx *engine.Context) {
	dt := ctx.Time.DeltaSeconds()
	pipeQuery.Each(ctx.World, func(e *donburi.Entry) {
		tf := engine.Transform.Get(e)
		tf.Translation = tf.Translation.Add(physics.Velocity.Get(e).Linear.Scale(dt))
	})
}

func (r *Run) despawnOffscreen(ctx *engine.Context) {
	left := ctx.Viewport().Min.X
	pipeQuery.Each(ctx.World, func(e *donburi.Entry) {
		if engine.Transform.Get(e).Translation.X+Pipe.Get(e).HalfWidth < left {
			ctx.Commands.Despawn(e.Entity())
		}
	})
}

// scorePipes counts each pipe once, when the bird's centre passes the
// pipe's centre.
func (r *Run) scorePipes(ctx *engine.Context) {
	playerX := engine.Transform.Get(engine.Single(ctx.World, playerQuery)).Translation.X
	pipeQuery.Each(ctx.World, func(e *donburi.Entry) {
		pipe := Pipe.Get(e)
		if pipe.Scored || playerX <= engine.Transform.Get(e).Translation.X {
			return
		}
		pipe.Scored = true
		r.Score++
		ctx.Logger.Debug("scored", "score", r.Score)
	})
}

// dying reports a death found last frame that has not been applied yet.
func (r *Run) dying() bool {
	next, pending := r.State.Pending()
	return pending && next == Dead
}

func (r *Run) checkBounds(ctx *engine.Context) {
	y := engine.Transform.Get(engine.Single(ctx.World, playerQuery)).Translation.Y
	if vp := ctx.Viewport(); !vp.ContainsY(y) {
		ctx.Logger.Debug("left the view", "y", y)
		r.State.Set(Dead)
	}
}

// onContact kills the bird on any new contact while playing. Pipes and the
// ground are treated alike unless death.ignore_ground is set.
func (r *Run) onContact(w donburi.World, ev physics.CollisionEvent) {
	if ev.Kind != physics.Started || r.State.Current() != Playing {
		return
	}
	player := engine.Single(w, playerQuery).Entity()
	other, ok := ev.Involves(player)
	if !ok {
		return
	}
	if r.cfg.Death.IgnoreGround {
		if entry := w.Entry(other); entry.HasComponent(Ground) {
			return
		}
	}
	r.State.Set(Dead)
}

func (r *Run) updateScoreLabel(ctx *engine.Context) {
	labelQuery.Each(ctx.World, func(e *donburi.Entry) {
		engine.Text.Get(e).Value = fmt.Sprintf(ScoreLabel.Get(e).Format, r.Score)
	})
}

func (r *Run) onDeath(ctx *engine.Context) {
	Player.Get(engine.Single(ctx.World, playerQuery)).IsJumping = false
	ctx.Logger.Info("game over", "score", r.Score)
}

// fallFurther keeps the dead bird accelerating downward, uncapped.
func (r *Run) fallFurther(ctx *engine.Context) {
	vel := physics.Velocity.Get(engine.Single(ctx.World, playerQuery))
	vel.Linear.Y -= r.cfg.Physics.Gravity * ctx.Time.DeltaSeconds()
}

func (r *Run) groundTop(vp core.Bounds) float64 {
	return vp.Min.Y + r.cfg.Ground.Height
}
