package flappy

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/config"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/engine/physics"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

func tick() time.Duration { return testRuntime.TickInterval() }

func testConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

// floatyConfig makes the bird fall so slowly it stays put for the test.
func floatyConfig() config.FlappyConfig {
	cfg := testConfig()
	cfg.Physics.Gravity = 1
	return cfg
}

func newApp(t *testing.T, cfg config.FlappyConfig) (*engine.App, *Run) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	app, run := NewApp(AppOptions{Runtime: testRuntime, Config: cfg, Logger: log.New(io.Discard)})
	app.Startup()
	return app, run
}

func step(app *engine.App, actions ...core.Action) {
	app.Update(core.FrameOf(actions...), tick())
}

func player(app *engine.App) *donburi.Entry {
	return engine.Single(app.World(), playerQuery)
}

func velocity(app *engine.App) core.Vec2 {
	return physics.Velocity.Get(player(app)).Linear
}

func position(app *engine.App) core.Vec2 {
	return engine.Transform.Get(player(app)).Translation
}

func TestJumpSetsFlagAndResetsTimer(t *testing.T) {
	app, _ := newApp(t, testConfig())
	cfg := testConfig()

	step(app)
	p := Player.Get(player(app))
	assert.False(t, p.IsJumping)
	assert.Less(t, velocity(app).Y, 0.0, "gravity pulls the bird down")

	step(app, core.ActionJump)
	p = Player.Get(player(app))
	assert.True(t, p.IsJumping)
	assert.Equal(t, tick(), p.JumpTimer.Elapsed(), "timer restarts from zero, then ticks once")
	assert.Equal(t, cfg.Physics.JumpSpeed, velocity(app).Y)

	// a second press mid-jump does not restart the timer
	step(app, core.ActionJump)
	assert.Equal(t, 2*tick(), Player.Get(player(app)).JumpTimer.Elapsed())

	for i := 0; i < 20 && Player.Get(player(app)).IsJumping; i++ {
		step(app)
	}
	require.False(t, Player.Get(player(app)).IsJumping, "jump ends when the timer runs out")
	assert.True(t, Player.Get(player(app)).JumpTimer.Finished())

	step(app, core.ActionUp)
	p = Player.Get(player(app))
	assert.True(t, p.IsJumping, "up arrow flaps too")
	assert.Equal(t, tick(), p.JumpTimer.Elapsed())
}

func TestFallSpeedIsCapped(t *testing.T) {
	cfg := testConfig()
	cfg.Ground.Height = 0
	app, _ := newApp(t, cfg)

	for i := 0; i < 40; i++ {
		step(app)
	}
	assert.Equal(t, -cfg.Physics.MaxFallSpeed, velocity(app).Y)
}

func TestScoreOncePerPipe(t *testing.T) {
	app, run := newApp(t, floatyConfig())
	pipe := run.spawnPipe(app.Context(), -150, 0, 120)

	for i := 0; i < 40; i++ {
		step(app)
	}
	assert.Equal(t, 1, run.Score)
	assert.True(t, Pipe.Get(pipe).Scored)

	for i := 0; i < 70; i++ {
		step(app)
	}
	assert.Equal(t, 1, run.Score, "a pipe scores exactly once")
	assert.Equal(t, Playing, run.State.Current())
	assert.False(t, app.World().Valid(pipe.Entity()), "pipe despawned once off screen")
}

func TestPipesSpawnOnInterval(t *testing.T) {
	cfg := floatyConfig()
	app, _ := newApp(t, cfg)
	vp := app.Context().Viewport()

	for i := 0; i < 119; i++ {
		step(app)
	}
	assert.Zero(t, pipeQuery.Count(app.World()))

	step(app)
	step(app)
	require.Equal(t, 1, pipeQuery.Count(app.World()))

	e, _ := pipeQuery.First(app.World())
	pipe := Pipe.Get(e)
	x := engine.Transform.Get(e).Translation.X
	assert.Greater(t, x, vp.Max.X, "spawned just past the right edge")
	assert.GreaterOrEqual(t, pipe.GapCenter, vp.Min.Y+cfg.Ground.Height+cfg.Pipes.Margin+cfg.Pipes.GapSize/2)
	assert.LessOrEqual(t, pipe.GapCenter, vp.Max.Y-cfg.Pipes.Margin-cfg.Pipes.GapSize/2)
	assert.Equal(t, -cfg.Pipes.Speed, physics.Velocity.Get(e).Linear.X)
}

func TestPauseRoundTripRestoresVelocity(t *testing.T) {
	cfg := testConfig()
	app, run := newApp(t, cfg)
	run.spawnPipe(app.Context(), 200, 0, 120)

	for i := 0; i < 5; i++ {
		step(app)
	}
	before := velocity(app)
	pos := position(app)
	require.NotZero(t, before.Y)

	step(app, core.ActionPause)
	assert.Equal(t, Paused, run.State.Current())
	assert.True(t, velocity(app).IsZero())
	assert.Equal(t, before, run.StoredVelocity)
	assert.Equal(t, pos, position(app))

	e, _ := pipeQuery.First(app.World())
	pipeX := engine.Transform.Get(e).Translation.X
	for i := 0; i < 10; i++ {
		step(app, core.ActionJump)
	}
	assert.Equal(t, pos, position(app), "nothing moves while paused")
	assert.Equal(t, pipeX, engine.Transform.Get(e).Translation.X)
	assert.False(t, Player.Get(player(app)).IsJumping, "jump is ignored while paused")

	step(app, core.ActionPause)
	assert.Equal(t, Playing, run.State.Current())
	dt := tick().Seconds()
	assert.InDelta(t, before.Y-cfg.Physics.Gravity*dt, velocity(app).Y, 1e-9)
	assert.Less(t, engine.Transform.Get(e).Translation.X, pipeX, "pipes scroll again")
}

func TestLeavingViewKills(t *testing.T) {
	app, run := newApp(t, floatyConfig())

	engine.Transform.Get(player(app)).Translation.Y = 1000
	step(app)
	step(app)

	assert.Equal(t, Dead, run.State.Current())
}

func TestPipeContactKills(t *testing.T) {
	app, run := newApp(t, floatyConfig())
	// the gap sits well above the bird, so the bird is wholly inside the
	// bottom part
	run.spawnPipe(app.Context(), position(app).X, 150, 120)

	step(app)
	assert.Equal(t, Playing, run.State.Current(), "death applies on the next frame")
	step(app)
	assert.Equal(t, Dead, run.State.Current())
}

func TestPipeEdgeContactKills(t *testing.T) {
	cfg := floatyConfig()
	app, run := newApp(t, cfg)
	// the pipe's left edge cuts through the bird, whose centre stays outside
	x := position(app).X + cfg.Pipes.HalfWidth + cfg.Player.Radius/2
	run.spawnPipe(app.Context(), x, 150, 120)

	step(app)
	step(app)
	assert.Equal(t, Dead, run.State.Current())
}

func TestPauseAfterContactStillKills(t *testing.T) {
	app, run := newApp(t, floatyConfig())
	run.spawnPipe(app.Context(), position(app).X, 150, 120)

	step(app)
	next, pending := run.State.Pending()
	require.True(t, pending)
	require.Equal(t, Dead, next)
	before := velocity(app)

	step(app, core.ActionPause)
	assert.Equal(t, Dead, run.State.Current(), "the queued death wins over the pause")
	assert.True(t, run.StoredVelocity.IsZero(), "velocity was not parked")

	for i := 0; i < 10; i++ {
		step(app, core.ActionPause)
	}
	assert.Equal(t, Dead, run.State.Current())
	assert.Less(t, velocity(app).Y, before.Y, "the bird keeps falling")
}

func TestJumpAfterContactIsIgnored(t *testing.T) {
	app, run := newApp(t, floatyConfig())
	run.spawnPipe(app.Context(), position(app).X, 150, 120)

	step(app)
	step(app, core.ActionJump)
	assert.Equal(t, Dead, run.State.Current())
	assert.False(t, Player.Get(player(app)).IsJumping)
}

func TestGroundContactKills(t *testing.T) {
	app, run := newApp(t, testConfig())
	vp := app.Context().Viewport()

	for i := 0; i < 200 && run.State.Current() == Playing; i++ {
		step(app)
	}
	require.Equal(t, Dead, run.State.Current())
	assert.Greater(t, position(app).Y, vp.Min.Y, "died on the ground, not by leaving the view")
}

func TestIgnoreGroundOption(t *testing.T) {
	cfg := testConfig()
	cfg.Death.IgnoreGround = true
	app, run := newApp(t, cfg)
	vp := app.Context().Viewport()
	ground, _ := groundQuery.First(app.World())

	touched := false
	for i := 0; i < 200 && run.State.Current() == Playing; i++ {
		step(app)
		if physics.InContact(app.World(), player(app).Entity(), ground.Entity()) {
			touched = true
		}
	}
	require.True(t, touched)
	require.Equal(t, Dead, run.State.Current())
	assert.Less(t, position(app).Y, vp.Min.Y, "only leaving the view ends the run")
}

func TestDeadIgnoresInput(t *testing.T) {
	app, run := newApp(t, floatyConfig())
	engine.Transform.Get(player(app)).Translation.Y = 1000
	step(app)
	step(app)
	require.Equal(t, Dead, run.State.Current())

	before := velocity(app)
	step(app, core.ActionJump, core.ActionPause)

	assert.False(t, Player.Get(player(app)).IsJumping)
	assert.Equal(t, Dead, run.State.Current(), "nothing leaves Dead")
	assert.Less(t, velocity(app).Y, before.Y, "the bird keeps falling")
	assert.InDelta(t, before.Y-1*tick().Seconds(), velocity(app).Y, 1e-9)
}

func TestScoreNeverDecreasesWhilePlaying(t *testing.T) {
	app, run := newApp(t, testConfig())
	last := 0
	for i := 0; i < 600 && run.State.Current() == Playing; i++ {
		var in []core.Action
		if i%18 == 0 {
			in = append(in, core.ActionJump)
		}
		step(app, in...)
		require.GreaterOrEqual(t, run.Score, last)
		last = run.Score
		require.LessOrEqual(t, playerQuery.Count(app.World()), 1)
	}
}

func TestDeterminism(t *testing.T) {
	play := func() (int, []float64, AppState) {
		g := New()
		g.reset(testRuntime, testConfig())
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(core.ActionJump)
			}
			g.Step(in)
		}
		var gaps []float64
		pipeQuery.Each(g.app.World(), func(e *donburi.Entry) {
			gaps = append(gaps, Pipe.Get(e).GapCenter)
		})
		return g.run.Score, gaps, g.run.State.Current()
	}

	s1, gaps1, st1 := play()
	s2, gaps2, st2 := play()
	assert.Equal(t, s1, s2)
	assert.Equal(t, gaps1, gaps2)
	assert.Equal(t, st1, st2)
}

func TestGameAdapterRendering(t *testing.T) {
	require.True(t, registry.Exists("flappy"))

	g := New()
	g.reset(testRuntime, floatyConfig())
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(screen)
	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Equal(t, '@', screen.Get(15, 12), "bird drawn at x=-200")

	res := g.Step(core.FrameOf(core.ActionPause))
	assert.True(t, res.State.Paused)
	screen.Clear()
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "PAUSED"))

	g.Step(core.FrameOf(core.ActionPause))
	g.run.Score = 3
	engine.Transform.Get(player(g.app)).Translation.Y = 1000
	g.Step(core.NewInputFrame())
	res = g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.Equal(t, 3, res.State.Score)

	screen.Clear()
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
	assert.Contains(t, screen.Row(0), "Score: 3")
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { difficultyPreset = "" })

	require.NoError(t, SetDifficultyPreset("hard"))
	assert.Equal(t, config.DifficultyHard, difficultyPreset)

	err := SetDifficultyPreset("brutal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brutal")
	assert.Equal(t, config.DifficultyHard, difficultyPreset, "a rejected name changes nothing")

	require.NoError(t, SetDifficultyPreset(""))
	assert.Empty(t, difficultyPreset)
}
