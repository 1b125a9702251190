// Package engine is a small frame-driven host for ECS games.
//
// Entity storage and queries come from donburi; the engine adds what the
// games need around it: staged systems with run conditions, finite-state
// resources with enter/exit hooks, frame time and timers, deferred
// commands, transforms, sprites, text labels, a camera and a cell renderer.
//
// A frame runs as follows:
//
//	advance Time and Input
//	PreUpdate systems
//	pending state transitions (OnExit, then OnEnter)
//	Update, PostUpdate, Last systems
//
// Commands are flushed after every system and queued events are delivered
// after every stage.
package engine

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// Stage names a slot in the frame.
type Stage int

const (
	Startup Stage = iota
	PreUpdate
	Update
	PostUpdate
	Last
	stageCount
)

var stageNames = [...]string{"Startup", "PreUpdate", "Update", "PostUpdate", "Last"}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Plugin installs systems, resources and hooks into an app.
type Plugin func(app *App)

// RenderFunc draws on top of sprites and below text.
type RenderFunc func(ctx *Context, dst *core.Screen)

// Options configure a new App.
type Options struct {
	Name   string
	Logger *log.Logger
	Assets *assets.Server

	// Window size in cells.
	Width, Height int
}

// transitioner is the type-erased side of State[S].
type transitioner interface {
	apply(ctx *Context)
}

// App owns one world and everything that runs against it.
type App struct {
	name        string
	world       donburi.World
	stages      [stageCount][]*System
	states      []transitioner
	renderHooks []RenderFunc

	time     Time
	input    Input
	commands Commands
	ctx      *Context

	started bool
}

// New creates an empty app with a fresh world.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Name != "" {
		logger = logger.WithPrefix(opts.Name)
	}

	srv := opts.Assets
	if srv == nil {
		var err error
		if srv, err = assets.Default(); err != nil {
			logger.Error("embedded assets unavailable", "err", err)
		}
	}

	a := &App{
		name:  opts.Name,
		world: donburi.NewWorld(),
	}
	a.ctx = &Context{
		World:    a.world,
		Time:     &a.time,
		Input:    &a.input,
		Commands: &a.commands,
		Logger:   logger,
		Assets:   srv,
		Width:    opts.Width,
		Height:   opts.Height,
	}
	return a
}

// World returns the app's ECS world.
func (a *App) World() donburi.World { return a.world }

// Context returns the context passed to systems.
func (a *App) Context() *Context { return a.ctx }

// Logger returns the app logger.
func (a *App) Logger() *log.Logger { return a.ctx.Logger }

// Resize updates the window size in cells.
func (a *App) Resize(width, height int) {
	a.ctx.Width, a.ctx.Height = width, height
}

// AddPlugin installs p immediately.
func (a *App) AddPlugin(p Plugin) *App {
	p(a)
	return a
}

// AddSystems appends systems to a stage. Systems in a stage run in the
// order they were added.
func (a *App) AddSystems(stage Stage, systems ...*System) *App {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("engine: unknown stage %d", int(stage)))
	}
	a.stages[stage] = append(a.stages[stage], systems...)
	return a
}

// AddRenderHook registers a function drawn after sprites.
func (a *App) AddRenderHook(fn RenderFunc) *App {
	a.renderHooks = append(a.renderHooks, fn)
	return a
}

// Startup runs the Startup stage. Only the first call has an effect.
func (a *App) Startup() {
	if a.started {
		return
	}
	a.started = true
	a.runStage(Startup)
}

// Update runs one frame with the given input and frame duration.
func (a *App) Update(in core.InputFrame, dt time.Duration) {
	a.Startup()

	a.time.advance(dt)
	a.input.set(in)

	a.runStage(PreUpdate)
	for _, st := range a.states {
		st.apply(a.ctx)
	}
	a.runStage(Update)
	a.runStage(PostUpdate)
	a.runStage(Last)
}

func (a *App) runStage(stage Stage) {
	for _, sys := range a.stages[stage] {
		a.runSystem(sys)
	}
	events.ProcessAllEvents(a.world)
	// event handlers may have queued commands too
	a.commands.flush(a.world)
}

func (a *App) runSystem(sys *System) {
	if !sys.shouldRun(a.ctx) {
		return
	}
	sys.run(a.ctx)
	a.commands.flush(a.world)
}
