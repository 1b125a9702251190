package engine

import (
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// Context is what a system sees of the app.
type Context struct {
	World    donburi.World
	Time     *Time
	Input    *Input
	Commands *Commands
	Logger   *log.Logger
	Assets   *assets.Server

	// Window size in cells.
	Width, Height int
}

// Viewport returns the visible world rectangle for the current camera.
// Without a camera one cell is one world unit.
func (c *Context) Viewport() core.Bounds {
	cam, ok := CameraOf(c.World)
	if !ok {
		cam = DefaultCamera()
	}
	return cam.Viewport(c.Width, c.Height)
}

// SystemFunc is the body of a system.
type SystemFunc func(ctx *Context)

// Condition decides whether a system runs this frame.
type Condition func(ctx *Context) bool

// System is a named function gated by run conditions.
type System struct {
	name  string
	fn    SystemFunc
	conds []Condition
}

// NewSystem wraps fn as a system.
func NewSystem(name string, fn SystemFunc) *System {
	return &System{name: name, fn: fn}
}

// RunIf adds run conditions. All of them must hold for the system to run.
func (s *System) RunIf(conds ...Condition) *System {
	s.conds = append(s.conds, conds...)
	return s
}

// Name returns the system name.
func (s *System) Name() string { return s.name }

func (s *System) shouldRun(ctx *Context) bool {
	for _, c := range s.conds {
		if !c(ctx) {
			return false
		}
	}
	return true
}

func (s *System) run(ctx *Context) {
	s.fn(ctx)
}

// Any holds when at least one of conds holds.
func Any(conds ...Condition) Condition {
	return func(ctx *Context) bool {
		for _, c := range conds {
			if c(ctx) {
				return true
			}
		}
		return false
	}
}

// Not negates a condition.
func Not(c Condition) Condition {
	return func(ctx *Context) bool { return !c(ctx) }
}
