package water

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/config"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
)

var (
	configPath     string
	assetServer    *assets.Server
	debugColliders bool
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetAssets overrides the embedded sprite atlas.
func SetAssets(srv *assets.Server) {
	assetServer = srv
}

// SetDebugColliders outlines collider shapes when rendering.
func SetDebugColliders(on bool) {
	debugColliders = on
}

// Game adapts the demo to the registry. It never ends and has no score.
type Game struct {
	app     *engine.App
	runtime core.RuntimeConfig
	logger  *log.Logger
}

// New creates a new water demo instance.
func New() *Game {
	return &Game{logger: log.Default().WithPrefix("water")}
}

func (g *Game) ID() string    { return "water" }
func (g *Game) Title() string { return "Water Tiles" }

func (g *Game) Description() string {
	return "Steer a ball across a strip of water tiles"
}

func (g *Game) Controls() string {
	return "WASD/arrows steer · Q quit"
}

// Reset loads the configuration and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadWater(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultWaterConfig()
	}
	g.reset(runtime, cfg)
}

func (g *Game) reset(runtime core.RuntimeConfig, cfg config.WaterConfig) {
	g.runtime = runtime
	g.app = NewApp(AppOptions{
		Runtime:        runtime,
		Config:         cfg,
		Assets:         assetServer,
		DebugColliders: debugColliders,
	})
	g.app.Startup()
}

// Resize follows the terminal size; the world keeps running.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	if g.app != nil {
		g.app.Resize(width, height)
	}
}

// Step advances the demo by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.app.Update(in, g.runtime.TickInterval())
	return core.StepResult{State: g.State()}
}

// Render draws the world.
func (g *Game) Render(dst *core.Screen) {
	g.app.Render(dst)
}

// State is always a running, unscored game.
func (g *Game) State() core.GameState {
	return core.GameState{}
}

func init() {
	registry.Register("water", func() registry.Game {
		return New()
	})
}
