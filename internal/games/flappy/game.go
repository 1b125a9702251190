// Package flappy implements a Flappy Bird-style side-scroller on the ECS engine.
// The bird holds its horizontal position while pipes scroll in from the
// right; passing a pipe scores a point and touching anything ends the run.
package flappy

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/config"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
)

// Options set from the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	assetServer      *assets.Server
	debugColliders   bool
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. An empty name keeps the
// config file's difficulty block; unknown names are rejected and change
// nothing.
func SetDifficultyPreset(preset string) error {
	if preset == "" {
		difficultyPreset = ""
		return nil
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetAssets overrides the embedded sprite atlas.
func SetAssets(srv *assets.Server) {
	assetServer = srv
}

// SetDebugColliders outlines collider shapes when rendering.
func SetDebugColliders(on bool) {
	debugColliders = on
}

// Game adapts a flappy app to the registry's Game interface.
type Game struct {
	app     *engine.App
	run     *Run
	runtime core.RuntimeConfig
	logger  *log.Logger
}

// New creates a new Flappy game instance.
func New() *Game {
	return &Game{logger: log.Default().WithPrefix("flappy")}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return "Flap through the gaps between scrolling pipes"
}

// Controls returns the key hint for menus.
func (g *Game) Controls() string {
	return "Space/W/↑ flap · Esc/P pause · R restart"
}

// Reset loads the configuration and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	if difficultyPreset != "" {
		cfg.Difficulty.ApplyPreset(difficultyPreset)
	}
	g.reset(runtime, cfg)
}

func (g *Game) reset(runtime core.RuntimeConfig, cfg config.FlappyConfig) {
	g.runtime = runtime
	g.app, g.run = NewApp(AppOptions{
		Runtime:        runtime,
		Config:         cfg,
		Assets:         assetServer,
		DebugColliders: debugColliders,
	})
	g.app.Startup()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.app.Update(in, g.runtime.TickInterval())
	return core.StepResult{State: g.State()}
}

// Render draws the world, then the pause or game over box.
func (g *Game) Render(dst *core.Screen) {
	g.app.Render(dst)

	switch g.run.State.Current() {
	case Paused:
		dst.DrawMessageBox("PAUSED", "Press Esc to resume")
	case Dead:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.run.Score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	st := g.run.State.Current()
	return core.GameState{
		Score:    g.run.Score,
		GameOver: st == Dead,
		Paused:   st == Paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
