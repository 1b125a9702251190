package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/platform/session"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
	"github.com/vovakirdan/ecs-arcade/internal/storage"
)

// Options are shared by every screen of the terminal frontend.
type Options struct {
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil runs without persistence
	Player   string
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // nil renders to stdout
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// GameModel is the Bubble Tea model that runs one game at the runtime's
// tick rate.
type GameModel struct {
	id         int64
	session    *session.Session
	screen     *core.Screen
	renderer   *ScreenRenderer
	keys       KeyMap
	frame      core.InputFrame
	interval   time.Duration
	logger     *log.Logger
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A standalone model quits where a
// hosted one would go back to the menu.
func NewGameModel(game registry.Game, opts Options, standalone bool) GameModel {
	var rec session.Recorder
	if opts.Store != nil {
		rec = opts.Store
	}
	logger := opts.logger()

	return GameModel{
		session: session.New(game, session.Options{
			Runtime:  opts.Runtime,
			Recorder: rec,
			Player:   opts.Player,
			Logger:   logger,
		}),
		id:         nextModelID(),
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		renderer:   NewScreenRenderer(opts.Renderer),
		keys:       DefaultKeyMap(),
		frame:      core.NewInputFrame(),
		interval:   opts.Runtime.TickInterval(),
		logger:     logger,
		standalone: standalone,
	}
}

// Init starts the first run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.session.Start()
	return tickCmd(m.id, m.interval)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.session.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Model != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.frame.Has(core.ActionBack) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}
	return m, nil
}

// handleTick steps the game with the keys pressed since the last tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	m.session.Step(m.frame)
	m.frame.Clear()
	return m, tickCmd(m.id, m.interval)
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots.
func (m GameModel) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.session.Game().ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m GameModel) draw() {
	m.screen.Clear()
	m.session.Render(m.screen)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return m.renderer.Render(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState { return m.session.State() }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a single game until the user quits.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewGameModel(game, opts, true),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
