package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ecs-arcade/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// ArcadeModel manages the full arcade flow: menu -> game -> menu, with the
// scoreboard one key away. Local `arcade menu` and SSH sessions both run it.
type ArcadeModel struct {
	opts     Options
	current  screenKind
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewArcadeModel creates the top-level model.
func NewArcadeModel(opts Options) ArcadeModel {
	return ArcadeModel{
		opts: opts,
		menu: NewMenuModel(opts.Store, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
}

// Init initializes the session.
func (m ArcadeModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m ArcadeModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.scoreSource(), m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.current = screenScores
		return m, nil

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().ID)
		if err != nil {
			m.opts.logger().Error("cannot create game", "err", err)
			m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
			return m, nil
		}
		m.game = NewGameModel(game, m.opts, false)
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m ArcadeModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m ArcadeModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m ArcadeModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
	m.current = screenMenu
	return m, m.menu.Init()
}

func (m ArcadeModel) scoreSource() ScoreSource {
	if m.opts.Store == nil {
		return nil
	}
	return m.opts.Store
}

// View renders the active screen.
func (m ArcadeModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunArcade runs the menu-driven arcade until the user quits.
func RunArcade(opts Options) error {
	p := tea.NewProgram(NewArcadeModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunScoreboard shows the scoreboard on its own.
func RunScoreboard(store ScoreSource, width, height int) error {
	p := tea.NewProgram(standaloneScoreboard{NewScoreboardModel(store, width, height)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// standaloneScoreboard quits where the arcade would return to its menu.
type standaloneScoreboard struct {
	ScoreboardModel
}

func (s standaloneScoreboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.ScoreboardModel.Update(msg)
	s.ScoreboardModel = next.(ScoreboardModel)
	if s.IsGoingBack() {
		return s, tea.Quit
	}
	return s, cmd
}
