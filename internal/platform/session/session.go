// Package session drives one hosted game for a frontend: it owns the run
// lifecycle (start, restart, resize) and records each finished run once.
package session

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
	"github.com/vovakirdan/ecs-arcade/internal/storage"
)

// Recorder persists finished runs. *storage.Store implements it.
type Recorder interface {
	RecordRun(run storage.Run) (bool, error)
}

// Options configure a Session.
type Options struct {
	Runtime  core.RuntimeConfig
	Recorder Recorder // nil disables score saving
	Player   string
	Logger   *log.Logger

	// NewRunID overrides run ID generation in tests.
	NewRunID func() string
}

// Session wraps a registry game with the platform's run bookkeeping.
type Session struct {
	game     registry.Game
	runtime  core.RuntimeConfig
	recorder Recorder
	player   string
	logger   *log.Logger
	newRunID func() string

	seedFixed bool
	runID     string
	state     core.GameState
	saved     bool
}

// New creates a session for game. Call Start before stepping.
func New(game registry.Game, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	return &Session{
		game:      game,
		runtime:   opts.Runtime,
		recorder:  opts.Recorder,
		player:    opts.Player,
		logger:    logger.With("game", game.ID()),
		newRunID:  newRunID,
		seedFixed: opts.Runtime.Seed != 0,
	}
}

// Start begins a fresh run.
func (s *Session) Start() {
	if !s.seedFixed {
		s.runtime.Seed = time.Now().UnixNano()
	}
	s.runID = s.newRunID()
	s.saved = false
	s.game.Reset(s.runtime)
	s.state = s.game.State()
	s.logger.Debug("run started", "run", s.runID, "seed", s.runtime.Seed)
}

// Restart abandons the current run and starts another. A run that ended
// has already been recorded.
func (s *Session) Restart() {
	s.Start()
}

// Step feeds one input frame. Restart after game over rebuilds the game
// instead of stepping it.
func (s *Session) Step(in core.InputFrame) core.GameState {
	if s.state.GameOver && in.Has(core.ActionRestart) {
		s.Restart()
		return s.state
	}

	s.state = s.game.Step(in).State
	if s.state.GameOver && !s.saved {
		s.save()
	}
	return s.state
}

func (s *Session) save() {
	s.saved = true
	if s.recorder == nil || s.state.Score <= 0 {
		return
	}

	inserted, err := s.recorder.RecordRun(storage.Run{
		RunID:  s.runID,
		GameID: s.game.ID(),
		Player: s.player,
		Score:  s.state.Score,
	})
	if err != nil {
		s.logger.Warn("score not saved", "run", s.runID, "err", err)
		return
	}
	if inserted {
		s.logger.Info("score saved", "run", s.runID, "player", s.player, "score", s.state.Score)
	}
}

// Resize follows a window resize. Games that cannot resize in place are
// rebuilt unless the run is over, so the game over screen stays visible.
func (s *Session) Resize(width, height int) {
	s.runtime.ScreenW, s.runtime.ScreenH = width, height
	if r, ok := s.game.(registry.Resizer); ok {
		r.Resize(width, height)
		return
	}
	if !s.state.GameOver {
		s.Start()
	}
}

// Render draws the current frame.
func (s *Session) Render(dst *core.Screen) {
	s.game.Render(dst)
}

// Game returns the hosted game.
func (s *Session) Game() registry.Game { return s.game }

// State returns the state after the last step.
func (s *Session) State() core.GameState { return s.state }

// RunID identifies the current run.
func (s *Session) RunID() string { return s.runID }

// Runtime returns the runtime config of the current run.
func (s *Session) Runtime() core.RuntimeConfig { return s.runtime }
