package flappy

import (
	"math/rand"

	"github.com/vovakirdan/ecs-arcade/internal/config"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/engine"
)

// AppState drives which gameplay systems run.
type AppState int

const (
	Playing AppState = iota
	Paused
	Dead
)

func (s AppState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// transitions lists every legal state change. Dead is terminal.
var transitions = map[AppState][]AppState{
	Playing: {Paused, Dead},
	Paused:  {Playing},
}

// Run is the state of one play-through, shared by the systems of one app.
type Run struct {
	Score          int
	StoredVelocity core.Vec2
	State          *engine.State[AppState]

	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	spawnTimer engine.Timer
	ticks      int
}

func newRun(cfg config.FlappyConfig, seed int64) *Run {
	return &Run{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)),
		spawnTimer: engine.NewTimer(cfg.Pipes.SpawnInterval, engine.Repeating),
	}
}
