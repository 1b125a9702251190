package flappy

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/ecs-arcade/internal/engine"
	"github.com/vovakirdan/ecs-arcade/internal/engine/physics"
)

// PlayerData is the bird. While IsJumping the bird rises at jump speed
// until JumpTimer runs out.
type PlayerData struct {
	IsJumping bool
	JumpTimer engine.Timer
}

var Player = donburi.NewComponentType[PlayerData]()

// PipeData marks a pipe. GapCenter and GapSize are in world px.
type PipeData struct {
	Scored    bool
	HalfWidth float64
	GapCenter float64
	GapSize   float64
}

var Pipe = donburi.NewComponentType[PipeData]()

// GroundData marks the floor strip.
type GroundData struct {
	Top float64
}

var Ground = donburi.NewComponentType[GroundData]()

// ScoreLabelData marks the text entity showing the score.
type ScoreLabelData struct {
	Format string
}

var ScoreLabel = donburi.NewComponentType[ScoreLabelData]()

var (
	playerQuery = donburi.NewQuery(filter.Contains(Player, physics.Velocity, engine.Transform))
	pipeQuery   = donburi.NewQuery(filter.Contains(Pipe, physics.Velocity, engine.Transform))
	groundQuery = donburi.NewQuery(filter.Contains(Ground))
	labelQuery  = donburi.NewQuery(filter.Contains(ScoreLabel, engine.Text))
)
