// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// ViewConfig maps world pixels onto terminal cells.
type ViewConfig struct {
	PixelsPerCellX float64 `yaml:"pixels_per_cell_x"`
	PixelsPerCellY float64 `yaml:"pixels_per_cell_y"`
}

// FlappyConfig contains all configuration for the Flappy side-scroller.
type FlappyConfig struct {
	View       ViewConfig       `yaml:"view"`
	Player     FlappyPlayer     `yaml:"player"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Pipes      FlappyPipes      `yaml:"pipes"`
	Ground     FlappyGround     `yaml:"ground"`
	Death      FlappyDeath      `yaml:"death"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPlayer defines the bird. X is its fixed horizontal world position.
type FlappyPlayer struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Sprite string  `yaml:"sprite"`
}

// FlappyPhysics defines the jump and fall model, in px and px/s.
type FlappyPhysics struct {
	Gravity      float64       `yaml:"gravity"`
	JumpSpeed    float64       `yaml:"jump_speed"`
	JumpDuration time.Duration `yaml:"jump_duration"`
	MaxFallSpeed float64       `yaml:"max_fall_speed"`
}

// FlappyPipes defines pipe spawning and movement.
type FlappyPipes struct {
	HalfWidth     float64       `yaml:"half_width"`
	GapSize       float64       `yaml:"gap_size"`
	MinGapSize    float64       `yaml:"min_gap_size"`
	Speed         float64       `yaml:"speed"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	MinInterval   time.Duration `yaml:"min_interval"`
	Margin        float64       `yaml:"margin"` // keep gaps this far from ground and ceiling
	Sprite        string        `yaml:"sprite"`
}

// FlappyGround defines the floor strip at the bottom of the view.
type FlappyGround struct {
	Height float64 `yaml:"height"`
	Sprite string  `yaml:"sprite"`
}

// FlappyDeath tunes what ends a run.
type FlappyDeath struct {
	// IgnoreGround stops contacts with the ground from killing the bird.
	// Leaving the bottom of the view still does.
	IgnoreGround bool `yaml:"ignore_ground"`
}

// WaterConfig contains all configuration for the water-tile demo.
type WaterConfig struct {
	View   ViewConfig  `yaml:"view"`
	Ground WaterGround `yaml:"ground"`
	Player WaterPlayer `yaml:"player"`
}

// WaterGround defines the fixed tile strip.
type WaterGround struct {
	Position    core.Vec2 `yaml:"position"`
	Scale       core.Vec2 `yaml:"scale"`
	HalfExtents core.Vec2 `yaml:"half_extents"`
	Sprite      string    `yaml:"sprite"`
}

// WaterPlayer defines the moving ball.
type WaterPlayer struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	Sprite string  `yaml:"sprite"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at max level.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to the speed factor
	GapReduction      float64 `yaml:"gap_reduction"`      // px removed from the gap
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction removed from the spawn interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts a difficulty block for a preset.
func (d *DifficultyConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}

func (v ViewConfig) validate() error {
	var errs []error
	if v.PixelsPerCellX <= 0 {
		errs = append(errs, errors.New("view.pixels_per_cell_x must be positive"))
	}
	if v.PixelsPerCellY <= 0 {
		errs = append(errs, errors.New("view.pixels_per_cell_y must be positive"))
	}
	return errors.Join(errs...)
}

func (d DifficultyConfig) validate() error {
	var errs []error
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level %.2f outside [0, 1]", d.InitialLevel))
	}
	switch d.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q unknown", d.Progression.Type))
	}
	if d.Scaling.IntervalReduction < 0 || d.Scaling.IntervalReduction >= 1 {
		errs = append(errs, errors.New("difficulty.scaling.interval_reduction must be in [0, 1)"))
	}
	return errors.Join(errs...)
}

// Validate reports every problem with the configuration at once.
func (c FlappyConfig) Validate() error {
	errs := []error{c.View.validate(), c.Difficulty.validate()}
	if c.Player.Radius <= 0 {
		errs = append(errs, errors.New("player.radius must be positive"))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if c.Physics.JumpSpeed <= 0 {
		errs = append(errs, errors.New("physics.jump_speed must be positive"))
	}
	if c.Physics.JumpDuration <= 0 {
		errs = append(errs, errors.New("physics.jump_duration must be positive"))
	}
	if c.Physics.MaxFallSpeed <= 0 {
		errs = append(errs, errors.New("physics.max_fall_speed must be positive"))
	}
	if c.Pipes.HalfWidth <= 0 {
		errs = append(errs, errors.New("pipes.half_width must be positive"))
	}
	if c.Pipes.GapSize <= 2*c.Player.Radius {
		errs = append(errs, fmt.Errorf("pipes.gap_size %.0f leaves no room for the player", c.Pipes.GapSize))
	}
	if c.Pipes.Speed <= 0 {
		errs = append(errs, errors.New("pipes.speed must be positive"))
	}
	if c.Pipes.SpawnInterval <= 0 {
		errs = append(errs, errors.New("pipes.spawn_interval must be positive"))
	}
	if c.Pipes.Margin < 0 {
		errs = append(errs, errors.New("pipes.margin must not be negative"))
	}
	if c.Ground.Height < 0 {
		errs = append(errs, errors.New("ground.height must not be negative"))
	}
	return errors.Join(errs...)
}

// Validate reports every problem with the configuration at once.
func (c WaterConfig) Validate() error {
	errs := []error{c.View.validate()}
	if c.Player.Radius <= 0 {
		errs = append(errs, errors.New("player.radius must be positive"))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, errors.New("player.speed must not be negative"))
	}
	if c.Ground.HalfExtents.X <= 0 || c.Ground.HalfExtents.Y <= 0 {
		errs = append(errs, errors.New("ground.half_extents must be positive"))
	}
	if c.Ground.Scale.X <= 0 || c.Ground.Scale.Y <= 0 {
		errs = append(errs, errors.New("ground.scale must be positive"))
	}
	return errors.Join(errs...)
}
