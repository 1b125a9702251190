package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/water.yaml
var defaultWaterYAML []byte

// DefaultFlappyConfig returns the default Flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		View: ViewConfig{PixelsPerCellX: 8, PixelsPerCellY: 16},
		Player: FlappyPlayer{
			X:      -200,
			Y:      0,
			Radius: 12,
			Sprite: "sprites/Bird.png",
		},
		Physics: FlappyPhysics{
			Gravity:      800,
			JumpSpeed:    250,
			JumpDuration: 150 * time.Millisecond,
			MaxFallSpeed: 400,
		},
		Pipes: FlappyPipes{
			HalfWidth:     24,
			GapSize:       120,
			MinGapSize:    80,
			Speed:         120,
			SpawnInterval: 2 * time.Second,
			MinInterval:   time.Second,
			Margin:        40,
			Sprite:        "sprites/Pipe.png",
		},
		Ground: FlappyGround{
			Height: 32,
			Sprite: "sprites/Ground.png",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				GapReduction:      40,
				IntervalReduction: 0.4,
			},
		},
	}
}

// DefaultWaterConfig returns the default water demo configuration.
func DefaultWaterConfig() WaterConfig {
	return WaterConfig{
		View: ViewConfig{PixelsPerCellX: 8, PixelsPerCellY: 16},
		Ground: WaterGround{
			Position:    core.V2(0, -100),
			Scale:       core.V2(8, 1),
			HalfExtents: core.V2(32, 32),
			Sprite:      "sprites/WaterTile.png",
		},
		Player: WaterPlayer{
			Radius: 32,
			Speed:  100,
			Sprite: "sprites/WaterPlayer.png",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	case "water":
		return defaultWaterYAML
	default:
		return nil
	}
}
