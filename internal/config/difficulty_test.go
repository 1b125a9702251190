package config

import (
	"testing"
	"time"
)

func testDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling: ScalingConfig{
			SpeedMultiplier:   1.0,
			GapReduction:      40,
			IntervalReduction: 0.5,
		},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{5, 0.5},
		{10, 1},
		{100, 1},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score, 0); got != tt.want {
			t.Errorf("Level(%d) = %v, expected %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyDisabledUsesInitialLevel(t *testing.T) {
	cfg := testDifficulty()
	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	d := NewDifficultyManager(cfg)

	if got := d.Level(1000, 1000); got != 0.3 {
		t.Errorf("disabled manager Level = %v, expected 0.3", got)
	}
	if d.IsEnabled() {
		t.Error("IsEnabled should be false")
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())

	if got := d.Speed(100, 10, 0); got != 200 {
		t.Errorf("Speed at max = %v, expected 200", got)
	}
	if got := d.GapSize(120, 90, 10, 0); got != 90 {
		t.Errorf("GapSize should respect the floor, got %v", got)
	}
	if got := d.GapSize(120, 50, 5, 0); got != 100 {
		t.Errorf("GapSize at half = %v, expected 100", got)
	}
	if got := d.Interval(2*time.Second, 500*time.Millisecond, 10, 0); got != time.Second {
		t.Errorf("Interval at max = %v, expected 1s", got)
	}
	if got := d.Interval(2*time.Second, 1500*time.Millisecond, 10, 0); got != 1500*time.Millisecond {
		t.Errorf("Interval should respect the floor, got %v", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	cfg := testDifficulty()
	cfg.Progression = ProgressionConfig{Type: "time", MaxAt: 600}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 300); got != 0.5 {
		t.Errorf("Level at half time = %v, expected 0.5", got)
	}
}
