package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the search path at empty directories so local files
// on the developer machine do not leak into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	old := LocalDir
	LocalDir = t.TempDir()
	t.Cleanup(func() { LocalDir = old })
}

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	isolate(t)

	flappy, err := LoadFlappy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFlappyConfig(), flappy)

	water, err := LoadWater("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWaterConfig(), water)
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := "pipes:\n  speed: 200\n  spawn_interval: 1500ms\ndeath:\n  ignore_ground: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFlappy(path)
	require.NoError(t, err)

	assert.Equal(t, 200.0, cfg.Pipes.Speed)
	assert.Equal(t, 1500*time.Millisecond, cfg.Pipes.SpawnInterval)
	assert.True(t, cfg.Death.IgnoreGround)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultFlappyConfig().Physics, cfg.Physics)
}

func TestLoadLocalDirectory(t *testing.T) {
	isolate(t)

	data := "player:\n  speed: 250\n"
	require.NoError(t, os.WriteFile(filepath.Join(LocalDir, "water.yaml"), []byte(data), 0o644))

	cfg, err := LoadWater("")
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Player.Speed)
	assert.Equal(t, 32.0, cfg.Player.Radius)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pipes: [not, a, map"), 0o644))
	_, err = LoadFlappy(bad)
	assert.Error(t, err)
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Physics.Gravity = 0
	cfg.Pipes.GapSize = 10
	cfg.View.PixelsPerCellY = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "physics.gravity")
	assert.Contains(t, msg, "pipes.gap_size")
	assert.Contains(t, msg, "view.pixels_per_cell_y")

	assert.NoError(t, DefaultWaterConfig().Validate())

	water := DefaultWaterConfig()
	water.Ground.Scale.X = 0
	assert.ErrorContains(t, water.Validate(), "ground.scale")
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestApplyPreset(t *testing.T) {
	d := DefaultFlappyConfig().Difficulty

	d.ApplyPreset(DifficultyHard)
	assert.True(t, d.Enabled)
	assert.Equal(t, 0.7, d.InitialLevel)

	d.ApplyPreset(DifficultyFixed)
	assert.False(t, d.Enabled)
}
