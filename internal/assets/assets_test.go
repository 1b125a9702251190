package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

func TestDefaultAtlasHasGameSprites(t *testing.T) {
	srv, err := Default()
	require.NoError(t, err)

	for _, path := range []string{
		"sprites/WaterTile.png",
		"sprites/WaterPlayer.png",
		"sprites/Bird.png",
		"sprites/Pipe.png",
		"sprites/Ground.png",
	} {
		sp, err := srv.Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, path, sp.Path)
		assert.Positive(t, sp.Size.X)
	}

	tile := srv.MustLoad("sprites/WaterTile.png")
	assert.Equal(t, '≈', tile.Glyph)
	assert.Equal(t, core.ColorBlue, tile.Color)
	assert.Equal(t, core.V2(64, 64), tile.Size)
}

func TestLoadUnknownPath(t *testing.T) {
	srv, err := Default()
	require.NoError(t, err)

	_, err = srv.Load("sprites/Nope.png")
	assert.Error(t, err)
	assert.Panics(t, func() { srv.MustLoad("sprites/Nope.png") })
}

func TestNewFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		AtlasFile: {Data: []byte("sprites:\n  a.png: {glyph: \"#\", color: red, width: 8, height: 16}\n")},
	}
	srv, err := New(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, srv.Paths())
}

func TestNewRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"long glyph":    "sprites:\n  a.png: {glyph: \"##\", color: red, width: 8, height: 8}\n",
		"unknown color": "sprites:\n  a.png: {glyph: \"#\", color: mauve, width: 8, height: 8}\n",
		"zero size":     "sprites:\n  a.png: {glyph: \"#\", color: red, width: 0, height: 8}\n",
	}
	for name, atlas := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(fstest.MapFS{AtlasFile: {Data: []byte(atlas)}})
			assert.Error(t, err)
		})
	}

	_, err := New(fstest.MapFS{})
	assert.Error(t, err, "missing atlas")
}
