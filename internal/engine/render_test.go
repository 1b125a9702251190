package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/core"
)

func TestCameraMapping(t *testing.T) {
	cam := CameraData{PixelsPerCellX: 8, PixelsPerCellY: 16}

	vp := cam.Viewport(80, 24)
	assert.Equal(t, core.V2(-320, -192), vp.Min)
	assert.Equal(t, core.V2(320, 192), vp.Max)

	x, y := cam.ToCell(core.V2(0, 0), 80, 24)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 12.0, y)

	// y points up in the world and down on screen
	_, y = cam.ToCell(core.V2(0, 32), 80, 24)
	assert.Equal(t, 10.0, y)

	r := cam.CellRect(core.V2(0, 0), core.V2(16, 32), 80, 24)
	assert.Equal(t, core.NewRect(39, 11, 2, 2), r)

	tiny := cam.CellRect(core.V2(0, 0), core.V2(1, 1), 80, 24)
	assert.Equal(t, 1, tiny.W)
	assert.Equal(t, 1, tiny.H)
}

func TestCameraPluginAndViewport(t *testing.T) {
	app := newTestApp()
	app.AddPlugin(CameraPlugin(8, 16))
	app.Startup()

	cam, ok := CameraOf(app.World())
	require.True(t, ok)
	assert.Equal(t, 8.0, cam.PixelsPerCellX)
	assert.Equal(t, 384.0, app.Context().Viewport().Height())
}

func TestRenderLayersSpritesHooksAndText(t *testing.T) {
	srv, err := assets.Default()
	require.NoError(t, err)

	app := newTestApp()
	app.AddPlugin(CameraPlugin(8, 16))
	app.AddSystems(Startup, NewSystem("scene", func(ctx *Context) {
		back := Spawn(ctx.World, Transform, Sprite)
		Transform.SetValue(back, NewTransform(0, 0).WithScale(4, 1))
		Sprite.SetValue(back, SpriteData{Sprite: srv.MustLoad("sprites/WaterTile.png")})

		front := Spawn(ctx.World, Transform, Sprite)
		Transform.SetValue(front, NewTransform(0, 0).WithZ(1))
		Sprite.SetValue(front, SpriteData{
			Sprite:     srv.MustLoad("sprites/WaterPlayer.png"),
			CustomSize: core.V2(8, 16),
		})

		hidden := Spawn(ctx.World, Transform, Sprite)
		Transform.SetValue(hidden, NewTransform(-200, 0))
		Sprite.SetValue(hidden, SpriteData{Sprite: srv.MustLoad("sprites/Bird.png"), Hidden: true})

		label := Spawn(ctx.World, Text)
		Text.SetValue(label, TextData{Value: "Score: 0", Anchor: AnchorTopCenter})
	}))
	hookRan := false
	app.AddRenderHook(func(ctx *Context, dst *core.Screen) { hookRan = true })
	app.Startup()

	screen := core.NewScreen(80, 24)
	app.Render(screen)

	assert.True(t, hookRan)
	assert.Equal(t, '●', screen.Get(40, 12), "higher Z drawn on top")
	assert.Equal(t, core.ColorBlue, screen.GetCell(30, 12).Color)
	assert.True(t, strings.Contains(screen.Row(0), "Score: 0"))
	assert.Equal(t, ' ', screen.Get(15, 12), "hidden sprites are skipped")
}
