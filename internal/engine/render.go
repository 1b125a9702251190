package engine

import (
	"sort"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

var (
	spriteQuery = donburi.NewQuery(filter.Contains(Transform, Sprite))
	textQuery   = donburi.NewQuery(filter.Contains(Text))
)

type drawItem struct {
	z     float64
	rect  core.Rect
	glyph rune
	color core.Color
}

// Render draws sprites by ascending Z, then render hooks, then text labels.
func (a *App) Render(dst *core.Screen) {
	ctx := a.ctx
	cam, ok := CameraOf(a.world)
	if !ok {
		cam = DefaultCamera()
	}
	w, h := dst.Width(), dst.Height()

	var items []drawItem
	spriteQuery.Each(a.world, func(e *donburi.Entry) {
		sp := Sprite.Get(e)
		if sp.Hidden {
			return
		}
		tf := Transform.Get(e)
		size := sp.Size().Mul(tf.Scale)
		items = append(items, drawItem{
			z:     tf.Z,
			rect:  cam.CellRect(tf.Translation, size, w, h),
			glyph: sp.Sprite.Glyph,
			color: sp.Sprite.Color,
		})
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].z < items[j].z })
	for _, it := range items {
		dst.DrawRectColored(it.rect, it.glyph, it.color)
	}

	for _, hook := range a.renderHooks {
		hook(ctx, dst)
	}

	textQuery.Each(a.world, func(e *donburi.Entry) {
		t := Text.Get(e)
		drawText(dst, t)
	})
}

func drawText(dst *core.Screen, t *TextData) {
	n := len([]rune(t.Value))
	var x, y int
	switch t.Anchor {
	case AnchorTopCenter:
		x = (dst.Width() - n) / 2
	case AnchorBottomLeft:
		y = dst.Height() - 1
	}
	x += int(t.Offset.X)
	y += int(t.Offset.Y)
	dst.DrawTextColored(x, y, t.Value, t.Color)
}
