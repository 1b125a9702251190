package engine

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// CameraData maps world pixels onto terminal cells. The camera centre is
// drawn at the middle of the window.
type CameraData struct {
	PixelsPerCellX float64
	PixelsPerCellY float64
	Center         core.Vec2
}

var Camera = donburi.NewComponentType[CameraData]()

// DefaultCamera maps one world unit to one cell.
func DefaultCamera() CameraData {
	return CameraData{PixelsPerCellX: 1, PixelsPerCellY: 1}
}

// CameraPlugin spawns a camera with the given cell size at startup.
func CameraPlugin(pxPerCellX, pxPerCellY float64) Plugin {
	return func(app *App) {
		app.AddSystems(Startup, NewSystem("spawn_camera", func(ctx *Context) {
			e := Spawn(ctx.World, Camera)
			Camera.SetValue(e, CameraData{
				PixelsPerCellX: pxPerCellX,
				PixelsPerCellY: pxPerCellY,
			})
		}))
	}
}

// CameraOf returns the first camera in w.
func CameraOf(w donburi.World) (CameraData, bool) {
	e, ok := Camera.First(w)
	if !ok {
		return CameraData{}, false
	}
	return *Camera.Get(e), true
}

// Viewport returns the world rectangle visible in a window of w x h cells.
func (c CameraData) Viewport(w, h int) core.Bounds {
	half := core.V2(float64(w)*c.PixelsPerCellX/2, float64(h)*c.PixelsPerCellY/2)
	return core.BoundsAround(c.Center, half)
}

// ToCell converts a world point to fractional cell coordinates.
func (c CameraData) ToCell(p core.Vec2, w, h int) (float64, float64) {
	x := float64(w)/2 + (p.X-c.Center.X)/c.PixelsPerCellX
	y := float64(h)/2 - (p.Y-c.Center.Y)/c.PixelsPerCellY
	return x, y
}

// CellRect returns the cells covered by a world box of the given centre
// and size. Boxes smaller than a cell still cover one.
func (c CameraData) CellRect(center, size core.Vec2, w, h int) core.Rect {
	half := size.Scale(0.5)
	x0, y0 := c.ToCell(core.V2(center.X-half.X, center.Y+half.Y), w, h)
	x1, y1 := c.ToCell(core.V2(center.X+half.X, center.Y-half.Y), w, h)

	left, top := int(math.Round(x0)), int(math.Round(y0))
	right, bottom := int(math.Round(x1)), int(math.Round(y1))
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	return core.NewRect(left, top, right-left, bottom-top)
}
