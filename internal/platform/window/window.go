// Package window runs a hosted game in a desktop window with ebiten. Each
// screen cell becomes a tinted block, or a glyph for plain text.
package window

import (
	"errors"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/platform/session"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
	"github.com/vovakirdan/ecs-arcade/internal/storage"
)

// Default cell size in window pixels; the debug font is 6x16.
const (
	DefaultCellW = 10
	DefaultCellH = 20
)

var background = color.RGBA{0x10, 0x12, 0x18, 0xff}

// Options configure a window.
type Options struct {
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil runs without persistence
	Player  string
	Logger  *log.Logger
	CellW   int
	CellH   int
}

// Window is an ebiten.Game hosting one registry game.
type Window struct {
	session *session.Session
	screen  *core.Screen
	cellW   int
	cellH   int
	pressed func(ebiten.Key) bool
}

// New creates a window for game. Call Run to open it.
func New(game registry.Game, opts Options) *Window {
	var rec session.Recorder
	if opts.Store != nil {
		rec = opts.Store
	}
	if opts.CellW <= 0 {
		opts.CellW = DefaultCellW
	}
	if opts.CellH <= 0 {
		opts.CellH = DefaultCellH
	}

	s := session.New(game, session.Options{
		Runtime:  opts.Runtime,
		Recorder: rec,
		Player:   opts.Player,
		Logger:   opts.Logger,
	})
	s.Start()

	return &Window{
		session: s,
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		cellW:   opts.CellW,
		cellH:   opts.CellH,
		pressed: inpututil.IsKeyJustPressed,
	}
}

// Update steps the game once per ebiten tick.
func (w *Window) Update() error {
	frame, quit := pollInput(w.pressed)
	if quit {
		return ebiten.Termination
	}
	w.session.Step(frame)
	return nil
}

// Draw paints the current screen buffer.
func (w *Window) Draw(dst *ebiten.Image) {
	dst.Fill(background)

	w.screen.Clear()
	w.session.Render(w.screen)

	for y := range w.screen.Height() {
		for x := range w.screen.Width() {
			cell := w.screen.GetCell(x, y)
			px, py := x*w.cellW, y*w.cellH
			switch cellKind(cell) {
			case kindGlyph:
				ebitenutil.DebugPrintAt(dst, string(cell.Rune), px+(w.cellW-6)/2, py+(w.cellH-16)/2)
			case kindBlock:
				vector.DrawFilledRect(dst, float32(px), float32(py), float32(w.cellW), float32(w.cellH), rgba(cell.Color), false)
			}
		}
	}
}

// Layout keeps one logical pixel per window pixel.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.screen.Width() * w.cellW, w.screen.Height() * w.cellH
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(game registry.Game, opts Options) error {
	w := New(game, opts)
	width, height := w.Layout(0, 0)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(game.Title())
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
