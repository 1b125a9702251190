package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {0xe0, 0xe0, 0xe0, 0xff},
	core.ColorRed:           {0xcd, 0x31, 0x31, 0xff},
	core.ColorGreen:         {0x0d, 0xbc, 0x79, 0xff},
	core.ColorYellow:        {0xe5, 0xe5, 0x10, 0xff},
	core.ColorBlue:          {0x24, 0x72, 0xc8, 0xff},
	core.ColorMagenta:       {0xbc, 0x3f, 0xbc, 0xff},
	core.ColorCyan:          {0x11, 0xa8, 0xcd, 0xff},
	core.ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	core.ColorBrightRed:     {0xf1, 0x4c, 0x4c, 0xff},
	core.ColorBrightGreen:   {0x23, 0xd1, 0x8b, 0xff},
	core.ColorBrightYellow:  {0xf5, 0xf5, 0x43, 0xff},
	core.ColorBrightBlue:    {0x3b, 0x8e, 0xea, 0xff},
	core.ColorBrightMagenta: {0xd6, 0x70, 0xd6, 0xff},
	core.ColorBrightCyan:    {0x29, 0xb8, 0xdb, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	core.ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
}

func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

type drawKind int

const (
	kindEmpty drawKind = iota
	kindGlyph
	kindBlock
)

// cellKind decides how a cell is painted: untinted ASCII is text from the
// debug font, everything else is a solid block in the cell's color.
func cellKind(c core.Cell) drawKind {
	switch {
	case c.Rune == ' ' || c.Rune == 0:
		return kindEmpty
	case c.Color == core.ColorDefault && c.Rune < 0x80:
		return kindGlyph
	default:
		return kindBlock
	}
}

// keyActions lists the window's bindings in priority order.
var keyActions = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, core.ActionUp},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, core.ActionDown},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeySpace}, core.ActionJump},
	{[]ebiten.Key{ebiten.KeyEnter}, core.ActionConfirm},
	{[]ebiten.Key{ebiten.KeyEscape, ebiten.KeyP}, core.ActionPause},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart},
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyB}, core.ActionQuit},
}

// pollInput builds this tick's frame from the keys that went down.
func pollInput(justPressed func(ebiten.Key) bool) (core.InputFrame, bool) {
	frame := core.NewInputFrame()
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if !justPressed(k) {
				continue
			}
			if ka.action == core.ActionQuit {
				return frame, true
			}
			frame.Set(ka.action)
		}
	}
	return frame, false
}
