package engine

import "github.com/vovakirdan/ecs-arcade/internal/core"

// Input exposes the current frame's actions to systems.
type Input struct {
	frame core.InputFrame
}

// JustPressed reports whether a went down this frame.
func (i *Input) JustPressed(a core.Action) bool {
	return i.frame.Has(a)
}

// AnyJustPressed reports whether any of actions went down this frame.
func (i *Input) AnyJustPressed(actions ...core.Action) bool {
	return i.frame.Any(actions...)
}

// Frame returns the raw input frame.
func (i *Input) Frame() core.InputFrame { return i.frame }

func (i *Input) set(f core.InputFrame) { i.frame = f }
