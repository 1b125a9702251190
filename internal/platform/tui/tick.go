// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Model is the id of the
// game model that scheduled it, so a stale tick loop cannot drive a newer game.
type TickMsg struct {
	Model int64
	Time  time.Time
}

var modelSeq atomic.Int64

func nextModelID() int64 {
	return modelSeq.Add(1)
}

// tickCmd schedules the next simulation tick for model id.
func tickCmd(id int64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Model: id, Time: t}
	})
}
