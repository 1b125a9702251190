package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnceTimer(t *testing.T) {
	tm := NewTimer(100*time.Millisecond, Once)

	tm.Tick(60 * time.Millisecond)
	assert.False(t, tm.Finished())
	assert.Equal(t, 40*time.Millisecond, tm.Remaining())

	tm.Tick(60 * time.Millisecond)
	assert.True(t, tm.Finished())
	assert.True(t, tm.JustFinished())
	assert.Equal(t, time.Duration(0), tm.Remaining())

	tm.Tick(60 * time.Millisecond)
	assert.True(t, tm.Finished())
	assert.False(t, tm.JustFinished(), "once timer finishes only once")

	tm.Reset()
	assert.False(t, tm.Finished())
	assert.Equal(t, 100*time.Millisecond, tm.Remaining())
}

func TestRepeatingTimer(t *testing.T) {
	tm := NewTimer(time.Second, Repeating)

	tm.Tick(900 * time.Millisecond)
	assert.False(t, tm.JustFinished())

	tm.Tick(200 * time.Millisecond)
	assert.True(t, tm.JustFinished())
	assert.Equal(t, 1, tm.TimesFinishedThisTick())
	assert.Equal(t, 100*time.Millisecond, tm.Elapsed())

	tm.Tick(2500 * time.Millisecond)
	assert.Equal(t, 2, tm.TimesFinishedThisTick())
	assert.Equal(t, 600*time.Millisecond, tm.Elapsed())

	tm.Tick(10 * time.Millisecond)
	assert.False(t, tm.Finished(), "repeating timer is finished only on wrapping ticks")
}

func TestRepeatingTimerDurationChange(t *testing.T) {
	tm := NewTimer(2*time.Second, Repeating)
	tm.Tick(time.Second)
	tm.SetDuration(1500 * time.Millisecond)

	tm.Tick(500 * time.Millisecond)
	assert.True(t, tm.JustFinished())
	assert.Equal(t, Repeating, tm.Mode())
	assert.Equal(t, 1500*time.Millisecond, tm.Duration())
}
