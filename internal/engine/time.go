package engine

import "time"

// Time is the frame clock.
type Time struct {
	delta   time.Duration
	elapsed time.Duration
	frame   uint64
}

// Delta returns the duration of the current frame.
func (t *Time) Delta() time.Duration { return t.delta }

// DeltaSeconds returns the duration of the current frame in seconds.
func (t *Time) DeltaSeconds() float64 { return t.delta.Seconds() }

// Elapsed returns the total time advanced so far.
func (t *Time) Elapsed() time.Duration { return t.elapsed }

// Frame returns the number of frames run, counting the current one.
func (t *Time) Frame() uint64 { return t.frame }

func (t *Time) advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	t.delta = dt
	t.elapsed += dt
	t.frame++
}

// TimerMode selects whether a timer stops or wraps when it finishes.
type TimerMode int

const (
	Once TimerMode = iota
	Repeating
)

// Timer counts up towards a duration as it is ticked.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode

	finished  bool
	timesThis int
}

// NewTimer creates a stopped-at-zero timer.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{duration: d, mode: mode}
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt time.Duration) *Timer {
	t.timesThis = 0

	switch t.mode {
	case Repeating:
		t.finished = false
		if t.duration <= 0 {
			t.finished = true
			t.timesThis = 1
			return t
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.timesThis = int(t.elapsed / t.duration)
			t.elapsed %= t.duration
			t.finished = true
		}
	default:
		if t.finished {
			return t
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			t.timesThis = 1
		}
	}
	return t
}

// Finished reports whether a once timer has run out, or whether a
// repeating timer wrapped during the last tick.
func (t *Timer) Finished() bool { return t.finished }

// JustFinished reports whether the last tick finished the timer.
func (t *Timer) JustFinished() bool { return t.timesThis > 0 }

// TimesFinishedThisTick returns how many times the last tick completed
// the timer. Only repeating timers can report more than one.
func (t *Timer) TimesFinishedThisTick() int { return t.timesThis }

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.timesThis = 0
}

// Elapsed returns the time accumulated since the last reset or wrap.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Remaining returns the time left before the timer finishes.
func (t *Timer) Remaining() time.Duration { return t.duration - t.elapsed }

// Duration returns the timer's period.
func (t *Timer) Duration() time.Duration { return t.duration }

// SetDuration changes the period without resetting progress.
func (t *Timer) SetDuration(d time.Duration) { t.duration = d }

// Mode returns the timer mode.
func (t *Timer) Mode() TimerMode { return t.mode }
