package engine

import "fmt"

// State is a finite-state resource. Set queues the next value; the app
// applies it once per frame, after PreUpdate, running the OnExit systems of
// the old value and then the OnEnter systems of the new one.
type State[S comparable] struct {
	current S
	next    S
	pending bool
	entered bool

	allow    func(from, to S) bool
	terminal map[S]bool
	onEnter map[S][]*System
	onExit  map[S][]*System
}

// AddState registers a state resource on app with its initial value.
// The OnEnter systems of initial run on the first frame.
func AddState[S comparable](app *App, initial S) *State[S] {
	st := &State[S]{
		current: initial,
		onEnter: make(map[S][]*System),
		onExit:  make(map[S][]*System),
	}
	app.states = append(app.states, st)
	return st
}

// Current returns the active value.
func (s *State[S]) Current() S { return s.current }

// Pending returns the queued value, if any.
func (s *State[S]) Pending() (S, bool) { return s.next, s.pending }

// Set queues a transition. A later Set replaces it, unless the queued
// value is terminal in the allow table: a queued terminal value stays
// until it is applied.
func (s *State[S]) Set(next S) {
	if s.pending && s.terminal[s.next] {
		return
	}
	s.next = next
	s.pending = true
}

// Terminal reports whether the allow table has no way out of value.
func (s *State[S]) Terminal(value S) bool { return s.terminal[value] }

// Allow restricts transitions to those for which fn returns true.
// Denied transitions are dropped and logged.
func (s *State[S]) Allow(fn func(from, to S) bool) *State[S] {
	s.allow = fn
	return s
}

// AllowTable restricts transitions to the listed from -> to pairs.
// Values reachable in the table but without an entry of their own are
// terminal.
func (s *State[S]) AllowTable(table map[S][]S) *State[S] {
	s.terminal = make(map[S]bool)
	for _, targets := range table {
		for _, t := range targets {
			if _, ok := table[t]; !ok {
				s.terminal[t] = true
			}
		}
	}
	return s.Allow(func(from, to S) bool {
		for _, t := range table[from] {
			if t == to {
				return true
			}
		}
		return false
	})
}

// OnEnter adds systems run when value becomes active.
func (s *State[S]) OnEnter(value S, systems ...*System) *State[S] {
	s.onEnter[value] = append(s.onEnter[value], systems...)
	return s
}

// OnExit adds systems run when value stops being active.
func (s *State[S]) OnExit(value S, systems ...*System) *State[S] {
	s.onExit[value] = append(s.onExit[value], systems...)
	return s
}

// Is is a run condition holding while the state equals value.
func (s *State[S]) Is(value S) Condition {
	return func(*Context) bool { return s.current == value }
}

// InState is a run condition holding while st is any of values.
func InState[S comparable](st *State[S], values ...S) Condition {
	return func(*Context) bool {
		for _, v := range values {
			if st.current == v {
				return true
			}
		}
		return false
	}
}

func (s *State[S]) apply(ctx *Context) {
	if !s.entered {
		s.entered = true
		s.runAll(ctx, s.onEnter[s.current])
	}
	if !s.pending {
		return
	}
	next := s.next
	s.pending = false

	if next == s.current {
		return
	}
	if s.allow != nil && !s.allow(s.current, next) {
		ctx.Logger.Warn("state transition denied", "from", fmt.Sprint(s.current), "to", fmt.Sprint(next))
		return
	}

	ctx.Logger.Debug("state transition", "from", fmt.Sprint(s.current), "to", fmt.Sprint(next))
	s.runAll(ctx, s.onExit[s.current])
	s.current = next
	s.runAll(ctx, s.onEnter[next])
}

func (s *State[S]) runAll(ctx *Context, systems []*System) {
	for _, sys := range systems {
		if !sys.shouldRun(ctx) {
			continue
		}
		sys.run(ctx)
		ctx.Commands.flush(ctx.World)
	}
}
