package engine

import "github.com/tqdat410/balance-of-interests/internal/game"

// EffectNotice describes one applied effect for presentation listeners.
// Bars is the meter state after the application.
type EffectNotice struct {
	Round   int
	Actor   string
	Action  string
	Effects game.Effect
	Bars    game.Bars
}

// OnTurnChange registers a listener invoked whenever the current actor
// changes, including the first actor of every round. Listeners run
// synchronously on the caller's goroutine.
func (m *Match) OnTurnChange(fn func(game.Entity)) {
	m.turnListeners = append(m.turnListeners, fn)
}

// OnEffectApplied registers a listener invoked after every meter mutation.
func (m *Match) OnEffectApplied(fn func(EffectNotice)) {
	m.effectListeners = append(m.effectListeners, fn)
}

// OnEventFired registers a listener invoked when a scheduled event fires
// at the start of its round, before resolution.
func (m *Match) OnEventFired(fn func(game.Event, int)) {
	m.eventListeners = append(m.eventListeners, fn)
}

// OnMatchOver registers a listener invoked exactly once, on the terminal
// transition.
func (m *Match) OnMatchOver(fn func(game.Ending)) {
	m.overListeners = append(m.overListeners, fn)
}

func (m *Match) notifyTurnChange(e game.Entity) {
	for _, fn := range m.turnListeners {
		fn(e)
	}
}

func (m *Match) notifyEffectApplied(n EffectNotice) {
	for _, fn := range m.effectListeners {
		fn(n)
	}
}

func (m *Match) notifyEventFired(ev game.Event, round int) {
	for _, fn := range m.eventListeners {
		fn(ev, round)
	}
}

func (m *Match) notifyMatchOver(ending game.Ending) {
	for _, fn := range m.overListeners {
		fn(ending)
	}
}
