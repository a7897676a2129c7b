package engine

import (
	"fmt"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

// HandleEventSkip declines a pending special event: no effect is applied,
// nothing is logged and normal turn progression resumes.
func (m *Match) HandleEventSkip() error {
	if m.state == StateMatchOver {
		return ErrMatchOver
	}
	if m.pendingEvent == nil {
		return ErrNoEventPending
	}
	if !m.pendingEvent.Special {
		return ErrEventNotSpecial
	}
	m.pendingEvent = nil
	m.state = StateAwaitingAction
	return nil
}

// HandleEventExecute takes the gamble on a pending special event: one
// Bernoulli trial at the fixed success rate decides between the positive
// and the negative outcome vector — never both. The outcome is logged
// under the event's owning faction and counts as one player action.
func (m *Match) HandleEventExecute() error {
	if m.state == StateMatchOver {
		return ErrMatchOver
	}
	if m.pendingEvent == nil {
		return ErrNoEventPending
	}
	if !m.pendingEvent.Special {
		return ErrEventNotSpecial
	}
	ev := *m.pendingEvent
	m.pendingEvent = nil
	m.state = StateAwaitingAction

	success := m.rng.Float64() < constants.SpecialEventSuccessRate
	effects := ev.NegativeEffects
	outcome := "Failure!"
	if success {
		effects = ev.PositiveEffects
		outcome = "Success!"
	}
	actor := game.EventActor
	if ev.Entity.Valid() {
		actor = string(ev.Entity)
	}
	m.totalActions++
	m.apply(effects, fmt.Sprintf("Opportunity %s: %s", ev.Name, outcome), actor)
	return nil
}

// HandleEventContinue acknowledges an ordinary event. Its effects were
// already applied when the round began, so this only clears the pending
// notification.
func (m *Match) HandleEventContinue() error {
	if m.pendingEvent == nil || !m.pendingOrdinary {
		return ErrNoEventPending
	}
	m.pendingEvent = nil
	m.pendingOrdinary = false
	return nil
}

// PendingEvent returns the event currently awaiting the player, if any,
// and whether it blocks turn progression (special events do, ordinary
// acknowledgements do not).
func (m *Match) PendingEvent() (*game.Event, bool) {
	if m.pendingEvent == nil {
		return nil, false
	}
	ev := *m.pendingEvent
	return &ev, ev.Special
}
