package engine

import (
	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

// HandleAction plays one action for the current actor: the effect vector
// is scaled by the round's difficulty modifier, applied and logged. The
// turn does not advance until CompleteAction is called, and a second
// action is rejected until then.
func (m *Match) HandleAction(action game.Action) error {
	switch {
	case m.state == StateMatchOver:
		return ErrMatchOver
	case m.state == StateAwaitingEvent:
		return ErrEventPending
	case m.actionInFlight:
		return ErrActionInFlight
	}
	scaled := ScaleEffect(action.Effects, m.round)
	actor := string(m.turnOrder[m.turnIndex])
	m.totalActions++
	m.apply(scaled, action.Name, actor)
	if m.state == StateMatchOver {
		return nil
	}
	m.actionInFlight = true
	return nil
}

// CompleteAction acknowledges that the in-flight action finished
// presenting and advances the turn pointer. Exhausting the turn order
// completes the round: the completed-round counter increments, the victory
// check runs once it reaches the final round, and otherwise the next round
// begins with a fresh shuffle and event check.
func (m *Match) CompleteAction() error {
	if m.state == StateMatchOver {
		return ErrMatchOver
	}
	if !m.actionInFlight {
		return ErrNoActionInFlight
	}
	m.actionInFlight = false

	if m.turnIndex < len(m.turnOrder)-1 {
		m.turnIndex++
		m.drawAvailable()
		m.notifyTurnChange(m.turnOrder[m.turnIndex])
		return nil
	}

	m.completedRounds++
	if m.completedRounds >= constants.TotalRounds {
		// Victory classification fires only here, once all three factions
		// acted in the final round.
		if m.bars.AllEqual() {
			m.finish(game.EndingHarmony)
		} else {
			m.finish(game.EndingSurvival)
		}
		return nil
	}
	m.startRound(m.round + 1)
	return nil
}

// ScaleEffect applies the round-based difficulty modifier: rounds 1-10
// leave the vector untouched, rounds 11-20 subtract 1 and rounds 21-30
// subtract 2 from every nonzero component. The subtraction ignores sign on
// purpose: helpful effects get weaker and harmful effects get harsher as
// the match progresses.
func ScaleEffect(eff game.Effect, round int) game.Effect {
	if round <= constants.ModifierPhase1End {
		return eff.Clone()
	}
	shift := constants.ModifierPhase2Value
	if round > constants.ModifierPhase2End {
		shift = constants.ModifierPhase3Value
	}
	out := make(game.Effect, len(eff))
	for entity, delta := range eff {
		if delta != 0 {
			delta -= shift
		}
		out[entity] = delta
	}
	return out
}
