package engine

import (
	"time"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

// Result is the frozen outcome of a finished match, ready for signing and
// submission.
type Result struct {
	SessionID     string
	GameSessionID string
	FinalRound    int
	Bars          game.Bars
	TotalActions  int
	StartedAt     time.Time
	Ending        game.Ending
}

// Result snapshots the terminal state. Victories report round 30; failures
// report the number of rounds that were fully completed. Calling Result on
// an unfinished match returns ok=false.
func (m *Match) Result() (Result, bool) {
	if m.ending == game.EndingNone {
		return Result{}, false
	}
	final := m.completedRounds
	if m.ending != game.EndingFailed {
		final = constants.TotalRounds
	}
	return Result{
		SessionID:     m.sessionID,
		GameSessionID: m.nonce,
		FinalRound:    final,
		Bars:          m.bars.Clone(),
		TotalActions:  m.totalActions,
		StartedAt:     m.startedAt,
		Ending:        m.ending,
	}, true
}

// State returns the current lifecycle state.
func (m *Match) State() State { return m.state }

// Round returns the current round number (1..30).
func (m *Match) Round() int { return m.round }

// CompletedRounds returns how many rounds all three factions have fully
// acted in. Distinct from Round: it gates the victory check.
func (m *Match) CompletedRounds() int { return m.completedRounds }

// Bars returns a copy of the current meter state.
func (m *Match) Bars() game.Bars { return m.bars.Clone() }

// Ending returns the terminal classification, or EndingNone while the
// match is still running.
func (m *Match) Ending() game.Ending { return m.ending }

// CurrentEntity returns the faction whose turn it is.
func (m *Match) CurrentEntity() game.Entity { return m.turnOrder[m.turnIndex] }

// TurnOrder returns a copy of this round's turn permutation.
func (m *Match) TurnOrder() []game.Entity {
	return append([]game.Entity(nil), m.turnOrder...)
}

// AvailableActions returns a copy of the action subset offered to the
// current actor this turn.
func (m *Match) AvailableActions() []game.Action {
	return append([]game.Action(nil), m.available...)
}

// History returns a copy of the append-only match log.
func (m *Match) History() []game.LogEntry {
	return append([]game.LogEntry(nil), m.history...)
}

// TotalActions returns the player-action tally (actions played plus
// special events executed).
func (m *Match) TotalActions() int { return m.totalActions }

// GameSessionID returns the per-match nonce used for signing and replay
// prevention. It is never displayed.
func (m *Match) GameSessionID() string { return m.nonce }

// SessionID returns the player session identifier grouping replays.
func (m *Match) SessionID() string { return m.sessionID }

// StartedAt returns when the match began.
func (m *Match) StartedAt() time.Time { return m.startedAt }
