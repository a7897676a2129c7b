package engine

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

// State is the coarse position of a match in its lifecycle. Exactly one
// actor (or event) is pending at any time.
type State string

const (
	StateAwaitingAction State = "awaiting_action"
	StateAwaitingEvent  State = "awaiting_event"
	StateMatchOver      State = "match_over"
)

var (
	ErrMatchOver        = errors.New("match is over")
	ErrEventPending     = errors.New("a special event must be resolved first")
	ErrNoEventPending   = errors.New("no event is pending")
	ErrEventNotSpecial  = errors.New("pending event is not player-resolvable")
	ErrActionInFlight   = errors.New("previous action has not been completed")
	ErrNoActionInFlight = errors.New("no action in flight")
)

// Config carries the injected static configuration for a match: the action
// catalog, the fixed event schedule and an optional deterministic RNG.
type Config struct {
	Pool   game.ActionPool
	Events game.EventSchedule
	// Rand is used for turn-order shuffles, action-subset draws and the
	// special-event coin flip. Defaults to a time-seeded source.
	Rand *rand.Rand
	// SessionID groups replays by the same player session. A fresh one is
	// generated when empty.
	SessionID string
}

// Match is one playthrough: 30 rounds, three factions acting once per
// round in shuffled order. It is not safe for concurrent use; a match is
// strictly sequential from the player's perspective.
type Match struct {
	pool   game.ActionPool
	events game.EventSchedule
	rng    *rand.Rand

	sessionID string
	nonce     string
	startedAt time.Time

	round           int
	bars            game.Bars
	turnOrder       []game.Entity
	turnIndex       int
	completedRounds int
	totalActions    int
	history         []game.LogEntry
	ending          game.Ending

	state State
	// pendingEvent is non-nil while an event popup is showing. For special
	// events the match sits in StateAwaitingEvent until the player resolves
	// it; ordinary events have already been applied and only await
	// acknowledgement.
	pendingEvent    *game.Event
	pendingOrdinary bool
	actionInFlight  bool
	available       []game.Action

	turnListeners   []func(game.Entity)
	effectListeners []func(EffectNotice)
	eventListeners  []func(game.Event, int)
	overListeners   []func(game.Ending)
}

// NewMatch starts a fresh match: bars at the initial value, round 1 with a
// newly shuffled turn order, a new per-match nonce, empty history. Any
// event scheduled for round 1 fires before the first action turn.
func NewMatch(cfg Config) (*Match, error) {
	for _, e := range game.Entities() {
		if len(cfg.Pool[e]) == 0 {
			return nil, errors.New("action pool for " + string(e) + " is empty")
		}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	m := &Match{
		pool:      cfg.Pool,
		events:    cfg.Events,
		rng:       rng,
		sessionID: sessionID,
		nonce:     uuid.NewString(),
		startedAt: time.Now(),
		round:     1,
		bars:      game.NewBars(),
		state:     StateAwaitingAction,
	}
	m.startRound(1)
	return m, nil
}

// startRound shuffles a fresh turn order, points at its first actor and
// fires the scheduled event for the round, if any. Ordinary events apply
// immediately; special events park the match until the player resolves
// them.
func (m *Match) startRound(round int) {
	m.round = round
	m.turnOrder = append([]game.Entity(nil), game.Entities()...)
	m.rng.Shuffle(len(m.turnOrder), func(i, j int) {
		m.turnOrder[i], m.turnOrder[j] = m.turnOrder[j], m.turnOrder[i]
	})
	m.turnIndex = 0
	m.drawAvailable()
	m.notifyTurnChange(m.turnOrder[0])

	ev, ok := m.events[round]
	if !ok {
		return
	}
	m.notifyEventFired(ev, round)
	if ev.Special {
		m.pendingEvent = &ev
		m.pendingOrdinary = false
		m.state = StateAwaitingEvent
		return
	}
	// Ordinary events apply unconditionally the instant the round begins,
	// before the first turn is offered. The pending marker only drives the
	// acknowledgement popup.
	m.pendingEvent = &ev
	m.pendingOrdinary = true
	m.apply(ev.Effects, "Event: "+ev.Name, game.EventActor)
}

// apply mutates the bars through the effect model, appends to history and
// runs the failure check. All meter mutations funnel through here.
func (m *Match) apply(eff game.Effect, actionName, actor string) {
	m.bars = m.bars.Apply(eff)
	m.history = append(m.history, game.LogEntry{
		Round:   m.round,
		Actor:   actor,
		Action:  actionName,
		Effects: eff.Clone(),
	})
	m.notifyEffectApplied(EffectNotice{
		Round:   m.round,
		Actor:   actor,
		Action:  actionName,
		Effects: eff.Clone(),
		Bars:    m.bars.Clone(),
	})
	// Failure ends the match immediately, mid-round and mid-turn.
	if m.ending == game.EndingNone && m.bars.AnyDepleted() {
		m.finish(game.EndingFailed)
	}
}

// finish freezes the match. No further mutation is possible afterwards.
func (m *Match) finish(ending game.Ending) {
	m.ending = ending
	m.state = StateMatchOver
	m.pendingEvent = nil
	m.pendingOrdinary = false
	m.actionInFlight = false
	m.available = nil
	m.notifyMatchOver(ending)
}

// drawAvailable redraws the offered action subset for the current actor:
// a random draw without replacement from the faction's pool, 3 choices in
// rounds 1-20 and 2 in rounds 21-30.
func (m *Match) drawAvailable() {
	entity := m.turnOrder[m.turnIndex]
	pool := m.pool[entity]
	n := constants.ActionChoicesEarly
	if m.round > constants.ModifierPhase2End {
		n = constants.ActionChoicesLate
	}
	if n > len(pool) {
		n = len(pool)
	}
	idx := m.rng.Perm(len(pool))
	picks := make([]game.Action, 0, n)
	for _, i := range idx[:n] {
		picks = append(picks, pool[i])
	}
	m.available = picks
}
