package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/tqdat410/balance-of-interests/internal/game"
)

// uniformPool builds a pool where every faction has n copies of the same
// effect vector under distinct names.
func uniformPool(n int, eff game.Effect) game.ActionPool {
	pool := make(game.ActionPool, 3)
	for _, e := range game.Entities() {
		actions := make([]game.Action, 0, n)
		for i := 0; i < n; i++ {
			actions = append(actions, game.Action{
				Name:    fmt.Sprintf("%s action %d", e, i),
				Effects: eff.Clone(),
			})
		}
		pool[e] = actions
	}
	return pool
}

func newTestMatch(t *testing.T, cfg Config) *Match {
	t.Helper()
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	m, err := NewMatch(cfg)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return m
}

// advanceRound plays every remaining turn of the current round with the
// first offered action, acknowledging ordinary event popups along the way.
func advanceRound(t *testing.T, m *Match) {
	t.Helper()
	if ev, blocking := m.PendingEvent(); ev != nil && !blocking {
		if err := m.HandleEventContinue(); err != nil {
			t.Fatalf("HandleEventContinue: %v", err)
		}
	}
	start := m.Round()
	for m.State() == StateAwaitingAction && m.Round() == start {
		if err := m.HandleAction(m.AvailableActions()[0]); err != nil {
			t.Fatalf("HandleAction in round %d: %v", start, err)
		}
		if m.State() == StateMatchOver {
			return
		}
		if err := m.CompleteAction(); err != nil {
			t.Fatalf("CompleteAction in round %d: %v", start, err)
		}
	}
}

func TestNewMatchRejectsEmptyPool(t *testing.T) {
	pool := uniformPool(3, game.Effect{})
	pool[game.Workers] = nil
	if _, err := NewMatch(Config{Pool: pool}); err == nil {
		t.Fatal("expected error for empty Workers pool, got nil")
	}
}

func TestNewMatchInitialState(t *testing.T) {
	m := newTestMatch(t, Config{Pool: uniformPool(4, game.Effect{})})
	if m.Round() != 1 {
		t.Fatalf("round = %d, want 1", m.Round())
	}
	if m.State() != StateAwaitingAction {
		t.Fatalf("state = %s, want %s", m.State(), StateAwaitingAction)
	}
	for _, e := range game.Entities() {
		if got := m.Bars()[e]; got != game.InitialBarValue {
			t.Fatalf("initial bar for %s = %d, want %d", e, got, game.InitialBarValue)
		}
	}
	if m.GameSessionID() == "" || m.SessionID() == "" {
		t.Fatal("expected non-empty session identifiers")
	}
	if m.GameSessionID() == m.SessionID() {
		t.Fatal("match nonce must differ from the session id")
	}
}

func TestFreshNonceAndSharedSessionAcrossReplays(t *testing.T) {
	first := newTestMatch(t, Config{Pool: uniformPool(3, game.Effect{})})
	second := newTestMatch(t, Config{
		Pool:      uniformPool(3, game.Effect{}),
		SessionID: first.SessionID(),
	})
	if second.SessionID() != first.SessionID() {
		t.Fatalf("session id = %s, want %s", second.SessionID(), first.SessionID())
	}
	if second.GameSessionID() == first.GameSessionID() {
		t.Fatal("replay reused the per-match nonce")
	}
}

func TestTurnOrderIsAlwaysAFullPermutation(t *testing.T) {
	m := newTestMatch(t, Config{Pool: uniformPool(4, game.Effect{})})
	for round := 1; round <= 12 && m.State() != StateMatchOver; round++ {
		order := m.TurnOrder()
		if len(order) != 3 {
			t.Fatalf("round %d: turn order has %d entries", round, len(order))
		}
		seen := map[game.Entity]bool{}
		for _, e := range order {
			if seen[e] {
				t.Fatalf("round %d: entity %s appears twice in %v", round, e, order)
			}
			seen[e] = true
		}
		for _, e := range game.Entities() {
			if !seen[e] {
				t.Fatalf("round %d: entity %s missing from %v", round, e, order)
			}
		}
		advanceRound(t, m)
	}
}

func TestScaleEffect(t *testing.T) {
	cases := []struct {
		name  string
		round int
		in    game.Effect
		want  game.Effect
	}{
		{
			name:  "rounds 1-10 untouched",
			round: 5,
			in:    game.Effect{game.Government: -14, game.Businesses: 5, game.Workers: 9},
			want:  game.Effect{game.Government: -14, game.Businesses: 5, game.Workers: 9},
		},
		{
			name:  "rounds 11-20 subtract one from nonzero components",
			round: 15,
			in:    game.Effect{game.Government: -14, game.Businesses: 5, game.Workers: 9},
			want:  game.Effect{game.Government: -15, game.Businesses: 4, game.Workers: 8},
		},
		{
			name:  "rounds 21-30 subtract two from nonzero components",
			round: 25,
			in:    game.Effect{game.Government: 10, game.Businesses: -12, game.Workers: -5},
			want:  game.Effect{game.Government: 8, game.Businesses: -14, game.Workers: -7},
		},
		{
			name:  "zero components stay zero",
			round: 25,
			in:    game.Effect{game.Government: 0, game.Businesses: 3, game.Workers: 0},
			want:  game.Effect{game.Government: 0, game.Businesses: 1, game.Workers: 0},
		},
		{
			name:  "phase boundary round 10 is unmodified",
			round: 10,
			in:    game.Effect{game.Government: 1},
			want:  game.Effect{game.Government: 1},
		},
		{
			name:  "phase boundary round 11 subtracts one",
			round: 11,
			in:    game.Effect{game.Government: 1},
			want:  game.Effect{game.Government: 0},
		},
		{
			name:  "phase boundary round 21 subtracts two",
			round: 21,
			in:    game.Effect{game.Government: 1},
			want:  game.Effect{game.Government: -1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScaleEffect(tc.in, tc.round)
			for _, e := range game.Entities() {
				if got[e] != tc.want[e] {
					t.Fatalf("round %d: %s = %d, want %d", tc.round, e, got[e], tc.want[e])
				}
			}
		})
	}
}

func TestScaleEffectDoesNotMutateInput(t *testing.T) {
	in := game.Effect{game.Government: 5}
	_ = ScaleEffect(in, 15)
	if in[game.Government] != 5 {
		t.Fatalf("input mutated: %d", in[game.Government])
	}
}

func TestFailureEndsMatchImmediately(t *testing.T) {
	// The first action drops Government straight to zero.
	m := newTestMatch(t, Config{
		Pool: uniformPool(3, game.Effect{game.Government: -30}),
	})
	if err := m.HandleAction(m.AvailableActions()[0]); err != nil {
		t.Fatalf("HandleAction: %v", err)
	}
	if m.State() != StateMatchOver {
		t.Fatalf("state = %s, want %s", m.State(), StateMatchOver)
	}
	if m.Ending() != game.EndingFailed {
		t.Fatalf("ending = %s, want %s", m.Ending(), game.EndingFailed)
	}
	if err := m.HandleAction(game.Action{Name: "late"}); err != ErrMatchOver {
		t.Fatalf("HandleAction after failure = %v, want ErrMatchOver", err)
	}
	if err := m.CompleteAction(); err != ErrMatchOver {
		t.Fatalf("CompleteAction after failure = %v, want ErrMatchOver", err)
	}

	res, ok := m.Result()
	if !ok {
		t.Fatal("Result() not available after failure")
	}
	// The match ended mid-round 1, so zero rounds were completed.
	if res.FinalRound != 0 {
		t.Fatalf("final round = %d, want 0", res.FinalRound)
	}
	if res.Ending != game.EndingFailed {
		t.Fatalf("result ending = %s, want %s", res.Ending, game.EndingFailed)
	}
}

func TestResultUnavailableWhileRunning(t *testing.T) {
	m := newTestMatch(t, Config{Pool: uniformPool(3, game.Effect{})})
	if _, ok := m.Result(); ok {
		t.Fatal("Result() reported ok on a running match")
	}
}

func TestHarmonyRequiresFullMatchAndEqualBars(t *testing.T) {
	m := newTestMatch(t, Config{Pool: uniformPool(4, game.Effect{})})
	for m.State() != StateMatchOver {
		// Bars are equal the whole match; no premature victory may fire.
		if m.CompletedRounds() < 30 && m.Ending() != game.EndingNone {
			t.Fatalf("ending %s fired after %d rounds", m.Ending(), m.CompletedRounds())
		}
		advanceRound(t, m)
	}
	if m.Ending() != game.EndingHarmony {
		t.Fatalf("ending = %s, want %s", m.Ending(), game.EndingHarmony)
	}
	res, ok := m.Result()
	if !ok || res.FinalRound != 30 {
		t.Fatalf("final round = %d (ok=%v), want 30", res.FinalRound, ok)
	}
	if res.TotalActions != 90 {
		t.Fatalf("total actions = %d, want 90", res.TotalActions)
	}
}

func TestSurvivalWhenBarsUnequalAtRoundThirty(t *testing.T) {
	// Everyone nudges Government up; the scaling arc nets +20, +10, then
	// nothing once the phase-three shift cancels the gain, leaving bars
	// unequal but safely positive.
	m := newTestMatch(t, Config{
		Pool: uniformPool(4, game.Effect{game.Government: 2}),
	})
	for m.State() != StateMatchOver {
		advanceRound(t, m)
	}
	if m.Ending() != game.EndingSurvival {
		t.Fatalf("ending = %s, want %s (bars %v)", m.Ending(), game.EndingSurvival, m.Bars())
	}
	res, _ := m.Result()
	if res.FinalRound != 30 {
		t.Fatalf("final round = %d, want 30", res.FinalRound)
	}
}

func TestActionReentrancyGuard(t *testing.T) {
	m := newTestMatch(t, Config{Pool: uniformPool(3, game.Effect{})})
	if err := m.CompleteAction(); err != ErrNoActionInFlight {
		t.Fatalf("CompleteAction before any action = %v, want ErrNoActionInFlight", err)
	}
	if err := m.HandleAction(m.AvailableActions()[0]); err != nil {
		t.Fatalf("HandleAction: %v", err)
	}
	if err := m.HandleAction(m.AvailableActions()[0]); err != ErrActionInFlight {
		t.Fatalf("second HandleAction = %v, want ErrActionInFlight", err)
	}
	if err := m.CompleteAction(); err != nil {
		t.Fatalf("CompleteAction: %v", err)
	}
	if err := m.CompleteAction(); err != ErrNoActionInFlight {
		t.Fatalf("second CompleteAction = %v, want ErrNoActionInFlight", err)
	}
}

func TestActionChoicesShrinkInLateRounds(t *testing.T) {
	m := newTestMatch(t, Config{Pool: uniformPool(5, game.Effect{})})
	for m.Round() <= 20 {
		if got := len(m.AvailableActions()); got != 3 {
			t.Fatalf("round %d: %d choices, want 3", m.Round(), got)
		}
		advanceRound(t, m)
	}
	if m.Round() != 21 {
		t.Fatalf("round = %d, want 21", m.Round())
	}
	if got := len(m.AvailableActions()); got != 2 {
		t.Fatalf("round 21: %d choices, want 2", got)
	}
}

func TestOfferedActionsAreDistinctAndFromOwnPool(t *testing.T) {
	pool := make(game.ActionPool, 3)
	for _, e := range game.Entities() {
		for i := 0; i < 6; i++ {
			pool[e] = append(pool[e], game.Action{
				Name:    fmt.Sprintf("%s-%d", e, i),
				Effects: game.Effect{},
			})
		}
	}
	m := newTestMatch(t, Config{Pool: pool})
	for round := 1; round <= 5; round++ {
		for turn := 0; turn < 3; turn++ {
			entity := m.CurrentEntity()
			seen := map[string]bool{}
			for _, a := range m.AvailableActions() {
				if seen[a.Name] {
					t.Fatalf("duplicate offered action %q", a.Name)
				}
				seen[a.Name] = true
				found := false
				for _, p := range pool[entity] {
					if p.Name == a.Name {
						found = true
					}
				}
				if !found {
					t.Fatalf("action %q offered to %s is not in its pool", a.Name, entity)
				}
			}
			if err := m.HandleAction(m.AvailableActions()[0]); err != nil {
				t.Fatalf("HandleAction: %v", err)
			}
			if err := m.CompleteAction(); err != nil {
				t.Fatalf("CompleteAction: %v", err)
			}
		}
	}
}

func TestHistoryRecordsActorAndScaledEffects(t *testing.T) {
	m := newTestMatch(t, Config{
		Pool: uniformPool(3, game.Effect{game.Workers: 4}),
	})
	actor := m.CurrentEntity()
	if err := m.HandleAction(m.AvailableActions()[0]); err != nil {
		t.Fatalf("HandleAction: %v", err)
	}
	hist := m.History()
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	entry := hist[0]
	if entry.Actor != string(actor) {
		t.Fatalf("actor = %q, want %q", entry.Actor, actor)
	}
	if entry.Round != 1 {
		t.Fatalf("round = %d, want 1", entry.Round)
	}
	if entry.Effects[game.Workers] != 4 {
		t.Fatalf("logged effect = %d, want 4", entry.Effects[game.Workers])
	}
}
