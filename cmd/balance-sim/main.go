// balance-sim plays complete matches against the engine with a simple
// greedy policy. It is useful for balancing the catalog (how often does a
// blind policy survive to round 30?) and, with -server, for exercising the
// full signed submission path against a running balance-server.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/tqdat410/balance-of-interests/internal/config"
	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/engine"
	"github.com/tqdat410/balance-of-interests/internal/game"
	"github.com/tqdat410/balance-of-interests/internal/logging"
	"github.com/tqdat410/balance-of-interests/internal/score"
)

func main() {
	configPath := flag.String("config", constants.DefaultConfigPath, "path to the game configuration file")
	serverURL := flag.String("server", "", "base URL of a balance-server to submit results to (optional)")
	playerName := flag.String("name", "Simulator", "player name used for submissions")
	matches := flag.Int("matches", 1, "number of matches to play")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": *configPath})
	}

	secret := os.Getenv(constants.EnvVerificationSecret)
	if *serverURL != "" && secret == "" {
		logging.Fatal("Submissions require the shared signing secret", nil, logging.Fields{
			"var": constants.EnvVerificationSecret,
		})
	}

	src := *seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(src))

	endings := map[game.Ending]int{}
	for i := 0; i < *matches; i++ {
		res := playMatch(cfg, rng)
		endings[res.Ending]++
		logging.Info("match finished", logging.Fields{
			"match":                  i + 1,
			constants.LogFieldEnding: string(res.Ending),
			constants.LogFieldRound:  res.FinalRound,
			"gov":                    res.Bars[game.Government],
			"bus":                    res.Bars[game.Businesses],
			"wor":                    res.Bars[game.Workers],
			"actions":                res.TotalActions,
		})
		if *serverURL != "" {
			submit(*serverURL, *playerName, secret, res)
		}
	}
	logging.Info("simulation complete", logging.Fields{
		"matches":  *matches,
		"failed":   endings[game.EndingFailed],
		"survival": endings[game.EndingSurvival],
		"harmony":  endings[game.EndingHarmony],
	})
}

func playMatch(cfg *config.LoadedConfig, rng *rand.Rand) engine.Result {
	m, err := engine.NewMatch(engine.Config{Pool: cfg.Pool, Events: cfg.Events, Rand: rng})
	if err != nil {
		logging.Fatal("Failed to start match", err, nil)
	}
	for m.State() != engine.StateMatchOver {
		if ev, blocking := m.PendingEvent(); ev != nil {
			if blocking {
				resolveSpecialEvent(m)
			} else {
				_ = m.HandleEventContinue()
			}
			continue
		}
		action := pickAction(m)
		if err := m.HandleAction(action); err != nil {
			logging.Fatal("Engine rejected action", err, logging.Fields{"action": action.Name})
		}
		if m.State() == engine.StateMatchOver {
			break
		}
		if err := m.CompleteAction(); err != nil {
			logging.Fatal("Engine rejected action completion", err, nil)
		}
	}
	res, _ := m.Result()
	return res
}

// resolveSpecialEvent gambles only when already losing: with a bar at 12
// or lower the expected downside of the coin flip is cheaper than the
// status quo.
func resolveSpecialEvent(m *engine.Match) {
	bars := m.Bars()
	desperate := false
	for _, e := range game.Entities() {
		if bars[e] <= 12 {
			desperate = true
		}
	}
	if desperate {
		_ = m.HandleEventExecute()
	} else {
		_ = m.HandleEventSkip()
	}
}

// pickAction chooses the offered action that maximizes the lowest bar
// after round scaling and clamping.
func pickAction(m *engine.Match) game.Action {
	bars := m.Bars()
	options := m.AvailableActions()
	best := options[0]
	bestScore := -1
	for _, a := range options {
		next := bars.Apply(engine.ScaleEffect(a.Effects, m.Round()))
		low := game.MaxBarValue
		for _, e := range game.Entities() {
			if next[e] < low {
				low = next[e]
			}
		}
		if low > bestScore {
			bestScore = low
			best = a
		}
	}
	return best
}

func submit(serverURL, playerName, secret string, res engine.Result) {
	payload := score.BuildPayload(res, playerName, secret, time.Now())
	submitter := score.NewSubmitter(serverURL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := submitter.Submit(ctx, payload); err != nil {
		// Best-effort: the simulated outcome stands regardless.
		logging.Warn("score submission failed", err, logging.Fields{
			constants.LogFieldNonce: res.GameSessionID,
		})
	}
}
