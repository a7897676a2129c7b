package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

type actionEntry struct {
	Name     string         `json:"name"`
	ImageURL string         `json:"image_url"`
	Effects  map[string]int `json:"effects"`
}

type eventEntry struct {
	Round           int            `json:"round"`
	Name            string         `json:"name"`
	ImageURL        string         `json:"image_url"`
	Effects         map[string]int `json:"effects"`
	PositiveEffects map[string]int `json:"positive_effects"`
	NegativeEffects map[string]int `json:"negative_effects"`
	IsSpecialEvent  bool           `json:"is_special_event"`
	Entity          string         `json:"entity"`
}

type rawConfig struct {
	// Action pools keyed by faction name. All three factions must be present
	// and non-empty.
	Actions map[string][]actionEntry `json:"actions"`
	// Fixed per-round event schedule.
	Events []eventEntry `json:"events"`
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the action catalog, the event schedule and the
// server address to bind to.
type LoadedConfig struct {
	Pool          game.ActionPool
	Events        game.EventSchedule
	ServerAddress string
}

// LoadConfig reads the configuration file at path and returns the action
// catalog and event schedule. The catalog is static: the engine treats it
// as read-only for the lifetime of the process.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	pool, err := buildPool(path, rc.Actions)
	if err != nil {
		return nil, err
	}
	events, err := buildSchedule(path, rc.Events)
	if err != nil {
		return nil, err
	}

	addr := constants.DefaultAddress
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{Pool: pool, Events: events, ServerAddress: addr}, nil
}

func buildPool(path string, raw map[string][]actionEntry) (game.ActionPool, error) {
	pool := make(game.ActionPool, 3)
	for _, entity := range game.Entities() {
		entries, ok := raw[string(entity)]
		if !ok || len(entries) == 0 {
			return nil, fmt.Errorf("config file %s: action pool for %s is empty", path, entity)
		}
		seen := make(map[string]struct{}, len(entries))
		actions := make([]game.Action, 0, len(entries))
		for _, a := range entries {
			if strings.TrimSpace(a.Name) == "" {
				return nil, fmt.Errorf("config file %s: action entry for %s missing 'name'", path, entity)
			}
			key := strings.ToLower(strings.TrimSpace(a.Name))
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("config file %s: duplicate action name '%s' for %s", path, a.Name, entity)
			}
			seen[key] = struct{}{}
			eff, err := parseEffect(path, a.Name, a.Effects)
			if err != nil {
				return nil, err
			}
			actions = append(actions, game.Action{Name: a.Name, ImageURL: a.ImageURL, Effects: eff})
		}
		pool[entity] = actions
	}
	// Reject pools for unknown factions instead of silently dropping them.
	for name := range raw {
		if !game.Entity(name).Valid() {
			return nil, fmt.Errorf("config file %s: unknown entity '%s' in actions", path, name)
		}
	}
	return pool, nil
}

func buildSchedule(path string, raw []eventEntry) (game.EventSchedule, error) {
	events := make(game.EventSchedule, len(raw))
	for _, e := range raw {
		if e.Round < 1 || e.Round > constants.TotalRounds {
			return nil, fmt.Errorf("config file %s: event '%s' has round %d outside 1..%d", path, e.Name, e.Round, constants.TotalRounds)
		}
		if _, dup := events[e.Round]; dup {
			return nil, fmt.Errorf("config file %s: duplicate event for round %d", path, e.Round)
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("config file %s: event for round %d missing 'name'", path, e.Round)
		}
		ev := game.Event{Name: e.Name, ImageURL: e.ImageURL, Special: e.IsSpecialEvent}
		if e.IsSpecialEvent {
			if e.PositiveEffects == nil || e.NegativeEffects == nil {
				return nil, fmt.Errorf("config file %s: special event '%s' needs both positive_effects and negative_effects", path, e.Name)
			}
			owner := game.Entity(e.Entity)
			if !owner.Valid() {
				return nil, fmt.Errorf("config file %s: special event '%s' has invalid entity '%s'", path, e.Name, e.Entity)
			}
			pos, err := parseEffect(path, e.Name, e.PositiveEffects)
			if err != nil {
				return nil, err
			}
			neg, err := parseEffect(path, e.Name, e.NegativeEffects)
			if err != nil {
				return nil, err
			}
			ev.PositiveEffects = pos
			ev.NegativeEffects = neg
			ev.Entity = owner
		} else {
			if e.Effects == nil {
				return nil, fmt.Errorf("config file %s: event '%s' missing 'effects'", path, e.Name)
			}
			eff, err := parseEffect(path, e.Name, e.Effects)
			if err != nil {
				return nil, err
			}
			ev.Effects = eff
		}
		events[e.Round] = ev
	}
	return events, nil
}

func parseEffect(path, owner string, raw map[string]int) (game.Effect, error) {
	eff := make(game.Effect, len(raw))
	for name, delta := range raw {
		entity := game.Entity(name)
		if !entity.Valid() {
			return nil, fmt.Errorf("config file %s: '%s' targets unknown entity '%s'", path, owner, name)
		}
		eff[entity] = delta
	}
	return eff, nil
}
