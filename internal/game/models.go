package game

// Action is an immutable catalog entry. The image URL is an opaque
// reference for presentation layers; the core never interprets it.
type Action struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Effects  Effect `json:"effects"`
}

// ActionPool groups the available actions by the faction that may play them.
type ActionPool map[Entity][]Action

// Event is a scheduled occurrence keyed by round number. Ordinary events
// carry a single unconditional effect vector. Special events carry two
// outcome vectors, an owning faction and a player-resolved coin flip.
type Event struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`

	// Ordinary event payload.
	Effects Effect `json:"effects,omitempty"`

	// Special event payload.
	Special         bool   `json:"is_special_event,omitempty"`
	PositiveEffects Effect `json:"positive_effects,omitempty"`
	NegativeEffects Effect `json:"negative_effects,omitempty"`
	Entity          Entity `json:"entity,omitempty"`
}

// EventSchedule maps round numbers to their fixed scheduled event.
type EventSchedule map[int]Event

// EventActor is the pseudo-actor recorded in the history log for
// automatic (non-special) events.
const EventActor = "Event"

// LogEntry is one append-only history record. Actor is a faction name or
// EventActor. History is for display/audit only; match state is carried
// independently in Bars.
type LogEntry struct {
	Round   int    `json:"round"`
	Actor   string `json:"actor"`
	Action  string `json:"action"`
	Effects Effect `json:"effects"`
}

// Ending classifies how a match terminated. The values double as the wire
// labels used in submissions and signing.
type Ending string

const (
	EndingNone     Ending = ""
	EndingFailed   Ending = "FAILED"
	EndingHarmony  Ending = "HARMONY"
	EndingSurvival Ending = "SURVIVAL"
)

// Valid reports whether e is one of the three terminal classifications.
func (e Ending) Valid() bool {
	switch e {
	case EndingFailed, EndingHarmony, EndingSurvival:
		return true
	}
	return false
}
