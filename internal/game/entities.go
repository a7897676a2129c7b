package game

// Entity identifies one of the three fixed factions whose interests the
// player has to keep in balance. The enumeration is closed: no code path
// ever creates another entity at runtime.
type Entity string

const (
	Government Entity = "Government"
	Businesses Entity = "Businesses"
	Workers    Entity = "Workers"
)

// Entities returns the factions in canonical order (Government,
// Businesses, Workers). The order matters for signing: meter values are
// serialized in this order.
func Entities() []Entity {
	return []Entity{Government, Businesses, Workers}
}

// Valid reports whether e is one of the three known factions.
func (e Entity) Valid() bool {
	switch e {
	case Government, Businesses, Workers:
		return true
	}
	return false
}
