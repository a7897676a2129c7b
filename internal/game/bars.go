package game

// Meter bounds and starting value. The bars never leave [MinBarValue,
// MaxBarValue], not even transiently: every mutation goes through Apply
// which clamps per component.
const (
	MinBarValue     = 0
	MaxBarValue     = 50
	InitialBarValue = 20
)

// Effect is a per-entity signed delta. A missing entity means "no effect"
// (delta 0); an explicit zero is equally meaningful and is preserved in
// the history log.
type Effect map[Entity]int

// Clone returns an independent copy of the effect vector.
func (e Effect) Clone() Effect {
	out := make(Effect, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Bars holds the current standing of every faction. All three entities
// are always present.
type Bars map[Entity]int

// NewBars returns the starting meter state with every faction at the
// initial value.
func NewBars() Bars {
	b := make(Bars, 3)
	for _, e := range Entities() {
		b[e] = InitialBarValue
	}
	return b
}

// Apply returns a new meter state with the effect added and every
// component clamped to [MinBarValue, MaxBarValue]. The receiver is not
// modified. Clamping makes sequential application order-sensitive, so
// callers apply one vector at a time in event/turn order.
func (b Bars) Apply(eff Effect) Bars {
	out := make(Bars, len(b))
	for _, e := range Entities() {
		v := b[e] + eff[e]
		if v < MinBarValue {
			v = MinBarValue
		}
		if v > MaxBarValue {
			v = MaxBarValue
		}
		out[e] = v
	}
	return out
}

// AnyDepleted reports whether any faction's bar has hit the floor.
func (b Bars) AnyDepleted() bool {
	for _, e := range Entities() {
		if b[e] <= MinBarValue {
			return true
		}
	}
	return false
}

// AllEqual reports whether the three bars hold exactly the same value.
func (b Bars) AllEqual() bool {
	return b[Government] == b[Businesses] && b[Businesses] == b[Workers]
}

// Clone returns an independent copy of the meter state.
func (b Bars) Clone() Bars {
	out := make(Bars, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
