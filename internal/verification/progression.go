package verification

import (
	"errors"
	"time"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

// Integrity errors. Handlers collapse all of these into one generic 403
// response; the distinct values exist for logs and tests only.
var (
	ErrBarsOutOfRange   = errors.New("bar values out of range")
	ErrEndingUnknown    = errors.New("unknown ending label")
	ErrEndingMismatch   = errors.New("ending inconsistent with submitted state")
	ErrDurationMismatch = errors.New("claimed duration does not match timestamps")
	ErrDurationTooLong  = errors.New("game duration too long")
	ErrDurationTooShort = errors.New("game duration too short")
)

// ProgressionData is the submitted final state checked for plausibility.
type ProgressionData struct {
	FinalRound int
	GovBar     int
	BusBar     int
	WorBar     int
	Ending     game.Ending
}

// ValidateProgression checks that the submitted final state is reachable
// by legal play: meters in range and ending-specific consistency.
func ValidateProgression(d ProgressionData) error {
	for _, v := range []int{d.GovBar, d.BusBar, d.WorBar} {
		if v < game.MinBarValue || v > game.MaxBarValue {
			return ErrBarsOutOfRange
		}
	}
	switch d.Ending {
	case game.EndingHarmony:
		// Harmony needs a full 30-round match with all meters equal.
		if d.FinalRound != constants.TotalRounds || d.GovBar != d.BusBar || d.BusBar != d.WorBar {
			return ErrEndingMismatch
		}
	case game.EndingSurvival:
		if d.FinalRound != constants.TotalRounds {
			return ErrEndingMismatch
		}
		if d.GovBar <= game.MinBarValue || d.BusBar <= game.MinBarValue || d.WorBar <= game.MinBarValue {
			return ErrEndingMismatch
		}
	case game.EndingFailed:
		if d.GovBar > game.MinBarValue && d.BusBar > game.MinBarValue && d.WorBar > game.MinBarValue {
			return ErrEndingMismatch
		}
	default:
		return ErrEndingUnknown
	}
	return nil
}

// ValidateTimestamps checks the claimed duration against the submitted
// start/end timestamps with a percentage tolerance (with a fixed floor,
// absorbing network and processing delays) and rejects implausibly short
// or long matches.
func ValidateTimestamps(start, end time.Time, duration int) error {
	computed := int(end.Sub(start) / time.Second)

	tolerance := duration * constants.DurationTolerancePercent / 100
	if tolerance < constants.DurationToleranceFloorSeconds {
		tolerance = constants.DurationToleranceFloorSeconds
	}
	diff := computed - duration
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return ErrDurationMismatch
	}
	if duration > constants.MaxGameDurationSeconds {
		return ErrDurationTooLong
	}
	if duration < constants.MinGameDurationSeconds {
		return ErrDurationTooShort
	}
	return nil
}
