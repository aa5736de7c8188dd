package fixedpoint

import "cosmossdk.io/math"

// RoundMode picks one of the two rounding directions §4.1 requires.
type RoundMode int

const (
	// RoundTowardZero protects the pool (swap/withdraw outputs) and
	// protects existing LPs (LP issuance).
	RoundTowardZero RoundMode = iota
	// RoundAwayFromZero protects the pool on required inputs (RightSwap).
	RoundAwayFromZero
)

// ToInt converts a non-negative LegacyDec to math.Int under the given
// rounding mode.
func ToInt(d math.LegacyDec, mode RoundMode) math.Int {
	if mode == RoundAwayFromZero {
		return d.Ceil().TruncateInt()
	}
	return d.TruncateInt()
}
