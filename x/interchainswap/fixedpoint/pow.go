// Package fixedpoint is the deterministic Fixed-Point Math Kernel (§4.1).
// Every weighted-exponent AMM formula in the amm package goes through
// PowFraction (the DepositDouble seed uses LegacyDec.ApproxSqrt directly),
// so the two replicas of a pool never diverge by a single
// unit: cosmossdk.io/math.LegacyDec.Power and .ApproxRoot are both
// pure-integer/fixed-point algorithms with no platform-dependent
// floating-point rounding, unlike a native IEEE-754 pow, which §4.1
// forbids outright.
package fixedpoint

import (
	"fmt"

	"cosmossdk.io/math"
)

// PowFraction computes base^(num/den) for base > 0 and den > 0, using the
// identity x^(a/b) = (x^a)^(1/b): an exact integer power (LegacyDec.Power)
// followed by a deterministic Newton's-method root (LegacyDec.ApproxRoot).
// Both operations are provided by cosmossdk.io/math and are bit-identical
// across platforms, satisfying §4.1's cross-replica determinism
// requirement.
func PowFraction(base math.LegacyDec, num, den uint64) (math.LegacyDec, error) {
	if base.IsNil() || !base.IsPositive() {
		return math.LegacyDec{}, fmt.Errorf("pow: base must be positive, got %s", base)
	}
	if den == 0 {
		return math.LegacyDec{}, fmt.Errorf("pow: denominator must be non-zero")
	}
	if num == 0 {
		return math.LegacyOneDec(), nil
	}

	powered := base.Power(num)
	if den == 1 {
		return powered, nil
	}
	root, err := powered.ApproxRoot(den)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("pow: approx root: %w", err)
	}
	return root, nil
}

// WeightPowFraction is PowFraction specialised to the integer pool weights
// of §3 (each in [1,99], normalised as weight/100), computing
// base^(weightNum/100).
func WeightPowFraction(base math.LegacyDec, weightNum int32) (math.LegacyDec, error) {
	return PowFraction(base, uint64(weightNum), 100)
}

// WeightRatioPow computes base^(weightA/weightB), used by LeftSwap/RightSwap
// whose exponent is a ratio of two integer weights rather than weight/100.
func WeightRatioPow(base math.LegacyDec, weightA, weightB int32) (math.LegacyDec, error) {
	return PowFraction(base, uint64(weightA), uint64(weightB))
}
