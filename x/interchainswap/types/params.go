package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params holds the module's governance-controlled parameters. The only
// value the core consumes is the pool fee rate f, applied by the AMM as the
// multiplier 1 - f/10000 (so 30 is 0.30%); Validate accepts [0, 10000].
type Params struct {
	// PoolFeeRate is the swap fee rate f in basis points (§4.2's f).
	PoolFeeRate math.LegacyDec
}

// DefaultParams returns the module's default parameters: 30 bps,
// i.e. 0.30%, matching the fee used in the literal scenarios of §8.
func DefaultParams() Params {
	return Params{
		PoolFeeRate: math.LegacyNewDec(30),
	}
}

// Marshal encodes Params using the canonical binary codec (§4.4).
func (p Params) Marshal() []byte {
	w := NewWriter()
	w.WriteDec(p.PoolFeeRate)
	return w.Bytes()
}

// UnmarshalParams decodes Params written by Marshal.
func UnmarshalParams(bz []byte) (Params, error) {
	r := NewReader(bz)
	fee, err := r.ReadDec()
	if err != nil {
		return Params{}, fmt.Errorf("UnmarshalParams: fee rate: %w", err)
	}
	return Params{PoolFeeRate: fee}, nil
}

// Validate checks the Params are well formed.
func (p Params) Validate() error {
	if p.PoolFeeRate.IsNil() || p.PoolFeeRate.IsNegative() {
		return fmt.Errorf("pool fee rate cannot be negative")
	}
	if p.PoolFeeRate.GT(math.LegacyNewDec(10000)) {
		return fmt.Errorf("pool fee rate cannot exceed 10000 bps (100%%)")
	}
	return nil
}
