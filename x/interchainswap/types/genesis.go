package types

import "fmt"

// GenesisState is the module's exported/imported state: all persisted
// pools (§6, "Persisted state layout") plus Params.
type GenesisState struct {
	Params Params
	Pools  []Pool
}

// DefaultGenesis returns the default genesis state: default params, no
// pools.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
	}
}

// Validate performs basic genesis state validation, re-checking the
// invariants of §3 that every persisted pool must satisfy.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	seen := make(map[string]bool, len(gs.Pools))
	for _, p := range gs.Pools {
		if seen[p.Id] {
			return fmt.Errorf("duplicate pool id %q", p.Id)
		}
		seen[p.Id] = true
		if err := validatePool(p); err != nil {
			return fmt.Errorf("pool %q: %w", p.Id, err)
		}
	}
	return nil
}

func validatePool(p Pool) error {
	if p.Assets[0].Balance.Denom == p.Assets[1].Balance.Denom {
		return fmt.Errorf("assets must have distinct denoms")
	}
	if p.Assets[0].Weight+p.Assets[1].Weight != 100 {
		return fmt.Errorf("weights must sum to 100, got %d+%d", p.Assets[0].Weight, p.Assets[1].Weight)
	}
	if p.Supply.Denom != p.Id {
		return fmt.Errorf("supply denom %q must equal pool id %q", p.Supply.Denom, p.Id)
	}
	nativeCount := 0
	for _, a := range p.Assets {
		if a.Side == PoolSide_Native {
			nativeCount++
		}
	}
	if nativeCount != 1 {
		return fmt.Errorf("exactly one asset must have side Native, got %d", nativeCount)
	}
	return nil
}
