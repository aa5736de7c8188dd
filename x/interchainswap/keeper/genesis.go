package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// InitGenesis initializes module state from a genesis state, grounded on
// x/dex/keeper/genesis.go's InitGenesis: bind the IBC port once, persist
// Params, then load every persisted pool (§6, "Persisted state layout").
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := k.BindPort(ctx); err != nil {
		return fmt.Errorf("InitGenesis: bind port: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("InitGenesis: set params: %w", err)
	}
	for _, pool := range genState.Pools {
		k.SetPool(ctx, pool)
	}
	return nil
}

// ExportGenesis exports the module's current state: Params plus every
// persisted pool. Grounded on x/dex/keeper/genesis.go's ExportGenesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: %w", err)
	}
	return &types.GenesisState{
		Params: params,
		Pools:  k.GetAllPools(ctx),
	}, nil
}
