package keeper

import (
	"context"
	"fmt"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// GetParams returns the current parameters from the store, grounded on
// x/dex/keeper/params.go's GetParams/SetParams shape.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}
	params, err := types.UnmarshalParams(bz)
	if err != nil {
		return types.Params{}, fmt.Errorf("GetParams: %w", err)
	}
	return params, nil
}

// SetParams persists the parameters, rejecting invalid ones.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("SetParams: %w", err)
	}
	store := k.getStore(ctx)
	store.Set(types.ParamsKey, params.Marshal())
	return nil
}
