package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// buildPool reconstructs the Initial pool locally from a CreatePoolRequest
// (§4.6, CreatePool handler): each replica independently assigns PoolSide
// by querying its own Bank for supply existence, so the two replicas
// always end up with opposite Native/Remote labelling (§3 invariant 3)
// without either side telling the other which label to use.
func (k Keeper) buildPool(ctx context.Context, req types.CreatePoolRequest, portID, channelID, counterpartyPort, counterpartyChannel string) (types.Pool, error) {
	poolID := types.GeneratePoolID(req.Denoms[0], req.Denoms[1])
	weightA, weightB, err := types.ParseWeightPair(req.Weight)
	if err != nil {
		return types.Pool{}, err
	}

	nativeCount := 0
	assets := [2]types.PoolAsset{}
	weights := [2]int32{weightA, weightB}
	for i, denom := range req.Denoms {
		side := types.PoolSide_Remote
		if k.bankKeeper.HasSupply(ctx, denom) {
			side = types.PoolSide_Native
			nativeCount++
		}
		assets[i] = types.PoolAsset{
			Side:    side,
			Balance: sdk.NewCoin(denom, math.ZeroInt()),
			Weight:  weights[i],
			Decimal: req.Decimals[i],
		}
	}
	if nativeCount != 1 {
		return types.Pool{}, fmt.Errorf("%w: pool %s must have exactly one native asset on this chain, got %d", types.ErrValidation, poolID, nativeCount)
	}

	return types.Pool{
		Id:                  poolID,
		Assets:              assets,
		Supply:              sdk.NewCoin(poolID, math.ZeroInt()),
		Status:              types.PoolStatus_Initial,
		PortId:              portID,
		ChannelId:           channelID,
		CounterpartyPortId:  counterpartyPort,
		CounterpartyChannel: counterpartyChannel,
	}, nil
}
