package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// GetPool returns a Pool by its PoolId (§4.3 Pool Store).
func (k Keeper) GetPool(ctx context.Context, poolID string) (types.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, false
	}
	pool, err := types.UnmarshalPool(bz)
	if err != nil {
		panic(fmt.Errorf("GetPool: corrupt pool record for %s: %w", poolID, err))
	}
	return pool, true
}

// HasPool reports whether a pool with the given id exists.
func (k Keeper) HasPool(ctx context.Context, poolID string) bool {
	return k.getStore(ctx).Has(types.PoolKey(poolID))
}

// SetPool writes a Pool into the store.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) {
	store := k.getStore(ctx)
	store.Set(types.PoolKey(pool.Id), types.MarshalPool(pool))
}

// IteratePools calls fn for every stored pool, stopping early if fn returns false.
func (k Keeper) IteratePools(ctx context.Context, fn func(pool types.Pool) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pool, err := types.UnmarshalPool(iterator.Value())
		if err != nil {
			panic(fmt.Errorf("IteratePools: corrupt pool record: %w", err))
		}
		if !fn(pool) {
			break
		}
	}
}

// GetAllPools returns every pool in the store.
func (k Keeper) GetAllPools(ctx context.Context) []types.Pool {
	var pools []types.Pool
	k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return true
	})
	return pools
}
