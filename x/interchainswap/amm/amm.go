// Package amm is the Market Maker (§4.2): a set of stateless pure functions
// over a types.Pool snapshot. None of these functions touch a store; the
// keeper's Pool Store and Relay Listener own persistence and call into this
// package to compute the next pool state.
package amm

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/fixedpoint"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// feeMultiplier converts a fee rate expressed in basis points of 1/10000
// (§4.2, §6) into the multiplier applied to an input amount:
// 1 - feeRateBps/10000.
func feeMultiplier(feeRateBps math.LegacyDec) math.LegacyDec {
	return math.LegacyOneDec().Sub(feeRateBps.QuoInt64(10000))
}

// MarketPrice returns the spot price of outDenom in terms of inDenom:
// SP = (Bi/wi) / (Bo/wo) (§4.2).
func MarketPrice(pool types.Pool, inDenom, outDenom string) (math.LegacyDec, error) {
	i, o, err := resolveSides(pool, inDenom, outDenom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	bi, bo := pool.Assets[i], pool.Assets[o]
	if bi.Balance.Amount.IsZero() || bo.Balance.Amount.IsZero() {
		return math.LegacyDec{}, fmt.Errorf("%w: empty pool side", types.ErrMathDomain)
	}
	num := bi.Balance.Amount.ToLegacyDec().Quo(bi.NormalizedWeight())
	den := bo.Balance.Amount.ToLegacyDec().Quo(bo.NormalizedWeight())
	return num.Quo(den), nil
}

// InvariantValue computes V = B0^(w0/100) * B1^(w1/100) (§3 invariant 5,
// §8 property 5).
func InvariantValue(pool types.Pool) (math.LegacyDec, error) {
	v := math.LegacyOneDec()
	for _, a := range pool.Assets {
		if !a.Balance.Amount.IsPositive() {
			return math.LegacyDec{}, fmt.Errorf("%w: empty pool side", types.ErrMathDomain)
		}
		p, err := fixedpoint.WeightPowFraction(a.Balance.Amount.ToLegacyDec(), a.Weight)
		if err != nil {
			return math.LegacyDec{}, err
		}
		v = v.Mul(p)
	}
	return v, nil
}

// resolveSides maps (inDenom, outDenom) to (inIndex, outIndex) in pool.Assets.
func resolveSides(pool types.Pool, inDenom, outDenom string) (int, int, error) {
	i := pool.AssetIndex(inDenom)
	o := pool.AssetIndex(outDenom)
	if i < 0 || o < 0 || i == o {
		return 0, 0, fmt.Errorf("%w: denoms %s/%s not both in pool %s", types.ErrValidation, inDenom, outDenom, pool.Id)
	}
	return i, o, nil
}

// DepositSingle applies a single-sided deposit of amountIn in inDenom
// (§4.2): P = S * ((1 + Ai/Bi)^wi - 1). Returns the updated pool and the
// LP coin issued. Requires a non-empty pool on the deposited side (§9
// open question 2: single-sided deposit into an empty pool is undefined
// and rejected with ErrMathDomain; seeding an empty pool requires
// DepositDouble).
func DepositSingle(pool types.Pool, inDenom string, amountIn math.Int) (types.Pool, sdk.Coin, error) {
	i := pool.AssetIndex(inDenom)
	if i < 0 {
		return pool, sdk.Coin{}, fmt.Errorf("%w: denom %s not in pool %s", types.ErrValidation, inDenom, pool.Id)
	}
	asset := pool.Assets[i]
	if !asset.Balance.Amount.IsPositive() {
		return pool, sdk.Coin{}, fmt.Errorf("%w: cannot single-side deposit into an empty pool, use DoubleDeposit", types.ErrMathDomain)
	}
	ratio := math.LegacyOneDec().Add(amountIn.ToLegacyDec().Quo(asset.Balance.Amount.ToLegacyDec()))
	powered, err := fixedpoint.WeightPowFraction(ratio, asset.Weight)
	if err != nil {
		return pool, sdk.Coin{}, err
	}
	growth := powered.Sub(math.LegacyOneDec())
	// LP issuance rounds toward zero, protecting existing LPs (§4.1).
	issued := fixedpoint.ToInt(pool.Supply.Amount.ToLegacyDec().Mul(growth), fixedpoint.RoundTowardZero)
	if !issued.IsPositive() {
		return pool, sdk.Coin{}, fmt.Errorf("%w: deposit too small to issue any LP", types.ErrMathDomain)
	}

	next := pool
	next.Assets[i].Balance.Amount = asset.Balance.Amount.Add(amountIn)
	return next, sdk.NewCoin(pool.Id, issued), nil
}

// DepositDouble applies a balanced two-sided deposit (§4.2). On an empty
// pool (both balances zero) it seeds supply as the floored geometric mean
// of the two deposited amounts (§9 open question 2), split between the two
// legs; otherwise each leg issues LP proportionally to its own deposit
// ratio, S * A/B, and the two legs' amounts are returned as computed, not
// equalised. The caller mints each leg's issued amount on its own chain
// (the keeper's ackDoubleDeposit and recvDoubleDeposit).
func DepositDouble(pool types.Pool, amountLocal, amountRemote math.Int, localDenom, remoteDenom string) (types.Pool, sdk.Coin, sdk.Coin, error) {
	li := pool.AssetIndex(localDenom)
	ri := pool.AssetIndex(remoteDenom)
	if li < 0 || ri < 0 || li == ri {
		return pool, sdk.Coin{}, sdk.Coin{}, fmt.Errorf("%w: denoms %s/%s not both in pool %s", types.ErrValidation, localDenom, remoteDenom, pool.Id)
	}

	local := pool.Assets[li]
	remote := pool.Assets[ri]
	empty := local.Balance.Amount.IsZero() && remote.Balance.Amount.IsZero()

	next := pool
	next.Assets[li].Balance.Amount = local.Balance.Amount.Add(amountLocal)
	next.Assets[ri].Balance.Amount = remote.Balance.Amount.Add(amountRemote)

	if empty {
		seed, err := amountLocal.ToLegacyDec().Mul(amountRemote.ToLegacyDec()).ApproxSqrt()
		if err != nil {
			return pool, sdk.Coin{}, sdk.Coin{}, fmt.Errorf("%w: seed supply: %s", types.ErrMathDomain, err)
		}
		seedInt := fixedpoint.ToInt(seed, fixedpoint.RoundTowardZero)
		if !seedInt.IsPositive() {
			return pool, sdk.Coin{}, sdk.Coin{}, fmt.Errorf("%w: deposit too small to seed pool", types.ErrMathDomain)
		}
		next.Supply.Amount = seedInt
		half := seedInt.QuoRaw(2)
		return next, sdk.NewCoin(pool.Id, half), sdk.NewCoin(pool.Id, seedInt.Sub(half)), nil
	}

	localIssued := fixedpoint.ToInt(
		pool.Supply.Amount.ToLegacyDec().Mul(amountLocal.ToLegacyDec()).Quo(local.Balance.Amount.ToLegacyDec()),
		fixedpoint.RoundTowardZero,
	)
	remoteIssued := fixedpoint.ToInt(
		pool.Supply.Amount.ToLegacyDec().Mul(amountRemote.ToLegacyDec()).Quo(remote.Balance.Amount.ToLegacyDec()),
		fixedpoint.RoundTowardZero,
	)
	if !localIssued.IsPositive() || !remoteIssued.IsPositive() {
		return pool, sdk.Coin{}, sdk.Coin{}, fmt.Errorf("%w: deposit too small to issue any LP", types.ErrMathDomain)
	}
	return next, sdk.NewCoin(pool.Id, localIssued), sdk.NewCoin(pool.Id, remoteIssued), nil
}

// Withdraw redeems redeemAmount of LP supply for the underlying balance of
// outDenom (§4.2): Ao = Bo * (1 - (1 - R/S)^(1/wo)). Requires Ready status
// and R <= S.
func Withdraw(pool types.Pool, redeemAmount math.Int, outDenom string) (types.Pool, sdk.Coin, error) {
	if pool.Status != types.PoolStatus_Ready {
		return pool, sdk.Coin{}, fmt.Errorf("%w: pool %s is not ready", types.ErrInvalidState, pool.Id)
	}
	if redeemAmount.GT(pool.Supply.Amount) {
		return pool, sdk.Coin{}, fmt.Errorf("%w: redeem amount exceeds supply", types.ErrInsufficientBalance)
	}
	o := pool.AssetIndex(outDenom)
	if o < 0 {
		return pool, sdk.Coin{}, fmt.Errorf("%w: denom %s not in pool %s", types.ErrValidation, outDenom, pool.Id)
	}
	asset := pool.Assets[o]
	if !asset.Balance.Amount.IsPositive() {
		return pool, sdk.Coin{}, fmt.Errorf("%w: empty pool side", types.ErrMathDomain)
	}

	remaining := math.LegacyOneDec().Sub(redeemAmount.ToLegacyDec().Quo(pool.Supply.Amount.ToLegacyDec()))
	// 1/wo = PowFraction(remaining, 100, weight)
	powered, err := fixedpoint.PowFraction(remaining, 100, uint64(asset.Weight))
	if err != nil {
		return pool, sdk.Coin{}, err
	}
	fraction := math.LegacyOneDec().Sub(powered)
	// Output rounds toward zero, protecting the pool (§4.1).
	out := fixedpoint.ToInt(asset.Balance.Amount.ToLegacyDec().Mul(fraction), fixedpoint.RoundTowardZero)
	if out.IsNegative() || out.GTE(asset.Balance.Amount) {
		return pool, sdk.Coin{}, fmt.Errorf("%w: withdraw would drain pool side", types.ErrMathDomain)
	}

	next := pool
	next.Assets[o].Balance.Amount = asset.Balance.Amount.Sub(out)
	next.Supply.Amount = pool.Supply.Amount.Sub(redeemAmount)
	return next, sdk.NewCoin(outDenom, out), nil
}

// LeftSwap sells a specified input amount for a computed output (§4.2,
// out-given-in): fee first, then
// Ao = Bo * (1 - (Bi / (Bi + A'i))^(wi/wo)).
func LeftSwap(pool types.Pool, inDenom, outDenom string, amountIn math.Int, feeRateBps math.LegacyDec) (types.Pool, math.Int, error) {
	i, o, err := resolveSides(pool, inDenom, outDenom)
	if err != nil {
		return pool, math.Int{}, err
	}
	bi, bo := pool.Assets[i], pool.Assets[o]
	if !bi.Balance.Amount.IsPositive() || !bo.Balance.Amount.IsPositive() {
		return pool, math.Int{}, fmt.Errorf("%w: empty pool side", types.ErrMathDomain)
	}

	netIn := amountIn.ToLegacyDec().Mul(feeMultiplier(feeRateBps))
	ratio := bi.Balance.Amount.ToLegacyDec().Quo(bi.Balance.Amount.ToLegacyDec().Add(netIn))
	powered, err := fixedpoint.WeightRatioPow(ratio, bi.Weight, bo.Weight)
	if err != nil {
		return pool, math.Int{}, err
	}
	fraction := math.LegacyOneDec().Sub(powered)
	out := fixedpoint.ToInt(bo.Balance.Amount.ToLegacyDec().Mul(fraction), fixedpoint.RoundTowardZero)
	if out.IsNegative() || out.GTE(bo.Balance.Amount) {
		return pool, math.Int{}, fmt.Errorf("%w: swap would drain pool side", types.ErrMathDomain)
	}

	next := pool
	next.Assets[i].Balance.Amount = bi.Balance.Amount.Add(amountIn)
	next.Assets[o].Balance.Amount = bo.Balance.Amount.Sub(out)
	return next, out, nil
}

// RightSwap buys a specified output amount for a computed input (§4.2,
// in-given-out): A'i = Bi * ((Bo/(Bo-Ao))^(wo/wi) - 1); then
// Ai = A'i / (1 - f/10000).
func RightSwap(pool types.Pool, inDenom, outDenom string, amountOut math.Int, feeRateBps math.LegacyDec) (types.Pool, math.Int, error) {
	i, o, err := resolveSides(pool, inDenom, outDenom)
	if err != nil {
		return pool, math.Int{}, err
	}
	bi, bo := pool.Assets[i], pool.Assets[o]
	if !bi.Balance.Amount.IsPositive() || !bo.Balance.Amount.IsPositive() {
		return pool, math.Int{}, fmt.Errorf("%w: empty pool side", types.ErrMathDomain)
	}
	if amountOut.GTE(bo.Balance.Amount) {
		return pool, math.Int{}, fmt.Errorf("%w: output amount must be less than pool balance", types.ErrMathDomain)
	}

	ratio := bo.Balance.Amount.ToLegacyDec().Quo(bo.Balance.Amount.Sub(amountOut).ToLegacyDec())
	powered, err := fixedpoint.WeightRatioPow(ratio, bo.Weight, bi.Weight)
	if err != nil {
		return pool, math.Int{}, err
	}
	netIn := bi.Balance.Amount.ToLegacyDec().Mul(powered.Sub(math.LegacyOneDec()))

	// Required input rounds away from zero, protecting the pool (§4.1).
	in := fixedpoint.ToInt(netIn.Quo(feeMultiplier(feeRateBps)), fixedpoint.RoundAwayFromZero)
	if !in.IsPositive() {
		return pool, math.Int{}, fmt.Errorf("%w: computed input amount is non-positive", types.ErrMathDomain)
	}

	next := pool
	next.Assets[i].Balance.Amount = bi.Balance.Amount.Add(in)
	next.Assets[o].Balance.Amount = bo.Balance.Amount.Sub(amountOut)
	return next, in, nil
}
