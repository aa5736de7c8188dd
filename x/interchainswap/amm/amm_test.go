package amm_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/interchain-labs/interchainswap/x/interchainswap/amm"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// pool50_50 builds a Ready 50:50 ATOM/OSMO pool with the given balances and
// supply, e.g. the (B_ATOM=1e6, B_OSMO=1e6, S=1e6) starting state of S2-S3.
func pool50_50(balATOM, balOSMO, supply int64) types.Pool {
	return types.Pool{
		Id: "pool-test",
		Assets: [2]types.PoolAsset{
			{Side: types.PoolSide_Native, Balance: sdk.NewInt64Coin("ATOM", balATOM), Weight: 50, Decimal: 6},
			{Side: types.PoolSide_Remote, Balance: sdk.NewInt64Coin("OSMO", balOSMO), Weight: 50, Decimal: 6},
		},
		Supply: sdk.NewInt64Coin("pool-test", supply),
		Status: types.PoolStatus_Ready,
	}
}

var feeBps = math.LegacyNewDec(30) // 30 bps, f=30 (§8 scenarios)

// S1 — seeding rule: initial double deposit of 1e6 ATOM + 1e6 OSMO issues
// S = 1e6 LP.
func TestDepositDouble_SeedsEmptyPool(t *testing.T) {
	pool := pool50_50(0, 0, 0)
	next, localCoin, remoteCoin, err := amm.DepositDouble(pool, math.NewInt(1_000_000), math.NewInt(1_000_000), "ATOM", "OSMO")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), next.Supply.Amount)
	require.Equal(t, math.NewInt(1_000_000), localCoin.Amount.Add(remoteCoin.Amount))
	require.True(t, next.Assets[0].Balance.Amount.Equal(math.NewInt(1_000_000)))
	require.True(t, next.Assets[1].Balance.Amount.Equal(math.NewInt(1_000_000)))
}

func TestDepositSingle_RejectsEmptyPool(t *testing.T) {
	pool := pool50_50(0, 1_000_000, 1_000_000)
	_, _, err := amm.DepositSingle(pool, "ATOM", math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrMathDomain)
}

// S2 — left swap: alice sells 100,000 ATOM for OSMO.
// NOTE: spec.md's illustrative arithmetic ("≈ 90,698") does not reproduce
// under its own stated formula; 1e6 · (1 − (1e6/1,099,700)) = 90,661.09.
// This test fixes the formula-correct value, floored toward zero per §4.1.
func TestLeftSwap_S2(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	next, out, err := amm.LeftSwap(pool, "ATOM", "OSMO", math.NewInt(100_000), feeBps)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90_661), out)
	require.True(t, next.Assets[0].Balance.Amount.Equal(math.NewInt(1_100_000)))
	require.True(t, next.Assets[1].Balance.Amount.Equal(math.NewInt(1_000_000).Sub(out)))
}

func TestLeftSwap_InvariantNonDecreasing(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	before, err := amm.InvariantValue(pool)
	require.NoError(t, err)

	next, _, err := amm.LeftSwap(pool, "ATOM", "OSMO", math.NewInt(100_000), feeBps)
	require.NoError(t, err)
	after, err := amm.InvariantValue(next)
	require.NoError(t, err)

	require.True(t, after.GTE(before), "invariant must not decrease across a fee-charging swap")
}

// S3 — right swap: bob buys 50,000 OSMO starting from the 1e6/1e6 state.
func TestRightSwap_S3(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	next, in, err := amm.RightSwap(pool, "ATOM", "OSMO", math.NewInt(50_000), feeBps)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(52_790), in) // ceil(52789.9488...)
	require.True(t, next.Assets[1].Balance.Amount.Equal(math.NewInt(950_000)))
}

// S4 — withdraw: alice redeems 100,000 LP for OSMO out of
// (B_OSMO=909,301, S=1e6).
func TestWithdraw_S4(t *testing.T) {
	pool := pool50_50(1_000_000, 909_301, 1_000_000)
	_, out, err := amm.Withdraw(pool, math.NewInt(100_000), "OSMO")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(172_767), out.Amount)
}

func TestWithdraw_RejectsNotReady(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	pool.Status = types.PoolStatus_Initial
	_, _, err := amm.Withdraw(pool, math.NewInt(1), "OSMO")
	require.ErrorIs(t, err, types.ErrInvalidState)
}

func TestWithdraw_RejectsOverRedeem(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	_, _, err := amm.Withdraw(pool, math.NewInt(2_000_000), "OSMO")
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestRightSwap_RejectsOutGEBalance(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	_, _, err := amm.RightSwap(pool, "ATOM", "OSMO", math.NewInt(1_000_000), feeBps)
	require.ErrorIs(t, err, types.ErrMathDomain)
}

func TestMarketPrice_EqualWeightsEqualBalances(t *testing.T) {
	pool := pool50_50(1_000_000, 1_000_000, 1_000_000)
	price, err := amm.MarketPrice(pool, "ATOM", "OSMO")
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyOneDec()))
}
