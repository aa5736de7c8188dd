package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/interchain-labs/interchainswap/testutil/keeper"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

var testTimeoutHeight = clienttypes.NewHeight(1, 100)

const testTimeoutTimestamp = uint64(0)

func readyPool(id, denomA, denomB string, balA, balB, supply int64) types.Pool {
	return types.Pool{
		Id: id,
		Assets: [2]types.PoolAsset{
			{Side: types.PoolSide_Native, Balance: sdk.NewInt64Coin(denomA, balA), Weight: 50, Decimal: 6},
			{Side: types.PoolSide_Remote, Balance: sdk.NewInt64Coin(denomB, balB), Weight: 50, Decimal: 6},
		},
		Supply:              sdk.NewInt64Coin(id, supply),
		Status:              types.PoolStatus_Ready,
		PortId:              types.PortID,
		ChannelId:           "channel-0",
		CounterpartyPortId:  types.PortID,
		CounterpartyChannel: "channel-1",
	}
}

func TestDelegator_CreatePool_SendsPacket(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.ClaimChannelCapability(t, types.PortID, "channel-0")

	req := types.CreatePoolRequest{
		SourcePort:    types.PortID,
		SourceChannel: "channel-0",
		Sender:        "cosmos1sender",
		Denoms:        [2]string{"uatom", "uosmo"},
		Decimals:      [2]int32{6, 6},
		Weight:        "50:50",
	}
	seq, err := f.Keeper.CreatePool(f.Ctx, req, testTimeoutHeight, testTimeoutTimestamp)
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)
	require.Equal(t, 1, f.Sender.Sent)
}

func TestDelegator_CreatePool_RejectsDuplicate(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.ClaimChannelCapability(t, types.PortID, "channel-0")
	f.Keeper.SetPool(f.Ctx, readyPool(types.GeneratePoolID("uatom", "uosmo"), "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	req := types.CreatePoolRequest{
		SourcePort:    types.PortID,
		SourceChannel: "channel-0",
		Sender:        "cosmos1sender",
		Denoms:        [2]string{"uatom", "uosmo"},
		Decimals:      [2]int32{6, 6},
		Weight:        "50:50",
	}
	_, err := f.Keeper.CreatePool(f.Ctx, req, testTimeoutHeight, testTimeoutTimestamp)
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
}

func TestDelegator_SingleDeposit_EscrowsAndSends(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.ClaimChannelCapability(t, types.PortID, "channel-0")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	sender := sdk.AccAddress("depositor0000000000")
	f.Bank.FundAccount(sender, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100_000)))

	req := types.SingleDepositRequest{
		PoolId: poolID,
		Sender: sender.String(),
		Tokens: []sdk.Coin{sdk.NewInt64Coin("uatom", 100_000)},
	}
	_, err := f.Keeper.SingleDeposit(f.Ctx, req, testTimeoutHeight, testTimeoutTimestamp)
	require.NoError(t, err)
	require.Equal(t, 1, f.Sender.Sent)
	require.True(t, f.Bank.GetBalance(f.Ctx, sender, "uatom").IsZero())

	escrow := f.Keeper.EscrowAddress(types.PortID, "channel-0")
	require.Equal(t, math.NewInt(100_000), f.Bank.GetBalance(f.Ctx, escrow, "uatom").Amount)
}

func TestDelegator_SingleDeposit_InsufficientBalance(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.ClaimChannelCapability(t, types.PortID, "channel-0")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	sender := sdk.AccAddress("depositor0000000000")
	req := types.SingleDepositRequest{
		PoolId: poolID,
		Sender: sender.String(),
		Tokens: []sdk.Coin{sdk.NewInt64Coin("uatom", 100_000)},
	}
	_, err := f.Keeper.SingleDeposit(f.Ctx, req, testTimeoutHeight, testTimeoutTimestamp)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestDelegator_LeftSwap_RequiresReadyPool(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.ClaimChannelCapability(t, types.PortID, "channel-0")
	poolID := "pool-atom-osmo"
	pool := readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000)
	pool.Status = types.PoolStatus_Initial
	f.Keeper.SetPool(f.Ctx, pool)

	sender := sdk.AccAddress("swapper000000000000")
	f.Bank.FundAccount(sender, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100_000)))

	req := types.LeftSwapRequest{
		Sender:    sender.String(),
		TokenIn:   sdk.NewInt64Coin("uatom", 100_000),
		TokenOut:  sdk.NewInt64Coin("uosmo", 1),
		Slippage:  100,
		Recipient: sender.String(),
	}
	_, err := f.Keeper.LeftSwap(f.Ctx, req, testTimeoutHeight, testTimeoutTimestamp)
	require.ErrorIs(t, err, types.ErrInvalidState)
}

func TestDelegator_Withdraw_RejectsOverSupply(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.ClaimChannelCapability(t, types.PortID, "channel-0")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	sender := sdk.AccAddress("withdrawer00000000")
	f.Bank.FundAccount(sender, sdk.NewCoins(sdk.NewInt64Coin(poolID, 2_000_000)))

	req := types.WithdrawRequest{
		Sender:   sender.String(),
		PoolCoin: sdk.NewInt64Coin(poolID, 2_000_000),
		DenomOut: "uatom",
	}
	_, err := f.Keeper.Withdraw(f.Ctx, req, testTimeoutHeight, testTimeoutTimestamp)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}
