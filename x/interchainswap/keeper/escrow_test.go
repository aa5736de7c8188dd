package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/interchain-labs/interchainswap/testutil/keeper"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

func TestEscrow_PayFromEscrow_RoundTrip(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	sender := sdk.AccAddress("sender00000000000000")
	recipient := sdk.AccAddress("recipient000000000000")
	coins := sdk.NewCoins(sdk.NewInt64Coin("uatom", 500))
	f.Bank.FundAccount(sender, coins)

	require.NoError(t, f.Keeper.Escrow(f.Ctx, types.PortID, "channel-0", sender, coins))
	require.True(t, f.Bank.GetBalance(f.Ctx, sender, "uatom").IsZero())

	require.NoError(t, f.Keeper.PayFromEscrow(f.Ctx, types.PortID, "channel-0", recipient, coins))
	require.Equal(t, coins.AmountOf("uatom"), f.Bank.GetBalance(f.Ctx, recipient, "uatom").Amount)
}

func TestEscrow_InsufficientBalance(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	sender := sdk.AccAddress("sender00000000000000")
	coins := sdk.NewCoins(sdk.NewInt64Coin("uatom", 500))

	err := f.Keeper.Escrow(f.Ctx, types.PortID, "channel-0", sender, coins)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestRefund_RestoresExactAmount(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	sender := sdk.AccAddress("sender00000000000000")
	coins := sdk.NewCoins(sdk.NewInt64Coin("uatom", 750))
	f.Bank.FundAccount(sender, coins)

	require.NoError(t, f.Keeper.Escrow(f.Ctx, types.PortID, "channel-0", sender, coins))
	require.NoError(t, f.Keeper.Refund(f.Ctx, types.PortID, "channel-0", sender, coins))
	require.Equal(t, coins.AmountOf("uatom"), f.Bank.GetBalance(f.Ctx, sender, "uatom").Amount)
}

func TestMintToAccount_And_BurnFromEscrow(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	recipient := sdk.AccAddress("recipient000000000000")
	lpCoins := sdk.NewCoins(sdk.NewInt64Coin("pool-xyz", 1_000))

	require.NoError(t, f.Keeper.MintToAccount(f.Ctx, recipient, lpCoins))
	require.Equal(t, lpCoins.AmountOf("pool-xyz"), f.Bank.GetBalance(f.Ctx, recipient, "pool-xyz").Amount)

	f.Bank.FundAccount(recipient, sdk.NewCoins()) // no-op, recipient already funded above
	escrow := f.Keeper.EscrowAddress(types.PortID, "channel-0")
	f.Bank.FundAccount(escrow, lpCoins)
	require.NoError(t, f.Keeper.BurnFromEscrow(f.Ctx, types.PortID, "channel-0", lpCoins))
	require.True(t, f.Bank.GetBalance(f.Ctx, escrow, "pool-xyz").IsZero())
}
