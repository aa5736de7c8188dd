package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/interchain-labs/interchainswap/testutil/keeper"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

func outboundPacket(data []byte) channeltypes.Packet {
	return channeltypes.Packet{
		SourcePort:         types.PortID,
		SourceChannel:      "channel-0",
		DestinationPort:    types.PortID,
		DestinationChannel: "channel-1",
		Data:               data,
	}
}

// TestAck_SingleDeposit_MintsLP mirrors the initiator's half of the
// two-phase commit (SPEC_FULL §4.6): a Success ack replays the identical
// AMM computation locally and mints the sender's LP share, matching what
// the counterparty's recvSingleDeposit independently computed.
func TestAck_SingleDeposit_MintsLP(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	sender := sdk.AccAddress("depositor0000000000")
	req := types.SingleDepositRequest{
		PoolId: poolID,
		Sender: sender.String(),
		Tokens: []sdk.Coin{sdk.NewInt64Coin("uatom", 100_000)},
	}
	packet := outboundPacket(types.NewPacket(types.MessageType_SingleDeposit, req.Marshal()).Marshal())
	ack := channeltypes.NewResultAcknowledgement(types.SingleDepositResponse{PoolToken: sdk.NewInt64Coin(poolID, 1)}.Marshal())

	require.NoError(t, f.Keeper.OnAcknowledgementPacket(f.Ctx, packet, ack))

	pool, found := f.Keeper.GetPool(f.Ctx, poolID)
	require.True(t, found)
	require.Equal(t, math.NewInt(1_100_000), pool.Assets[pool.AssetIndex("uatom")].Balance.Amount)
	require.True(t, f.Bank.GetBalance(f.Ctx, sender, poolID).Amount.IsPositive())
}

// TestAck_Error_RefundsEscrow covers the error-acknowledgement branch of
// the two-phase commit: whatever OnRecvPacket rejected on the
// counterparty comes back as an Error ack here, and the initiator must
// restore the escrowed amount in full (§8 property 8).
func TestAck_Error_RefundsEscrow(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	sender := sdk.AccAddress("depositor0000000000")
	coin := sdk.NewInt64Coin("uatom", 100_000)
	f.Bank.FundAccount(sender, sdk.NewCoins(coin))
	require.NoError(t, f.Keeper.Escrow(f.Ctx, types.PortID, "channel-0", sender, sdk.NewCoins(coin)))

	req := types.SingleDepositRequest{
		PoolId: poolID,
		Sender: sender.String(),
		Tokens: []sdk.Coin{coin},
	}
	packet := outboundPacket(types.NewPacket(types.MessageType_SingleDeposit, req.Marshal()).Marshal())
	ack := channeltypes.NewErrorAcknowledgement(types.ErrInsufficientBalance)

	require.NoError(t, f.Keeper.OnAcknowledgementPacket(f.Ctx, packet, ack))
	require.Equal(t, coin.Amount, f.Bank.GetBalance(f.Ctx, sender, "uatom").Amount)

	escrow := f.Keeper.EscrowAddress(types.PortID, "channel-0")
	require.True(t, f.Bank.GetBalance(f.Ctx, escrow, "uatom").IsZero())
}

// TestTimeout_LeftSwap_RefundsTokenIn treats a timeout exactly like an
// error ack: the escrowed TokenIn returns to the sender unchanged, and
// the pool (never mutated on the initiator for a swap whose ack never
// arrived) is untouched.
func TestTimeout_LeftSwap_RefundsTokenIn(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	sender := sdk.AccAddress("swapper000000000000")
	tokenIn := sdk.NewInt64Coin("uatom", 100_000)
	f.Bank.FundAccount(sender, sdk.NewCoins(tokenIn))
	require.NoError(t, f.Keeper.Escrow(f.Ctx, types.PortID, "channel-0", sender, sdk.NewCoins(tokenIn)))

	req := types.LeftSwapRequest{
		Sender:    sender.String(),
		TokenIn:   tokenIn,
		TokenOut:  sdk.NewInt64Coin("uosmo", 90_000),
		Slippage:  100,
		Recipient: sender.String(),
	}
	packet := outboundPacket(types.NewPacket(types.MessageType_LeftSwap, req.Marshal()).Marshal())

	require.NoError(t, f.Keeper.OnTimeoutPacket(f.Ctx, packet))
	require.Equal(t, tokenIn.Amount, f.Bank.GetBalance(f.Ctx, sender, "uatom").Amount)

	pool, _ := f.Keeper.GetPool(f.Ctx, poolID)
	require.Equal(t, math.NewInt(1_000_000), pool.Assets[pool.AssetIndex("uatom")].Balance.Amount)
}

// TestTimeout_CreatePool_NoEscrowToRefund documents that a CreatePool timeout
// is a pure no-op on the refund path: nothing was escrowed for it, so
// refundForMessage must return nil rather than erroring.
func TestTimeout_CreatePool_NoEscrowToRefund(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")

	req := types.CreatePoolRequest{
		SourcePort:    types.PortID,
		SourceChannel: "channel-0",
		Sender:        "cosmos1sender",
		Denoms:        [2]string{"uatom", "uosmo"},
		Decimals:      [2]int32{6, 6},
		Weight:        "50:50",
	}
	packet := outboundPacket(types.NewPacket(types.MessageType_CreatePool, req.Marshal()).Marshal())

	require.NoError(t, f.Keeper.OnTimeoutPacket(f.Ctx, packet))
	require.False(t, f.Keeper.HasPool(f.Ctx, types.GeneratePoolID("uatom", "uosmo")))
}
