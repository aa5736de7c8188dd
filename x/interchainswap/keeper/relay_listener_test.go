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

func inboundPacket(data []byte) channeltypes.Packet {
	return channeltypes.Packet{
		SourcePort:         types.PortID,
		SourceChannel:      "channel-1",
		DestinationPort:    types.PortID,
		DestinationChannel: "channel-0",
		Data:               data,
	}
}

// TestRelayListener_CreatePool_AssignsNativeSide mirrors buildPool's
// independent side assignment (SPEC_FULL §4.2): this replica has supply
// of "uatom" but not "ibc/remoteosmo", so it labels uatom
// Native and the remote denom Remote.
func TestRelayListener_CreatePool_AssignsNativeSide(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")

	req := types.CreatePoolRequest{
		SourcePort:    types.PortID,
		SourceChannel: "channel-1",
		Sender:        "cosmos1sender",
		Denoms:        [2]string{"uatom", "ibc/remoteosmo"},
		Decimals:      [2]int32{6, 6},
		Weight:        "50:50",
	}
	packet := inboundPacket(types.NewPacket(types.MessageType_CreatePool, req.Marshal()).Marshal())

	ack, err := f.Keeper.OnRecvPacket(f.Ctx, packet)
	require.NoError(t, err)

	resp, err := types.UnmarshalCreatePoolResponse(ack)
	require.NoError(t, err)

	pool, found := f.Keeper.GetPool(f.Ctx, resp.PoolId)
	require.True(t, found)
	require.Equal(t, types.PoolStatus_Initial, pool.Status)
	require.Equal(t, types.PoolSide_Native, pool.Assets[pool.AssetIndex("uatom")].Side)
	require.Equal(t, types.PoolSide_Remote, pool.Assets[pool.AssetIndex("ibc/remoteosmo")].Side)
	require.Equal(t, "channel-0", pool.ChannelId)
	require.Equal(t, "channel-1", pool.CounterpartyChannel)
}

func TestRelayListener_CreatePool_RejectsDuplicate(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	f.Keeper.SetPool(f.Ctx, readyPool(types.GeneratePoolID("uatom", "uosmo"), "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	req := types.CreatePoolRequest{
		SourcePort: types.PortID, SourceChannel: "channel-1", Sender: "cosmos1sender",
		Denoms: [2]string{"uatom", "uosmo"}, Decimals: [2]int32{6, 6}, Weight: "50:50",
	}
	packet := inboundPacket(types.NewPacket(types.MessageType_CreatePool, req.Marshal()).Marshal())

	_, err := f.Keeper.OnRecvPacket(f.Ctx, packet)
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
}

func TestRelayListener_SingleDeposit_IssuesAndReady(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	poolID := "pool-atom-osmo"
	pool := readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000)
	pool.Status = types.PoolStatus_Initial
	f.Keeper.SetPool(f.Ctx, pool)

	req := types.SingleDepositRequest{
		PoolId: poolID,
		Sender: "cosmos1sender",
		Tokens: []sdk.Coin{sdk.NewInt64Coin("uatom", 100_000)},
	}
	packet := inboundPacket(types.NewPacket(types.MessageType_SingleDeposit, req.Marshal()).Marshal())

	ack, err := f.Keeper.OnRecvPacket(f.Ctx, packet)
	require.NoError(t, err)

	resp, err := types.UnmarshalSingleDepositResponse(ack)
	require.NoError(t, err)
	require.True(t, resp.PoolToken.Amount.IsPositive())

	next, found := f.Keeper.GetPool(f.Ctx, poolID)
	require.True(t, found)
	require.Equal(t, types.PoolStatus_Ready, next.Status)
	require.Equal(t, math.NewInt(1_100_000), next.Assets[next.AssetIndex("uatom")].Balance.Amount)
}

func TestRelayListener_LeftSwap_PaysFromEscrow(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	recipient := sdk.AccAddress("recipient000000000000")
	escrow := f.Keeper.EscrowAddress(types.PortID, "channel-0")
	f.Bank.FundAccount(escrow, sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1_000_000)))

	req := types.LeftSwapRequest{
		Sender:    "cosmos1sender",
		TokenIn:   sdk.NewInt64Coin("uatom", 100_000),
		TokenOut:  sdk.NewInt64Coin("uosmo", 90_000),
		Slippage:  100, // 1%
		Recipient: recipient.String(),
	}
	packet := inboundPacket(types.NewPacket(types.MessageType_LeftSwap, req.Marshal()).Marshal())

	ack, err := f.Keeper.OnRecvPacket(f.Ctx, packet)
	require.NoError(t, err)

	resp, err := types.UnmarshalSwapResponse(ack)
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 1)
	require.Equal(t, math.NewInt(90_661), resp.Tokens[0].Amount)
	require.Equal(t, math.NewInt(90_661), f.Bank.GetBalance(f.Ctx, recipient, "uosmo").Amount)
}

func TestRelayListener_LeftSwap_RejectsSlippage(t *testing.T) {
	f := testkeeper.NewFixture(t, "uatom")
	poolID := "pool-atom-osmo"
	f.Keeper.SetPool(f.Ctx, readyPool(poolID, "uatom", "uosmo", 1_000_000, 1_000_000, 1_000_000))

	escrow := f.Keeper.EscrowAddress(types.PortID, "channel-0")
	f.Bank.FundAccount(escrow, sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1_000_000)))

	req := types.LeftSwapRequest{
		Sender:    "cosmos1sender",
		TokenIn:   sdk.NewInt64Coin("uatom", 100_000),
		TokenOut:  sdk.NewInt64Coin("uosmo", 95_000), // unreachable floor given 30bps fee
		Slippage:  1,                                 // 0.01% tolerance
		Recipient: "cosmos1recipient",
	}
	packet := inboundPacket(types.NewPacket(types.MessageType_LeftSwap, req.Marshal()).Marshal())

	_, err := f.Keeper.OnRecvPacket(f.Ctx, packet)
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	// Rejected swap must not mutate pool state.
	pool, _ := f.Keeper.GetPool(f.Ctx, poolID)
	require.Equal(t, math.NewInt(1_000_000), pool.Assets[pool.AssetIndex("uatom")].Balance.Amount)
}
