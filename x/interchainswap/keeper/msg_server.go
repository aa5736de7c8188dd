package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// This file is the Delegator (§4.5): the five-step validate -> existence
// check -> balance check -> escrow -> packet-emit sequence run on the
// initiating chain for every one of the six message types. Grounded on
// x/dex/keeper/msg_server.go's handler shape (parse address, call into
// keeper, wrap errors with the operation name), generalized to emit an
// IBC packet instead of mutating local state directly — per §4.5, "The
// Delegator never mutates the pool — only escrows and emits."

// chanCapFor resolves the channel capability the Delegator needs to call
// SendPacket, per ibc-go's standard capability-authenticated channel
// model.
func (k Keeper) chanCapFor(ctx sdk.Context, portID, channelID string) (*capabilitytypes.Capability, error) {
	chanCap, ok := k.GetChannelCapability(ctx, portID, channelID)
	if !ok {
		return nil, fmt.Errorf("%w: no channel capability for %s/%s", types.ErrValidation, portID, channelID)
	}
	return chanCap, nil
}

// CreatePool is the Delegator entrypoint for pool creation (§6 message
// taxonomy). It escrows nothing (no amounts are carried by the request)
// and never persists a pool itself: both replicas build their own Initial
// Pool record independently, the receiver on OnRecvPacket and the
// initiator on the CreatePool ack (§9 open question 1 decision).
func (k Keeper) CreatePool(ctx sdk.Context, req types.CreatePoolRequest, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	if err := req.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("CreatePool: %w", err)
	}
	poolID := types.GeneratePoolID(req.Denoms[0], req.Denoms[1])
	if k.HasPool(ctx, poolID) {
		return 0, fmt.Errorf("%w: pool %s", types.ErrPoolAlreadyExists, poolID)
	}

	chanCap, err := k.chanCapFor(ctx, req.SourcePort, req.SourceChannel)
	if err != nil {
		return 0, fmt.Errorf("CreatePool: %w", err)
	}

	packet := types.NewPacket(types.MessageType_CreatePool, req.Marshal())
	seq, err := k.sendPacket(ctx, chanCap, req.SourcePort, req.SourceChannel, timeoutHeight, timeoutTimestamp, packet.Marshal())
	if err != nil {
		return 0, fmt.Errorf("CreatePool: send packet: %w", err)
	}
	return seq, nil
}

// SingleDeposit is the Delegator entrypoint for a single-sided deposit.
func (k Keeper) SingleDeposit(ctx sdk.Context, req types.SingleDepositRequest, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	if err := req.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("SingleDeposit: %w", err)
	}
	pool, found := k.GetPool(ctx, req.PoolId)
	if !found {
		return 0, fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolId)
	}

	sender, err := sdk.AccAddressFromBech32(req.Sender)
	if err != nil {
		return 0, fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
	}
	token := req.Tokens[0]
	if k.bankKeeper.GetBalance(ctx, sender, token.Denom).Amount.LT(token.Amount) {
		return 0, fmt.Errorf("%w: sender lacks %s", types.ErrInsufficientBalance, token)
	}

	if err := k.Escrow(ctx, pool.PortId, pool.ChannelId, sender, sdk.NewCoins(token)); err != nil {
		return 0, fmt.Errorf("SingleDeposit: %w", err)
	}

	chanCap, err := k.chanCapFor(ctx, pool.PortId, pool.ChannelId)
	if err != nil {
		return 0, fmt.Errorf("SingleDeposit: %w", err)
	}
	packet := types.NewPacket(types.MessageType_SingleDeposit, req.Marshal())
	seq, err := k.sendPacket(ctx, chanCap, pool.PortId, pool.ChannelId, timeoutHeight, timeoutTimestamp, packet.Marshal())
	if err != nil {
		return 0, fmt.Errorf("SingleDeposit: send packet: %w", err)
	}
	return seq, nil
}

// DoubleDeposit is the Delegator entrypoint for a balanced two-sided
// deposit. Only the local leg is escrowed here; the remote leg's tokens
// are pulled on the counterparty chain once it has verified the remote
// signature (§4.6).
func (k Keeper) DoubleDeposit(ctx sdk.Context, req types.DoubleDepositRequest, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	if err := req.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("DoubleDeposit: %w", err)
	}
	pool, found := k.GetPool(ctx, req.PoolId)
	if !found {
		return 0, fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolId)
	}

	localSender, err := sdk.AccAddressFromBech32(req.LocalDeposit.Sender)
	if err != nil {
		return 0, fmt.Errorf("%w: local sender address: %s", types.ErrValidation, err)
	}
	token := req.LocalDeposit.Token
	if k.bankKeeper.GetBalance(ctx, localSender, token.Denom).Amount.LT(token.Amount) {
		return 0, fmt.Errorf("%w: local sender lacks %s", types.ErrInsufficientBalance, token)
	}

	if err := k.Escrow(ctx, pool.PortId, pool.ChannelId, localSender, sdk.NewCoins(token)); err != nil {
		return 0, fmt.Errorf("DoubleDeposit: %w", err)
	}

	chanCap, err := k.chanCapFor(ctx, pool.PortId, pool.ChannelId)
	if err != nil {
		return 0, fmt.Errorf("DoubleDeposit: %w", err)
	}
	packet := types.NewPacket(types.MessageType_DoubleDeposit, req.Marshal())
	seq, err := k.sendPacket(ctx, chanCap, pool.PortId, pool.ChannelId, timeoutHeight, timeoutTimestamp, packet.Marshal())
	if err != nil {
		return 0, fmt.Errorf("DoubleDeposit: send packet: %w", err)
	}
	return seq, nil
}

// Withdraw is the Delegator entrypoint for an LP redemption. The LP coin
// itself is escrowed (not burned) until the ack settles, per §4.6's
// explicit "supply burn is deferred" rule.
func (k Keeper) Withdraw(ctx sdk.Context, req types.WithdrawRequest, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	if err := req.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("Withdraw: %w", err)
	}
	pool, found := k.GetPool(ctx, req.PoolCoin.Denom)
	if !found {
		return 0, fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolCoin.Denom)
	}
	if pool.Status != types.PoolStatus_Ready {
		return 0, fmt.Errorf("%w: pool %s is not ready", types.ErrInvalidState, pool.Id)
	}

	sender, err := sdk.AccAddressFromBech32(req.Sender)
	if err != nil {
		return 0, fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
	}
	if k.bankKeeper.GetBalance(ctx, sender, req.PoolCoin.Denom).Amount.LT(req.PoolCoin.Amount) {
		return 0, fmt.Errorf("%w: sender lacks %s", types.ErrInsufficientBalance, req.PoolCoin)
	}
	if req.PoolCoin.Amount.GT(pool.Supply.Amount) {
		return 0, fmt.Errorf("%w: redeem amount exceeds supply", types.ErrInsufficientBalance)
	}

	if err := k.Escrow(ctx, pool.PortId, pool.ChannelId, sender, sdk.NewCoins(req.PoolCoin)); err != nil {
		return 0, fmt.Errorf("Withdraw: %w", err)
	}

	chanCap, err := k.chanCapFor(ctx, pool.PortId, pool.ChannelId)
	if err != nil {
		return 0, fmt.Errorf("Withdraw: %w", err)
	}
	packet := types.NewPacket(types.MessageType_Withdraw, req.Marshal())
	seq, err := k.sendPacket(ctx, chanCap, pool.PortId, pool.ChannelId, timeoutHeight, timeoutTimestamp, packet.Marshal())
	if err != nil {
		return 0, fmt.Errorf("Withdraw: send packet: %w", err)
	}
	return seq, nil
}

// LeftSwap is the Delegator entrypoint for a sell-given-in swap.
func (k Keeper) LeftSwap(ctx sdk.Context, req types.LeftSwapRequest, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	if err := req.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("LeftSwap: %w", err)
	}
	return k.delegateSwap(ctx, types.MessageType_LeftSwap, req.Sender, req.TokenIn, req.Marshal(), timeoutHeight, timeoutTimestamp)
}

// RightSwap is the Delegator entrypoint for a buy-given-out swap.
func (k Keeper) RightSwap(ctx sdk.Context, req types.RightSwapRequest, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	if err := req.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("RightSwap: %w", err)
	}
	return k.delegateSwap(ctx, types.MessageType_RightSwap, req.Sender, req.TokenIn, req.Marshal(), timeoutHeight, timeoutTimestamp)
}

// delegateSwap runs the common steps shared by LeftSwap/RightSwap: both
// look up the pool by the input denom, check Ready status and balance,
// escrow the input, and emit the packet (§4.5).
func (k Keeper) delegateSwap(ctx sdk.Context, msgType types.MessageType, senderAddr string, tokenIn sdk.Coin, payload []byte, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (uint64, error) {
	pool, found := k.findPoolByDenom(ctx, tokenIn.Denom)
	if !found {
		return 0, fmt.Errorf("%w: no pool for denom %s", types.ErrPoolNotFound, tokenIn.Denom)
	}
	if pool.Status != types.PoolStatus_Ready {
		return 0, fmt.Errorf("%w: pool %s is not ready", types.ErrInvalidState, pool.Id)
	}

	sender, err := sdk.AccAddressFromBech32(senderAddr)
	if err != nil {
		return 0, fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
	}
	if k.bankKeeper.GetBalance(ctx, sender, tokenIn.Denom).Amount.LT(tokenIn.Amount) {
		return 0, fmt.Errorf("%w: sender lacks %s", types.ErrInsufficientBalance, tokenIn)
	}

	if err := k.Escrow(ctx, pool.PortId, pool.ChannelId, sender, sdk.NewCoins(tokenIn)); err != nil {
		return 0, fmt.Errorf("%s: %w", msgType, err)
	}

	chanCap, err := k.chanCapFor(ctx, pool.PortId, pool.ChannelId)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", msgType, err)
	}
	packet := types.NewPacket(msgType, payload)
	seq, err := k.sendPacket(ctx, chanCap, pool.PortId, pool.ChannelId, timeoutHeight, timeoutTimestamp, packet.Marshal())
	if err != nil {
		return 0, fmt.Errorf("%s: send packet: %w", msgType, err)
	}
	return seq, nil
}

// findPoolByDenom locates the (unique, per §1 scope) pool holding denom as
// one of its two assets. Swap requests address a pool by denom pair
// rather than by PoolId, since the wire taxonomy (§6) carries tokenIn/
// tokenOut rather than an explicit poolId for LeftSwap/RightSwap.
func (k Keeper) findPoolByDenom(ctx sdk.Context, denom string) (types.Pool, bool) {
	var found types.Pool
	var ok bool
	k.IteratePools(ctx, func(p types.Pool) bool {
		if p.AssetIndex(denom) >= 0 {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}
