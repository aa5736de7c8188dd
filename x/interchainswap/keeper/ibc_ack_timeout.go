package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/amm"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// This file is the initiating chain's half of the two-phase commit (§4.6):
// on a Success acknowledgement it mirrors the identical deterministic AMM
// computation locally and performs whatever settlement is owed to the
// local sender; on an Error acknowledgement or timeout it refunds the
// escrowed amount in full (§8 property 8, escrow safety).

// OnAcknowledgementPacket handles the ack for every outbound packet type.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, ack channeltypes.Acknowledgement) error {
	envelope, err := types.UnmarshalPacket(packet.Data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}

	if !ack.Success() {
		k.metrics.RecordRefund(envelope.Type.String(), "ack_error")
		return k.refundForMessage(ctx, packet, envelope)
	}

	switch envelope.Type {
	case types.MessageType_CreatePool:
		return k.ackCreatePool(ctx, packet, envelope.Data)
	case types.MessageType_SingleDeposit:
		return k.ackSingleDeposit(ctx, envelope.Data)
	case types.MessageType_DoubleDeposit:
		return k.ackDoubleDeposit(ctx, envelope.Data)
	case types.MessageType_Withdraw:
		return k.ackWithdraw(ctx, packet, envelope.Data)
	case types.MessageType_LeftSwap:
		return k.ackLeftSwap(ctx, envelope.Data)
	case types.MessageType_RightSwap:
		return k.ackRightSwap(ctx, packet, envelope.Data)
	default:
		return fmt.Errorf("%w: unknown message type %d", types.ErrInvalidPacket, envelope.Type)
	}
}

// OnTimeoutPacket treats a timeout exactly like an Error acknowledgement:
// the escrowed amount is returned to the original sender (§4.6).
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet) error {
	envelope, err := types.UnmarshalPacket(packet.Data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	k.metrics.RecordRefund(envelope.Type.String(), "timeout")
	return k.refundForMessage(ctx, packet, envelope)
}

func (k Keeper) refundForMessage(ctx sdk.Context, packet channeltypes.Packet, envelope types.Packet) error {
	portID, channelID := packet.SourcePort, packet.SourceChannel

	switch envelope.Type {
	case types.MessageType_CreatePool:
		return nil // nothing was escrowed
	case types.MessageType_SingleDeposit:
		req, err := types.UnmarshalSingleDepositRequest(envelope.Data)
		if err != nil {
			return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
		}
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		return k.refundAndEmit(ctx, portID, channelID, sender, sdk.NewCoins(req.Tokens[0]))
	case types.MessageType_DoubleDeposit:
		req, err := types.UnmarshalDoubleDepositRequest(envelope.Data)
		if err != nil {
			return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
		}
		sender, err := sdk.AccAddressFromBech32(req.LocalDeposit.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		return k.refundAndEmit(ctx, portID, channelID, sender, sdk.NewCoins(req.LocalDeposit.Token))
	case types.MessageType_Withdraw:
		req, err := types.UnmarshalWithdrawRequest(envelope.Data)
		if err != nil {
			return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
		}
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		return k.refundAndEmit(ctx, portID, channelID, sender, sdk.NewCoins(req.PoolCoin))
	case types.MessageType_LeftSwap:
		req, err := types.UnmarshalLeftSwapRequest(envelope.Data)
		if err != nil {
			return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
		}
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		return k.refundAndEmit(ctx, portID, channelID, sender, sdk.NewCoins(req.TokenIn))
	case types.MessageType_RightSwap:
		req, err := types.UnmarshalRightSwapRequest(envelope.Data)
		if err != nil {
			return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
		}
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		return k.refundAndEmit(ctx, portID, channelID, sender, sdk.NewCoins(req.TokenIn))
	default:
		return fmt.Errorf("%w: unknown message type %d", types.ErrInvalidPacket, envelope.Type)
	}
}

func (k Keeper) refundAndEmit(ctx sdk.Context, portID, channelID string, sender sdk.AccAddress, coins sdk.Coins) error {
	if err := k.Refund(ctx, portID, channelID, sender, coins); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRefund,
		sdk.NewAttribute(types.AttributeKeySender, sender.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, coins.String()),
	))
	return nil
}

func (k Keeper) ackCreatePool(ctx sdk.Context, packet channeltypes.Packet, data []byte) error {
	req, err := types.UnmarshalCreatePoolRequest(data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	poolID := types.GeneratePoolID(req.Denoms[0], req.Denoms[1])
	if k.HasPool(ctx, poolID) {
		return nil
	}
	pool, err := k.buildPool(ctx, req, packet.SourcePort, packet.SourceChannel, packet.DestinationPort, packet.DestinationChannel)
	if err != nil {
		return err
	}
	k.SetPool(ctx, pool)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePoolCreated,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
	))
	return nil
}

func (k Keeper) ackSingleDeposit(ctx sdk.Context, data []byte) error {
	req, err := types.UnmarshalSingleDepositRequest(data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	pool, found := k.GetPool(ctx, req.PoolId)
	if !found {
		return fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolId)
	}

	token := req.Tokens[0]
	nextPool, issued, err := amm.DepositSingle(pool, token.Denom, token.Amount)
	if err != nil {
		return err
	}
	nextPool.Supply.Amount = pool.Supply.Amount.Add(issued.Amount)
	if nextPool.Status == types.PoolStatus_Initial {
		nextPool.Status = types.PoolStatus_Ready
	}
	k.SetPool(ctx, nextPool)

	sender, err := sdk.AccAddressFromBech32(req.Sender)
	if err != nil {
		return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
	}
	if err := k.MintToAccount(ctx, sender, sdk.NewCoins(issued)); err != nil {
		return err
	}
	k.metrics.RecordDeposit(pool.Id, "single")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSingleDeposit,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeySender, req.Sender),
		sdk.NewAttribute(types.AttributeKeyPoolToken, issued.String()),
	))
	return nil
}

func (k Keeper) ackDoubleDeposit(ctx sdk.Context, data []byte) error {
	req, err := types.UnmarshalDoubleDepositRequest(data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	pool, found := k.GetPool(ctx, req.PoolId)
	if !found {
		return fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolId)
	}

	nextPool, localIssued, remoteIssued, err := amm.DepositDouble(
		pool, req.LocalDeposit.Token.Amount, req.RemoteDeposit.Token.Amount,
		req.LocalDeposit.Token.Denom, req.RemoteDeposit.Token.Denom,
	)
	if err != nil {
		return err
	}
	nextPool.Supply.Amount = pool.Supply.Amount.Add(localIssued.Amount).Add(remoteIssued.Amount)
	if nextPool.Status == types.PoolStatus_Initial {
		nextPool.Status = types.PoolStatus_Ready
	}
	k.SetPool(ctx, nextPool)

	sender, err := sdk.AccAddressFromBech32(req.LocalDeposit.Sender)
	if err != nil {
		return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
	}
	if err := k.MintToAccount(ctx, sender, sdk.NewCoins(localIssued)); err != nil {
		return err
	}
	k.metrics.RecordDeposit(pool.Id, "double")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDoubleDeposit,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeySender, req.LocalDeposit.Sender),
		sdk.NewAttribute(types.AttributeKeyPoolToken, localIssued.String()),
	))
	return nil
}

func (k Keeper) ackWithdraw(ctx sdk.Context, packet channeltypes.Packet, data []byte) error {
	req, err := types.UnmarshalWithdrawRequest(data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	pool, found := k.GetPool(ctx, req.PoolCoin.Denom)
	if !found {
		return fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolCoin.Denom)
	}

	nextPool, out, err := amm.Withdraw(pool, req.PoolCoin.Amount, req.DenomOut)
	if err != nil {
		return err
	}
	k.SetPool(ctx, nextPool)

	if err := k.BurnFromEscrow(ctx, packet.SourcePort, packet.SourceChannel, sdk.NewCoins(req.PoolCoin)); err != nil {
		return err
	}

	if idx := nextPool.AssetIndex(out.Denom); idx >= 0 && nextPool.Assets[idx].Side == types.PoolSide_Native {
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		if err := k.PayFromEscrow(ctx, packet.SourcePort, packet.SourceChannel, sender, sdk.NewCoins(out)); err != nil {
			return err
		}
	}
	k.metrics.RecordWithdrawal(pool.Id)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeySender, req.Sender),
	))
	return nil
}

func (k Keeper) ackLeftSwap(ctx sdk.Context, data []byte) error {
	req, err := types.UnmarshalLeftSwapRequest(data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	pool, found := k.findPoolByDenom(ctx, req.TokenIn.Denom)
	if !found {
		return fmt.Errorf("%w: no pool for denom %s", types.ErrPoolNotFound, req.TokenIn.Denom)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	nextPool, _, err := amm.LeftSwap(pool, req.TokenIn.Denom, req.TokenOut.Denom, req.TokenIn.Amount, params.PoolFeeRate)
	if err != nil {
		return err
	}
	k.SetPool(ctx, nextPool)
	k.metrics.RecordSwap(pool.Id, "left")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLeftSwap,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeySender, req.Sender),
	))
	return nil
}

func (k Keeper) ackRightSwap(ctx sdk.Context, packet channeltypes.Packet, data []byte) error {
	req, err := types.UnmarshalRightSwapRequest(data)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	pool, found := k.findPoolByDenom(ctx, req.TokenIn.Denom)
	if !found {
		return fmt.Errorf("%w: no pool for denom %s", types.ErrPoolNotFound, req.TokenIn.Denom)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	nextPool, in, err := amm.RightSwap(pool, req.TokenIn.Denom, req.TokenOut.Denom, req.TokenOut.Amount, params.PoolFeeRate)
	if err != nil {
		return err
	}
	k.SetPool(ctx, nextPool)

	// The Delegator escrowed req.TokenIn.Amount, the expected input. When
	// the computed input is smaller, the unused remainder is returned; when
	// it is larger (within the slippage tolerance), nothing more is taken
	// from the sender.
	excess := req.TokenIn.Amount.Sub(in)
	if excess.IsPositive() {
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		if err := k.PayFromEscrow(ctx, packet.SourcePort, packet.SourceChannel, sender, sdk.NewCoins(sdk.NewCoin(req.TokenIn.Denom, excess))); err != nil {
			return err
		}
	}
	k.metrics.RecordSwap(pool.Id, "right")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRightSwap,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeySender, req.Sender),
	))
	return nil
}
