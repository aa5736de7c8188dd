package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/amm"
	"github.com/interchain-labs/interchainswap/x/interchainswap/fixedpoint"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// This file is the Relay Listener (§4.6): the receiving chain's packet
// handler, run inside OnRecvPacket. It decodes the packet envelope,
// dispatches on message type, and runs the pure amm computation against
// its own local pool copy. Swap outputs are paid to the recipient from
// this chain's escrow; a withdraw output is paid here only when the payout
// asset is native to this chain.

// OnRecvPacket decodes and dispatches an inbound packet, returning the
// success acknowledgement payload (the typed Response's canonical
// encoding) or an error, which the IBCModule adapter turns into an error
// acknowledgement (§4.6: "a relay listener failure never panics the
// chain — it always resolves to an acknowledgement").
func (k Keeper) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet) ([]byte, error) {
	envelope, err := types.UnmarshalPacket(packet.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}

	switch envelope.Type {
	case types.MessageType_CreatePool:
		return k.recvCreatePool(ctx, packet, envelope.Data)
	case types.MessageType_SingleDeposit:
		return k.recvSingleDeposit(ctx, envelope.Data)
	case types.MessageType_DoubleDeposit:
		return k.recvDoubleDeposit(ctx, envelope.Data)
	case types.MessageType_Withdraw:
		return k.recvWithdraw(ctx, envelope.Data)
	case types.MessageType_LeftSwap:
		return k.recvLeftSwap(ctx, envelope.Data)
	case types.MessageType_RightSwap:
		return k.recvRightSwap(ctx, envelope.Data)
	default:
		return nil, fmt.Errorf("%w: unknown message type %d", types.ErrInvalidPacket, envelope.Type)
	}
}

func (k Keeper) recvCreatePool(ctx sdk.Context, packet channeltypes.Packet, data []byte) ([]byte, error) {
	req, err := types.UnmarshalCreatePoolRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}

	poolID := types.GeneratePoolID(req.Denoms[0], req.Denoms[1])
	if k.HasPool(ctx, poolID) {
		return nil, fmt.Errorf("%w: pool %s", types.ErrPoolAlreadyExists, poolID)
	}

	pool, err := k.buildPool(ctx, req, packet.DestinationPort, packet.DestinationChannel, packet.SourcePort, packet.SourceChannel)
	if err != nil {
		return nil, err
	}
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePoolCreated,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyPortID, pool.PortId),
		sdk.NewAttribute(types.AttributeKeyChannelID, pool.ChannelId),
	))

	resp := types.CreatePoolResponse{PoolId: poolID}
	return resp.Marshal(), nil
}

func (k Keeper) recvSingleDeposit(ctx sdk.Context, data []byte) ([]byte, error) {
	req, err := types.UnmarshalSingleDepositRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}

	pool, found := k.GetPool(ctx, req.PoolId)
	if !found {
		return nil, fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolId)
	}

	token := req.Tokens[0]
	nextPool, issued, err := amm.DepositSingle(pool, token.Denom, token.Amount)
	if err != nil {
		return nil, err
	}
	nextPool.Supply.Amount = pool.Supply.Amount.Add(issued.Amount)
	if nextPool.Status == types.PoolStatus_Initial {
		nextPool.Status = types.PoolStatus_Ready
	}
	k.SetPool(ctx, nextPool)
	k.metrics.RecordDeposit(pool.Id, "single")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSingleDeposit,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeyPoolToken, issued.String()),
	))

	resp := types.SingleDepositResponse{PoolToken: issued}
	return resp.Marshal(), nil
}

func (k Keeper) recvDoubleDeposit(ctx sdk.Context, data []byte) ([]byte, error) {
	req, err := types.UnmarshalDoubleDepositRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}

	pool, found := k.GetPool(ctx, req.PoolId)
	if !found {
		return nil, fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolId)
	}

	remoteAddr, err := sdk.AccAddressFromBech32(req.RemoteDeposit.Sender)
	if err != nil {
		return nil, fmt.Errorf("%w: remote sender address: %s", types.ErrValidation, err)
	}
	account, found := k.accountKeeper.GetAccount(ctx, remoteAddr)
	if !found {
		return nil, fmt.Errorf("%w: remote account %s not found", types.ErrValidation, req.RemoteDeposit.Sender)
	}
	if req.RemoteDeposit.Sequence != account.Sequence {
		return nil, fmt.Errorf("%w: expected sequence %d, got %d", types.ErrSequenceMismatch, account.Sequence, req.RemoteDeposit.Sequence)
	}
	msg := remoteDepositSignBytes(req.RemoteDeposit.Sender, req.RemoteDeposit.Sequence, req.RemoteDeposit.Token)
	if !types.VerifySignature(account.PubKey, msg, req.RemoteDeposit.Signature) {
		return nil, fmt.Errorf("%w: remote deposit signature", types.ErrSignatureInvalid)
	}

	if err := k.Escrow(ctx, pool.PortId, pool.ChannelId, remoteAddr, sdk.NewCoins(req.RemoteDeposit.Token)); err != nil {
		return nil, err
	}

	nextPool, localIssued, remoteIssued, err := amm.DepositDouble(
		pool, req.LocalDeposit.Token.Amount, req.RemoteDeposit.Token.Amount,
		req.LocalDeposit.Token.Denom, req.RemoteDeposit.Token.Denom,
	)
	if err != nil {
		return nil, err
	}
	nextPool.Supply.Amount = pool.Supply.Amount.Add(localIssued.Amount).Add(remoteIssued.Amount)
	if nextPool.Status == types.PoolStatus_Initial {
		nextPool.Status = types.PoolStatus_Ready
	}
	k.SetPool(ctx, nextPool)

	if err := k.MintToAccount(ctx, remoteAddr, sdk.NewCoins(remoteIssued)); err != nil {
		return nil, err
	}
	k.metrics.RecordDeposit(pool.Id, "double")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDoubleDeposit,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeyPoolToken, remoteIssued.String()),
	))

	resp := types.DoubleDepositResponse{PoolTokens: [2]sdk.Coin{localIssued, remoteIssued}}
	return resp.Marshal(), nil
}

// remoteDepositSignBytes builds the canonical {sender, sequence, token}
// message a DoubleDeposit's remote leg must be signed over (§4.6).
func remoteDepositSignBytes(sender string, sequence uint64, token sdk.Coin) []byte {
	w := types.NewWriter()
	w.WriteString(sender)
	w.WriteUint64(sequence)
	w.WriteCoin(token)
	return w.Bytes()
}

func (k Keeper) recvWithdraw(ctx sdk.Context, data []byte) ([]byte, error) {
	req, err := types.UnmarshalWithdrawRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}

	pool, found := k.GetPool(ctx, req.PoolCoin.Denom)
	if !found {
		return nil, fmt.Errorf("%w: pool %s", types.ErrPoolNotFound, req.PoolCoin.Denom)
	}

	nextPool, out, err := amm.Withdraw(pool, req.PoolCoin.Amount, req.DenomOut)
	if err != nil {
		return nil, err
	}
	k.SetPool(ctx, nextPool)

	if idx := nextPool.AssetIndex(out.Denom); idx >= 0 && nextPool.Assets[idx].Side == types.PoolSide_Native {
		sender, err := sdk.AccAddressFromBech32(req.Sender)
		if err != nil {
			return nil, fmt.Errorf("%w: sender address: %s", types.ErrValidation, err)
		}
		if err := k.PayFromEscrow(ctx, pool.PortId, pool.ChannelId, sender, sdk.NewCoins(out)); err != nil {
			return nil, err
		}
	}
	k.metrics.RecordWithdrawal(pool.Id)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeyDenomOut, out.Denom),
		sdk.NewAttribute(types.AttributeKeyAmount, out.Amount.String()),
	))

	resp := types.WithdrawResponse{Tokens: []sdk.Coin{out}}
	return resp.Marshal(), nil
}

func (k Keeper) recvLeftSwap(ctx sdk.Context, data []byte) ([]byte, error) {
	req, err := types.UnmarshalLeftSwapRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}

	pool, found := k.findPoolByDenom(ctx, req.TokenIn.Denom)
	if !found {
		return nil, fmt.Errorf("%w: no pool for denom %s", types.ErrPoolNotFound, req.TokenIn.Denom)
	}
	if pool.Status != types.PoolStatus_Ready {
		return nil, fmt.Errorf("%w: pool %s is not ready", types.ErrInvalidState, pool.Id)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	nextPool, out, err := amm.LeftSwap(pool, req.TokenIn.Denom, req.TokenOut.Denom, req.TokenIn.Amount, params.PoolFeeRate)
	if err != nil {
		return nil, err
	}

	minOut := minAcceptable(req.TokenOut.Amount, req.Slippage)
	if out.LT(minOut) {
		k.metrics.RecordSwapFailure(pool.Id, "slippage")
		return nil, fmt.Errorf("%w: got %s, wanted at least %s", types.ErrSlippageExceeded, out, minOut)
	}
	k.SetPool(ctx, nextPool)

	recipient, err := sdk.AccAddressFromBech32(req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient address: %s", types.ErrValidation, err)
	}
	payout := sdk.NewCoin(req.TokenOut.Denom, out)
	if err := k.PayFromEscrow(ctx, pool.PortId, pool.ChannelId, recipient, sdk.NewCoins(payout)); err != nil {
		return nil, err
	}
	k.metrics.RecordSwap(pool.Id, "left")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLeftSwap,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeyAmountOut, out.String()),
	))

	resp := types.SwapResponse{Tokens: []sdk.Coin{payout}}
	return resp.Marshal(), nil
}

func (k Keeper) recvRightSwap(ctx sdk.Context, data []byte) ([]byte, error) {
	req, err := types.UnmarshalRightSwapRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPacket, err)
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}

	pool, found := k.findPoolByDenom(ctx, req.TokenIn.Denom)
	if !found {
		return nil, fmt.Errorf("%w: no pool for denom %s", types.ErrPoolNotFound, req.TokenIn.Denom)
	}
	if pool.Status != types.PoolStatus_Ready {
		return nil, fmt.Errorf("%w: pool %s is not ready", types.ErrInvalidState, pool.Id)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	nextPool, in, err := amm.RightSwap(pool, req.TokenIn.Denom, req.TokenOut.Denom, req.TokenOut.Amount, params.PoolFeeRate)
	if err != nil {
		return nil, err
	}

	// §9 open question 3: RightSwap's slippage bound is symmetric to
	// LeftSwap's — the caller's TokenIn.Amount is the expected input, and
	// the computed required input must not exceed it inflated by the
	// slippage tolerance.
	maxIn := maxAcceptable(req.TokenIn.Amount, req.Slippage)
	if in.GT(maxIn) {
		k.metrics.RecordSwapFailure(pool.Id, "slippage")
		return nil, fmt.Errorf("%w: requires %s, accepted at most %s", types.ErrSlippageExceeded, in, maxIn)
	}
	k.SetPool(ctx, nextPool)

	recipient, err := sdk.AccAddressFromBech32(req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient address: %s", types.ErrValidation, err)
	}
	if err := k.PayFromEscrow(ctx, pool.PortId, pool.ChannelId, recipient, sdk.NewCoins(req.TokenOut)); err != nil {
		return nil, err
	}
	k.metrics.RecordSwap(pool.Id, "right")

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRightSwap,
		sdk.NewAttribute(types.AttributeKeyPoolID, pool.Id),
		sdk.NewAttribute(types.AttributeKeyAmountIn, in.String()),
	))

	resp := types.SwapResponse{Tokens: []sdk.Coin{req.TokenOut}}
	return resp.Marshal(), nil
}

// minAcceptable returns wanted*(1 - slippageBps/10000), the LeftSwap floor.
func minAcceptable(wanted math.Int, slippageBps uint64) math.Int {
	factor := math.LegacyOneDec().Sub(math.LegacyNewDec(int64(slippageBps)).QuoInt64(10000))
	return fixedpoint.ToInt(wanted.ToLegacyDec().Mul(factor), fixedpoint.RoundTowardZero)
}

// maxAcceptable returns wanted*(1 + slippageBps/10000), the RightSwap ceiling.
func maxAcceptable(wanted math.Int, slippageBps uint64) math.Int {
	factor := math.LegacyOneDec().Add(math.LegacyNewDec(int64(slippageBps)).QuoInt64(10000))
	return fixedpoint.ToInt(wanted.ToLegacyDec().Mul(factor), fixedpoint.RoundAwayFromZero)
}
