package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v8/modules/core/05-port/types"
	host "github.com/cosmos/ibc-go/v8/modules/core/24-host"
	ibcexported "github.com/cosmos/ibc-go/v8/modules/core/exported"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

// IBCModule implements ICS-26 for the module (§5 Transport). Grounded on
// x/dex/ibc_module.go's struct/handshake/dispatch shape, with channel
// ordering fixed at ORDERED (§5 requires packets to apply in send order
// to keep both pool mirrors deterministic) where the teacher's own DEX
// module uses UNORDERED.
type IBCModule struct {
	keeper Keeper
	cdc    codec.BinaryCodec
}

// NewIBCModule constructs the adapter.
func NewIBCModule(k Keeper, cdc codec.BinaryCodec) IBCModule {
	return IBCModule{keeper: k, cdc: cdc}
}

func validateOrderAndVersion(order channeltypes.Order, version string) error {
	if order != channeltypes.ORDERED {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "channel must be ORDERED, got %s", order)
	}
	if version != "" && version != types.Version {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "unsupported version %q, want %q", version, types.Version)
	}
	return nil
}

func (im IBCModule) OnChanOpenInit(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID string,
	channelID string,
	chanCap *capabilitytypes.Capability,
	counterparty channeltypes.Counterparty,
	version string,
) (string, error) {
	if err := validateOrderAndVersion(order, version); err != nil {
		return "", err
	}
	if err := im.keeper.ClaimCapability(ctx, chanCap, host.ChannelCapabilityPath(portID, channelID)); err != nil {
		return "", errorsmod.Wrap(err, "claim channel capability")
	}
	return types.Version, nil
}

func (im IBCModule) OnChanOpenTry(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID,
	channelID string,
	chanCap *capabilitytypes.Capability,
	counterparty channeltypes.Counterparty,
	counterpartyVersion string,
) (string, error) {
	if err := validateOrderAndVersion(order, counterpartyVersion); err != nil {
		return "", err
	}
	if _, ok := im.keeper.GetChannelCapability(ctx, portID, channelID); !ok {
		if err := im.keeper.ClaimCapability(ctx, chanCap, host.ChannelCapabilityPath(portID, channelID)); err != nil {
			return "", errorsmod.Wrap(err, "claim channel capability")
		}
	}
	return types.Version, nil
}

func (im IBCModule) OnChanOpenAck(ctx sdk.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) error {
	if counterpartyVersion != types.Version {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "unsupported counterparty version %q, want %q", counterpartyVersion, types.Version)
	}
	return nil
}

func (im IBCModule) OnChanOpenConfirm(ctx sdk.Context, portID, channelID string) error {
	return nil
}

// OnChanCloseInit disallows user-initiated channel closure (§5: pools are
// permanent once created, matching x/dex/ibc_module.go's own refusal).
func (im IBCModule) OnChanCloseInit(ctx sdk.Context, portID, channelID string) error {
	return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "user cannot close an interchainswap channel")
}

func (im IBCModule) OnChanCloseConfirm(ctx sdk.Context, portID, channelID string) error {
	return nil
}

func (im IBCModule) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) ibcexported.Acknowledgement {
	ackPayload, err := im.keeper.OnRecvPacket(ctx, packet)
	if err != nil {
		return channeltypes.NewErrorAcknowledgement(err)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"interchainswap_packet_received",
		sdk.NewAttribute(types.AttributeKeyPortID, packet.DestinationPort),
		sdk.NewAttribute(types.AttributeKeyChannelID, packet.DestinationChannel),
		sdk.NewAttribute(types.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
	))

	return channeltypes.NewResultAcknowledgement(ackPayload)
}

func (im IBCModule) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte, relayer sdk.AccAddress) error {
	var ack channeltypes.Acknowledgement
	if err := channeltypes.SubModuleCdc.UnmarshalJSON(acknowledgement, &ack); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "cannot unmarshal acknowledgement: %s", err)
	}

	if err := im.keeper.OnAcknowledgementPacket(ctx, packet, ack); err != nil {
		return err
	}

	if !ack.Success() {
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypePacketAckError,
			sdk.NewAttribute(types.AttributeKeyPortID, packet.SourcePort),
			sdk.NewAttribute(types.AttributeKeyChannelID, packet.SourceChannel),
			sdk.NewAttribute(types.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
		))
	}
	return nil
}

func (im IBCModule) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) error {
	if err := im.keeper.OnTimeoutPacket(ctx, packet); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePacketTimeout,
		sdk.NewAttribute(types.AttributeKeyPortID, packet.SourcePort),
		sdk.NewAttribute(types.AttributeKeyChannelID, packet.SourceChannel),
		sdk.NewAttribute(types.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
	))
	return nil
}
