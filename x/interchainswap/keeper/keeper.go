package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitykeeper "github.com/cosmos/ibc-go/modules/capability/keeper"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
	portkeeper "github.com/cosmos/ibc-go/v8/modules/core/05-port/keeper"
	host "github.com/cosmos/ibc-go/v8/modules/core/24-host"
	ibckeeper "github.com/cosmos/ibc-go/v8/modules/core/keeper"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// channelSender abstracts the subset of the core ChannelKeeper the
// Delegator needs to emit packets (§6 Transport contract, sendPacket),
// following x/dex/keeper/keeper.go's channelSender test-override pattern.
type channelSender interface {
	SendPacket(ctx sdk.Context,
		channelCap *capabilitytypes.Capability,
		sourcePort string,
		sourceChannel string,
		timeoutHeight clienttypes.Height,
		timeoutTimestamp uint64,
		data []byte,
	) (uint64, error)
}

// Keeper is the module's Pool Store (§4.3) owner and the home of the
// Delegator (§4.5), Relay Listener (§4.6) and Escrow Accountant (§4.7).
// Grounded on x/dex/keeper/keeper.go's field layout; MEV/circuit-breaker/
// TWAP/token-graph/hooks fields are dropped (they back teacher features
// outside this module's scope, see DESIGN.md).
type Keeper struct {
	storeKey storetypes.StoreKey
	cdc      codec.BinaryCodec

	bankKeeper    types.BankKeeper
	accountKeeper types.AccountKeeper

	ibcKeeper      *ibckeeper.Keeper
	portKeeper     *portkeeper.Keeper
	scopedKeeper   capabilitykeeper.ScopedKeeper
	portCapability *capabilitytypes.Capability

	authority string
	metrics   *Metrics

	// channelSender overrides SendPacket in tests; nil uses ibcKeeper.ChannelKeeper.
	channelSender channelSender
}

// kvStoreProvider lets getStore work with both sdk.Context and a direct
// store-provider (the test harness), following x/dex/keeper/keeper.go's
// getStore pattern.
type kvStoreProvider interface {
	KVStore(key storetypes.StoreKey) storetypes.KVStore
}

// NewKeeper constructs a Keeper.
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	accountKeeper types.AccountKeeper,
	ibcKeeper *ibckeeper.Keeper,
	portKeeper *portkeeper.Keeper,
	scopedKeeper capabilitykeeper.ScopedKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:      key,
		cdc:           cdc,
		bankKeeper:    bankKeeper,
		accountKeeper: accountKeeper,
		ibcKeeper:     ibcKeeper,
		portKeeper:    portKeeper,
		scopedKeeper:  scopedKeeper,
		authority:     authority,
		metrics:       NewMetrics(),
	}
}

// WithChannelSender overrides packet sending (test harness only).
func (k *Keeper) WithChannelSender(s channelSender) {
	k.channelSender = s
}

func (k Keeper) sendPacket(ctx sdk.Context, chanCap *capabilitytypes.Capability, sourcePort, sourceChannel string,
	timeoutHeight clienttypes.Height, timeoutTimestamp uint64, data []byte) (uint64, error) {
	if k.channelSender != nil {
		return k.channelSender.SendPacket(ctx, chanCap, sourcePort, sourceChannel, timeoutHeight, timeoutTimestamp, data)
	}
	return k.ibcKeeper.ChannelKeeper.SendPacket(ctx, chanCap, sourcePort, sourceChannel, timeoutHeight, timeoutTimestamp, data)
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	if provider, ok := ctx.(kvStoreProvider); ok {
		return provider.KVStore(k.storeKey)
	}
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// GetAuthority returns the module authority (governance address).
func (k Keeper) GetAuthority() string {
	return k.authority
}

// BindPort binds the IBC port for the module once at initialization (§6:
// "The module binds once to port \"interchainswap\" at initialization.").
func (k *Keeper) BindPort(ctx sdk.Context) error {
	if k.portKeeper.IsBound(ctx, types.PortID) {
		if cap, ok := k.scopedKeeper.GetCapability(ctx, host.PortPath(types.PortID)); ok {
			k.portCapability = cap
		}
		return nil
	}
	portCap := k.portKeeper.BindPort(ctx, types.PortID)
	if err := k.scopedKeeper.ClaimCapability(ctx, portCap, host.PortPath(types.PortID)); err != nil {
		return fmt.Errorf("BindPort: claim port capability: %w", err)
	}
	k.portCapability = portCap
	return nil
}

// ClaimCapability claims a channel capability for later authentication.
func (k Keeper) ClaimCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) error {
	return k.scopedKeeper.ClaimCapability(ctx, cap, name)
}

// GetChannelCapability retrieves a previously claimed channel capability.
func (k Keeper) GetChannelCapability(ctx sdk.Context, portID, channelID string) (*capabilitytypes.Capability, bool) {
	return k.scopedKeeper.GetCapability(ctx, host.ChannelCapabilityPath(portID, channelID))
}

// ScopedKeeper exposes the capability scoped keeper (tests only).
func (k Keeper) ScopedKeeper() capabilitykeeper.ScopedKeeper {
	return k.scopedKeeper
}
