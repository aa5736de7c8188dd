package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	capabilitykeeper "github.com/cosmos/ibc-go/modules/capability/keeper"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	portkeeper "github.com/cosmos/ibc-go/v8/modules/core/05-port/keeper"
	host "github.com/cosmos/ibc-go/v8/modules/core/24-host"
	"github.com/stretchr/testify/require"

	"github.com/interchain-labs/interchainswap/x/interchainswap/keeper"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// Fixture bundles a wired Keeper plus the mocks a test needs to assert
// against (balances, channel-send counts), grounded on the combined
// shape of testutil/keeper/dex.go (storage + codec wiring) and
// x/compute/keeper/test_helpers_internal_test.go's capability/port
// keeper setup.
type Fixture struct {
	Keeper  keeper.Keeper
	Ctx     sdk.Context
	Bank    *MockBankKeeper
	Account *MockAccountKeeper
	Sender  *MockChannelSender
}

// NewFixture builds an isolated in-memory Keeper with a real capability
// keeper (so channel-capability claim/get exercises the genuine ibc-go
// type) and a mock ChannelKeeper override (so SendPacket never needs a
// fully wired IBC core, per the Delegator's channelSender test-override
// hook). nativeDenoms marks which denoms this mock bank treats as having
// local supply, matching the buildPool native/remote classification
// (SPEC_FULL §4.2, pool_build.go).
func NewFixture(t testing.TB, nativeDenoms ...string) *Fixture {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	capStoreKey := storetypes.NewKVStoreKey(capabilitytypes.StoreKey)
	capMemStoreKey := storetypes.NewMemoryStoreKey(capabilitytypes.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(capStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(capMemStoreKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	capKeeper := capabilitykeeper.NewKeeper(cdc, capStoreKey, capMemStoreKey)
	scopedKeeper := capKeeper.ScopeToModule(types.ModuleName)
	portKeeper := portkeeper.NewKeeper(scopedKeeper)
	capKeeper.Seal()

	bank := NewMockBankKeeper(nativeDenoms...)
	account := NewMockAccountKeeper()
	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()

	k := keeper.NewKeeper(
		cdc,
		storeKey,
		bank,
		account,
		nil,
		&portKeeper,
		scopedKeeper,
		authority,
	)

	sender := &MockChannelSender{}
	k.WithChannelSender(sender)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: time.Now().UTC()}, false, log.NewNopLogger())
	require.NoError(t, k.BindPort(ctx))
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return &Fixture{
		Keeper:  *k,
		Ctx:     ctx,
		Bank:    bank,
		Account: account,
		Sender:  sender,
	}
}

// ClaimChannelCapability creates and claims a channel capability for
// (portID, channelID) the way the real ibc-go core does during
// OnChanOpenAck/Confirm, so msg_server.go's chanCapFor can resolve it
// in tests. Grounded on x/compute/keeper/keeper_capability_test.go's
// TestKeeper_ClaimAndGetChannelCapability.
func (f *Fixture) ClaimChannelCapability(t testing.TB, portID, channelID string) {
	t.Helper()
	path := host.ChannelCapabilityPath(portID, channelID)
	cap, err := f.Keeper.ScopedKeeper().NewCapability(f.Ctx, path)
	require.NoError(t, err)
	require.NoError(t, f.Keeper.ClaimCapability(f.Ctx, cap, path))
}
