// Package interchainswap wires the module's Keeper into a host chain as a
// standard Cosmos SDK AppModule (SPEC_FULL §A). Grounded on x/dex/module.go's
// verbatim AppModuleBasic/AppModule wiring shape.
package interchainswap

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/spf13/cobra"

	"github.com/interchain-labs/interchainswap/x/interchainswap/keeper"
	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

var (
	_ module.AppModuleBasic      = AppModuleBasic{}
	_ module.HasGenesis          = AppModule{}
	_ module.HasConsensusVersion = AppModule{}

	_ appmodule.AppModule       = AppModule{}
	_ appmodule.HasBeginBlocker = AppModule{}
	_ appmodule.HasEndBlocker   = AppModule{}
)

// AppModuleBasic defines the basic application module used by the
// interchainswap module.
type AppModuleBasic struct {
	cdc codec.Codec
}

// Name returns the module's name.
func (AppModuleBasic) Name() string { return types.ModuleName }

// RegisterLegacyAminoCodec registers the module's types on the legacy amino
// codec. The module carries no legacy-amino-signed messages (§1: CLI/RPC
// wire layers are out of scope), so this is a no-op, as the teacher's own
// x/dex/module.go leaves it.
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {}

// RegisterInterfaces registers the module's interface types. No-op for the
// same reason as RegisterLegacyAminoCodec above.
func (AppModuleBasic) RegisterInterfaces(reg codectypes.InterfaceRegistry) {}

// DefaultGenesis returns the default genesis state as raw JSON.
//
// The module's wire types (types.GenesisState, types.Pool, ...) are
// hand-written canonical-binary types, not protobuf-generated messages
// (see DESIGN.md: no .pb.go codegen is available in this environment), so
// genesis (de)serialization here goes through stdlib encoding/json on the
// plain struct rather than through the codec.JSONCodec parameter, which
// requires a proto.Message.
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesis())
	if err != nil {
		panic(fmt.Errorf("interchainswap: marshal default genesis: %w", err))
	}
	return bz
}

// ValidateGenesis performs genesis state validation.
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := json.Unmarshal(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return genState.Validate()
}

// RegisterGRPCGatewayRoutes is a no-op: §1 excludes RPC wire layers, so no
// routes are registered on mux.
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {}

// GetTxCmd returns no root tx command: §1 excludes CLI.
func (AppModuleBasic) GetTxCmd() *cobra.Command { return nil }

// GetQueryCmd returns no root query command: §1 excludes CLI.
func (AppModuleBasic) GetQueryCmd() *cobra.Command { return nil }

// AppModule implements an application module for interchainswap.
type AppModule struct {
	AppModuleBasic

	keeper keeper.Keeper
}

// NewAppModule creates a new AppModule.
func NewAppModule(cdc codec.Codec, k keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{cdc: cdc},
		keeper:         k,
	}
}

// Name returns the module's name.
func (am AppModule) Name() string { return am.AppModuleBasic.Name() }

// RegisterServices is a no-op: the module exposes no gRPC query/msg
// service (§1 excludes RPC wire layers); every operation is reached
// through the Delegator's Go-level entry points (keeper.Keeper.CreatePool,
// .SingleDeposit, ...), invoked directly by whatever message-routing layer
// the host chain wires up.
func (am AppModule) RegisterServices(cfg module.Configurator) {}

// InitGenesis performs genesis initialization, returning no validator
// updates.
func (am AppModule) InitGenesis(ctx sdk.Context, cdc codec.JSONCodec, gs json.RawMessage) {
	var genState types.GenesisState
	if err := json.Unmarshal(gs, &genState); err != nil {
		panic(fmt.Errorf("interchainswap: unmarshal genesis: %w", err))
	}
	if err := am.keeper.InitGenesis(ctx, genState); err != nil {
		panic(fmt.Errorf("interchainswap: InitGenesis: %w", err))
	}
}

// ExportGenesis returns the exported genesis state as raw JSON.
func (am AppModule) ExportGenesis(ctx sdk.Context, cdc codec.JSONCodec) json.RawMessage {
	genState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		panic(fmt.Errorf("interchainswap: ExportGenesis: %w", err))
	}
	bz, err := json.Marshal(genState)
	if err != nil {
		panic(fmt.Errorf("interchainswap: marshal genesis: %w", err))
	}
	return bz
}

// ConsensusVersion implements module.HasConsensusVersion.
func (AppModule) ConsensusVersion() uint64 { return 1 }

// BeginBlock is a no-op: the core has no scheduled per-block work (§5: all
// state transitions are driven by packets, not by block height).
func (am AppModule) BeginBlock(ctx context.Context) error { return nil }

// EndBlock is a no-op, for the same reason as BeginBlock.
func (am AppModule) EndBlock(ctx context.Context) error { return nil }

// IsOnePerModuleType implements depinject.OnePerModuleType.
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements appmodule.AppModule.
func (am AppModule) IsAppModule() {}
