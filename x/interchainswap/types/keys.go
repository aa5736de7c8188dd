package types

import (
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
)

const (
	// ModuleName defines the module name.
	ModuleName = "interchainswap"

	// StoreKey defines the primary module store key.
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key.
	RouterKey = ModuleName

	// PortID is the port this module binds to once at initialization.
	PortID = "interchainswap"

	// Version is the IBC channel version this module requires.
	Version = "ics101-1"
)

// DefaultAuthority returns the default module authority (gov module address).
func DefaultAuthority() string {
	return authtypes.NewModuleAddress(govtypes.ModuleName).String()
}

var (
	// PoolKeyPrefix namespaces the Pool Store (§4.3): pools/<PoolId> -> Pool.
	PoolKeyPrefix = []byte{0x01}

	// ParamsKey stores the module Params (§6 Params contract).
	ParamsKey = []byte{0x02}
)

// PoolKey returns the store key for a pool by its PoolId.
func PoolKey(poolID string) []byte {
	return append(PoolKeyPrefix, []byte(poolID)...)
}
