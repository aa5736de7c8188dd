package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// MockAccountKeeper is a minimal in-memory stand-in for types.AccountKeeper,
// grounded on the same mock-keeper idiom as MockBankKeeper: a map instead
// of a real x/auth store, enough to drive DoubleDeposit's remote-signature
// authentication path (SPEC_FULL §4.6) in isolation.
type MockAccountKeeper struct {
	accounts map[string]types.Account
}

func NewMockAccountKeeper() *MockAccountKeeper {
	return &MockAccountKeeper{accounts: make(map[string]types.Account)}
}

// SetAccount registers or replaces an account, for test setup only.
func (m *MockAccountKeeper) SetAccount(addr sdk.AccAddress, pubKey cryptotypes.PubKey, sequence uint64) {
	m.accounts[addr.String()] = types.Account{
		Address:  addr.String(),
		Sequence: sequence,
		PubKey:   pubKey,
	}
}

func (m *MockAccountKeeper) GetAccount(_ context.Context, addr sdk.AccAddress) (types.Account, bool) {
	acc, ok := m.accounts[addr.String()]
	return acc, ok
}
