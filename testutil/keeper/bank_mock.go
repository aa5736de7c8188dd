package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MockBankKeeper is a minimal in-memory stand-in for types.BankKeeper,
// grounded on testutil/keeper/dex.go's mockBankKeeper shape, generalized
// to the full set of Bank contract (SPEC_FULL §6) operations the core
// exercises: per-module supply tracking alongside account balances, so
// HasSupply/MintCoins/BurnCoins behave like the real x/bank keeper for
// the native/remote asset classification the core depends on.
type MockBankKeeper struct {
	balances map[string]sdk.Coins
	supply   sdk.Coins
}

// NewMockBankKeeper returns an empty bank with the given denoms already
// registered as having on-chain supply (i.e. "native" to this chain).
func NewMockBankKeeper(nativeDenoms ...string) *MockBankKeeper {
	m := &MockBankKeeper{
		balances: make(map[string]sdk.Coins),
		supply:   sdk.NewCoins(),
	}
	for _, d := range nativeDenoms {
		m.supply = m.supply.Add(sdk.NewCoin(d, math.OneInt()))
	}
	return m
}

// FundAccount credits addr with coins, for test setup only.
func (m *MockBankKeeper) FundAccount(addr sdk.AccAddress, coins sdk.Coins) {
	key := addr.String()
	m.balances[key] = m.balances[key].Add(coins...)
	m.supply = m.supply.Add(coins...)
}

func (m *MockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}

func (m *MockBankKeeper) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	fromKey := fromAddr.String()
	if !m.balances[fromKey].IsAllGTE(amt) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", fromKey, m.balances[fromKey], amt)
	}
	m.balances[fromKey] = m.balances[fromKey].Sub(amt...)
	toKey := toAddr.String()
	m.balances[toKey] = m.balances[toKey].Add(amt...)
	return nil
}

func (m *MockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	key := senderAddr.String()
	if !m.balances[key].IsAllGTE(amt) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", key, m.balances[key], amt)
	}
	m.balances[key] = m.balances[key].Sub(amt...)
	modKey := moduleAddr(recipientModule)
	m.balances[modKey] = m.balances[modKey].Add(amt...)
	return nil
}

func (m *MockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	modKey := moduleAddr(senderModule)
	if !m.balances[modKey].IsAllGTE(amt) {
		return fmt.Errorf("insufficient module funds: %s has %s, needs %s", senderModule, m.balances[modKey], amt)
	}
	m.balances[modKey] = m.balances[modKey].Sub(amt...)
	key := recipientAddr.String()
	m.balances[key] = m.balances[key].Add(amt...)
	return nil
}

func (m *MockBankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	modKey := moduleAddr(moduleName)
	m.balances[modKey] = m.balances[modKey].Add(amt...)
	m.supply = m.supply.Add(amt...)
	return nil
}

func (m *MockBankKeeper) BurnCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	modKey := moduleAddr(moduleName)
	if !m.balances[modKey].IsAllGTE(amt) {
		return fmt.Errorf("insufficient module funds to burn: %s has %s, needs %s", moduleName, m.balances[modKey], amt)
	}
	m.balances[modKey] = m.balances[modKey].Sub(amt...)
	m.supply = m.supply.Sub(amt...)
	return nil
}

func (m *MockBankKeeper) HasSupply(_ context.Context, denom string) bool {
	return m.supply.AmountOf(denom).IsPositive()
}

// moduleAddr gives each named module account its own balance bucket,
// distinct from any bech32 account address.
func moduleAddr(moduleName string) string {
	return "module:" + moduleName
}
