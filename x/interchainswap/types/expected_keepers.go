package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// BankKeeper is the subset of the Bank contract (§6) the core consumes.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	HasSupply(ctx context.Context, denom string) bool
}

// Account is the minimal view of an on-chain account the core needs for
// DoubleDeposit remote-signature authentication (§6's Account contract).
type Account struct {
	Address  string
	Sequence uint64
	PubKey   cryptotypes.PubKey
}

// AccountKeeper is the subset of the Account contract (§6) the core
// consumes.
type AccountKeeper interface {
	GetAccount(ctx context.Context, addr sdk.AccAddress) (Account, bool)
}

// VerifySignature verifies a signature over message using pubkey, per the
// Account contract's verifySignature(pubkey, message, signature) -> bool.
func VerifySignature(pubKey cryptotypes.PubKey, message, signature []byte) bool {
	if pubKey == nil {
		return false
	}
	return pubKey.VerifySignature(message, signature)
}
