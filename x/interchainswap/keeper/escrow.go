package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// EscrowAddress derives the deterministic escrow address owned by the
// module for a given (port, channel) pair (§4.7), the same address.Module
// derivation idiom ibc-go's transfer module uses for its own per-channel
// escrow accounts.
func (k Keeper) EscrowAddress(portID, channelID string) sdk.AccAddress {
	return address.Module(types.ModuleName, []byte(portID+"/"+channelID))
}

// Escrow moves coins from sender into the (port, channel) escrow address,
// the Delegator's escrow step (§4.5 step 4). It is a plain account-to-
// account transfer: the escrow address is a derived account, not the
// module's primary account, so the generic Bank sendCoins primitive
// applies (§6 Bank contract).
func (k Keeper) Escrow(ctx context.Context, portID, channelID string, sender sdk.AccAddress, coins sdk.Coins) error {
	escrow := k.EscrowAddress(portID, channelID)
	if err := k.bankKeeper.SendCoins(ctx, sender, escrow, coins); err != nil {
		return fmt.Errorf("%w: escrow %s from %s: %s", types.ErrInsufficientBalance, coins, sender, err)
	}
	return nil
}

// PayFromEscrow releases coins held in the (port, channel) escrow to
// recipient — used both for ordinary settlement (swap output delivery,
// withdraw payout) and for Refund (§4.6, §9: Refund is the symmetric
// inverse of Escrow, paying the original sender back in full).
func (k Keeper) PayFromEscrow(ctx context.Context, portID, channelID string, recipient sdk.AccAddress, coins sdk.Coins) error {
	escrow := k.EscrowAddress(portID, channelID)
	if err := k.bankKeeper.SendCoins(ctx, escrow, recipient, coins); err != nil {
		return fmt.Errorf("pay from escrow to %s: %w", recipient, err)
	}
	return nil
}

// BurnFromEscrow destroys coins held in the (port, channel) escrow — used
// to retire redeemed LP supply on Withdraw ack. Bank's burnCoin contract
// (§6) only burns from a named module account, so escrowed coins are
// first swept into the module account, then burned.
func (k Keeper) BurnFromEscrow(ctx context.Context, portID, channelID string, coins sdk.Coins) error {
	escrow := k.EscrowAddress(portID, channelID)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, escrow, types.ModuleName, coins); err != nil {
		return fmt.Errorf("sweep escrow for burn: %w", err)
	}
	return k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins)
}

// MintToAccount mints coins to the module account and forwards them to
// recipient — used to issue freshly-minted LP coins (§4.6 ack handling,
// DoubleDeposit voucher mint).
func (k Keeper) MintToAccount(ctx context.Context, recipient sdk.AccAddress, coins sdk.Coins) error {
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return fmt.Errorf("mint %s: %w", coins, err)
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
		return fmt.Errorf("transfer minted %s to %s: %w", coins, recipient, err)
	}
	return nil
}

// Refund returns the originally escrowed token(s) to the original sender
// on Error ack or timeout (§4.6, §8 property 8: escrow safety). It is the
// literal inverse of Escrow — same (port, channel), same amount, same
// recipient as the original sender.
func (k Keeper) Refund(ctx context.Context, portID, channelID string, sender sdk.AccAddress, coins sdk.Coins) error {
	if err := k.PayFromEscrow(ctx, portID, channelID, sender, coins); err != nil {
		return fmt.Errorf("refund to %s: %w", sender, err)
	}
	return nil
}
