package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// The six request/response pairs of the public wire surface (§6, "Message
// taxonomy"). Each Request is what the Delegator validates, escrows
// against, and hands to the transport as the data field of a Packet (§3);
// each Response is the typed payload of a Success acknowledgement.

// CreatePoolRequest creates a new mirrored pool.
type CreatePoolRequest struct {
	SourcePort    string
	SourceChannel string
	Sender        string
	Denoms        [2]string
	Decimals      [2]int32
	// Weight is "a:b", integers summing to 100 (§3 invariant 2).
	Weight string
}

type CreatePoolResponse struct {
	PoolId string
}

// SingleDepositRequest deposits a single denom into an existing pool.
type SingleDepositRequest struct {
	PoolId string
	Sender string
	Tokens []sdk.Coin
}

type SingleDepositResponse struct {
	PoolToken sdk.Coin
}

// DepositLeg is one side of a DoubleDeposit (the local side).
type DepositLeg struct {
	Sender string
	Token  sdk.Coin
}

// RemoteDepositLeg is the remote side of a DoubleDeposit, authenticated by
// signature over the canonical message {sender, sequence, token} (§4.6).
type RemoteDepositLeg struct {
	Sender    string
	Sequence  uint64
	Token     sdk.Coin
	Signature []byte
}

// DoubleDepositRequest seeds or adds balanced liquidity on both sides.
type DoubleDepositRequest struct {
	PoolId        string
	LocalDeposit  DepositLeg
	RemoteDeposit RemoteDepositLeg
}

type DoubleDepositResponse struct {
	PoolTokens [2]sdk.Coin
}

// WithdrawRequest redeems LP supply for one denom's worth of underlying.
type WithdrawRequest struct {
	Sender   string
	PoolCoin sdk.Coin
	DenomOut string
}

type WithdrawResponse struct {
	Tokens []sdk.Coin
}

// LeftSwapRequest sells a specified input amount (out-given-in).
type LeftSwapRequest struct {
	Sender    string
	TokenIn   sdk.Coin
	TokenOut  sdk.Coin
	Slippage  uint64 // basis points of 1/10000
	Recipient string
}

// RightSwapRequest buys a specified output amount (in-given-out).
type RightSwapRequest struct {
	Sender    string
	TokenIn   sdk.Coin
	TokenOut  sdk.Coin
	Slippage  uint64
	Recipient string
}

// SwapResponse is the shared response shape for both swap directions.
type SwapResponse struct {
	Tokens []sdk.Coin
}

// --- ValidateBasic: syntactic validation, Delegator step 1 (§4.5) ---

func (m CreatePoolRequest) ValidateBasic() error {
	if m.Sender == "" {
		return fmt.Errorf("%w: sender required", ErrValidation)
	}
	if m.Denoms[0] == "" || m.Denoms[1] == "" {
		return fmt.Errorf("%w: two denoms required", ErrValidation)
	}
	if m.Denoms[0] == m.Denoms[1] {
		return fmt.Errorf("%w: duplicate denoms", ErrValidation)
	}
	wa, wb, err := parseWeightPair(m.Weight)
	if err != nil {
		return err
	}
	if wa+wb != 100 {
		return fmt.Errorf("%w: weights must sum to 100, got %d+%d", ErrValidation, wa, wb)
	}
	return nil
}

func (m SingleDepositRequest) ValidateBasic() error {
	if m.Sender == "" {
		return fmt.Errorf("%w: sender required", ErrValidation)
	}
	if m.PoolId == "" {
		return fmt.Errorf("%w: pool id required", ErrValidation)
	}
	if len(m.Tokens) != 1 {
		return fmt.Errorf("%w: single deposit takes exactly one token", ErrValidation)
	}
	if !m.Tokens[0].Amount.IsPositive() {
		return fmt.Errorf("%w: deposit amount must be positive", ErrValidation)
	}
	return nil
}

func (m DoubleDepositRequest) ValidateBasic() error {
	if m.PoolId == "" {
		return fmt.Errorf("%w: pool id required", ErrValidation)
	}
	if m.LocalDeposit.Sender == "" || m.RemoteDeposit.Sender == "" {
		return fmt.Errorf("%w: both legs require a sender", ErrValidation)
	}
	if !m.LocalDeposit.Token.Amount.IsPositive() || !m.RemoteDeposit.Token.Amount.IsPositive() {
		return fmt.Errorf("%w: both legs require a positive amount", ErrValidation)
	}
	if len(m.RemoteDeposit.Signature) == 0 {
		return fmt.Errorf("%w: remote deposit requires a signature", ErrValidation)
	}
	return nil
}

func (m WithdrawRequest) ValidateBasic() error {
	if m.Sender == "" {
		return fmt.Errorf("%w: sender required", ErrValidation)
	}
	if !m.PoolCoin.Amount.IsPositive() {
		return fmt.Errorf("%w: pool coin amount must be positive", ErrValidation)
	}
	if m.DenomOut == "" {
		return fmt.Errorf("%w: denom out required", ErrValidation)
	}
	return nil
}

func validateSwapRequest(sender, recipient string, tokenIn, tokenOut sdk.Coin) error {
	if sender == "" {
		return fmt.Errorf("%w: sender required", ErrValidation)
	}
	if recipient == "" {
		return fmt.Errorf("%w: recipient required", ErrValidation)
	}
	if tokenIn.Denom == tokenOut.Denom {
		return fmt.Errorf("%w: token in and token out must differ", ErrValidation)
	}
	if !tokenIn.Amount.IsPositive() {
		return fmt.Errorf("%w: token in amount must be positive", ErrValidation)
	}
	if tokenOut.Amount.IsNegative() {
		return fmt.Errorf("%w: token out amount cannot be negative", ErrValidation)
	}
	return nil
}

func (m LeftSwapRequest) ValidateBasic() error {
	if err := validateSwapRequest(m.Sender, m.Recipient, m.TokenIn, m.TokenOut); err != nil {
		return err
	}
	if m.Slippage == 0 {
		return fmt.Errorf("%w: slippage must be positive", ErrValidation)
	}
	return nil
}

func (m RightSwapRequest) ValidateBasic() error {
	if err := validateSwapRequest(m.Sender, m.Recipient, m.TokenIn, m.TokenOut); err != nil {
		return err
	}
	if m.Slippage == 0 {
		return fmt.Errorf("%w: slippage must be positive", ErrValidation)
	}
	if !m.TokenOut.Amount.IsPositive() {
		return fmt.Errorf("%w: right swap requires a positive output amount", ErrValidation)
	}
	return nil
}

// ParseWeightPair parses "a:b" into two integers, each in [1,99]. Exported
// so the keeper's CreatePool handlers (recv and ack) can reconstruct the
// same PoolAsset weights the Delegator validated.
func ParseWeightPair(weight string) (int32, int32, error) {
	return parseWeightPair(weight)
}

// parseWeightPair parses "a:b" into two integers.
func parseWeightPair(weight string) (int32, int32, error) {
	var a, b int32
	n, err := fmt.Sscanf(weight, "%d:%d", &a, &b)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("%w: malformed weight %q, want \"a:b\"", ErrValidation, weight)
	}
	if a < 1 || a > 99 || b < 1 || b > 99 {
		return 0, 0, fmt.Errorf("%w: weights must each be in [1,99]", ErrValidation)
	}
	return a, b, nil
}
