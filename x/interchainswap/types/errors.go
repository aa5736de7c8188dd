package types

import (
	"cosmossdk.io/errors"
)

// Sentinel errors for the interchainswap module, one per error kind in §7.
var (
	ErrValidation          = errors.Register(ModuleName, 1, "validation error")
	ErrPoolNotFound        = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists   = errors.Register(ModuleName, 3, "pool already exists")
	ErrInvalidState        = errors.Register(ModuleName, 4, "pool not in required state")
	ErrInsufficientBalance = errors.Register(ModuleName, 5, "insufficient balance")
	ErrSignatureInvalid    = errors.Register(ModuleName, 6, "signature invalid")
	ErrSequenceMismatch    = errors.Register(ModuleName, 7, "sequence mismatch")
	ErrMathDomain          = errors.Register(ModuleName, 8, "math domain error")
	ErrSlippageExceeded    = errors.Register(ModuleName, 9, "slippage exceeded")
	ErrInvalidPacket       = errors.Register(ModuleName, 10, "invalid packet")
)
