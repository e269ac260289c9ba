// Package units converts between on-chain integer amounts and decimal
// amounts shown to users.
package units

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// SolDecimals is the number of decimals of SOL (lamports per SOL = 10^9).
	SolDecimals int32 = 9
	// TokenDecimals is the number of decimals of every Pump.fun token.
	TokenDecimals int32 = 6
)

// ErrInvalidAmount is returned for amounts that cannot be represented on chain.
var ErrInvalidAmount = errors.New("invalid amount")

// LamportsToSol returns lamports as a SOL amount.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return FromRaw(lamports, SolDecimals)
}

// SolToLamports parses a SOL amount such as "0.25" into lamports.
func SolToLamports(sol string) (uint64, error) {
	return ParseRaw(sol, SolDecimals)
}

// TokensToUI returns a raw token amount in whole tokens.
func TokensToUI(raw uint64) decimal.Decimal {
	return FromRaw(raw, TokenDecimals)
}

// UIToTokens parses a whole-token amount into base units.
func UIToTokens(amount string) (uint64, error) {
	return ParseRaw(amount, TokenDecimals)
}

// FromRaw scales an integer amount down by decimals.
func FromRaw(raw uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -decimals)
}

// ParseRaw parses a decimal string and scales it up by decimals. The result
// must be a non-negative integer that fits in a u64.
func ParseRaw(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidAmount, s, decimals)
	}
	b := scaled.BigInt()
	if !b.IsUint64() {
		return 0, fmt.Errorf("%w: %q overflows u64", ErrInvalidAmount, s)
	}
	return b.Uint64(), nil
}
