// =============================
// File: pkg/pumpfun/pricing/pricing.go
// =============================

// Package pricing quotes trades against a Pump.fun bonding curve.
//
// The curve is a constant product over the virtual reserves. All arithmetic
// is integer only: products are computed in big integers bounded to 128 bits
// and narrowed back to u64. The k/(reserve+amount) term is rounded up so that
// trade outputs are always rounded down.
package pricing

import (
	"math/big"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
)

const (
	// BasisPoints is 100% expressed in basis points.
	BasisPoints uint64 = 10_000
	// DefaultSlippageBps is the slippage used when the caller gives none.
	DefaultSlippageBps uint64 = 500
)

// BuyQuote is the outcome of spending SolAmount lamports on the curve.
type BuyQuote struct {
	SolAmount   uint64
	Fee         uint64
	NetSol      uint64
	TokenAmount uint64
	// MaxSolCost is the slippage-adjusted bound passed to the buy instruction.
	MaxSolCost uint64
}

// SellQuote is the outcome of selling TokenAmount tokens to the curve.
type SellQuote struct {
	TokenAmount uint64
	GrossSol    uint64
	Fee         uint64
	NetSol      uint64
	// MinSolOutput is the slippage-adjusted bound passed to the sell instruction.
	MinSolOutput uint64
}

// QuoteBuy prices spending solAmount lamports (fee included) on curve.
func QuoteBuy(curve accounts.BondingCurve, feeBps, solAmount, slippageBps uint64) (BuyQuote, error) {
	if err := precheck(curve, slippageBps); err != nil {
		return BuyQuote{}, err
	}

	fee, err := Fee(solAmount, feeBps)
	if err != nil {
		return BuyQuote{}, err
	}
	net := solAmount - fee

	vt, vs := u(curve.VirtualTokenReserves), u(curve.VirtualSolReserves)
	k, err := constantProduct(curve)
	if err != nil {
		return BuyQuote{}, err
	}
	newVs, err := add(vs, u(net))
	if err != nil {
		return BuyQuote{}, err
	}
	newVt := div(k, newVs, RoundUp)
	out, err := sub(vt, newVt)
	if err != nil {
		return BuyQuote{}, err
	}
	out = minBig(out, u(curve.RealTokenReserves))

	tokens, err := toUint64(out)
	if err != nil {
		return BuyQuote{}, err
	}
	maxCost, err := MaxSolCost(solAmount, slippageBps)
	if err != nil {
		return BuyQuote{}, err
	}

	return BuyQuote{
		SolAmount:   solAmount,
		Fee:         fee,
		NetSol:      net,
		TokenAmount: tokens,
		MaxSolCost:  maxCost,
	}, nil
}

// QuoteSell prices selling tokenAmount tokens to curve.
func QuoteSell(curve accounts.BondingCurve, feeBps, tokenAmount, slippageBps uint64) (SellQuote, error) {
	if err := precheck(curve, slippageBps); err != nil {
		return SellQuote{}, err
	}
	if feeBps > BasisPoints {
		return SellQuote{}, ErrInvalidFee
	}

	vt, vs := u(curve.VirtualTokenReserves), u(curve.VirtualSolReserves)
	k, err := constantProduct(curve)
	if err != nil {
		return SellQuote{}, err
	}
	newVt, err := add(vt, u(tokenAmount))
	if err != nil {
		return SellQuote{}, err
	}
	newVs := div(k, newVt, RoundUp)
	out, err := sub(vs, newVs)
	if err != nil {
		return SellQuote{}, err
	}
	out = minBig(out, u(curve.RealSolReserves))

	gross, err := toUint64(out)
	if err != nil {
		return SellQuote{}, err
	}
	fee, err := Fee(gross, feeBps)
	if err != nil {
		return SellQuote{}, err
	}
	net := gross - fee
	minOut, err := MinSolOutput(net, slippageBps)
	if err != nil {
		return SellQuote{}, err
	}

	return SellQuote{
		TokenAmount:  tokenAmount,
		GrossSol:     gross,
		Fee:          fee,
		NetSol:       net,
		MinSolOutput: minOut,
	}, nil
}

// Fee returns floor(amount * feeBps / 10000).
func Fee(amount, feeBps uint64) (uint64, error) {
	if feeBps > BasisPoints {
		return 0, ErrInvalidFee
	}
	v, err := mulDiv(u(amount), u(feeBps), bigBasisPts, RoundDown)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// MaxSolCost returns ceil(amount * (10000 + slippageBps) / 10000).
func MaxSolCost(amount, slippageBps uint64) (uint64, error) {
	if slippageBps > BasisPoints {
		return 0, ErrInvalidSlippage
	}
	v, err := mulDiv(u(amount), u(BasisPoints+slippageBps), bigBasisPts, RoundUp)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// MinSolOutput returns floor(amount * (10000 - slippageBps) / 10000).
func MinSolOutput(amount, slippageBps uint64) (uint64, error) {
	if slippageBps > BasisPoints {
		return 0, ErrInvalidSlippage
	}
	v, err := mulDiv(u(amount), u(BasisPoints-slippageBps), bigBasisPts, RoundDown)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// precheck runs the checks shared by every quote, in order.
func precheck(curve accounts.BondingCurve, slippageBps uint64) error {
	if curve.Complete {
		return ErrCurveComplete
	}
	if slippageBps > BasisPoints {
		return ErrInvalidSlippage
	}
	return curve.Validate()
}

func constantProduct(curve accounts.BondingCurve) (*big.Int, error) {
	return mul(u(curve.VirtualTokenReserves), u(curve.VirtualSolReserves))
}
