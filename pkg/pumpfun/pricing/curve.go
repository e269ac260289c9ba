// pkg/pumpfun/pricing/curve.go
package pricing

import (
	"fmt"
	"math/big"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
)

// tokenUnit is one whole token in base units (6 decimals).
const tokenUnit uint64 = 1_000_000

// BuyOutPrice returns the SOL amount, fee included, that buys at least
// tokenAmount tokens. tokenAmount is capped at the real token reserves.
func BuyOutPrice(curve accounts.BondingCurve, feeBps, tokenAmount uint64) (uint64, error) {
	if curve.Complete {
		return 0, ErrCurveComplete
	}
	if err := curve.Validate(); err != nil {
		return 0, err
	}
	if feeBps >= BasisPoints {
		return 0, ErrInvalidFee
	}
	if tokenAmount > curve.RealTokenReserves {
		tokenAmount = curve.RealTokenReserves
	}
	if tokenAmount == 0 {
		return 0, nil
	}

	net, err := netBuyCost(curve, tokenAmount)
	if err != nil {
		return 0, err
	}
	// gross up so that gross - floor(gross*fee/10000) >= net
	gross, err := mulDiv(net, bigBasisPts, u(BasisPoints-feeBps), RoundUp)
	if err != nil {
		return 0, err
	}
	return toUint64(gross)
}

// netBuyCost is the fee-free SOL the curve takes for tokenAmount tokens:
// ceil(vs * t / (vt - t)).
func netBuyCost(curve accounts.BondingCurve, tokenAmount uint64) (*big.Int, error) {
	remaining, err := sub(u(curve.VirtualTokenReserves), u(tokenAmount))
	if err != nil {
		return nil, err
	}
	if remaining.Sign() == 0 {
		return nil, fmt.Errorf("%w: buying %d tokens empties the virtual reserve", ErrArithmeticUnderflow, tokenAmount)
	}
	return mulDiv(u(curve.VirtualSolReserves), u(tokenAmount), remaining, RoundUp)
}

// MarketCapSol returns the curve's market cap in lamports:
// token_total_supply * vs / vt. It is zero for an empty token reserve.
func MarketCapSol(curve accounts.BondingCurve) (uint64, error) {
	if curve.VirtualTokenReserves == 0 {
		return 0, nil
	}
	v, err := mulDiv(u(curve.TokenTotalSupply), u(curve.VirtualSolReserves), u(curve.VirtualTokenReserves), RoundDown)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// FinalMarketCapSol returns the market cap once every remaining real token
// has been bought, i.e. at migration.
func FinalMarketCapSol(curve accounts.BondingCurve, feeBps uint64) (uint64, error) {
	buyOut, err := BuyOutPrice(curve, feeBps, curve.RealTokenReserves)
	if err != nil {
		return 0, err
	}
	vs, err := add(u(curve.VirtualSolReserves), u(buyOut))
	if err != nil {
		return 0, err
	}
	vt, err := sub(u(curve.VirtualTokenReserves), u(curve.RealTokenReserves))
	if err != nil {
		return 0, err
	}
	if vt.Sign() == 0 {
		return 0, fmt.Errorf("%w: no virtual tokens left after buy out", ErrArithmeticUnderflow)
	}
	v, err := mulDiv(u(curve.TokenTotalSupply), vs, vt, RoundDown)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// SpotPrice returns the marginal price in lamports per whole token.
func SpotPrice(curve accounts.BondingCurve) (uint64, error) {
	if err := curve.Validate(); err != nil {
		return 0, err
	}
	v, err := mulDiv(u(curve.VirtualSolReserves), u(tokenUnit), u(curve.VirtualTokenReserves), RoundDown)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// InitialBuyQuote quotes a buy against the curve a new token starts with,
// used to size the dev buy that accompanies a create.
func InitialBuyQuote(global accounts.GlobalConfig, solAmount, slippageBps uint64) (BuyQuote, error) {
	return QuoteBuy(global.NewBondingCurve(), global.FeeBasisPoints, solAmount, slippageBps)
}

// ApplyBuy returns curve after q has executed. The curve is marked complete
// once its real token reserve is exhausted. A quote clamped to the real
// token reserve only credits the net cost of the tokens it delivers, never
// more than q.NetSol.
func ApplyBuy(curve accounts.BondingCurve, q BuyQuote) (accounts.BondingCurve, error) {
	if curve.Complete {
		return curve, ErrCurveComplete
	}
	credited := q.NetSol
	if q.TokenAmount > 0 && q.TokenAmount == curve.RealTokenReserves {
		cost, err := netBuyCost(curve, q.TokenAmount)
		if err != nil {
			return curve, err
		}
		if cost.IsUint64() && cost.Uint64() < credited {
			credited = cost.Uint64()
		}
	}

	var err error
	next := curve
	if next.VirtualTokenReserves, err = subU64(curve.VirtualTokenReserves, q.TokenAmount); err != nil {
		return curve, err
	}
	if next.RealTokenReserves, err = subU64(curve.RealTokenReserves, q.TokenAmount); err != nil {
		return curve, err
	}
	if next.VirtualSolReserves, err = addU64(curve.VirtualSolReserves, credited); err != nil {
		return curve, err
	}
	if next.RealSolReserves, err = addU64(curve.RealSolReserves, credited); err != nil {
		return curve, err
	}
	next.Complete = next.RealTokenReserves == 0
	return next, nil
}

// ApplySell returns curve after q has executed. The fee leaves the curve
// together with the seller's proceeds.
func ApplySell(curve accounts.BondingCurve, q SellQuote) (accounts.BondingCurve, error) {
	if curve.Complete {
		return curve, ErrCurveComplete
	}
	var err error
	next := curve
	if next.VirtualTokenReserves, err = addU64(curve.VirtualTokenReserves, q.TokenAmount); err != nil {
		return curve, err
	}
	if next.RealTokenReserves, err = addU64(curve.RealTokenReserves, q.TokenAmount); err != nil {
		return curve, err
	}
	if next.VirtualSolReserves, err = subU64(curve.VirtualSolReserves, q.GrossSol); err != nil {
		return curve, err
	}
	if next.RealSolReserves, err = subU64(curve.RealSolReserves, q.GrossSol); err != nil {
		return curve, err
	}
	return next, nil
}

func addU64(a, b uint64) (uint64, error) {
	return toUint64(new(big.Int).Add(u(a), u(b)))
}

func subU64(a, b uint64) (uint64, error) {
	v, err := sub(u(a), u(b))
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}
