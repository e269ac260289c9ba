// ==============================================
// File: pkg/pumpfun/accounts/bonding_curve.go
// ==============================================
package accounts

import (
	"errors"
	"fmt"
)

// BondingCurveSize is the exact length of a bonding curve account.
const BondingCurveSize = discriminatorLen + 5*8 + 1

// ErrZeroReserves is returned for curves that cannot be priced.
var ErrZeroReserves = errors.New("bonding curve has zero virtual reserves")

// BondingCurve is a snapshot of the per-mint curve account. Virtual reserves
// shape the price, real reserves are what the curve actually holds.
type BondingCurve struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	// Complete is terminal: the curve has migrated and no longer trades.
	Complete bool
}

// DecodeBondingCurve decodes the raw bonding curve account.
func DecodeBondingCurve(data []byte) (BondingCurve, error) {
	if err := checkLength("bonding curve account", data, BondingCurveSize); err != nil {
		return BondingCurve{}, err
	}

	r := newReader(data)
	r.discriminator(BondingCurveDiscriminator)
	c := BondingCurve{
		VirtualTokenReserves: r.u64("virtual_token_reserves"),
		VirtualSolReserves:   r.u64("virtual_sol_reserves"),
		RealTokenReserves:    r.u64("real_token_reserves"),
		RealSolReserves:      r.u64("real_sol_reserves"),
		TokenTotalSupply:     r.u64("token_total_supply"),
		Complete:             r.boolean("complete"),
	}
	if r.err != nil {
		return BondingCurve{}, r.err
	}
	return c, nil
}

// Encode serializes c in the on-chain layout.
func (c BondingCurve) Encode() []byte {
	w := newWriter(BondingCurveSize, BondingCurveDiscriminator)
	w.u64(c.VirtualTokenReserves)
	w.u64(c.VirtualSolReserves)
	w.u64(c.RealTokenReserves)
	w.u64(c.RealSolReserves)
	w.u64(c.TokenTotalSupply)
	w.boolean(c.Complete)
	return w.buf
}

// Validate checks that the curve can be priced.
func (c BondingCurve) Validate() error {
	if c.VirtualTokenReserves == 0 || c.VirtualSolReserves == 0 {
		return fmt.Errorf("%w: virtual_token_reserves=%d virtual_sol_reserves=%d",
			ErrZeroReserves, c.VirtualTokenReserves, c.VirtualSolReserves)
	}
	return nil
}

func (c BondingCurve) String() string {
	return fmt.Sprintf("BondingCurve{VirtualTokenReserves: %d, VirtualSolReserves: %d, RealTokenReserves: %d, RealSolReserves: %d, TokenTotalSupply: %d, Complete: %t}",
		c.VirtualTokenReserves, c.VirtualSolReserves, c.RealTokenReserves, c.RealSolReserves, c.TokenTotalSupply, c.Complete)
}
