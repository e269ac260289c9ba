// pkg/pumpfun/pricing/errors.go
package pricing

import (
	"errors"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
)

var (
	// ErrCurveComplete is returned for trades against a migrated curve.
	ErrCurveComplete = errors.New("bonding curve is complete")
	// ErrInvalidSlippage is returned for slippage above 100%.
	ErrInvalidSlippage = errors.New("slippage basis points must not exceed 10000")
	// ErrInvalidFee is returned for fee basis points above 100%.
	ErrInvalidFee = errors.New("fee basis points must not exceed 10000")
	// ErrArithmeticOverflow is returned when a result does not fit its integer type.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrArithmeticUnderflow is returned when a subtraction would go negative.
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")
	// ErrZeroReserves is returned for curves with an empty virtual reserve.
	ErrZeroReserves = accounts.ErrZeroReserves
)
