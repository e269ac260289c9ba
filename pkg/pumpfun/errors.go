// =============================
// File: pkg/pumpfun/errors.go
// =============================
package pumpfun

import (
	"errors"
	"fmt"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pda"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

var (
	// ErrMarketplacePaused is returned for trades while the global account
	// is not initialized.
	ErrMarketplacePaused = errors.New("marketplace is paused")
	// ErrAccountNotFound is returned by a Chain for accounts that do not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoSigner is returned for operations that need a signer on a
	// read-only client.
	ErrNoSigner = errors.New("client has no signer")
	// ErrZeroTradeAmount is returned when a trade would move no tokens.
	ErrZeroTradeAmount = errors.New("trade amount is zero")
)

// Core errors, re-exported so callers only need this package.
var (
	ErrInvalidAccountData  = accounts.ErrInvalidAccountData
	ErrCurveComplete       = pricing.ErrCurveComplete
	ErrInvalidSlippage     = pricing.ErrInvalidSlippage
	ErrInvalidFee          = pricing.ErrInvalidFee
	ErrZeroReserves        = pricing.ErrZeroReserves
	ErrArithmeticOverflow  = pricing.ErrArithmeticOverflow
	ErrArithmeticUnderflow = pricing.ErrArithmeticUnderflow
	ErrInvalidSeeds        = pda.ErrInvalidSeeds
	ErrNoValidAddressFound = pda.ErrNoValidAddressFound
)

// TransportError wraps a failure of the chain collaborator.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err came from the chain collaborator.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
