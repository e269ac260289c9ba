// =============================
// File: pkg/pumpfun/pricing/math.go
// =============================
package pricing

import (
	"fmt"
	"math"
	"math/big"
)

// Rounding selects the direction of integer division.
type Rounding int

const (
	RoundDown Rounding = iota
	RoundUp
)

var (
	bigOne        = big.NewInt(1)
	bigBasisPts   = new(big.Int).SetUint64(BasisPoints)
	bigMaxUint64  = new(big.Int).SetUint64(math.MaxUint64)
	bigMaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 128), bigOne)
)

func u(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// checked keeps every intermediate inside the unsigned 128-bit range.
func checked(v *big.Int) (*big.Int, error) {
	if v.Sign() < 0 {
		return nil, ErrArithmeticUnderflow
	}
	if v.Cmp(bigMaxUint128) > 0 {
		return nil, fmt.Errorf("%w: intermediate %s exceeds 128 bits", ErrArithmeticOverflow, v)
	}
	return v, nil
}

func add(a, b *big.Int) (*big.Int, error) {
	return checked(new(big.Int).Add(a, b))
}

func sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, fmt.Errorf("%w: %s - %s", ErrArithmeticUnderflow, a, b)
	}
	return new(big.Int).Sub(a, b), nil
}

func mul(a, b *big.Int) (*big.Int, error) {
	return checked(new(big.Int).Mul(a, b))
}

// mulDiv computes x*y/d with the requested rounding.
func mulDiv(x, y, d *big.Int, r Rounding) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, fmt.Errorf("%w: division by zero", ErrArithmeticOverflow)
	}
	prod, err := mul(x, y)
	if err != nil {
		return nil, err
	}
	return div(prod, d, r), nil
}

func div(n, d *big.Int, r Rounding) *big.Int {
	q, m := new(big.Int).QuoRem(n, d, new(big.Int))
	if r == RoundUp && m.Sign() != 0 {
		q.Add(q, bigOne)
	}
	return q
}

func toUint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 {
		return 0, ErrArithmeticUnderflow
	}
	if v.Cmp(bigMaxUint64) > 0 {
		return 0, fmt.Errorf("%w: %s does not fit in u64", ErrArithmeticOverflow, v)
	}
	return v.Uint64(), nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}
