// =============================
// File: pkg/pumpfun/pda/pda.go
// =============================

// Package pda derives program-owned addresses for the Pump.fun program and
// the SPL programs it talks to. Everything here is pure and safe for
// concurrent use.
package pda

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

const (
	// MaxSeeds is the maximum number of seeds accepted by the runtime, bump included.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed in bytes.
	MaxSeedLen = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	// ErrInvalidSeeds is returned when the seed set exceeds runtime limits.
	ErrInvalidSeeds = errors.New("invalid seeds")
	// ErrOnCurve is returned by CreateProgramAddress when the candidate is a valid ed25519 point.
	ErrOnCurve = errors.New("derived address is on the ed25519 curve")
	// ErrNoValidAddressFound is returned when no bump yields an off-curve address.
	ErrNoValidAddressFound = errors.New("no valid program address found")
)

// IsOnCurve reports whether b decodes to a point on the ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != solana.PublicKeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress hashes seeds and the program id into an address.
// The result is rejected when it lands on the curve, since such an address
// could have a private key.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if err := validateSeeds(seeds, MaxSeeds); err != nil {
		return solana.PublicKey{}, err
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))
	sum := h.Sum(nil)

	if IsOnCurve(sum) {
		return solana.PublicKey{}, ErrOnCurve
	}
	return solana.PublicKeyFromBytes(sum), nil
}

// FindProgramAddress searches bump values from 255 down to 1 and returns the
// first off-curve address together with its bump.
func FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	// the bump occupies one seed slot
	if err := validateSeeds(seeds, MaxSeeds-1); err != nil {
		return solana.PublicKey{}, 0, err
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{0}
	withBump[len(seeds)] = bump

	for b := 255; b > 0; b-- {
		bump[0] = uint8(b)
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(b), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return solana.PublicKey{}, 0, err
		}
	}
	return solana.PublicKey{}, 0, ErrNoValidAddressFound
}

func validateSeeds(seeds [][]byte, maxSeeds int) error {
	if len(seeds) > maxSeeds {
		return fmt.Errorf("%w: %d seeds, max %d", ErrInvalidSeeds, len(seeds), maxSeeds)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return fmt.Errorf("%w: seed %d is %d bytes, max %d", ErrInvalidSeeds, i, len(seed), MaxSeedLen)
		}
	}
	return nil
}
