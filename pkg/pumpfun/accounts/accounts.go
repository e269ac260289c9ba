// =============================================
// File: pkg/pumpfun/accounts/accounts.go
// =============================================

// Package accounts decodes Pump.fun program accounts into immutable snapshots.
package accounts

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ErrInvalidAccountData is returned for buffers that do not match an account layout.
var ErrInvalidAccountData = errors.New("invalid account data")

const discriminatorLen = 8

// Anchor account discriminators: sha256("account:<Name>")[:8].
var (
	GlobalDiscriminator       = accountDiscriminator("Global")
	BondingCurveDiscriminator = accountDiscriminator("BondingCurve")
)

func accountDiscriminator(name string) [discriminatorLen]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [discriminatorLen]byte
	copy(d[:], sum[:discriminatorLen])
	return d
}

// reader wraps a borsh decoder and keeps the first error, so decode
// functions can read a full layout and check once.
type reader struct {
	dec *bin.Decoder
	err error
}

func newReader(data []byte) *reader {
	return &reader{dec: bin.NewBorshDecoder(data)}
}

func (r *reader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidAccountData}, args...)...)
	}
}

func (r *reader) discriminator(want [discriminatorLen]byte) {
	if r.err != nil {
		return
	}
	got, err := r.dec.ReadNBytes(discriminatorLen)
	if err != nil {
		r.fail("read discriminator: %v", err)
		return
	}
	if string(got) != string(want[:]) {
		r.fail("unexpected discriminator %x", got)
	}
}

func (r *reader) u64(field string) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		r.fail("read %s: %v", field, err)
	}
	return v
}

func (r *reader) boolean(field string) bool {
	if r.err != nil {
		return false
	}
	b, err := r.dec.ReadByte()
	if err != nil {
		r.fail("read %s: %v", field, err)
		return false
	}
	switch b {
	case 0:
		return false
	case 1:
		return true
	}
	r.fail("%s holds %d, want 0 or 1", field, b)
	return false
}

func (r *reader) pubkey(field string) solana.PublicKey {
	if r.err != nil {
		return solana.PublicKey{}
	}
	b, err := r.dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		r.fail("read %s: %v", field, err)
		return solana.PublicKey{}
	}
	return solana.PublicKeyFromBytes(b)
}

func checkLength(name string, data []byte, want int) error {
	if len(data) != want {
		return fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidAccountData, name, len(data), want)
	}
	return nil
}

// writer is the encoding counterpart of reader.
type writer struct {
	buf []byte
}

func newWriter(size int, d [discriminatorLen]byte) *writer {
	w := &writer{buf: make([]byte, 0, size)}
	w.buf = append(w.buf, d[:]...)
	return w
}

func (w *writer) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *writer) boolean(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

func (w *writer) pubkey(k solana.PublicKey) {
	w.buf = append(w.buf, k[:]...)
}
