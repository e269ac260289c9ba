// pkg/pumpfun/instructions/decode.go
package instructions

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// ErrUnknownInstruction is returned when data does not start with the
// expected discriminator.
var ErrUnknownInstruction = errors.New("unknown instruction discriminator")

// DecodeBuy parses buy instruction data.
func DecodeBuy(data []byte) (BuyArgs, error) {
	var args BuyArgs
	if err := decode(data, BuyDiscriminator, &args); err != nil {
		return BuyArgs{}, fmt.Errorf("decode buy: %w", err)
	}
	return args, nil
}

// DecodeSell parses sell instruction data.
func DecodeSell(data []byte) (SellArgs, error) {
	var args SellArgs
	if err := decode(data, SellDiscriminator, &args); err != nil {
		return SellArgs{}, fmt.Errorf("decode sell: %w", err)
	}
	return args, nil
}

// DecodeCreate parses create instruction data.
func DecodeCreate(data []byte) (CreateArgs, error) {
	var args CreateArgs
	if err := decode(data, CreateDiscriminator, &args); err != nil {
		return CreateArgs{}, fmt.Errorf("decode create: %w", err)
	}
	return args, nil
}

func decode(data []byte, want [8]byte, into interface{}) error {
	if len(data) < len(want) || string(data[:len(want)]) != string(want[:]) {
		return ErrUnknownInstruction
	}
	dec := bin.NewBorshDecoder(data[len(want):])
	if err := dec.Decode(into); err != nil {
		return err
	}
	if dec.Remaining() != 0 {
		return fmt.Errorf("%d trailing bytes", dec.Remaining())
	}
	return nil
}
