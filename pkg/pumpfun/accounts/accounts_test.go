package accounts

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAuthority    = solana.MustPublicKeyFromBase58("DCpJReAfonSrgohiQbTmKKbjbqVofspFRHz9yQikzooP")
	testFeeRecipient = solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")
)

func sampleGlobal() GlobalConfig {
	return GlobalConfig{
		Initialized:                 true,
		Authority:                   testAuthority,
		FeeRecipient:                testFeeRecipient,
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:            1_000_000_000_000_000,
		FeeBasisPoints:              100,
	}
}

func sampleCurve() BondingCurve {
	return BondingCurve{
		VirtualTokenReserves: 1_073_000_000_000_000,
		VirtualSolReserves:   30_000_000_000,
		RealTokenReserves:    793_100_000_000_000,
		RealSolReserves:      0,
		TokenTotalSupply:     1_000_000_000_000_000,
	}
}

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, [8]byte{167, 232, 232, 177, 200, 108, 114, 127}, GlobalDiscriminator)
	assert.Equal(t, [8]byte{23, 183, 248, 55, 96, 216, 172, 96}, BondingCurveDiscriminator)
}

func TestDecodeGlobalConfig(t *testing.T) {
	want := sampleGlobal()
	data := want.Encode()
	require.Len(t, data, GlobalConfigSize)
	assert.Equal(t, 113, GlobalConfigSize)

	got, err := DecodeGlobalConfig(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.Paused())

	// field offsets
	assert.Equal(t, byte(1), data[8])
	assert.Equal(t, testAuthority[:], data[9:41])
	assert.Equal(t, testFeeRecipient[:], data[41:73])
	assert.Equal(t, byte(100), data[105])
}

func TestDecodeBondingCurve(t *testing.T) {
	want := sampleCurve()
	want.Complete = true
	data := want.Encode()
	require.Len(t, data, BondingCurveSize)
	assert.Equal(t, 49, BondingCurveSize)

	got, err := DecodeBondingCurve(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, byte(1), data[48])
}

func TestDecodeRejectsBadLength(t *testing.T) {
	curve := sampleCurve().Encode()
	global := sampleGlobal().Encode()

	tests := []struct {
		name   string
		decode func([]byte) error
		data   []byte
	}{
		{"curve one byte short", decodeCurveErr, curve[:len(curve)-1]},
		{"curve one byte long", decodeCurveErr, append(append([]byte{}, curve...), 0)},
		{"curve empty", decodeCurveErr, nil},
		{"global one byte short", decodeGlobalErr, global[:len(global)-1]},
		{"global one byte long", decodeGlobalErr, append(append([]byte{}, global...), 0)},
		{"global empty", decodeGlobalErr, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.decode(tt.data), ErrInvalidAccountData)
		})
	}
}

func TestDecodeRejectsWrongDiscriminator(t *testing.T) {
	data := sampleCurve().Encode()
	data[0] ^= 0xff
	_, err := DecodeBondingCurve(data)
	assert.ErrorIs(t, err, ErrInvalidAccountData)

	// a global account is never accepted as a curve, even when truncated to fit
	_, err = DecodeBondingCurve(sampleGlobal().Encode()[:BondingCurveSize])
	assert.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestDecodeRejectsBadBool(t *testing.T) {
	curve := sampleCurve().Encode()
	curve[48] = 2
	_, err := DecodeBondingCurve(curve)
	assert.ErrorIs(t, err, ErrInvalidAccountData)

	global := sampleGlobal().Encode()
	global[8] = 0xff
	_, err = DecodeGlobalConfig(global)
	assert.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestPausedWhenUninitialized(t *testing.T) {
	g := sampleGlobal()
	g.Initialized = false

	got, err := DecodeGlobalConfig(g.Encode())
	require.NoError(t, err)
	assert.True(t, got.Paused())
}

func TestNewBondingCurve(t *testing.T) {
	c := sampleGlobal().NewBondingCurve()
	assert.Equal(t, sampleCurve(), c)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	c := sampleCurve()
	c.VirtualSolReserves = 0
	assert.ErrorIs(t, c.Validate(), ErrZeroReserves)

	c = sampleCurve()
	c.VirtualTokenReserves = 0
	assert.ErrorIs(t, c.Validate(), ErrZeroReserves)
}

func decodeCurveErr(b []byte) error {
	_, err := DecodeBondingCurve(b)
	return err
}

func decodeGlobalErr(b []byte) error {
	_, err := DecodeGlobalConfig(b)
	return err
}

func FuzzDecodeBondingCurve(f *testing.F) {
	f.Add(sampleCurve().Encode())
	f.Add([]byte{})
	f.Add(make([]byte, BondingCurveSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		c, err := DecodeBondingCurve(data)
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidAccountData)
			return
		}
		assert.Equal(t, data, c.Encode())
	})
}
