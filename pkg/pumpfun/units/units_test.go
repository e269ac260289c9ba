package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolToLamports(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"1", 1_000_000_000},
		{"0.25", 250_000_000},
		{"0.000000001", 1},
		{"0", 0},
		{"18446744073.709551615", math.MaxUint64},
	}
	for _, tt := range tests {
		got, err := SolToLamports(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSolToLamportsRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "0.0000000001", "18446744073.709551616"} {
		_, err := SolToLamports(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestLamportsToSol(t *testing.T) {
	assert.Equal(t, "1.05", LamportsToSol(1_050_000_000).String())
	assert.Equal(t, "0.000000001", LamportsToSol(1).String())
	assert.Equal(t, "18446744073.709551615", LamportsToSol(math.MaxUint64).String())
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "34277831.558567", TokensToUI(34_277_831_558_567).String())

	raw, err := UIToTokens("34277831.558567")
	require.NoError(t, err)
	assert.Equal(t, uint64(34_277_831_558_567), raw)

	_, err = UIToTokens("1.0000001")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
