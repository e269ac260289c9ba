package main

import (
	"bytes"
	"context"
	"flag"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/pumpfun-sdk/internal/monitor"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), nil, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "usage: pumpfun")
	for name := range commands {
		assert.Contains(t, out.String(), name)
	}

	out.Reset()
	err = run(context.Background(), []string{"launch"}, &out)
	assert.EqualError(t, err, `unknown command "launch"`)
}

func TestRunValidatesFlagsBeforeConnecting(t *testing.T) {
	mint := solana.NewWallet().PublicKey().String()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"curve without mint", []string{"curve"}, "-mint is required"},
		{"bad mint", []string{"curve", "-mint", "not-a-key"}, "invalid mint"},
		{"buy without sol", []string{"buy", "-mint", mint}, "-sol is required"},
		{"buy bad sol", []string{"quote-buy", "-mint", mint, "-sol", "0.0000000001"}, "invalid amount"},
		{"sell without amount", []string{"sell", "-mint", mint}, "set exactly one of -tokens or -all"},
		{"sell both", []string{"sell", "-mint", mint, "-tokens", "1", "-all"}, "set exactly one of -tokens or -all"},
		{"quote-sell without tokens", []string{"quote-sell", "-mint", mint}, "-tokens is required"},
		{"create without metadata", []string{"create", "-name", "x"}, "invalid token metadata"},
		{"watch without mint", []string{"watch"}, "-mint is required"},
		{"watch bad interval", []string{"watch", "-mint", mint, "-interval", "soon"}, "invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSlippageFlag(t *testing.T) {
	c := &commonFlags{}
	bps, err := c.slippageBps(500)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), bps)

	c.slippage = "150"
	bps, err = c.slippageBps(500)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), bps)

	for _, bad := range []string{"10001", "-1", "1.5"} {
		c.slippage = bad
		_, err = c.slippageBps(500)
		assert.Error(t, err, bad)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1 SOL", formatSol(1_000_000_000))
	assert.Equal(t, "0.000000027 SOL", formatSol(27))
	assert.Equal(t, "34277831.558567", formatTokens(34_277_831_558_567))
	assert.Equal(t, "1%", formatBps(100))
}

func testState() pumpfun.MarketState {
	global := accounts.GlobalConfig{
		Initialized:                 true,
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:            1_000_000_000_000_000,
		FeeBasisPoints:              100,
	}
	return pumpfun.MarketState{Global: global, Curve: global.NewBondingCurve()}
}

func rowValue(rows []row, label string) (string, bool) {
	for _, r := range rows {
		if r.label == label {
			return r.value, true
		}
	}
	return "", false
}

func TestCurveRows(t *testing.T) {
	state := testState()
	rows := curveRows(state)

	price, ok := rowValue(rows, "price per token")
	require.True(t, ok)
	assert.Equal(t, "0.000000027 SOL", price)

	mcap, ok := rowValue(rows, "market cap")
	require.True(t, ok)
	assert.Equal(t, "27.958993476 SOL", mcap)

	progress, ok := rowValue(rows, "progress")
	require.True(t, ok)
	assert.Equal(t, "0%", progress)

	q, err := pricing.QuoteBuy(state.Curve, 100, 1_000_000_000, 500)
	require.NoError(t, err)
	state.Curve, err = pricing.ApplyBuy(state.Curve, q)
	require.NoError(t, err)

	progress, ok = rowValue(curveRows(state), "progress")
	require.True(t, ok)
	assert.Equal(t, "4.32%", progress)
}

func TestCurveRowsComplete(t *testing.T) {
	state := testState()
	state.Curve.Complete = true

	rows := curveRows(state)
	_, ok := rowValue(rows, "market cap")
	assert.False(t, ok)
	status, ok := rowValue(rows, "status")
	require.True(t, ok)
	assert.Contains(t, status, "complete")
}

func TestRenderRows(t *testing.T) {
	out := renderRows("Buy quote", []row{{"spend", "1 SOL"}, {"tokens out", "34277831.558567"}})
	assert.Contains(t, out, "Buy quote")
	assert.Contains(t, out, "spend")
	assert.Contains(t, out, "34277831.558567")
}

func TestWatchLine(t *testing.T) {
	state := testState()
	u := monitor.Update{
		State:         state,
		MarketCap:     27_958_993_476,
		PercentChange: monitor.PercentChange(100, 112),
		At:            time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}

	line := watchLine(u)
	assert.Contains(t, line, "12:30:00")
	assert.Contains(t, line, "27.958993476 SOL")
	assert.Contains(t, line, "+12.00%")
	assert.NotContains(t, line, "complete")

	u.State.Curve.Complete = true
	u.PercentChange = monitor.PercentChange(100, 90)
	line = watchLine(u)
	assert.Contains(t, line, "-10.00%")
	assert.Contains(t, line, "complete")
}
