// internal/monitor/curve_test.go
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

// scriptedSource replays results in order and repeats the last one.
type scriptedSource struct {
	mu     sync.Mutex
	states []pumpfun.MarketState
	errs   []error
	calls  int
}

func (s *scriptedSource) Snapshot(_ context.Context, _ solana.PublicKey) (pumpfun.MarketState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	if i >= len(s.states) {
		i = len(s.states) - 1
	}
	s.calls++

	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.states[i], err
}

func freshState() pumpfun.MarketState {
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

func afterBuy(t *testing.T, state pumpfun.MarketState, lamports uint64) pumpfun.MarketState {
	t.Helper()
	q, err := pricing.QuoteBuy(state.Curve, state.Global.FeeBasisPoints, lamports, 0)
	require.NoError(t, err)
	state.Curve, err = pricing.ApplyBuy(state.Curve, q)
	require.NoError(t, err)
	return state
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		initial, current uint64
		want             string
	}{
		{100, 150, "50"},
		{200, 100, "-50"},
		{3, 4, "33.33"},
		{0, 5, "0"},
		{7, 7, "0"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_to_%d", tt.initial, tt.current), func(t *testing.T) {
			assert.Equal(t, tt.want, PercentChange(tt.initial, tt.current).String())
		})
	}
}

func TestCurveMonitorReportsChanges(t *testing.T) {
	start := freshState()
	bought := afterBuy(t, start, 1_000_000_000)
	source := &scriptedSource{states: []pumpfun.MarketState{start, bought}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var updates []Update
	m := NewCurveMonitor(source, solana.NewWallet().PublicKey(), time.Millisecond, zaptest.NewLogger(t),
		func(u Update) {
			updates = append(updates, u)
			if len(updates) == 3 {
				cancel()
			}
		})

	err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, updates, 3)

	assert.Equal(t, uint64(27_958_993_476), updates[0].MarketCap)
	assert.True(t, updates[0].PercentChange.IsZero())

	assert.Equal(t, updates[0].MarketCap, updates[1].InitialMarketCap)
	assert.Greater(t, updates[1].MarketCap, updates[0].MarketCap)
	assert.True(t, updates[1].PercentChange.IsPositive())
	assert.Equal(t, updates[1].PercentChange, updates[2].PercentChange)
}

func TestCurveMonitorStopsWhenComplete(t *testing.T) {
	done := freshState()
	done.Curve.Complete = true
	source := &scriptedSource{states: []pumpfun.MarketState{freshState(), done}}

	var updates []Update
	m := NewCurveMonitor(source, solana.NewWallet().PublicKey(), time.Millisecond, zaptest.NewLogger(t),
		func(u Update) { updates = append(updates, u) })

	require.NoError(t, m.Run(context.Background()))
	require.Len(t, updates, 2)
	assert.True(t, updates[1].State.Curve.Complete)
}

func TestCurveMonitorSkipsTransientErrors(t *testing.T) {
	done := freshState()
	done.Curve.Complete = true
	source := &scriptedSource{
		states: []pumpfun.MarketState{{}, done},
		errs:   []error{&pumpfun.TransportError{Op: "get account", Err: errors.New("timeout")}},
	}

	var updates []Update
	m := NewCurveMonitor(source, solana.NewWallet().PublicKey(), time.Millisecond, zaptest.NewLogger(t),
		func(u Update) { updates = append(updates, u) })

	require.NoError(t, m.Run(context.Background()))
	assert.Len(t, updates, 1)
	assert.Equal(t, 2, source.calls)
}

func TestCurveMonitorMissingCurve(t *testing.T) {
	source := &scriptedSource{
		states: []pumpfun.MarketState{{}},
		errs:   []error{fmt.Errorf("bonding curve: %w", pumpfun.ErrAccountNotFound)},
	}

	m := NewCurveMonitor(source, solana.NewWallet().PublicKey(), time.Millisecond, nil, nil)
	err := m.Run(context.Background())
	assert.ErrorIs(t, err, pumpfun.ErrAccountNotFound)
	assert.Equal(t, 1, source.calls)
}

func TestNewCurveMonitorDefaults(t *testing.T) {
	m := NewCurveMonitor(&scriptedSource{}, solana.PublicKey{}, 0, nil, nil)
	assert.Equal(t, DefaultInterval, m.interval)
	assert.NotNil(t, m.logger)
}
