// internal/monitor/curve.go
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

// DefaultInterval is the polling interval used when none is given.
const DefaultInterval = 2 * time.Second

// SnapshotSource reads a consistent global + curve pair for a mint.
type SnapshotSource interface {
	Snapshot(ctx context.Context, mint solana.PublicKey) (pumpfun.MarketState, error)
}

// Update is delivered to the callback after every successful poll.
type Update struct {
	Mint      solana.PublicKey
	State     pumpfun.MarketState
	MarketCap uint64 // lamports
	// InitialMarketCap is the market cap seen by the first poll.
	InitialMarketCap uint64
	// PercentChange of the market cap since the first poll, two decimals.
	PercentChange decimal.Decimal
	At            time.Time
}

// UpdateCallback is called from the monitor goroutine.
type UpdateCallback func(Update)

// CurveMonitor polls a bonding curve until the context ends or the curve
// completes.
type CurveMonitor struct {
	source   SnapshotSource
	mint     solana.PublicKey
	interval time.Duration
	logger   *zap.Logger
	callback UpdateCallback

	initialMarketCap uint64
	started          bool
}

// NewCurveMonitor creates a monitor for mint. A non-positive interval falls
// back to DefaultInterval.
func NewCurveMonitor(source SnapshotSource, mint solana.PublicKey, interval time.Duration,
	logger *zap.Logger, callback UpdateCallback) *CurveMonitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurveMonitor{
		source:   source,
		mint:     mint,
		interval: interval,
		logger:   logger.Named("monitor"),
		callback: callback,
	}
}

// Run polls immediately and then on every tick. It returns nil once the
// curve reports complete, ctx.Err() on cancellation, and the error itself
// when the bonding curve account does not exist. Other read errors are
// logged and polling continues.
func (m *CurveMonitor) Run(ctx context.Context) error {
	m.logger.Info("Starting curve monitor",
		zap.String("mint", m.mint.String()),
		zap.Duration("interval", m.interval))

	done, err := m.poll(ctx)
	if err != nil || done {
		return err
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("Curve monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			if done, err := m.poll(ctx); err != nil || done {
				return err
			}
		}
	}
}

func (m *CurveMonitor) poll(ctx context.Context) (bool, error) {
	state, err := m.source.Snapshot(ctx, m.mint)
	switch {
	case err == nil:
	case errors.Is(err, pumpfun.ErrAccountNotFound):
		return false, err
	case ctx.Err() != nil:
		return false, ctx.Err()
	default:
		m.logger.Warn("Failed to read bonding curve", zap.Error(err))
		return false, nil
	}

	update, err := m.newUpdate(state)
	if err != nil {
		return false, fmt.Errorf("price curve %s: %w", m.mint, err)
	}
	if m.callback != nil {
		m.callback(update)
	}

	if state.Curve.Complete {
		m.logger.Info("Bonding curve complete", zap.String("mint", m.mint.String()))
		return true, nil
	}
	return false, nil
}

func (m *CurveMonitor) newUpdate(state pumpfun.MarketState) (Update, error) {
	mcap, err := pricing.MarketCapSol(state.Curve)
	if err != nil {
		return Update{}, err
	}
	if !m.started {
		m.initialMarketCap = mcap
		m.started = true
	}

	return Update{
		Mint:             m.mint,
		State:            state,
		MarketCap:        mcap,
		InitialMarketCap: m.initialMarketCap,
		PercentChange:    PercentChange(m.initialMarketCap, mcap),
		At:               time.Now(),
	}, nil
}

// PercentChange returns (current-initial)/initial*100 truncated to two
// decimals, or zero when initial is zero.
func PercentChange(initial, current uint64) decimal.Decimal {
	if initial == 0 {
		return decimal.Zero
	}
	from := decimal.NewFromUint64(initial)
	delta := decimal.NewFromUint64(current).Sub(from)
	return delta.Mul(decimal.NewFromInt(100)).Div(from).Truncate(2)
}
