// =============================
// File: pkg/pumpfun/client.go
// =============================
package pumpfun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/metadata"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pda"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

// Chain reads accounts and submits transactions.
type Chain interface {
	// GetAccountData returns the raw account data, or an error wrapping
	// ErrAccountNotFound when the account does not exist.
	GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
	GetRecentBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Signer signs transactions for the trading wallet.
type Signer interface {
	PublicKey() solana.PublicKey
	// SignTransaction signs tx with the wallet key and any extra keys.
	SignTransaction(tx *solana.Transaction, extra ...solana.PrivateKey) error
}

// Confirmer waits until a submitted transaction is confirmed.
type Confirmer interface {
	WaitForConfirmation(ctx context.Context, sig solana.Signature) error
}

// MarketState is a consistent pair of global and curve snapshots.
type MarketState struct {
	Global       accounts.GlobalConfig
	Curve        accounts.BondingCurve
	BondingCurve solana.PublicKey
}

// Client sequences address derivation, account reads, pricing and
// transaction submission for the Pump.fun program.
type Client struct {
	chain     Chain
	signer    Signer
	uploader  metadata.Uploader
	confirmer Confirmer
	logger    *zap.Logger

	programID       solana.PublicKey
	computeUnits    uint32
	priorityFee     uint64
	retryMaxElapsed time.Duration
	newBackOff      func() backoff.BackOff
}

// NewClient creates a client. signer may be nil for a read-only client.
func NewClient(chain Chain, signer Signer, logger *zap.Logger, opts ...Option) (*Client, error) {
	if chain == nil {
		return nil, errors.New("pumpfun: chain is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		chain:           chain,
		signer:          signer,
		logger:          logger.Named("pumpfun"),
		programID:       pda.PumpFunProgramID,
		computeUnits:    DefaultComputeUnits,
		priorityFee:     DefaultPriorityFee,
		retryMaxElapsed: DefaultRetryMaxElapsed,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.uploader == nil {
		c.uploader = metadata.NewIPFSUploader("", nil, c.logger)
	}
	return c, nil
}

// ProgramID returns the program the client talks to.
func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// GlobalAddress returns the global config account.
func (c *Client) GlobalAddress() (solana.PublicKey, error) {
	addr, _, err := pda.GlobalAddress(c.programID)
	return addr, err
}

// MintAuthorityAddress returns the mint authority shared by curve tokens.
func (c *Client) MintAuthorityAddress() (solana.PublicKey, error) {
	addr, _, err := pda.MintAuthorityAddress(c.programID)
	return addr, err
}

// BondingCurveAddress returns the bonding curve account of mint.
func (c *Client) BondingCurveAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := pda.BondingCurveAddress(mint, c.programID)
	return addr, err
}

// MetadataAddress returns the Metaplex metadata account of mint.
func (c *Client) MetadataAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := pda.MetadataAddress(mint)
	return addr, err
}

// AssociatedTokenAddress returns the token account of owner for mint.
func (c *Client) AssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	return pda.DeriveAssociatedTokenAddress(owner, mint)
}

// GlobalConfig fetches and decodes the global account.
func (c *Client) GlobalConfig(ctx context.Context) (accounts.GlobalConfig, error) {
	addr, err := c.GlobalAddress()
	if err != nil {
		return accounts.GlobalConfig{}, err
	}
	data, err := c.fetch(ctx, "get global account", addr)
	if err != nil {
		return accounts.GlobalConfig{}, err
	}
	g, err := accounts.DecodeGlobalConfig(data)
	if err != nil {
		return accounts.GlobalConfig{}, fmt.Errorf("global account %s: %w", addr, err)
	}
	return g, nil
}

// BondingCurve fetches and decodes the bonding curve of mint.
func (c *Client) BondingCurve(ctx context.Context, mint solana.PublicKey) (accounts.BondingCurve, error) {
	addr, err := c.BondingCurveAddress(mint)
	if err != nil {
		return accounts.BondingCurve{}, err
	}
	return c.bondingCurveAt(ctx, addr)
}

func (c *Client) bondingCurveAt(ctx context.Context, addr solana.PublicKey) (accounts.BondingCurve, error) {
	data, err := c.fetch(ctx, "get bonding curve", addr)
	if err != nil {
		return accounts.BondingCurve{}, err
	}
	curve, err := accounts.DecodeBondingCurve(data)
	if err != nil {
		return accounts.BondingCurve{}, fmt.Errorf("bonding curve %s: %w", addr, err)
	}
	return curve, nil
}

// Snapshot fetches the global and curve accounts of mint concurrently.
func (c *Client) Snapshot(ctx context.Context, mint solana.PublicKey) (MarketState, error) {
	curveAddr, err := c.BondingCurveAddress(mint)
	if err != nil {
		return MarketState{}, err
	}

	state := MarketState{BondingCurve: curveAddr}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state.Global, err = c.GlobalConfig(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		state.Curve, err = c.bondingCurveAt(gctx, curveAddr)
		return err
	})
	if err := g.Wait(); err != nil {
		return MarketState{}, err
	}
	return state, nil
}

// QuoteBuy prices spending solAmount lamports on mint's curve.
func (c *Client) QuoteBuy(ctx context.Context, mint solana.PublicKey, solAmount, slippageBps uint64) (pricing.BuyQuote, error) {
	state, err := c.Snapshot(ctx, mint)
	if err != nil {
		return pricing.BuyQuote{}, err
	}
	return pricing.QuoteBuy(state.Curve, state.Global.FeeBasisPoints, solAmount, slippageBps)
}

// QuoteSell prices selling tokenAmount tokens to mint's curve.
func (c *Client) QuoteSell(ctx context.Context, mint solana.PublicKey, tokenAmount, slippageBps uint64) (pricing.SellQuote, error) {
	state, err := c.Snapshot(ctx, mint)
	if err != nil {
		return pricing.SellQuote{}, err
	}
	return pricing.QuoteSell(state.Curve, state.Global.FeeBasisPoints, tokenAmount, slippageBps)
}

// fetch reads one account, retrying transport failures.
func (c *Client) fetch(ctx context.Context, op string, addr solana.PublicKey) ([]byte, error) {
	return retry(ctx, c, op, func() ([]byte, error) {
		data, err := c.chain.GetAccountData(ctx, addr)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return nil, backoff.Permanent(fmt.Errorf("%s %s: %w", op, addr, err))
			}
			return nil, &TransportError{Op: op, Err: err}
		}
		return data, nil
	})
}

// retry runs op with exponential backoff bounded by the client's retry
// budget. Permanent errors are returned unwrapped.
func retry[T any](ctx context.Context, c *Client, name string, op backoff.Operation[T]) (T, error) {
	opts := []backoff.RetryOption{
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxElapsedTime(c.retryMaxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("Retrying after transport error",
				zap.String("op", name),
				zap.Duration("next", next),
				zap.Error(err))
		}),
	}
	if c.retryMaxElapsed <= 0 {
		opts = append(opts, backoff.WithMaxTries(1))
	}

	res, err := backoff.Retry(ctx, op, opts...)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return res, perm.Err
	}
	return res, err
}
