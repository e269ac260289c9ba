// pkg/blockchain/solana/client.go
package solana

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
)

var (
	// ErrConfirmationTimeout is returned when a transaction is not confirmed in time.
	ErrConfirmationTimeout = errors.New("confirmation timeout")
	// ErrTransactionFailed is returned when a confirmed transaction carries an error.
	ErrTransactionFailed = errors.New("transaction failed")
)

const (
	defaultPollInterval        = 500 * time.Millisecond
	defaultConfirmationTimeout = 30 * time.Second
)

var (
	_ pumpfun.Chain     = (*Client)(nil)
	_ pumpfun.Confirmer = (*Client)(nil)
)

// Client is the RPC side of the SDK. It spreads requests over a pool of
// endpoints.
type Client struct {
	rpcPool    *RPCPool
	logger     *zap.Logger
	commitment rpc.CommitmentType

	pollInterval        time.Duration
	confirmationTimeout time.Duration
}

// NewClient creates a client over rpcList. Endpoints that do not answer a
// health check are dropped; it fails when none answer.
func NewClient(rpcList []string, logger *zap.Logger) (*Client, error) {
	return NewClientWithContext(context.Background(), rpcList, logger)
}

// NewClientWithContext is NewClient with a context for the health checks.
func NewClientWithContext(ctx context.Context, rpcList []string, logger *zap.Logger) (*Client, error) {
	if len(rpcList) == 0 {
		return nil, errors.New("empty RPC list")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, rpcURL := range rpcList {
		u, err := url.Parse(rpcURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.New("invalid RPC URL: " + rpcURL)
		}
	}

	c := &Client{
		rpcPool:             NewRPCPool(rpcList, logger),
		logger:              logger.Named("rpc"),
		commitment:          rpc.CommitmentConfirmed,
		pollInterval:        defaultPollInterval,
		confirmationTimeout: defaultConfirmationTimeout,
	}

	healthy := c.rpcPool.PerformHealthChecks(ctx)
	if healthy == 0 {
		return nil, fmt.Errorf("none of %d RPC endpoints answered", len(rpcList))
	}
	if healthy < len(rpcList) {
		c.logger.Warn("Some RPC endpoints are unavailable",
			zap.Int("healthy", healthy),
			zap.Int("configured", len(rpcList)))
	}
	return c, nil
}

// SetConfirmationTimeout bounds WaitForConfirmation.
func (c *Client) SetConfirmationTimeout(d time.Duration) {
	c.confirmationTimeout = d
}

// GetAccountData returns the raw data of address. A missing account yields
// an error wrapping pumpfun.ErrAccountNotFound.
func (c *Client) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	res, err := c.rpcPool.GetClient().GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", address, pumpfun.ErrAccountNotFound)
		}
		return nil, err
	}
	return res.GetBinary(), nil
}

func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	rpcClient := c.rpcPool.GetClient()
	txHash, err := rpcClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       true,
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		c.logger.Error("Failed to send transaction", zap.Error(err))
		return solana.Signature{}, err
	}
	return txHash, nil
}

func (c *Client) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	rpcClient := c.rpcPool.GetClient()
	result, err := rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("Failed to get blockhash", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// WaitForConfirmation polls the signature status until the transaction is
// confirmed, fails or the confirmation timeout passes.
func (c *Client) WaitForConfirmation(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	timeout := time.After(c.confirmationTimeout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("%s: %w", sig, ErrConfirmationTimeout)
		case <-ticker.C:
			statuses, err := c.rpcPool.GetClient().GetSignatureStatuses(ctx, false, sig)
			if err != nil {
				c.logger.Warn("Error getting signature statuses", zap.Error(err))
				continue
			}
			if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
				continue
			}
			status := statuses.Value[0]
			if status.Err != nil {
				return fmt.Errorf("%s: %w: %v", sig, ErrTransactionFailed, status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusFinalized ||
				status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed {
				return nil
			}
		}
	}
}

// GetBalance returns the lamport balance of address.
func (c *Client) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	res, err := c.rpcPool.GetClient().GetBalance(ctx, address, c.commitment)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// GetTokenBalance returns the raw balance of a token account. A missing
// account has a zero balance.
func (c *Client) GetTokenBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	res, err := c.rpcPool.GetClient().GetTokenAccountBalance(ctx, account, c.commitment)
	if err != nil {
		if IsAccountNotFoundError(err) {
			return 0, nil
		}
		return 0, err
	}
	if res == nil || res.Value == nil {
		return 0, nil
	}
	amount, err := strconv.ParseUint(res.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token balance %q: %w", res.Value.Amount, err)
	}
	return amount, nil
}

// IsAccountNotFoundError reports whether err means the RPC node has no such
// account.
func IsAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) || errors.Is(err, pumpfun.ErrAccountNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "could not find account")
}
