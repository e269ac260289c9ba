// pkg/pumpfun/options.go
package pumpfun

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/metadata"
)

const (
	DefaultComputeUnits uint32 = 200_000

	// DefaultPriorityFee is in micro-lamports per compute unit.
	DefaultPriorityFee uint64 = 5_000
)

const DefaultRetryMaxElapsed = 15 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithProgramID targets a Pump.fun deployment other than mainnet.
func WithProgramID(id solana.PublicKey) Option {
	return func(c *Client) {
		c.programID = id
	}
}

// WithUploader replaces the default IPFS uploader used by Create.
func WithUploader(u metadata.Uploader) Option {
	return func(c *Client) {
		c.uploader = u
	}
}

// WithComputeBudget sets the compute unit limit and priority fee of every
// transaction. Zero leaves the corresponding instruction out.
func WithComputeBudget(units uint32, microLamports uint64) Option {
	return func(c *Client) {
		c.computeUnits = units
		c.priorityFee = microLamports
	}
}

// WithRetry bounds the total time spent retrying transport failures.
// Zero disables retries.
func WithRetry(maxElapsed time.Duration) Option {
	return func(c *Client) {
		c.retryMaxElapsed = maxElapsed
	}
}

// WithConfirmer makes trades wait for confirmation after submission.
func WithConfirmer(cf Confirmer) Option {
	return func(c *Client) {
		c.confirmer = cf
	}
}
