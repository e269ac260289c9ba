// =============================
// File: pkg/pumpfun/trade.go
// =============================
package pumpfun

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/accounts"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/instructions"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/metadata"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

// TradeResult describes a submitted buy or sell.
type TradeResult struct {
	Signature   solana.Signature
	Mint        solana.PublicKey
	TokenAmount uint64
	// SolAmount is the lamports spent on a buy or the net lamports
	// expected from a sell.
	SolAmount uint64
	// SolLimit is the max_sol_cost of a buy or the min_sol_output of a sell.
	SolLimit  uint64
	Fee       uint64
	Confirmed bool
}

// CreateResult describes a submitted token launch.
type CreateResult struct {
	Signature    solana.Signature
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	MetadataURI  string
	// InitialBuy is set when the launch included a dev buy.
	InitialBuy *pricing.BuyQuote
	Confirmed  bool
}

// Buy spends solAmount lamports, fee included, on mint's curve.
func (c *Client) Buy(ctx context.Context, mint solana.PublicKey, solAmount, slippageBps uint64) (TradeResult, error) {
	if c.signer == nil {
		return TradeResult{}, ErrNoSigner
	}
	state, err := c.tradeableState(ctx, mint)
	if err != nil {
		return TradeResult{}, err
	}

	q, err := pricing.QuoteBuy(state.Curve, state.Global.FeeBasisPoints, solAmount, slippageBps)
	if err != nil {
		return TradeResult{}, err
	}
	if q.TokenAmount == 0 {
		return TradeResult{}, ErrZeroTradeAmount
	}

	user := c.signer.PublicKey()
	accs, err := instructions.NewTradeAccounts(c.programID, mint, user, state.Global.FeeRecipient)
	if err != nil {
		return TradeResult{}, err
	}
	ataIx, err := instructions.CreateAssociatedTokenAccountIdempotent(user, user, mint)
	if err != nil {
		return TradeResult{}, err
	}
	buyIx, err := instructions.Buy(accs, q.TokenAmount, q.MaxSolCost)
	if err != nil {
		return TradeResult{}, err
	}

	c.logger.Info("Buying tokens",
		zap.String("mint", mint.String()),
		zap.Uint64("sol_amount", q.SolAmount),
		zap.Uint64("token_amount", q.TokenAmount),
		zap.Uint64("max_sol_cost", q.MaxSolCost))

	ixs := append(c.budgetInstructions(), ataIx, buyIx)
	sig, confirmed, err := c.submit(ctx, "buy", ixs)
	res := TradeResult{
		Signature:   sig,
		Mint:        mint,
		TokenAmount: q.TokenAmount,
		SolAmount:   q.SolAmount,
		SolLimit:    q.MaxSolCost,
		Fee:         q.Fee,
		Confirmed:   confirmed,
	}
	return res, err
}

// Sell sells tokenAmount tokens to mint's curve.
func (c *Client) Sell(ctx context.Context, mint solana.PublicKey, tokenAmount, slippageBps uint64) (TradeResult, error) {
	if c.signer == nil {
		return TradeResult{}, ErrNoSigner
	}
	if tokenAmount == 0 {
		return TradeResult{}, ErrZeroTradeAmount
	}
	state, err := c.tradeableState(ctx, mint)
	if err != nil {
		return TradeResult{}, err
	}

	q, err := pricing.QuoteSell(state.Curve, state.Global.FeeBasisPoints, tokenAmount, slippageBps)
	if err != nil {
		return TradeResult{}, err
	}

	accs, err := instructions.NewTradeAccounts(c.programID, mint, c.signer.PublicKey(), state.Global.FeeRecipient)
	if err != nil {
		return TradeResult{}, err
	}
	sellIx, err := instructions.Sell(accs, q.TokenAmount, q.MinSolOutput)
	if err != nil {
		return TradeResult{}, err
	}

	c.logger.Info("Selling tokens",
		zap.String("mint", mint.String()),
		zap.Uint64("token_amount", q.TokenAmount),
		zap.Uint64("net_sol", q.NetSol),
		zap.Uint64("min_sol_output", q.MinSolOutput))

	ixs := append(c.budgetInstructions(), sellIx)
	sig, confirmed, err := c.submit(ctx, "sell", ixs)
	res := TradeResult{
		Signature:   sig,
		Mint:        mint,
		TokenAmount: q.TokenAmount,
		SolAmount:   q.NetSol,
		SolLimit:    q.MinSolOutput,
		Fee:         q.Fee,
		Confirmed:   confirmed,
	}
	return res, err
}

// Create uploads meta and launches a new token whose mint keypair is mint.
func (c *Client) Create(ctx context.Context, mint solana.PrivateKey, meta metadata.CreateTokenMetadata) (CreateResult, error) {
	return c.create(ctx, mint, meta, 0, 0)
}

// CreateAndBuy launches a token and buys solAmount lamports of it in the
// same transaction.
func (c *Client) CreateAndBuy(ctx context.Context, mint solana.PrivateKey, meta metadata.CreateTokenMetadata, solAmount, slippageBps uint64) (CreateResult, error) {
	if solAmount == 0 {
		return CreateResult{}, ErrZeroTradeAmount
	}
	return c.create(ctx, mint, meta, solAmount, slippageBps)
}

func (c *Client) create(ctx context.Context, mint solana.PrivateKey, meta metadata.CreateTokenMetadata, solAmount, slippageBps uint64) (CreateResult, error) {
	if c.signer == nil {
		return CreateResult{}, ErrNoSigner
	}
	if err := meta.Validate(); err != nil {
		return CreateResult{}, err
	}

	global, err := c.GlobalConfig(ctx)
	if err != nil {
		return CreateResult{}, err
	}
	if global.Paused() {
		return CreateResult{}, ErrMarketplacePaused
	}

	var initial *pricing.BuyQuote
	if solAmount > 0 {
		q, err := pricing.InitialBuyQuote(global, solAmount, slippageBps)
		if err != nil {
			return CreateResult{}, err
		}
		initial = &q
	}

	uploaded, err := c.uploader.Upload(ctx, meta)
	if err != nil {
		return CreateResult{}, fmt.Errorf("upload metadata: %w", err)
	}

	user := c.signer.PublicKey()
	mintKey := mint.PublicKey()
	accs, err := instructions.NewCreateAccounts(c.programID, mintKey, user)
	if err != nil {
		return CreateResult{}, err
	}
	createIx, err := instructions.Create(accs, instructions.CreateArgs{
		Name:   meta.Name,
		Symbol: meta.Symbol,
		URI:    uploaded.MetadataURI,
	})
	if err != nil {
		return CreateResult{}, err
	}

	ixs := append(c.budgetInstructions(), createIx)
	if initial != nil {
		buyIxs, err := c.initialBuyInstructions(mintKey, user, global, *initial)
		if err != nil {
			return CreateResult{}, err
		}
		ixs = append(ixs, buyIxs...)
	}

	c.logger.Info("Creating token",
		zap.String("mint", mintKey.String()),
		zap.String("symbol", meta.Symbol),
		zap.String("uri", uploaded.MetadataURI))

	sig, confirmed, err := c.submit(ctx, "create", ixs, mint)
	return CreateResult{
		Signature:    sig,
		Mint:         mintKey,
		BondingCurve: accs.BondingCurve,
		MetadataURI:  uploaded.MetadataURI,
		InitialBuy:   initial,
		Confirmed:    confirmed,
	}, err
}

func (c *Client) initialBuyInstructions(mint, user solana.PublicKey, global accounts.GlobalConfig, q pricing.BuyQuote) ([]solana.Instruction, error) {
	accs, err := instructions.NewTradeAccounts(c.programID, mint, user, global.FeeRecipient)
	if err != nil {
		return nil, err
	}
	ataIx, err := instructions.CreateAssociatedTokenAccountIdempotent(user, user, mint)
	if err != nil {
		return nil, err
	}
	buyIx, err := instructions.Buy(accs, q.TokenAmount, q.MaxSolCost)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{ataIx, buyIx}, nil
}

// tradeableState fetches mint's market and rejects paused marketplaces.
func (c *Client) tradeableState(ctx context.Context, mint solana.PublicKey) (MarketState, error) {
	state, err := c.Snapshot(ctx, mint)
	if err != nil {
		return MarketState{}, err
	}
	if state.Global.Paused() {
		return MarketState{}, ErrMarketplacePaused
	}
	return state, nil
}

func (c *Client) budgetInstructions() []solana.Instruction {
	return instructions.ComputeBudget(c.computeUnits, c.priorityFee)
}

// submit builds, signs and sends ixs. Only the blockhash fetch and the
// send of the already signed transaction are retried, so every attempt
// carries the same signature and the runtime drops duplicates. It waits
// for confirmation when a Confirmer is set.
func (c *Client) submit(ctx context.Context, op string, ixs []solana.Instruction, extra ...solana.PrivateKey) (solana.Signature, bool, error) {
	payer := c.signer.PublicKey()

	blockhash, err := retry(ctx, c, op+": get recent blockhash", func() (solana.Hash, error) {
		h, err := c.chain.GetRecentBlockhash(ctx)
		if err != nil {
			return solana.Hash{}, &TransportError{Op: op + ": get recent blockhash", Err: err}
		}
		return h, nil
	})
	if err != nil {
		return solana.Signature{}, false, err
	}

	tx, err := solana.NewTransaction(ixs, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, false, fmt.Errorf("%s: create transaction: %w", op, err)
	}
	if err := c.signer.SignTransaction(tx, extra...); err != nil {
		return solana.Signature{}, false, fmt.Errorf("%s: sign transaction: %w", op, err)
	}

	sig, err := retry(ctx, c, op+": send transaction", func() (solana.Signature, error) {
		sig, err := c.chain.SendTransaction(ctx, tx)
		if err != nil {
			return solana.Signature{}, &TransportError{Op: op + ": send transaction", Err: err}
		}
		return sig, nil
	})
	if err != nil {
		return solana.Signature{}, false, err
	}
	c.logger.Info("Transaction sent", zap.String("op", op), zap.String("signature", sig.String()))

	if c.confirmer == nil {
		return sig, false, nil
	}
	if err := c.confirmer.WaitForConfirmation(ctx, sig); err != nil {
		c.logger.Warn("Confirmation failed", zap.String("signature", sig.String()), zap.Error(err))
		return sig, false, &TransportError{Op: op + ": confirm transaction", Err: err}
	}
	c.logger.Info("Transaction confirmed", zap.String("signature", sig.String()))
	return sig, true, nil
}
