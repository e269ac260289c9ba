// Package pumpfun is a client SDK for the Pump.fun token launch marketplace on Solana.
//
// This package provides methods for:
// - Deriving the program's addresses (global config, bonding curves, metadata, token accounts).
// - Fetching and decoding the Global and BondingCurve accounts.
// - Quoting buys and sells against a bonding curve with integer-only math.
// - Launching tokens and trading them on their bonding curve.
//
// The pure building blocks live in sub-packages and can be used on their own:
//   - pda: program derived addresses.
//   - accounts: account layouts and decoding.
//   - pricing: bonding curve quotes, fees and slippage bounds.
//   - instructions: create, buy and sell instruction encoding.
//   - metadata: token metadata upload.
//   - units: lamport and token amount conversions.
//
// Client ties them together over a Chain (RPC access) and a Signer (wallet).
// Transport failures are retried with exponential backoff and surface as
// *TransportError; decoding and pricing errors are returned unchanged and
// never retried.
//
// Usage example:
//
//	chain, err := solana.NewClient([]string{rpcURL}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := wallet.NewWallet(privateKeyBase58)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := pumpfun.NewClient(chain, w, logger, pumpfun.WithConfirmer(chain))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Buy(ctx, mint, 100_000_000, pricing.DefaultSlippageBps)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pumpfun
