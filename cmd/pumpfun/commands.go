// cmd/pumpfun/commands.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-sdk/internal/monitor"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/metadata"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/units"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/wallet"
)

type commonFlags struct {
	config   string
	mint     string
	slippage string
}

func newFlagSet(name string, out io.Writer, withSlippage bool) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	c := &commonFlags{}
	fs.StringVar(&c.config, "config", "", "path to a yaml or json config file")
	fs.StringVar(&c.mint, "mint", "", "token mint address")
	if withSlippage {
		fs.StringVar(&c.slippage, "slippage", "", "slippage in basis points (default from config)")
	}
	return fs, c
}

func (c *commonFlags) mintKey() (solana.PublicKey, error) {
	if c.mint == "" {
		return solana.PublicKey{}, errors.New("-mint is required")
	}
	key, err := solana.PublicKeyFromBase58(c.mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid mint %q: %w", c.mint, err)
	}
	return key, nil
}

func (c *commonFlags) slippageBps(fallback uint64) (uint64, error) {
	if c.slippage == "" {
		return fallback, nil
	}
	bps, err := strconv.ParseUint(c.slippage, 10, 64)
	if err != nil || bps > pricing.BasisPoints {
		return 0, fmt.Errorf("invalid -slippage %q: want 0..%d basis points", c.slippage, pricing.BasisPoints)
	}
	return bps, nil
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("-%s is required", name)
	}
	return nil
}

func runCurve(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("curve", out, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	mint, err := common.mintKey()
	if err != nil {
		return err
	}

	a, err := newApp(ctx, common.config, false)
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.client.Snapshot(ctx, mint)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderRows("Bonding curve "+mint.String(), curveRows(state)))
	return nil
}

func runQuoteBuy(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("quote-buy", out, true)
	sol := fs.String("sol", "", "SOL to spend, fee included, e.g. 0.25")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mint, lamports, err := parseBuyArgs(common, *sol)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, common.config, false)
	if err != nil {
		return err
	}
	defer a.Close()

	slippage, err := common.slippageBps(a.cfg.SlippageBps)
	if err != nil {
		return err
	}
	q, err := a.client.QuoteBuy(ctx, mint, lamports, slippage)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderRows("Buy quote", buyQuoteRows(q)))
	return nil
}

func runQuoteSell(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("quote-sell", out, true)
	tokens := fs.String("tokens", "", "tokens to sell, e.g. 1500.5")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mint, err := common.mintKey()
	if err != nil {
		return err
	}
	if err := requireFlag("tokens", *tokens); err != nil {
		return err
	}
	amount, err := units.UIToTokens(*tokens)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, common.config, false)
	if err != nil {
		return err
	}
	defer a.Close()

	slippage, err := common.slippageBps(a.cfg.SlippageBps)
	if err != nil {
		return err
	}
	q, err := a.client.QuoteSell(ctx, mint, amount, slippage)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderRows("Sell quote", sellQuoteRows(q)))
	return nil
}

func parseBuyArgs(common *commonFlags, sol string) (solana.PublicKey, uint64, error) {
	mint, err := common.mintKey()
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	if err := requireFlag("sol", sol); err != nil {
		return solana.PublicKey{}, 0, err
	}
	lamports, err := units.SolToLamports(sol)
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return mint, lamports, nil
}

func runBuy(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("buy", out, true)
	sol := fs.String("sol", "", "SOL to spend, fee included, e.g. 0.25")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mint, lamports, err := parseBuyArgs(common, *sol)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, common.config, true)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.log.TrackPerformance("buy")()

	slippage, err := common.slippageBps(a.cfg.SlippageBps)
	if err != nil {
		return err
	}
	res, err := a.client.Buy(ctx, mint, lamports, slippage)
	if err != nil {
		return err
	}
	a.logSubmitted("buy", res.Signature, mint, res.Confirmed)
	fmt.Fprintln(out, renderRows("Buy", tradeRows(res, true)))
	return nil
}

func runSell(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("sell", out, true)
	tokens := fs.String("tokens", "", "tokens to sell, e.g. 1500.5")
	all := fs.Bool("all", false, "sell the whole wallet balance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mint, err := common.mintKey()
	if err != nil {
		return err
	}
	if *all == (*tokens != "") {
		return errors.New("set exactly one of -tokens or -all")
	}

	var amount uint64
	if !*all {
		if amount, err = units.UIToTokens(*tokens); err != nil {
			return err
		}
	}

	a, err := newApp(ctx, common.config, true)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.log.TrackPerformance("sell")()

	if *all {
		ata, err := a.wallet.GetATA(mint)
		if err != nil {
			return err
		}
		if amount, err = a.chain.GetTokenBalance(ctx, ata); err != nil {
			return err
		}
		if amount == 0 {
			return errors.New("wallet holds none of this token")
		}
		a.log.WithMint(mint.String()).Info("Selling whole balance", zap.Uint64("token_amount", amount))
	}

	slippage, err := common.slippageBps(a.cfg.SlippageBps)
	if err != nil {
		return err
	}
	res, err := a.client.Sell(ctx, mint, amount, slippage)
	if err != nil {
		return err
	}
	a.logSubmitted("sell", res.Signature, mint, res.Confirmed)
	fmt.Fprintln(out, renderRows("Sell", tradeRows(res, false)))
	return nil
}

func runCreate(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("create", out, true)
	var meta metadata.CreateTokenMetadata
	fs.StringVar(&meta.Name, "name", "", "token name")
	fs.StringVar(&meta.Symbol, "symbol", "", "token symbol")
	fs.StringVar(&meta.Description, "description", "", "token description")
	fs.StringVar(&meta.File, "image", "", "path to the token image")
	fs.StringVar(&meta.Twitter, "twitter", "", "twitter link")
	fs.StringVar(&meta.Telegram, "telegram", "", "telegram link")
	fs.StringVar(&meta.Website, "website", "", "website link")
	buySol := fs.String("buy-sol", "", "SOL to spend on a dev buy in the same transaction")
	mintKeypair := fs.String("mint-keypair", "", "keypair file for the mint (default: new random key)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}

	var lamports uint64
	if *buySol != "" {
		var err error
		if lamports, err = units.SolToLamports(*buySol); err != nil {
			return err
		}
	}

	mint := wallet.Generate()
	if *mintKeypair != "" {
		var err error
		if mint, err = wallet.LoadKeypairFile(*mintKeypair); err != nil {
			return err
		}
	}

	a, err := newApp(ctx, common.config, true)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.log.TrackPerformance("create")()

	slippage, err := common.slippageBps(a.cfg.SlippageBps)
	if err != nil {
		return err
	}

	if lamports > 0 {
		res, err := a.client.CreateAndBuy(ctx, mint.PrivateKey(), meta, lamports, slippage)
		if err != nil {
			return err
		}
		a.logSubmitted("create", res.Signature, res.Mint, res.Confirmed)
		fmt.Fprintln(out, renderRows("Token launched", createRows(res)))
		return nil
	}

	res, err := a.client.Create(ctx, mint.PrivateKey(), meta)
	if err != nil {
		return err
	}
	a.logSubmitted("create", res.Signature, res.Mint, res.Confirmed)
	fmt.Fprintln(out, renderRows("Token launched", createRows(res)))
	return nil
}

func runBalance(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("balance", out, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, common.config, true)
	if err != nil {
		return err
	}
	defer a.Close()

	lamports, err := a.chain.GetBalance(ctx, a.wallet.PublicKey())
	if err != nil {
		return err
	}
	rows := []row{
		{"wallet", a.wallet.String()},
		{"SOL", formatSol(lamports)},
	}

	if common.mint != "" {
		mint, err := common.mintKey()
		if err != nil {
			return err
		}
		ata, err := a.wallet.GetATA(mint)
		if err != nil {
			return err
		}
		tokens, err := a.chain.GetTokenBalance(ctx, ata)
		if err != nil {
			return err
		}
		rows = append(rows, row{"token account", ata.String()}, row{"tokens", formatTokens(tokens)})
	}
	fmt.Fprintln(out, renderRows("Balance", rows))
	return nil
}

func runWatch(ctx context.Context, args []string, out io.Writer) error {
	fs, common := newFlagSet("watch", out, false)
	interval := fs.Duration("interval", monitor.DefaultInterval, "polling interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mint, err := common.mintKey()
	if err != nil {
		return err
	}

	a, err := newApp(ctx, common.config, false)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(out, style.Title.Render("Watching "+mint.String()+" (ctrl+c to stop)"))
	m := monitor.NewCurveMonitor(a.client, mint, *interval, a.log.WithMint(mint.String()), func(u monitor.Update) {
		fmt.Fprintln(out, watchLine(u))
	})
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
