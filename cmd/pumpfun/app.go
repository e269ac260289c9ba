// cmd/pumpfun/app.go
package main

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-sdk/internal/config"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/logger"
	solbc "github.com/rovshanmuradov/pumpfun-sdk/pkg/blockchain/solana"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/metadata"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/wallet"
)

// app holds the collaborators shared by every subcommand.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	chain  *solbc.Client
	wallet *wallet.Wallet
	client *pumpfun.Client
}

func newApp(ctx context.Context, configPath string, needSigner bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Debug = cfg.DebugLogging
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	if err := a.init(ctx, needSigner); err != nil {
		_ = log.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init(ctx context.Context, needSigner bool) error {
	chain, err := solbc.NewClientWithContext(ctx, a.cfg.RPCList, a.log.Logger)
	if err != nil {
		return err
	}
	if a.cfg.ConfirmTimeout > 0 {
		chain.SetConfirmationTimeout(a.cfg.ConfirmTimeout)
	}
	a.chain = chain

	var signer pumpfun.Signer
	if a.cfg.HasSigner() {
		w, err := loadWallet(a.cfg)
		if err != nil {
			return err
		}
		a.wallet = w
		signer = w
		a.log.Info("Wallet loaded", zap.String("address", w.String()))
	} else if needSigner {
		return fmt.Errorf("no wallet configured: set private_key or keypair_path")
	}

	program, err := a.cfg.Program()
	if err != nil {
		return err
	}

	client, err := pumpfun.NewClient(chain, signer, a.log.Logger,
		pumpfun.WithProgramID(program),
		pumpfun.WithComputeBudget(a.cfg.ComputeUnits, a.cfg.PriorityFeeMicroLamports),
		pumpfun.WithRetry(a.cfg.RetryMaxElapsed),
		pumpfun.WithUploader(metadata.NewIPFSUploader(a.cfg.IPFSEndpoint, nil, a.log.Logger)),
		pumpfun.WithConfirmer(chain),
	)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

func loadWallet(cfg *config.Config) (*wallet.Wallet, error) {
	if cfg.KeypairPath != "" {
		return wallet.LoadKeypairFile(cfg.KeypairPath)
	}
	return wallet.NewWallet(cfg.PrivateKey)
}

// logSubmitted records a finished submission in the log file.
func (a *app) logSubmitted(op string, sig solana.Signature, mint solana.PublicKey, confirmed bool) {
	a.log.WithTransaction(sig.String()).Info("Submission finished",
		zap.String("op", op),
		zap.String("mint", mint.String()),
		zap.Bool("confirmed", confirmed))
}

func (a *app) Close() {
	_ = a.log.Close()
}
