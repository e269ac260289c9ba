// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/metadata"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pda"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
)

const envPrefix = "PUMPFUN"

type Config struct {
	RPCList                  []string      `mapstructure:"rpc_list"`
	PrivateKey               string        `mapstructure:"private_key"`
	KeypairPath              string        `mapstructure:"keypair_path"`
	ProgramID                string        `mapstructure:"program_id"`
	SlippageBps              uint64        `mapstructure:"slippage_bps"`
	ComputeUnits             uint32        `mapstructure:"compute_units"`
	PriorityFeeMicroLamports uint64        `mapstructure:"priority_fee_micro_lamports"`
	RetryMaxElapsed          time.Duration `mapstructure:"retry_max_elapsed"`
	ConfirmTimeout           time.Duration `mapstructure:"confirm_timeout"`
	IPFSEndpoint             string        `mapstructure:"ipfs_endpoint"`
	LogFile                  string        `mapstructure:"log_file"`
	DebugLogging             bool          `mapstructure:"debug_logging"`
}

const (
	DefaultSlippageBps    = pricing.DefaultSlippageBps
	DefaultConfirmTimeout = 30 * time.Second
	DefaultLogFile        = "logs/pumpfun.log"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"rpc_list":                    []string{"https://api.mainnet-beta.solana.com"},
		"slippage_bps":                DefaultSlippageBps,
		"compute_units":               pumpfun.DefaultComputeUnits,
		"priority_fee_micro_lamports": pumpfun.DefaultPriorityFee,
		"retry_max_elapsed":           pumpfun.DefaultRetryMaxElapsed,
		"confirm_timeout":             DefaultConfirmTimeout,
		"ipfs_endpoint":               metadata.DefaultIPFSEndpoint,
		"log_file":                    DefaultLogFile,
	}
}

// LoadConfig reads path, applies defaults and PUMPFUN_* environment
// overrides. An empty path loads defaults and the environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	loadEnvironmentVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.RPCList = splitList(strings.Join(cfg.RPCList, ","))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasSigner reports whether a wallet key is configured.
func (c *Config) HasSigner() bool {
	return c.PrivateKey != "" || c.KeypairPath != ""
}

// Program returns the configured program ID, or the mainnet program.
func (c *Config) Program() (solana.PublicKey, error) {
	if c.ProgramID == "" {
		return pda.PumpFunProgramID, nil
	}
	return solana.PublicKeyFromBase58(c.ProgramID)
}

func validateConfig(cfg *Config) error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURLWithCache(rpcURL, "http"); err != nil {
			return errors.New("invalid RPC URL protocol")
		}
	}
	if cfg.PrivateKey != "" && cfg.KeypairPath != "" {
		return errors.New("set either private_key or keypair_path, not both")
	}
	if cfg.ProgramID != "" {
		if _, err := solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
			return errors.New("invalid program_id")
		}
	}
	if err := validateURLWithCache(cfg.IPFSEndpoint, "http"); err != nil {
		return errors.New("invalid ipfs_endpoint")
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.SlippageBps > pricing.BasisPoints {
		return errors.New("invalid slippage_bps")
	}
	if cfg.RetryMaxElapsed < 0 {
		return errors.New("invalid retry_max_elapsed")
	}
	if cfg.ConfirmTimeout < 0 {
		return errors.New("invalid confirm_timeout")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

// loadEnvironmentVariables maps PUMPFUN_<KEY> onto every config key.
// PUMPFUN_RPC_LIST is a comma separated list.
func loadEnvironmentVariables(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults() {
		_ = v.BindEnv(key)
	}
	for _, key := range []string{"private_key", "keypair_path", "program_id", "debug_logging"} {
		_ = v.BindEnv(key)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(item); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
