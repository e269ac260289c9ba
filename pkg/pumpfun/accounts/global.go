// pkg/pumpfun/accounts/global.go
package accounts

import (
	"github.com/gagliardetto/solana-go"
)

// GlobalConfigSize is the exact length of the global account.
const GlobalConfigSize = discriminatorLen + 1 + 2*solana.PublicKeyLength + 5*8

// GlobalConfig is a snapshot of the marketplace-wide global account.
type GlobalConfig struct {
	Initialized                 bool
	Authority                   solana.PublicKey
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
}

// DecodeGlobalConfig decodes the raw global account.
func DecodeGlobalConfig(data []byte) (GlobalConfig, error) {
	if err := checkLength("global account", data, GlobalConfigSize); err != nil {
		return GlobalConfig{}, err
	}

	r := newReader(data)
	r.discriminator(GlobalDiscriminator)
	g := GlobalConfig{
		Initialized:                 r.boolean("initialized"),
		Authority:                   r.pubkey("authority"),
		FeeRecipient:                r.pubkey("fee_recipient"),
		InitialVirtualTokenReserves: r.u64("initial_virtual_token_reserves"),
		InitialVirtualSolReserves:   r.u64("initial_virtual_sol_reserves"),
		InitialRealTokenReserves:    r.u64("initial_real_token_reserves"),
		TokenTotalSupply:            r.u64("token_total_supply"),
		FeeBasisPoints:              r.u64("fee_basis_points"),
	}
	if r.err != nil {
		return GlobalConfig{}, r.err
	}
	return g, nil
}

// Encode serializes g in the on-chain layout.
func (g GlobalConfig) Encode() []byte {
	w := newWriter(GlobalConfigSize, GlobalDiscriminator)
	w.boolean(g.Initialized)
	w.pubkey(g.Authority)
	w.pubkey(g.FeeRecipient)
	w.u64(g.InitialVirtualTokenReserves)
	w.u64(g.InitialVirtualSolReserves)
	w.u64(g.InitialRealTokenReserves)
	w.u64(g.TokenTotalSupply)
	w.u64(g.FeeBasisPoints)
	return w.buf
}

// Paused reports whether trading is disabled. An uninitialized global
// account means the program does not accept trades.
func (g GlobalConfig) Paused() bool {
	return !g.Initialized
}

// NewBondingCurve returns the curve a freshly created token starts with.
func (g GlobalConfig) NewBondingCurve() BondingCurve {
	return BondingCurve{
		VirtualTokenReserves: g.InitialVirtualTokenReserves,
		VirtualSolReserves:   g.InitialVirtualSolReserves,
		RealTokenReserves:    g.InitialRealTokenReserves,
		RealSolReserves:      0,
		TokenTotalSupply:     g.TokenTotalSupply,
		Complete:             false,
	}
}
