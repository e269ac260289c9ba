// pkg/pumpfun/pda/addresses.go
package pda

import (
	"github.com/gagliardetto/solana-go"
)

// Known program ids.
var (
	PumpFunProgramID         = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	TokenMetadataProgramID   = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	TokenProgramID           = solana.TokenProgramID
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
)

// Seeds used by the Pump.fun program.
var seed = struct {
	Global         []byte
	MintAuthority  []byte
	BondingCurve   []byte
	Metadata       []byte
	EventAuthority []byte
}{
	Global:         []byte("global"),
	MintAuthority:  []byte("mint-authority"),
	BondingCurve:   []byte("bonding-curve"),
	Metadata:       []byte("metadata"),
	EventAuthority: []byte("__event_authority"),
}

// GlobalAddress derives the singleton global config account.
func GlobalAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{seed.Global}, programID)
}

// MintAuthorityAddress derives the mint authority shared by all curve tokens.
func MintAuthorityAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{seed.MintAuthority}, programID)
}

// EventAuthorityAddress derives the Anchor event CPI authority.
func EventAuthorityAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{seed.EventAuthority}, programID)
}

// BondingCurveAddress derives the bonding curve account of mint.
func BondingCurveAddress(mint, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{seed.BondingCurve, mint.Bytes()}, programID)
}

// MetadataAddress derives the Metaplex metadata account of mint.
func MetadataAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress(
		[][]byte{seed.Metadata, TokenMetadataProgramID.Bytes(), mint.Bytes()},
		TokenMetadataProgramID,
	)
}

// AssociatedTokenAddress derives the associated token account of owner for mint
// under the given token program.
func AssociatedTokenAddress(owner, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress(
		[][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		AssociatedTokenProgramID,
	)
}

// DeriveBondingCurveAddress derives the bonding curve of mint under the
// mainnet Pump.fun program.
func DeriveBondingCurveAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return BondingCurveAddress(mint, PumpFunProgramID)
}

// DeriveAssociatedTokenAddress derives the SPL token ATA of owner for mint.
func DeriveAssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := AssociatedTokenAddress(owner, mint, TokenProgramID)
	return addr, err
}
