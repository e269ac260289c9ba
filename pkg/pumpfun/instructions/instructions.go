// ==============================================
// File: pkg/pumpfun/instructions/instructions.go
// ==============================================

// Package instructions builds Pump.fun program instructions.
//
// Instruction data is an Anchor discriminator followed by the Borsh encoded
// arguments. Account lists follow the program's order exactly.
package instructions

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pda"
)

// Anchor instruction discriminators: sha256("global:<name>")[:8].
var (
	CreateDiscriminator = instructionDiscriminator("create")
	BuyDiscriminator    = instructionDiscriminator("buy")
	SellDiscriminator   = instructionDiscriminator("sell")
)

func instructionDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

// CreateArgs are the arguments of the create instruction.
type CreateArgs struct {
	Name   string
	Symbol string
	URI    string
}

// BuyArgs are the arguments of the buy instruction.
type BuyArgs struct {
	Amount     uint64
	MaxSolCost uint64
}

// SellArgs are the arguments of the sell instruction.
type SellArgs struct {
	Amount       uint64
	MinSolOutput uint64
}

// Create builds the instruction that launches a new token and its curve.
func Create(accounts CreateAccounts, args CreateArgs) (solana.Instruction, error) {
	data, err := encode(CreateDiscriminator, args)
	if err != nil {
		return nil, fmt.Errorf("encode create args: %w", err)
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(accounts.Mint).WRITE().SIGNER(),
		solana.Meta(accounts.MintAuthority),
		solana.Meta(accounts.BondingCurve).WRITE(),
		solana.Meta(accounts.AssociatedBondingCurve).WRITE(),
		solana.Meta(accounts.Global),
		solana.Meta(pda.TokenMetadataProgramID),
		solana.Meta(accounts.Metadata).WRITE(),
		solana.Meta(accounts.User).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(pda.TokenProgramID),
		solana.Meta(pda.AssociatedTokenProgramID),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(accounts.EventAuthority),
		solana.Meta(accounts.Program),
	}
	return solana.NewInstruction(accounts.Program, metas, data), nil
}

// Buy builds the instruction that buys amount tokens for at most maxSolCost lamports.
func Buy(accounts TradeAccounts, amount, maxSolCost uint64) (solana.Instruction, error) {
	data, err := encode(BuyDiscriminator, BuyArgs{Amount: amount, MaxSolCost: maxSolCost})
	if err != nil {
		return nil, fmt.Errorf("encode buy args: %w", err)
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(accounts.Global),
		solana.Meta(accounts.FeeRecipient).WRITE(),
		solana.Meta(accounts.Mint),
		solana.Meta(accounts.BondingCurve).WRITE(),
		solana.Meta(accounts.AssociatedBondingCurve).WRITE(),
		solana.Meta(accounts.AssociatedUser).WRITE(),
		solana.Meta(accounts.User).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(pda.TokenProgramID),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(accounts.EventAuthority),
		solana.Meta(accounts.Program),
	}
	return solana.NewInstruction(accounts.Program, metas, data), nil
}

// Sell builds the instruction that sells amount tokens for at least minSolOutput lamports.
func Sell(accounts TradeAccounts, amount, minSolOutput uint64) (solana.Instruction, error) {
	data, err := encode(SellDiscriminator, SellArgs{Amount: amount, MinSolOutput: minSolOutput})
	if err != nil {
		return nil, fmt.Errorf("encode sell args: %w", err)
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(accounts.Global),
		solana.Meta(accounts.FeeRecipient).WRITE(),
		solana.Meta(accounts.Mint),
		solana.Meta(accounts.BondingCurve).WRITE(),
		solana.Meta(accounts.AssociatedBondingCurve).WRITE(),
		solana.Meta(accounts.AssociatedUser).WRITE(),
		solana.Meta(accounts.User).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(pda.AssociatedTokenProgramID),
		solana.Meta(pda.TokenProgramID),
		solana.Meta(accounts.EventAuthority),
		solana.Meta(accounts.Program),
	}
	return solana.NewInstruction(accounts.Program, metas, data), nil
}

// CreateAssociatedTokenAccountIdempotent creates the SPL token ATA of owner
// for mint unless it already exists.
func CreateAssociatedTokenAccountIdempotent(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	ata, err := pda.DeriveAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("derive associated token account: %w", err)
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(ata).WRITE(),
		solana.Meta(owner),
		solana.Meta(mint),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(pda.TokenProgramID),
	}
	// 1 = CreateIdempotent
	return solana.NewInstruction(pda.AssociatedTokenProgramID, metas, []byte{1}), nil
}

// ComputeBudget returns the compute unit limit and price instructions.
// Zero values are left out.
func ComputeBudget(units uint32, microLamports uint64) []solana.Instruction {
	var ixs []solana.Instruction
	if units > 0 {
		ixs = append(ixs, computebudget.NewSetComputeUnitLimitInstruction(units).Build())
	}
	if microLamports > 0 {
		ixs = append(ixs, computebudget.NewSetComputeUnitPriceInstruction(microLamports).Build())
	}
	return ixs
}

// Signers returns the accounts that must sign ix, in account order.
func Signers(ix solana.Instruction) []solana.PublicKey {
	var keys []solana.PublicKey
	for _, m := range ix.Accounts() {
		if m.IsSigner {
			keys = append(keys, m.PublicKey)
		}
	}
	return keys
}

func encode(discriminator [8]byte, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(discriminator[:], false); err != nil {
		return nil, err
	}
	if err := enc.Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
