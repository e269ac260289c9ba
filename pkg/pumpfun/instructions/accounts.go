// ==============================================
// File: pkg/pumpfun/instructions/accounts.go
// ==============================================
package instructions

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pda"
)

// TradeAccounts holds every account referenced by buy and sell.
type TradeAccounts struct {
	Program                solana.PublicKey
	Global                 solana.PublicKey
	FeeRecipient           solana.PublicKey
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	AssociatedUser         solana.PublicKey
	User                   solana.PublicKey
	EventAuthority         solana.PublicKey
}

// CreateAccounts holds every account referenced by create.
type CreateAccounts struct {
	Program                solana.PublicKey
	Mint                   solana.PublicKey
	MintAuthority          solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	Global                 solana.PublicKey
	Metadata               solana.PublicKey
	User                   solana.PublicKey
	EventAuthority         solana.PublicKey
}

// NewTradeAccounts derives the buy/sell accounts of user for mint.
// feeRecipient comes from the global account.
func NewTradeAccounts(programID, mint, user, feeRecipient solana.PublicKey) (TradeAccounts, error) {
	global, _, err := pda.GlobalAddress(programID)
	if err != nil {
		return TradeAccounts{}, fmt.Errorf("derive global: %w", err)
	}
	curve, _, err := pda.BondingCurveAddress(mint, programID)
	if err != nil {
		return TradeAccounts{}, fmt.Errorf("derive bonding curve: %w", err)
	}
	curveATA, err := pda.DeriveAssociatedTokenAddress(curve, mint)
	if err != nil {
		return TradeAccounts{}, fmt.Errorf("derive associated bonding curve: %w", err)
	}
	userATA, err := pda.DeriveAssociatedTokenAddress(user, mint)
	if err != nil {
		return TradeAccounts{}, fmt.Errorf("derive associated user: %w", err)
	}
	eventAuthority, _, err := pda.EventAuthorityAddress(programID)
	if err != nil {
		return TradeAccounts{}, fmt.Errorf("derive event authority: %w", err)
	}

	return TradeAccounts{
		Program:                programID,
		Global:                 global,
		FeeRecipient:           feeRecipient,
		Mint:                   mint,
		BondingCurve:           curve,
		AssociatedBondingCurve: curveATA,
		AssociatedUser:         userATA,
		User:                   user,
		EventAuthority:         eventAuthority,
	}, nil
}

// NewCreateAccounts derives the accounts needed to launch mint.
func NewCreateAccounts(programID, mint, user solana.PublicKey) (CreateAccounts, error) {
	mintAuthority, _, err := pda.MintAuthorityAddress(programID)
	if err != nil {
		return CreateAccounts{}, fmt.Errorf("derive mint authority: %w", err)
	}
	global, _, err := pda.GlobalAddress(programID)
	if err != nil {
		return CreateAccounts{}, fmt.Errorf("derive global: %w", err)
	}
	curve, _, err := pda.BondingCurveAddress(mint, programID)
	if err != nil {
		return CreateAccounts{}, fmt.Errorf("derive bonding curve: %w", err)
	}
	curveATA, err := pda.DeriveAssociatedTokenAddress(curve, mint)
	if err != nil {
		return CreateAccounts{}, fmt.Errorf("derive associated bonding curve: %w", err)
	}
	metadata, _, err := pda.MetadataAddress(mint)
	if err != nil {
		return CreateAccounts{}, fmt.Errorf("derive metadata: %w", err)
	}
	eventAuthority, _, err := pda.EventAuthorityAddress(programID)
	if err != nil {
		return CreateAccounts{}, fmt.Errorf("derive event authority: %w", err)
	}

	return CreateAccounts{
		Program:                programID,
		Mint:                   mint,
		MintAuthority:          mintAuthority,
		BondingCurve:           curve,
		AssociatedBondingCurve: curveATA,
		Global:                 global,
		Metadata:               metadata,
		User:                   user,
		EventAuthority:         eventAuthority,
	}, nil
}
