package wallet_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/wallet"
)

var _ pumpfun.Signer = (*wallet.Wallet)(nil)

func TestNewWallet(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	w, err := wallet.NewWallet(key.String())
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), w.PublicKey())
	assert.Equal(t, key, w.PrivateKey())
	assert.Equal(t, key.PublicKey().String(), w.String())
}

func TestNewWalletErrors(t *testing.T) {
	_, err := wallet.NewWallet("0OIl")
	assert.Error(t, err)

	_, err = wallet.NewWallet(solana.NewWallet().PublicKey().String())
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestLoadKeypairFile(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	content, err := json.Marshal(values)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	w, err := wallet.LoadKeypairFile(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), w.PublicKey())

	_, err = wallet.LoadKeypairFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadWallets(t *testing.T) {
	a := solana.NewWallet().PrivateKey
	b := solana.NewWallet().PrivateKey
	csv := strings.Join([]string{
		"name,private_key",
		"alice," + a.String(),
		"bob," + b.String(),
		"broken,not-base58-0OIl",
		"short",
	}, "\n")

	path := filepath.Join(t.TempDir(), "wallets.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	wallets, err := wallet.LoadWallets(path)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, a.PublicKey(), wallets["alice"].PublicKey())
	assert.Equal(t, b.PublicKey(), wallets["bob"].PublicKey())
}

func TestLoadWalletsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,private_key\n"), 0o600))

	_, err := wallet.LoadWallets(path)
	assert.Error(t, err)
}

func TestSignTransactionWithExtraSigner(t *testing.T) {
	w := wallet.Generate()
	mint := solana.NewWallet().PrivateKey

	ix := solana.NewInstruction(
		solana.SystemProgramID,
		solana.AccountMetaSlice{
			solana.Meta(w.PublicKey()).WRITE().SIGNER(),
			solana.Meta(mint.PublicKey()).WRITE().SIGNER(),
		},
		[]byte{0},
	)
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{1}, solana.TransactionPayer(w.PublicKey()))
	require.NoError(t, err)

	require.NoError(t, w.SignTransaction(tx, mint))
	assert.Len(t, tx.Signatures, 2)
	assert.NoError(t, tx.VerifySignatures())
}

func TestSignTransactionMissingSigner(t *testing.T) {
	w := wallet.Generate()
	other := solana.NewWallet().PublicKey()

	ix := solana.NewInstruction(
		solana.SystemProgramID,
		solana.AccountMetaSlice{solana.Meta(other).WRITE().SIGNER()},
		[]byte{0},
	)
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{1}, solana.TransactionPayer(w.PublicKey()))
	require.NoError(t, err)

	assert.Error(t, w.SignTransaction(tx))
}

func TestGetATA(t *testing.T) {
	w := wallet.Generate()
	mint := solana.NewWallet().PublicKey()

	want, _, err := solana.FindAssociatedTokenAddress(w.PublicKey(), mint)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := w.GetATA(mint)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()

	require.NoError(t, w.PrecomputeATAs([]solana.PublicKey{mint, solana.NewWallet().PublicKey()}))
}
