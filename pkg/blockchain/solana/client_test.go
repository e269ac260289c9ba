package solana

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
)

var testBlockhash = solana.Hash{1, 2, 3}

// fakeRPC answers JSON-RPC requests with canned results per method. When a
// method has several results they are returned in order and the last one
// repeats.
type fakeRPC struct {
	mu      sync.Mutex
	results map[string][]string
	errors  map[string]string
	calls   map[string]int
}

func newFakeRPC() *fakeRPC {
	f := &fakeRPC{
		results: make(map[string][]string),
		errors:  make(map[string]string),
		calls:   make(map[string]int),
	}
	f.result("getLatestBlockhash", fmt.Sprintf(
		`{"context":{"slot":1},"value":{"blockhash":%q,"lastValidBlockHeight":100}}`, testBlockhash.String()))
	return f
}

func (f *fakeRPC) result(method string, results ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[method] = results
}

func (f *fakeRPC) fail(method, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[method] = message
}

func (f *fakeRPC) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeRPC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	method := gjson.GetBytes(body, "method").String()
	id := gjson.GetBytes(body, "id").Raw
	if id == "" {
		id = "1"
	}

	f.mu.Lock()
	n := f.calls[method]
	f.calls[method]++
	results := f.results[method]
	message, failing := f.errors[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failing:
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32602,"message":%q}}`, id, message)
	case len(results) > 0:
		if n >= len(results) {
			n = len(results) - 1
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, id, results[n])
	default:
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"unsupported method"}}`, id)
	}
}

func newTestClient(t *testing.T, f *fakeRPC) *Client {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClient([]string{srv.URL}, zap.NewNop())
	require.NoError(t, err)
	c.pollInterval = time.Millisecond
	return c
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient([]string{"not a url"}, zap.NewNop())
	assert.Error(t, err)

	f := newFakeRPC()
	f.fail("getLatestBlockhash", "node is unhealthy")
	srv := httptest.NewServer(f)
	defer srv.Close()
	_, err = NewClient([]string{srv.URL}, zap.NewNop())
	assert.Error(t, err)

	c := newTestClient(t, newFakeRPC())
	assert.NotNil(t, c)
}

func TestNewClientDropsDeadEndpoints(t *testing.T) {
	f := newFakeRPC()
	live := httptest.NewServer(f)
	defer live.Close()
	dead := httptest.NewServer(newFakeRPC())
	dead.Close()

	c, err := NewClient([]string{dead.URL, live.URL}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, c.rpcPool.Size())

	_, err = c.GetRecentBlockhash(context.Background())
	require.NoError(t, err)
	// health check plus the call above
	assert.Equal(t, 2, f.count("getLatestBlockhash"))

	_, err = NewClient([]string{dead.URL}, zap.NewNop())
	assert.ErrorContains(t, err, "none of 1 RPC endpoints answered")
}

func TestGetAccountData(t *testing.T) {
	f := newFakeRPC()
	f.result("getAccountInfo", `{"context":{"slot":1},"value":{"data":["AQID","base64"],"executable":false,"lamports":1,"owner":"11111111111111111111111111111111","rentEpoch":0}}`)
	c := newTestClient(t, f)

	data, err := c.GetAccountData(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestGetAccountDataNotFound(t *testing.T) {
	f := newFakeRPC()
	f.result("getAccountInfo", `{"context":{"slot":1},"value":null}`)
	c := newTestClient(t, f)

	_, err := c.GetAccountData(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, pumpfun.ErrAccountNotFound)
	assert.True(t, IsAccountNotFoundError(err))
}

func TestGetRecentBlockhash(t *testing.T) {
	c := newTestClient(t, newFakeRPC())

	hash, err := c.GetRecentBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testBlockhash, hash)
}

func TestSendTransaction(t *testing.T) {
	want := solana.Signature{7, 7, 7}
	f := newFakeRPC()
	f.result("sendTransaction", fmt.Sprintf("%q", want.String()))
	c := newTestClient(t, f)

	payer := solana.NewWallet()
	ix := solana.NewInstruction(
		solana.SystemProgramID,
		solana.AccountMetaSlice{solana.Meta(payer.PublicKey()).WRITE().SIGNER()},
		[]byte{2, 0, 0, 0},
	)
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, testBlockhash, solana.TransactionPayer(payer.PublicKey()))
	require.NoError(t, err)
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer.PublicKey()) {
			return &payer.PrivateKey
		}
		return nil
	})
	require.NoError(t, err)

	sig, err := c.SendTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, want, sig)
}

func TestWaitForConfirmation(t *testing.T) {
	processed := `{"context":{"slot":1},"value":[{"slot":1,"confirmations":1,"err":null,"confirmationStatus":"processed"}]}`
	confirmed := `{"context":{"slot":2},"value":[{"slot":1,"confirmations":2,"err":null,"confirmationStatus":"confirmed"}]}`

	f := newFakeRPC()
	f.result("getSignatureStatuses", `{"context":{"slot":1},"value":[null]}`, processed, confirmed)
	c := newTestClient(t, f)

	err := c.WaitForConfirmation(context.Background(), solana.Signature{1})
	require.NoError(t, err)
	assert.Equal(t, 3, f.count("getSignatureStatuses"))
}

func TestWaitForConfirmationFailed(t *testing.T) {
	f := newFakeRPC()
	f.result("getSignatureStatuses", `{"context":{"slot":1},"value":[{"slot":1,"confirmations":null,"err":{"InstructionError":[2,{"Custom":6002}]},"confirmationStatus":"finalized"}]}`)
	c := newTestClient(t, f)

	err := c.WaitForConfirmation(context.Background(), solana.Signature{1})
	assert.ErrorIs(t, err, ErrTransactionFailed)
}

func TestWaitForConfirmationTimeout(t *testing.T) {
	f := newFakeRPC()
	f.result("getSignatureStatuses", `{"context":{"slot":1},"value":[null]}`)
	c := newTestClient(t, f)
	c.SetConfirmationTimeout(20 * time.Millisecond)

	err := c.WaitForConfirmation(context.Background(), solana.Signature{1})
	assert.ErrorIs(t, err, ErrConfirmationTimeout)
}

func TestWaitForConfirmationCancelled(t *testing.T) {
	f := newFakeRPC()
	f.result("getSignatureStatuses", `{"context":{"slot":1},"value":[null]}`)
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.WaitForConfirmation(ctx, solana.Signature{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetBalances(t *testing.T) {
	f := newFakeRPC()
	f.result("getBalance", `{"context":{"slot":1},"value":2500000000}`)
	f.result("getTokenAccountBalance", `{"context":{"slot":1},"value":{"amount":"1500000","decimals":6,"uiAmount":1.5,"uiAmountString":"1.5"}}`)
	c := newTestClient(t, f)
	ctx := context.Background()

	lamports, err := c.GetBalance(ctx, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000_000), lamports)

	tokens, err := c.GetTokenBalance(ctx, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000), tokens)
}

func TestGetTokenBalanceMissingAccount(t *testing.T) {
	f := newFakeRPC()
	f.fail("getTokenAccountBalance", "Invalid param: could not find account")
	c := newTestClient(t, f)

	tokens, err := c.GetTokenBalance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Zero(t, tokens)
}

func TestIsAccountNotFoundError(t *testing.T) {
	assert.False(t, IsAccountNotFoundError(nil))
	assert.True(t, IsAccountNotFoundError(pumpfun.ErrAccountNotFound))
	assert.True(t, IsAccountNotFoundError(fmt.Errorf("rpc: %w", pumpfun.ErrAccountNotFound)))
	assert.False(t, IsAccountNotFoundError(fmt.Errorf("connection reset")))
	assert.True(t, IsAccountNotFoundError(fmt.Errorf("Invalid param: could not find account")))
	assert.False(t, IsAccountNotFoundError(fmt.Errorf("Method not found")))
}

func TestGetTokenBalanceMethodNotFound(t *testing.T) {
	f := newFakeRPC()
	f.fail("getTokenAccountBalance", "Method not found")
	c := newTestClient(t, f)

	_, err := c.GetTokenBalance(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorContains(t, err, "Method not found")
}
