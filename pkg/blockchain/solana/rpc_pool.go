// pkg/blockchain/solana/rpc_pool.go
package solana

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const healthCheckTimeout = 5 * time.Second

type endpoint struct {
	url    string
	client *rpc.Client
}

// RPCPool hands out RPC clients round robin.
type RPCPool struct {
	endpoints []endpoint
	logger    *zap.Logger
	mutex     sync.Mutex
	index     int
}

func NewRPCPool(rpcList []string, logger *zap.Logger) *RPCPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	endpoints := make([]endpoint, 0, len(rpcList))
	for _, url := range rpcList {
		endpoints = append(endpoints, endpoint{url: url, client: rpc.New(url)})
	}

	return &RPCPool{
		endpoints: endpoints,
		logger:    logger,
	}
}

func (p *RPCPool) GetClient() *rpc.Client {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	client := p.endpoints[p.index].client
	p.index = (p.index + 1) % len(p.endpoints)
	return client
}

// Size returns the number of endpoints in the pool.
func (p *RPCPool) Size() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.endpoints)
}

func (p *RPCPool) CheckClientHealth(ctx context.Context, client *rpc.Client) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	_, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	return err == nil
}

// PerformHealthChecks drops endpoints that do not answer and returns how
// many answered. When none answer the pool is left unchanged.
func (p *RPCPool) PerformHealthChecks(ctx context.Context) int {
	p.mutex.Lock()
	snapshot := append([]endpoint(nil), p.endpoints...)
	p.mutex.Unlock()

	healthy := make([]endpoint, 0, len(snapshot))
	for i, ep := range snapshot {
		if p.CheckClientHealth(ctx, ep.client) {
			healthy = append(healthy, ep)
			continue
		}
		p.logger.Warn("RPC endpoint unavailable, removing from pool",
			zap.Int("index", i),
			zap.String("url", ep.url))
	}
	if len(healthy) == 0 {
		p.logger.Warn("No healthy RPC endpoints, keeping the pool unchanged")
		return 0
	}

	p.mutex.Lock()
	p.endpoints = healthy
	p.index = 0
	p.mutex.Unlock()
	return len(healthy)
}
