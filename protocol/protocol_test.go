package protocol

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"github.com/asceswap/go-asceswap/config"
	"github.com/asceswap/go-asceswap/multicall"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubClient scripts per-entrypoint responses and records every submitted
// batch.
type stubClient struct {
	mu        sync.Mutex
	responses map[string][]*big.Int
	errs      map[string]error
	calls     []string
	blockTime uint64
	invoked   []multicall.Batch
	invokeErr error
}

func newStubClient() *stubClient {
	return &stubClient{
		responses: make(map[string][]*big.Int),
		errs:      make(map[string]error),
		blockTime: 1700000100,
	}
}

func (s *stubClient) Call(ctx context.Context, to, entrypoint string, calldata []string) ([]*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, entrypoint)
	if err, ok := s.errs[entrypoint]; ok {
		return nil, err
	}
	felts, ok := s.responses[entrypoint]
	if !ok {
		return nil, fmt.Errorf("unscripted entrypoint %s", entrypoint)
	}
	return felts, nil
}

func (s *stubClient) BlockTimestamp(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "block_timestamp")
	return s.blockTime, nil
}

func (s *stubClient) Invoke(ctx context.Context, sender string, batch multicall.Batch) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invokeErr != nil {
		return "", s.invokeErr
	}
	s.invoked = append(s.invoked, batch)
	return "0xhash", nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testProtocolConfig() *config.Config {
	return &config.Config{
		RPCEndpoint:       "http://localhost:5050",
		ProtocolAddress:   "0x1",
		OracleAddress:     "0x2",
		MockTokenAddress:  "0x3",
		DecimalsCacheSize: 16,
	}
}

// marketFelts is the 35-felt get_market record for a 6-decimals market with
// a 5% rate last updated at 1700000000 and a one-hour staleness bound.
func marketFelts() []*big.Int {
	return []*big.Int{
		big.NewInt(1),    // pair_id
		big.NewInt(0),    // status: active
		big.NewInt(0xabc),  // rate_oracle
		big.NewInt(0xdef),  // curator
		big.NewInt(0x1234), // collateral_token
		big.NewInt(6),
		big.NewInt(500),
		big.NewInt(1700000000),

		big.NewInt(1000000000), big.NewInt(0),
		big.NewInt(200000000), big.NewInt(0),
		big.NewInt(100000000), big.NewInt(0),

		big.NewInt(11000),
		big.NewInt(500),
		big.NewInt(200),
		big.NewInt(604800),
		big.NewInt(1800),
		big.NewInt(30),
		big.NewInt(50),
		big.NewInt(500),
		big.NewInt(20),
		big.NewInt(9000),

		big.NewInt(10000000), big.NewInt(0),
		big.NewInt(100000000000), big.NewInt(0),

		big.NewInt(3600),
		big.NewInt(100),
		big.NewInt(100),
		big.NewInt(2000),
		big.NewInt(0),
		big.NewInt(42),
		big.NewInt(7),
	}
}

func newTestService(t *testing.T, stub *stubClient) *Service {
	t.Helper()
	svc, err := NewService(stub, testProtocolConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func newTestReader(t *testing.T, stub *stubClient) *Reader {
	t.Helper()
	r, err := NewReader(stub, testProtocolConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	return r
}
