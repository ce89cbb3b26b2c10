// Package rpc talks JSON-RPC 2.0 to the protocol gateway. Reads execute
// against the latest block; writes submit one multicall batch as a single
// atomic unit. The client never retries on its own: remote failures surface
// to the caller, who decides whether to re-trigger the operation.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/asceswap/go-asceswap/config"
	"github.com/asceswap/go-asceswap/multicall"
	"github.com/asceswap/go-asceswap/u256"
)

// JSON-RPC methods exposed by the gateway.
const (
	methodCall     = "asce_call"
	methodGetBlock = "asce_getBlock"
	methodInvoke   = "asce_invoke"
)

// Client defines the operations the rest of the client performs against the
// chain.
type Client interface {
	// Call executes a read entrypoint against the latest block and returns
	// the raw result felts.
	Call(ctx context.Context, to, entrypoint string, calldata []string) ([]*big.Int, error)

	// BlockTimestamp returns the latest block's own clock. Any timestamp
	// placed in calldata must come from here, never from the local wall
	// clock.
	BlockTimestamp(ctx context.Context) (uint64, error)

	// Invoke submits the batch as one all-or-nothing multicall on behalf of
	// sender and returns the transaction hash.
	Invoke(ctx context.Context, sender string, batch multicall.Batch) (string, error)
}

// HTTPClient implements Client over HTTP JSON-RPC 2.0.
type HTTPClient struct {
	endpoint    string
	client      *http.Client
	limiter     *rate.Limiter
	waitTimeout time.Duration
	logger      *zap.Logger
	metrics     *Metrics
	requestID   atomic.Uint64
}

// Option configures HTTPClient.
type Option func(*HTTPClient)

// WithMetrics attaches prometheus instrumentation to the client.
func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a client for the configured gateway endpoint.
func NewHTTPClient(cfg *config.Config, logger *zap.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint:    cfg.RPCEndpoint,
		client:      &http.Client{Timeout: cfg.NetworkTimeout.Std()},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RPCRateLimit.RequestsPerSecond), cfg.RPCRateLimit.BurstSize),
		waitTimeout: cfg.RPCRateLimit.WaitTimeout.Std(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// wireCall is a contract call in wire form (hex felts).
type wireCall struct {
	ContractAddress string   `json:"contract_address"`
	Entrypoint      string   `json:"entrypoint"`
	Calldata        []string `json:"calldata"`
}

type callParams struct {
	Request wireCall `json:"request"`
	BlockID string   `json:"block_id"`
}

type invokeParams struct {
	SenderAddress string     `json:"sender_address"`
	Calls         []wireCall `json:"calls"`
}

type blockResult struct {
	BlockNumber uint64 `json:"block_number"`
	Timestamp   uint64 `json:"timestamp"`
}

type invokeResult struct {
	TransactionHash string `json:"transaction_hash"`
}

// Call implements Client.
func (c *HTTPClient) Call(ctx context.Context, to, entrypoint string, calldata []string) ([]*big.Int, error) {
	wire, err := toWireCall(to, entrypoint, calldata)
	if err != nil {
		return nil, err
	}

	var result []string
	if err := c.do(ctx, methodCall, callParams{Request: wire, BlockID: "latest"}, &result); err != nil {
		return nil, fmt.Errorf("call %s: %w", entrypoint, err)
	}

	felts := make([]*big.Int, len(result))
	for i, s := range result {
		felt, err := u256.ParseFelt(s)
		if err != nil {
			return nil, fmt.Errorf("call %s: result felt %d: %w", entrypoint, i, err)
		}
		felts[i] = felt
	}
	return felts, nil
}

// BlockTimestamp implements Client.
func (c *HTTPClient) BlockTimestamp(ctx context.Context) (uint64, error) {
	var block blockResult
	if err := c.do(ctx, methodGetBlock, []string{"latest"}, &block); err != nil {
		return 0, fmt.Errorf("get block: %w", err)
	}
	return block.Timestamp, nil
}

// Invoke implements Client.
func (c *HTTPClient) Invoke(ctx context.Context, sender string, batch multicall.Batch) (string, error) {
	if batch.Len() == 0 {
		return "", fmt.Errorf("invoke: empty batch")
	}

	calls := make([]wireCall, 0, batch.Len())
	for _, call := range batch.Calls {
		wire, err := toWireCall(call.To, call.Entrypoint, call.Calldata)
		if err != nil {
			return "", err
		}
		calls = append(calls, wire)
	}

	var result invokeResult
	if err := c.do(ctx, methodInvoke, invokeParams{SenderAddress: sender, Calls: calls}, &result); err != nil {
		return "", fmt.Errorf("invoke: %w", err)
	}

	c.logger.Info("batch submitted",
		zap.Uint64("batch_id", batch.ID()),
		zap.Int("calls", batch.Len()),
		zap.String("tx_hash", result.TransactionHash),
	)
	return result.TransactionHash, nil
}

// do performs one JSON-RPC exchange. No retry on failure.
func (c *HTTPClient) do(ctx context.Context, method string, params, result interface{}) error {
	if c.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.waitTimeout)
		defer cancel()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	start := time.Now()
	err := c.roundTrip(ctx, method, params, result)
	if c.metrics != nil {
		c.metrics.observe(method, time.Since(start), err)
	}
	if err != nil {
		c.logger.Debug("rpc request failed", zap.String("method", method), zap.Error(err))
	}
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, method string, params, result interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

// toWireCall normalizes calldata felts to their 0x-hex wire form. Amounts
// arrive as decimal strings, addresses as 0x-hex; both are accepted.
func toWireCall(to, entrypoint string, calldata []string) (wireCall, error) {
	hexData := make([]string, len(calldata))
	for i, felt := range calldata {
		v, err := parseCalldataFelt(felt)
		if err != nil {
			return wireCall{}, err
		}
		hexData[i] = u256.FeltHex(v)
	}
	return wireCall{ContractAddress: to, Entrypoint: entrypoint, Calldata: hexData}, nil
}

func parseCalldataFelt(felt string) (*big.Int, error) {
	if strings.HasPrefix(felt, "0x") || strings.HasPrefix(felt, "0X") {
		return u256.ParseFelt(felt)
	}
	v, ok := new(big.Int).SetString(felt, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid calldata felt %q", felt)
	}
	return v, nil
}
