package protocol

import (
	"context"
	"fmt"
	"math/big"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/asceswap/go-asceswap/config"
	"github.com/asceswap/go-asceswap/market"
	"github.com/asceswap/go-asceswap/quote"
	"github.com/asceswap/go-asceswap/rpc"
	"github.com/asceswap/go-asceswap/types"
	"github.com/asceswap/go-asceswap/u256"
)

// Read entrypoints. The set is closed: every query the client can make is
// enumerated here.
const (
	entrypointGetMarket         = "get_market"
	entrypointGetPoolAnalytics  = "get_pool_analytics"
	entrypointGetProtocolConfig = "get_protocol_config"
	entrypointGetSwap           = "get_swap"
	entrypointGetHealthStatus   = "get_health_status"
	entrypointGetCurrentTWA     = "get_current_twa"
	entrypointGetSwapQuote      = "get_swap_quote"
	entrypointBalanceOf         = "balance_of"
	entrypointDecimals          = "decimals"
)

// Reader performs the protocol's read queries. Every call constructs fresh
// value objects; nothing returned by a Reader is ever mutated in place.
type Reader struct {
	client   rpc.Client
	protocol string
	logger   *zap.Logger

	// decimals are fixed per token for the lifetime of a session, so the
	// lookup is cached.
	decimalsCache *lru.Cache
}

// NewReader creates a Reader against the configured protocol contract.
func NewReader(client rpc.Client, cfg *config.Config, logger *zap.Logger) (*Reader, error) {
	cache, err := lru.New(cfg.DecimalsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("protocol: decimals cache: %w", err)
	}
	return &Reader{
		client:        client,
		protocol:      cfg.ProtocolAddress,
		logger:        logger,
		decimalsCache: cache,
	}, nil
}

// GetMarket fetches and formats the market record for a pair.
func (r *Reader) GetMarket(ctx context.Context, pairID string) (market.Snapshot, error) {
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetMarket, []string{pairID})
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("get market %s: %w", pairID, err)
	}
	raw, err := market.DecodeRaw(felts)
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("get market %s: %w", pairID, err)
	}
	return market.Format(raw), nil
}

// GetPoolAnalyticsRaw fetches the pool analytics record without scaling.
// Scaling needs the market's decimals; see MarketDashboard.
func (r *Reader) GetPoolAnalyticsRaw(ctx context.Context, pairID string) (RawPoolAnalytics, error) {
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetPoolAnalytics, []string{pairID})
	if err != nil {
		return RawPoolAnalytics{}, fmt.Errorf("get pool analytics %s: %w", pairID, err)
	}
	return decodeRawAnalytics(felts)
}

// GetProtocolConfig fetches the protocol-level risk parameters.
func (r *Reader) GetProtocolConfig(ctx context.Context) (ProtocolConfig, error) {
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetProtocolConfig, nil)
	if err != nil {
		return ProtocolConfig{}, fmt.Errorf("get protocol config: %w", err)
	}
	return decodeProtocolConfig(felts)
}

// GetSwap fetches the full record of one swap position.
func (r *Reader) GetSwap(ctx context.Context, swapID *big.Int) (SwapRecord, error) {
	calldata, err := u256Calldata(swapID)
	if err != nil {
		return SwapRecord{}, fmt.Errorf("get swap: %w", err)
	}
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetSwap, calldata)
	if err != nil {
		return SwapRecord{}, fmt.Errorf("get swap %s: %w", swapID, err)
	}
	return decodeSwapRecord(felts)
}

// GetSwapHealth fetches the health/liquidation status of one swap.
func (r *Reader) GetSwapHealth(ctx context.Context, swapID *big.Int) (HealthStatus, error) {
	calldata, err := u256Calldata(swapID)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("get swap health: %w", err)
	}
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetHealthStatus, calldata)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("get swap health %s: %w", swapID, err)
	}
	return decodeHealthStatus(felts)
}

// GetCurrentTWA fetches the current time-weighted average rate for a swap,
// in basis points.
func (r *Reader) GetCurrentTWA(ctx context.Context, swapID *big.Int) (*big.Int, error) {
	calldata, err := u256Calldata(swapID)
	if err != nil {
		return nil, fmt.Errorf("get current twa: %w", err)
	}
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetCurrentTWA, calldata)
	if err != nil {
		return nil, fmt.Errorf("get current twa %s: %w", swapID, err)
	}

	fr := u256.NewReader(felts)
	wire, err := fr.Wire()
	if err != nil {
		return nil, fmt.Errorf("get current twa: %w", err)
	}
	if err := fr.Done(); err != nil {
		return nil, fmt.Errorf("get current twa: %w", err)
	}
	return u256.Decode(wire), nil
}

// GetSwapQuote fetches the contract's authoritative quote for opening a
// position. The figures are taken verbatim; only display conversion happens
// client-side.
func (r *Reader) GetSwapQuote(ctx context.Context, pairID string, side types.Side, notionalUnits *big.Int) (quote.SwapQuote, error) {
	sideValue, err := side.Discriminant()
	if err != nil {
		return quote.SwapQuote{}, fmt.Errorf("get swap quote: %w", err)
	}
	notional, err := u256.Encode(notionalUnits)
	if err != nil {
		return quote.SwapQuote{}, fmt.Errorf("get swap quote: notional: %w", err)
	}

	calldata := append([]string{pairID, sideValue}, notional.Calldata()...)
	felts, err := r.client.Call(ctx, r.protocol, entrypointGetSwapQuote, calldata)
	if err != nil {
		return quote.SwapQuote{}, fmt.Errorf("get swap quote %s: %w", pairID, err)
	}

	required, lpLock, baseBps, finalBps, imbalanceBps, err := decodeQuote(felts)
	if err != nil {
		return quote.SwapQuote{}, err
	}
	return quote.SwapQuote{
		RequiredCollateral:     u256.Decode(required),
		LPCollateralToLock:     u256.Decode(lpLock),
		BaseRateBps:            baseBps,
		FinalRateBps:           finalBps,
		ImbalanceAdjustmentBps: imbalanceBps,
	}, nil
}

func u256Calldata(v *big.Int) ([]string, error) {
	wire, err := u256.Encode(v)
	if err != nil {
		return nil, err
	}
	return wire.Calldata(), nil
}
