package protocol

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/asceswap/go-asceswap/config"
	"github.com/asceswap/go-asceswap/multicall"
	"github.com/asceswap/go-asceswap/rpc"
	"github.com/asceswap/go-asceswap/scale"
	"github.com/asceswap/go-asceswap/types"
)

const (
	// DefaultOracleRateBps is the rate written when refreshing a stale
	// oracle in a test environment (5%).
	DefaultOracleRateBps = 500

	// DefaultMaxRateBps is the slippage bound applied when the intent does
	// not specify one (9%).
	DefaultMaxRateBps = 900

	// FaucetTokens is the fixed mint amount of the mock token, in whole
	// tokens, scaled by the token's decimals at build time.
	FaucetTokens = 10_000
)

// Service combines reads, batch assembly, and submission into the
// operations the UI layer triggers. Amounts cross from human decimals to
// calldata strictly through the integer base-unit path.
type Service struct {
	reader    *Reader
	submitter *Submitter
	client    rpc.Client
	logger    *zap.Logger

	protocolAddr  string
	oracleAddr    string
	mockTokenAddr string
}

// NewService wires a Service from the configured contracts.
func NewService(client rpc.Client, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	reader, err := NewReader(client, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		reader:        reader,
		submitter:     NewSubmitter(client, logger),
		client:        client,
		logger:        logger,
		protocolAddr:  cfg.ProtocolAddress,
		oracleAddr:    cfg.OracleAddress,
		mockTokenAddr: cfg.MockTokenAddress,
	}, nil
}

// Reader exposes the read side of the service.
func (s *Service) Reader() *Reader {
	return s.reader
}

// SupplyLiquidity converts the human amount into base units with the
// market's own decimals, assembles the approve + supply batch, and submits
// it atomically.
func (s *Service) SupplyLiquidity(ctx context.Context, sess Session, pairID string, amount decimal.Decimal) (string, error) {
	if err := sess.Validate(); err != nil {
		return "", err
	}

	snap, err := s.reader.GetMarket(ctx, pairID)
	if err != nil {
		return "", fmt.Errorf("supply liquidity: %w", err)
	}

	units, err := scale.ToBaseUnits(amount, snap.Decimals)
	if err != nil {
		return "", fmt.Errorf("supply liquidity: %w", err)
	}

	batch, err := multicall.SupplyLiquidity(snap.CollateralToken, s.protocolAddr, pairID, units)
	if err != nil {
		return "", fmt.Errorf("supply liquidity: %w", err)
	}

	return s.submitter.Submit(ctx, sess, batch)
}

// OpenSwap assembles and submits the batch for one swap intent. The oracle
// is refreshed in the same batch when its last tick is older than the
// market's staleness bound, judged against the chain's clock and never the
// local wall clock.
func (s *Service) OpenSwap(ctx context.Context, sess Session, intent types.SwapIntent) (string, error) {
	if err := sess.Validate(); err != nil {
		return "", err
	}

	snap, err := s.reader.GetMarket(ctx, intent.PairID)
	if err != nil {
		return "", fmt.Errorf("open swap: %w", err)
	}

	notionalUnits, err := scale.ToBaseUnits(intent.Notional, snap.Decimals)
	if err != nil {
		return "", fmt.Errorf("open swap: notional: %w", err)
	}
	collateralUnits, err := scale.ToBaseUnits(intent.Collateral, snap.Decimals)
	if err != nil {
		return "", fmt.Errorf("open swap: collateral: %w", err)
	}

	maxRate := intent.MaxRateBps
	if maxRate == 0 {
		maxRate = DefaultMaxRateBps
	}

	chainTime, err := s.client.BlockTimestamp(ctx)
	if err != nil {
		return "", fmt.Errorf("open swap: %w", err)
	}

	refresh := oracleStale(snap.Rate.LastUpdated.Unix(), chainTime, snap.Params.MaxOracleStalenessSeconds)

	batch, err := multicall.OpenSwap(multicall.OpenSwapParams{
		Token:          snap.CollateralToken,
		Protocol:       s.protocolAddr,
		Oracle:         snap.Oracle,
		PairID:         intent.PairID,
		Side:           intent.Side,
		Notional:       notionalUnits,
		Collateral:     collateralUnits,
		MaxRate:        new(big.Int).SetUint64(maxRate),
		RefreshOracle:  refresh,
		OracleRate:     big.NewInt(DefaultOracleRateBps),
		ChainTimestamp: chainTime,
	})
	if err != nil {
		return "", fmt.Errorf("open swap: %w", err)
	}

	return s.submitter.Submit(ctx, sess, batch)
}

// MintMockToken mints the fixed faucet amount of the mock token to the
// session account. Test environments only.
func (s *Service) MintMockToken(ctx context.Context, sess Session) (string, error) {
	if err := sess.Validate(); err != nil {
		return "", err
	}
	if s.mockTokenAddr == "" {
		return "", fmt.Errorf("mint mock token: no mock token address configured")
	}

	decimals, err := s.reader.TokenDecimals(ctx, s.mockTokenAddr)
	if err != nil {
		return "", fmt.Errorf("mint mock token: %w", err)
	}

	units := new(big.Int).Mul(
		big.NewInt(FaucetTokens),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil),
	)

	batch, err := multicall.MintMockToken(s.mockTokenAddr, sess.Account, units)
	if err != nil {
		return "", fmt.Errorf("mint mock token: %w", err)
	}

	return s.submitter.Submit(ctx, sess, batch)
}

// oracleStale reports whether the oracle's last tick is older than the
// staleness bound relative to the chain clock.
func oracleStale(lastUpdate int64, chainTime, maxStaleness uint64) bool {
	if lastUpdate <= 0 {
		return true
	}
	if uint64(lastUpdate) >= chainTime {
		return false
	}
	return chainTime-uint64(lastUpdate) > maxStaleness
}

// Submitter serializes transaction submission. Writes for the same account
// are never issued concurrently from this layer, there is no automatic
// retry, and a failed submission surfaces to the caller for an explicit
// re-trigger.
type Submitter struct {
	client rpc.Client
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSubmitter creates a Submitter.
func NewSubmitter(client rpc.Client, logger *zap.Logger) *Submitter {
	return &Submitter{client: client, logger: logger}
}

// Submit sends the batch as one indivisible unit and blocks until the
// submission resolves or fails.
func (s *Submitter) Submit(ctx context.Context, sess Session, batch multicall.Batch) (string, error) {
	if err := sess.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txHash, err := s.client.Invoke(ctx, sess.Account, batch)
	if err != nil {
		return "", fmt.Errorf("submit batch %d: %w", batch.ID(), err)
	}
	return txHash, nil
}
