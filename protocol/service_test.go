package protocol

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/asceswap/go-asceswap/multicall"
	"github.com/asceswap/go-asceswap/types"
)

func connectedSession(t *testing.T) Session {
	t.Helper()
	sess, err := NewSession("0xcafe")
	require.NoError(t, err)
	return sess
}

func TestSupplyLiquidity(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	svc := newTestService(t, stub)

	txHash, err := svc.SupplyLiquidity(context.Background(), connectedSession(t), "1", dec("50"))
	require.NoError(t, err)
	assert.Equal(t, "0xhash", txHash)

	require.Len(t, stub.invoked, 1)
	batch := stub.invoked[0]
	require.Equal(t, 2, batch.Len())

	// Amount scaled with the market's 6 decimals, approve before supply.
	assert.Equal(t, multicall.Call{
		To:         "0x1234",
		Entrypoint: multicall.EntrypointApprove,
		Calldata:   []string{"0x1", "50000000", "0"},
	}, batch.Calls[0])
	assert.Equal(t, multicall.Call{
		To:         "0x1",
		Entrypoint: multicall.EntrypointSupplyLPCollateral,
		Calldata:   []string{"1", "50000000", "0"},
	}, batch.Calls[1])
}

func TestSupplyLiquidityRejectsNegative(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	svc := newTestService(t, stub)

	_, err := svc.SupplyLiquidity(context.Background(), connectedSession(t), "1", dec("-5"))
	assert.Error(t, err)
	assert.Empty(t, stub.invoked)
}

func TestOpenSwapFreshOracle(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	stub.blockTime = 1700000100 // 100s after the last oracle tick

	svc := newTestService(t, stub)
	txHash, err := svc.OpenSwap(context.Background(), connectedSession(t), types.SwapIntent{
		PairID:     "1",
		Side:       types.SideFixed,
		Notional:   dec("100"),
		Collateral: dec("20"),
		MaxRateBps: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, "0xhash", txHash)

	require.Len(t, stub.invoked, 1)
	batch := stub.invoked[0]
	require.Equal(t, 2, batch.Len())

	assert.Equal(t, multicall.EntrypointApprove, batch.Calls[0].Entrypoint)
	assert.Equal(t, "0x1234", batch.Calls[0].To)
	assert.Equal(t, []string{"0x1", "20000000", "0"}, batch.Calls[0].Calldata)

	assert.Equal(t, multicall.EntrypointBuySwap, batch.Calls[1].Entrypoint)
	assert.Equal(t, []string{
		"1", "0",
		"100000000", "0",
		"20000000", "0",
		"800", "0",
	}, batch.Calls[1].Calldata)
}

func TestOpenSwapStaleOracle(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	stub.blockTime = 1700010000 // well past the 3600s staleness bound

	svc := newTestService(t, stub)
	_, err := svc.OpenSwap(context.Background(), connectedSession(t), types.SwapIntent{
		PairID:     "1",
		Side:       types.SideFloating,
		Notional:   dec("100"),
		Collateral: dec("20"),
	})
	require.NoError(t, err)

	require.Len(t, stub.invoked, 1)
	batch := stub.invoked[0]
	require.Equal(t, 3, batch.Len())

	// Refresh strictly first, stamped with the chain clock.
	assert.Equal(t, multicall.EntrypointSetRate, batch.Calls[0].Entrypoint)
	assert.Equal(t, "0xabc", batch.Calls[0].To)
	assert.Equal(t, []string{"500", "0", "1700010000"}, batch.Calls[0].Calldata)

	assert.Equal(t, multicall.EntrypointApprove, batch.Calls[1].Entrypoint)
	assert.Equal(t, multicall.EntrypointBuySwap, batch.Calls[2].Entrypoint)

	// Unset slippage bound falls back to the default.
	assert.Equal(t, "900", batch.Calls[2].Calldata[6])
	// Floating side discriminant.
	assert.Equal(t, "1", batch.Calls[2].Calldata[1])
}

func TestOpenSwapDisconnected(t *testing.T) {
	stub := newStubClient()
	svc := newTestService(t, stub)

	_, err := svc.OpenSwap(context.Background(), Session{Account: "0x0"}, types.SwapIntent{PairID: "1"})
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Zero(t, stub.callCount())
}

func TestMintMockToken(t *testing.T) {
	stub := newStubClient()
	stub.responses["decimals"] = []*big.Int{big.NewInt(6)}
	svc := newTestService(t, stub)

	txHash, err := svc.MintMockToken(context.Background(), connectedSession(t))
	require.NoError(t, err)
	assert.Equal(t, "0xhash", txHash)

	require.Len(t, stub.invoked, 1)
	batch := stub.invoked[0]
	require.Equal(t, 1, batch.Len())
	assert.Equal(t, multicall.Call{
		To:         "0x3",
		Entrypoint: multicall.EntrypointMint,
		Calldata:   []string{"0xcafe", "10000000000", "0"},
	}, batch.Calls[0])
}

func TestMintMockTokenUnconfigured(t *testing.T) {
	stub := newStubClient()
	cfg := testProtocolConfig()
	cfg.MockTokenAddress = ""
	svc, err := NewService(stub, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = svc.MintMockToken(context.Background(), connectedSession(t))
	assert.ErrorContains(t, err, "no mock token address")
}

func TestSubmitPropagatesFailure(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	stub.invokeErr = errors.New("sequencer rejected")
	svc := newTestService(t, stub)

	_, err := svc.SupplyLiquidity(context.Background(), connectedSession(t), "1", dec("50"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequencer rejected")
}

func TestOracleStale(t *testing.T) {
	tests := []struct {
		name         string
		lastUpdate   int64
		chainTime    uint64
		maxStaleness uint64
		want         bool
	}{
		{"fresh", 1000, 1100, 3600, false},
		{"exactly at bound", 1000, 4600, 3600, false},
		{"past bound", 1000, 4601, 3600, true},
		{"never updated", 0, 1100, 3600, true},
		{"future tick", 5000, 1100, 3600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, oracleStale(tt.lastUpdate, tt.chainTime, tt.maxStaleness))
		})
	}
}
