package protocol

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asceswap/go-asceswap/market"
	"github.com/asceswap/go-asceswap/types"
)

func TestGetMarket(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	r := newTestReader(t, stub)

	snap, err := r.GetMarket(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", snap.PairID)
	assert.Equal(t, market.StatusActive, snap.Status)
	assert.Equal(t, int32(6), snap.Decimals)
	assert.Equal(t, "700", snap.Pool.AvailableLiquidity.String())
}

func TestGetMarketError(t *testing.T) {
	stub := newStubClient()
	stub.errs["get_market"] = errors.New("market not found")
	r := newTestReader(t, stub)

	_, err := r.GetMarket(context.Background(), "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market not found")
}

func TestGetProtocolConfig(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_protocol_config"] = []*big.Int{
		big.NewInt(0xfee), // fee_recipient
		big.NewInt(10),    // protocol_fee_bps
		big.NewInt(100),   // max_markets
		big.NewInt(0),     // paused
	}
	r := newTestReader(t, stub)

	cfg, err := r.GetProtocolConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xfee", cfg.FeeRecipient)
	assert.Equal(t, "0.1", cfg.ProtocolFeePct.String())
	assert.Equal(t, uint64(100), cfg.MaxMarkets)
	assert.False(t, cfg.Paused)
}

func TestGetSwap(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_swap"] = []*big.Int{
		big.NewInt(7), big.NewInt(0), // swap_id
		big.NewInt(1),      // pair_id
		big.NewInt(0xcafe), // owner
		big.NewInt(1),      // side: floating
		big.NewInt(100000000), big.NewInt(0), // notional
		big.NewInt(20000000), big.NewInt(0), // collateral
		big.NewInt(520),        // entry_rate_bps
		big.NewInt(1700000000), // start_time
		big.NewInt(1700604800), // maturity_time
		big.NewInt(0),          // status: open
	}
	r := newTestReader(t, stub)

	rec, err := r.GetSwap(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "7", rec.SwapID.String())
	assert.Equal(t, "1", rec.PairID)
	assert.Equal(t, "0xcafe", rec.Owner)
	assert.Equal(t, types.SideFloating, rec.Side)
	assert.Equal(t, "100000000", rec.NotionalUnits.String())
	assert.Equal(t, uint64(520), rec.EntryRateBps)
	assert.Equal(t, time.Unix(1700604800, 0).UTC(), rec.MaturityTime)
	assert.Equal(t, SwapOpen, rec.Status)
}

func TestGetSwapHealth(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_health_status"] = []*big.Int{
		big.NewInt(15000), // collateral_ratio_bps
		big.NewInt(11000), // liquidation_threshold_bps
		big.NewInt(0),     // is_liquidatable
	}
	r := newTestReader(t, stub)

	health, err := r.GetSwapHealth(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "150", health.CollateralRatioPct.String())
	assert.Equal(t, "110", health.LiquidationThresholdPct.String())
	assert.False(t, health.Liquidatable)
}

func TestGetCurrentTWA(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_current_twa"] = []*big.Int{big.NewInt(512), big.NewInt(0)}
	r := newTestReader(t, stub)

	twa, err := r.GetCurrentTWA(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "512", twa.String())
}

func TestGetSwapQuote(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_swap_quote"] = []*big.Int{
		big.NewInt(20000000), big.NewInt(0), // required_collateral
		big.NewInt(100000000), big.NewInt(0), // lp_collateral_to_lock
		big.NewInt(500), // base_rate_bps
		big.NewInt(520), // final_rate_bps
		big.NewInt(20),  // imbalance_adjustment_bps
	}
	r := newTestReader(t, stub)

	q, err := r.GetSwapQuote(context.Background(), "1", types.SideFixed, big.NewInt(100000000))
	require.NoError(t, err)
	assert.Equal(t, "20000000", q.RequiredCollateral.String())
	assert.Equal(t, "100000000", q.LPCollateralToLock.String())
	assert.Equal(t, uint64(500), q.BaseRateBps)
	assert.Equal(t, uint64(520), q.FinalRateBps)
	assert.Equal(t, uint64(20), q.ImbalanceAdjustmentBps)
}

func TestMarketDashboard(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	stub.responses["get_pool_analytics"] = []*big.Int{
		big.NewInt(5000000000), big.NewInt(0), // total_volume
		big.NewInt(15000000), big.NewInt(0), // fees_accrued
		big.NewInt(3000), // utilization_bps
		big.NewInt(510),  // average_rate_bps
	}
	r := newTestReader(t, stub)

	dash, err := r.MarketDashboard(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", dash.Market.PairID)
	// Analytics scaled with the market's decimals fetched in the same bundle.
	assert.Equal(t, "5000", dash.Analytics.TotalVolume.String())
	assert.Equal(t, "15", dash.Analytics.FeesAccrued.String())
	assert.Equal(t, "30", dash.Analytics.UtilizationPct.String())
	assert.Equal(t, "5.1", dash.Analytics.AverageRatePct.String())
}

func TestMarketDashboardAllOrNothing(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	stub.errs["get_pool_analytics"] = errors.New("analytics unavailable")
	r := newTestReader(t, stub)

	_, err := r.MarketDashboard(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analytics unavailable")
}

func TestTradePreview(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_market"] = marketFelts()
	stub.responses["get_swap_quote"] = []*big.Int{
		big.NewInt(20000000), big.NewInt(0),
		big.NewInt(100000000), big.NewInt(0),
		big.NewInt(500),
		big.NewInt(520),
		big.NewInt(20),
	}
	r := newTestReader(t, stub)

	preview, err := r.TradePreview(context.Background(), "1", types.SideFixed, big.NewInt(100000000))
	require.NoError(t, err)
	assert.Equal(t, "5", preview.BaseRatePct.String())
	assert.Equal(t, "5.2", preview.FinalRatePct.String())
	assert.Equal(t, "0.2", preview.ImbalanceAdjustmentPct.String())
	assert.Equal(t, "20", preview.CollateralRequired.String())
	assert.Equal(t, "100", preview.LPCollateralLocked.String())
	assert.Equal(t, "90", preview.UtilizationCapPct.String())
}

func TestSwapDashboard(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_swap"] = []*big.Int{
		big.NewInt(7), big.NewInt(0),
		big.NewInt(1),
		big.NewInt(0xcafe),
		big.NewInt(0),
		big.NewInt(100000000), big.NewInt(0),
		big.NewInt(20000000), big.NewInt(0),
		big.NewInt(520),
		big.NewInt(1700000000),
		big.NewInt(1700604800),
		big.NewInt(0),
	}
	stub.responses["get_health_status"] = []*big.Int{
		big.NewInt(15000), big.NewInt(11000), big.NewInt(1),
	}
	stub.responses["get_current_twa"] = []*big.Int{big.NewInt(512), big.NewInt(0)}
	r := newTestReader(t, stub)

	dash, err := r.SwapDashboard(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "7", dash.Swap.SwapID.String())
	assert.True(t, dash.Health.Liquidatable)
	assert.Equal(t, "512", dash.TWARateBps.String())
	assert.Equal(t, "5.12", dash.TWARatePct.String())
}

func TestSwapDashboardAllOrNothing(t *testing.T) {
	stub := newStubClient()
	stub.responses["get_swap"] = []*big.Int{big.NewInt(7)}
	stub.errs["get_health_status"] = errors.New("down")
	stub.responses["get_current_twa"] = []*big.Int{big.NewInt(512), big.NewInt(0)}
	r := newTestReader(t, stub)

	_, err := r.SwapDashboard(context.Background(), big.NewInt(7))
	assert.Error(t, err)
}

func TestTokenDecimalsCached(t *testing.T) {
	stub := newStubClient()
	stub.responses["decimals"] = []*big.Int{big.NewInt(18)}
	r := newTestReader(t, stub)

	d, err := r.TokenDecimals(context.Background(), "0x1234")
	require.NoError(t, err)
	assert.Equal(t, int32(18), d)

	before := stub.callCount()
	d, err = r.TokenDecimals(context.Background(), "0x1234")
	require.NoError(t, err)
	assert.Equal(t, int32(18), d)
	assert.Equal(t, before, stub.callCount(), "second lookup served from cache")
}

func TestTokenBalance(t *testing.T) {
	stub := newStubClient()
	stub.responses["balance_of"] = []*big.Int{big.NewInt(12500000), big.NewInt(0)}
	stub.responses["decimals"] = []*big.Int{big.NewInt(6)}
	r := newTestReader(t, stub)

	bal, err := r.TokenBalance(context.Background(), "0x1234", "0xcafe")
	require.NoError(t, err)
	assert.Equal(t, "12500000", bal.Units.String())
	assert.Equal(t, int32(6), bal.Decimals)
	assert.Equal(t, "12.5", bal.Formatted.String())
}

func TestTokenBalanceAllOrNothing(t *testing.T) {
	stub := newStubClient()
	stub.errs["balance_of"] = errors.New("down")
	stub.responses["decimals"] = []*big.Int{big.NewInt(6)}
	r := newTestReader(t, stub)

	_, err := r.TokenBalance(context.Background(), "0x1234", "0xcafe")
	assert.Error(t, err)
}
