package protocol

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/asceswap/go-asceswap/market"
	"github.com/asceswap/go-asceswap/quote"
	"github.com/asceswap/go-asceswap/types"
)

// Aggregates fan out their independent sub-queries concurrently and join
// with all-or-nothing semantics: one failing read fails the whole bundle,
// and nothing is retried implicitly.

// MarketDashboard is the market page bundle.
type MarketDashboard struct {
	Market    market.Snapshot
	Analytics PoolAnalytics
}

// MarketDashboard fetches the market and its pool analytics concurrently.
func (r *Reader) MarketDashboard(ctx context.Context, pairID string) (MarketDashboard, error) {
	var (
		snap market.Snapshot
		raw  RawPoolAnalytics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = r.GetMarket(gctx, pairID)
		return err
	})
	g.Go(func() error {
		var err error
		raw, err = r.GetPoolAnalyticsRaw(gctx, pairID)
		return err
	})
	if err := g.Wait(); err != nil {
		return MarketDashboard{}, fmt.Errorf("market dashboard: %w", err)
	}

	return MarketDashboard{
		Market:    snap,
		Analytics: FormatAnalytics(raw, snap.Decimals),
	}, nil
}

// TradePreview is the trade configuration bundle: the contract's
// authoritative quote converted for display, plus the market's utilization
// cap.
type TradePreview struct {
	BaseRatePct            decimal.Decimal
	FinalRatePct           decimal.Decimal
	ImbalanceAdjustmentPct decimal.Decimal

	CollateralRequired decimal.Decimal
	LPCollateralLocked decimal.Decimal

	UtilizationCapPct decimal.Decimal
}

// TradePreview fetches the market and a swap quote concurrently and joins
// them into one preview.
func (r *Reader) TradePreview(ctx context.Context, pairID string, side types.Side, notionalUnits *big.Int) (TradePreview, error) {
	var (
		snap market.Snapshot
		q    quote.SwapQuote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = r.GetMarket(gctx, pairID)
		return err
	})
	g.Go(func() error {
		var err error
		q, err = r.GetSwapQuote(gctx, pairID, side, notionalUnits)
		return err
	})
	if err := g.Wait(); err != nil {
		return TradePreview{}, fmt.Errorf("trade preview: %w", err)
	}

	display := q.Display(snap.Decimals)
	return TradePreview{
		BaseRatePct:            display.BaseRatePct,
		FinalRatePct:           display.FinalRatePct,
		ImbalanceAdjustmentPct: display.ImbalanceAdjustmentPct,
		CollateralRequired:     display.RequiredCollateral,
		LPCollateralLocked:     display.LPCollateralToLock,
		UtilizationCapPct:      snap.Params.MaxUtilizationPct,
	}, nil
}

// SwapDashboard is the position page bundle.
type SwapDashboard struct {
	Swap       SwapRecord
	Health     HealthStatus
	TWARateBps *big.Int
	TWARatePct decimal.Decimal
}

// SwapDashboard fetches the swap record, its health status, and the live
// time-weighted rate concurrently.
func (r *Reader) SwapDashboard(ctx context.Context, swapID *big.Int) (SwapDashboard, error) {
	var (
		rec    SwapRecord
		health HealthStatus
		twa    *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = r.GetSwap(gctx, swapID)
		return err
	})
	g.Go(func() error {
		var err error
		health, err = r.GetSwapHealth(gctx, swapID)
		return err
	})
	g.Go(func() error {
		var err error
		twa, err = r.GetCurrentTWA(gctx, swapID)
		return err
	})
	if err := g.Wait(); err != nil {
		return SwapDashboard{}, fmt.Errorf("swap dashboard: %w", err)
	}

	return SwapDashboard{
		Swap:       rec,
		Health:     health,
		TWARateBps: twa,
		TWARatePct: decimal.NewFromBigInt(twa, -2),
	}, nil
}
