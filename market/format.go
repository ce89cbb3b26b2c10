// Package market decodes raw on-chain market records and formats them into
// normalized application-level snapshots.
package market

import (
	"time"

	"github.com/asceswap/go-asceswap/scale"
	"github.com/asceswap/go-asceswap/u256"
)

const (
	secondsPerDay    = 86400
	secondsPerMinute = 60
)

// Format maps a raw on-chain record into a Snapshot.
//
// Policy, preserved exactly:
//   - Status is a tag-only discriminator: the empty variant (tag 0) is
//     ACTIVE, any populated variant is PAUSED.
//   - Monetary figures are decoded through the u256 codec and scaled with the
//     market's own decimals field, never a hardcoded count.
//   - Rate-like parameters are stored in basis points and exposed as percent.
//   - AvailableLiquidity is computed after scaling to human units and is not
//     clamped when negative.
func Format(raw RawMarket) Snapshot {
	decimals := int32(raw.Decimals)

	status := StatusPaused
	if raw.StatusTag == 0 {
		status = StatusActive
	}

	totalCollateral := scale.FromBaseUnits(u256.Decode(raw.TotalCollateral), decimals)
	lockedFixed := scale.FromBaseUnits(u256.Decode(raw.LockedForFixed), decimals)
	lockedFloating := scale.FromBaseUnits(u256.Decode(raw.LockedForFloating), decimals)

	return Snapshot{
		PairID: raw.PairID.String(),
		Status: status,

		Oracle:          u256.HexAddress(raw.RateOracle),
		Curator:         u256.HexAddress(raw.Curator),
		CollateralToken: u256.HexAddress(raw.CollateralToken),

		Decimals: decimals,

		Rate: RateInfo{
			CurrentPct:  scale.BpsToPercent(int64(raw.LastRateBps)),
			LastUpdated: time.Unix(int64(raw.LastUpdateTime), 0).UTC(),
		},

		Pool: PoolState{
			TotalCollateral:    totalCollateral,
			LockedFixed:        lockedFixed,
			LockedFloating:     lockedFloating,
			AvailableLiquidity: totalCollateral.Sub(lockedFixed).Sub(lockedFloating),
		},

		Params: RiskParams{
			LiquidationThresholdPct:    scale.BpsToPercent(int64(raw.LiquidationThresholdBps)),
			InitialMarginMultiplierPct: scale.BpsToPercent(int64(raw.InitialMarginMultiplierBps)),
			MinMarginFloorPct:          scale.BpsToPercent(int64(raw.MinMarginFloorBps)),

			SwapTermDays:         float64(raw.SwapTermSeconds) / secondsPerDay,
			MinHoldPeriodMinutes: float64(raw.MinHoldPeriodSeconds) / secondsPerMinute,

			SwapFeePct:          scale.BpsToPercent(int64(raw.SwapFeeBps)),
			EarlyExitFeePct:     scale.BpsToPercent(int64(raw.EarlyExitFeeBps)),
			LiquidationBonusPct: scale.BpsToPercent(int64(raw.LiquidationBonusBps)),
			FeeSpreadPct:        scale.BpsToPercent(int64(raw.FeeSpreadBps)),

			MaxUtilizationPct: scale.BpsToPercent(int64(raw.MaxUtilizationBps)),

			MinNotional: scale.FromBaseUnits(u256.Decode(raw.MinNotional), decimals),
			MaxNotional: scale.FromBaseUnits(u256.Decode(raw.MaxNotionalPerSwap), decimals),

			MaxOracleStalenessSeconds: raw.MaxOracleStalenessSeconds,
			MaxRateChangePct:          scale.BpsToPercent(int64(raw.MaxRateChangePerUpdateBps)),

			MinRatePct: scale.BpsToPercent(int64(raw.MinRateBps)),
			MaxRatePct: scale.BpsToPercent(int64(raw.MaxRateBps)),

			IsLPPermissioned: raw.IsLPPermissioned == 1,
		},

		Stats: Stats{
			TotalSwaps:  raw.TotalSwapsCreated,
			ActiveSwaps: raw.ActiveSwapCount,
		},
	}
}
