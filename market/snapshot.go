package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the market lifecycle state derived from the raw status variant.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusPaused Status = "PAUSED"
)

// RateInfo is the market's current floating rate and its oracle timestamp.
type RateInfo struct {
	CurrentPct  decimal.Decimal
	LastUpdated time.Time
}

// PoolState holds the market's pool balances in human units.
// AvailableLiquidity may be negative; that signals an inconsistent on-chain
// state and is deliberately not clamped.
type PoolState struct {
	TotalCollateral    decimal.Decimal
	LockedFixed        decimal.Decimal
	LockedFloating     decimal.Decimal
	AvailableLiquidity decimal.Decimal
}

// RiskParams holds the market's risk and configuration parameters in
// display units (percent, days, minutes, human token amounts).
type RiskParams struct {
	LiquidationThresholdPct    decimal.Decimal
	InitialMarginMultiplierPct decimal.Decimal
	MinMarginFloorPct          decimal.Decimal

	SwapTermDays         float64
	MinHoldPeriodMinutes float64

	SwapFeePct          decimal.Decimal
	EarlyExitFeePct     decimal.Decimal
	LiquidationBonusPct decimal.Decimal
	FeeSpreadPct        decimal.Decimal

	MaxUtilizationPct decimal.Decimal

	MinNotional decimal.Decimal
	MaxNotional decimal.Decimal

	MaxOracleStalenessSeconds uint64
	MaxRateChangePct          decimal.Decimal

	MinRatePct decimal.Decimal
	MaxRatePct decimal.Decimal

	IsLPPermissioned bool
}

// Stats holds the market's swap counters.
type Stats struct {
	TotalSwaps  uint64
	ActiveSwaps uint64
}

// Snapshot is the normalized application-level view of one market. It is an
// immutable value object: every read constructs a fresh one, and a snapshot
// is never mutated in place.
type Snapshot struct {
	PairID string
	Status Status

	Oracle          string
	Curator         string
	CollateralToken string

	Decimals int32

	Rate   RateInfo
	Pool   PoolState
	Params RiskParams
	Stats  Stats
}
