package market

import (
	"fmt"
	"math/big"

	"github.com/asceswap/go-asceswap/u256"
)

// RawMarket mirrors the on-chain market record, field for field, before any
// unit conversion. Amount fields keep their two-limb wire form; rates are
// integer basis points; durations are seconds.
type RawMarket struct {
	PairID    *big.Int
	StatusTag uint64

	RateOracle      *big.Int
	Curator         *big.Int
	CollateralToken *big.Int

	Decimals uint64

	LastRateBps    uint64
	LastUpdateTime uint64

	TotalCollateral   u256.Wire
	LockedForFixed    u256.Wire
	LockedForFloating u256.Wire

	LiquidationThresholdBps    uint64
	InitialMarginMultiplierBps uint64
	MinMarginFloorBps          uint64
	SwapTermSeconds            uint64
	MinHoldPeriodSeconds       uint64
	SwapFeeBps                 uint64
	EarlyExitFeeBps            uint64
	LiquidationBonusBps        uint64
	FeeSpreadBps               uint64
	MaxUtilizationBps          uint64
	MinNotional                u256.Wire
	MaxNotionalPerSwap         u256.Wire
	MaxOracleStalenessSeconds  uint64
	MaxRateChangePerUpdateBps  uint64
	MinRateBps                 uint64
	MaxRateBps                 uint64
	IsLPPermissioned           uint64

	TotalSwapsCreated uint64
	ActiveSwapCount   uint64
}

// DecodeRaw decodes the felt sequence returned by get_market. Field order is
// fixed by the contract ABI; a leftover or missing felt means the record and
// this client disagree about the layout.
func DecodeRaw(felts []*big.Int) (RawMarket, error) {
	r := u256.NewReader(felts)
	var raw RawMarket
	var err error

	if raw.PairID, err = r.Felt(); err != nil {
		return RawMarket{}, fmt.Errorf("market: pair_id: %w", err)
	}
	if raw.StatusTag, err = r.Uint64(); err != nil {
		return RawMarket{}, fmt.Errorf("market: status: %w", err)
	}
	if raw.RateOracle, err = r.Felt(); err != nil {
		return RawMarket{}, fmt.Errorf("market: rate_oracle: %w", err)
	}
	if raw.Curator, err = r.Felt(); err != nil {
		return RawMarket{}, fmt.Errorf("market: curator: %w", err)
	}
	if raw.CollateralToken, err = r.Felt(); err != nil {
		return RawMarket{}, fmt.Errorf("market: collateral_token: %w", err)
	}
	if raw.Decimals, err = r.Uint64(); err != nil {
		return RawMarket{}, fmt.Errorf("market: decimals: %w", err)
	}
	if raw.LastRateBps, err = r.Uint64(); err != nil {
		return RawMarket{}, fmt.Errorf("market: last_rate_bps: %w", err)
	}
	if raw.LastUpdateTime, err = r.Uint64(); err != nil {
		return RawMarket{}, fmt.Errorf("market: last_update_time: %w", err)
	}
	if raw.TotalCollateral, err = r.Wire(); err != nil {
		return RawMarket{}, fmt.Errorf("market: total_collateral: %w", err)
	}
	if raw.LockedForFixed, err = r.Wire(); err != nil {
		return RawMarket{}, fmt.Errorf("market: locked_for_fixed: %w", err)
	}
	if raw.LockedForFloating, err = r.Wire(); err != nil {
		return RawMarket{}, fmt.Errorf("market: locked_for_floating: %w", err)
	}

	u64Fields := []struct {
		name string
		dst  *uint64
	}{
		{"liquidation_threshold_bps", &raw.LiquidationThresholdBps},
		{"initial_margin_multiplier_bps", &raw.InitialMarginMultiplierBps},
		{"min_margin_floor_bps", &raw.MinMarginFloorBps},
		{"swap_term_seconds", &raw.SwapTermSeconds},
		{"min_hold_period_seconds", &raw.MinHoldPeriodSeconds},
		{"swap_fee_bps", &raw.SwapFeeBps},
		{"early_exit_fee_bps", &raw.EarlyExitFeeBps},
		{"liquidation_bonus_bps", &raw.LiquidationBonusBps},
		{"fee_spread_bps", &raw.FeeSpreadBps},
		{"max_utilization_bps", &raw.MaxUtilizationBps},
	}
	for _, f := range u64Fields {
		if *f.dst, err = r.Uint64(); err != nil {
			return RawMarket{}, fmt.Errorf("market: %s: %w", f.name, err)
		}
	}

	if raw.MinNotional, err = r.Wire(); err != nil {
		return RawMarket{}, fmt.Errorf("market: min_notional: %w", err)
	}
	if raw.MaxNotionalPerSwap, err = r.Wire(); err != nil {
		return RawMarket{}, fmt.Errorf("market: max_notional_per_swap: %w", err)
	}

	tailFields := []struct {
		name string
		dst  *uint64
	}{
		{"max_oracle_staleness_seconds", &raw.MaxOracleStalenessSeconds},
		{"max_rate_change_per_update_bps", &raw.MaxRateChangePerUpdateBps},
		{"min_rate_bps", &raw.MinRateBps},
		{"max_rate_bps", &raw.MaxRateBps},
		{"is_lp_permissioned", &raw.IsLPPermissioned},
		{"total_swaps_created", &raw.TotalSwapsCreated},
		{"active_swap_count", &raw.ActiveSwapCount},
	}
	for _, f := range tailFields {
		if *f.dst, err = r.Uint64(); err != nil {
			return RawMarket{}, fmt.Errorf("market: %s: %w", f.name, err)
		}
	}

	if err := r.Done(); err != nil {
		return RawMarket{}, fmt.Errorf("market: %w", err)
	}
	return raw, nil
}
