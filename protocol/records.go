package protocol

import (
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/asceswap/go-asceswap/scale"
	"github.com/asceswap/go-asceswap/types"
	"github.com/asceswap/go-asceswap/u256"
)

// RawPoolAnalytics is the pool analytics record before unit conversion.
type RawPoolAnalytics struct {
	TotalVolume    u256.Wire
	FeesAccrued    u256.Wire
	UtilizationBps uint64
	AverageRateBps uint64
}

func decodeRawAnalytics(felts []*big.Int) (RawPoolAnalytics, error) {
	r := u256.NewReader(felts)
	var raw RawPoolAnalytics
	var err error

	if raw.TotalVolume, err = r.Wire(); err != nil {
		return RawPoolAnalytics{}, fmt.Errorf("protocol: total_volume: %w", err)
	}
	if raw.FeesAccrued, err = r.Wire(); err != nil {
		return RawPoolAnalytics{}, fmt.Errorf("protocol: fees_accrued: %w", err)
	}
	if raw.UtilizationBps, err = r.Uint64(); err != nil {
		return RawPoolAnalytics{}, fmt.Errorf("protocol: utilization_bps: %w", err)
	}
	if raw.AverageRateBps, err = r.Uint64(); err != nil {
		return RawPoolAnalytics{}, fmt.Errorf("protocol: average_rate_bps: %w", err)
	}
	if err := r.Done(); err != nil {
		return RawPoolAnalytics{}, fmt.Errorf("protocol: analytics: %w", err)
	}
	return raw, nil
}

// PoolAnalytics is the analytics record in human units.
type PoolAnalytics struct {
	TotalVolume    decimal.Decimal
	FeesAccrued    decimal.Decimal
	UtilizationPct decimal.Decimal
	AverageRatePct decimal.Decimal
}

// FormatAnalytics scales a raw analytics record using the market's decimals.
func FormatAnalytics(raw RawPoolAnalytics, decimals int32) PoolAnalytics {
	return PoolAnalytics{
		TotalVolume:    scale.FromBaseUnits(u256.Decode(raw.TotalVolume), decimals),
		FeesAccrued:    scale.FromBaseUnits(u256.Decode(raw.FeesAccrued), decimals),
		UtilizationPct: scale.BpsToPercent(int64(raw.UtilizationBps)),
		AverageRatePct: scale.BpsToPercent(int64(raw.AverageRateBps)),
	}
}

// ProtocolConfig is the protocol-level configuration record.
type ProtocolConfig struct {
	FeeRecipient   string
	ProtocolFeePct decimal.Decimal
	MaxMarkets     uint64
	Paused         bool
}

func decodeProtocolConfig(felts []*big.Int) (ProtocolConfig, error) {
	r := u256.NewReader(felts)

	recipient, err := r.Felt()
	if err != nil {
		return ProtocolConfig{}, fmt.Errorf("protocol: fee_recipient: %w", err)
	}
	feeBps, err := r.Uint64()
	if err != nil {
		return ProtocolConfig{}, fmt.Errorf("protocol: protocol_fee_bps: %w", err)
	}
	maxMarkets, err := r.Uint64()
	if err != nil {
		return ProtocolConfig{}, fmt.Errorf("protocol: max_markets: %w", err)
	}
	pausedTag, err := r.Uint64()
	if err != nil {
		return ProtocolConfig{}, fmt.Errorf("protocol: paused: %w", err)
	}
	if err := r.Done(); err != nil {
		return ProtocolConfig{}, fmt.Errorf("protocol: config: %w", err)
	}

	return ProtocolConfig{
		FeeRecipient:   u256.HexAddress(recipient),
		ProtocolFeePct: scale.BpsToPercent(int64(feeBps)),
		MaxMarkets:     maxMarkets,
		Paused:         pausedTag != 0,
	}, nil
}

// SwapStatus is the lifecycle state of one swap position.
type SwapStatus string

const (
	SwapOpen       SwapStatus = "OPEN"
	SwapSettled    SwapStatus = "SETTLED"
	SwapLiquidated SwapStatus = "LIQUIDATED"
)

// SwapRecord is one swap position as stored on-chain. Amounts stay in base
// units; the market's decimals are needed to display them.
type SwapRecord struct {
	SwapID *big.Int
	PairID string
	Owner  string
	Side   types.Side

	NotionalUnits   *big.Int
	CollateralUnits *big.Int

	EntryRateBps uint64
	StartTime    time.Time
	MaturityTime time.Time

	Status SwapStatus
}

func decodeSwapRecord(felts []*big.Int) (SwapRecord, error) {
	r := u256.NewReader(felts)
	var rec SwapRecord

	swapID, err := r.Wire()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: swap_id: %w", err)
	}
	rec.SwapID = u256.Decode(swapID)

	pairID, err := r.Felt()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: pair_id: %w", err)
	}
	rec.PairID = pairID.String()

	owner, err := r.Felt()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: owner: %w", err)
	}
	rec.Owner = u256.HexAddress(owner)

	sideTag, err := r.Uint64()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: side: %w", err)
	}
	switch sideTag {
	case 0:
		rec.Side = types.SideFixed
	case 1:
		rec.Side = types.SideFloating
	default:
		return SwapRecord{}, fmt.Errorf("protocol: unknown side tag %d", sideTag)
	}

	notional, err := r.Wire()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: notional: %w", err)
	}
	rec.NotionalUnits = u256.Decode(notional)

	collateral, err := r.Wire()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: collateral: %w", err)
	}
	rec.CollateralUnits = u256.Decode(collateral)

	if rec.EntryRateBps, err = r.Uint64(); err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: entry_rate_bps: %w", err)
	}

	start, err := r.Uint64()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: start_time: %w", err)
	}
	rec.StartTime = time.Unix(int64(start), 0).UTC()

	maturity, err := r.Uint64()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: maturity_time: %w", err)
	}
	rec.MaturityTime = time.Unix(int64(maturity), 0).UTC()

	statusTag, err := r.Uint64()
	if err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: status: %w", err)
	}
	switch statusTag {
	case 0:
		rec.Status = SwapOpen
	case 1:
		rec.Status = SwapSettled
	case 2:
		rec.Status = SwapLiquidated
	default:
		return SwapRecord{}, fmt.Errorf("protocol: unknown swap status tag %d", statusTag)
	}

	if err := r.Done(); err != nil {
		return SwapRecord{}, fmt.Errorf("protocol: swap: %w", err)
	}
	return rec, nil
}

// HealthStatus is the liquidation view of one swap position.
type HealthStatus struct {
	CollateralRatioPct      decimal.Decimal
	LiquidationThresholdPct decimal.Decimal
	Liquidatable            bool
}

func decodeHealthStatus(felts []*big.Int) (HealthStatus, error) {
	r := u256.NewReader(felts)

	ratioBps, err := r.Uint64()
	if err != nil {
		return HealthStatus{}, fmt.Errorf("protocol: collateral_ratio_bps: %w", err)
	}
	thresholdBps, err := r.Uint64()
	if err != nil {
		return HealthStatus{}, fmt.Errorf("protocol: liquidation_threshold_bps: %w", err)
	}
	liqTag, err := r.Uint64()
	if err != nil {
		return HealthStatus{}, fmt.Errorf("protocol: is_liquidatable: %w", err)
	}
	if err := r.Done(); err != nil {
		return HealthStatus{}, fmt.Errorf("protocol: health: %w", err)
	}

	return HealthStatus{
		CollateralRatioPct:      scale.BpsToPercent(int64(ratioBps)),
		LiquidationThresholdPct: scale.BpsToPercent(int64(thresholdBps)),
		Liquidatable:            liqTag != 0,
	}, nil
}

func decodeQuote(felts []*big.Int) (required, lpLock u256.Wire, baseBps, finalBps, imbalanceBps uint64, err error) {
	r := u256.NewReader(felts)

	if required, err = r.Wire(); err != nil {
		return required, lpLock, 0, 0, 0, fmt.Errorf("protocol: required_collateral: %w", err)
	}
	if lpLock, err = r.Wire(); err != nil {
		return required, lpLock, 0, 0, 0, fmt.Errorf("protocol: lp_collateral_to_lock: %w", err)
	}
	if baseBps, err = r.Uint64(); err != nil {
		return required, lpLock, 0, 0, 0, fmt.Errorf("protocol: base_rate_bps: %w", err)
	}
	if finalBps, err = r.Uint64(); err != nil {
		return required, lpLock, 0, 0, 0, fmt.Errorf("protocol: final_rate_bps: %w", err)
	}
	if imbalanceBps, err = r.Uint64(); err != nil {
		return required, lpLock, 0, 0, 0, fmt.Errorf("protocol: imbalance_adjustment_bps: %w", err)
	}
	if err = r.Done(); err != nil {
		return required, lpLock, 0, 0, 0, fmt.Errorf("protocol: quote: %w", err)
	}
	return required, lpLock, baseBps, finalBps, imbalanceBps, nil
}
