// Package quote derives UI-facing preview figures from a market snapshot and
// user-entered amounts. Authoritative pricing comes from the on-chain quote
// query; everything computed locally here is a display preview only.
package quote

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/asceswap/go-asceswap/scale"
)

// SwapQuote carries the figures returned verbatim by the contract's
// get_swap_quote entrypoint. The client does not derive these; it only
// unit-converts them for display.
type SwapQuote struct {
	RequiredCollateral *big.Int
	LPCollateralToLock *big.Int

	BaseRateBps            uint64
	FinalRateBps           uint64
	ImbalanceAdjustmentBps uint64
}

// Display is a SwapQuote converted to human units for rendering.
type Display struct {
	RequiredCollateral decimal.Decimal
	LPCollateralToLock decimal.Decimal

	BaseRatePct            decimal.Decimal
	FinalRatePct           decimal.Decimal
	ImbalanceAdjustmentPct decimal.Decimal
}

// Display converts the quote to human units using the market's decimals.
func (q SwapQuote) Display(decimals int32) Display {
	return Display{
		RequiredCollateral:     scale.FromBaseUnits(q.RequiredCollateral, decimals),
		LPCollateralToLock:     scale.FromBaseUnits(q.LPCollateralToLock, decimals),
		BaseRatePct:            scale.BpsToPercent(int64(q.BaseRateBps)),
		FinalRatePct:           scale.BpsToPercent(int64(q.FinalRateBps)),
		ImbalanceAdjustmentPct: scale.BpsToPercent(int64(q.ImbalanceAdjustmentBps)),
	}
}
