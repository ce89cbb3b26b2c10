package quote

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Term is a fixed-rate market term.
type Term string

const (
	Term1D  Term = "1D"
	Term7D  Term = "7D"
	Term30D Term = "30D"
)

const daysPerYear = 365

// TermDays returns the term length in days.
func (t Term) Days() int {
	switch t {
	case Term1D:
		return 1
	case Term7D:
		return 7
	default:
		return 30
	}
}

// ImpliedFixedRate subtracts the term premium from the live spot rate to
// indicate an implied fixed rate for the term. This is a display heuristic
// with no on-chain counterpart; the contract's authoritative price is the
// quote's FinalRateBps.
func ImpliedFixedRate(spotPct decimal.Decimal, term Term, premiums PremiumTable) decimal.Decimal {
	return spotPct.Sub(premiums.For(term))
}

// SpreadBps is the term premium expressed in basis points.
func SpreadBps(term Term, premiums PremiumTable) int64 {
	return premiums.For(term).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Notional derives the position's nominal exposure from the posted
// collateral and the market's initial margin multiplier.
func Notional(collateral, marginMultiplierPct decimal.Decimal) decimal.Decimal {
	return collateral.Mul(marginMultiplierPct).Div(decimal.NewFromInt(100))
}

// DailyEarnings is a simple linear day-count approximation, no compounding:
// notional x (ratePct/100) / 365.
func DailyEarnings(notional, effectiveRatePct decimal.Decimal) decimal.Decimal {
	return notional.Mul(effectiveRatePct).Div(decimal.NewFromInt(100 * daysPerYear))
}

// ClampAmount bounds a user-entered amount to [0, balance] when the wallet
// balance is known, and to [0, inf) when it is not (balance == nil).
func ClampAmount(amount decimal.Decimal, balance *decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	if balance != nil && amount.GreaterThan(*balance) {
		return *balance
	}
	return amount
}

// PortionOfBalance returns pct percent of the balance, rounded to two
// decimal places for input-field display.
func PortionOfBalance(balance decimal.Decimal, pct int64) decimal.Decimal {
	return balance.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)).Round(2)
}

// EfficiencyMultiplier is the capital-efficiency figure shown per term.
func EfficiencyMultiplier(term Term) int {
	switch term {
	case Term1D:
		return 120
	case Term7D:
		return 45
	case Term30D:
		return 15
	default:
		return 10
	}
}

// ExpirationDate derives the position expiry from the term length.
func ExpirationDate(now time.Time, term Term) time.Time {
	return now.AddDate(0, 0, term.Days())
}

// FormatCountdown renders the time remaining until maturity as
// "2d 03h 04m 05s" (days omitted when zero), or "EXPIRED" once elapsed.
func FormatCountdown(remaining time.Duration) string {
	if remaining <= 0 {
		return "EXPIRED"
	}

	days := int(remaining.Hours()) / 24
	hours := int(remaining.Hours()) % 24
	mins := int(remaining.Minutes()) % 60
	secs := int(remaining.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, mins, secs)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", hours, mins, secs)
}
