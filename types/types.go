// Package types holds domain types shared across the client.
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the user-chosen side of a swap position.
type Side string

const (
	SideFixed    Side = "FIXED"
	SideFloating Side = "FLOATING"
)

// Discriminant returns the contract-level enum discriminant for the side.
// FIXED is 0 and FLOATING is 1; the mapping is a contract convention and is
// never inferred dynamically.
func (s Side) Discriminant() (string, error) {
	switch s {
	case SideFixed:
		return "0", nil
	case SideFloating:
		return "1", nil
	default:
		return "", fmt.Errorf("types: unknown side %q", string(s))
	}
}

// ParseSide normalizes user input into a Side.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToUpper(s)); side {
	case SideFixed, SideFloating:
		return side, nil
	default:
		return "", fmt.Errorf("types: unknown side %q", s)
	}
}

// SwapIntent captures one user's configuration of a swap before submission.
// It exists only while the transaction is being assembled and is discarded
// afterwards.
type SwapIntent struct {
	PairID     string
	Side       Side
	Notional   decimal.Decimal
	Collateral decimal.Decimal
	MaxRateBps uint64
}
