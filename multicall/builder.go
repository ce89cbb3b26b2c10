package multicall

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/asceswap/go-asceswap/types"
	"github.com/asceswap/go-asceswap/u256"
)

// SupplyLiquidity builds the two-call batch for supplying LP collateral:
// approve the protocol for the amount, then supply it to the pair. The
// amount is integer base units; human-decimal conversion happens upstream.
func SupplyLiquidity(token, protocol, pairID string, amount *big.Int) (Batch, error) {
	wire, err := u256.Encode(amount)
	if err != nil {
		return Batch{}, fmt.Errorf("multicall: supply amount: %w", err)
	}

	return Batch{Calls: []Call{
		{
			To:         token,
			Entrypoint: EntrypointApprove,
			Calldata:   append([]string{protocol}, wire.Calldata()...),
		},
		{
			To:         protocol,
			Entrypoint: EntrypointSupplyLPCollateral,
			Calldata:   append([]string{pairID}, wire.Calldata()...),
		},
	}}, nil
}

// OpenSwapParams describes one open-position intent to encode.
type OpenSwapParams struct {
	Token    string
	Protocol string
	Oracle   string

	PairID     string
	Side       types.Side
	Notional   *big.Int // base units
	Collateral *big.Int // base units
	MaxRate    *big.Int // basis points

	// RefreshOracle prepends a set_rate call when the oracle needs a fresh
	// tick before the rate is read.
	RefreshOracle  bool
	OracleRate     *big.Int // basis points, required with RefreshOracle
	ChainTimestamp uint64   // latest block timestamp, required with RefreshOracle
}

// OpenSwap builds the batch for opening a swap position. Call order is
// fixed: set_rate (when refreshing) strictly before approve, approve
// strictly before buy_swap.
//
// Any timestamp placed in calldata must be the chain's own clock, read from
// the latest block; a caller-local wall clock would race the contract's u64
// time representation.
func OpenSwap(p OpenSwapParams) (Batch, error) {
	sideValue, err := p.Side.Discriminant()
	if err != nil {
		return Batch{}, fmt.Errorf("multicall: %w", err)
	}

	notional, err := u256.Encode(p.Notional)
	if err != nil {
		return Batch{}, fmt.Errorf("multicall: notional: %w", err)
	}
	collateral, err := u256.Encode(p.Collateral)
	if err != nil {
		return Batch{}, fmt.Errorf("multicall: collateral: %w", err)
	}
	maxRate, err := u256.Encode(p.MaxRate)
	if err != nil {
		return Batch{}, fmt.Errorf("multicall: max rate: %w", err)
	}

	var calls []Call

	if p.RefreshOracle {
		if p.ChainTimestamp == 0 {
			return Batch{}, fmt.Errorf("multicall: oracle refresh requires a chain timestamp")
		}
		rate, err := u256.Encode(p.OracleRate)
		if err != nil {
			return Batch{}, fmt.Errorf("multicall: oracle rate: %w", err)
		}
		calls = append(calls, Call{
			To:         p.Oracle,
			Entrypoint: EntrypointSetRate,
			Calldata:   append(rate.Calldata(), strconv.FormatUint(p.ChainTimestamp, 10)),
		})
	}

	calls = append(calls,
		Call{
			To:         p.Token,
			Entrypoint: EntrypointApprove,
			Calldata:   append([]string{p.Protocol}, collateral.Calldata()...),
		},
		Call{
			To:         p.Protocol,
			Entrypoint: EntrypointBuySwap,
			Calldata: concat(
				[]string{p.PairID, sideValue},
				notional.Calldata(),
				collateral.Calldata(),
				maxRate.Calldata(),
			),
		},
	)

	return Batch{Calls: calls}, nil
}

// MintMockToken builds the single-call faucet batch for the test token.
func MintMockToken(token, recipient string, amount *big.Int) (Batch, error) {
	wire, err := u256.Encode(amount)
	if err != nil {
		return Batch{}, fmt.Errorf("multicall: mint amount: %w", err)
	}

	return Batch{Calls: []Call{
		{
			To:         token,
			Entrypoint: EntrypointMint,
			Calldata:   append([]string{recipient}, wire.Calldata()...),
		},
	}}, nil
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
