// Package multicall assembles ordered contract-call batches for atomic
// submission. A batch encodes a required execution order: an approval must
// precede the call that spends it, and an oracle refresh must precede the
// call that reads the rate. Atomicity itself is delegated to the execution
// environment's multicall semantics; this package is responsible only for
// ordering and encoding.
package multicall

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Entrypoints form the closed set of write operations this client can emit.
// Adding a call site means adding a constant here, never passing a free-form
// string.
const (
	EntrypointApprove            = "approve"
	EntrypointMint               = "mint"
	EntrypointSupplyLPCollateral = "supply_lp_collateral"
	EntrypointBuySwap            = "buy_swap"
	EntrypointSetRate            = "set_rate"
)

// Call is one contract invocation inside a batch. Calldata felts are decimal
// strings; u256 amounts occupy two consecutive slots, low then high.
type Call struct {
	To         string
	Entrypoint string
	Calldata   []string
}

// Batch is an ordered sequence of calls submitted as a single all-or-nothing
// unit.
type Batch struct {
	Calls []Call
}

// ID is a stable hash of the batch's canonical encoding, used to correlate
// log lines with submissions.
func (b Batch) ID() uint64 {
	h := xxhash.New()
	for i, c := range b.Calls {
		_, _ = h.WriteString(strconv.Itoa(i))
		_, _ = h.WriteString("|")
		_, _ = h.WriteString(c.To)
		_, _ = h.WriteString("|")
		_, _ = h.WriteString(c.Entrypoint)
		for _, felt := range c.Calldata {
			_, _ = h.WriteString("|")
			_, _ = h.WriteString(felt)
		}
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

// Len returns the number of calls in the batch.
func (b Batch) Len() int {
	return len(b.Calls)
}
