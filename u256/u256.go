// Package u256 converts between arbitrary-precision integers and the
// two-limb (low, high) wire representation used by the protocol contracts.
package u256

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// LimbBits is the width of a single wire limb.
const LimbBits = 128

// ErrOutOfRange is returned when a value cannot be represented as an
// unsigned 256-bit integer.
var ErrOutOfRange = errors.New("u256: value out of range [0, 2^256)")

var limbMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), LimbBits), big.NewInt(1))

// Wire is the two-limb on-the-wire encoding of a 256-bit unsigned integer.
// The represented value is Low + High<<128. Both limbs are in [0, 2^128).
type Wire struct {
	Low  *big.Int
	High *big.Int
}

// Encode splits v into its low/high 128-bit limbs. Values outside
// [0, 2^256) are rejected with ErrOutOfRange.
func Encode(v *big.Int) (Wire, error) {
	if v == nil || v.Sign() < 0 {
		return Wire{}, fmt.Errorf("%w: negative value", ErrOutOfRange)
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return Wire{}, fmt.Errorf("%w: %s", ErrOutOfRange, v.String())
	}

	low := new(big.Int).And(v, limbMask)
	high := new(big.Int).Rsh(v, LimbBits)
	return Wire{Low: low, High: high}, nil
}

// EncodeUint64 encodes a small value that is known to be in range.
func EncodeUint64(v uint64) Wire {
	return Wire{Low: new(big.Int).SetUint64(v), High: new(big.Int)}
}

// Decode reconstructs the represented integer from its limbs. The result is
// exact; no floating-point intermediates are involved.
func Decode(w Wire) *big.Int {
	v := new(big.Int)
	if w.High != nil {
		v.Lsh(w.High, LimbBits)
	}
	if w.Low != nil {
		v.Add(v, w.Low)
	}
	return v
}

// FromLimbs builds a Wire from the low-then-high felt pair returned by a
// contract read, validating that each limb fits its 128-bit slot.
func FromLimbs(low, high *big.Int) (Wire, error) {
	for _, limb := range []*big.Int{low, high} {
		if limb == nil || limb.Sign() < 0 || limb.BitLen() > LimbBits {
			return Wire{}, fmt.Errorf("%w: invalid limb", ErrOutOfRange)
		}
	}
	return Wire{Low: new(big.Int).Set(low), High: new(big.Int).Set(high)}, nil
}

// Calldata renders the limbs in calldata order (low then high) as decimal
// strings.
func (w Wire) Calldata() []string {
	return []string{w.Low.String(), w.High.String()}
}

// String implements fmt.Stringer for logging.
func (w Wire) String() string {
	return Decode(w).String()
}
