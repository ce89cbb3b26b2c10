package u256

import (
	"fmt"
	"math/big"
)

// Reader walks the flat felt sequence returned by a contract read. Decoders
// consume fields in the exact order fixed by the contract ABI.
type Reader struct {
	felts []*big.Int
	pos   int
}

// NewReader wraps a result felt slice.
func NewReader(felts []*big.Int) *Reader {
	return &Reader{felts: felts}
}

// Felt returns the next raw field element.
func (r *Reader) Felt() (*big.Int, error) {
	if r.pos >= len(r.felts) {
		return nil, fmt.Errorf("u256: truncated result at felt %d", r.pos)
	}
	v := r.felts[r.pos]
	r.pos++
	if v == nil {
		return nil, fmt.Errorf("u256: nil felt at %d", r.pos-1)
	}
	return v, nil
}

// Uint64 returns the next felt narrowed to u64.
func (r *Reader) Uint64() (uint64, error) {
	v, err := r.Felt()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("u256: felt %d exceeds u64: %s", r.pos-1, v.String())
	}
	return v.Uint64(), nil
}

// Wire consumes the next two felts as a low-then-high u256 pair.
func (r *Reader) Wire() (Wire, error) {
	low, err := r.Felt()
	if err != nil {
		return Wire{}, err
	}
	high, err := r.Felt()
	if err != nil {
		return Wire{}, err
	}
	w, err := FromLimbs(low, high)
	if err != nil {
		return Wire{}, fmt.Errorf("u256: felt %d: %w", r.pos-2, err)
	}
	return w, nil
}

// Remaining reports how many felts are left unread.
func (r *Reader) Remaining() int {
	return len(r.felts) - r.pos
}

// Done returns an error if any felts are left unread; a leftover felt means
// the caller and the contract disagree about the result layout.
func (r *Reader) Done() error {
	if n := r.Remaining(); n > 0 {
		return fmt.Errorf("u256: %d trailing felts in result", n)
	}
	return nil
}
