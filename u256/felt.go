package u256

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HexAddress renders a field-element address as lowercase hexadecimal with a
// 0x prefix. Addresses are opaque identifiers; no checksumming is applied.
func HexAddress(felt *big.Int) string {
	if felt == nil {
		return "0x0"
	}
	return hexutil.EncodeBig(felt)
}

// ParseFelt parses a field element from its 0x-hex wire form. Leading zeros
// are tolerated; field elements are frequently rendered zero-padded.
func ParseFelt(s string) (*big.Int, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hex == "" {
		return nil, fmt.Errorf("u256: empty felt %q", s)
	}
	v, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return nil, fmt.Errorf("u256: invalid felt %q", s)
	}
	return v, nil
}

// FeltHex renders a field element in its 0x-hex wire form.
func FeltHex(felt *big.Int) string {
	return hexutil.EncodeBig(felt)
}
