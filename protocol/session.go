// Package protocol exposes the typed read entrypoints of the swap protocol,
// concurrent dashboard aggregation, and atomic batch submission. All wallet
// state is explicit: operations that act on behalf of an account take a
// Session parameter, never ambient process state.
package protocol

import (
	"errors"

	"github.com/asceswap/go-asceswap/u256"
)

// ErrNotConnected is returned when no usable wallet session is available.
var ErrNotConnected = errors.New("protocol: wallet not connected")

// Session identifies the connected account for one sequence of operations.
// It is obtained once at the boundary and threaded through as a parameter.
type Session struct {
	// Account is the account's felt address in 0x-hex form.
	Account string
}

// NewSession validates the account identifier and builds a session.
func NewSession(account string) (Session, error) {
	s := Session{Account: account}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Validate rejects absent and zero/placeholder account addresses. The check
// runs before any network call.
func (s Session) Validate() error {
	if s.Account == "" || s.Account == "0x" {
		return ErrNotConnected
	}
	felt, err := u256.ParseFelt(s.Account)
	if err != nil || felt.Sign() == 0 {
		return ErrNotConnected
	}
	return nil
}
