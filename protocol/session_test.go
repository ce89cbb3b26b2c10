package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	sess, err := NewSession("0x4d2")
	require.NoError(t, err)
	assert.Equal(t, "0x4d2", sess.Account)
}

func TestSessionValidate(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid", "0x4d2", false},
		{"valid padded", "0x04d2", false},
		{"empty", "", true},
		{"bare prefix", "0x", true},
		{"zero address", "0x0", true},
		{"padded zero", "0x0000", true},
		{"garbage", "not-an-address", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.account)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotConnected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionRejectedBeforeNetwork(t *testing.T) {
	stub := newStubClient()
	svc := newTestService(t, stub)

	_, err := svc.SupplyLiquidity(context.Background(), Session{}, "1", dec("100"))
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Zero(t, stub.callCount(), "no network traffic for a disconnected wallet")
}
