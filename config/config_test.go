package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.NetworkTimeout.Std())
	assert.Equal(t, float64(20), cfg.RPCRateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RPCRateLimit.BurstSize)
	assert.Equal(t, 256, cfg.DecimalsCacheSize)

	// Defaults alone are not a runnable config; the endpoint and addresses
	// must come from a file or the environment.
	assert.Error(t, cfg.ValidateConfig())
}

func TestValidateConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RPCEndpoint = "http://localhost:5050"
	cfg.ProtocolAddress = "0x1"
	cfg.OracleAddress = "0x2"
	assert.NoError(t, cfg.ValidateConfig())

	cfg.OracleAddress = ""
	err := cfg.ValidateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle_address")
}

func TestValidateConfigJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NetworkTimeout = 0
	err := cfg.ValidateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc_endpoint")
	assert.Contains(t, err.Error(), "network_timeout")
}

func TestRateLimitValidate(t *testing.T) {
	rl := RateLimitConfig{RequestsPerSecond: 10, BurstSize: 20}
	assert.NoError(t, rl.Validate())

	rl.RequestsPerSecond = 0
	assert.Error(t, rl.Validate())

	rl = RateLimitConfig{RequestsPerSecond: 10, BurstSize: 0}
	assert.Error(t, rl.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc_endpoint: http://localhost:5050
protocol_address: "0x1"
oracle_address: "0x2"
mock_token_address: "0x3"
network_timeout: 15s
decimals_cache_size: 64
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5050", cfg.RPCEndpoint)
	assert.Equal(t, "0x1", cfg.ProtocolAddress)
	assert.Equal(t, "0x3", cfg.MockTokenAddress)
	assert.Equal(t, 15*time.Second, cfg.NetworkTimeout.Std())
	assert.Equal(t, 64, cfg.DecimalsCacheSize)
	// Unset knobs keep their defaults.
	assert.Equal(t, 40, cfg.RPCRateLimit.BurstSize)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc_endpoint: http://localhost:5050
protocol_address: "0x1"
oracle_address: "0x2"
`), 0o644))

	t.Setenv(EnvRPCURL, "http://override:6060")
	t.Setenv(EnvProtocolAddress, "0xff")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override:6060", cfg.RPCEndpoint)
	assert.Equal(t, "0xff", cfg.ProtocolAddress)
	assert.Equal(t, "0x2", cfg.OracleAddress)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rpc_endpoint: http://localhost:5050\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("ASCESWAP_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvWithDefault("ASCESWAP_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvWithDefault("ASCESWAP_TEST_KEY_ABSENT", "fallback"))
}
