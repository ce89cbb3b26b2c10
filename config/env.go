package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvRPCURL           = "ASCESWAP_RPC_URL"
	EnvProtocolAddress  = "ASCESWAP_PROTOCOL_ADDRESS"
	EnvOracleAddress    = "ASCESWAP_ORACLE_ADDRESS"
	EnvMockTokenAddress = "ASCESWAP_MOCK_TOKEN_ADDRESS" // test environments only
)

// LoadEnv loads environment variables from a .env file when one exists.
func LoadEnv() error {
	return godotenv.Load()
}

// GetEnvWithDefault gets an environment variable with a default value
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
