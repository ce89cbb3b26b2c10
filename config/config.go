package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Duration wraps time.Duration so YAML values can use the "30s"/"1m" form.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config carries everything the client needs at process start: the RPC
// endpoint and the fixed contract addresses, plus client-side knobs. The
// contract addresses are external configuration, not protocol logic.
type Config struct {
	// Chain and network settings
	RPCEndpoint      string `yaml:"rpc_endpoint"`
	ProtocolAddress  string `yaml:"protocol_address"`
	OracleAddress    string `yaml:"oracle_address"`
	MockTokenAddress string `yaml:"mock_token_address"` // test environments only

	// Network settings
	NetworkTimeout Duration        `yaml:"network_timeout"`
	RPCRateLimit   RateLimitConfig `yaml:"rpc_rate_limit"`

	// Client-side caches
	DecimalsCacheSize int `yaml:"decimals_cache_size"`

	// Display heuristics
	PremiumTablePath string `yaml:"premium_table_path"`

	// Feature flags
	PrometheusEnabled  bool   `yaml:"prometheus_enabled"`
	PrometheusEndpoint string `yaml:"prometheus_endpoint"`

	// Internal components
	Logger *zap.Logger `yaml:"-"`
}

// RateLimitConfig bounds outbound RPC traffic.
type RateLimitConfig struct {
	RequestsPerSecond float64  `yaml:"requests_per_second"`
	BurstSize         int      `yaml:"burst_size"`
	WaitTimeout       Duration `yaml:"wait_timeout"`
}

// Validate checks rate limit settings.
func (c *RateLimitConfig) Validate() error {
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if c.BurstSize <= 0 {
		return fmt.Errorf("burst_size must be positive")
	}
	return nil
}

// DefaultConfig returns a config with sane client defaults. Addresses and
// the endpoint still have to come from a file or the environment.
func DefaultConfig() *Config {
	return &Config{
		NetworkTimeout: Duration(30 * time.Second),
		RPCRateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			BurstSize:         40,
			WaitTimeout:       Duration(10 * time.Second),
		},
		DecimalsCacheSize: 256,
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// and environment overrides, in that order of precedence (env wins).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvRPCURL); v != "" {
		cfg.RPCEndpoint = v
	}
	if v := os.Getenv(EnvProtocolAddress); v != "" {
		cfg.ProtocolAddress = v
	}
	if v := os.Getenv(EnvOracleAddress); v != "" {
		cfg.OracleAddress = v
	}
	if v := os.Getenv(EnvMockTokenAddress); v != "" {
		cfg.MockTokenAddress = v
	}
}

// ValidateConfig verifies that every required setting is present.
func (c *Config) ValidateConfig() error {
	var errs []string

	if c.RPCEndpoint == "" {
		errs = append(errs, "rpc_endpoint must be specified")
	}
	if c.ProtocolAddress == "" {
		errs = append(errs, "protocol_address must be specified")
	}
	if c.OracleAddress == "" {
		errs = append(errs, "oracle_address must be specified")
	}
	if c.NetworkTimeout <= 0 {
		errs = append(errs, "network_timeout must be positive")
	}
	if c.DecimalsCacheSize <= 0 {
		errs = append(errs, "decimals_cache_size must be positive")
	}
	if err := c.RPCRateLimit.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("RPC rate limit error: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
