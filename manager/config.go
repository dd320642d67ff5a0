package manager

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kvcraft/unicache/policy"
	"github.com/kvcraft/unicache/policy/fifo"
	"github.com/kvcraft/unicache/policy/lfu"
	"github.com/kvcraft/unicache/policy/lru"
	"github.com/kvcraft/unicache/policy/random"
	"github.com/kvcraft/unicache/policy/sizebased"
)

// CacheConfig configures one named cache owned by the manager.
type CacheConfig struct {
	MaxEntries                       int    `mapstructure:"max_entries"`
	DefaultTTLSeconds                int    `mapstructure:"default_ttl_seconds"`
	EvictionPolicy                   string `mapstructure:"eviction_policy"`
	BackgroundCleanupIntervalSeconds int    `mapstructure:"background_cleanup_interval_seconds"`
	MaxMemoryMB                      int64  `mapstructure:"max_memory_mb"`
	CompressionThresholdKB           int64  `mapstructure:"compression_threshold_kb"`
	EnableMetrics                    bool   `mapstructure:"enable_metrics"`
}

// Config holds the preset for every cache the manager owns, plus the
// optional janitor schedule (a cron/v3 expression such as "@every 5m",
// empty disables the janitor).
type Config struct {
	Diagnostic      CacheConfig `mapstructure:"diagnostic"`
	Explanation     CacheConfig `mapstructure:"explanation"`
	Performance     CacheConfig `mapstructure:"performance"`
	JanitorSchedule string      `mapstructure:"janitor_schedule"`
}

// DefaultConfig returns the built-in presets.
func DefaultConfig() Config {
	return Config{
		Diagnostic: CacheConfig{
			MaxEntries:                       1000,
			DefaultTTLSeconds:                300,
			EvictionPolicy:                   "lru",
			BackgroundCleanupIntervalSeconds: 300,
		},
		Explanation: CacheConfig{
			MaxEntries:                       2000,
			DefaultTTLSeconds:                86400,
			EvictionPolicy:                   "lfu",
			BackgroundCleanupIntervalSeconds: 600,
		},
		Performance: CacheConfig{
			MaxEntries:                       5000,
			DefaultTTLSeconds:                60,
			EvictionPolicy:                   "fifo",
			BackgroundCleanupIntervalSeconds: 60,
		},
	}
}

// LoadConfig reads a YAML config file, layering it over the defaults.
// Any value can also be overridden via UNICACHE_ environment variables,
// e.g. UNICACHE_DIAGNOSTIC_MAX_ENTRIES=500. An empty path loads defaults
// plus environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, "diagnostic", DefaultConfig().Diagnostic)
	setDefaults(v, "explanation", DefaultConfig().Explanation)
	setDefaults(v, "performance", DefaultConfig().Performance)
	v.SetDefault("janitor_schedule", "")

	v.SetEnvPrefix("UNICACHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, prefix string, c CacheConfig) {
	v.SetDefault(prefix+".max_entries", c.MaxEntries)
	v.SetDefault(prefix+".default_ttl_seconds", c.DefaultTTLSeconds)
	v.SetDefault(prefix+".eviction_policy", c.EvictionPolicy)
	v.SetDefault(prefix+".background_cleanup_interval_seconds", c.BackgroundCleanupIntervalSeconds)
	v.SetDefault(prefix+".max_memory_mb", c.MaxMemoryMB)
	v.SetDefault(prefix+".compression_threshold_kb", c.CompressionThresholdKB)
	v.SetDefault(prefix+".enable_metrics", c.EnableMetrics)
}

// Validate rejects presets the cache constructor would refuse anyway,
// so a bad config file fails before any cache is built.
func (c Config) Validate() error {
	for name, cc := range map[string]CacheConfig{
		"diagnostic":  c.Diagnostic,
		"explanation": c.Explanation,
		"performance": c.Performance,
	} {
		if cc.MaxEntries <= 0 {
			return fmt.Errorf("cache %s: max_entries must be positive, got %d", name, cc.MaxEntries)
		}
		if cc.DefaultTTLSeconds < 0 {
			return fmt.Errorf("cache %s: default_ttl_seconds must be non-negative, got %d", name, cc.DefaultTTLSeconds)
		}
		if cc.BackgroundCleanupIntervalSeconds < 0 {
			return fmt.Errorf("cache %s: background_cleanup_interval_seconds must be non-negative, got %d", name, cc.BackgroundCleanupIntervalSeconds)
		}
		if _, err := policyByName(cc.EvictionPolicy); err != nil {
			return fmt.Errorf("cache %s: %w", name, err)
		}
	}
	return nil
}

func (c CacheConfig) defaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLSeconds) * time.Second
}

func (c CacheConfig) cleanupInterval() time.Duration {
	return time.Duration(c.BackgroundCleanupIntervalSeconds) * time.Second
}

// policyByName maps a config-file policy name to an implementation.
func policyByName(name string) (policy.Policy[string], error) {
	switch strings.ToLower(name) {
	case "lru":
		return lru.New[string](), nil
	case "lfu":
		return lfu.New[string](), nil
	case "fifo":
		return fifo.New[string](), nil
	case "random":
		return random.New[string](), nil
	case "size_based", "sizebased":
		return sizebased.New[string](), nil
	default:
		return nil, fmt.Errorf("unknown eviction policy %q", name)
	}
}
