// Package config loads mstgraphd's runtime configuration from, in
// increasing precedence: compiled-in defaults, a YAML file, environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Core names which concurrency core serves client connections.
type Core string

const (
	CorePipeline Core = "pipeline"
	CoreLF       Core = "lf"
)

// Config is the full set of values mstgraphd needs to start.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Core       Core   `yaml:"core"`
	PoolSize   int    `yaml:"pool_size"`
	LogLevel   string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the compiled-in baseline every other layer overrides.
func Default() Config {
	return Config{
		ListenAddr:  "0.0.0.0:4050",
		Core:        CorePipeline,
		PoolSize:    4,
		LogLevel:    "info",
		MetricsAddr: "127.0.0.1:9090",
	}
}

// FromFile reads a YAML file and overlays it on top of cfg, leaving
// fields the file doesn't mention untouched. A missing file is not an
// error — it just means this layer contributes nothing.
func FromFile(cfg Config, path string) (Config, error) {
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

// envOverrides layers MSTGRAPHD_* environment variables on top of cfg.
func envOverrides(cfg Config) Config {
	if v, ok := os.LookupEnv("MSTGRAPHD_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("MSTGRAPHD_CORE"); ok {
		cfg.Core = Core(v)
	}
	if v, ok := os.LookupEnv("MSTGRAPHD_POOL_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PoolSize = n
		}
	}
	if v, ok := os.LookupEnv("MSTGRAPHD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("MSTGRAPHD_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}

	return cfg
}

// BindFlags registers every config field onto fs with cfg's current
// values as defaults, so flags layer on top of file+env without the
// caller needing to know which fields were actually set on the command
// line — pflag only mutates what the user passed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "TCP listen address (host:port)")
	fs.StringVar((*string)(&cfg.Core), "core", string(cfg.Core), "concurrency core: pipeline or lf")
	fs.IntVar(&cfg.PoolSize, "pool-size", cfg.PoolSize, "Leader-Follower thread pool size (ignored for the pipeline core)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus /metrics listen address")
}

// Load assembles the non-flag layers: Default -> FromFile -> environment.
// Flags are not applied here; the caller binds them with BindFlags and
// then keeps, field by field, the flag value where a flag was passed and
// the loaded value otherwise (see cmd/mstgraphd).
func Load(yamlPath string) (Config, error) {
	cfg := Default()
	cfg, err := FromFile(cfg, yamlPath)
	if err != nil {
		return cfg, err
	}
	cfg = envOverrides(cfg)

	return cfg, nil
}

// Validate rejects a Config that would fail at startup anyway, so main
// can report one clear error instead of an opaque listen/bind failure.
func (c Config) Validate() error {
	if c.Core != CorePipeline && c.Core != CoreLF {
		return fmt.Errorf("config: core must be %q or %q, got %q", CorePipeline, CoreLF, c.Core)
	}
	if c.Core == CoreLF && c.PoolSize < 1 {
		return fmt.Errorf("config: pool_size must be >= 1, got %d", c.PoolSize)
	}

	return nil
}
