package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/decoders"
	"github.com/Aleph-Alpha/brokerlens/v1/inspect"
	"github.com/Aleph-Alpha/brokerlens/v1/logger"
	"github.com/Aleph-Alpha/brokerlens/v1/metrics"
	"github.com/Aleph-Alpha/brokerlens/v1/schema"
	"github.com/Aleph-Alpha/brokerlens/v1/tracer"
)

// Config is the effective brokerlens configuration.
type Config struct {
	PrefsRoot     string        `mapstructure:"prefs_root"`
	Charset       string        `mapstructure:"charset"`
	AvroEngine    string        `mapstructure:"avro_engine"`
	KeyCodec      string        `mapstructure:"key_codec"`
	FallbackCodec string        `mapstructure:"fallback_codec"`
	Log           logger.Config `mapstructure:"log"`
	Metrics       MetricsConfig `mapstructure:"metrics"`
	Tracing       TracingConfig `mapstructure:"tracing"`
}

// MetricsConfig adds a switch to metrics.Config; short CLI runs usually
// have no use for a /metrics listener.
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	metrics.Config `mapstructure:",squash"`
}

// TracingConfig adds a switch to tracer.Config. Enabling it also turns on
// trace correlation in log entries.
type TracingConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	tracer.Config `mapstructure:",squash"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	prefs := ".brokerlens"
	if home, err := os.UserHomeDir(); err == nil {
		prefs = filepath.Join(home, ".brokerlens")
	}
	return &Config{
		PrefsRoot:     prefs,
		Charset:       "UTF-8",
		AvroEngine:    schema.EngineGoAvro,
		KeyCodec:      inspect.DefaultKeyCodec,
		FallbackCodec: inspect.DefaultFallbackCodec,
		Log: logger.Config{
			Level:       logger.Warning,
			ServiceName: logger.DefaultServiceName,
		},
		Metrics: MetricsConfig{
			Config: metrics.Config{
				Address:                 metrics.DefaultMetricsAddress,
				ServiceName:             logger.DefaultServiceName,
				EnableDefaultCollectors: true,
			},
		},
		Tracing: TracingConfig{
			Config: tracer.Config{
				ServiceName: logger.DefaultServiceName,
			},
		},
	}
}

// LoadConfig reads configuration from path when given, otherwise from
// brokerlens.yaml in the working directory or ~/.brokerlens. Environment
// variables prefixed with BROKERLENS override file values, with "." and
// "-" replaced by "_": BROKERLENS_LOG_LEVEL=debug.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BROKERLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// every key needs a default for env-only configuration to unmarshal
	v.SetDefault("prefs_root", cfg.PrefsRoot)
	v.SetDefault("charset", cfg.Charset)
	v.SetDefault("avro_engine", cfg.AvroEngine)
	v.SetDefault("key_codec", cfg.KeyCodec)
	v.SetDefault("fallback_codec", cfg.FallbackCodec)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.service_name", cfg.Log.ServiceName)
	v.SetDefault("log.enable_tracing", cfg.Log.EnableTracing)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.address", cfg.Metrics.Address)
	v.SetDefault("metrics.service_name", cfg.Metrics.ServiceName)
	v.SetDefault("metrics.enable_default_collectors", cfg.Metrics.EnableDefaultCollectors)
	v.SetDefault("tracing.enabled", cfg.Tracing.Enabled)
	v.SetDefault("tracing.service_name", cfg.Tracing.ServiceName)
	v.SetDefault("tracing.app_env", cfg.Tracing.AppEnv)
	v.SetDefault("tracing.enable_export", cfg.Tracing.EnableExport)

	if path == "" {
		path = os.Getenv("BROKERLENS_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("brokerlens")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".brokerlens"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.PrefsRoot) == "" {
		return fmt.Errorf("prefs_root must not be empty")
	}
	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "warn":
		c.Log.Level = logger.Warning
	case logger.Debug, logger.Info, logger.Warning, logger.Error:
		c.Log.Level = lvl
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	switch c.AvroEngine {
	case "", schema.EngineGoAvro, schema.EngineHamba:
	default:
		return fmt.Errorf("invalid avro_engine: %q", c.AvroEngine)
	}
	if c.Tracing.Enabled {
		c.Log.EnableTracing = true
	}
	return nil
}

func (c *Config) codecConfig() codec.Config       { return codec.Config{Charset: c.Charset} }
func (c *Config) schemaConfig() schema.Config     { return schema.Config{Engine: c.AvroEngine} }
func (c *Config) decodersConfig() decoders.Config { return decoders.Config{PrefsRoot: c.PrefsRoot} }
func (c *Config) inspectConfig() inspect.Config {
	return inspect.Config{KeyCodec: c.KeyCodec, FallbackCodec: c.FallbackCodec}
}
