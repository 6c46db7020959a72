package tsuiseki

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config carries world tuning knobs, loadable from YAML.
type Config struct {
	// InitialCapacity is the number of entities to pre-allocate.
	InitialCapacity int `yaml:"initial_capacity"`
	// BatchSize is the default rows-per-batch for QueryBatched.
	BatchSize int `yaml:"batch_size"`
	// LogLevel is a zap level name ("debug", "info", ...), or "off".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the tuning defaults.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 1024,
		BatchSize:       defaultBatchSize,
		LogLevel:        "off",
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ecs: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ecs: read config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) validate() error {
	if c.InitialCapacity < 0 {
		return fmt.Errorf("ecs: initial_capacity must not be negative, got %d", c.InitialCapacity)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("ecs: batch_size must be positive, got %d", c.BatchSize)
	}
	if c.LogLevel != "" && c.LogLevel != "off" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("ecs: log_level: %w", err)
		}
	}
	return nil
}

func (c Config) buildLogger() (*zap.Logger, error) {
	if c.LogLevel == "" || c.LogLevel == "off" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("ecs: log_level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// NewWorldFromConfig builds a world from a validated Config. Options given
// here run after the config is applied and may override it.
func NewWorldFromConfig(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger, err := cfg.buildLogger()
	if err != nil {
		return nil, err
	}
	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithLogger(logger), WithDefaultBatchSize(cfg.BatchSize))
	all = append(all, opts...)
	return NewWorld(cfg.InitialCapacity, all...), nil
}
