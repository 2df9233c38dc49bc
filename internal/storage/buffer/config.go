package buffer

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config carries the buffer manager's construction-time parameters.
// It is decodable from a loosely-typed map, so a CLI flag set or an
// environment-derived map can build one without a bespoke parser.
type Config struct {
	// PoolSize is the number of frames in the pool (N).
	PoolSize int `mapstructure:"pool_size"`

	// MaxSweepLoops bounds allocBuf's clock sweep to MaxSweepLoops*N
	// ticks before giving up, guaranteeing termination even if a
	// future change to the sweep rules breaks the 2N bound the current
	// rule set always satisfies. Defaults to 2.
	MaxSweepLoops int `mapstructure:"max_sweep_loops"`

	// Verbose logs page loads, allocations and evictions through glog
	// (at V(1)) and logs the PrintSelf dump. Write-backs are not logged,
	// and errors are returned rather than logged; Close logs its
	// write-back failures whether or not Verbose is set.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the Config New(poolSize) builds under the
// hood, preserving the public constructor's bare-poolSize signature
// while giving callers who need more control a typed struct to start
// from.
func DefaultConfig(poolSize int) Config {
	return Config{
		PoolSize:      poolSize,
		MaxSweepLoops: 2,
		Verbose:       false,
	}
}

// ConfigFromMap decodes a generic map into a Config, filling in
// DefaultConfig's zero values for anything the map omits.
func ConfigFromMap(m map[string]interface{}) (Config, error) {
	cfg := DefaultConfig(0)
	if err := mapstructure.Decode(m, &cfg); err != nil {
		return Config{}, fmt.Errorf("buffer: decode config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PoolSize <= 0 {
		return fmt.Errorf("buffer: pool size must be positive, got %d", c.PoolSize)
	}
	if c.MaxSweepLoops <= 0 {
		return fmt.Errorf("buffer: max sweep loops must be positive, got %d", c.MaxSweepLoops)
	}
	return nil
}
