package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(16)
	assert.Equal(t, 16, cfg.PoolSize)
	assert.Equal(t, 2, cfg.MaxSweepLoops)
	assert.False(t, cfg.Verbose)
	require.NoError(t, cfg.validate())
}

func TestConfigFromMapFillsDefaults(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]interface{}{
		"pool_size": 32,
	})
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.PoolSize)
	assert.Equal(t, 2, cfg.MaxSweepLoops, "omitted fields keep DefaultConfig's values")
}

func TestConfigFromMapOverridesAll(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]interface{}{
		"pool_size":       64,
		"max_sweep_loops": 5,
		"verbose":         true,
	})
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.PoolSize)
	assert.Equal(t, 5, cfg.MaxSweepLoops)
	assert.True(t, cfg.Verbose)
}

func TestConfigFromMapRejectsWrongType(t *testing.T) {
	_, err := ConfigFromMap(map[string]interface{}{
		"pool_size": "not-a-number",
	})
	assert.Error(t, err)
}

func TestConfigValidateRejectsNonPositivePoolSize(t *testing.T) {
	cfg := DefaultConfig(0)
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig(-3)
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsNonPositiveMaxSweepLoops(t *testing.T) {
	cfg := DefaultConfig(4)
	cfg.MaxSweepLoops = 0
	assert.Error(t, cfg.validate())
}

func TestNewWithConfigPanicsOnInvalidConfig(t *testing.T) {
	assert.Panics(t, func() {
		NewWithConfig(Config{PoolSize: 0, MaxSweepLoops: 2})
	})
}
