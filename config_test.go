package tsuiseki_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kasaix/tsuiseki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -run ^TestParseConfig$ . -count 1
func TestParseConfig(t *testing.T) {
	cfg, err := tsuiseki.ParseConfig([]byte(`
initial_capacity: 512
batch_size: 128
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.InitialCapacity)
	assert.Equal(t, 128, cfg.BatchSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// go test -run ^TestParseConfigDefaults$ . -count 1
func TestParseConfigDefaults(t *testing.T) {
	cfg, err := tsuiseki.ParseConfig([]byte(`initial_capacity: 10`))
	require.NoError(t, err)

	def := tsuiseki.DefaultConfig()
	assert.Equal(t, 10, cfg.InitialCapacity)
	assert.Equal(t, def.BatchSize, cfg.BatchSize)
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
}

// go test -run ^TestParseConfigRejectsInvalid$ . -count 1
func TestParseConfigRejectsInvalid(t *testing.T) {
	_, err := tsuiseki.ParseConfig([]byte(`batch_size: -1`))
	assert.Error(t, err)

	_, err = tsuiseki.ParseConfig([]byte(`initial_capacity: -5`))
	assert.Error(t, err)

	_, err = tsuiseki.ParseConfig([]byte(`log_level: shouting`))
	assert.Error(t, err)

	_, err = tsuiseki.ParseConfig([]byte(`batch_size: [nonsense`))
	assert.Error(t, err)
}

// go test -run ^TestLoadConfigFile$ . -count 1
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: 7\n"), 0o644))

	cfg, err := tsuiseki.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.BatchSize)

	_, err = tsuiseki.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// go test -run ^TestNewWorldFromConfig$ . -count 1
func TestNewWorldFromConfig(t *testing.T) {
	cfg := tsuiseki.DefaultConfig()
	cfg.InitialCapacity = 8
	cfg.BatchSize = 4

	w, err := tsuiseki.NewWorldFromConfig(cfg)
	require.NoError(t, err)

	tsuiseki.SpawnBatch(w, 10, Health{})
	bit := w.QueryBatched(0, tsuiseki.Ref[Health](w))
	b, ok := bit.Next()
	require.True(t, ok)
	assert.Equal(t, 4, b.Len(), "configured batch size must be the fallback")

	cfg.BatchSize = 0
	_, err = tsuiseki.NewWorldFromConfig(cfg)
	assert.Error(t, err)
}
