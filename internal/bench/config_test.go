package bench

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, 100*time.Millisecond, cfg.Warmup)
	assert.Equal(t, 250*time.Millisecond, cfg.MinDuration)
	assert.Equal(t, uint64(10_000_000), cfg.TargetOps)
	assert.Equal(t, Sizes{64, 128, 512}, cfg.Sizes)
	assert.True(t, cfg.SafetyChecks)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFlags(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlagsWithPrefix("bench.", fs)

	err := fs.Parse([]string{
		"-bench.warmup=5ms",
		"-bench.min-duration=1s",
		"-bench.target-ops=42",
		"-bench.sizes=64, 4096,1048576",
		"-bench.safety-checks=false",
	})

	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, cfg.Warmup)
	assert.Equal(t, time.Second, cfg.MinDuration)
	assert.Equal(t, uint64(42), cfg.TargetOps)
	assert.Equal(t, Sizes{64, 4096, 1048576}, cfg.Sizes)
	assert.Equal(t, "64,4096,1048576", cfg.Sizes.String())
	assert.False(t, cfg.SafetyChecks)
}

func TestSizesInvalid(t *testing.T) {
	var s Sizes

	assert.Error(t, s.Set("64,abc"))
	assert.Error(t, s.Set("-1"))
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]struct {
		mutate func(cfg *Config)
		valid  bool
	}{
		"ok":                {func(cfg *Config) {}, true},
		"negative_warmup":   {func(cfg *Config) { cfg.Warmup = -time.Second }, false},
		"no_stop_condition": {func(cfg *Config) { cfg.MinDuration, cfg.TargetOps = 0, 0 }, false},
		"ops_only":          {func(cfg *Config) { cfg.MinDuration = 0 }, true},
		"no_sizes":          {func(cfg *Config) { cfg.Sizes = nil }, false},
		"zero_size":         {func(cfg *Config) { cfg.Sizes = Sizes{64, 0} }, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := quickConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
min_duration: 2s
target_ops: 1000
sizes: [64, 257]
`), 0o600))
	cfg := quickConfig()

	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, time.Duration(0), cfg.Warmup)
	assert.Equal(t, 2*time.Second, cfg.MinDuration)
	assert.Equal(t, uint64(1000), cfg.TargetOps)
	assert.Equal(t, Sizes{64, 257}, cfg.Sizes)
	assert.True(t, cfg.SafetyChecks)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	cfg := quickConfig()
	assert.NoError(t, LoadFile(empty, &cfg))
	assert.Equal(t, quickConfig(), cfg)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("sizez: [1]\n"), 0o600))
	assert.Error(t, LoadFile(unknown, &cfg))

	assert.Error(t, LoadFile(filepath.Join(dir, "missing.yaml"), &cfg))
}
