package bench

import (
	"bytes"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config for a benchmark run.
type Config struct {
	Warmup       time.Duration `yaml:"warmup"`
	MinDuration  time.Duration `yaml:"min_duration"`
	TargetOps    uint64        `yaml:"target_ops"`
	Sizes        Sizes         `yaml:"sizes"`
	SafetyChecks bool          `yaml:"safety_checks"`
}

// RegisterFlags adds the flags required to config this to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("", f)
}

// RegisterFlagsWithPrefix adds the flags required to config this to the given FlagSet
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.DurationVar(&cfg.Warmup, prefix+"warmup", 100*time.Millisecond, "Time each case runs untimed before being measured.")
	f.DurationVar(&cfg.MinDuration, prefix+"min-duration", 250*time.Millisecond, "Minimum measured time per case.")
	f.Uint64Var(&cfg.TargetOps, prefix+"target-ops", 10_000_000, "Minimum number of operations measured per case.")
	f.BoolVar(&cfg.SafetyChecks, prefix+"safety-checks", true, "Validate indexes and ranges in the benchmarked masks.")
	cfg.Sizes = Sizes{64, 128, 512}
	f.Var(&cfg.Sizes, prefix+"sizes", "Comma separated mask lengths in bits.")
}

func (cfg *Config) Validate() error {
	if cfg.Warmup < 0 {
		return errors.Errorf("warmup must not be negative, got %v", cfg.Warmup)
	}
	if cfg.MinDuration <= 0 && cfg.TargetOps == 0 {
		return errors.New("at least one of min duration and target ops must be set")
	}
	if len(cfg.Sizes) == 0 {
		return errors.New("no sizes to benchmark")
	}
	for _, s := range cfg.Sizes {
		if s == 0 {
			return errors.New("sizes must be positive")
		}
	}
	return nil
}

// LoadFile overlays the YAML document at path onto cfg. Keys missing from the
// document keep their current value, unknown keys are an error.
func LoadFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

// Sizes is a list of mask lengths that can be set from a comma separated flag.
type Sizes []uint

func (s *Sizes) String() string {
	parts := make([]string, 0, len(*s))
	for _, v := range *s {
		parts = append(parts, strconv.FormatUint(uint64(v), 10))
	}
	return strings.Join(parts, ",")
}

func (s *Sizes) Set(value string) error {
	var out Sizes
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, strconv.IntSize)
		if err != nil {
			return errors.Wrapf(err, "invalid size %q", part)
		}
		out = append(out, uint(v))
	}
	*s = out
	return nil
}
