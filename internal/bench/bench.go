// Package bench measures throughput of soomask operations: a fixed set of
// cases per mask length, each run repeatedly until enough work was timed.
package bench

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/astef/soomask"
)

// Case is a unit of benchmarked work. One call of Fn performs Ops operations
// on a mask of Bits bits.
type Case struct {
	Name string
	Bits uint
	Ops  uint64
	Fn   func()
}

// Result of running a single case.
type Result struct {
	Name    string
	Bits    uint
	Ops     uint64
	Elapsed time.Duration
	// set when the context ended the measurement early
	Interrupted bool
}

// OpsPerSec returns the measured throughput, 0 if nothing was timed.
func (r Result) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// MopsPerSec is OpsPerSec in millions.
func (r Result) MopsPerSec() float64 {
	return r.OpsPerSec() / 1e6
}

var sink bool

// Cases builds the benchmark cases for masks of the given length. The
// returned func releases every mask the cases work on and must be called
// once they are no longer run.
func Cases(bits uint, opts ...soomask.Option) ([]Case, func(), error) {
	const maskCount = 8
	masks := make([]*soomask.Mask, 0, maskCount)
	cleanup := func() {
		for _, m := range masks {
			m.Delete()
		}
	}
	for i := 0; i < maskCount; i++ {
		m, err := soomask.New(bits, opts...)
		if err != nil {
			cleanup()
			return nil, nil, errors.Wrapf(err, "create %v bit mask", bits)
		}
		masks = append(masks, m)
	}
	set, get, flip, count, fill, a, b, ranges :=
		masks[0], masks[1], masks[2], masks[3], masks[4], masks[5], masks[6], masks[7]
	b.Fill()

	ops := uint64(bits)
	last := bits - 1
	if bits == 0 {
		last = 0
	} else if err := checkOps(last, set, get, flip, ranges); err != nil {
		cleanup()
		return nil, nil, err
	}
	cases := []Case{
		{Name: "create/destroy", Ops: 1, Fn: func() {
			m, err := soomask.New(bits, opts...)
			if err == nil {
				m.Delete()
			}
		}},
		{Name: "set all bits", Ops: ops, Fn: func() {
			for i := uint(0); i < bits; i++ {
				_ = set.Set(i, true)
			}
			set.Clear()
		}},
		{Name: "get all bits", Ops: ops, Fn: func() {
			acc := false
			for i := uint(0); i < bits; i++ {
				v, _ := get.Get(i)
				acc = acc != v
			}
			sink = acc
		}},
		{Name: "flip all bits", Ops: ops, Fn: func() {
			for i := uint(0); i < bits; i++ {
				_ = flip.Flip(i)
			}
		}},
		{Name: "count bits", Ops: 1, Fn: func() {
			sink = count.Count() != 0
		}},
		{Name: "fill+clear", Ops: 2 * ops, Fn: func() {
			fill.Fill()
			fill.Clear()
		}},
		{Name: "and/or/xor/not", Ops: 4 * ops, Fn: func() {
			a.And(b)
			a.Or(b)
			a.Xor(b)
			a.Not()
		}},
		{Name: "set range", Ops: ops, Fn: func() {
			_ = ranges.SetRange(0, last, true)
		}},
		{Name: "flip range", Ops: ops, Fn: func() {
			_ = ranges.FlipRange(0, last)
		}},
	}
	if bits == 0 {
		// nothing to touch, keep create/destroy only
		cases = cases[:1]
	}
	for i := range cases {
		cases[i].Bits = bits
	}
	return cases, cleanup, nil
}

// checkOps runs every error-returning operation the cases time once, on the
// last index, and leaves the masks cleared. The timed loops drop those errors.
func checkOps(last uint, set, get, flip, ranges *soomask.Mask) error {
	if err := set.Set(last, true); err != nil {
		return errors.Wrap(err, "set all bits")
	}
	set.Clear()
	if _, err := get.Get(last); err != nil {
		return errors.Wrap(err, "get all bits")
	}
	for i := 0; i < 2; i++ {
		if err := flip.Flip(last); err != nil {
			return errors.Wrap(err, "flip all bits")
		}
	}
	if err := ranges.SetRange(0, last, true); err != nil {
		return errors.Wrap(err, "set range")
	}
	if err := ranges.FlipRange(0, last); err != nil {
		return errors.Wrap(err, "flip range")
	}
	return nil
}

// Calls are timed in batches. A batch doubles while it stays shorter than
// batchTarget, up to maxBatch calls.
const (
	maxBatch    = 1 << 12
	batchTarget = 10 * time.Millisecond
)

// Run calls c.Fn for cfg.Warmup, then keeps calling and timing it until at
// least cfg.MinDuration elapsed and cfg.TargetOps operations were done, or
// ctx is done.
func Run(ctx context.Context, c Case, cfg Config) Result {
	res := Result{Name: c.Name, Bits: c.Bits}

	warmupEnd := time.Now().Add(cfg.Warmup)
	for time.Now().Before(warmupEnd) {
		if ctx.Err() != nil {
			res.Interrupted = true
			return res
		}
		c.Fn()
	}

	batch := 1
	for res.Elapsed < cfg.MinDuration || res.Ops < cfg.TargetOps {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		start := time.Now()
		for i := 0; i < batch; i++ {
			c.Fn()
		}
		took := time.Since(start)
		res.Elapsed += took
		res.Ops += c.Ops * uint64(batch)

		if c.Ops == 0 && res.Elapsed >= cfg.MinDuration {
			// TargetOps is unreachable
			break
		}
		if batch < maxBatch && took < batchTarget {
			batch *= 2
		}
	}
	return res
}

// RunAll runs every case for each configured length and hands the results to
// report in order. It stops at the first length whose masks cannot be
// created or when ctx is done.
func RunAll(ctx context.Context, cfg Config, report func(Result)) error {
	opts := []soomask.Option{soomask.WithSafetyChecks(cfg.SafetyChecks)}
	for _, bits := range cfg.Sizes {
		cases, cleanup, err := Cases(bits, opts...)
		if err != nil {
			return err
		}
		for _, c := range cases {
			res := Run(ctx, c, cfg)
			report(res)
			if res.Interrupted {
				cleanup()
				return ctx.Err()
			}
		}
		cleanup()
	}
	return nil
}
