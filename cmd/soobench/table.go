package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/astef/soomask/internal/bench"
)

var rule = strings.Repeat("-", 88)

func printConfig(w io.Writer, cfg bench.Config) {
	fmt.Fprintf(w, "soobench: warmup=%v min_measure=%v target_ops=%s safety_checks=%v\n\n",
		cfg.Warmup, cfg.MinDuration, humanize.Comma(int64(cfg.TargetOps)), cfg.SafetyChecks)
}

func printHeader(w io.Writer, bits uint) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, rule)
	bold.Fprintf(w, "Bitmask benchmark - bits: %s\n", humanize.Comma(int64(bits)))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-20s | %-16s | %-12s | %-12s | %s\n", "Test", "Ops", "Time(s)", "Mops/sec", "Readable Mops/sec")
	fmt.Fprintln(w, rule)
}

func printResult(w io.Writer, r bench.Result) {
	mops := r.MopsPerSec()
	line := fmt.Sprintf("%-20s | %-16s | %-12.6f | %-12.2f | %s Mops/s",
		r.Name,
		humanize.Comma(int64(r.Ops)),
		r.Elapsed.Seconds(),
		mops,
		humanize.CommafWithDigits(mops, 2),
	)
	if r.Interrupted {
		color.New(color.FgYellow).Fprintln(w, line+" (interrupted)")
		return
	}
	fmt.Fprintln(w, line)
}
