package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/astef/soomask"
	"github.com/astef/soomask/internal/bench"
)

var (
	flagConfigFile = flag.String("config.file", "", "YAML file with benchmark settings. Flags given on the command line take precedence.")
	flagDemo       = flag.Bool("demo", true, "Print the flip range demo mask.")
	flagBench      = flag.Bool("bench", true, "Run the benchmark table.")
	flagLogLevel   = newLogLevelFlag(zerolog.InfoLevel, "log-level", "Log level (trace, debug, info, warn, error, fatal, panic)")

	benchConfig bench.Config
)

func init() {
	benchConfig.RegisterFlags(flag.CommandLine)
}

func newLogLevelFlag(value zerolog.Level, name string, usage string) *logLevelFlag {
	p := &logLevelFlag{level: value}
	flag.Var(p, name, usage)
	return p
}

// logLevelFlag implements flag.Value for zerolog.Level
type logLevelFlag struct {
	level zerolog.Level
}

func (f *logLevelFlag) String() string {
	return f.level.String()
}

func (f *logLevelFlag) Set(value string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil {
		return err
	}
	f.level = level
	return nil
}

func (f *logLevelFlag) Get() zerolog.Level {
	return f.level
}

func initLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.
		New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		}).
		With().Timestamp().
		Logger()
}

// loadConfig applies the config file, then the command line again so that
// explicit flags win over the file.
func loadConfig() error {
	if *flagConfigFile == "" {
		return nil
	}
	if err := bench.LoadFile(*flagConfigFile, &benchConfig); err != nil {
		return err
	}
	return flag.CommandLine.Parse(os.Args[1:])
}

func runDemo() error {
	m, err := soomask.New(64)
	if err != nil {
		return err
	}
	defer m.Delete()

	if err := m.FlipRange(10, 54); err != nil {
		return errors.Wrap(err, "demo flip range")
	}
	log.Debug().Str("mask", m.String()).Uint("count", m.Count()).Msg("Demo mask")
	return m.Print(os.Stdout, " ", "\n")
}

func runBench(ctx context.Context) error {
	printConfig(os.Stdout, benchConfig)

	current := uint(0)
	return bench.RunAll(ctx, benchConfig, func(r bench.Result) {
		if r.Bits != current {
			if current != 0 {
				fmt.Println()
			}
			current = r.Bits
			printHeader(os.Stdout, r.Bits)
		}
		log.Debug().
			Str("case", r.Name).
			Uint("bits", r.Bits).
			Uint64("ops", r.Ops).
			Dur("elapsed", r.Elapsed).
			Msg("Case done")
		printResult(os.Stdout, r)
	})
}

func main() {
	flag.Parse()
	initLogging(flagLogLevel.Get())

	if err := loadConfig(); err != nil {
		log.Error().Err(err).Msg("Can't load config")
		os.Exit(1)
	}
	if err := benchConfig.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid benchmark config")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *flagDemo {
		if err := runDemo(); err != nil {
			log.Error().Err(err).Msg("Demo failed")
			os.Exit(1)
		}
	}
	if *flagBench {
		if err := runBench(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Warn().Msg("Benchmark interrupted")
				return
			}
			log.Error().Err(err).Msg("Benchmark failed")
			os.Exit(1)
		}
	}
}
