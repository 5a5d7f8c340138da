package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/delaneyj/signalcell/internal/logging"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const (
	configKey   = "config"
	logLevelKey = "log-level"
	outKey      = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "signalbench",
		Usage: "Drive the signal engine through propagation and fan-out workloads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "TOML file describing benchmark cases",
			},
			&cli.StringFlag{
				Name:  logLevelKey,
				Usage: "Log level (trace, debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "propagate",
				Usage:  "Time writes through chains of effect-linked signals",
				Action: propagate,
			},
			{
				Name:   "fanout",
				Usage:  "Count effect runs across many overlapping dependency sets",
				Action: fanout,
			},
			{
				Name:  "report",
				Usage: "Run every case and render a markdown report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  outKey,
						Usage: "Write the report to a file instead of stdout",
					},
				},
				Action: report,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cli.Command) (Config, zerolog.Logger, error) {
	logCfg := logging.DefaultConfig(logging.ProfileRuntime)
	logging.ApplyEnv(&logCfg, os.Getenv)
	if raw := cmd.String(logLevelKey); raw != "" {
		lvl, ok := logging.ParseLevel(raw)
		if !ok {
			return Config{}, zerolog.Nop(), fmt.Errorf("unknown log level %q", raw)
		}
		logCfg.Level = lvl
	}
	logger := logCfg.Logger(os.Stderr)

	cfg, err := LoadConfig(cmd.String(configKey))
	if err != nil {
		return Config{}, logger, err
	}
	return cfg, logger, nil
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	results, err := runAllPropagate(ctx, cfg, logger)
	if err != nil {
		return err
	}
	renderPropagate(os.Stdout, results)
	return nil
}

func fanout(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	results, err := runAllFanout(ctx, cfg, logger)
	if err != nil {
		return err
	}
	renderFanout(os.Stdout, results)
	return nil
}

func report(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	prop, err := runAllPropagate(ctx, cfg, logger)
	if err != nil {
		return err
	}
	fan, err := runAllFanout(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path := cmd.String(outKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := writeReport(w, reportData(time.Now(), prop, fan)); err != nil {
		return err
	}
	logger.Info().Int("propagate", len(prop)).Int("fanout", len(fan)).Msg("report written")
	return nil
}

func runAllPropagate(ctx context.Context, cfg Config, logger zerolog.Logger) ([]PropagateResult, error) {
	results := make([]PropagateResult, 0, len(cfg.Propagate))
	for _, c := range cfg.Propagate {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		r, err := runPropagate(c, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Int("width", c.Width).
			Int("depth", c.Depth).
			Dur("took", time.Since(start)).
			Msg("propagate case done")
		results = append(results, r)
	}
	return results, nil
}

func runAllFanout(ctx context.Context, cfg Config, logger zerolog.Logger) ([]FanoutResult, error) {
	results := make([]FanoutResult, 0, len(cfg.Fanout))
	for _, c := range cfg.Fanout {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := runFanout(c, cfg.Seed, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("case", c.Name).Uint64("runs", r.Runs).Msg("fanout case done")
		results = append(results, r)
	}
	return results, nil
}
