package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
	"github.com/chronos-tachyon/huffman-conjecture/conjecture"
	"github.com/chronos-tachyon/huffman-conjecture/internal/config"
)

func (a *app) runCmd() *cobra.Command {
	var (
		cfg          conjecture.Config
		conjName     string
		distribution string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Test a conjecture against random sources of one size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg.Conjecture, err = conjecture.ParseConjecture(conjName); err != nil {
				return err
			}
			if cfg.Distribution, err = huffman.ParseDistribution(distribution); err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				cfg.Seed = clockSeed()
			}

			h, err := conjecture.New(cfg, a.harnessOptions()...)
			if err != nil {
				return err
			}
			result, err := h.Run(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(a.stdout, result)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.SourceSize, "size", 7, "symbols per source")
	flags.IntVar(&cfg.Trials, "trials", 1000, "informative sources to test")
	flags.IntVar(&cfg.Workers, "workers", 0, "parallel workers (0 for one per CPU)")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "random seed (default taken from the clock)")
	flags.IntVar(&cfg.MaxSamples, "max-samples", 0, "give up after drawing this many sources (0 for trials x 100000)")
	flags.StringVar(&conjName, "conjecture", conjecture.SkinniestUnbeaten.String(), "skinniest-unbeaten or dominated-not-optimal")
	flags.StringVar(&distribution, "distribution", huffman.Independent.String(), "independent or partition")
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	var (
		path string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a conjecture over a range of source sizes, stopping at the first counterexample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sweep := config.Default()
			if path != "" {
				var err error
				if sweep, err = config.Load(path); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("seed") {
				seed = clockSeed()
			}
			base, err := sweep.Base(seed)
			if err != nil {
				return err
			}

			a.logger.Info("sweep starting",
				"min_size", sweep.MinSize,
				"max_size", sweep.MaxSize,
				"conjecture", base.Conjecture.String(),
			)
			results, err := conjecture.Sweep(cmd.Context(), base, sweep.MinSize, sweep.MaxSize, a.harnessOptions()...)
			for _, result := range results {
				if werr := writeResult(a.stdout, result); werr != nil {
					return werr
				}
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&path, "config", "", "YAML sweep configuration (default: sizes 7 to 24)")
	flags.Uint64Var(&seed, "seed", 0, "random seed when the configuration sets none (default taken from the clock)")
	return cmd
}

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

func writeResult(w io.Writer, result conjecture.Result) error {
	verdict := "held"
	if !result.Held {
		verdict = "REFUTED"
	}
	_, err := fmt.Fprintf(w, "%v, %d symbols: %s after %d trials (%d samples, %d uninformative, %d passed heuristic) in %v [run %s]\n",
		result.Conjecture, result.SourceSize, verdict,
		result.Tested, result.Samples, result.Uninformative, result.PassedHeuristic,
		result.Duration.Round(time.Millisecond), result.RunID)
	if err != nil {
		return err
	}
	if result.Counterexample != nil {
		_, err = result.Counterexample.Dump(w)
	}
	return err
}
