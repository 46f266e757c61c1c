package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/chronos-tachyon/huffman-conjecture/conjecture"
	"github.com/chronos-tachyon/huffman-conjecture/internal/logging"
)

const serviceName = "huffman-conjecture"

// app holds the global flags and the resources built from them.
type app struct {
	stdout io.Writer
	stderr io.Writer

	logLevel    string
	logJSON     bool
	trace       bool
	dumpMetrics bool

	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *conjecture.Metrics
	tp       *sdktrace.TracerProvider
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   serviceName,
		Short: "Search for competitively dominated Huffman codes",
		Long: `huffman-conjecture samples random weighted sources, enumerates every
Huffman code reachable under tie-breaking, and tests conjectures about
whether one Huffman code can competitively dominate another.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "info", "minimum log level: debug, info, warn, error")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON instead of text")
	flags.BoolVar(&a.trace, "trace", false, "print OpenTelemetry spans to stderr")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print Prometheus metrics to stderr at exit")

	root.AddCommand(
		a.runCmd(),
		a.sweepCmd(),
		a.reduceCmd(),
		a.profilesCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logging.New(logging.Config{
		Level:   level,
		JSON:    a.logJSON,
		Writer:  a.stderr,
		Service: serviceName,
	})

	a.registry = prometheus.NewRegistry()
	a.metrics = conjecture.NewMetrics(a.registry)

	if a.trace {
		exporter, err := stdouttrace.New(
			stdouttrace.WithPrettyPrint(),
			stdouttrace.WithWriter(a.stderr),
		)
		if err != nil {
			return fmt.Errorf("create span exporter: %w", err)
		}
		a.tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
	}
	return nil
}

// harnessOptions wires the logger, metrics, and tracer into a Harness.
func (a *app) harnessOptions() []conjecture.Option {
	opts := []conjecture.Option{
		conjecture.WithLogger(a.logger),
		conjecture.WithMetrics(a.metrics),
	}
	if a.tp != nil {
		opts = append(opts, conjecture.WithTracerProvider(a.tp))
	}
	return opts
}

// close flushes spans and prints metrics.  It is safe to call when setup
// never ran.
func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.tp != nil {
		if err := a.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush spans: %w", err))
		}
	}
	if a.dumpMetrics && a.registry != nil {
		if err := writeMetrics(a.stderr, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
