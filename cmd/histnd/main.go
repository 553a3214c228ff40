// histnd bins CSV samples into a uniform N-dimensional histogram and prints
// the result. It is a thin driver around internal/histogram and is mostly
// useful to sanity check a dimension configuration against real data.
//
// Usage Examples
// ==============
//
// Two dimensions, an integer in [0,10] with 10 buckets and a float in
// [0,10] with 15 buckets:
//
//	histnd --dim int:0:10:10 --dim float:0:10:15 --input samples.csv -v
//
// Same thing from a YAML file, with the last CSV column as sample weight:
//
//	histnd --config histnd.yaml --weighted
//
//	# histnd.yaml
//	input: samples.csv
//	dimensions:
//	  - {kind: int, min: 0, max: 10, buckets: 10}
//	  - {kind: float, min: 0, max: 10, buckets: 15}
//
// Every flag can also be set through the environment, e.g. HISTND_WORKERS=4.
//
// Exit Codes
// ==========
//
// 0: The samples were binned.
// 1: Bad configuration, unreadable input, or a malformed sample.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"histnd.lopezb.com/internal/histogram"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := io.Reader(os.Stdin)
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			logger.Error("cannot open input", "error", err, "path", cfg.Input)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	if err := run(ctx, cfg, in, os.Stdout, logger); err != nil {
		logger.Error("histnd failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run builds the histogram described by cfg, bins every sample read from in
// and writes the summary to out.
func run(ctx context.Context, cfg config, in io.Reader, out io.Writer, logger *slog.Logger) error {
	axes := make([]histogram.Axis, len(cfg.Dimensions))
	for i, d := range cfg.Dimensions {
		a, err := d.axis()
		if err != nil {
			return fmt.Errorf("dimension %d: %w", i, err)
		}
		axes[i] = a
	}

	proto, err := histogram.NewUniform[float64](axes...)
	if err != nil {
		return err
	}
	layout := proto.Layout()

	logger.Info("histogram ready",
		"layout", layout.String(),
		"bins", layout.Len(),
		"fingerprint", fmt.Sprintf("%016x", layout.Fingerprint()),
	)

	start := time.Now()
	samples, err := readSamples(in, cfg.Dimensions, cfg.Weighted)
	if err != nil {
		return fmt.Errorf("read samples: %w", err)
	}

	h, err := accumulate(ctx, proto, samples, cfg.Workers)
	if err != nil {
		return err
	}

	logger.Info("samples binned",
		"samples", len(samples),
		"workers", cfg.Workers,
		"duration", time.Since(start),
	)

	if cfg.Normalize {
		h.Normalize()
	}

	return writeSummary(out, h, len(samples), cfg.Verbose)
}

// writeSummary prints the layout, totals and, in verbose mode, every
// non-zero bin with its per-dimension bucket coordinates.
func writeSummary(w io.Writer, h *histogram.Histogram[float64], samples int, verbose bool) error {
	layout := h.Layout()

	if _, err := fmt.Fprintf(w, "Layout:      %s\n", layout); err != nil {
		return err
	}
	fmt.Fprintf(w, "Fingerprint: %016x\n", layout.Fingerprint())
	fmt.Fprintf(w, "Bins:        %d\n", h.Len())
	fmt.Fprintf(w, "Samples:     %d\n", samples)
	fmt.Fprintf(w, "Sum:         %g\n", h.Sum())

	if !verbose {
		return nil
	}

	for i, b := range h.Bins() {
		if b == 0 {
			continue
		}
		coords, err := layout.Coordinates(uint32(i))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  bin %d %v = %g\n", i, coords, b); err != nil {
			return err
		}
	}
	return nil
}
