package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"histnd.lopezb.com/internal/histogram"
)

// sample is one parsed CSV row: a value per dimension and its weight.
type sample struct {
	values []any
	weight float64
}

// readSamples parses CSV rows from r. Blank lines and lines starting with
// '#' are skipped. With weighted set, the last column of every row is the
// sample weight; otherwise every sample weighs 1.
func readSamples(r io.Reader, dims []dimensionConfig, weighted bool) ([]sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	cr.FieldsPerRecord = len(dims)
	if weighted {
		cr.FieldsPerRecord++
	}

	var samples []sample
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		s := sample{values: make([]any, len(dims)), weight: 1}
		for i, d := range dims {
			v, err := d.parse(strings.TrimSpace(record[i]))
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", line, i+1, err)
			}
			s.values[i] = v
		}
		if weighted {
			w, err := strconv.ParseFloat(strings.TrimSpace(record[len(dims)]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, weight: %w", line, err)
			}
			s.weight = w
		}
		samples = append(samples, s)
	}

	return samples, nil
}

// accumulate bins samples into a copy of proto. The samples are split into
// contiguous partitions, each filled by its own goroutine into a private
// histogram, and the partial histograms are summed at the end. proto itself
// is not modified.
func accumulate(ctx context.Context, proto *histogram.Histogram[float64], samples []sample, workers int) (*histogram.Histogram[float64], error) {
	if len(samples) == 0 || workers < 2 {
		h := proto.Clone()
		for i, s := range samples {
			if err := h.IncMultiplier(s.weight, s.values...); err != nil {
				return nil, fmt.Errorf("sample %d: %w", i+1, err)
			}
		}
		return h, nil
	}

	chunk := (len(samples) + workers - 1) / workers
	parts := make([]*histogram.Histogram[float64], 0, workers)

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(samples); start += chunk {
		part := proto.Clone()
		part.Clear()
		parts = append(parts, part)

		batch := samples[start:min(start+chunk, len(samples))]
		start := start // per-iteration copy (go1.22 loopvar semantics)
		g.Go(func() error {
			for i, s := range batch {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := part.IncMultiplier(s.weight, s.values...); err != nil {
					return fmt.Errorf("sample %d: %w", start+i+1, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The first partial absorbs proto's existing bins.
	if err := parts[0].AddHistogram(proto); err != nil {
		return nil, err
	}
	return histogram.Add(parts...)
}
