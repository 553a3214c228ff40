package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histnd.lopezb.com/internal/histogram"
)

const scenarioCSV = `# x, y
1, 2.0
3, 4.0
5, 5.0
15, 25.0
25, 35.0
25, 35.0
`

var scenarioDims = []dimensionConfig{
	{Kind: kindInt, Min: 0, Max: 10, Buckets: 10},
	{Kind: kindFloat, Min: 0, Max: 10, Buckets: 15},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseDimension(t *testing.T) {
	d, err := parseDimension("FLOAT:-1.5:2.5:8")
	require.NoError(t, err)
	assert.Equal(t, dimensionConfig{Kind: kindFloat, Min: -1.5, Max: 2.5, Buckets: 8}, d)

	tests := []string{
		"int:0:10",
		"int:a:10:10",
		"int:0:b:10",
		"int:0:10:-1",
		"int:0:10:99999999999",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := parseDimension(s)
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_Flags(t *testing.T) {
	cfg, err := loadConfig([]string{
		"--dim", "int:0:10:10",
		"--dim", "float:0:10:15",
		"--workers", "3",
		"--normalize",
		"-v",
	})
	require.NoError(t, err)

	assert.Equal(t, scenarioDims, cfg.Dimensions)
	assert.Equal(t, "-", cfg.Input)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Normalize)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Weighted)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "histnd.yaml")
	yaml := `input: samples.csv
weighted: true
dimensions:
  - {kind: int, min: 0, max: 10, buckets: 10}
  - {kind: float, min: 0, max: 10, buckets: 15}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := loadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "samples.csv", cfg.Input)
	assert.True(t, cfg.Weighted)
	assert.Equal(t, scenarioDims, cfg.Dimensions)

	// --dim replaces the dimensions from the file.
	cfg, err = loadConfig([]string{"--config", path, "--dim", "uint:0:4:4"})
	require.NoError(t, err)
	assert.Equal(t, []dimensionConfig{{Kind: kindUint, Min: 0, Max: 4, Buckets: 4}}, cfg.Dimensions)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("HISTND_WORKERS", "5")

	cfg, err := loadConfig([]string{"--dim", "int:0:10:10"})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(nil)
	require.ErrorIs(t, err, errNoDimensions)

	_, err = loadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)

	_, err = loadConfig([]string{"--dim", "int:0"})
	require.Error(t, err)
}

func TestDimensionConfig_Axis(t *testing.T) {
	a, err := dimensionConfig{Kind: kindInt, Min: 0, Max: 10, Buckets: 10}.axis()
	require.NoError(t, err)
	assert.Equal(t, "int64[0:10]/10", a.String())

	tests := []struct {
		name string
		d    dimensionConfig
	}{
		{name: "min above max", d: dimensionConfig{Kind: kindFloat, Min: 5, Max: 3, Buckets: 10}},
		{name: "zero buckets", d: dimensionConfig{Kind: kindFloat, Min: 0, Max: 3}},
		{name: "fractional int bound", d: dimensionConfig{Kind: kindInt, Min: 0.5, Max: 3, Buckets: 2}},
		{name: "negative uint bound", d: dimensionConfig{Kind: kindUint, Min: -1, Max: 3, Buckets: 2}},
		{name: "unknown kind", d: dimensionConfig{Kind: "complex", Min: 0, Max: 3, Buckets: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.d.axis()
			require.ErrorIs(t, err, histogram.ErrInvalidConfig)
			assert.Nil(t, a)
		})
	}
}

func TestReadSamples(t *testing.T) {
	samples, err := readSamples(strings.NewReader(scenarioCSV), scenarioDims, false)
	require.NoError(t, err)
	require.Len(t, samples, 6)

	assert.Equal(t, []any{int64(1), 2.0}, samples[0].values)
	assert.Equal(t, 1.0, samples[0].weight)
	assert.Equal(t, []any{int64(25), 35.0}, samples[5].values)
}

func TestReadSamples_Weighted(t *testing.T) {
	samples, err := readSamples(strings.NewReader("1,2.0,0.5\n3,4.0,-2\n"), scenarioDims, true)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 0.5, samples[0].weight)
	assert.Equal(t, -2.0, samples[1].weight)
}

func TestReadSamples_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		weighted bool
	}{
		{name: "not an int", input: "1.5,2.0\n"},
		{name: "not a float", input: "1,abc\n"},
		{name: "missing column", input: "1,2.0\n3\n"},
		{name: "missing weight", input: "1,2.0\n", weighted: true},
		{name: "bad weight", input: "1,2.0,x\n", weighted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readSamples(strings.NewReader(tt.input), scenarioDims, tt.weighted)
			require.Error(t, err)
		})
	}
}

func TestAccumulate_ParallelMatchesSequential(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		sb.WriteString(strings.Join([]string{
			strconv.Itoa(i % 13),
			strconv.FormatFloat(float64(i%29)*0.4, 'g', -1, 64),
		}, ","))
		sb.WriteByte('\n')
	}
	samples, err := readSamples(strings.NewReader(sb.String()), scenarioDims, false)
	require.NoError(t, err)

	proto, err := histogram.NewUniform[float64](mustAxes(t, scenarioDims)...)
	require.NoError(t, err)

	seq, err := accumulate(context.Background(), proto, samples, 1)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 2000} {
		par, err := accumulate(context.Background(), proto, samples, workers)
		require.NoError(t, err)
		require.Equal(t, seq.Bins(), par.Bins(), "workers=%d", workers)
	}

	assert.Equal(t, 1000.0, seq.Sum())
	assert.Zero(t, proto.Sum())
}

func TestAccumulate_Error(t *testing.T) {
	proto, err := histogram.NewUniform[float64](mustAxes(t, scenarioDims)...)
	require.NoError(t, err)

	samples := []sample{
		{values: []any{int64(1), 1.0}, weight: 1},
		{values: []any{int64(1)}, weight: 1},
	}
	_, err = accumulate(context.Background(), proto, samples, 2)
	require.ErrorIs(t, err, histogram.ErrArity)

	_, err = accumulate(context.Background(), proto, samples, 1)
	require.ErrorIs(t, err, histogram.ErrArity)
}

func TestRun(t *testing.T) {
	cfg := config{
		Input:      "-",
		Workers:    2,
		Verbose:    true,
		Dimensions: scenarioDims,
	}

	var out bytes.Buffer
	err := run(context.Background(), cfg, strings.NewReader(scenarioCSV), &out, discardLogger())
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Layout:      int64[0:10]/10 x float64[0:10]/15\n")
	assert.Contains(t, got, "Bins:        150\n")
	assert.Contains(t, got, "Samples:     6\n")
	assert.Contains(t, got, "Sum:         6\n")
	assert.Contains(t, got, "  bin 31 [1 3] = 1\n")
	assert.Contains(t, got, "  bin 75 [5 7] = 1\n")
	assert.Contains(t, got, "  bin 149 [9 14] = 3\n")
}

func TestRun_Normalize(t *testing.T) {
	cfg := config{
		Workers:    1,
		Normalize:  true,
		Verbose:    true,
		Dimensions: scenarioDims,
	}

	var out bytes.Buffer
	err := run(context.Background(), cfg, strings.NewReader(scenarioCSV), &out, discardLogger())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "  bin 149 [9 14] = 0.5\n")
}

func TestRun_Errors(t *testing.T) {
	bad := config{Workers: 1, Dimensions: []dimensionConfig{{Kind: kindInt, Min: 5, Max: 3, Buckets: 10}}}
	err := run(context.Background(), bad, strings.NewReader(""), io.Discard, discardLogger())
	require.ErrorIs(t, err, histogram.ErrInvalidConfig)

	good := config{Workers: 1, Dimensions: scenarioDims}
	err = run(context.Background(), good, strings.NewReader("1,x\n"), io.Discard, discardLogger())
	require.Error(t, err)
}

func mustAxes(t *testing.T, dims []dimensionConfig) []histogram.Axis {
	t.Helper()
	axes := make([]histogram.Axis, len(dims))
	for i, d := range dims {
		a, err := d.axis()
		require.NoError(t, err)
		axes[i] = a
	}
	return axes
}
