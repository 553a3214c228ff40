//go:build go1.22

package histogram

import (
	"math/rand/v2"
	"testing"
)

/*
 * Micro-benchmarks for the histogram hot paths.
 *
 * Run with: go test -bench=. -benchmem ./internal/histogram/
 */

type sample struct {
	x int
	y float64
}

func generateSamples(count int) []sample {
	r := rand.New(rand.NewPCG(1, 2))
	samples := make([]sample, count)
	for i := range samples {
		samples[i] = sample{x: r.IntN(12), y: r.Float64() * 12}
	}
	return samples
}

/*
 * Benchmarks the untyped path: ...any boxing, arity check, per-axis type
 * switch and the mixed-radix fold.
 */
func BenchmarkHistogram_Inc(b *testing.B) {
	h, err := NewUniform[float64](Dimension[int]{0, 10, 10}, Dimension[float64]{0, 10, 15})
	if err != nil {
		b.Fatal(err)
	}
	samples := generateSamples(4096)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s := samples[i%len(samples)]
		if err := h.Inc(s.x, s.y); err != nil {
			b.Fatal(err)
		}
	}
}

/*
 * Benchmarks the typed front-end, which quantizes without boxing.
 */
func BenchmarkHistogram2D_Inc(b *testing.B) {
	h, err := New2D[float64](Dimension[int]{0, 10, 10}, Dimension[float64]{0, 10, 15})
	if err != nil {
		b.Fatal(err)
	}
	samples := generateSamples(4096)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s := samples[i%len(samples)]
		h.Inc(s.x, s.y)
	}
}

func BenchmarkHistogram_Sum(b *testing.B) {
	h, err := NewUniform[float64](Dimension[int]{0, 1000, 1000}, Dimension[int]{0, 100, 100})
	if err != nil {
		b.Fatal(err)
	}
	h.Set(1)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = h.Sum()
	}
}
