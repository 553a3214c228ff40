// Package histogram implements uniform-width N-dimensional histograms.
//
// A sample is a tuple of N numbers, one per dimension. Each value is
// quantized into a bucket of its own dimension, the N bucket indices are
// flattened into one linear index, and the bin at that index accumulates a
// count or weight.
//
// Quantization
// ============
//
// Each dimension is described by (Min, Max, Buckets). A value v maps to:
//
//	v <= Min  ->  0
//	v >= Max  ->  Buckets-1
//	otherwise ->  round(v * (Buckets-1) / (Max-Min))
//
// Rounding is half away from zero. The interior formula scales v itself,
// not v-Min, so it is only a linear interpolation between the clamps when
// Min is zero. Results outside [0, Buckets-1] are clamped.
//
// Bin Layout
// ==========
//
// Bucket indices are combined in mixed radix with dimension 0 as the
// lowest digit. For dimensions with bucket counts B0, B1, B2 the bin of
// buckets (i, j, k) is:
//
//	i + B0*(j + B1*k)
//
// The bin array therefore has B0*B1*B2 entries and is laid out with the
// first dimension varying fastest.
//
// Typed and Untyped Access
// ========================
//
// Histogram takes samples as ...any so one histogram can mix integer and
// floating point dimensions. Arity and sample types are checked on every
// call. Histogram1D, Histogram2D and Histogram3D wrap a Histogram with
// statically typed Inc/Value methods that cannot fail.
//
// Example:
//
//	x, _ := histogram.NewDimension[int](0, 10, 10)
//	y, _ := histogram.NewDimension[float32](0, 10, 15)
//	h, _ := histogram.New2D[float64](x, y)
//	h.Inc(5, 5.0)
//	h.Value(5, 5.0) // 1
package histogram
