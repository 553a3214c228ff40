package histogram

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of sample types a dimension can be built over.
type Number interface {
	constraints.Integer | constraints.Float
}

// Dimension describes one axis of a uniform histogram: the closed range
// [Min, Max] split into Buckets buckets. Values at or below Min land in the
// first bucket and values at or above Max land in the last one.
type Dimension[T Number] struct {
	Min     T
	Max     T
	Buckets uint32
}

// NewDimension returns a validated dimension descriptor.
func NewDimension[T Number](lo, hi T, buckets uint32) (Dimension[T], error) {
	d := Dimension[T]{Min: lo, Max: hi, Buckets: buckets}
	if err := d.Validate(); err != nil {
		return Dimension[T]{}, err
	}
	return d, nil
}

// Validate reports whether the descriptor can be quantized.
func (d Dimension[T]) Validate() error {
	// Written as !(min < max) so a NaN bound is rejected as well.
	if !(d.Min < d.Max) {
		return fmt.Errorf("%w: min should be < max (min=%v, max=%v)", ErrInvalidConfig, d.Min, d.Max)
	}
	if d.Buckets < 1 {
		return fmt.Errorf("%w: buckets must be > 0", ErrInvalidConfig)
	}
	return nil
}

// Bucket maps v to a bucket index in [0, Buckets-1].
//
// Interior values are scaled as v * (Buckets-1) / (Max-Min) and rounded half
// away from zero. The value is scaled directly, not its offset from Min, so
// the interior mapping is only linear between the clamps when Min is zero.
// Whatever the scaled result, it is clamped into the valid bucket range.
func (d Dimension[T]) Bucket(v T) uint32 {
	if v <= d.Min {
		return 0
	}
	last := d.Buckets - 1
	if v >= d.Max {
		return last
	}

	r := math.Round(float64(v) * float64(last) / (float64(d.Max) - float64(d.Min)))

	// Negative results (Min < 0) and NaN both land in the first bucket.
	if !(r > 0) {
		return 0
	}
	if r >= float64(last) {
		return last
	}
	return uint32(r)
}

// BucketCount returns the number of buckets. It is the Axis view of Buckets.
func (d Dimension[T]) BucketCount() uint32 {
	return d.Buckets
}

// BucketOf converts v to the dimension's sample type and quantizes it.
func (d Dimension[T]) BucketOf(v any) (uint32, error) {
	t, ok := convert[T](v)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrSampleType, v)
	}
	return d.Bucket(t), nil
}

// String describes the dimension, e.g. "int[0:10]/10".
func (d Dimension[T]) String() string {
	return fmt.Sprintf("%T[%v:%v]/%d", d.Min, d.Min, d.Max, d.Buckets)
}

// convert turns any Go numeric value into T with the usual conversion
// rules (floats truncate toward zero when T is an integer type).
func convert[T Number](v any) (T, bool) {
	switch x := v.(type) {
	case T:
		return x, true
	case int:
		return T(x), true
	case int8:
		return T(x), true
	case int16:
		return T(x), true
	case int32:
		return T(x), true
	case int64:
		return T(x), true
	case uint:
		return T(x), true
	case uint8:
		return T(x), true
	case uint16:
		return T(x), true
	case uint32:
		return T(x), true
	case uint64:
		return T(x), true
	case uintptr:
		return T(x), true
	case float32:
		return T(x), true
	case float64:
		return T(x), true
	}
	return 0, false
}
